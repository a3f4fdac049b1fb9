// This file is part of Platformcore.
//
// Platformcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Platformcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Platformcore.  If not, see <https://www.gnu.org/licenses/>.

// Package frameclock implements the one-shot "draw now" trigger. There are
// two implementations of the Trigger interface and exactly one is used for
// the lifetime of the process.
//
// The Push trigger is driven by an external frame pacing service (the Pacer
// interface). The pacer is armed when a draw is posted and delivers a single
// frame, with a timestamp, at the next frame boundary.
//
// The Descriptor trigger is level-signalled. Posting a draw increments an
// eventfd counter and the event loop calls the draw function for as long as
// the counter is non-zero. The counter is drained when the frame is no
// longer dirty or when the draw is cancelled.
//
// Cancelling a descriptor draw sets a one-shot idle counter. The loop may
// already have collected a readiness event for the descriptor before the
// cancellation drained it, so the next wake is ignored.
//
// Ticker is a Pacer for desktop systems. Frame boundaries come from a
// limiter.FpsLimiter and are delivered to the loop goroutine through an
// eventfd.
package frameclock
