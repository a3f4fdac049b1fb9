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

// Package looper is a single goroutine event loop for Linux built on epoll.
// It implements the platform.Multiplexer and platform.Timers interfaces.
//
// Sources are file descriptors registered with a callback. The callback is
// run on the loop goroutine whenever the descriptor is ready. Timers are
// one-shot timerfd descriptors that are removed from the loop after they
// fire.
//
// The loop goroutine is the goroutine that first calls Run() or PollOnce().
// Calling either of those functions from any other goroutine is an error.
// Quit() is the only function that is safe to call from any goroutine.
package looper
