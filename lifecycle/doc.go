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

// Package lifecycle is the coordinator between the host's application and
// window lifecycle and the engine's frame loop.
//
// The host calls the Coordinator's methods (NativeWindowCreated(), Pause(),
// ContentRectChanged(), etc.) on the event loop goroutine as the host
// reports changes. The Coordinator tracks the application state and the
// window geometry and decides when a frame should be drawn.
//
// Frames are triggered with a frameclock.Trigger. If the host has a frame
// pacing service (Capabilities.PushFrameClock) then the push trigger is used.
// Otherwise frames are triggered with a descriptor that the event loop wakes
// on. The choice is made once, by NewCoordinator().
//
// Draw requests are deduplicated. At most one draw is posted at any time and
// the posted state is cleared when a frame is drawn that leaves nothing more to
// draw, or when the draw is cancelled.
//
// A change in window geometry is followed by one additional corrective frame.
// The host may report geometry before the compositor has honoured it so the
// geometry is read again after the next frame and the engine is told about it
// a second time. A change of content rectangle also delays the viewport update
// until the corrective frame.
//
// Input is drained from the host's input queue either when the queue's
// descriptor is ready or, for hosts that use the has-events strategy, at the
// start of a frame if events are waiting. Events are normalised by the
// userinput package before being passed to the engine.
//
// Messages from other goroutines arrive through the message channel. The
// only safe way for another goroutine to affect the Coordinator is by sending
// a message with the Sender returned by Sender().
package lifecycle
