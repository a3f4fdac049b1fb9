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

// Package sdlplatform is a desktop host for the lifecycle coordinator. The
// window, the OpenGL context, joysticks and the event queue are provided by
// SDL.
//
// SDL does not expose a descriptor for its event queue so the host pumps SDL
// events on a short timer registered with the looper. Window events are
// translated into lifecycle callbacks immediately and input events are pushed
// onto a platform/queue Queue, which the coordinator attaches to the looper
// like any other input queue.
//
// SDL requires that events are pumped on the thread that initialised it. The
// host locks the calling goroutine to its OS thread and the looper must be run
// on the same goroutine.
package sdlplatform
