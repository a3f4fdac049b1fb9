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

// Package platform defines the capability interfaces that the lifecycle
// coordinator and the input normaliser consume. Implementations live
// elsewhere: the looper package implements Multiplexer and Timers for Linux
// and the sdlplatform package implements the host side (Bridge,
// RenderSurface, NativeWindow and InputQueue) for desktop systems.
//
// The constant values for event sources, motion actions and meta state
// follow the values used by the Android NDK. Hosts that are not Android
// translate their native events into these values so that the normaliser has
// a single vocabulary.
package platform
