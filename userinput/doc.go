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

// Package userinput turns raw input events reported by the host into the
// discrete events consumed by the application.
//
// It can be thought of as a translation layer between the host platform and
// the application. The Normalizer attributes every event to a device in the
// devices.Registry, debounces joystick axes into button presses and applies
// the small number of device specific key remappings that are needed for
// known problem hardware.
//
// Pointer events are translated into window-local coordinates by subtracting
// the origin of the content rectangle, which the lifecycle coordinator keeps
// up to date with SetContentRect().
//
// Joystick axes are debounced with a fixed threshold of 0.5 and no
// hysteresis. Each device has four axis pairs (two sticks, the hat and the
// triggers) and each pair has four edges. A change in the state of an edge
// produces a single EventKey with the key code for that edge.
package userinput
