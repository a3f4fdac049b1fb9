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

// Package hotplug detects input devices being connected and disconnected.
//
// A Watcher monitors the host's device node directory with fsnotify. It runs
// in its own goroutine and so never touches the device registry. Instead, a
// MsgHotplug message is sent through the message channel for every device
// node created or removed.
//
// On the event loop goroutine the message is passed to a Coalescer. The
// Coalescer restarts a quiet-period timer for every notification and calls
// the rescan function once the timer expires, so a burst of notifications
// results in a single rescan.
package hotplug
