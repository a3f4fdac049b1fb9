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

// Package devices is the input device registry. It holds a bounded table of
// the input devices known to the host, gives each device a stable identity
// and owns the joystick axis state used by the input normaliser.
//
// The table is refreshed with Rescan(). Every device added by a previous
// rescan is removed and the host's enumeration is walked again. Devices added
// with AddPersistent() survive a rescan.
//
// The registry always contains a "Virtual" device after a rescan. Key events
// from devices that the registry does not know about are attributed to the
// virtual device. If the table is full when the virtual device is needed, the
// most recently added device is evicted to make room.
//
// On hosts that can not tell input devices apart (Capabilities.
// MultiInputDevices is false) the registry contains a single catch-all device
// and Lookup() always returns it.
package devices
