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

// Package notifications allow communication from the lifecycle coordinator to
// an observer outside of the engine callbacks. This is useful, for example, for
// a host that wants to show the user that the input devices have changed or
// that the application has been suspended.
//
// Notifications are informational. The coordinator logs an error returned by
// Notify() but otherwise ignores it.
package notifications
