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

package notifications

// Notice describes events that change the state of the application as seen by
// the host. These notifications can be used to present additional information
// to the user.
type Notice string

// List of defined notifications.
const (
	// the engine has been initialised. sent once for the lifetime of the
	// process
	NotifyInitialised Notice = "NotifyInitialised"

	// the application has been paused or resumed by the host
	NotifySuspended Notice = "NotifySuspended"
	NotifyResumed   Notice = "NotifyResumed"

	// a render surface has been created or destroyed
	NotifySurfaceCreated   Notice = "NotifySurfaceCreated"
	NotifySurfaceDestroyed Notice = "NotifySurfaceDestroyed"

	// the window or content rectangle has changed size
	NotifyGeometryChanged Notice = "NotifyGeometryChanged"

	// the input device registry has been rescanned
	NotifyDevicesChanged Notice = "NotifyDevicesChanged"

	// the coordinator has been destroyed
	NotifyDestroyed Notice = "NotifyDestroyed"
)

// Notify is used for communication between the lifecycle coordinator and the
// host.
type Notify interface {
	Notify(notice Notice) error
}
