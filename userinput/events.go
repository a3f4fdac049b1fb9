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

package userinput

import (
	"fmt"

	"github.com/jetsetilly/platformcore/userinput/devices"
)

// Event represents all the different types of canonical input event.
type Event interface{}

// HandleInput receives the events produced by the Normalizer.
type HandleInput interface {
	HandleEvent(ev Event)
}

// DeviceChangeHandler is an optional interface for implementations of
// HandleInput. It is called after the device registry has been rescanned.
type DeviceChangeHandler interface {
	HandleDeviceChange(c devices.Change)
}

// PointerAction is the decoded action of a single pointer.
type PointerAction int

// List of valid PointerActions.
const (
	PointerMove PointerAction = iota
	PointerDown
	PointerUp
)

func (a PointerAction) String() string {
	switch a {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	}
	return "move"
}

// EventPointer is a touch or mouse event for a single pointer. The position
// is relative to the origin of the window's content rectangle.
type EventPointer struct {
	ID     int32
	Action PointerAction
	X, Y   int
}

func (ev EventPointer) String() string {
	return fmt.Sprintf("pointer %d %s at %d,%d", ev.ID, ev.Action, ev.X, ev.Y)
}

// EventTrackball is relative motion from a trackball. Action is the host's
// motion action and is not decoded.
type EventTrackball struct {
	Action int32
	X, Y   float32
}

// EventKey is a key press or release. Joystick axes crossing the threshold
// are also reported as EventKey, with one of the axis key codes.
//
// The Device field is only valid for the duration of HandleEvent(). The
// registry may remove the device on the next rescan.
type EventKey struct {
	Device *devices.Device
	Key    Keycode
	Down   bool
	Shift  bool
}

func (ev EventKey) String() string {
	s := "up"
	if ev.Down {
		s = "down"
	}
	if ev.Device == nil {
		return fmt.Sprintf("key %s %s", ev.Key, s)
	}
	return fmt.Sprintf("key %s %s from %s", ev.Key, s, ev.Device)
}
