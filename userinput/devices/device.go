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

package devices

import (
	"fmt"
	"strings"
)

// TypeBits is the set of capabilities of a device.
type TypeBits uint32

// List of valid TypeBits.
const (
	TypeBitKeyMisc TypeBits = 1 << iota
	TypeBitKeyboard
	TypeBitKeyboardAlpha
	TypeBitGamepad
	TypeBitJoystick
	TypeBitVirtual
)

var typeBitNames = []struct {
	bit  TypeBits
	name string
}{
	{TypeBitVirtual, "virtual"},
	{TypeBitKeyboard, "keyboard"},
	{TypeBitKeyboardAlpha, "alpha"},
	{TypeBitGamepad, "gamepad"},
	{TypeBitJoystick, "joystick"},
	{TypeBitKeyMisc, "misc"},
}

func (b TypeBits) String() string {
	s := strings.Builder{}
	for _, n := range typeBitNames {
		if b&n.bit == n.bit {
			if s.Len() > 0 {
				s.WriteRune('|')
			}
			s.WriteString(n.name)
		}
	}
	if s.Len() == 0 {
		return "none"
	}
	return s.String()
}

// Subtype is a vendor specific classification of a device. It is used to
// apply key remapping for devices with unusual conventions.
type Subtype int

// List of valid Subtypes.
const (
	SubtypeNone Subtype = iota
	SubtypeXperiaPlay
	SubtypePS3Controller
)

func (s Subtype) String() string {
	switch s {
	case SubtypeNone:
		return "-"
	case SubtypeXperiaPlay:
		return "xperia-play"
	case SubtypePS3Controller:
		return "ps3"
	}
	return "unknown"
}

// Class of a device. The class and DevID together identify a device.
type Class int

// List of valid Classes.
const (
	// devices enumerated by the host
	ClassSystem Class = iota

	// pointer devices added by the host with AddPersistent()
	ClassPointer
)

func (c Class) String() string {
	switch c {
	case ClassSystem:
		return "system"
	case ClassPointer:
		return "pointer"
	}
	return "unknown"
}

// MaxAxisPairs is the number of axis pairs tracked for each device: two
// sticks, the directional hat and the trigger pair.
const MaxAxisPairs = 4

// AxisEdges is the number of threshold tests for each axis pair. In order:
// negative x, positive x, positive y, negative y.
const AxisEdges = 4

// Device is a single entry in the registry.
type Device struct {
	// lowest index not used by another device with the same name
	DevID int
	Class Class

	// the host's identifier for the device
	OSID int32

	Name    string
	Type    TypeBits
	Subtype Subtype

	// map the first axis pair of a joystick to the directional pad
	MapJoystickAxis1ToDpad bool

	// index into the registry table. stable for the lifetime of the device
	idx int

	persistent bool
	axis       [MaxAxisPairs][AxisEdges]bool
}

func (d *Device) String() string {
	return fmt.Sprintf("%s #%d (%s)", d.Name, d.DevID, d.Type)
}

// Index of the device in the registry table.
func (d *Device) Index() int {
	return d.idx
}

// Is returns true if every bit in b is set for the device.
func (d *Device) Is(b TypeBits) bool {
	return d.Type&b == b
}

// AxisButton returns the stored state of an axis edge.
func (d *Device) AxisButton(pair int, edge int) bool {
	return d.axis[pair][edge]
}

// SetAxisButton stores the state of an axis edge.
func (d *Device) SetAxisButton(pair int, edge int, state bool) {
	d.axis[pair][edge] = state
}
