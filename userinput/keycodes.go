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

import "fmt"

// Keycode identifies a key. Values below KeyJS1XAxisNeg are the host's key
// codes. Values from KeyJS1XAxisNeg upwards are synthesised from joystick
// axes by the Normalizer.
type Keycode int32

// Host key codes with special meaning to the Normalizer.
const (
	KeyUnknown    Keycode = 0
	KeyUp         Keycode = 19
	KeyDown       Keycode = 20
	KeyLeft       Keycode = 21
	KeyRight      Keycode = 22
	KeyVolumeUp   Keycode = 24
	KeyVolumeDown Keycode = 25
	KeyGameA      Keycode = 96
	KeyGameB      Keycode = 97
	KeyEscape     Keycode = 111
)

// Joystick axis key codes.
const (
	KeyJS1XAxisNeg Keycode = iota + 0x1000
	KeyJS1XAxisPos
	KeyJS1YAxisNeg
	KeyJS1YAxisPos
	KeyJS2XAxisNeg
	KeyJS2XAxisPos
	KeyJS2YAxisNeg
	KeyJS2YAxisPos
	KeyJS3XAxisNeg
	KeyJS3XAxisPos
	KeyJS3YAxisNeg
	KeyJS3YAxisPos
	KeyJSLTriggerAxis
	KeyJSRTriggerAxis
)

var keyNames = map[Keycode]string{
	KeyUnknown:        "unknown",
	KeyUp:             "up",
	KeyDown:           "down",
	KeyLeft:           "left",
	KeyRight:          "right",
	KeyVolumeUp:       "volume up",
	KeyVolumeDown:     "volume down",
	KeyGameA:          "game a",
	KeyGameB:          "game b",
	KeyEscape:         "escape",
	KeyJS1XAxisNeg:    "js1 left",
	KeyJS1XAxisPos:    "js1 right",
	KeyJS1YAxisNeg:    "js1 up",
	KeyJS1YAxisPos:    "js1 down",
	KeyJS2XAxisNeg:    "js2 left",
	KeyJS2XAxisPos:    "js2 right",
	KeyJS2YAxisNeg:    "js2 up",
	KeyJS2YAxisPos:    "js2 down",
	KeyJS3XAxisNeg:    "js3 left",
	KeyJS3XAxisPos:    "js3 right",
	KeyJS3YAxisNeg:    "js3 up",
	KeyJS3YAxisPos:    "js3 down",
	KeyJSLTriggerAxis: "left trigger",
	KeyJSRTriggerAxis: "right trigger",
}

func (k Keycode) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("key %d", int32(k))
}

// IsAxis returns true if the key code was synthesised from a joystick axis.
func (k Keycode) IsAxis() bool {
	return k >= KeyJS1XAxisNeg && k <= KeyJSRTriggerAxis
}
