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

package sdlplatform

import (
	"github.com/jetsetilly/platformcore/platform"
	"github.com/veandco/go-sdl2/sdl"
)

// host key codes for SDL scancodes. the letters and digits are added by init()
var scancodes = map[sdl.Scancode]int32{
	sdl.SCANCODE_UP:         19,
	sdl.SCANCODE_DOWN:       20,
	sdl.SCANCODE_LEFT:       21,
	sdl.SCANCODE_RIGHT:      22,
	sdl.SCANCODE_VOLUMEUP:   24,
	sdl.SCANCODE_VOLUMEDOWN: 25,
	sdl.SCANCODE_TAB:        61,
	sdl.SCANCODE_SPACE:      62,
	sdl.SCANCODE_RETURN:     66,
	sdl.SCANCODE_BACKSPACE:  67,
	sdl.SCANCODE_ESCAPE:     111,
	sdl.SCANCODE_0:          7,
}

func init() {
	for i := sdl.Scancode(0); i < 26; i++ {
		scancodes[sdl.SCANCODE_A+i] = 29 + int32(i)
	}
	for i := sdl.Scancode(0); i < 9; i++ {
		scancodes[sdl.SCANCODE_1+i] = 8 + int32(i)
	}
}

// host key codes for joystick buttons. the button numbering is the same as
// the numbering used by SDL for XInput devices
var joyButtons = map[uint8]int32{
	0: 96,  // A
	1: 97,  // B
	2: 99,  // X
	3: 100, // Y
	4: 102, // left bumper
	5: 103, // right bumper
	6: 109, // back
	7: 108, // start
	8: 110, // guide
}

// joystick axis numbering for XInput devices
var joyAxes = map[uint8]int32{
	0: platform.AxisX,
	1: platform.AxisY,
	2: platform.AxisLTrigger,
	3: platform.AxisZ,
	4: platform.AxisRZ,
	5: platform.AxisRTrigger,
}

func metaState(mod uint16) int32 {
	var meta int32
	if mod&sdl.KMOD_LSHIFT == sdl.KMOD_LSHIFT || mod&sdl.KMOD_RSHIFT == sdl.KMOD_RSHIFT {
		meta |= platform.MetaShiftOn
	}
	if mod&sdl.KMOD_LALT == sdl.KMOD_LALT || mod&sdl.KMOD_RALT == sdl.KMOD_RALT {
		meta |= platform.MetaAltOn
	}
	return meta
}

// hat values as a pair of axis values
func hatAxes(value uint8) (float32, float32) {
	var x, y float32
	if value&sdl.HAT_LEFT == sdl.HAT_LEFT {
		x = -1
	} else if value&sdl.HAT_RIGHT == sdl.HAT_RIGHT {
		x = 1
	}
	if value&sdl.HAT_UP == sdl.HAT_UP {
		y = -1
	} else if value&sdl.HAT_DOWN == sdl.HAT_DOWN {
		y = 1
	}
	return x, y
}

// joystick axis value in the range -1.0 to 1.0
func axisValue(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768
	}
	return float32(v) / 32767
}
