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
	"strings"

	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
)

// quirk corrects the capabilities of a known problem device. the returned
// sources replace the sources reported by the host and isGamepad is false if
// the device should not be marked as a gamepad.
type quirk struct {
	match func(name string) bool
	apply func(r *Registry, dev *Device, sources uint32) (uint32, bool)
}

// quirks are only consulted for devices that look like gamepads.
var quirks = []quirk{
	{
		// the Xperia Play gamepad reports its circle button as escape+alt
		match: func(name string) bool { return strings.Contains(name, "-zeus") },
		apply: func(r *Registry, dev *Device, sources uint32) (uint32, bool) {
			logger.Log(r, "devices", "detected Xperia Play gamepad")
			dev.Subtype = SubtypeXperiaPlay
			return sources, true
		},
	},
	{
		// claims to be a gamepad and a full keyboard but has only special
		// function keys
		match: func(name string) bool { return name == "sii9234_rcp" },
		apply: func(r *Registry, dev *Device, sources uint32) (uint32, bool) {
			logger.Log(r, "devices", "ignoring extra device bits")
			return platform.SourceUnknown, false
		},
	},
	{
		match: func(name string) bool { return name == "Sony PLAYSTATION(R)3 Controller" },
		apply: func(r *Registry, dev *Device, sources uint32) (uint32, bool) {
			logger.Log(r, "devices", "detected PS3 gamepad")
			dev.Subtype = SubtypePS3Controller
			return sources, true
		},
	},
}

// classify sets the type bits and subtype of a new device from the sources
// reported by the host.
func (r *Registry) classify(dev *Device, info platform.DeviceInfo) {
	src := info.Sources

	// touchscreens that also claim to be gamepads are a known false positive
	if platform.HasSource(src, platform.SourceGamepad) && !platform.HasSource(src, platform.SourceTouchscreen) {
		isGamepad := true
		matched := false
		for _, q := range quirks {
			if q.match(info.Name) {
				src, isGamepad = q.apply(r, dev, src)
				matched = true
				break
			}
		}
		if !matched {
			logger.Log(r, "devices", "detected a gamepad")
		}
		if isGamepad {
			dev.Type |= TypeBitGamepad
		}
	}

	if platform.HasSource(src, platform.SourceKeyboard) {
		dev.Type |= TypeBitKeyboard
		if info.KeyboardType == platform.KeyboardTypeAlphabetic {
			dev.Type |= TypeBitKeyboardAlpha
			logger.Log(r, "devices", "detected an alpha-numeric keyboard")
		}
	}

	if platform.HasSource(src, platform.SourceJoystick) {
		dev.Type |= TypeBitJoystick
		logger.Log(r, "devices", "detected a joystick")
	}
}
