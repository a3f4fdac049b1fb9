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
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/userinput/devices"
	"github.com/veandco/go-sdl2/sdl"
)

// device IDs reported to the device registry. joysticks are numbered from
// joystickIDBase by their SDL instance ID
const (
	keyboardID     int32 = devices.BuiltinKeyboardOSID
	mouseID        int32 = 2
	touchID        int32 = 3
	joystickIDBase int32 = 16
)

// controller is an open SDL joystick.
type controller struct {
	joy     *sdl.Joystick
	name    string
	gamepad bool

	// the most recent value of every axis
	axes map[int32]float32
}

func (ctrl *controller) deviceID() int32 {
	return joystickIDBase + int32(ctrl.joy.InstanceID())
}

// Bridge implements the platform.Bridge interface for the devices known to
// SDL. The Host embeds a Bridge but a Bridge can also be opened on its own
// with OpenBridge().
type Bridge struct {
	joysticks map[sdl.JoystickID]*controller

	// the bridge initialised SDL and must quit it on close
	owner bool
}

func newBridge() *Bridge {
	return &Bridge{
		joysticks: make(map[sdl.JoystickID]*controller),
	}
}

// OpenBridge initialises the SDL joystick subsystem and opens every attached
// joystick. No window is created.
func OpenBridge() (*Bridge, error) {
	err := sdl.Init(sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	b := newBridge()
	b.owner = true
	b.openAll()

	return b, nil
}

// Close every joystick opened by the bridge.
func (b *Bridge) Close() {
	for id := range b.joysticks {
		b.closeJoystick(id)
	}
	if b.owner {
		b.owner = false
		sdl.Quit()
	}
}

func (b *Bridge) openAll() {
	for i := 0; i < sdl.NumJoysticks(); i++ {
		b.openJoystick(i)
	}
}

// openJoystick opens the joystick at the device index. returns false if the
// joystick was already open.
func (b *Bridge) openJoystick(index int) bool {
	if _, ok := b.joysticks[sdl.JoystickGetDeviceInstanceID(index)]; ok {
		return false
	}

	joy := sdl.JoystickOpen(index)
	if joy == nil || !joy.Attached() {
		logger.Logf(logger.Allow, "sdlplatform", "cannot open joystick %d", index)
		return false
	}

	ctrl := &controller{
		joy:     joy,
		name:    joy.Name(),
		gamepad: sdl.IsGameController(index),
		axes:    make(map[int32]float32),
	}
	b.joysticks[joy.InstanceID()] = ctrl

	if ctrl.gamepad {
		logger.Logf(logger.Allow, "sdlplatform", "gamepad: %s", ctrl.name)
	} else {
		logger.Logf(logger.Allow, "sdlplatform", "joystick: %s", ctrl.name)
	}

	return true
}

// closeJoystick closes the joystick with the instance ID. returns false if
// there was no joystick with that ID.
func (b *Bridge) closeJoystick(id sdl.JoystickID) bool {
	ctrl, ok := b.joysticks[id]
	if !ok {
		return false
	}
	logger.Logf(logger.Allow, "sdlplatform", "removed: %s", ctrl.name)
	ctrl.joy.Close()
	delete(b.joysticks, id)
	return true
}

// InputDevices implements the platform.Bridge interface.
func (b *Bridge) InputDevices() ([]platform.DeviceInfo, error) {
	l := []platform.DeviceInfo{
		{
			ID:           keyboardID,
			Name:         "SDL Keyboard",
			Sources:      platform.SourceKeyboard,
			KeyboardType: platform.KeyboardTypeAlphabetic,
		},
		{
			ID:      mouseID,
			Name:    "SDL Mouse",
			Sources: platform.SourceMouse,
		},
	}

	if sdl.GetNumTouchDevices() > 0 {
		l = append(l, platform.DeviceInfo{
			ID:      touchID,
			Name:    "SDL Touch",
			Sources: platform.SourceTouchscreen,
		})
	}

	var joys []platform.DeviceInfo
	for _, ctrl := range b.joysticks {
		info := platform.DeviceInfo{
			ID:           ctrl.deviceID(),
			Name:         strings.TrimSpace(ctrl.name),
			Sources:      platform.SourceJoystick,
			KeyboardType: platform.KeyboardTypeNonAlphabetic,
		}
		if ctrl.gamepad {
			info.Sources |= platform.SourceGamepad
		}
		joys = append(joys, info)
	}

	// map iteration order is random
	sort.Slice(joys, func(i, j int) bool {
		return joys[i].ID < joys[j].ID
	})

	return append(l, joys...), nil
}
