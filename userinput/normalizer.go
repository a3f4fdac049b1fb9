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
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/userinput/devices"
)

// axis values are compared against this threshold. there is no hysteresis
const axisThreshold = 0.5

// the host axes read for each axis pair
var axisPairs = [devices.MaxAxisPairs][2]int32{
	{platform.AxisX, platform.AxisY},
	{platform.AxisZ, platform.AxisRZ},
	{platform.AxisHatX, platform.AxisHatY},
	{platform.AxisLTrigger, platform.AxisRTrigger},
}

// key codes for each edge of each axis pair. the edge order is negative x,
// positive x, positive y, negative y. the trigger pair uses only the middle
// two edges
var axisButtons = [devices.MaxAxisPairs][devices.AxisEdges]Keycode{
	{KeyJS1XAxisNeg, KeyJS1XAxisPos, KeyJS1YAxisPos, KeyJS1YAxisNeg},
	{KeyJS2XAxisNeg, KeyJS2XAxisPos, KeyJS2YAxisPos, KeyJS2YAxisNeg},
	{KeyJS3XAxisNeg, KeyJS3XAxisPos, KeyJS3YAxisPos, KeyJS3YAxisNeg},
	{KeyUnknown, KeyJSLTriggerAxis, KeyJSRTriggerAxis, KeyUnknown},
}

// as above but the first pair is the directional pad
var axisButtonsDpad = [devices.MaxAxisPairs][devices.AxisEdges]Keycode{
	{KeyLeft, KeyRight, KeyDown, KeyUp},
	{KeyJS2XAxisNeg, KeyJS2XAxisPos, KeyJS2YAxisPos, KeyJS2YAxisNeg},
	{KeyJS3XAxisNeg, KeyJS3XAxisPos, KeyJS3YAxisPos, KeyJS3YAxisNeg},
	{KeyUnknown, KeyJSLTriggerAxis, KeyJSRTriggerAxis, KeyUnknown},
}

func edgeState(edge int, x, y float32) bool {
	switch edge {
	case 0:
		return x < -axisThreshold
	case 1:
		return x > axisThreshold
	case 2:
		return y > axisThreshold
	}
	return y < -axisThreshold
}

type remap struct {
	from Keycode
	meta int32
	to   Keycode
}

// key substitutions for devices with unusual conventions
var remaps = map[devices.Subtype][]remap{
	// the circle button is reported as escape with alt held
	devices.SubtypeXperiaPlay: {
		{from: KeyEscape, meta: platform.MetaAltOn, to: KeyGameB},
	},
}

func remapKey(dev *devices.Device, key Keycode, meta int32) Keycode {
	for _, r := range remaps[dev.Subtype] {
		if r.from == key && meta&r.meta == r.meta {
			return r.to
		}
	}
	return key
}

// Normalizer converts RawEvents into canonical events. It must only be used
// from the event loop goroutine.
type Normalizer struct {
	reg     *devices.Registry
	prefs   *Preferences
	handler HandleInput

	// if false the host can only report the position of the primary pointer
	// for joystick events and only one axis pair is tracked
	axisQuery bool

	// origin of the window's content rectangle
	origin platform.Rect
}

// NewNormalizer is the preferred method of initialisation for the Normalizer
// type. Default preferences are used if prefs is nil.
func NewNormalizer(reg *devices.Registry, caps platform.Capabilities, prefs *Preferences, handler HandleInput) (*Normalizer, error) {
	if !caps.AxisQuery {
		logger.Log(logger.Allow, "userinput", "no axis query. joystick input limited to the primary axis pair")
	}
	if prefs == nil {
		var err error
		prefs, err = NewPreferences("")
		if err != nil {
			return nil, err
		}
	}
	return &Normalizer{
		reg:       reg,
		prefs:     prefs,
		handler:   handler,
		axisQuery: caps.AxisQuery,
	}, nil
}

// SetHandler changes the receiver of canonical events.
func (n *Normalizer) SetHandler(handler HandleInput) {
	n.handler = handler
}

// Handler returns the receiver of canonical events. May be nil.
func (n *Normalizer) Handler() HandleInput {
	return n.handler
}

// SetContentRect sets the rectangle whose origin is subtracted from pointer
// positions.
func (n *Normalizer) SetContentRect(r platform.Rect) {
	n.origin = r
}

// Preferences returns the preferences used by the Normalizer.
func (n *Normalizer) Preferences() *Preferences {
	return n.prefs
}

func (n *Normalizer) emit(ev Event) {
	if n.handler != nil {
		n.handler.HandleEvent(ev)
	}
}

// Process a raw event. The return value is true if the event was consumed.
// The host must finish the event whatever the return value.
func (n *Normalizer) Process(ev *platform.RawEvent) bool {
	switch ev.Type {
	case platform.EventMotion:
		return n.motion(ev)
	case platform.EventKey:
		return n.key(ev)
	}
	logger.Logf(logger.Allow, "userinput", "unhandled input event type %d", ev.Type)
	return false
}

func (n *Normalizer) motion(ev *platform.RawEvent) bool {
	switch ev.Source {
	case platform.SourceTrackball:
		n.emit(EventTrackball{
			Action: ev.Action,
			X:      ev.X(0),
			Y:      ev.Y(0),
		})
		return true

	case platform.SourceTouchpad:
		return false

	case platform.SourceTouchscreen, platform.SourceMouse:
		return n.pointer(ev)

	case platform.SourceJoystick:
		return n.joystick(ev)
	}

	logger.Logf(logger.Allow, "userinput", "from other source: %s, %.0fx%.0f", platform.SourceName(ev.Source), ev.X(0), ev.Y(0))
	return false
}

func decodeAction(action int32) PointerAction {
	switch action {
	case platform.ActionDown, platform.ActionPointerDown:
		return PointerDown
	case platform.ActionUp, platform.ActionPointerUp, platform.ActionCancel:
		return PointerUp
	}
	return PointerMove
}

func (n *Normalizer) pointer(ev *platform.RawEvent) bool {
	if len(ev.Pointers) == 0 {
		return false
	}

	action := ev.Action & platform.ActionMask

	// the end of a gesture is reported once for the primary pointer
	if action == platform.ActionUp || action == platform.ActionCancel {
		n.emit(EventPointer{
			ID:     ev.Pointers[0].ID,
			Action: PointerUp,
			X:      int(ev.X(0)) - n.origin.X,
			Y:      int(ev.Y(0)) - n.origin.Y,
		})
		return true
	}

	// the pointer causing the action keeps the action. every other pointer is
	// a move
	actionIdx := int((ev.Action & platform.ActionPointerIndexMask) >> platform.ActionPointerIndexShift)

	for i, p := range ev.Pointers {
		a := PointerMove
		if i == actionIdx {
			a = decodeAction(action)
		}
		n.emit(EventPointer{
			ID:     p.ID,
			Action: a,
			X:      int(p.X) - n.origin.X,
			Y:      int(p.Y) - n.origin.Y,
		})
	}

	return true
}

func (n *Normalizer) joystick(ev *platform.RawEvent) bool {
	// joystick events are never attributed to the virtual device. doing so
	// would corrupt the axis state of that device
	dev := n.reg.Lookup(ev.DeviceID)
	if dev == nil {
		logger.Logf(logger.Allow, "userinput", "discarding joystick input from unknown device %d", ev.DeviceID)
		return false
	}

	buttons := &axisButtons
	if dev.MapJoystickAxis1ToDpad {
		buttons = &axisButtonsDpad
	}

	pairs := devices.MaxAxisPairs
	if !n.axisQuery {
		pairs = 1
	}

	for i := 0; i < pairs; i++ {
		var x, y float32
		if n.axisQuery {
			x = ev.Axes[axisPairs[i][0]]
			y = ev.Axes[axisPairs[i][1]]
		} else {
			x = ev.X(0)
			y = ev.Y(0)
		}

		for e := 0; e < devices.AxisEdges; e++ {
			if buttons[i][e] == KeyUnknown {
				continue
			}
			state := edgeState(e, x, y)
			if dev.AxisButton(i, e) != state {
				dev.SetAxisButton(i, e, state)
				n.emit(EventKey{
					Device: dev,
					Key:    buttons[i][e],
					Down:   state,
				})
			}
		}
	}

	return true
}

func (n *Normalizer) allowKeyRepeats() bool {
	if n.reg.MultiInputDevices() {
		return true
	}
	return n.prefs.AllowKeyRepeats.Get().(bool)
}

func (n *Normalizer) key(ev *platform.RawEvent) bool {
	key := Keycode(ev.KeyCode)
	if key == KeyUnknown {
		return false
	}

	if key == KeyVolumeUp || key == KeyVolumeDown {
		if !n.prefs.HandleVolumeKeys.Get().(bool) {
			return false
		}
	}

	// a disallowed repeat is consumed but not reported
	if ev.RepeatCount > 0 && !n.allowKeyRepeats() {
		return true
	}

	dev := n.reg.Lookup(ev.DeviceID)
	if dev == nil {
		dev = n.reg.Virtual()
	}
	if dev == nil {
		logger.Logf(logger.Allow, "userinput", "no device for key %s", key)
		return false
	}

	n.emit(EventKey{
		Device: dev,
		Key:    remapKey(dev, key, ev.MetaState),
		Down:   ev.KeyAction != platform.KeyActionUp,
		Shift:  ev.MetaState&platform.MetaShiftOn == platform.MetaShiftOn,
	})

	return true
}
