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

package platform

// EventType of a RawEvent.
type EventType int

// List of valid EventTypes.
const (
	EventKey EventType = iota + 1
	EventMotion
)

// Input source classes.
const (
	SourceClassButton    uint32 = 0x00000001
	SourceClassPointer   uint32 = 0x00000002
	SourceClassTrackball uint32 = 0x00000004
	SourceClassPosition  uint32 = 0x00000008
	SourceClassJoystick  uint32 = 0x00000010
)

// Input sources. A source is a class plus an identifying bit so a device that
// reports SourceGamepad also reports SourceClassButton.
const (
	SourceUnknown     uint32 = 0x00000000
	SourceKeyboard    uint32 = 0x00000101
	SourceDPad        uint32 = 0x00000201
	SourceGamepad     uint32 = 0x00000401
	SourceTouchscreen uint32 = 0x00001002
	SourceMouse       uint32 = 0x00002002
	SourceStylus      uint32 = 0x00004002
	SourceTrackball   uint32 = 0x00010004
	SourceTouchpad    uint32 = 0x00100008
	SourceJoystick    uint32 = 0x01000010
)

// SourceName returns a printable name for a single source value.
func SourceName(source uint32) string {
	switch source {
	case SourceUnknown:
		return "Unknown"
	case SourceKeyboard:
		return "Keyboard"
	case SourceDPad:
		return "DPad"
	case SourceTouchscreen:
		return "Touchscreen"
	case SourceMouse:
		return "Mouse"
	case SourceTrackball:
		return "Trackball"
	case SourceTouchpad:
		return "Touchpad"
	case SourceJoystick:
		return "Joystick"
	}
	return "Unhandled value"
}

// HasSource returns true if every bit of source is set in mask.
func HasSource(mask uint32, source uint32) bool {
	return mask&source == source
}

// Keyboard types reported in DeviceInfo.
const (
	KeyboardTypeNone          int32 = 0
	KeyboardTypeNonAlphabetic int32 = 1
	KeyboardTypeAlphabetic    int32 = 2
)

// Motion actions. The pointer index of a PointerDown or PointerUp action is
// encoded in the bits covered by ActionPointerIndexMask.
const (
	ActionDown        int32 = 0
	ActionUp          int32 = 1
	ActionMove        int32 = 2
	ActionCancel      int32 = 3
	ActionOutside     int32 = 4
	ActionPointerDown int32 = 5
	ActionPointerUp   int32 = 6

	ActionMask              int32 = 0xff
	ActionPointerIndexMask  int32 = 0xff00
	ActionPointerIndexShift       = 8
)

// Key actions.
const (
	KeyActionDown int32 = 0
	KeyActionUp   int32 = 1
)

// Meta state flags.
const (
	MetaShiftOn int32 = 0x01
	MetaAltOn   int32 = 0x02
)

// Joystick axis identifiers used as keys in RawEvent.Axes.
const (
	AxisX        int32 = 0
	AxisY        int32 = 1
	AxisZ        int32 = 11
	AxisRZ       int32 = 14
	AxisHatX     int32 = 15
	AxisHatY     int32 = 16
	AxisLTrigger int32 = 17
	AxisRTrigger int32 = 18
)

// Pointer is the position of a single pointer in a motion event.
type Pointer struct {
	ID   int32
	X, Y float32
}

// RawEvent is an input event as reported by the host.
type RawEvent struct {
	Type     EventType
	Source   uint32
	DeviceID int32

	// motion events
	Action   int32
	Pointers []Pointer
	Axes     map[int32]float32

	// key events
	KeyCode     int32
	KeyAction   int32
	RepeatCount int32
	MetaState   int32

	// the host can use this field to associate the event with its own
	// representation. the core does not touch it
	Handle any
}

// X returns the x position of pointer i or zero if there is no such pointer.
func (ev *RawEvent) X(i int) float32 {
	if i < len(ev.Pointers) {
		return ev.Pointers[i].X
	}
	return 0
}

// Y returns the y position of pointer i or zero if there is no such pointer.
func (ev *RawEvent) Y(i int) float32 {
	if i < len(ev.Pointers) {
		return ev.Pointers[i].Y
	}
	return 0
}

// InputQueue is the host's queue of input events.
type InputQueue interface {
	// the descriptor that becomes readable when events are waiting
	Fd() int

	// GetEvent returns the next event or false if there is no event
	GetEvent() (*RawEvent, bool)

	// HasEvents returns 1 if events are waiting, 0 if not and a negative
	// value on error
	HasEvents() int

	// PreDispatch offers the event to the host's input method. if it returns
	// true then the host has taken the event and it must not be finished
	PreDispatch(ev *RawEvent) bool

	// Finish must be called for every event not taken by PreDispatch
	Finish(ev *RawEvent, handled bool)
}
