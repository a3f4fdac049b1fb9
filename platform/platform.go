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

import (
	"fmt"
	"time"
)

// Interest is a set of readiness conditions for a registered source.
type Interest uint32

// List of valid Interest flags.
const (
	Readable Interest = 1 << iota
	Writable
	Hangup
	Failure
)

func (i Interest) String() string {
	s := ""
	if i&Readable == Readable {
		s += "r"
	}
	if i&Writable == Writable {
		s += "w"
	}
	if i&Hangup == Hangup {
		s += "h"
	}
	if i&Failure == Failure {
		s += "e"
	}
	if s == "" {
		return "-"
	}
	return s
}

// SourceCallback is called on the loop goroutine when the file descriptor is
// ready. Returning false removes the source from the multiplexer.
type SourceCallback func(fd int, ready Interest) bool

// Multiplexer is the readiness multiplexer that drives the event loop. All
// callbacks are dispatched from a single goroutine and no two callbacks ever
// run concurrently.
type Multiplexer interface {
	Register(fd int, interest Interest, callback SourceCallback) error
	Remove(fd int) error
}

// Timer is returned by Timers.AfterFunc.
type Timer interface {
	// Stop the timer. Returns false if the timer has already fired or has
	// already been stopped.
	Stop() bool
}

// Timers schedules one-shot callbacks on the loop goroutine.
type Timers interface {
	AfterFunc(d time.Duration, f func()) (Timer, error)
}

// Rect is a rectangle in window coordinates. X2 and Y2 are exclusive.
type Rect struct {
	X, Y   int
	X2, Y2 int
}

func (r Rect) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", r.X, r.Y, r.X2, r.Y2)
}

// Width of the rectangle.
func (r Rect) Width() int {
	return r.X2 - r.X
}

// Height of the rectangle.
func (r Rect) Height() int {
	return r.Y2 - r.Y
}

// NativeWindow is the host's window handle. Width and Height can be negative
// if the host could not determine the size of the window.
type NativeWindow interface {
	Width() int
	Height() int
}

// RenderSurface is the graphics context and surface lifecycle.
type RenderSurface interface {
	// InitContext is called once for the lifetime of the process, with the
	// first valid window.
	InitContext(win NativeWindow) error

	// InitSurface is called for every subsequent window.
	InitSurface(win NativeWindow) error
	DestroySurface()

	Clear()
	SetViewport(r Rect)
}

// DeviceInfo is a single entry in the host's input device enumeration. An
// entry with an empty name is malformed.
type DeviceInfo struct {
	ID           int32
	Name         string
	Sources      uint32
	KeyboardType int32
}

// Bridge gives access to host services that the core needs but does not own.
type Bridge interface {
	InputDevices() ([]DeviceInfo, error)
}

// Capabilities of the host. Determined once at startup.
type Capabilities struct {
	// the host has an external frame pacing service. if false then frames
	// are triggered with a descriptor that the loop wakes on
	PushFrameClock bool

	// drain the input queue by calling GetEvent() until it reports no event.
	// if false then HasEvents() is used to decide when to stop
	GetEventDrain bool

	// the host can tell input devices apart. if false then every key event
	// is attributed to a single catch-all device
	MultiInputDevices bool

	// RawEvent.Axes is populated for joystick events. if false then the
	// pointer position is used as a substitute for the primary stick
	AxisQuery bool

	// directory to watch for device nodes being added or removed. an empty
	// string disables hot-plug detection
	HotplugDir string
}

// Configuration of the host as reported on startup and on every
// configuration change.
type Configuration struct {
	HardKeyboardHidden int
	NavigationHidden   int
	Keyboard           int
	Orientation        int
}

func (c Configuration) String() string {
	return fmt.Sprintf("keyboard: %s, navigation: %s, orientation: %d",
		HiddenState(c.HardKeyboardHidden), HiddenState(c.NavigationHidden), c.Orientation)
}

// List of values for Configuration.HardKeyboardHidden and
// Configuration.NavigationHidden.
const (
	HiddenAny = iota
	HiddenNo
	HiddenYes
	HiddenSoft
)

// HiddenState is used to print a hidden state value.
type HiddenState int

func (s HiddenState) String() string {
	switch s {
	case HiddenAny:
		return "undefined"
	case HiddenNo:
		return "shown"
	case HiddenYes:
		return "hidden"
	case HiddenSoft:
		return "soft"
	}
	return "unknown"
}
