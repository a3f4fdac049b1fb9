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

package lifecycle

import (
	"fmt"

	"github.com/jetsetilly/platformcore/msgchan"
	"github.com/jetsetilly/platformcore/platform"
)

// AppState is the state of the application as seen by the Coordinator.
type AppState int

// List of valid AppStates.
const (
	StateUninitialised AppState = iota
	StatePaused
	StateRunning
)

func (s AppState) String() string {
	switch s {
	case StateUninitialised:
		return "uninitialised"
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	}
	return "unknown"
}

// Geometry of the window as passed to Engine.OnResize().
type Geometry struct {
	Width  int
	Height int

	// the content rectangle. the area of the window not covered by host
	// decorations
	Rect platform.Rect
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d (%s)", g.Width, g.Height, g.Rect)
}

// Engine is the set of callbacks implemented by the application. All
// callbacks are made on the event loop goroutine.
type Engine interface {
	// called once for the lifetime of the process, after the render context
	// has been created
	OnInit() error

	// draw a frame. the timestamp is in monotonic nanoseconds and is zero if
	// the frame trigger has no timestamp. returns true if another frame
	// should be drawn
	OnFrame(timestampNanos int64) bool

	OnResize(geom Geometry)
	OnFocusChange(hasFocus bool)

	// final is true if the application is being destroyed
	OnSuspend(final bool)
	OnResume(hasFocus bool)
}

// ConfigAware is an optional interface for implementations of Engine.
type ConfigAware interface {
	// the hard keyboard state is one of the platform.Hidden values
	OnConfigurationChanged(hardKeyboard platform.HiddenState, orientation int)
}

// MessageHandler is an optional interface for implementations of Engine. It
// receives application messages and payload messages from the message
// channel.
type MessageHandler interface {
	OnMessage(m msgchan.Message)
}
