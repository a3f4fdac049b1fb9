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

package platform_test

import (
	"testing"

	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/test"
)

func TestSources(t *testing.T) {
	// a gamepad is also a button class source
	test.ExpectSuccess(t, platform.HasSource(platform.SourceGamepad, platform.SourceClassButton))
	test.ExpectFailure(t, platform.HasSource(platform.SourceClassButton, platform.SourceGamepad))

	// touchscreen is not a gamepad even though both share pointer/button bits
	test.ExpectFailure(t, platform.HasSource(platform.SourceTouchscreen, platform.SourceGamepad))

	test.ExpectEquality(t, platform.SourceName(platform.SourceJoystick), "Joystick")
	test.ExpectEquality(t, platform.SourceName(0x12345), "Unhandled value")
}

func TestRect(t *testing.T) {
	r := platform.Rect{X: 10, Y: 20, X2: 810, Y2: 620}
	test.ExpectEquality(t, r.Width(), 800)
	test.ExpectEquality(t, r.Height(), 600)
	test.ExpectEquality(t, r.String(), "10:20:810:620")
}

func TestInterest(t *testing.T) {
	test.ExpectEquality(t, (platform.Readable | platform.Hangup).String(), "rh")
	test.ExpectEquality(t, platform.Interest(0).String(), "-")
}

func TestRawEventPointers(t *testing.T) {
	ev := platform.RawEvent{
		Pointers: []platform.Pointer{{ID: 0, X: 1, Y: 2}},
	}
	test.ExpectEquality(t, ev.X(0), float32(1))
	test.ExpectEquality(t, ev.Y(0), float32(2))
	test.ExpectEquality(t, ev.X(1), float32(0))
}
