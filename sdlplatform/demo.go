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
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/platformcore/lifecycle"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/msgchan"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/userinput"
	"github.com/jetsetilly/platformcore/userinput/devices"
)

// MsgNextColour is the application message that causes the demo to move to the
// next colour in its palette.
const MsgNextColour = msgchan.MsgStart

type colour [3]float32

var palette = []colour{
	{0.10, 0.10, 0.18},
	{0.55, 0.15, 0.15},
	{0.15, 0.45, 0.20},
	{0.15, 0.25, 0.60},
	{0.60, 0.50, 0.10},
}

// the fraction of the remaining distance covered each frame
const fadeRate = 0.15

// Demo is an engine that fills the window with a colour. The colour fades
// towards a target colour chosen by input events. A frame is only requested
// while the fade is in progress.
type Demo struct {
	host  *Host
	coord *lifecycle.Coordinator

	geom    lifecycle.Geometry
	current colour
	target  colour
	index   int

	frames int
}

// NewDemo is the preferred method of initialisation for the Demo type.
func NewDemo(host *Host) *Demo {
	return &Demo{
		host:    host,
		current: palette[0],
		target:  palette[0],
	}
}

// Attach the coordinator that the demo requests frames from.
func (d *Demo) Attach(coord *lifecycle.Coordinator) {
	d.coord = coord
}

// Frames returns the number of frames drawn.
func (d *Demo) Frames() int {
	return d.frames
}

func (d *Demo) OnInit() error {
	logger.Log(logger.Allow, "demo", "initialised")
	return nil
}

func (d *Demo) OnFrame(timestampNanos int64) bool {
	d.frames++

	settled := true
	for i := range d.current {
		diff := d.target[i] - d.current[i]
		if diff > 0.002 || diff < -0.002 {
			d.current[i] += diff * fadeRate
			settled = false
		} else {
			d.current[i] = d.target[i]
		}
	}

	gl.ClearColor(d.current[0], d.current[1], d.current[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	d.host.Swap()

	return !settled
}

func (d *Demo) OnResize(geom lifecycle.Geometry) {
	d.geom = geom
	logger.Logf(logger.Allow, "demo", "geometry %s", geom)
}

func (d *Demo) OnFocusChange(hasFocus bool) {
	logger.Logf(logger.Allow, "demo", "focus %v", hasFocus)
}

func (d *Demo) OnSuspend(final bool) {
	logger.Logf(logger.Allow, "demo", "suspended after %d frames (final %v)", d.frames, final)
}

func (d *Demo) OnResume(hasFocus bool) {
	logger.Logf(logger.Allow, "demo", "resumed (focus %v)", hasFocus)
}

func (d *Demo) OnConfigurationChanged(hardKeyboard platform.HiddenState, orientation int) {
	logger.Logf(logger.Allow, "demo", "keyboard %s, orientation %d", hardKeyboard, orientation)
}

func (d *Demo) OnMessage(m msgchan.Message) {
	if m.Type == MsgNextColour {
		d.next(1)
		return
	}
	logger.Logf(logger.Allow, "demo", "ignored %s", m)
}

func (d *Demo) HandleEvent(ev userinput.Event) {
	switch ev := ev.(type) {
	case userinput.EventKey:
		if !ev.Down {
			return
		}
		switch ev.Key {
		case userinput.KeyEscape, userinput.KeyGameB:
			d.host.Quit()
		case userinput.KeyRight, userinput.KeyDown, userinput.KeyJS1XAxisPos, userinput.KeyGameA:
			d.next(1)
		case userinput.KeyLeft, userinput.KeyUp, userinput.KeyJS1XAxisNeg:
			d.next(-1)
		}

	case userinput.EventPointer:
		if ev.Action != userinput.PointerDown || d.geom.Rect.Width() <= 0 {
			return
		}

		// the horizontal position selects the palette entry
		d.index = ev.X * len(palette) / d.geom.Rect.Width()
		d.next(0)
	}
}

func (d *Demo) HandleDeviceChange(c devices.Change) {
	if d.coord == nil {
		return
	}
	for _, dev := range d.coord.Registry().Devices() {
		logger.Logf(logger.Allow, "demo", "device %s", dev)
	}
}

// next moves the palette index and requests a frame.
func (d *Demo) next(step int) {
	d.index = (d.index + step + len(palette)) % len(palette)
	if d.index < 0 {
		d.index = 0
	}
	d.target = palette[d.index]
	if d.coord != nil {
		d.coord.RequestDraw()
	}
}
