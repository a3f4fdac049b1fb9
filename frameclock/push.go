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

package frameclock

// Pacer is an external frame pacing service. Once armed, the pacer calls the
// frame function on the loop goroutine at the next frame boundary and then
// disarms itself.
type Pacer interface {
	Arm()
	Disarm()
	SetFrameFunc(f func(timestampNanos int64))
}

// Push is the Trigger implementation driven by a Pacer.
type Push struct {
	pacer Pacer
	draw  DrawFunc
}

// NewPush is the preferred method of initialisation for the Push type.
func NewPush(pacer Pacer, draw DrawFunc) *Push {
	p := &Push{
		pacer: pacer,
		draw:  draw,
	}
	pacer.SetFrameFunc(p.frame)
	return p
}

// Kind implements the Trigger interface.
func (p *Push) Kind() Kind {
	return KindPush
}

// Post implements the Trigger interface.
func (p *Push) Post() error {
	p.pacer.Arm()
	return nil
}

// Cancel implements the Trigger interface.
func (p *Push) Cancel() {
	p.pacer.Disarm()
}

// Close implements the Trigger interface. The pacer is disarmed but not
// closed because the trigger does not own it.
func (p *Push) Close() error {
	p.pacer.Disarm()
	return nil
}

func (p *Push) frame(timestampNanos int64) {
	if p.draw(timestampNanos) {
		p.pacer.Arm()
	}
}
