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

import (
	"encoding/binary"
	"errors"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
	"golang.org/x/sys/unix"
)

// Descriptor is the level-signalled Trigger implementation.
type Descriptor struct {
	mux  platform.Multiplexer
	fd   int
	draw DrawFunc

	// number of wakes to ignore
	idle int

	// idle every other wake
	idleEveryOther bool
}

// NewDescriptor is the preferred method of initialisation for the Descriptor
// type. The eventfd is registered with the multiplexer immediately.
func NewDescriptor(mux platform.Multiplexer, draw DrawFunc) (*Descriptor, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, curated.Errorf("frameclock: eventfd: %v", err)
	}

	d := &Descriptor{
		mux:  mux,
		fd:   fd,
		draw: draw,
	}

	if err := mux.Register(fd, platform.Readable, d.wake); err != nil {
		_ = unix.Close(fd)
		return nil, curated.Errorf("frameclock: %v", err)
	}

	return d, nil
}

// Kind implements the Trigger interface.
func (d *Descriptor) Kind() Kind {
	return KindDescriptor
}

// Post implements the Trigger interface.
func (d *Descriptor) Post() error {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], 1)
	if _, err := unix.Write(d.fd, b[:]); err != nil {
		return curated.Errorf("frameclock: post: %v", err)
	}
	return nil
}

// drain the eventfd counter. returns false if the counter was already zero.
func (d *Descriptor) drain() bool {
	var b [8]byte
	_, err := unix.Read(d.fd, b[:])
	if err != nil {
		if !errors.Is(err, unix.EAGAIN) {
			logger.Logf(logger.Allow, "frameclock", "drain: %v", err)
		}
		return false
	}
	return true
}

// Cancel implements the Trigger interface.
func (d *Descriptor) Cancel() {
	d.drain()

	// the loop may already have a readiness event for the descriptor
	d.idle = 1
	logger.Log(logger.Allow, "frameclock", "canceled draw")
}

// SetIdleEveryOther causes the trigger to ignore every other wake. This gives
// other input descriptors a chance to be serviced between frames.
func (d *Descriptor) SetIdleEveryOther(set bool) {
	d.idleEveryOther = set
}

// the descriptor's callback behaves as an idle handler so that input
// descriptors are serviced in a timely manner.
func (d *Descriptor) wake(fd int, ready platform.Interest) bool {
	if d.idle > 0 {
		d.idle--
		return true
	}

	if d.idleEveryOther {
		d.idle = 1
	}

	if !d.draw(0) {
		d.drain()
	}

	return true
}

// Close implements the Trigger interface.
func (d *Descriptor) Close() error {
	if d.fd < 0 {
		return nil
	}
	_ = d.mux.Remove(d.fd)
	err := unix.Close(d.fd)
	d.fd = -1
	if err != nil {
		return curated.Errorf("frameclock: %v", err)
	}
	return nil
}
