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

package looper

import (
	"errors"
	"time"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/platform"
	"golang.org/x/sys/unix"
)

// timer is a one-shot timerfd registered with the looper.
type timer struct {
	l     *Looper
	fd    int
	fired bool
}

// AfterFunc implements the platform.Timers interface. The function is called
// on the loop goroutine once the duration has elapsed.
func (l *Looper) AfterFunc(d time.Duration, f func()) (platform.Timer, error) {
	if l.closed {
		return nil, curated.Errorf(Closed)
	}

	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		return nil, curated.Errorf("looper: timer: %v", err)
	}

	// a zero it_value disarms a timerfd so the shortest possible duration is
	// used instead
	if d <= 0 {
		d = time.Nanosecond
	}

	spec := unix.ItimerSpec{
		Value: unix.NsecToTimespec(d.Nanoseconds()),
	}
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		_ = unix.Close(fd)
		return nil, curated.Errorf("looper: timer: %v", err)
	}

	t := &timer{l: l, fd: fd}

	err = l.Register(fd, platform.Readable, func(fd int, _ platform.Interest) bool {
		// nothing to read means the timer has not expired
		var buf [8]byte
		if _, err := unix.Read(fd, buf[:]); errors.Is(err, unix.EAGAIN) {
			return true
		}
		t.fired = true
		t.release()
		f()
		return true
	})
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	l.sources[fd].timer = true

	return t, nil
}

// release removes the timer from the looper and closes the descriptor.
func (t *timer) release() {
	if t.fd < 0 {
		return
	}

	// the looper closes any remaining timer descriptors when it is closed
	if t.l.closed {
		t.fd = -1
		return
	}

	_ = t.l.Remove(t.fd)
	_ = unix.Close(t.fd)
	t.fd = -1
}

// Stop implements the platform.Timer interface.
func (t *timer) Stop() bool {
	if t.fired || t.fd < 0 {
		return false
	}
	t.release()
	return true
}
