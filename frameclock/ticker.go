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
	"sync/atomic"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/performance/limiter"
	"github.com/jetsetilly/platformcore/platform"
	"golang.org/x/sys/unix"
)

// Ticker is a Pacer that produces frame boundaries at a fixed rate.
type Ticker struct {
	mux platform.Multiplexer
	fd  int
	lim *limiter.FpsLimiter

	frame func(timestampNanos int64)

	// armed is only accessed by the loop goroutine. active is read by the
	// ticker goroutine so that ticks are not signalled while disarmed
	armed  bool
	active atomic.Bool

	done chan bool
}

// NewTicker is the preferred method of initialisation for the Ticker type.
func NewTicker(mux platform.Multiplexer, framesPerSecond int) (*Ticker, error) {
	lim, err := limiter.NewFPSLimiter(framesPerSecond)
	if err != nil {
		return nil, curated.Errorf("frameclock: %v", err)
	}

	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		lim.Stop()
		return nil, curated.Errorf("frameclock: eventfd: %v", err)
	}

	tck := &Ticker{
		mux:  mux,
		fd:   fd,
		lim:  lim,
		done: make(chan bool),
	}

	if err := mux.Register(fd, platform.Readable, tck.tick); err != nil {
		lim.Stop()
		_ = unix.Close(fd)
		return nil, curated.Errorf("frameclock: %v", err)
	}

	go func() {
		defer close(tck.done)
		var b [8]byte
		binary.NativeEndian.PutUint64(b[:], 1)
		for {
			if _, ok := lim.Wait(); !ok {
				return
			}
			if tck.active.Load() {
				if _, err := unix.Write(fd, b[:]); err != nil {
					logger.Logf(logger.Allow, "frameclock", "ticker: %v", err)
				}
			}
		}
	}()

	return tck, nil
}

// SetFrameFunc implements the Pacer interface.
func (tck *Ticker) SetFrameFunc(f func(timestampNanos int64)) {
	tck.frame = f
}

// Arm implements the Pacer interface.
func (tck *Ticker) Arm() {
	tck.armed = true
	tck.active.Store(true)
}

// Disarm implements the Pacer interface.
func (tck *Ticker) Disarm() {
	tck.armed = false
	tck.active.Store(false)
}

// SetLimit changes the frame rate of the ticker.
func (tck *Ticker) SetLimit(framesPerSecond int) {
	tck.lim.SetLimit(framesPerSecond)
}

func (tck *Ticker) tick(fd int, ready platform.Interest) bool {
	var b [8]byte
	_, _ = unix.Read(fd, b[:])

	// ticks that arrive while disarmed are ignored
	if !tck.armed {
		return true
	}
	tck.Disarm()

	if tck.frame != nil {
		tck.frame(Now())
	}

	return true
}

// Close stops the ticker goroutine and removes the ticker from the
// multiplexer.
func (tck *Ticker) Close() error {
	if tck.fd < 0 {
		return nil
	}
	tck.lim.Stop()
	<-tck.done

	_ = tck.mux.Remove(tck.fd)
	err := unix.Close(tck.fd)
	tck.fd = -1
	if err != nil {
		return curated.Errorf("frameclock: %v", err)
	}
	return nil
}

// Now returns the current value of the monotonic clock in nanoseconds.
func Now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return ts.Nano()
}
