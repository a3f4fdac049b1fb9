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

// Package limiter produces a steady stream of ticks at a requested rate. The
// desktop frame pacer uses it as the source of frame boundaries.
package limiter

import (
	"fmt"
	"sync/atomic"
	"time"
)

// FpsLimiter ticks at a fixed number of frames per second. The ticker
// goroutine adjusts its sleep duration every frame to correct for drift.
type FpsLimiter struct {
	secondsPerFrame atomic.Int64

	tick chan time.Time
	quit chan bool
}

// NewFPSLimiter is the preferred method of initialisation for the FpsLimiter
// type. The ticker goroutine runs until Stop() is called.
func NewFPSLimiter(framesPerSecond int) (*FpsLimiter, error) {
	if framesPerSecond <= 0 {
		return nil, fmt.Errorf("limiter: invalid frame rate (%d)", framesPerSecond)
	}

	lim := &FpsLimiter{
		tick: make(chan time.Time),
		quit: make(chan bool),
	}
	lim.SetLimit(framesPerSecond)

	go func() {
		spf := time.Duration(lim.secondsPerFrame.Load())
		adjusted := spf
		t := time.Now()
		for {
			select {
			case lim.tick <- t:
			case <-lim.quit:
				return
			}

			select {
			case <-time.After(adjusted):
			case <-lim.quit:
				return
			}

			nt := time.Now()
			spf = time.Duration(lim.secondsPerFrame.Load())
			adjusted -= nt.Sub(t) - spf
			if adjusted < 0 {
				adjusted = 0
			}
			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the frame rate. Values less than or equal to zero are
// ignored.
func (lim *FpsLimiter) SetLimit(framesPerSecond int) {
	if framesPerSecond <= 0 {
		return
	}
	lim.secondsPerFrame.Store(int64(time.Second / time.Duration(framesPerSecond)))
}

// Wait for the next tick. Returns the time of the tick and false if the
// limiter has been stopped.
func (lim *FpsLimiter) Wait() (time.Time, bool) {
	select {
	case t := <-lim.tick:
		select {
		case <-lim.quit:
			return time.Time{}, false
		default:
		}
		return t, true
	case <-lim.quit:
		return time.Time{}, false
	}
}

// HasWaited returns true if a tick is ready. It never blocks.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// Stop the ticker goroutine. Must only be called once.
func (lim *FpsLimiter) Stop() {
	close(lim.quit)
}
