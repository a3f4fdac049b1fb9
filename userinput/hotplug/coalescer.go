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

package hotplug

import (
	"time"

	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
)

// DefaultWindow is the default quiet period before a rescan.
const DefaultWindow = 250 * time.Millisecond

// Coalescer merges bursts of hot-plug notifications into a single rescan. It
// must only be used from the event loop goroutine.
type Coalescer struct {
	timers platform.Timers
	window time.Duration
	rescan func()

	// the pending timer. nil if no rescan is pending
	timer platform.Timer

	// number of notifications merged into the pending rescan
	count int
}

// NewCoalescer is the preferred method of initialisation for the Coalescer
// type. The rescan function is called on the event loop goroutine.
func NewCoalescer(timers platform.Timers, window time.Duration, rescan func()) *Coalescer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Coalescer{
		timers: timers,
		window: window,
		rescan: rescan,
	}
}

// SetWindow changes the quiet period. A pending rescan is not affected.
func (c *Coalescer) SetWindow(window time.Duration) {
	if window <= 0 {
		window = DefaultWindow
	}
	c.window = window
}

// Notify that a device may have been connected or disconnected. The quiet
// period restarts from now.
func (c *Coalescer) Notify() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.count++

	t, err := c.timers.AfterFunc(c.window, c.fire)
	if err != nil {
		logger.Logf(logger.Allow, "hotplug", "coalescing timer: %v. rescanning now", err)
		c.fire()
		return
	}
	c.timer = t
}

// Pending returns true if a rescan is waiting for the quiet period to end.
func (c *Coalescer) Pending() bool {
	return c.timer != nil
}

// Stop cancels any pending rescan.
func (c *Coalescer) Stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.count = 0
}

func (c *Coalescer) fire() {
	logger.Logf(logger.Allow, "hotplug", "rescanning after %d notification(s)", c.count)
	c.timer = nil
	c.count = 0
	if c.rescan != nil {
		c.rescan()
	}
}
