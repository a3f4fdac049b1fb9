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
	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/logger"
)

// RequestDraw marks the engine as needing a frame and posts a draw if one is
// not already posted. A draw is only posted while the application is running
// and there is a surface to draw to. The request is remembered otherwise and
// posted when both conditions hold.
func (c *Coordinator) RequestDraw() {
	c.dirty = true
	c.postDraw()
}

// CancelDraw retracts a posted draw. It is safe to call when nothing is
// posted.
func (c *Coordinator) CancelDraw() {
	c.cancelDraw()
}

func (c *Coordinator) postDraw() {
	if c.drawPosted || c.window == nil || c.state != StateRunning || c.destroyed {
		return
	}
	if err := c.trigger.Post(); err != nil {
		logger.Logf(logger.Allow, "lifecycle", "%v", err)
		return
	}
	c.drawPosted = true
}

func (c *Coordinator) postDrawIfNeeded() {
	if c.dirty {
		c.postDraw()
	}
}

func (c *Coordinator) cancelDraw() {
	if !c.drawPosted {
		return
	}
	c.trigger.Cancel()
	c.drawPosted = false
}

// drawFrame is called by the frame trigger. returns true if the draw remains
// posted.
func (c *Coordinator) drawFrame(timestampNanos int64) bool {
	if !c.dirty {
		c.fatal(curated.Errorf(NoDrawRequested))
		c.drawPosted = false
		return false
	}
	if c.window == nil {
		c.fatal(curated.Errorf(NotDrawable))
		c.drawPosted = false
		return false
	}

	// some hosts are late reporting input. process any waiting events before
	// the frame to avoid a frame of latency
	c.drainInFrame()

	if c.triggerViewport {
		c.triggerViewport = false
		c.surface.SetViewport(c.contentRect())
	}

	c.dirty = c.engine.OnFrame(timestampNanos)

	if c.postFrame != nil {
		f := c.postFrame
		c.postFrame = nil
		f()
	}

	// the frame may have caused a pause or the surface to be destroyed
	if c.dirty && c.window != nil && c.state == StateRunning {
		c.drawPosted = true
		return true
	}

	c.drawPosted = false
	return false
}

// correctiveFrame is run after the frame that follows a geometry change. the
// host may have reported the geometry before the compositor honoured it.
func (c *Coordinator) correctiveFrame() {
	c.dirty = true
	c.postDraw()
	if !c.updateGeometry() {
		return
	}
	c.resized()
	c.triggerViewport = true
	logger.Logf(logger.Allow, "lifecycle", "extra window redraw, size %d,%d", c.width, c.height)
}
