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
	"github.com/jetsetilly/platformcore/notifications"
	"github.com/jetsetilly/platformcore/platform"
)

// contentRect returns the content rectangle or the whole window if the host
// has not reported a content rectangle.
func (c *Coordinator) contentRect() platform.Rect {
	if c.rect == (platform.Rect{}) {
		return platform.Rect{X2: c.width, Y2: c.height}
	}
	return c.rect
}

// updateGeometry reads the size of the window. returns false if the size
// could not be read, in which case the fatal function has been called.
func (c *Coordinator) updateGeometry() bool {
	if c.window == nil {
		return false
	}

	w := c.window.Width()
	h := c.window.Height()
	if w < 0 || h < 0 {
		c.fatal(curated.Errorf(NegativeGeometry, w, h))
		return false
	}

	if w != c.width || h != c.height {
		logger.Logf(logger.Allow, "lifecycle", "set window size %d,%d", w, h)
	}
	c.width = w
	c.height = h

	return true
}

// resized tells the engine about the current geometry. the viewport is
// applied on the next frame.
func (c *Coordinator) resized() {
	c.triggerViewport = true
	c.normalizer.SetContentRect(c.contentRect())
	if c.engineInit {
		c.engine.OnResize(c.Geometry())
	}
	c.sendNotice(notifications.NotifyGeometryChanged)
}

func (c *Coordinator) initWindow(win platform.NativeWindow) {
	if !c.engineInit {
		logger.Log(logger.Allow, "lifecycle", "doing window & gfx context init")
		c.state = StateRunning

		if !c.updateGeometry() {
			return
		}
		if err := c.surface.InitContext(win); err != nil {
			c.fatal(curated.Errorf(InitFailed, err))
			return
		}
		if err := c.engine.OnInit(); err != nil {
			c.fatal(curated.Errorf(InitFailed, err))
			return
		}
		c.engineInit = true
		c.resized()

		logger.Log(logger.Allow, "lifecycle", "done init")
		c.sendNotice(notifications.NotifyInitialised)

		if c.input.queue != nil {
			logger.Log(logger.Allow, "lifecycle", "attaching input queue")
			c.attachInputQueue()
		}
	} else {
		logger.Logf(logger.Allow, "lifecycle", "doing window init, size %d,%d", win.Width(), win.Height())
		if err := c.surface.InitSurface(win); err != nil {
			c.fatal(curated.Errorf(SurfaceFailed, err))
			return
		}
		if !c.updateGeometry() {
			return
		}
		c.resized()

		if c.resumeOnWindowInit {
			logger.Log(logger.Allow, "lifecycle", "running delayed resume")
			c.resumeOnWindowInit = false
			c.engine.OnResume(c.hasFocus)
			c.dirty = true
			c.sendNotice(notifications.NotifyResumed)
		}
	}

	c.surface.Clear()
}

// NativeWindowCreated is called by the host when a window with a valid surface
// has been created. The first call initialises the engine.
func (c *Coordinator) NativeWindowCreated(win platform.NativeWindow) {
	c.window = win
	c.initWindow(win)
	c.sendNotice(notifications.NotifySurfaceCreated)
	c.dirty = true
	c.postDraw()
}

// NativeWindowDestroyed is called by the host when the window's surface is
// about to be destroyed. No frame is drawn until a new window is created.
func (c *Coordinator) NativeWindowDestroyed() {
	if c.engineInit {
		c.surface.DestroySurface()
	}
	c.window = nil
	c.dirty = false
	c.cancelDraw()
	c.sendNotice(notifications.NotifySurfaceDestroyed)
}

// NativeWindowResized is called by the host when the window changes size. As
// with NativeWindowRedrawNeeded an extra frame follows the next frame.
func (c *Coordinator) NativeWindowResized() {
	if c.window == nil {
		logger.Log(logger.Allow, "lifecycle", "window resized without a surface")
		return
	}
	logger.Log(logger.Allow, "lifecycle", "window resized")
	c.dirty = true
	c.postDraw()
	if !c.updateGeometry() {
		return
	}
	c.resized()
	c.postFrame = c.correctiveFrame
	c.postDrawIfNeeded()
}

// NativeWindowRedrawNeeded is called by the host when the window must be
// redrawn. An extra frame is drawn after the next frame because the host may
// ask for the redraw too early during an orientation change.
func (c *Coordinator) NativeWindowRedrawNeeded() {
	if c.window == nil {
		logger.Log(logger.Allow, "lifecycle", "redraw needed without a surface")
		return
	}
	c.dirty = true
	c.postDraw()
	c.postFrame = c.correctiveFrame
	logger.Logf(logger.Allow, "lifecycle", "window redraw, size %d,%d", c.width, c.height)
	c.postDrawIfNeeded()
}

// ContentRectChanged is called by the host when the area of the window not
// covered by host decorations changes. The viewport is not updated until the
// corrective frame that follows the next frame. The host can report a
// transient rectangle during an animation or before the compositor has caught
// up.
func (c *Coordinator) ContentRectChanged(rect platform.Rect) {
	c.rect = rect
	if c.window == nil {
		logger.Logf(logger.Allow, "lifecycle", "content rect changed to %s, no valid surface", rect)
		return
	}

	c.dirty = true
	c.postDraw()
	if !c.updateGeometry() {
		return
	}
	c.resized()

	c.triggerViewport = false
	c.postFrame = c.correctiveFrame

	logger.Logf(logger.Allow, "lifecycle", "content rect changed to %s, window size %d,%d", rect, c.width, c.height)
}

// FocusChanged is called by the host when the window gains or loses input
// focus.
func (c *Coordinator) FocusChanged(hasFocus bool) {
	c.hasFocus = hasFocus
	logger.Logf(logger.Allow, "lifecycle", "focus change: %v", hasFocus)
	if hasFocus && c.window != nil {
		c.dirty = true
	}
	if c.engineInit {
		c.engine.OnFocusChange(hasFocus)
	}
	c.postDrawIfNeeded()
}

// Resume is called by the host when the application is brought to the
// foreground. Ignored until the engine has been initialised.
func (c *Coordinator) Resume() {
	if !c.engineInit {
		logger.Log(logger.Allow, "lifecycle", "resume before init")
		return
	}

	c.state = StateRunning
	if c.window != nil {
		logger.Log(logger.Allow, "lifecycle", "app resumed")
		c.engine.OnResume(c.hasFocus)
		c.dirty = true
		c.sendNotice(notifications.NotifyResumed)
	} else {
		logger.Log(logger.Allow, "lifecycle", "app resumed without window, delaying resume")
		c.resumeOnWindowInit = true
	}
	c.postDrawIfNeeded()
}

// Pause is called by the host when the application is sent to the
// background. Ignored until the engine has been initialised.
func (c *Coordinator) Pause() {
	if !c.engineInit {
		logger.Log(logger.Allow, "lifecycle", "pause before init")
		return
	}

	logger.Log(logger.Allow, "lifecycle", "app paused")
	c.state = StatePaused
	c.engine.OnSuspend(false)
	c.dirty = false
	c.cancelDraw()
	c.sendNotice(notifications.NotifySuspended)
}

// ConfigurationChanged is called by the host when its configuration changes.
func (c *Coordinator) ConfigurationChanged(cfg platform.Configuration) {
	logger.Logf(logger.Allow, "lifecycle", "config change, %s", cfg)

	// the Xperia Play reports the state of the gamepad slider as the
	// navigation state
	hardKeyboard := platform.HiddenState(cfg.HardKeyboardHidden)
	if c.hasXperiaPlay() {
		hardKeyboard = platform.HiddenState(cfg.NavigationHidden)
	}

	if ca, ok := c.engine.(ConfigAware); ok && c.engineInit {
		ca.OnConfigurationChanged(hardKeyboard, cfg.Orientation)
	}
	c.postDrawIfNeeded()
}
