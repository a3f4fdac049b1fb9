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
	"fmt"
	"runtime"
	"time"

	"github.com/jetsetilly/platformcore/frameclock"
	"github.com/jetsetilly/platformcore/lifecycle"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/looper"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/platform/queue"
	"github.com/jetsetilly/platformcore/userinput/hotplug"
	"github.com/jetsetilly/platformcore/version"
	"github.com/veandco/go-sdl2/sdl"
)

// period between SDL event pumps
const pumpPeriod = 4 * time.Millisecond

// Options for the Host.
type Options struct {
	Title  string
	Width  int32
	Height int32

	// frames per second of the frame pacer. the refresh rate of the display
	// is used if zero
	FPS int

	// use the descriptor frame trigger rather than the frame pacer
	DescriptorTrigger bool

	// use the has-events input drain rather than the get-event drain
	HasEventsDrain bool

	// directory to watch for input devices. hot-plug watching is disabled if
	// the string is empty
	HotplugDir string
}

// DefaultOptions returns the options used when none are specified.
func DefaultOptions() Options {
	return Options{
		Title:      fmt.Sprintf("%s (%s)", version.ApplicationName, version.String()),
		Width:      1280,
		Height:     720,
		HotplugDir: hotplug.DefaultDir,
	}
}

// Host provides the collaborators required by the lifecycle coordinator. The
// embedded Bridge implements the platform.Bridge interface.
type Host struct {
	*Bridge

	loop *looper.Looper
	opts Options

	window  *sdl.Window
	surface *surface
	queue   *queue.Queue
	ticker  *frameclock.Ticker

	coord *lifecycle.Coordinator

	fingers   []platform.Pointer
	minimised bool

	pumpTimer platform.Timer
	closed    bool
}

// NewHost is the preferred method of initialisation for the Host type. The
// looper must be run on the same goroutine as the caller.
func NewHost(loop *looper.Looper, opts Options) (*Host, error) {
	// the SDL package calls LockOSThread() but we call it here too. it is
	// never unlocked
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER | sdl.INIT_EVENTS)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdlplatform", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	h := &Host{
		Bridge: newBridge(),
		loop:   loop,
		opts:   opts,
	}

	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	if h.opts.FPS <= 0 {
		mode, err := sdl.GetCurrentDisplayMode(0)
		if err != nil {
			h.Close()
			return nil, fmt.Errorf("sdl: %w", err)
		}
		logger.Logf(logger.Allow, "sdlplatform", "refresh rate: %dHz", mode.RefreshRate)
		h.opts.FPS = int(mode.RefreshRate)
		if h.opts.FPS <= 0 {
			h.opts.FPS = 60
		}
	}

	h.window, err = sdl.CreateWindow(opts.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		opts.Width, opts.Height,
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	h.surface = &surface{window: h.window}

	h.queue, err = queue.New()
	if err != nil {
		h.Close()
		return nil, err
	}
	h.queue.SetUnhandled(h.unhandled)

	if !opts.DescriptorTrigger {
		h.ticker, err = frameclock.NewTicker(loop, h.opts.FPS)
		if err != nil {
			h.Close()
			return nil, err
		}
	}

	h.openAll()

	return h, nil
}

// Caps returns the capabilities of the host.
func (h *Host) Caps() platform.Capabilities {
	return platform.Capabilities{
		PushFrameClock:    !h.opts.DescriptorTrigger,
		GetEventDrain:     !h.opts.HasEventsDrain,
		MultiInputDevices: true,
		AxisQuery:         true,
		HotplugDir:        h.opts.HotplugDir,
	}
}

// Surface returns the render surface of the host's window.
func (h *Host) Surface() platform.RenderSurface {
	return h.surface
}

// Pacer returns the frame pacer. Returns nil if the host was created with the
// DescriptorTrigger option.
func (h *Host) Pacer() frameclock.Pacer {
	if h.ticker == nil {
		return nil
	}
	return h.ticker
}

// FPS returns the frame rate of the frame pacer.
func (h *Host) FPS() int {
	return h.opts.FPS
}

// Swap the window's buffers. Called by the engine at the end of a frame.
func (h *Host) Swap() {
	h.window.GLSwap()
}

// Quit causes the looper to return.
func (h *Host) Quit() {
	h.loop.Quit()
}

// Start delivers the initial lifecycle callbacks to the coordinator and
// starts pumping SDL events.
func (h *Host) Start(coord *lifecycle.Coordinator) error {
	h.coord = coord

	coord.SetIdleEveryOther(len(h.joysticks) > 0)
	coord.InputQueueCreated(h.queue)
	coord.NativeWindowCreated(nativeWindow{window: h.window})
	coord.ConfigurationChanged(platform.Configuration{
		HardKeyboardHidden: platform.HiddenNo,
		NavigationHidden:   platform.HiddenNo,
	})

	return h.schedulePump()
}

func (h *Host) schedulePump() error {
	var err error
	h.pumpTimer, err = h.loop.AfterFunc(pumpPeriod, func() {
		h.pumpTimer = nil
		h.pump()
		if h.closed {
			return
		}
		if err := h.schedulePump(); err != nil {
			logger.Logf(logger.Allow, "sdlplatform", "event pump stopped: %v", err)
		}
	})
	return err
}

// unhandled is called for input events that were not consumed by the
// normaliser. volume keys are not consumed unless the preference is set.
func (h *Host) unhandled(ev *platform.RawEvent) {
	if ev.Type == platform.EventKey {
		logger.Logf(logger.Allow, "sdlplatform", "unhandled key %d from %s", ev.KeyCode, platform.SourceName(ev.Source))
	}
}

// Close the host. The coordinator should be destroyed first.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true

	if h.pumpTimer != nil {
		h.pumpTimer.Stop()
		h.pumpTimer = nil
	}

	h.Bridge.Close()

	if h.ticker != nil {
		if err := h.ticker.Close(); err != nil {
			logger.Logf(logger.Allow, "sdlplatform", "%v", err)
		}
	}
	if h.queue != nil {
		if err := h.queue.Close(); err != nil {
			logger.Logf(logger.Allow, "sdlplatform", "%v", err)
		}
	}
	if h.surface != nil {
		h.surface.destroy()
	}
	if h.window != nil {
		_ = h.window.Destroy()
		h.window = nil
	}

	sdl.Quit()
}
