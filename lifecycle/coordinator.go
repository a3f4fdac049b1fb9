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
	"os"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/frameclock"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/msgchan"
	"github.com/jetsetilly/platformcore/notifications"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/prefs"
	"github.com/jetsetilly/platformcore/userinput"
	"github.com/jetsetilly/platformcore/userinput/devices"
	"github.com/jetsetilly/platformcore/userinput/hotplug"
)

// Sentinal error patterns.
const (
	NegativeGeometry = "lifecycle: window has negative size %dx%d"
	NoDrawRequested  = "lifecycle: frame drawn without a draw request"
	NotDrawable      = "lifecycle: frame drawn without a surface"
	InitFailed       = "lifecycle: initialisation: %v"
	SurfaceFailed    = "lifecycle: surface: %v"
	MsgChanFailed    = "lifecycle: message channel: %v"
	NoPacer          = "lifecycle: push frame clock requested without a pacer"
)

// Config is the set of collaborators used by the Coordinator.
type Config struct {
	Mux     platform.Multiplexer
	Timers  platform.Timers
	Bridge  platform.Bridge
	Surface platform.RenderSurface
	Caps    platform.Capabilities

	// frame pacing service. required if Caps.PushFrameClock is true
	Pacer frameclock.Pacer

	// preferences. defaults are used if nil
	Input   *userinput.Preferences
	Hotplug *hotplug.Preferences

	// size of the device table. zero for the default
	DeviceCapacity int

	// optional observer
	Notify notifications.Notify

	// called on an unrecoverable condition. if nil the process exits after
	// writing the tail of the log to stderr
	Fatal func(error)
}

// Coordinator reconciles the host's lifecycle callbacks with the engine's
// frame loop. It must only be used from the event loop goroutine, with the
// exception of the Sender returned by Sender().
type Coordinator struct {
	mux     platform.Multiplexer
	timers  platform.Timers
	surface platform.RenderSurface
	caps    platform.Capabilities
	engine  Engine
	notify  notifications.Notify
	fatal   func(error)

	trigger    frameclock.Trigger
	msgs       *msgchan.Channel
	registry   *devices.Registry
	normalizer *userinput.Normalizer
	hotplug    *hotplug.Preferences
	coalescer  *hotplug.Coalescer
	watcher    *hotplug.Watcher

	state      AppState
	engineInit bool

	// resume was called without a surface. the engine is resumed when the
	// next surface is created
	resumeOnWindowInit bool

	window   platform.NativeWindow
	width    int
	height   int
	rect     platform.Rect
	hasFocus bool

	// the engine needs another frame
	dirty bool

	// a draw has been posted to the trigger
	drawPosted bool

	// apply the viewport on the next frame
	triggerViewport bool

	// called once after the next frame
	postFrame func()

	input inputState

	destroyed bool
}

// NewCoordinator is the preferred method of initialisation for the
// Coordinator type.
func NewCoordinator(cfg Config, engine Engine) (*Coordinator, error) {
	c := &Coordinator{
		mux:     cfg.Mux,
		timers:  cfg.Timers,
		surface: cfg.Surface,
		caps:    cfg.Caps,
		engine:  engine,
		notify:  cfg.Notify,
		fatal:   cfg.Fatal,
		hotplug: cfg.Hotplug,
	}

	if c.fatal == nil {
		c.fatal = exitOnFatal
	}

	var err error

	inputPrefs := cfg.Input
	if inputPrefs == nil {
		inputPrefs, err = userinput.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}
	if c.hotplug == nil {
		c.hotplug, err = hotplug.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	// message channel must exist before the hot-plug watcher
	c.msgs, err = msgchan.New(c.mux, c.dispatch)
	if err != nil {
		return nil, curated.Errorf(MsgChanFailed, err)
	}

	if c.caps.PushFrameClock {
		if cfg.Pacer == nil {
			c.msgs.Close()
			return nil, curated.Errorf(NoPacer)
		}
		c.trigger = frameclock.NewPush(cfg.Pacer, c.drawFrame)
	} else {
		c.trigger, err = frameclock.NewDescriptor(c.mux, c.drawFrame)
		if err != nil {
			c.msgs.Close()
			return nil, err
		}
	}
	logger.Logf(logger.Allow, "lifecycle", "using %s frame trigger", c.trigger.Kind())

	if c.caps.GetEventDrain {
		c.input.drain = &getEventDrain{}
	} else {
		c.input.drain = &hasEventsDrain{}
	}

	c.registry = devices.NewRegistry(cfg.Bridge, c.caps, cfg.DeviceCapacity)
	c.registry.SetChangeHandler(c.devicesChanged)
	if err := c.registry.Rescan(true); err != nil {
		logger.Logf(logger.Allow, "lifecycle", "%v", err)
	}

	handler, _ := engine.(userinput.HandleInput)
	c.normalizer, err = userinput.NewNormalizer(c.registry, c.caps, inputPrefs, handler)
	if err != nil {
		_ = c.trigger.Close()
		c.msgs.Close()
		return nil, err
	}

	// hot-plug messages can also be sent by the host so the coalescer exists
	// even when there is no directory to watch
	if c.caps.MultiInputDevices {
		c.coalescer = hotplug.NewCoalescer(c.timers, c.hotplug.Window(), c.rescanDevices)
		c.hotplug.CoalesceMS.SetHookPost(func(_ prefs.Value) error {
			c.coalescer.SetWindow(c.hotplug.Window())
			return nil
		})

		if c.caps.HotplugDir != "" {
			// hot-plug detection is not critical
			c.watcher, err = hotplug.NewWatcher(c.caps.HotplugDir, c.msgs.Sender())
			if err != nil {
				logger.Logf(logger.Allow, "lifecycle", "%v", err)
			}
		}
	}

	return c, nil
}

func exitOnFatal(err error) {
	logger.Log(logger.Allow, "lifecycle", err.Error())
	logger.Tail(os.Stderr, 20)
	os.Exit(1)
}

func (c *Coordinator) sendNotice(notice notifications.Notice) {
	if c.notify == nil {
		return
	}
	if err := c.notify.Notify(notice); err != nil {
		logger.Logf(logger.Allow, "lifecycle", "notification %s: %v", notice, err)
	}
}

// State returns the current application state.
func (c *Coordinator) State() AppState {
	return c.state
}

// Initialised returns true if the engine has been initialised.
func (c *Coordinator) Initialised() bool {
	return c.engineInit
}

// Drawable returns true if there is a surface to draw to.
func (c *Coordinator) Drawable() bool {
	return c.window != nil
}

// DrawPosted returns true if a draw is waiting to be executed.
func (c *Coordinator) DrawPosted() bool {
	return c.drawPosted
}

// Dirty returns true if the engine has asked for another frame.
func (c *Coordinator) Dirty() bool {
	return c.dirty
}

// HasFocus returns true if the window has input focus.
func (c *Coordinator) HasFocus() bool {
	return c.hasFocus
}

// Geometry returns the current window geometry.
func (c *Coordinator) Geometry() Geometry {
	return Geometry{
		Width:  c.width,
		Height: c.height,
		Rect:   c.contentRect(),
	}
}

// TriggerKind returns the kind of frame trigger in use.
func (c *Coordinator) TriggerKind() frameclock.Kind {
	return c.trigger.Kind()
}

// Registry returns the input device registry.
func (c *Coordinator) Registry() *devices.Registry {
	return c.registry
}

// Normalizer returns the input normaliser.
func (c *Coordinator) Normalizer() *userinput.Normalizer {
	return c.normalizer
}

// Sender returns the producer side of the message channel. The Sender can be
// used from any goroutine.
func (c *Coordinator) Sender() *msgchan.Sender {
	return c.msgs.Sender()
}

// SetIdleEveryOther causes the descriptor frame trigger to idle every other
// wake. Used when input descriptors other than the host's input queue are
// active. Has no effect with the push frame trigger.
func (c *Coordinator) SetIdleEveryOther(set bool) {
	if d, ok := c.trigger.(*frameclock.Descriptor); ok {
		d.SetIdleEveryOther(set)
	}
}

// Destroy the Coordinator. The engine is suspended for the final time and
// every descriptor owned by the Coordinator is closed.
func (c *Coordinator) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	logger.Log(logger.Allow, "lifecycle", "destroying")

	c.dirty = false
	c.cancelDraw()

	if c.input.queue != nil {
		c.detachInputQueue()
		c.input.queue = nil
	}

	if c.coalescer != nil {
		c.coalescer.Stop()
	}
	if c.watcher != nil {
		if err := c.watcher.Close(); err != nil {
			logger.Logf(logger.Allow, "lifecycle", "%v", err)
		}
	}

	if c.engineInit {
		c.engine.OnSuspend(true)
	}
	c.state = StatePaused

	if err := c.trigger.Close(); err != nil {
		logger.Logf(logger.Allow, "lifecycle", "%v", err)
	}
	if err := c.msgs.Close(); err != nil {
		logger.Logf(logger.Allow, "lifecycle", "%v", err)
	}

	c.sendNotice(notifications.NotifyDestroyed)
}
