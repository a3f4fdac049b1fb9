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
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
)

// inputDrain is the strategy used to take events from the input queue.
type inputDrain interface {
	// drain is called when the input queue's descriptor is ready
	drain(q platform.InputQueue, handle func(*platform.RawEvent))

	// inFrame is called at the start of every frame. returns true if events
	// were processed
	inFrame(q platform.InputQueue, handle func(*platform.RawEvent)) bool
}

// getEventDrain takes events until the queue reports that there are none.
type getEventDrain struct{}

func (d *getEventDrain) drain(q platform.InputQueue, handle func(*platform.RawEvent)) {
	for {
		ev, ok := q.GetEvent()
		if !ok {
			return
		}
		handle(ev)
	}
}

// the has-events query is not used by hosts with this strategy.
func (d *getEventDrain) inFrame(q platform.InputQueue, handle func(*platform.RawEvent)) bool {
	return false
}

// hasEventsDrain uses the has-events query to decide when to stop.
type hasEventsDrain struct {
	// events were processed at the start of the last frame. the queue's
	// descriptor may still be ready for those events
	processedInFrame bool
}

func (d *hasEventsDrain) drain(q platform.InputQueue, handle func(*platform.RawEvent)) {
	if d.processedInFrame {
		d.processedInFrame = false
		return
	}
	d.take(q, handle)
}

// take one event unconditionally and then continue while the queue reports
// more events.
func (d *hasEventsDrain) take(q platform.InputQueue, handle func(*platform.RawEvent)) {
	ev, ok := q.GetEvent()
	if ok {
		handle(ev)
	}

	for {
		n := q.HasEvents()
		if n < 0 {
			logger.Logf(logger.Allow, "lifecycle", "error %d in has-events query", n)
			return
		}
		if n != 1 {
			return
		}
		ev, ok := q.GetEvent()
		if !ok {
			return
		}
		handle(ev)
	}
}

func (d *hasEventsDrain) inFrame(q platform.InputQueue, handle func(*platform.RawEvent)) bool {
	if q.HasEvents() == 1 {
		d.take(q, handle)
		d.processedInFrame = true
		return true
	}
	d.processedInFrame = false
	return false
}

type inputState struct {
	queue    platform.InputQueue
	attached bool
	drain    inputDrain
}

// InputQueueCreated is called by the host when the input queue is available.
// The queue is attached to the event loop once the engine has been
// initialised.
func (c *Coordinator) InputQueueCreated(q platform.InputQueue) {
	c.input.queue = q
	if c.engineInit {
		logger.Log(logger.Allow, "lifecycle", "input queue created, attaching to loop")
		c.attachInputQueue()
	} else {
		logger.Log(logger.Allow, "lifecycle", "input queue created, waiting for initial window creation to attach")
	}
}

// InputQueueDestroyed is called by the host when the input queue is about to
// be destroyed.
func (c *Coordinator) InputQueueDestroyed() {
	logger.Log(logger.Allow, "lifecycle", "input queue destroyed")
	c.detachInputQueue()
	c.input.queue = nil
}

func (c *Coordinator) attachInputQueue() {
	if c.input.attached || c.input.queue == nil {
		return
	}
	if err := c.mux.Register(c.input.queue.Fd(), platform.Readable, c.inputReady); err != nil {
		logger.Logf(logger.Allow, "lifecycle", "attaching input queue: %v", err)
		return
	}
	c.input.attached = true
}

func (c *Coordinator) detachInputQueue() {
	if !c.input.attached {
		return
	}
	if err := c.mux.Remove(c.input.queue.Fd()); err != nil {
		logger.Logf(logger.Allow, "lifecycle", "detaching input queue: %v", err)
	}
	c.input.attached = false
}

func (c *Coordinator) inputReady(fd int, ready platform.Interest) bool {
	if c.input.queue == nil {
		return false
	}
	c.input.drain.drain(c.input.queue, c.handleInputEvent)
	c.postDrawIfNeeded()
	return true
}

func (c *Coordinator) drainInFrame() {
	if !c.input.attached {
		return
	}
	c.input.drain.inFrame(c.input.queue, c.handleInputEvent)
}

// handleInputEvent offers the event to the host's input method and then to the
// normaliser. events not taken by the input method are always finished.
func (c *Coordinator) handleInputEvent(ev *platform.RawEvent) {
	if c.normalizer.Preferences().UseOSInputMethod.Get().(bool) {
		if c.input.queue.PreDispatch(ev) {
			return
		}
	}
	handled := c.normalizer.Process(ev)
	c.input.queue.Finish(ev, handled)
}
