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

// Package queue is an input queue for hosts that do not provide one of their
// own. Events are pushed by the host and taken by the lifecycle coordinator
// through the platform.InputQueue interface. The queue's descriptor is
// readable whenever the queue is not empty.
package queue

import (
	"encoding/binary"
	"sync"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/platform"
	"golang.org/x/sys/unix"
)

// Sentinal error patterns.
const (
	Closed = "queue: closed"
)

// Queue implements the platform.InputQueue interface. Push() is safe to call
// from any goroutine.
type Queue struct {
	crit   sync.Mutex
	fd     int
	events []*platform.RawEvent

	preDispatch func(ev *platform.RawEvent) bool
	unhandled   func(ev *platform.RawEvent)

	finished  int
	forwarded int
}

// New is the preferred method of initialisation for the Queue type.
func New() (*Queue, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, curated.Errorf("queue: eventfd: %v", err)
	}
	return &Queue{fd: fd}, nil
}

// SetPreDispatch sets the function that is offered every event before
// normalisation. The function returns true if it has taken the event.
func (q *Queue) SetPreDispatch(f func(ev *platform.RawEvent) bool) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.preDispatch = f
}

// SetUnhandled sets the function that is called for every event that is
// finished without being handled.
func (q *Queue) SetUnhandled(f func(ev *platform.RawEvent)) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.unhandled = f
}

// Push an event onto the end of the queue.
func (q *Queue) Push(ev *platform.RawEvent) error {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.fd < 0 {
		return curated.Errorf(Closed)
	}

	q.events = append(q.events, ev)
	if len(q.events) > 1 {
		return nil
	}

	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], 1)
	if _, err := unix.Write(q.fd, b[:]); err != nil {
		return curated.Errorf("queue: %v", err)
	}
	return nil
}

// Fd implements the platform.InputQueue interface.
func (q *Queue) Fd() int {
	return q.fd
}

// GetEvent implements the platform.InputQueue interface.
func (q *Queue) GetEvent() (*platform.RawEvent, bool) {
	q.crit.Lock()
	defer q.crit.Unlock()

	if len(q.events) == 0 {
		q.reset()
		return nil, false
	}

	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]

	if len(q.events) == 0 {
		q.reset()
	}

	return ev, true
}

// reset the eventfd counter so that the descriptor is no longer readable.
// must be called with the critical section locked
func (q *Queue) reset() {
	if q.fd < 0 {
		return
	}
	var b [8]byte
	_, _ = unix.Read(q.fd, b[:])
}

// HasEvents implements the platform.InputQueue interface.
func (q *Queue) HasEvents() int {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.fd < 0 {
		return -1
	}
	if len(q.events) > 0 {
		return 1
	}
	return 0
}

// PreDispatch implements the platform.InputQueue interface.
func (q *Queue) PreDispatch(ev *platform.RawEvent) bool {
	q.crit.Lock()
	f := q.preDispatch
	q.crit.Unlock()

	if f == nil {
		return false
	}
	return f(ev)
}

// Finish implements the platform.InputQueue interface.
func (q *Queue) Finish(ev *platform.RawEvent, handled bool) {
	q.crit.Lock()
	f := q.unhandled
	q.finished++
	if !handled && f != nil {
		q.forwarded++
	}
	q.crit.Unlock()

	if !handled && f != nil {
		f(ev)
	}
}

// Finished returns the number of events that have been finished and the
// number of those that were passed to the unhandled function.
func (q *Queue) Finished() (int, int) {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.finished, q.forwarded
}

// Len returns the number of events waiting in the queue.
func (q *Queue) Len() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return len(q.events)
}

// Close the queue's descriptor. Events still in the queue are discarded.
func (q *Queue) Close() error {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.fd < 0 {
		return nil
	}
	err := unix.Close(q.fd)
	q.fd = -1
	q.events = nil
	if err != nil {
		return curated.Errorf("queue: %v", err)
	}
	return nil
}
