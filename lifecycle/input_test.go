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
	"testing"

	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/test"
)

type drainQueue struct {
	events  []*platform.RawEvent
	gets    int
	queries int
	err     bool
}

func (q *drainQueue) Fd() int { return -1 }

func (q *drainQueue) GetEvent() (*platform.RawEvent, bool) {
	q.gets++
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

func (q *drainQueue) HasEvents() int {
	q.queries++
	if q.err {
		return -1
	}
	if len(q.events) > 0 {
		return 1
	}
	return 0
}

func (q *drainQueue) PreDispatch(ev *platform.RawEvent) bool { return false }
func (q *drainQueue) Finish(ev *platform.RawEvent, handled bool) {}

func events(n int) []*platform.RawEvent {
	l := make([]*platform.RawEvent, n)
	for i := range l {
		l[i] = &platform.RawEvent{KeyCode: int32(i)}
	}
	return l
}

func TestGetEventDrain(t *testing.T) {
	q := &drainQueue{events: events(3)}
	var n int
	d := &getEventDrain{}

	d.drain(q, func(*platform.RawEvent) { n++ })
	test.ExpectEquality(t, n, 3)
	test.ExpectEquality(t, q.gets, 4)
	test.ExpectEquality(t, q.queries, 0)

	test.ExpectFailure(t, d.inFrame(q, func(*platform.RawEvent) { n++ }))
	test.ExpectEquality(t, q.queries, 0)
}

func TestHasEventsDrain(t *testing.T) {
	q := &drainQueue{events: events(3)}
	var n int
	handle := func(*platform.RawEvent) { n++ }
	d := &hasEventsDrain{}

	d.drain(q, handle)
	test.ExpectEquality(t, n, 3)

	// the first event is taken without asking the queue
	test.ExpectEquality(t, q.gets, 3)
	test.ExpectEquality(t, q.queries, 3)
}

func TestHasEventsDrainSkipAfterFrame(t *testing.T) {
	q := &drainQueue{events: events(2)}
	var n int
	handle := func(*platform.RawEvent) { n++ }
	d := &hasEventsDrain{}

	test.ExpectSuccess(t, d.inFrame(q, handle))
	test.ExpectEquality(t, n, 2)

	// the descriptor callback that follows is skipped once
	q.events = events(1)
	d.drain(q, handle)
	test.ExpectEquality(t, n, 2)
	d.drain(q, handle)
	test.ExpectEquality(t, n, 3)

	// no events at the start of the frame clears the skip
	test.ExpectFailure(t, d.inFrame(q, handle))
	test.ExpectFailure(t, d.processedInFrame)
}

func TestHasEventsDrainError(t *testing.T) {
	q := &drainQueue{events: events(2), err: true}
	var n int
	d := &hasEventsDrain{}

	// the error stops the drain after the unconditional first event
	d.drain(q, func(*platform.RawEvent) { n++ })
	test.ExpectEquality(t, n, 1)
}
