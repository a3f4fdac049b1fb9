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

package queue_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/looper"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/platform/queue"
	"github.com/jetsetilly/platformcore/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func newQueue(t *testing.T) *queue.Queue {
	t.Helper()
	q, err := queue.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = q.Close()
	})
	return q
}

// readable returns true if the descriptor is ready for reading.
func readable(t *testing.T, fd int) bool {
	t.Helper()
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	require.NoError(t, err)
	return n == 1
}

func TestReadableWhileNotEmpty(t *testing.T) {
	q := newQueue(t)
	test.ExpectFailure(t, readable(t, q.Fd()))
	test.ExpectEquality(t, q.HasEvents(), 0)

	require.NoError(t, q.Push(&platform.RawEvent{KeyCode: 1}))
	require.NoError(t, q.Push(&platform.RawEvent{KeyCode: 2}))
	test.ExpectSuccess(t, readable(t, q.Fd()))
	test.ExpectEquality(t, q.HasEvents(), 1)
	test.ExpectEquality(t, q.Len(), 2)

	ev, ok := q.GetEvent()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, ev.KeyCode, int32(1))
	test.ExpectSuccess(t, readable(t, q.Fd()))

	ev, ok = q.GetEvent()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, ev.KeyCode, int32(2))
	test.ExpectFailure(t, readable(t, q.Fd()))

	_, ok = q.GetEvent()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, q.HasEvents(), 0)
}

func TestFinish(t *testing.T) {
	q := newQueue(t)

	var unhandled []int32
	q.SetUnhandled(func(ev *platform.RawEvent) {
		unhandled = append(unhandled, ev.KeyCode)
	})

	q.Finish(&platform.RawEvent{KeyCode: 1}, true)
	q.Finish(&platform.RawEvent{KeyCode: 2}, false)

	finished, forwarded := q.Finished()
	test.ExpectEquality(t, finished, 2)
	test.ExpectEquality(t, forwarded, 1)
	test.ExpectEquality(t, len(unhandled), 1)
	test.ExpectEquality(t, unhandled[0], int32(2))
}

func TestPreDispatch(t *testing.T) {
	q := newQueue(t)
	test.ExpectFailure(t, q.PreDispatch(&platform.RawEvent{}))

	q.SetPreDispatch(func(ev *platform.RawEvent) bool {
		return ev.KeyCode == 66
	})
	test.ExpectSuccess(t, q.PreDispatch(&platform.RawEvent{KeyCode: 66}))
	test.ExpectFailure(t, q.PreDispatch(&platform.RawEvent{KeyCode: 67}))
}

func TestClosed(t *testing.T) {
	q := newQueue(t)
	require.NoError(t, q.Push(&platform.RawEvent{}))
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	test.ExpectEquality(t, q.HasEvents(), -1)
	test.ExpectEquality(t, q.Len(), 0)
	test.ExpectSuccess(t, curated.Is(q.Push(&platform.RawEvent{}), queue.Closed))
}

func TestLooperIntegration(t *testing.T) {
	l, err := looper.New()
	require.NoError(t, err)
	defer l.Close()

	q := newQueue(t)

	var got []int32
	require.NoError(t, l.Register(q.Fd(), platform.Readable, func(fd int, _ platform.Interest) bool {
		for {
			ev, ok := q.GetEvent()
			if !ok {
				return true
			}
			got = append(got, ev.KeyCode)
		}
	}))

	go func() {
		for i := int32(1); i <= 3; i++ {
			_ = q.Push(&platform.RawEvent{KeyCode: i})
		}
	}()

	deadline := time.Now().Add(2 * time.Second)
	for len(got) < 3 && time.Now().Before(deadline) {
		_, err := l.PollOnce(10 * time.Millisecond)
		require.NoError(t, err)
	}
	test.ExpectEquality(t, len(got), 3)
	test.ExpectEquality(t, got[2], int32(3))
}
