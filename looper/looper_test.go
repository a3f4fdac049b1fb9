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

package looper_test

import (
	"context"
	"testing"
	"time"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/looper"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func newPipe(t *testing.T) (int, int) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC))
	t.Cleanup(func() {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
	})
	return p[0], p[1]
}

func newLooper(t *testing.T) *looper.Looper {
	t.Helper()
	l, err := looper.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = l.Close()
	})
	return l
}

func TestRegisterAndDispatch(t *testing.T) {
	l := newLooper(t)
	r, w := newPipe(t)

	var got []byte
	err := l.Register(r, platform.Readable, func(fd int, ready platform.Interest) bool {
		require.Equal(t, platform.Readable, ready&platform.Readable)
		buf := make([]byte, 16)
		n, err := unix.Read(fd, buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
		return true
	})
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())

	// registering the same descriptor twice is an error
	err = l.Register(r, platform.Readable, nil)
	require.True(t, curated.Is(err, looper.AlreadyRegistered))

	// nothing to dispatch
	n, err := l.PollOnce(0)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = unix.Write(w, []byte("abc"))
	require.NoError(t, err)

	n, err = l.PollOnce(time.Second)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "abc", string(got))

	require.NoError(t, l.Remove(r))
	require.Equal(t, 0, l.Len())
	require.True(t, curated.Is(l.Remove(r), looper.NotRegistered))
}

func TestCallbackRemovesSource(t *testing.T) {
	l := newLooper(t)
	r, w := newPipe(t)

	calls := 0
	require.NoError(t, l.Register(r, platform.Readable, func(fd int, _ platform.Interest) bool {
		calls++
		return false
	}))

	_, err := unix.Write(w, []byte("x"))
	require.NoError(t, err)

	// the data is never read so the descriptor stays readable. the source is
	// removed after the first callback returns false
	_, err = l.PollOnce(time.Second)
	require.NoError(t, err)
	_, err = l.PollOnce(0)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Equal(t, 0, l.Len())
}

func TestTimers(t *testing.T) {
	l := newLooper(t)

	var order []string
	_, err := l.AfterFunc(20*time.Millisecond, func() { order = append(order, "second") })
	require.NoError(t, err)
	_, err = l.AfterFunc(time.Millisecond, func() { order = append(order, "first") })
	require.NoError(t, err)
	stopped, err := l.AfterFunc(5*time.Millisecond, func() { order = append(order, "stopped") })
	require.NoError(t, err)

	require.True(t, stopped.Stop())
	require.False(t, stopped.Stop())

	deadline := time.Now().Add(2 * time.Second)
	for len(order) < 2 && time.Now().Before(deadline) {
		_, err := l.PollOnce(100 * time.Millisecond)
		require.NoError(t, err)
	}

	require.Equal(t, []string{"first", "second"}, order)

	// fired timers are removed from the looper
	require.Equal(t, 0, l.Len())
}

func TestTimerStopAfterFire(t *testing.T) {
	l := newLooper(t)

	fired := false
	tm, err := l.AfterFunc(0, func() { fired = true })
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for !fired && time.Now().Before(deadline) {
		_, err := l.PollOnce(100 * time.Millisecond)
		require.NoError(t, err)
	}

	require.True(t, fired)
	require.False(t, tm.Stop())
}

// a timer stopped by an earlier callback in the same batch must not fire.
// the replacement timer usually reuses the stopped timer's descriptor
func TestTimerReplacedInBatch(t *testing.T) {
	l := newLooper(t)
	r, w := newPipe(t)

	var aFired, bFired, stopped bool

	a, err := l.AfterFunc(30*time.Millisecond, func() { aFired = true })
	require.NoError(t, err)

	err = l.Register(r, platform.Readable, func(fd int, _ platform.Interest) bool {
		var buf [16]byte
		_, _ = unix.Read(fd, buf[:])
		stopped = a.Stop()
		_, err := l.AfterFunc(time.Hour, func() { bFired = true })
		require.NoError(t, err)
		return true
	})
	require.NoError(t, err)

	// the pipe is ready before the timer expires so its callback is first in
	// the batch
	_, err = unix.Write(w, []byte("x"))
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	n, err := l.PollOnce(0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, stopped)
	require.False(t, aFired)
	require.False(t, bFired)

	// nothing left to dispatch
	n, err = l.PollOnce(0)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.False(t, bFired)
}

func TestRunQuit(t *testing.T) {
	l := newLooper(t)

	_, err := l.AfterFunc(time.Millisecond, func() { l.Quit() })
	require.NoError(t, err)

	require.NoError(t, l.Run(context.Background()))
}

func TestRunContext(t *testing.T) {
	l := newLooper(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, l.Run(ctx), context.DeadlineExceeded)
}

func TestForeignGoroutine(t *testing.T) {
	l := newLooper(t)

	_, err := l.PollOnce(0)
	require.NoError(t, err)

	errs := make(chan error)
	go func() {
		_, err := l.PollOnce(0)
		errs <- err
	}()
	require.True(t, curated.Is(<-errs, looper.ForeignGoroutine))
}
