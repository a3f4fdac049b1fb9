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

package hotplug_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/platformcore/looper"
	"github.com/jetsetilly/platformcore/msgchan"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/test"
	"github.com/jetsetilly/platformcore/userinput/hotplug"
)

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeTimers struct {
	timers []*fakeTimer
	fail   bool
}

func (ft *fakeTimers) AfterFunc(d time.Duration, f func()) (platform.Timer, error) {
	if ft.fail {
		return nil, errors.New("no timers")
	}
	t := &fakeTimer{f: f}
	ft.timers = append(ft.timers, t)
	return t, nil
}

// expire runs every timer that has not been stopped.
func (ft *fakeTimers) expire() {
	for _, t := range ft.timers {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

func TestCoalescing(t *testing.T) {
	ft := &fakeTimers{}
	var rescans int
	c := hotplug.NewCoalescer(ft, 0, func() { rescans++ })

	for i := 0; i < 5; i++ {
		c.Notify()
	}
	test.ExpectSuccess(t, c.Pending())
	test.ExpectEquality(t, rescans, 0)

	ft.expire()
	test.ExpectEquality(t, rescans, 1)
	test.ExpectFailure(t, c.Pending())

	// a later notification starts a new window
	c.Notify()
	ft.expire()
	test.ExpectEquality(t, rescans, 2)
}

func TestCoalescerStop(t *testing.T) {
	ft := &fakeTimers{}
	var rescans int
	c := hotplug.NewCoalescer(ft, time.Second, func() { rescans++ })

	c.Notify()
	c.Stop()
	ft.expire()
	test.ExpectEquality(t, rescans, 0)
}

func TestCoalescerTimerFailure(t *testing.T) {
	ft := &fakeTimers{fail: true}
	var rescans int
	c := hotplug.NewCoalescer(ft, time.Second, func() { rescans++ })

	// without a timer the rescan happens immediately
	c.Notify()
	test.ExpectEquality(t, rescans, 1)
	test.ExpectFailure(t, c.Pending())
}

func TestCoalescingWithLooper(t *testing.T) {
	l, err := looper.New()
	test.DemandSuccess(t, err)
	defer l.Close()

	var rescans int
	c := hotplug.NewCoalescer(l, 20*time.Millisecond, func() { rescans++ })

	for i := 0; i < 10; i++ {
		c.Notify()
		_, err := l.PollOnce(time.Millisecond)
		test.DemandSuccess(t, err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for c.Pending() && time.Now().Before(deadline) {
		_, err := l.PollOnce(10 * time.Millisecond)
		test.DemandSuccess(t, err)
	}

	test.ExpectEquality(t, rescans, 1)
}

func TestPreferences(t *testing.T) {
	p, err := hotplug.NewPreferences(filepath.Join(t.TempDir(), "prefs.toml"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Window(), hotplug.DefaultWindow)

	test.ExpectFailure(t, p.CoalesceMS.Set(0))
	test.ExpectEquality(t, p.Window(), hotplug.DefaultWindow)

	test.DemandSuccess(t, p.CoalesceMS.Set(100))
	test.ExpectEquality(t, p.Window(), 100*time.Millisecond)
}

type notifier struct {
	sent chan uint16
}

func (n *notifier) Send(typ uint16, short uint16, arg0 int32, arg1 int32) error {
	n.sent <- typ
	return nil
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	n := &notifier{sent: make(chan uint16, 10)}

	w, err := hotplug.NewWatcher(dir, n)
	test.DemandSuccess(t, err)
	defer w.Close()

	node := filepath.Join(dir, "event0")
	test.DemandSuccess(t, os.WriteFile(node, nil, 0o600))
	test.DemandSuccess(t, os.Remove(node))

	for i := 0; i < 2; i++ {
		select {
		case typ := <-n.sent:
			test.ExpectEquality(t, typ, msgchan.MsgHotplug)
		case <-time.After(2 * time.Second):
			t.Fatalf("no hotplug message for event %d", i)
		}
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := hotplug.NewWatcher(filepath.Join(t.TempDir(), "missing"), &notifier{})
	test.ExpectFailure(t, err)
}
