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

package looper

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"github.com/jetsetilly/platformcore/assert"
	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
	"golang.org/x/sys/unix"
)

// Sentinal error patterns.
const (
	ForeignGoroutine  = "looper: called from foreign goroutine"
	AlreadyRegistered = "looper: fd %d already registered"
	NotRegistered     = "looper: fd %d not registered"
	Closed            = "looper: closed"
)

// maximum number of events returned by a single call to EpollWait.
const maxEvents = 32

type source struct {
	fd       int
	interest platform.Interest
	callback platform.SourceCallback

	// timer descriptors are owned by the looper
	timer bool
}

// Looper is the event loop. Create with New().
type Looper struct {
	epfd int

	// eventfd used to wake the loop from another goroutine
	wake int

	sources map[int]*source
	events  []unix.EpollEvent

	// the source of each event at the time EpollWait returned. a callback
	// can close a descriptor and a new source can be registered with the
	// same number before the rest of the batch is dispatched
	batch []*source

	owner   assert.Owner
	claimed bool
	quit    chan bool
	closed  bool
}

// New is the preferred method of initialisation for the Looper type.
func New() (*Looper, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, curated.Errorf("looper: %v", err)
	}

	wake, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		_ = unix.Close(epfd)
		return nil, curated.Errorf("looper: %v", err)
	}

	l := &Looper{
		epfd:    epfd,
		wake:    wake,
		sources: make(map[int]*source),
		events:  make([]unix.EpollEvent, maxEvents),
		batch:   make([]*source, maxEvents),
		quit:    make(chan bool, 1),
	}

	err = l.Register(wake, platform.Readable, l.woken)
	if err != nil {
		_ = unix.Close(wake)
		_ = unix.Close(epfd)
		return nil, err
	}

	return l, nil
}

func toEpoll(interest platform.Interest) uint32 {
	var ev uint32
	if interest&platform.Readable == platform.Readable {
		ev |= unix.EPOLLIN
	}
	if interest&platform.Writable == platform.Writable {
		ev |= unix.EPOLLOUT
	}
	return ev
}

func fromEpoll(ev uint32) platform.Interest {
	var interest platform.Interest
	if ev&unix.EPOLLIN == unix.EPOLLIN {
		interest |= platform.Readable
	}
	if ev&unix.EPOLLOUT == unix.EPOLLOUT {
		interest |= platform.Writable
	}
	if ev&unix.EPOLLHUP == unix.EPOLLHUP {
		interest |= platform.Hangup
	}
	if ev&unix.EPOLLERR == unix.EPOLLERR {
		interest |= platform.Failure
	}
	return interest
}

// Register implements the platform.Multiplexer interface.
func (l *Looper) Register(fd int, interest platform.Interest, callback platform.SourceCallback) error {
	if l.closed {
		return curated.Errorf(Closed)
	}
	if _, ok := l.sources[fd]; ok {
		return curated.Errorf(AlreadyRegistered, fd)
	}

	ev := unix.EpollEvent{
		Events: toEpoll(interest),
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return curated.Errorf("looper: register: %v", err)
	}

	l.sources[fd] = &source{
		fd:       fd,
		interest: interest,
		callback: callback,
	}

	logger.Logf(logger.Allow, "looper", "added fd %d (%s)", fd, interest)

	return nil
}

// Remove implements the platform.Multiplexer interface.
func (l *Looper) Remove(fd int) error {
	if _, ok := l.sources[fd]; !ok {
		return curated.Errorf(NotRegistered, fd)
	}
	delete(l.sources, fd)

	// the descriptor may already have been closed, in which case the kernel
	// has removed it from the epoll set
	err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err != nil && !errors.Is(err, unix.EBADF) && !errors.Is(err, unix.ENOENT) {
		return curated.Errorf("looper: remove: %v", err)
	}

	logger.Logf(logger.Allow, "looper", "removed fd %d", fd)

	return nil
}

// Len returns the number of registered sources, not counting the loop's own
// wake descriptor.
func (l *Looper) Len() int {
	return len(l.sources) - 1
}

func (l *Looper) woken(fd int, _ platform.Interest) bool {
	var buf [8]byte
	_, _ = unix.Read(fd, buf[:])
	return true
}

func (l *Looper) checkOwner() error {
	if !l.claimed {
		l.owner.Claim()
		l.claimed = true
		return nil
	}
	if !l.owner.IsOwner() {
		return curated.Errorf(ForeignGoroutine)
	}
	return nil
}

// PollOnce waits for at most timeout and dispatches callbacks for every ready
// source. A negative timeout waits indefinitely. Returns the number of
// callbacks that were dispatched. Wakes caused by Quit() are not counted.
func (l *Looper) PollOnce(timeout time.Duration) (int, error) {
	if l.closed {
		return 0, curated.Errorf(Closed)
	}
	if err := l.checkOwner(); err != nil {
		return 0, err
	}

	msec := -1
	if timeout >= 0 {
		msec = int(timeout / time.Millisecond)
	}

	n, err := unix.EpollWait(l.epfd, l.events, msec)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, curated.Errorf("looper: poll: %v", err)
	}

	for i := 0; i < n; i++ {
		l.batch[i] = l.sources[int(l.events[i].Fd)]
	}

	dispatched := 0
	for i := 0; i < n; i++ {
		fd := int(l.events[i].Fd)
		src := l.batch[i]
		l.batch[i] = nil

		// an earlier callback in this batch may have removed the source or
		// replaced it with a new source using the same descriptor number
		if src == nil || l.sources[fd] != src {
			continue
		}

		if fd == l.wake {
			src.callback(fd, fromEpoll(l.events[i].Events))
			continue
		}

		dispatched++
		if !src.callback(fd, fromEpoll(l.events[i].Events)) {
			// the callback may have removed the source itself
			if l.sources[fd] == src {
				if err := l.Remove(fd); err != nil {
					logger.Log(logger.Allow, "looper", err.Error())
				}
			}
		}
	}

	return dispatched, nil
}

// Run the loop until Quit() is called or the context is done.
func (l *Looper) Run(ctx context.Context) error {
	if err := l.checkOwner(); err != nil {
		return err
	}

	done := make(chan bool)
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			l.Quit()
		case <-done:
		}
	}()

	for {
		select {
		case <-l.quit:
			return ctx.Err()
		default:
		}

		if _, err := l.PollOnce(-1); err != nil {
			return err
		}
	}
}

// Quit causes Run() to return. Safe to call from any goroutine.
func (l *Looper) Quit() {
	select {
	case l.quit <- true:
	default:
	}

	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	_, _ = unix.Write(l.wake, buf[:])
}

// Close the loop and all timer descriptors it owns. Sources registered by
// other parts of the program are not closed.
func (l *Looper) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	for fd, src := range l.sources {
		if src.timer {
			_ = unix.Close(fd)
		}
	}
	l.sources = make(map[int]*source)

	_ = unix.Close(l.wake)
	if err := unix.Close(l.epfd); err != nil {
		return curated.Errorf("looper: %v", err)
	}
	return nil
}
