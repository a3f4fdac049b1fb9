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

package msgchan

import (
	"errors"
	"sync"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
	"golang.org/x/sys/unix"
)

// Sentinal error patterns.
const (
	ShortWrite      = "msgchan: short write (%d of %d bytes)"
	WriteFailed     = "msgchan: write: %v"
	PayloadTooLarge = "msgchan: payload too large (%d bytes)"
	PayloadType     = "msgchan: payload messages must be sent with SendPayload()"
	Closed          = "msgchan: closed"
)

// size of each read from the pipe.
const readSize = 4096

// Handler is called on the loop goroutine for every message.
type Handler func(m Message)

// Channel is the consumer side of the message channel. It also creates the
// Sender used by producers.
type Channel struct {
	mux     platform.Multiplexer
	handler Handler

	// read and write ends of the pipe
	r int
	w int

	// partial records carried over between reads
	buf []byte
	tmp []byte

	// writers hold a read lock while writing. Close() takes the write lock
	// so that the descriptor is never closed during a write
	crit   sync.RWMutex
	closed bool
}

// New creates a message channel and registers the read end with the
// multiplexer.
func New(mux platform.Multiplexer, handler Handler) (*Channel, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, curated.Errorf("msgchan: %v", err)
	}

	ch := &Channel{
		mux:     mux,
		handler: handler,
		r:       p[0],
		w:       p[1],
		tmp:     make([]byte, readSize),
	}

	if err := mux.Register(ch.r, platform.Readable, ch.readable); err != nil {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
		return nil, curated.Errorf("msgchan: %v", err)
	}

	return ch, nil
}

// Close the channel. Subsequent sends will fail.
func (ch *Channel) Close() error {
	ch.crit.Lock()
	defer ch.crit.Unlock()

	if ch.closed {
		return nil
	}
	ch.closed = true

	_ = ch.mux.Remove(ch.r)
	_ = unix.Close(ch.w)
	_ = unix.Close(ch.r)

	return nil
}

// Sender returns a Sender for the channel. Senders are safe to use from any
// goroutine.
func (ch *Channel) Sender() *Sender {
	return &Sender{ch: ch}
}

func (ch *Channel) readable(fd int, ready platform.Interest) bool {
	for {
		n, err := unix.Read(fd, ch.tmp)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				break
			}
			if errors.Is(err, unix.EINTR) {
				continue
			}
			logger.Logf(logger.Allow, "msgchan", "error reading message pipe: %v", err)
			break
		}
		if n == 0 {
			// write end has been closed
			return false
		}
		ch.buf = append(ch.buf, ch.tmp[:n]...)
	}

	consumed := decode(ch.buf, ch.dispatch, func(cmd uint32) {
		logger.Logf(logger.Allow, "msgchan", "got unknown cmd %d", cmd)
	})

	// move any partial record to the front of the buffer
	ch.buf = ch.buf[:copy(ch.buf, ch.buf[consumed:])]

	return true
}

func (ch *Channel) dispatch(m Message) {
	if m.Type >= MsgStart {
		logger.Logf(logger.Allow, "msgchan", "got %s", m)
	}
	if ch.handler != nil {
		ch.handler(m)
	}
}

// Sender is the producer side of the message channel.
type Sender struct {
	ch *Channel
}

func (s *Sender) write(b []byte) error {
	s.ch.crit.RLock()
	defer s.ch.crit.RUnlock()

	if s.ch.closed {
		return curated.Errorf(Closed)
	}

	n, err := unix.Write(s.ch.w, b)
	if err != nil {
		err = curated.Errorf(WriteFailed, err)
		logger.Log(logger.Allow, "msgchan", err.Error())
		return err
	}
	if n != len(b) {
		err = curated.Errorf(ShortWrite, n, len(b))
		logger.Log(logger.Allow, "msgchan", err.Error())
		return err
	}

	return nil
}

// Send a fixed shape message. The message is dropped if the pipe is full.
func (s *Sender) Send(typ uint16, short uint16, arg0 int32, arg1 int32) error {
	if typ == MsgPayload {
		return curated.Errorf(PayloadType)
	}

	var b [RecordSize]byte
	encode(b[:], typ, short, arg0, arg1)
	return s.write(b[:])
}

// SendPayload sends a payload message. The header and the data are written
// together in a single write.
func (s *Sender) SendPayload(sender uint32, data []byte) error {
	if len(data) > MaxPayload {
		return curated.Errorf(PayloadTooLarge, len(data))
	}

	b := make([]byte, RecordSize+len(data))
	encode(b, MsgPayload, 0, int32(sender), int32(len(data)))
	copy(b[RecordSize:], data)
	return s.write(b)
}
