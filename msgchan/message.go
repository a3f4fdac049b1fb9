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
	"encoding/binary"
	"fmt"
)

// List of reserved message types. Types below MsgStart that are not listed
// here are unknown and are discarded by the consumer.
const (
	// variable length payload
	MsgPayload uint16 = 150

	// hot-plug notification from the device node watcher
	MsgHotplug uint16 = 151

	// first message type available to the application
	MsgStart uint16 = 1024
)

// RecordSize is the size of a fixed message record in bytes.
const RecordSize = 12

// MaxPayload is the maximum number of bytes in a payload message.
const MaxPayload = 48

// Message is a single decoded record.
type Message struct {
	Type  uint16
	Short uint16
	Arg0  int32
	Arg1  int32

	// payload messages only
	Sender  uint32
	Payload []byte
}

func (m Message) String() string {
	if m.Type == MsgPayload {
		return fmt.Sprintf("payload from %d (%d bytes)", m.Sender, len(m.Payload))
	}
	return fmt.Sprintf("msg type %d with args %d %d %d", m.Type, m.Short, m.Arg0, m.Arg1)
}

// IsReserved returns true if the message type is reserved for the platform.
func (m Message) IsReserved() bool {
	return m.Type < MsgStart
}

// encode a fixed record.
func encode(buf []byte, typ uint16, short uint16, arg0 int32, arg1 int32) {
	binary.NativeEndian.PutUint32(buf[0:], uint32(typ)|uint32(short)<<16)
	binary.NativeEndian.PutUint32(buf[4:], uint32(arg0))
	binary.NativeEndian.PutUint32(buf[8:], uint32(arg1))
}

// decode takes as many complete records from the front of buf as possible and
// passes them to the emit function. Returns the number of bytes consumed.
// Unknown record types are passed to the unknown function.
func decode(buf []byte, emit func(Message), unknown func(cmd uint32)) int {
	consumed := 0

	for len(buf)-consumed >= RecordSize {
		rec := buf[consumed:]
		cmd := binary.NativeEndian.Uint32(rec[0:])
		typ := uint16(cmd & 0xffff)

		switch {
		case typ == MsgPayload:
			sender := binary.NativeEndian.Uint32(rec[4:])
			size := int(binary.NativeEndian.Uint32(rec[8:]))
			if size > MaxPayload {
				// the stream is unrecoverable if the length cannot be
				// trusted. skip the header only
				unknown(cmd)
				consumed += RecordSize
				continue
			}
			if len(rec) < RecordSize+size {
				return consumed
			}
			data := make([]byte, size)
			copy(data, rec[RecordSize:RecordSize+size])
			emit(Message{
				Type:    MsgPayload,
				Sender:  sender,
				Payload: data,
			})
			consumed += RecordSize + size

		case typ == MsgHotplug || typ >= MsgStart:
			emit(Message{
				Type:  typ,
				Short: uint16(cmd >> 16),
				Arg0:  int32(binary.NativeEndian.Uint32(rec[4:])),
				Arg1:  int32(binary.NativeEndian.Uint32(rec[8:])),
			})
			consumed += RecordSize

		default:
			unknown(cmd)
			consumed += RecordSize
		}
	}

	return consumed
}
