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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePartial(t *testing.T) {
	buf := make([]byte, RecordSize*2+RecordSize+5)
	encode(buf[0:], MsgStart, 1, 2, 3)
	encode(buf[RecordSize:], MsgStart+1, 4, 5, 6)
	encode(buf[RecordSize*2:], MsgPayload, 0, 99, 5)
	copy(buf[RecordSize*3:], "abcde")

	var got []Message
	emit := func(m Message) { got = append(got, m) }
	unknown := func(cmd uint32) { t.Errorf("unexpected unknown cmd %d", cmd) }

	// first record plus half of the second
	n := decode(buf[:RecordSize+6], emit, unknown)
	require.Equal(t, RecordSize, n)
	require.Len(t, got, 1)

	// second record plus the payload header without the payload
	n = decode(buf[RecordSize:RecordSize*3+2], emit, unknown)
	require.Equal(t, RecordSize, n)
	require.Len(t, got, 2)

	// complete payload
	n = decode(buf[RecordSize*2:], emit, unknown)
	require.Equal(t, RecordSize+5, n)
	require.Len(t, got, 3)
	require.Equal(t, "abcde", string(got[2].Payload))
	require.Equal(t, uint32(99), got[2].Sender)
}

func TestMessageString(t *testing.T) {
	m := Message{Type: MsgStart, Short: 1, Arg0: 2, Arg1: 3}
	require.Equal(t, "msg type 1024 with args 1 2 3", m.String())
	require.False(t, m.IsReserved())

	m = Message{Type: MsgPayload, Sender: 5, Payload: []byte{1, 2}}
	require.Equal(t, "payload from 5 (2 bytes)", m.String())
	require.True(t, m.IsReserved())
}
