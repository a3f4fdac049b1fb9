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

// Package msgchan is the one-way channel from producer goroutines to the
// event loop. Messages are written to a non-blocking pipe as fixed size
// records of three 32-bit words:
//
//	word0: type (low 16 bits) | short argument (high 16 bits)
//	word1: first argument
//	word2: second argument
//
// The reserved type MsgPayload carries a variable length payload. Its record
// is the header (type, sender, length) followed by length bytes, where length
// is at most MaxPayload.
//
// Every record is written with a single write so records from different
// producers are never interleaved. A write that fails is logged and the
// message is dropped. Messages are never retried.
//
// The consumer side is registered with a platform.Multiplexer and dispatches
// each complete record, in the order in which they were written, to a
// Handler on the loop goroutine.
package msgchan
