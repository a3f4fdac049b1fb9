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

package frameclock

// DrawFunc is called by a Trigger to draw a frame. The timestamp is in
// monotonic nanoseconds and is zero if the trigger has no timestamp. Returns
// true if the frame is still dirty after drawing.
type DrawFunc func(timestampNanos int64) bool

// Kind of trigger.
type Kind int

// List of valid Kind values.
const (
	KindPush Kind = iota
	KindDescriptor
)

func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindDescriptor:
		return "descriptor"
	}
	return "unknown"
}

// Trigger is the interface to both frame trigger implementations. Callers
// must not Post() a draw that is already posted or Cancel() a draw that has
// not been posted. Tracking of the posted state is the responsibility of the
// caller.
type Trigger interface {
	Kind() Kind
	Post() error
	Cancel()
	Close() error
}
