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

package assert_test

import (
	"testing"

	"github.com/jetsetilly/platformcore/assert"
	"github.com/jetsetilly/platformcore/test"
)

func TestOwner(t *testing.T) {
	o := assert.NewOwner()
	test.ExpectSuccess(t, o.IsOwner())

	done := make(chan bool)
	go func() {
		done <- o.IsOwner()
	}()
	test.ExpectFailure(t, <-done)

	go func() {
		o.Claim()
		done <- o.IsOwner()
	}()
	test.ExpectSuccess(t, <-done)
	test.ExpectFailure(t, o.IsOwner())
}
