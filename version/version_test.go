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

package version_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/platformcore/test"
	"github.com/jetsetilly/platformcore/version"
)

func TestVersion(t *testing.T) {
	v, rev, release := version.Version()

	// test binaries are never built with a release number
	test.ExpectFailure(t, release)
	test.ExpectSuccess(t, v == "unreleased" || v == "local")
	test.ExpectInequality(t, rev, "")

	s := version.String()
	test.ExpectSuccess(t, strings.HasPrefix(s, v))
	test.ExpectSuccess(t, strings.Contains(s, rev))
}
