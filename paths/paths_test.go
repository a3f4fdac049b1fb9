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

package paths_test

import (
	"os"
	"regexp"
	"testing"

	"github.com/jetsetilly/platformcore/paths"
	"github.com/jetsetilly/platformcore/test"
)

// the tests run in the package directory. creating the base directory there
// means that the user's config directory is never touched
func withLocalBase(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
	test.DemandSuccess(t, os.Mkdir(".platformcore", 0700))
}

func TestPaths(t *testing.T) {
	withLocalBase(t)

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".platformcore/foo/bar/baz")

	pth, err = paths.ResourcePath("foo/bar", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".platformcore/foo/bar")

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".platformcore/baz")

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".platformcore")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("cpu", "run")
	test.ExpectSuccess(t, regexp.MustCompile(`^cpu_run_\d{8}_\d{6}$`).MatchString(fn))

	fn = paths.UniqueFilename("cpu", " ")
	test.ExpectSuccess(t, regexp.MustCompile(`^cpu_\d{8}_\d{6}$`).MatchString(fn))

	// the name never adds a path element
	fn = paths.UniqueFilename("mem", " demo run/2 ")
	test.ExpectSuccess(t, regexp.MustCompile(`^mem_demo_run_2_\d{8}_\d{6}$`).MatchString(fn))
}
