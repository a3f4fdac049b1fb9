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

package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Used to generate filenames for profiling output.
//
// Format of returned string is:
//
//	prepend_name_YYYYMMDD_HHMMSS
//
// Spaces and path separators in the name are replaced with underscores so the
// result is always a single path element. If there is no name the returned
// string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, name string) string {
	timestamp := time.Now().Format("20060102_150405")

	c := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == filepath.Separator {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if c == "" {
		return fmt.Sprintf("%s_%s", prepend, timestamp)
	}
	return fmt.Sprintf("%s_%s_%s", prepend, c, timestamp)
}
