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

package performance_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/performance"
	"github.com/jetsetilly/platformcore/test"
)

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfileString("cpu, TRACE")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "cpu,trace")

	_, err = performance.ParseProfileString("cpu,disk")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Has(err, "performance: unknown profile type (%s)"))
}

func TestRunProfiler(t *testing.T) {
	header := filepath.Join(t.TempDir(), "test")

	var ran bool
	err := performance.RunProfiler(performance.ProfileCPU|performance.ProfileMem, header, func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)

	_, err = os.Stat(header + "_cpu.profile")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(header + "_mem.profile")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(header + "_trace.profile")
	test.ExpectFailure(t, err)
}

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(60, 300, 5.0)
	test.ExpectApproximate(t, fps, 60, 0.001)
	test.ExpectApproximate(t, accuracy, 100, 0.001)

	fps, accuracy = performance.CalcFPS(0, 150, 5.0)
	test.ExpectApproximate(t, fps, 30, 0.001)
	test.ExpectApproximate(t, accuracy, 0, 0.001)

	fps, _ = performance.CalcFPS(60, 10, 0)
	test.ExpectApproximate(t, fps, 0, 0.001)
}
