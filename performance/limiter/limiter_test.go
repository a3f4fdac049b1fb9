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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/platformcore/performance/limiter"
	"github.com/jetsetilly/platformcore/test"
)

func TestLimiter(t *testing.T) {
	_, err := limiter.NewFPSLimiter(0)
	test.ExpectFailure(t, err)

	lim, err := limiter.NewFPSLimiter(100)
	test.DemandSuccess(t, err)

	start := time.Now()
	for i := 0; i < 10; i++ {
		_, ok := lim.Wait()
		test.ExpectSuccess(t, ok)
	}

	// ten ticks at 100fps takes at least 90ms (the first tick is immediate)
	test.ExpectSuccess(t, time.Since(start) >= 80*time.Millisecond)

	lim.Stop()
	_, ok := lim.Wait()
	test.ExpectFailure(t, ok)
}
