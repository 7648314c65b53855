// This file is part of Gopheradvance.
//
// Gopheradvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopheradvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopheradvance.  If not, see <https://www.gnu.org/licenses/>.

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gopheradvance/performance/limiter"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestLimiter(t *testing.T) {
	_, err := limiter.NewFPSLimiter(0)
	test.ExpectFailure(t, err)

	lim, err := limiter.NewFPSLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	// ten frames at 100fps takes at least 90ms. the first tick is not
	// guaranteed to have a full period before it
	start := time.Now()
	for i := 0; i < 10; i++ {
		lim.Wait()
	}
	test.ExpectSuccess(t, time.Since(start) >= 90*time.Millisecond)

	lim.SetLimit(-1)
	test.ExpectEquality(t, lim.Limit(), 100.0)
	lim.SetLimit(50)
	test.ExpectEquality(t, lim.Limit(), 50.0)
}
