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

package clocks_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/clocks"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestClocks(t *testing.T) {
	test.ExpectEquality(t, clocks.CyclesPerSecond, 16777216)
	test.ExpectApproximate(t, clocks.CPU*1000000, float64(clocks.CyclesPerSecond), 0.000001)

	// direct sound samples are a whole number of cycles apart
	test.ExpectEquality(t, clocks.CyclesPerSecond%clocks.DirectSound, 0)
}
