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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/test"
)

const validMemMap = `00000000 -> 00003fff	BIOS
02000000 -> 02ffffff	EWRAM
03000000 -> 03ffffff	IWRAM
04000000 -> 040003ff	IO
05000000 -> 05ffffff	Palette
06000000 -> 06ffffff	VRAM
07000000 -> 07ffffff	OAM
08000000 -> 09ffffff	ROM0
0a000000 -> 0bffffff	ROM1
0c000000 -> 0dffffff	ROM2
0e000000 -> 0fffffff	SRAM
`

func TestSummary(t *testing.T) {
	test.ExpectEquality(t, memorymap.Summary(), validMemMap)
}

func TestMirrors(t *testing.T) {
	a, area := memorymap.MapAddress(0x03ffffc)
	test.ExpectEquality(t, area, memorymap.Undefined)
	test.ExpectEquality(t, a, 0x03ffffc)

	a, area = memorymap.MapAddress(0x03fffffc)
	test.ExpectEquality(t, area, memorymap.IWRAM)
	test.ExpectEquality(t, a, 0x7ffc)

	a, area = memorymap.MapAddress(0x02040010)
	test.ExpectEquality(t, area, memorymap.EWRAM)
	test.ExpectEquality(t, a, 0x10)

	// upper 32k of each 128k VRAM block mirrors the 32k before it
	a, area = memorymap.MapAddress(0x06018010)
	test.ExpectEquality(t, area, memorymap.VRAM)
	test.ExpectEquality(t, a, 0x10010)

	a, area = memorymap.MapAddress(0x0a000100)
	test.ExpectEquality(t, area, memorymap.ROM1)
	test.ExpectEquality(t, a, 0x100)

	a, area = memorymap.MapAddress(0x04000200)
	test.ExpectEquality(t, area, memorymap.IO)
	test.ExpectEquality(t, a, 0x200)

	_, area = memorymap.MapAddress(0x10000000)
	test.ExpectEquality(t, area, memorymap.Undefined)
}

func TestOrigin(t *testing.T) {
	o, err := memorymap.Origin(memorymap.ROM2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, o, 0x0c000000)

	_, err = memorymap.Origin(memorymap.Undefined)
	test.ExpectFailure(t, err)
}
