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

package memory

import (
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
)

// waitStates is the decoded form of the WAITCNT register.
type waitStates struct {
	sram uint64

	// non-sequential and sequential wait states for each of the three ROM
	// windows
	romN [3]uint64
	romS [3]uint64
}

func (ws waitStates) String() string {
	return fmt.Sprintf("SRAM=%d WS0=%d/%d WS1=%d/%d WS2=%d/%d",
		ws.sram, ws.romN[0], ws.romS[0], ws.romN[1], ws.romS[1], ws.romN[2], ws.romS[2])
}

var nonSequentialWaits = [4]uint64{4, 3, 2, 8}

var sequentialWaits = [3][2]uint64{
	{2, 1},
	{4, 1},
	{8, 1},
}

func (mem *Memory) setWaitcnt(v uint16) {
	// bit 15 is the read-only cartridge type flag
	mem.waitcnt = v & 0x5fff

	mem.ws.sram = nonSequentialWaits[v&0x03]
	mem.ws.romN[0] = nonSequentialWaits[(v>>2)&0x03]
	mem.ws.romS[0] = sequentialWaits[0][(v>>4)&0x01]
	mem.ws.romN[1] = nonSequentialWaits[(v>>5)&0x03]
	mem.ws.romS[1] = sequentialWaits[1][(v>>7)&0x01]
	mem.ws.romN[2] = nonSequentialWaits[(v>>8)&0x03]
	mem.ws.romS[2] = sequentialWaits[2][(v>>10)&0x01]

	// bit 14 enables the game pak prefetch buffer. the bit reads back but the
	// buffer is not emulated and ROM accesses are always timed as above
}

// cycles returns the number of cycles taken by an access of the specified
// width (in bytes) to an area.
func (mem *Memory) cycles(area memorymap.Area, width uint32, sequential bool) uint64 {
	switch area {
	case memorymap.EWRAM:
		// 16bit bus with two wait states
		if width == 4 {
			return 6
		}
		return 3

	case memorymap.Palette, memorymap.VRAM:
		// 16bit bus
		if width == 4 {
			return 2
		}
		return 1

	case memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		w := area - memorymap.ROM0
		c := uint64(1)
		if sequential {
			c += mem.ws.romS[w]
		} else {
			c += mem.ws.romN[w]
		}

		// 16bit bus. the second half of a word access is always sequential
		if width == 4 {
			c += 1 + mem.ws.romS[w]
		}
		return c

	case memorymap.SRAM:
		// 8bit bus
		return 1 + mem.ws.sram
	}

	return 1
}

// tick advances the clock for an access.
func (mem *Memory) tick(address uint32, width uint32) {
	_, area := memorymap.MapAddress(address)
	mem.clock.Tick(mem.cycles(area, width, address == mem.next))
	mem.next = address + width
}
