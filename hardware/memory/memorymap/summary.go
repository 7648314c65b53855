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

package memorymap

import (
	"fmt"
	"strings"
)

// Summary returns a single multiline string detailing the primary range of
// every area in memory. Useful for reference.
func Summary() string {
	s := strings.Builder{}

	var current Area
	var start uint32

	// the top byte of an address is enough to identify the area, except for
	// BIOS and IO where the area is smaller than the 16MB page. step through
	// the address space in 1k steps and print a line whenever the area
	// changes
	const step = 0x400

	_, current = MapAddress(0)
	for a := uint32(step); a <= Memtop-step+1 && a != 0; a += step {
		_, area := MapAddress(a)
		if area != current {
			if current != Undefined {
				s.WriteString(fmt.Sprintf("%08x -> %08x\t%s\n", start, a-1, current.String()))
			}
			current = area
			start = a
		}
	}

	if current != Undefined {
		s.WriteString(fmt.Sprintf("%08x -> %08x\t%s\n", start, Memtop, current.String()))
	}

	return s.String()
}
