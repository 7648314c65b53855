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

package debugger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
)

// breakpoints halt a running emulation when the CPU is about to execute the
// instruction at a specified address.
type breakpoints struct {
	addresses map[uint32]bool
}

func newBreakpoints() breakpoints {
	return breakpoints{addresses: make(map[uint32]bool)}
}

func (bp breakpoints) String() string {
	if len(bp.addresses) == 0 {
		return "no breakpoints"
	}
	s := strings.Builder{}
	for i, a := range bp.list() {
		if i > 0 {
			s.WriteRune('\n')
		}
		s.WriteString(fmt.Sprintf("%2d: %08x", i, a))
	}
	return s.String()
}

// list returns the breakpoint addresses in ascending order.
func (bp breakpoints) list() []uint32 {
	l := make([]uint32, 0, len(bp.addresses))
	for a := range bp.addresses {
		l = append(l, a)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	return l
}

func (bp breakpoints) add(address uint32) error {
	if bp.addresses[address] {
		return curated.Errorf("breakpoint already exists (%08x)", address)
	}
	bp.addresses[address] = true
	return nil
}

func (bp breakpoints) drop(address uint32) error {
	if !bp.addresses[address] {
		return curated.Errorf("no breakpoint at %08x", address)
	}
	delete(bp.addresses, address)
	return nil
}

func (bp breakpoints) clear() {
	for a := range bp.addresses {
		delete(bp.addresses, a)
	}
}

// check returns true if the next executing address is a breakpoint. the
// second argument is false when the pipeline is filling.
func (bp breakpoints) check(address uint32, ok bool) bool {
	return ok && bp.addresses[address]
}
