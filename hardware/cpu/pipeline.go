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

package cpu

import (
	"fmt"
	"strings"
)

// pipeline is the three stage fetch/decode/execute pipeline. Opcodes are
// fetched into the slot at the cursor. The slot after the cursor holds the
// opcode fetched two steps earlier, which is the one to execute.
type pipeline struct {
	slot   [3]uint32
	valid  [3]bool
	cursor int

	// number of valid slots. saturates at three
	filled int
}

func (p *pipeline) String() string {
	s := strings.Builder{}
	for i := range p.slot {
		if i == p.cursor {
			s.WriteRune('>')
		} else {
			s.WriteRune(' ')
		}
		if p.valid[i] {
			s.WriteString(fmt.Sprintf("%08x", p.slot[i]))
		} else {
			s.WriteString("--------")
		}
	}
	return s.String()
}

func (p *pipeline) flush() {
	p.valid = [3]bool{}
	p.cursor = 0
	p.filled = 0
}

func (p *pipeline) fetch(opcode uint32) {
	p.slot[p.cursor] = opcode
	if !p.valid[p.cursor] {
		p.valid[p.cursor] = true
		p.filled++
	}
}

func (p *pipeline) full() bool {
	return p.filled == 3
}

// executable returns the opcode in the execute stage, if there is one.
func (p *pipeline) executable() (uint32, bool) {
	i := (p.cursor + 1) % 3
	return p.slot[i], p.valid[i]
}

func (p *pipeline) advance() {
	p.cursor = (p.cursor + 1) % 3
}
