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

// Package disassembly converts ARM and Thumb opcodes into a human readable
// form. It is used by the debugger to describe instructions and knows nothing
// about the state of the CPU. As such, branch targets are calculated from the
// address of the opcode alone.
package disassembly

import (
	"fmt"
	"strings"
)

// Entry is the disassembly of a single opcode.
type Entry struct {
	Address uint32
	Opcode  uint32
	Thumb   bool

	// formatted strings. the Operator is always lower case
	Operator string
	Operand  string
}

// String returns a very simple representation of the disassembly entry.
func (e Entry) String() string {
	if e.Operand == "" {
		return e.Operator
	}
	return fmt.Sprintf("%s %s", e.Operator, e.Operand)
}

// Line returns the entry with the address and opcode.
func (e Entry) Line() string {
	if e.Thumb {
		return fmt.Sprintf("%08x: %04x     %s", e.Address, e.Opcode, e)
	}
	return fmt.Sprintf("%08x: %08x %s", e.Address, e.Opcode, e)
}

// Disassemble an opcode in the specified state.
func Disassemble(address uint32, opcode uint32, thumb bool) Entry {
	if thumb {
		return Thumb(address, uint16(opcode))
	}
	return ARM(address, opcode)
}

var regNames = [16]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
	"R8", "R9", "R10", "R11", "R12", "SP", "LR", "PC",
}

func reg(r uint32) string {
	return regNames[r&0x0f]
}

// regList formats a register list. runs of three or more registers are
// collapsed into a range.
func regList(list uint32) string {
	var parts []string
	for i := uint32(0); i < 16; i++ {
		if list&(1<<i) == 0 {
			continue
		}
		j := i
		for j+1 < 16 && list&(1<<(j+1)) != 0 {
			j++
		}
		switch j - i {
		case 0:
			parts = append(parts, reg(i))
		case 1:
			parts = append(parts, reg(i), reg(j))
		default:
			parts = append(parts, fmt.Sprintf("%s-%s", reg(i), reg(j)))
		}
		i = j
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func sign(up bool) string {
	if up {
		return ""
	}
	return "-"
}
