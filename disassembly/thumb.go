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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopheradvance/hardware/cpu/registers"
)

var thumbALUOperators = [16]string{
	"and", "eor", "lsl", "lsr", "asr", "adc", "sbc", "ror",
	"tst", "neg", "cmp", "cmn", "orr", "mul", "bic", "mvn",
}

func loReg(r uint16) string {
	return reg(uint32(r & 0x07))
}

// Thumb disassembles a 16bit Thumb opcode. The order of the tests is the same
// as the order used by the CPU to decode opcodes.
func Thumb(address uint32, opcode uint16) Entry {
	e := Entry{Address: address, Opcode: uint32(opcode), Thumb: true}

	switch {
	case opcode&0xf800 == 0x1800:
		// format 2
		e.Operator = "add"
		if opcode&0x0200 == 0x0200 {
			e.Operator = "sub"
		}
		if opcode&0x0400 == 0x0400 {
			e.Operand = fmt.Sprintf("%s, %s, #$%02x", loReg(opcode), loReg(opcode>>3), (opcode>>6)&0x07)
		} else {
			e.Operand = fmt.Sprintf("%s, %s, %s", loReg(opcode), loReg(opcode>>3), loReg(opcode>>6))
		}

	case opcode&0xe000 == 0x0000:
		// format 1
		op := (opcode >> 11) & 0x03
		e.Operator = shiftOperators[op]
		e.Operand = fmt.Sprintf("%s, %s, #$%02x", loReg(opcode), loReg(opcode>>3), (opcode>>6)&0x1f)

	case opcode&0xe000 == 0x2000:
		// format 3
		e.Operator = [4]string{"mov", "cmp", "add", "sub"}[(opcode>>11)&0x03]
		e.Operand = fmt.Sprintf("%s, #$%02x", loReg(opcode>>8), opcode&0xff)

	case opcode&0xfc00 == 0x4000:
		// format 4
		e.Operator = thumbALUOperators[(opcode>>6)&0x0f]
		e.Operand = fmt.Sprintf("%s, %s", loReg(opcode), loReg(opcode>>3))

	case opcode&0xfc00 == 0x4400:
		// format 5
		rd := uint32(opcode&0x07) | uint32(opcode>>4)&0x08
		rs := uint32(opcode>>3) & 0x0f
		switch (opcode >> 8) & 0x03 {
		case 0:
			e.Operator = "add"
		case 1:
			e.Operator = "cmp"
		case 2:
			e.Operator = "mov"
		case 3:
			e.Operator = "bx"
			e.Operand = reg(rs)
			return e
		}
		e.Operand = fmt.Sprintf("%s, %s", reg(rd), reg(rs))

	case opcode&0xf800 == 0x4800:
		// format 6
		e.Operator = "ldr"
		offset := uint32(opcode&0xff) << 2
		e.Operand = fmt.Sprintf("%s, [PC, #$%03x] ; $%08x", loReg(opcode>>8), offset, (address+4)&^0x03+offset)

	case opcode&0xf200 == 0x5000:
		// format 7
		e.Operator = [4]string{"str", "strb", "ldr", "ldrb"}[(opcode>>10)&0x03]
		e.Operand = fmt.Sprintf("%s, [%s, %s]", loReg(opcode), loReg(opcode>>3), loReg(opcode>>6))

	case opcode&0xf200 == 0x5200:
		// format 8
		e.Operator = [4]string{"strh", "ldsb", "ldrh", "ldsh"}[(opcode>>10)&0x03]
		e.Operand = fmt.Sprintf("%s, [%s, %s]", loReg(opcode), loReg(opcode>>3), loReg(opcode>>6))

	case opcode&0xe000 == 0x6000:
		// format 9
		offset := (opcode >> 6) & 0x1f
		if opcode&0x1000 == 0x1000 {
			e.Operator = "strb"
		} else {
			e.Operator = "str"
			offset <<= 2
		}
		if opcode&0x0800 == 0x0800 {
			e.Operator = "ldr" + e.Operator[3:]
		}
		e.Operand = fmt.Sprintf("%s, [%s, #$%02x]", loReg(opcode), loReg(opcode>>3), offset)

	case opcode&0xf000 == 0x8000:
		// format 10
		e.Operator = "strh"
		if opcode&0x0800 == 0x0800 {
			e.Operator = "ldrh"
		}
		e.Operand = fmt.Sprintf("%s, [%s, #$%02x]", loReg(opcode), loReg(opcode>>3), ((opcode>>6)&0x1f)<<1)

	case opcode&0xf000 == 0x9000:
		// format 11
		e.Operator = "str"
		if opcode&0x0800 == 0x0800 {
			e.Operator = "ldr"
		}
		e.Operand = fmt.Sprintf("%s, [SP, #$%03x]", loReg(opcode>>8), (opcode&0xff)<<2)

	case opcode&0xf000 == 0xa000:
		// format 12
		e.Operator = "add"
		src := "PC"
		if opcode&0x0800 == 0x0800 {
			src = "SP"
		}
		e.Operand = fmt.Sprintf("%s, %s, #$%03x", loReg(opcode>>8), src, (opcode&0xff)<<2)

	case opcode&0xff00 == 0xb000:
		// format 13
		e.Operator = "add"
		e.Operand = fmt.Sprintf("SP, #%s$%03x", sign(opcode&0x80 == 0x00), (opcode&0x7f)<<2)

	case opcode&0xf600 == 0xb400:
		// format 14
		list := uint32(opcode & 0xff)
		if opcode&0x0800 == 0x0800 {
			e.Operator = "pop"
			if opcode&0x0100 == 0x0100 {
				list |= 1 << 15
			}
		} else {
			e.Operator = "push"
			if opcode&0x0100 == 0x0100 {
				list |= 1 << 14
			}
		}
		e.Operand = regList(list)

	case opcode&0xf000 == 0xc000:
		// format 15
		e.Operator = "stmia"
		if opcode&0x0800 == 0x0800 {
			e.Operator = "ldmia"
		}
		e.Operand = fmt.Sprintf("%s!, %s", loReg(opcode>>8), regList(uint32(opcode&0xff)))

	case opcode&0xff00 == 0xdf00:
		// format 17
		e.Operator = "swi"
		e.Operand = fmt.Sprintf("#$%02x", opcode&0xff)

	case opcode&0xff00 == 0xde00:
		e.Operator = "undefined"

	case opcode&0xf000 == 0xd000:
		// format 16
		cond := registers.ConditionMnemonic(uint8(opcode >> 8))
		e.Operator = "b" + strings.ToLower(cond)
		offset := uint32(int32(int8(opcode)) << 1)
		e.Operand = fmt.Sprintf("$%08x", address+4+offset)

	case opcode&0xf800 == 0xe000:
		// format 18
		e.Operator = "b"
		offset := uint32(int32(uint32(opcode)<<21) >> 20)
		e.Operand = fmt.Sprintf("$%08x", address+4+offset)

	case opcode&0xf000 == 0xf000:
		// format 19. the target of the branch can not be known without the
		// other half of the instruction
		offset := uint32(opcode & 0x07ff)
		if opcode&0x0800 == 0x0800 {
			e.Operator = "bl"
			e.Operand = fmt.Sprintf("(low) #$%03x", offset<<1)
		} else {
			e.Operator = "bl"
			e.Operand = fmt.Sprintf("(high) #$%08x", uint32(int32(offset<<21)>>9))
		}

	default:
		e.Operator = "undefined"
	}

	return e
}
