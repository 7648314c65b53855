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
	"math/bits"
	"strings"

	"github.com/jetsetilly/gopheradvance/hardware/cpu/registers"
)

var dataOperators = [16]string{
	"and", "eor", "sub", "rsb", "add", "adc", "sbc", "rsc",
	"tst", "teq", "cmp", "cmn", "orr", "mov", "bic", "mvn",
}

var shiftOperators = [4]string{"lsl", "lsr", "asr", "ror"}

// ARM disassembles a 32bit ARM opcode. The order of the tests is the same as
// the order used by the CPU to decode opcodes.
func ARM(address uint32, opcode uint32) Entry {
	e := Entry{Address: address, Opcode: opcode}

	cond := registers.ConditionMnemonic(uint8(opcode >> 28))
	hi := (opcode >> 20) & 0xff
	lo := (opcode >> 4) & 0x0f

	switch {
	case hi == 0x12 && lo == 0x1:
		e.Operator = "bx"
		e.Operand = reg(opcode)

	case hi&0xfc == 0x00 && lo == 0x9:
		armMultiply(&e, opcode)

	case hi&0xf8 == 0x08 && lo == 0x9:
		armMultiplyLong(&e, opcode)

	case hi&0xfb == 0x10 && lo == 0x9:
		e.Operator = "swp"
		if hi&0x04 == 0x04 {
			e.Operator = "swpb"
		}
		e.Operand = fmt.Sprintf("%s, %s, [%s]", reg(opcode>>12), reg(opcode), reg(opcode>>16))

	case hi&0xe0 == 0x00 && lo&0x9 == 0x9:
		sh := (lo >> 1) & 0x03
		if sh == 0 || (hi&0x01 == 0x00 && sh != 0x01) {
			e.Operator = "invalid"
			return e
		}
		armHalfwordTransfer(&e, opcode)

	case hi&0xfb == 0x10 && lo == 0x0:
		e.Operator = "mrs"
		e.Operand = fmt.Sprintf("%s, %s", reg(opcode>>12), psrName(hi))

	case hi&0xfb == 0x12 && lo == 0x0:
		e.Operator = "msr"
		e.Operand = fmt.Sprintf("%s, %s", psrFields(hi, opcode), reg(opcode))

	case hi&0xfb == 0x32:
		e.Operator = "msr"
		e.Operand = fmt.Sprintf("%s, #$%02x", psrFields(hi, opcode), rotatedImmediate(opcode))

	case hi&0xc0 == 0x00:
		if hi&0x19 == 0x10 || (hi&0x20 == 0x00 && lo&0x9 == 0x9) {
			e.Operator = "invalid"
			return e
		}
		armDataProcessing(&e, opcode)

	case hi&0xe0 == 0x60 && lo&0x1 == 0x1:
		e.Operator = "undefined"

	case hi&0xc0 == 0x40:
		armSingleTransfer(&e, opcode)

	case hi&0xe0 == 0x80:
		armBlockTransfer(&e, opcode)

	case hi&0xe0 == 0xa0:
		e.Operator = "b"
		if hi&0x10 == 0x10 {
			e.Operator = "bl"
		}
		offset := uint32(int32(opcode<<8) >> 6)
		e.Operand = fmt.Sprintf("$%08x", address+8+offset)

	case hi&0xe0 == 0xc0 || hi&0xf0 == 0xe0:
		e.Operator = "undefined"
		e.Operand = "(coprocessor)"

	case hi&0xf0 == 0xf0:
		e.Operator = "swi"
		e.Operand = fmt.Sprintf("#$%06x", opcode&0xffffff)

	default:
		e.Operator = "invalid"
		return e
	}

	// the condition is inserted after the base operator and before any
	// suffix. for simplicity it is appended to the whole operator
	e.Operator = insertCondition(e.Operator, strings.ToLower(cond))

	return e
}

// operators with suffixes that the condition code goes before
var suffixed = []string{"ldm", "stm", "ldr", "str", "mul", "mla", "umull", "umlal", "smull", "smlal", "swp"}

func insertCondition(operator string, cond string) string {
	if cond == "" || operator == "undefined" {
		return operator
	}
	for _, s := range suffixed {
		if strings.HasPrefix(operator, s) {
			return s + cond + operator[len(s):]
		}
	}
	for _, d := range dataOperators {
		if strings.HasPrefix(operator, d) {
			return d + cond + operator[len(d):]
		}
	}
	return operator + cond
}

func psrName(hi uint32) string {
	if hi&0x04 == 0x04 {
		return "spsr"
	}
	return "cpsr"
}

func psrFields(hi uint32, opcode uint32) string {
	s := strings.Builder{}
	s.WriteString(psrName(hi))
	s.WriteRune('_')
	for i, f := range []rune{'c', 'x', 's', 'f'} {
		if opcode&(1<<(16+i)) != 0 {
			s.WriteRune(f)
		}
	}
	return s.String()
}

func rotatedImmediate(opcode uint32) uint32 {
	return bits.RotateLeft32(opcode&0xff, -int((opcode>>8)&0x0f)*2)
}

// shifted register operand, as used by data processing and single data
// transfer instructions.
func shiftedRegister(opcode uint32) string {
	rm := reg(opcode)
	typ := (opcode >> 5) & 0x03

	if opcode&0x10 == 0x10 {
		return fmt.Sprintf("%s, %s %s", rm, shiftOperators[typ], reg(opcode>>8))
	}

	amount := (opcode >> 7) & 0x1f
	if amount == 0 {
		switch typ {
		case 0:
			return rm
		case 3:
			return fmt.Sprintf("%s, rrx", rm)
		default:
			// lsr #0 and asr #0 encode a shift of 32
			amount = 32
		}
	}
	return fmt.Sprintf("%s, %s #%d", rm, shiftOperators[typ], amount)
}

func armDataProcessing(e *Entry, opcode uint32) {
	op := (opcode >> 21) & 0x0f
	setFlags := opcode&0x00100000 == 0x00100000

	var op2 string
	if opcode&0x02000000 == 0x02000000 {
		op2 = fmt.Sprintf("#$%02x", rotatedImmediate(opcode))
	} else {
		op2 = shiftedRegister(opcode)
	}

	e.Operator = dataOperators[op]
	rd := reg(opcode >> 12)
	rn := reg(opcode >> 16)

	switch op {
	case 0x8, 0x9, 0xa, 0xb:
		// test operations always set the flags
		e.Operand = fmt.Sprintf("%s, %s", rn, op2)
		return
	case 0xd, 0xf:
		e.Operand = fmt.Sprintf("%s, %s", rd, op2)
	default:
		e.Operand = fmt.Sprintf("%s, %s, %s", rd, rn, op2)
	}

	if setFlags {
		e.Operator += "s"
	}
}

func armMultiply(e *Entry, opcode uint32) {
	rd := reg(opcode >> 16)
	rn := reg(opcode >> 12)
	rs := reg(opcode >> 8)
	rm := reg(opcode)

	if opcode&0x00200000 == 0x00200000 {
		e.Operator = "mla"
		e.Operand = fmt.Sprintf("%s, %s, %s, %s", rd, rm, rs, rn)
	} else {
		e.Operator = "mul"
		e.Operand = fmt.Sprintf("%s, %s, %s", rd, rm, rs)
	}
	if opcode&0x00100000 == 0x00100000 {
		e.Operator += "s"
	}
}

func armMultiplyLong(e *Entry, opcode uint32) {
	signed := opcode&0x00400000 == 0x00400000
	accumulate := opcode&0x00200000 == 0x00200000

	switch {
	case signed && accumulate:
		e.Operator = "smlal"
	case signed:
		e.Operator = "smull"
	case accumulate:
		e.Operator = "umlal"
	default:
		e.Operator = "umull"
	}
	if opcode&0x00100000 == 0x00100000 {
		e.Operator += "s"
	}

	e.Operand = fmt.Sprintf("%s, %s, %s, %s", reg(opcode>>12), reg(opcode>>16), reg(opcode), reg(opcode>>8))
}

// addressing formats the address of a data transfer.
func addressing(rn string, offset string, pre bool, writeback bool) string {
	if !pre {
		return fmt.Sprintf("[%s], %s", rn, offset)
	}
	if writeback {
		return fmt.Sprintf("[%s, %s]!", rn, offset)
	}
	return fmt.Sprintf("[%s, %s]", rn, offset)
}

func armHalfwordTransfer(e *Entry, opcode uint32) {
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	immediate := opcode&0x00400000 == 0x00400000
	writeback := opcode&0x00200000 == 0x00200000
	load := opcode&0x00100000 == 0x00100000

	switch (opcode >> 5) & 0x03 {
	case 1:
		e.Operator = "strh"
		if load {
			e.Operator = "ldrh"
		}
	case 2:
		e.Operator = "ldrsb"
	case 3:
		e.Operator = "ldrsh"
	}

	var offset string
	if immediate {
		offset = fmt.Sprintf("#%s$%02x", sign(up), (opcode>>4)&0xf0|opcode&0x0f)
	} else {
		offset = fmt.Sprintf("%s%s", sign(up), reg(opcode))
	}

	e.Operand = fmt.Sprintf("%s, %s", reg(opcode>>12), addressing(reg(opcode>>16), offset, pre, writeback))
}

func armSingleTransfer(e *Entry, opcode uint32) {
	registerOffset := opcode&0x02000000 == 0x02000000
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	byteTransfer := opcode&0x00400000 == 0x00400000
	writeback := opcode&0x00200000 == 0x00200000
	load := opcode&0x00100000 == 0x00100000

	e.Operator = "str"
	if load {
		e.Operator = "ldr"
	}
	if byteTransfer {
		e.Operator += "b"
	}

	// post-indexed transfers with the W bit set use the user bank
	if !pre && writeback {
		e.Operator += "t"
	}

	var offset string
	if registerOffset {
		offset = fmt.Sprintf("%s%s", sign(up), shiftedRegister(opcode&^0x10))
	} else {
		offset = fmt.Sprintf("#%s$%03x", sign(up), opcode&0xfff)
	}

	e.Operand = fmt.Sprintf("%s, %s", reg(opcode>>12), addressing(reg(opcode>>16), offset, pre, writeback))
}

func armBlockTransfer(e *Entry, opcode uint32) {
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	psr := opcode&0x00400000 == 0x00400000
	writeback := opcode&0x00200000 == 0x00200000
	load := opcode&0x00100000 == 0x00100000

	e.Operator = "stm"
	if load {
		e.Operator = "ldm"
	}

	switch {
	case up && pre:
		e.Operator += "ib"
	case up:
		e.Operator += "ia"
	case pre:
		e.Operator += "db"
	default:
		e.Operator += "da"
	}

	s := strings.Builder{}
	s.WriteString(reg(opcode >> 16))
	if writeback {
		s.WriteRune('!')
	}
	s.WriteString(", ")
	s.WriteString(regList(opcode & 0xffff))
	if psr {
		s.WriteRune('^')
	}
	e.Operand = s.String()
}
