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

package registers

import (
	"strings"
)

// Status is a program status register. It is used for both the CPSR and for
// the saved copies (SPSR) held by the privileged modes.
//
// Bits that have no field are preserved in the reserved field so that a value
// written by MSR can be read back by MRS unchanged.
type Status struct {
	Negative bool
	Zero     bool
	Carry    bool
	Overflow bool

	IRQDisable bool
	FIQDisable bool
	Thumb      bool

	Mode Mode

	reserved uint32
}

const (
	bitNegative   = 0x80000000
	bitZero       = 0x40000000
	bitCarry      = 0x20000000
	bitOverflow   = 0x10000000
	bitIRQDisable = 0x00000080
	bitFIQDisable = 0x00000040
	bitThumb      = 0x00000020
	maskMode      = 0x0000001f

	maskReserved = ^uint32(bitNegative | bitZero | bitCarry | bitOverflow |
		bitIRQDisable | bitFIQDisable | bitThumb | maskMode)
)

func (sr Status) String() string {
	s := strings.Builder{}

	if sr.Negative {
		s.WriteRune('N')
	} else {
		s.WriteRune('n')
	}
	if sr.Zero {
		s.WriteRune('Z')
	} else {
		s.WriteRune('z')
	}
	if sr.Carry {
		s.WriteRune('C')
	} else {
		s.WriteRune('c')
	}
	if sr.Overflow {
		s.WriteRune('V')
	} else {
		s.WriteRune('v')
	}

	s.WriteRune(' ')

	if sr.IRQDisable {
		s.WriteRune('I')
	} else {
		s.WriteRune('i')
	}
	if sr.FIQDisable {
		s.WriteRune('F')
	} else {
		s.WriteRune('f')
	}
	if sr.Thumb {
		s.WriteRune('T')
	} else {
		s.WriteRune('t')
	}

	s.WriteRune(' ')
	s.WriteString(sr.Mode.String())

	return s.String()
}

// Value packs the register into the 32bit form used by MRS and MSR.
func (sr Status) Value() uint32 {
	v := sr.reserved | uint32(sr.Mode)&maskMode
	if sr.Negative {
		v |= bitNegative
	}
	if sr.Zero {
		v |= bitZero
	}
	if sr.Carry {
		v |= bitCarry
	}
	if sr.Overflow {
		v |= bitOverflow
	}
	if sr.IRQDisable {
		v |= bitIRQDisable
	}
	if sr.FIQDisable {
		v |= bitFIQDisable
	}
	if sr.Thumb {
		v |= bitThumb
	}
	return v
}

// SetValue unpacks a 32bit value into the register.
func (sr *Status) SetValue(v uint32) {
	sr.Negative = v&bitNegative == bitNegative
	sr.Zero = v&bitZero == bitZero
	sr.Carry = v&bitCarry == bitCarry
	sr.Overflow = v&bitOverflow == bitOverflow
	sr.IRQDisable = v&bitIRQDisable == bitIRQDisable
	sr.FIQDisable = v&bitFIQDisable == bitFIQDisable
	sr.Thumb = v&bitThumb == bitThumb
	sr.Mode = Mode(v & maskMode)
	sr.reserved = v & maskReserved
}

// SetNZ sets the negative and zero flags from a result.
func (sr *Status) SetNZ(a uint32) {
	sr.Negative = a&0x80000000 == 0x80000000
	sr.Zero = a == 0x00
}

// Condition evaluates one of the sixteen condition codes against the flags.
// The second return value is false if the condition code is not valid for
// the architecture (0b1111), in which case the first value is always true.
func (sr Status) Condition(cond uint8) (bool, bool) {
	switch cond & 0x0f {
	case 0b0000:
		// equal
		return sr.Zero, true
	case 0b0001:
		// not equal
		return !sr.Zero, true
	case 0b0010:
		// carry set
		return sr.Carry, true
	case 0b0011:
		// carry clear
		return !sr.Carry, true
	case 0b0100:
		// minus
		return sr.Negative, true
	case 0b0101:
		// plus
		return !sr.Negative, true
	case 0b0110:
		// overflow
		return sr.Overflow, true
	case 0b0111:
		// no overflow
		return !sr.Overflow, true
	case 0b1000:
		// unsigned higher C==1 and Z==0
		return sr.Carry && !sr.Zero, true
	case 0b1001:
		// unsigned lower or same C==0 or Z==1
		return !sr.Carry || sr.Zero, true
	case 0b1010:
		// signed greater than or equal N==V
		return sr.Negative == sr.Overflow, true
	case 0b1011:
		// signed less than N!=V
		return sr.Negative != sr.Overflow, true
	case 0b1100:
		// signed greater than Z==0 and N==V
		return !sr.Zero && sr.Negative == sr.Overflow, true
	case 0b1101:
		// signed less than or equal Z==1 or N!=V
		return sr.Zero || sr.Negative != sr.Overflow, true
	case 0b1110:
		return true, true
	}
	return true, false
}

// ConditionMnemonic returns the assembler suffix for a condition code.
func ConditionMnemonic(cond uint8) string {
	return conditionMnemonics[cond&0x0f]
}

var conditionMnemonics = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "", "NV",
}
