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

import "math/bits"

// setLogical sets the flags for a logical operation. The carry flag comes from
// the shifter.
func (c *CPU) setLogical(result uint32, cr carry) {
	c.regs.CPSR.SetNZ(result)
	if cr != carryUnchanged {
		c.regs.CPSR.Carry = cr == carrySet
	}
}

// addWithCarry is the adder that every arithmetic operation is built on.
// Subtraction is addition of the inverted operand with a carry in of one, so
// that the carry out is the inverse of borrow.
func (c *CPU) addWithCarry(a, b, carryIn uint32, setFlags bool) uint32 {
	result, carryOut := bits.Add32(a, b, carryIn)
	if setFlags {
		c.regs.CPSR.SetNZ(result)
		c.regs.CPSR.Carry = carryOut == 1
		c.regs.CPSR.Overflow = (^(a ^ b)&(a^result))&0x80000000 != 0
	}
	return result
}

func (c *CPU) add(a, b uint32, setFlags bool) uint32 {
	return c.addWithCarry(a, b, 0, setFlags)
}

func (c *CPU) sub(a, b uint32, setFlags bool) uint32 {
	return c.addWithCarry(a, ^b, 1, setFlags)
}

func (c *CPU) carryIn() uint32 {
	if c.regs.CPSR.Carry {
		return 1
	}
	return 0
}

// multiplierCycles is the number of internal cycles taken by a multiply. The
// multiplier terminates early if the top bytes of the multiplier are all
// zero or, for signed multiplies, all one.
func multiplierCycles(rs uint32, signed bool) uint64 {
	if signed && rs&0x80000000 != 0 {
		rs = ^rs
	}
	switch {
	case rs&0xffffff00 == 0:
		return 1
	case rs&0xffff0000 == 0:
		return 2
	case rs&0xff000000 == 0:
		return 3
	}
	return 4
}
