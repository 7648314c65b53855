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
	"math/bits"

	"github.com/jetsetilly/gopheradvance/hardware/cpu/registers"
)

// data processing operations. bits 24 to 21 of the opcode
const (
	opAND = iota
	opEOR
	opSUB
	opRSB
	opADD
	opADC
	opSBC
	opRSC
	opTST
	opTEQ
	opCMP
	opCMN
	opORR
	opMOV
	opBIC
	opMVN
)

func armDataProcessing(hi, lo uint32) armHandler {
	op := (hi >> 1) & 0x0f
	setFlags := hi&0x01 == 0x01
	immediate := hi&0x20 == 0x20
	registerShift := !immediate && lo&0x1 == 0x1

	return func(c *CPU, opcode uint32) {
		rn := int((opcode >> 16) & 0x0f)
		rd := int((opcode >> 12) & 0x0f)

		a := c.getReg(rn)

		var operand uint32
		var cr carry

		if immediate {
			operand, cr = rotateImmediate(opcode & 0xfff)
		} else {
			rm := int(opcode & 0x0f)
			typ := (opcode >> 5) & 0x03
			v := c.getReg(rm)

			if registerShift {
				// the program counter is a further word ahead when the
				// shift amount comes from a register
				if rm == registers.PC {
					v += 4
				}
				if rn == registers.PC {
					a += 4
				}
				operand, cr = shiftRegister(typ, v, c.getReg(int((opcode>>8)&0x0f)))
				c.internal(1)
			} else {
				operand, cr = shiftImmediate(typ, v, (opcode>>7)&0x1f, c.regs.CPSR.Carry)
			}
		}

		// a flag setting instruction with the program counter as the
		// destination restores the CPSR instead of setting flags
		flags := setFlags && rd != registers.PC

		var result uint32
		write := true

		switch op {
		case opAND:
			result = a & operand
			if flags {
				c.setLogical(result, cr)
			}
		case opEOR:
			result = a ^ operand
			if flags {
				c.setLogical(result, cr)
			}
		case opSUB:
			result = c.sub(a, operand, flags)
		case opRSB:
			result = c.sub(operand, a, flags)
		case opADD:
			result = c.add(a, operand, flags)
		case opADC:
			result = c.addWithCarry(a, operand, c.carryIn(), flags)
		case opSBC:
			result = c.addWithCarry(a, ^operand, c.carryIn(), flags)
		case opRSC:
			result = c.addWithCarry(operand, ^a, c.carryIn(), flags)
		case opTST:
			write = false
			if flags {
				c.setLogical(a&operand, cr)
			}
		case opTEQ:
			write = false
			if flags {
				c.setLogical(a^operand, cr)
			}
		case opCMP:
			write = false
			c.sub(a, operand, flags)
		case opCMN:
			write = false
			c.add(a, operand, flags)
		case opORR:
			result = a | operand
			if flags {
				c.setLogical(result, cr)
			}
		case opMOV:
			result = operand
			if flags {
				c.setLogical(result, cr)
			}
		case opBIC:
			result = a &^ operand
			if flags {
				c.setLogical(result, cr)
			}
		case opMVN:
			result = ^operand
			if flags {
				c.setLogical(result, cr)
			}
		}

		if setFlags && rd == registers.PC {
			if spsr, ok := c.regs.SPSR(); ok {
				c.regs.CPSR = spsr
			}
		}

		if write {
			c.setReg(rd, result)
		}
	}
}

func armMRS(c *CPU, opcode uint32) {
	rd := int((opcode >> 12) & 0x0f)
	if opcode&0x00400000 == 0x00400000 {
		spsr, _ := c.regs.SPSR()
		c.setReg(rd, spsr.Value())
		return
	}
	c.setReg(rd, c.regs.CPSR.Value())
}

func armMSR(c *CPU, opcode uint32) {
	var v uint32
	if opcode&0x02000000 == 0x02000000 {
		v, _ = rotateImmediate(opcode & 0xfff)
	} else {
		v = c.getReg(int(opcode & 0x0f))
	}

	// field mask
	var mask uint32
	if opcode&0x00080000 == 0x00080000 {
		mask |= 0xff000000
	}
	if opcode&0x00040000 == 0x00040000 {
		mask |= 0x00ff0000
	}
	if opcode&0x00020000 == 0x00020000 {
		mask |= 0x0000ff00
	}
	if opcode&0x00010000 == 0x00010000 {
		mask |= 0x000000ff
	}

	if opcode&0x00400000 == 0x00400000 {
		spsr, ok := c.regs.SPSR()
		if !ok {
			return
		}
		spsr.SetValue(spsr.Value()&^mask | v&mask)
		c.regs.SetSPSR(spsr)
		return
	}

	// only the flags can be changed from user mode. the T bit can never be
	// changed by MSR
	if !c.regs.CPSR.Mode.Privileged() {
		mask &= 0xff000000
	}
	mask &^= 0x00000020

	cpsr := c.regs.CPSR
	cpsr.SetValue(cpsr.Value()&^mask | v&mask)
	if !cpsr.Mode.Valid() {
		c.env.Logf("CPU", "MSR to invalid mode %#02x at %08x", uint8(cpsr.Mode), c.executing)
	}
	c.regs.CPSR = cpsr
}

func armMultiply(c *CPU, opcode uint32) {
	accumulate := opcode&0x00200000 == 0x00200000
	setFlags := opcode&0x00100000 == 0x00100000
	rd := int((opcode >> 16) & 0x0f)
	rn := int((opcode >> 12) & 0x0f)
	rs := int((opcode >> 8) & 0x0f)
	rm := int(opcode & 0x0f)

	m := c.getReg(rs)
	result := c.getReg(rm) * m
	c.internal(multiplierCycles(m, true))

	if accumulate {
		result += c.getReg(rn)
		c.internal(1)
	}

	if setFlags {
		c.regs.CPSR.SetNZ(result)
	}

	c.setReg(rd, result)
}

func armMultiplyLong(c *CPU, opcode uint32) {
	signed := opcode&0x00400000 == 0x00400000
	accumulate := opcode&0x00200000 == 0x00200000
	setFlags := opcode&0x00100000 == 0x00100000
	rdHi := int((opcode >> 16) & 0x0f)
	rdLo := int((opcode >> 12) & 0x0f)
	rs := int((opcode >> 8) & 0x0f)
	rm := int(opcode & 0x0f)

	a := c.getReg(rm)
	b := c.getReg(rs)

	var result uint64
	if signed {
		result = uint64(int64(int32(a)) * int64(int32(b)))
	} else {
		result = uint64(a) * uint64(b)
	}
	c.internal(multiplierCycles(b, signed) + 1)

	if accumulate {
		result += uint64(c.getReg(rdHi))<<32 | uint64(c.getReg(rdLo))
		c.internal(1)
	}

	if setFlags {
		c.regs.CPSR.Negative = result&0x8000000000000000 != 0
		c.regs.CPSR.Zero = result == 0
	}

	c.setReg(rdLo, uint32(result))
	c.setReg(rdHi, uint32(result>>32))
}

func armSwap(c *CPU, opcode uint32) {
	byteSwap := opcode&0x00400000 == 0x00400000
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)
	rm := int(opcode & 0x0f)

	address := c.getReg(rn)
	src := c.getReg(rm)

	if byteSwap {
		v := c.bus.Read8(address)
		c.bus.Write8(address, uint8(src))
		c.setReg(rd, uint32(v))
	} else {
		v := c.load32(address)
		c.bus.Write32(address&^0x03, src)
		c.setReg(rd, v)
	}

	c.internal(1)
}

func armBranchExchange(c *CPU, opcode uint32) {
	v := c.getReg(int(opcode & 0x0f))
	c.regs.CPSR.Thumb = v&0x01 == 0x01
	c.setReg(registers.PC, v&^0x01)
}

func armBranch(link bool) armHandler {
	return func(c *CPU, opcode uint32) {
		// 24bit signed word offset
		offset := uint32(int32(opcode<<8) >> 6)
		pc := c.getReg(registers.PC)
		if link {
			c.setReg(registers.LR, pc-4)
		}
		c.setReg(registers.PC, pc+offset)
	}
}

// load32 reads a word from memory. A misaligned address reads the aligned
// word rotated so that the addressed byte is in the bottom byte.
func (c *CPU) load32(address uint32) uint32 {
	v := c.bus.Read32(address &^ 0x03)
	return bits.RotateLeft32(v, -int(address&0x03)*8)
}

// load16 reads a halfword from memory. A misaligned address reads the aligned
// halfword rotated by eight bits.
func (c *CPU) load16(address uint32) uint32 {
	v := uint32(c.bus.Read16(address &^ 0x01))
	if address&0x01 == 0x01 {
		return bits.RotateLeft32(v, -8)
	}
	return v
}

// loadSigned16 reads a sign extended halfword. A misaligned address reads the
// sign extended byte instead.
func (c *CPU) loadSigned16(address uint32) uint32 {
	if address&0x01 == 0x01 {
		return c.loadSigned8(address)
	}
	return uint32(int32(int16(c.bus.Read16(address))))
}

func (c *CPU) loadSigned8(address uint32) uint32 {
	return uint32(int32(int8(c.bus.Read8(address))))
}
