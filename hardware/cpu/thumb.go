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

// thumbHandler executes a single Thumb opcode.
type thumbHandler func(c *CPU, opcode uint16)

// thumbTable is indexed by bits 15 to 6 of the opcode. Every entry is
// populated. Opcodes that are not valid are handled as undefined
// instructions.
var thumbTable [1024]thumbHandler

func init() {
	for i := range thumbTable {
		thumbTable[i] = decodeThumb(uint16(i << 6))
	}
}

// decodeThumb returns the handler for the format of an opcode. The bottom six
// bits of the opcode are never used to identify the format.
func decodeThumb(opcode uint16) thumbHandler {
	// working backwards up the table in Figure 5-1 of the ARM7TDMI Data Sheet.
	// the conditional branch tests are after the SWI and undefined tests that
	// are carved out of it
	switch {
	case opcode&0xf800 == 0x1800:
		// format 2 - add/subtract
		return thumbAddSubtract
	case opcode&0xe000 == 0x0000:
		// format 1 - move shifted register
		return thumbMoveShiftedRegister
	case opcode&0xe000 == 0x2000:
		// format 3 - move/compare/add/subtract immediate
		return thumbMovCmpAddSubImm
	case opcode&0xfc00 == 0x4000:
		// format 4 - ALU operations
		return thumbALUOperations
	case opcode&0xfc00 == 0x4400:
		// format 5 - hi register operations/branch exchange
		return thumbHiRegisterOps
	case opcode&0xf800 == 0x4800:
		// format 6 - PC-relative load
		return thumbPCrelativeLoad
	case opcode&0xf200 == 0x5000:
		// format 7 - load/store with register offset
		return thumbLoadStoreWithRegisterOffset
	case opcode&0xf200 == 0x5200:
		// format 8 - load/store sign-extended byte/halfword
		return thumbLoadStoreSignExtendedByteHalford
	case opcode&0xe000 == 0x6000:
		// format 9 - load/store with immediate offset
		return thumbLoadStoreWithImmOffset
	case opcode&0xf000 == 0x8000:
		// format 10 - load/store halfword
		return thumbLoadStoreHalfword
	case opcode&0xf000 == 0x9000:
		// format 11 - SP-relative load/store
		return thumbSPRelativeLoadStore
	case opcode&0xf000 == 0xa000:
		// format 12 - load address
		return thumbLoadAddress
	case opcode&0xff00 == 0xb000:
		// format 13 - add offset to stack pointer
		return thumbAddOffsetToSP
	case opcode&0xf600 == 0xb400:
		// format 14 - push/pop registers
		return thumbPushPopRegisters
	case opcode&0xf000 == 0xc000:
		// format 15 - multiple load/store
		return thumbMultipleLoadStore
	case opcode&0xff00 == 0xdf00:
		// format 17 - software interrupt
		return thumbSoftwareInterrupt
	case opcode&0xff00 == 0xde00:
		// condition 0b1110 is undefined for conditional branches
		return thumbUndefined
	case opcode&0xf000 == 0xd000:
		// format 16 - conditional branch
		return thumbConditionalBranch
	case opcode&0xf800 == 0xe000:
		// format 18 - unconditional branch
		return thumbUnconditionalBranch
	case opcode&0xf000 == 0xf000:
		// format 19 - long branch with link
		return thumbLongBranchWithLink
	}

	return thumbUndefined
}

func (c *CPU) executeThumb(opcode uint16) {
	thumbTable[opcode>>6](c, opcode)
}

func thumbUndefined(c *CPU, _ uint16) {
	c.undefined()
}

func thumbSoftwareInterrupt(c *CPU, _ uint16) {
	c.softwareInterrupt()
}

func thumbMoveShiftedRegister(c *CPU, opcode uint16) {
	// format 1 - move shifted register
	op := uint32(opcode>>11) & 0x03
	shift := uint32(opcode>>6) & 0x1f
	srcReg := int(opcode>>3) & 0x07
	destReg := int(opcode) & 0x07

	// the shift types match the ARM register operand and have the same
	// meaning for a zero shift amount
	result, cr := shiftImmediate(op, c.getReg(srcReg), shift, c.regs.CPSR.Carry)
	c.setLogical(result, cr)
	c.setReg(destReg, result)
}

func thumbAddSubtract(c *CPU, opcode uint16) {
	// format 2 - add/subtract
	immediate := opcode&0x0400 == 0x0400
	subtract := opcode&0x0200 == 0x0200
	imm := uint32(opcode>>6) & 0x07
	srcReg := int(opcode>>3) & 0x07
	destReg := int(opcode) & 0x07

	// value to work with is either an immediate value or is in a register
	val := imm
	if !immediate {
		val = c.getReg(int(imm))
	}

	if subtract {
		c.setReg(destReg, c.sub(c.getReg(srcReg), val, true))
		return
	}
	c.setReg(destReg, c.add(c.getReg(srcReg), val, true))
}

func thumbMovCmpAddSubImm(c *CPU, opcode uint16) {
	// format 3 - move/compare/add/subtract immediate
	op := (opcode & 0x1800) >> 11
	destReg := int(opcode>>8) & 0x07
	imm := uint32(opcode & 0x00ff)

	switch op {
	case 0b00:
		// MOV
		c.setReg(destReg, imm)
		c.regs.CPSR.SetNZ(imm)
	case 0b01:
		// CMP
		c.sub(c.getReg(destReg), imm, true)
	case 0b10:
		// ADD
		c.setReg(destReg, c.add(c.getReg(destReg), imm, true))
	case 0b11:
		// SUB
		c.setReg(destReg, c.sub(c.getReg(destReg), imm, true))
	}
}

func thumbALUOperations(c *CPU, opcode uint16) {
	// format 4 - ALU operations
	op := (opcode & 0x03c0) >> 6
	srcReg := int(opcode>>3) & 0x07
	destReg := int(opcode) & 0x07

	a := c.getReg(destReg)
	b := c.getReg(srcReg)

	switch op {
	case 0b0000:
		// AND
		r := a & b
		c.setLogical(r, carryUnchanged)
		c.setReg(destReg, r)
	case 0b0001:
		// EOR
		r := a ^ b
		c.setLogical(r, carryUnchanged)
		c.setReg(destReg, r)
	case 0b0010:
		// LSL
		r, cr := shiftRegister(shiftLSL, a, b)
		c.setLogical(r, cr)
		c.setReg(destReg, r)
		c.internal(1)
	case 0b0011:
		// LSR
		r, cr := shiftRegister(shiftLSR, a, b)
		c.setLogical(r, cr)
		c.setReg(destReg, r)
		c.internal(1)
	case 0b0100:
		// ASR
		r, cr := shiftRegister(shiftASR, a, b)
		c.setLogical(r, cr)
		c.setReg(destReg, r)
		c.internal(1)
	case 0b0101:
		// ADC
		c.setReg(destReg, c.addWithCarry(a, b, c.carryIn(), true))
	case 0b0110:
		// SBC
		c.setReg(destReg, c.addWithCarry(a, ^b, c.carryIn(), true))
	case 0b0111:
		// ROR
		r, cr := shiftRegister(shiftROR, a, b)
		c.setLogical(r, cr)
		c.setReg(destReg, r)
		c.internal(1)
	case 0b1000:
		// TST
		c.setLogical(a&b, carryUnchanged)
	case 0b1001:
		// NEG
		c.setReg(destReg, c.sub(0, b, true))
	case 0b1010:
		// CMP
		c.sub(a, b, true)
	case 0b1011:
		// CMN
		c.add(a, b, true)
	case 0b1100:
		// ORR
		r := a | b
		c.setLogical(r, carryUnchanged)
		c.setReg(destReg, r)
	case 0b1101:
		// MUL
		r := a * b
		c.regs.CPSR.SetNZ(r)
		c.setReg(destReg, r)
		c.internal(multiplierCycles(a, true))
	case 0b1110:
		// BIC
		r := a &^ b
		c.setLogical(r, carryUnchanged)
		c.setReg(destReg, r)
	case 0b1111:
		// MVN
		r := ^b
		c.setLogical(r, carryUnchanged)
		c.setReg(destReg, r)
	}
}

func thumbHiRegisterOps(c *CPU, opcode uint16) {
	// format 5 - hi register operations/branch exchange
	op := (opcode & 0x300) >> 8
	hi1 := opcode&0x80 == 0x80
	srcReg := int(opcode>>3) & 0x0f
	destReg := int(opcode) & 0x07
	if hi1 {
		destReg += 8
	}

	switch op {
	case 0b00:
		// ADD
		c.setReg(destReg, c.getReg(destReg)+c.getReg(srcReg))
	case 0b01:
		// CMP
		c.sub(c.getReg(destReg), c.getReg(srcReg), true)
	case 0b10:
		// MOV
		c.setReg(destReg, c.getReg(srcReg))
	case 0b11:
		// BX
		v := c.getReg(srcReg)
		c.regs.CPSR.Thumb = v&0x01 == 0x01
		c.setReg(registers.PC, v&^0x01)
	}
}

func thumbPCrelativeLoad(c *CPU, opcode uint16) {
	// format 6 - PC-relative load
	destReg := int(opcode>>8) & 0x07
	imm := uint32(opcode&0x00ff) << 2

	// bit 1 of the program counter is forced to zero
	address := (c.getReg(registers.PC) &^ 0x02) + imm
	c.setReg(destReg, c.bus.Read32(address))
	c.internal(1)
}

func thumbLoadStoreWithRegisterOffset(c *CPU, opcode uint16) {
	// format 7 - load/store with register offset
	load := opcode&0x0800 == 0x0800
	byteTransfer := opcode&0x0400 == 0x0400
	offsetReg := int(opcode>>6) & 0x07
	baseReg := int(opcode>>3) & 0x07
	reg := int(opcode) & 0x07

	address := c.getReg(baseReg) + c.getReg(offsetReg)

	if load {
		if byteTransfer {
			c.setReg(reg, uint32(c.bus.Read8(address)))
		} else {
			c.setReg(reg, c.load32(address))
		}
		c.internal(1)
		return
	}

	if byteTransfer {
		c.bus.Write8(address, uint8(c.getReg(reg)))
	} else {
		c.bus.Write32(address&^0x03, c.getReg(reg))
	}
}

func thumbLoadStoreSignExtendedByteHalford(c *CPU, opcode uint16) {
	// format 8 - load/store sign-extended byte/halfword
	hi := opcode&0x0800 == 0x0800
	sign := opcode&0x0400 == 0x0400
	offsetReg := int(opcode>>6) & 0x07
	baseReg := int(opcode>>3) & 0x07
	reg := int(opcode) & 0x07

	address := c.getReg(baseReg) + c.getReg(offsetReg)

	switch {
	case !sign && !hi:
		// STRH
		c.bus.Write16(address&^0x01, uint16(c.getReg(reg)))
		return
	case !sign && hi:
		// LDRH
		c.setReg(reg, c.load16(address))
	case sign && !hi:
		// LDSB
		c.setReg(reg, c.loadSigned8(address))
	case sign && hi:
		// LDSH
		c.setReg(reg, c.loadSigned16(address))
	}
	c.internal(1)
}

func thumbLoadStoreWithImmOffset(c *CPU, opcode uint16) {
	// format 9 - load/store with immediate offset
	byteTransfer := opcode&0x1000 == 0x1000
	load := opcode&0x0800 == 0x0800
	offset := uint32(opcode>>6) & 0x1f
	baseReg := int(opcode>>3) & 0x07
	reg := int(opcode) & 0x07

	// the offset is a word offset unless this is a byte transfer
	if !byteTransfer {
		offset <<= 2
	}

	address := c.getReg(baseReg) + offset

	if load {
		if byteTransfer {
			c.setReg(reg, uint32(c.bus.Read8(address)))
		} else {
			c.setReg(reg, c.load32(address))
		}
		c.internal(1)
		return
	}

	if byteTransfer {
		c.bus.Write8(address, uint8(c.getReg(reg)))
	} else {
		c.bus.Write32(address&^0x03, c.getReg(reg))
	}
}

func thumbLoadStoreHalfword(c *CPU, opcode uint16) {
	// format 10 - load/store halfword
	load := opcode&0x0800 == 0x0800
	offset := uint32(opcode>>6) & 0x1f
	baseReg := int(opcode>>3) & 0x07
	reg := int(opcode) & 0x07

	address := c.getReg(baseReg) + offset<<1

	if load {
		c.setReg(reg, c.load16(address))
		c.internal(1)
		return
	}

	c.bus.Write16(address&^0x01, uint16(c.getReg(reg)))
}

func thumbSPRelativeLoadStore(c *CPU, opcode uint16) {
	// format 11 - SP-relative load/store
	load := opcode&0x0800 == 0x0800
	reg := int(opcode>>8) & 0x07
	offset := uint32(opcode&0xff) << 2

	address := c.getReg(registers.SP) + offset

	if load {
		c.setReg(reg, c.load32(address))
		c.internal(1)
		return
	}

	c.bus.Write32(address&^0x03, c.getReg(reg))
}

func thumbLoadAddress(c *CPU, opcode uint16) {
	// format 12 - load address
	sp := opcode&0x0800 == 0x0800
	destReg := int(opcode>>8) & 0x07
	offset := uint32(opcode&0xff) << 2

	if sp {
		c.setReg(destReg, c.getReg(registers.SP)+offset)
		return
	}

	// bit 1 of the program counter is forced to zero
	c.setReg(destReg, (c.getReg(registers.PC)&^0x02)+offset)
}

func thumbAddOffsetToSP(c *CPU, opcode uint16) {
	// format 13 - add offset to stack pointer
	negative := opcode&0x80 == 0x80
	offset := uint32(opcode&0x7f) << 2

	if negative {
		c.setReg(registers.SP, c.getReg(registers.SP)-offset)
		return
	}
	c.setReg(registers.SP, c.getReg(registers.SP)+offset)
}

func thumbPushPopRegisters(c *CPU, opcode uint16) {
	// format 14 - push/pop registers
	pop := opcode&0x0800 == 0x0800
	pclr := opcode&0x0100 == 0x0100
	list := uint32(opcode & 0xff)

	sp := c.getReg(registers.SP)

	if pop {
		if pclr {
			list |= 1 << registers.PC
		}

		// an empty list loads the program counter and moves the stack
		// pointer by sixteen words
		if list == 0 {
			c.setReg(registers.PC, c.bus.Read32(sp&^0x03)&^0x01)
			c.setReg(registers.SP, sp+0x40)
			c.internal(1)
			return
		}

		address := sp
		for i := 0; i < 16; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			v := c.bus.Read32(address &^ 0x03)
			address += 4
			if i == registers.PC {
				// POP does not change state on ARMv4
				v &^= 0x01
			}
			c.setReg(i, v)
		}
		c.setReg(registers.SP, address)
		c.internal(1)
		return
	}

	if pclr {
		list |= 1 << registers.LR
	}

	if list == 0 {
		sp -= 0x40
		c.bus.Write32(sp&^0x03, c.getReg(registers.PC)+2)
		c.setReg(registers.SP, sp)
		return
	}

	sp -= uint32(bits.OnesCount32(list)) * 4
	address := sp
	for i := 0; i < 16; i++ {
		if list&(1<<i) == 0 {
			continue
		}
		c.bus.Write32(address&^0x03, c.getReg(i))
		address += 4
	}
	c.setReg(registers.SP, sp)
}

func thumbMultipleLoadStore(c *CPU, opcode uint16) {
	// format 15 - multiple load/store
	load := opcode&0x0800 == 0x0800
	baseReg := int(opcode>>8) & 0x07
	list := uint32(opcode & 0xff)

	base := c.getReg(baseReg)

	// an empty list transfers the program counter and moves the base by
	// sixteen words
	if list == 0 {
		if load {
			c.setReg(baseReg, base+0x40)
			c.setReg(registers.PC, c.bus.Read32(base&^0x03)&^0x01)
			c.internal(1)
		} else {
			c.bus.Write32(base&^0x03, c.getReg(registers.PC)+2)
			c.setReg(baseReg, base+0x40)
		}
		return
	}

	final := base + uint32(bits.OnesCount32(list))*4
	address := base

	if load {
		// writeback happens first so that a loaded base register wins
		c.setReg(baseReg, final)
		for i := 0; i < 8; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			c.setReg(i, c.bus.Read32(address&^0x03))
			address += 4
		}
		c.internal(1)
		return
	}

	first := true
	for i := 0; i < 8; i++ {
		if list&(1<<i) == 0 {
			continue
		}
		v := c.getReg(i)
		if i == baseReg && !first {
			v = final
		}
		c.bus.Write32(address&^0x03, v)
		address += 4
		first = false
	}
	c.setReg(baseReg, final)
}

func thumbConditionalBranch(c *CPU, opcode uint16) {
	// format 16 - conditional branch
	cond := uint8((opcode & 0x0f00) >> 8)
	offset := uint32(int32(int8(opcode&0xff)) << 1)

	if b, _ := c.regs.CPSR.Condition(cond); !b {
		return
	}

	c.setReg(registers.PC, c.getReg(registers.PC)+offset)
}

func thumbUnconditionalBranch(c *CPU, opcode uint16) {
	// format 18 - unconditional branch
	offset := uint32(int32(uint32(opcode)<<21) >> 20)
	c.setReg(registers.PC, c.getReg(registers.PC)+offset)
}

func thumbLongBranchWithLink(c *CPU, opcode uint16) {
	// format 19 - long branch with link
	low := opcode&0x0800 == 0x0800
	offset := uint32(opcode & 0x07ff)

	if !low {
		// first instruction of the pair. the offset is the high part of a
		// 23bit signed value
		hi := uint32(int32(offset<<21) >> 9)
		c.setReg(registers.LR, c.getReg(registers.PC)+hi)
		return
	}

	// second instruction of the pair. the link register holds the address
	// of the following instruction with bit 0 set
	target := c.getReg(registers.LR) + offset<<1
	c.setReg(registers.LR, c.nextInstruction()|0x01)
	c.setReg(registers.PC, target)
}
