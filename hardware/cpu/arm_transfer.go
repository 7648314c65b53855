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

// LDR, STR, LDRB and STRB.
func armSingleTransfer(hi uint32) armHandler {
	registerOffset := hi&0x20 == 0x20
	pre := hi&0x10 == 0x10
	up := hi&0x08 == 0x08
	byteTransfer := hi&0x04 == 0x04
	load := hi&0x01 == 0x01

	// post-indexed transfers always write back
	writeback := hi&0x02 == 0x02 || !pre

	return func(c *CPU, opcode uint32) {
		rn := int((opcode >> 16) & 0x0f)
		rd := int((opcode >> 12) & 0x0f)

		var offset uint32
		if registerOffset {
			typ := (opcode >> 5) & 0x03
			offset, _ = shiftImmediate(typ, c.getReg(int(opcode&0x0f)), (opcode>>7)&0x1f, c.regs.CPSR.Carry)
		} else {
			offset = opcode & 0xfff
		}

		base := c.getReg(rn)
		target := base + offset
		if !up {
			target = base - offset
		}

		address := base
		if pre {
			address = target
		}

		if load {
			var v uint32
			if byteTransfer {
				v = uint32(c.bus.Read8(address))
			} else {
				v = c.load32(address)
			}
			if writeback {
				c.setReg(rn, target)
			}
			c.internal(1)
			c.setReg(rd, v)
			return
		}

		v := c.getReg(rd)
		if rd == registers.PC {
			v += 4
		}
		if byteTransfer {
			c.bus.Write8(address, uint8(v))
		} else {
			c.bus.Write32(address&^0x03, v)
		}
		if writeback {
			c.setReg(rn, target)
		}
	}
}

// LDRH, STRH, LDRSB and LDRSH.
func armHalfwordTransfer(hi, lo uint32) armHandler {
	pre := hi&0x10 == 0x10
	up := hi&0x08 == 0x08
	immediate := hi&0x04 == 0x04
	load := hi&0x01 == 0x01
	writeback := hi&0x02 == 0x02 || !pre
	sh := (lo >> 1) & 0x03

	return func(c *CPU, opcode uint32) {
		rn := int((opcode >> 16) & 0x0f)
		rd := int((opcode >> 12) & 0x0f)

		var offset uint32
		if immediate {
			offset = (opcode>>4)&0xf0 | opcode&0x0f
		} else {
			offset = c.getReg(int(opcode & 0x0f))
		}

		base := c.getReg(rn)
		target := base + offset
		if !up {
			target = base - offset
		}

		address := base
		if pre {
			address = target
		}

		if load {
			var v uint32
			switch sh {
			case 0b01:
				v = c.load16(address)
			case 0b10:
				v = c.loadSigned8(address)
			case 0b11:
				v = c.loadSigned16(address)
			}
			if writeback {
				c.setReg(rn, target)
			}
			c.internal(1)
			c.setReg(rd, v)
			return
		}

		v := c.getReg(rd)
		if rd == registers.PC {
			v += 4
		}
		c.bus.Write16(address&^0x01, uint16(v))
		if writeback {
			c.setReg(rn, target)
		}
	}
}

// LDM and STM.
//
// Registers are always transferred lowest numbered first to the lowest
// address, whatever the addressing mode. An empty register list transfers
// only the program counter but moves the base by sixteen words.
//
// When the base register is in the list of a store with writeback, the
// original base is stored if it is the first register transferred, otherwise
// the updated base is stored. When the base register is in the list of a
// load, the loaded value wins over the writeback.
func armBlockTransfer(hi uint32) armHandler {
	pre := hi&0x10 == 0x10
	up := hi&0x08 == 0x08
	psr := hi&0x04 == 0x04
	writeback := hi&0x02 == 0x02
	load := hi&0x01 == 0x01

	return func(c *CPU, opcode uint32) {
		rn := int((opcode >> 16) & 0x0f)
		list := opcode & 0xffff

		size := uint32(bits.OnesCount32(list)) * 4
		if list == 0 {
			list = 1 << registers.PC
			size = 0x40
		}

		base := c.getReg(rn)

		var address, final uint32
		if up {
			final = base + size
			address = base
			if pre {
				address += 4
			}
		} else {
			final = base - size
			address = final
			if !pre {
				address += 4
			}
		}

		// with the S bit set the user bank is transferred, except for a load
		// that includes the program counter. that form restores the CPSR
		// instead
		withPC := list&(1<<registers.PC) != 0
		userBank := psr && !(load && withPC)

		if load {
			if writeback {
				c.setReg(rn, final)
			}
			for i := 0; i < 16; i++ {
				if list&(1<<i) == 0 {
					continue
				}
				v := c.bus.Read32(address &^ 0x03)
				address += 4
				if userBank {
					c.regs.SetUser(i, v)
				} else {
					c.setReg(i, v)
				}
			}
			c.internal(1)

			if psr && withPC {
				if spsr, ok := c.regs.SPSR(); ok {
					c.regs.CPSR = spsr
				}
			}
			return
		}

		first := true
		for i := 0; i < 16; i++ {
			if list&(1<<i) == 0 {
				continue
			}

			var v uint32
			if userBank {
				v = c.regs.GetUser(i)
			} else {
				v = c.getReg(i)
			}

			if i == registers.PC {
				v += 4
			} else if i == rn && writeback && !first {
				v = final
			}

			c.bus.Write32(address&^0x03, v)
			address += 4
			first = false
		}

		if writeback {
			c.setReg(rn, final)
		}
	}
}
