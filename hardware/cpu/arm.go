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
	"github.com/jetsetilly/gopheradvance/curated"
)

// armHandler executes a single ARM opcode. The condition field has already
// been tested by the time the handler is called.
type armHandler func(c *CPU, opcode uint32)

// armTable is indexed by bits 27 to 20 and bits 7 to 4 of the opcode. Entries
// that are nil are not valid opcodes.
var armTable [4096]armHandler

// armIndex returns the armTable index for an opcode.
func armIndex(opcode uint32) uint32 {
	return (opcode>>16)&0xff0 | (opcode>>4)&0x00f
}

func init() {
	for i := range armTable {
		armTable[i] = decodeARM(uint32(i>>4), uint32(i&0x0f))
	}
}

// decodeARM returns the handler for the opcodes sharing the specified bits.
// The hi argument is bits 27 to 20 and the lo argument is bits 7 to 4.
//
// The order of the tests matters. More specific patterns are tested before
// the data processing patterns that they are carved out of.
func decodeARM(hi, lo uint32) armHandler {
	switch {
	case hi == 0x12 && lo == 0x1:
		// branch and exchange
		return armBranchExchange

	case hi&0xfc == 0x00 && lo == 0x9:
		// multiply and multiply-accumulate
		return armMultiply

	case hi&0xf8 == 0x08 && lo == 0x9:
		// multiply long
		return armMultiplyLong

	case hi&0xfb == 0x10 && lo == 0x9:
		// single data swap
		return armSwap

	case hi&0xe0 == 0x00 && lo&0x9 == 0x9:
		// halfword and signed data transfer. stores of signed values are not
		// part of ARMv4
		sh := (lo >> 1) & 0x03
		if sh == 0 || (hi&0x01 == 0x00 && sh != 0x01) {
			return nil
		}
		return armHalfwordTransfer(hi, lo)

	case hi&0xfb == 0x10 && lo == 0x0:
		// transfer PSR contents to a register
		return armMRS

	case hi&0xfb == 0x12 && lo == 0x0:
		// transfer register contents to PSR
		return armMSR

	case hi&0xfb == 0x32:
		// transfer immediate value to PSR
		return armMSR

	case hi&0xc0 == 0x00:
		// the test and compare instructions without the S bit are not data
		// processing instructions. any that reach this point are not valid
		if hi&0x19 == 0x10 {
			return nil
		}
		if hi&0x20 == 0x00 && lo&0x9 == 0x9 {
			return nil
		}
		return armDataProcessing(hi, lo)

	case hi&0xe0 == 0x60 && lo&0x1 == 0x1:
		// architecturally undefined
		return armUndefined

	case hi&0xc0 == 0x40:
		// single data transfer
		return armSingleTransfer(hi)

	case hi&0xe0 == 0x80:
		// block data transfer
		return armBlockTransfer(hi)

	case hi&0xe0 == 0xa0:
		// branch and branch with link
		return armBranch(hi&0x10 == 0x10)

	case hi&0xe0 == 0xc0 || hi&0xf0 == 0xe0:
		// coprocessor data transfer, data operation and register transfer.
		// there are no coprocessors
		return armUndefined

	case hi&0xf0 == 0xf0:
		// software interrupt
		return armSWI
	}

	return nil
}

func (c *CPU) executeARM(opcode uint32) {
	cond := uint8(opcode >> 28)
	if cond != 0b1110 {
		b, ok := c.regs.CPSR.Condition(cond)
		if !ok {
			c.env.Logf("CPU", "invalid condition code %04b at %08x", cond, c.executing)
		}
		if !b {
			return
		}
	}

	h := armTable[armIndex(opcode)]
	if h == nil {
		c.err = curated.Errorf(InvalidOpcode, opcode, c.executing)
		c.env.Logs("CPU", c.err)
		return
	}

	h(c, opcode)
}

func armUndefined(c *CPU, _ uint32) {
	c.undefined()
}

func armSWI(c *CPU, _ uint32) {
	c.softwareInterrupt()
}
