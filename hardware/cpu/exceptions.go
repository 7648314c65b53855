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
	"github.com/jetsetilly/gopheradvance/hardware/cpu/registers"
)

// Exception vectors.
const (
	VectorReset     = 0x00
	VectorUndefined = 0x04
	VectorSWI       = 0x08
	VectorIRQ       = 0x18
)

// exception enters the specified mode at the vector. The return address is
// written to the link register of the new mode and the CPSR is saved in its
// SPSR. The CPU is always in ARM state with IRQs disabled on entry.
func (c *CPU) exception(mode registers.Mode, vector uint32, lr uint32) {
	old := c.regs.CPSR
	c.regs.CPSR.Mode = mode
	c.regs.SetSPSR(old)
	c.regs.CPSR.Thumb = false
	c.regs.CPSR.IRQDisable = true
	c.setReg(registers.LR, lr)
	c.setReg(registers.PC, vector)
}

// interrupt takes the IRQ exception before the instruction in the execute
// stage has been executed. That instruction is executed on return.
func (c *CPU) interrupt() {
	pc := c.regs.Get(registers.PC)
	if c.regs.CPSR.Thumb {
		c.exception(registers.IRQ, VectorIRQ, pc)
	} else {
		c.exception(registers.IRQ, VectorIRQ, pc-4)
	}
	c.flushPipeline()
}

// nextInstruction is the address of the instruction following the one
// executing.
func (c *CPU) nextInstruction() uint32 {
	return c.executing + c.width()
}

func (c *CPU) softwareInterrupt() {
	c.exception(registers.Supervisor, VectorSWI, c.nextInstruction())
}

func (c *CPU) undefined() {
	c.env.Logf("CPU", "undefined instruction at %08x", c.executing)
	c.exception(registers.Undefined, VectorUndefined, c.nextInstruction())
}
