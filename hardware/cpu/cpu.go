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

// Package cpu emulates the ARM7TDMI processor at the heart of the console.
//
// The CPU is driven one pipeline step at a time by the Step() function. Each
// step fetches one opcode into the three slot pipeline, checks for a pending
// interrupt, executes the opcode fetched two steps earlier and then advances
// the pipeline. A write to the program counter flushes the pipeline so that
// the first two steps after a branch execute nothing.
//
// Opcodes are dispatched through two dense tables that are built once at
// package initialisation. The ARM table is indexed by bits 27 to 20 and bits
// 7 to 4 of the opcode. The Thumb table is indexed by bits 15 to 6.
//
// The CPU knows nothing about the memory map, the interrupt controller or the
// clock beyond the Bus, Interrupts and Clock interfaces.
package cpu

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/cpu/registers"
)

// Sentinal error patterns returned by Step().
const (
	InvalidOpcode = "cpu: invalid opcode %08x at %08x"
	HaltDeadlock  = "cpu: halted with no pending event"
)

// Bus is the CPU's view of memory. The bus is responsible for advancing the
// clock by the number of cycles each access takes.
type Bus interface {
	Fetch16(address uint32) uint16
	Fetch32(address uint32) uint32
	Read8(address uint32) uint8
	Read16(address uint32) uint16
	Read32(address uint32) uint32
	Write8(address uint32, data uint8)
	Write16(address uint32, data uint16)
	Write32(address uint32, data uint32)

	// Halted returns true if the CPU should not step until an interrupt is
	// pending
	Halted() bool
}

// Interrupts is the CPU's view of the interrupt controller.
type Interrupts interface {
	// Pending returns true if an enabled interrupt has been requested. If
	// bypass is true the master enable is ignored
	Pending(bypass bool) bool
}

// Clock is the CPU's view of the scheduler.
type Clock interface {
	Now() uint64
	Tick(cycles uint64)

	// JumpToNextEvent advances the clock to the next pending event. Returns
	// false if there is no pending event
	JumpToNextEvent() bool
}

// Tracer is notified of every executed instruction.
type Tracer interface {
	Trace(entry TraceEntry)
}

// TraceEntry describes a single executed instruction. The register values are
// those after the instruction has executed.
type TraceEntry struct {
	Timestamp uint64
	PC        uint32
	Opcode    uint32
	Thumb     bool
	Registers [16]uint32
	CPSR      uint32
}

// CPU implements the ARM7TDMI.
type CPU struct {
	env *environment.Environment

	bus   Bus
	irq   Interrupts
	clock Clock

	regs registers.File
	pipe pipeline

	// address of the instruction currently being executed
	executing uint32

	// the program counter has been written to by the executing instruction.
	// the pipeline will be flushed in the advance stage of Step()
	flush bool

	// non-nil once a fatal error has occurred. Step() will return this error
	// on every call until Reset()
	err error

	tracer Tracer
}

// NewCPU is the preferred method of initialisation for the CPU type. The CPU
// is returned in the reset state.
func NewCPU(env *environment.Environment, bus Bus, irq Interrupts, clock Clock) *CPU {
	c := &CPU{
		env:   env,
		bus:   bus,
		irq:   irq,
		clock: clock,
	}
	c.Reset()
	return c
}

func (c *CPU) String() string {
	s := strings.Builder{}
	s.WriteString(c.regs.String())
	s.WriteString(fmt.Sprintf("\npipeline: %s", c.pipe.String()))
	return s.String()
}

// Reset the CPU to the state it is in after power on. Execution begins at the
// reset vector in Supervisor mode.
func (c *CPU) Reset() {
	c.regs.Reset()
	c.pipe.flush()
	c.flush = false
	c.err = nil
	c.executing = 0
}

// SkipBIOS puts the CPU into the state the BIOS leaves it in immediately
// before jumping to the cartridge entry point.
func (c *CPU) SkipBIOS() {
	c.Reset()
	c.regs.SetMode(registers.Supervisor, registers.SP, 0x03007fe0)
	c.regs.SetMode(registers.IRQ, registers.SP, 0x03007fa0)
	c.regs.SetMode(registers.System, registers.SP, 0x03007f00)
	c.regs.CPSR.SetValue(uint32(registers.System))
	c.regs.Set(registers.PC, 0x08000000)
}

// AttachTracer sets the Tracer to be notified of executed instructions. A nil
// value removes any existing tracer.
func (c *CPU) AttachTracer(tracer Tracer) {
	c.tracer = tracer
}

// Registers returns the register file. Changes made through the returned
// pointer take effect immediately. Use SetPC() rather than writing R15
// directly.
func (c *CPU) Registers() *registers.File {
	return &c.regs
}

// Status returns a copy of the CPSR.
func (c *CPU) Status() registers.Status {
	return c.regs.CPSR
}

// Reg returns the value of a register as seen by the current mode.
func (c *CPU) Reg(reg int) uint32 {
	return c.regs.Get(reg)
}

// SetPC sets the address of the next instruction to fetch and empties the
// pipeline.
func (c *CPU) SetPC(address uint32) {
	c.regs.Set(registers.PC, address)
	c.flushPipeline()
}

// ExecutingAddress returns the address of the most recently executed
// instruction.
func (c *CPU) ExecutingAddress() uint32 {
	return c.executing
}

// NextExecuting returns the address of the instruction that will be executed
// by the next call to Step() and whether the pipeline is full enough for that
// to happen.
func (c *CPU) NextExecuting() (uint32, bool) {
	if c.pipe.filled < 2 {
		return 0, false
	}
	return c.regs.Get(registers.PC) - 2*c.width(), true
}

// Err returns the fatal error that has stopped the CPU, if any.
func (c *CPU) Err() error {
	return c.err
}

// width of an opcode in the current state.
func (c *CPU) width() uint32 {
	if c.regs.CPSR.Thumb {
		return 2
	}
	return 4
}

// Step the pipeline by one stage. Returns an error only if the CPU cannot
// continue.
func (c *CPU) Step() error {
	if c.err != nil {
		return c.err
	}

	thumb := c.regs.CPSR.Thumb
	pc := c.regs.Get(registers.PC)

	// fetch
	if thumb {
		c.pipe.fetch(uint32(c.bus.Fetch16(pc)))
	} else {
		c.pipe.fetch(c.bus.Fetch32(pc))
	}

	// interrupts are only taken when the pipeline is full
	if c.pipe.full() && !c.regs.CPSR.IRQDisable && c.irq.Pending(false) {
		c.interrupt()
		return nil
	}

	// execute
	if opcode, ok := c.pipe.executable(); ok {
		c.executing = pc - 2*c.width()

		if thumb {
			c.executeThumb(uint16(opcode))
		} else {
			c.executeARM(opcode)
		}

		if c.err != nil {
			return c.err
		}

		if c.tracer != nil {
			c.trace(opcode, thumb)
		}
	}

	// advance
	if c.flush {
		c.flushPipeline()
	} else {
		c.regs.Set(registers.PC, pc+c.width())
		c.pipe.advance()
	}

	// halt
	for c.bus.Halted() && !c.irq.Pending(true) {
		if !c.clock.JumpToNextEvent() {
			c.err = curated.Errorf(HaltDeadlock)
			c.env.Logs("CPU", c.err)
			return c.err
		}
	}

	return nil
}

// flushPipeline empties the pipeline and aligns the program counter to the
// width of the current state.
func (c *CPU) flushPipeline() {
	c.flush = false
	c.pipe.flush()
	c.regs.Set(registers.PC, c.regs.Get(registers.PC)&^(c.width()-1))
}

func (c *CPU) trace(opcode uint32, thumb bool) {
	e := TraceEntry{
		Timestamp: c.clock.Now(),
		PC:        c.executing,
		Opcode:    opcode,
		Thumb:     thumb,
		CPSR:      c.regs.CPSR.Value(),
	}
	for i := range e.Registers {
		e.Registers[i] = c.regs.Get(i)
	}
	c.tracer.Trace(e)
}

// getReg returns the value of a register as seen by the executing
// instruction.
func (c *CPU) getReg(reg int) uint32 {
	return c.regs.Get(reg)
}

// setReg writes to a register. Writing to the program counter causes the
// pipeline to be flushed once the instruction has completed.
func (c *CPU) setReg(reg int, v uint32) {
	c.regs.Set(reg, v)
	if reg == registers.PC {
		c.flush = true
	}
}

// internal charges the clock for cycles where the CPU does not access the
// bus.
func (c *CPU) internal(cycles uint64) {
	c.clock.Tick(cycles)
}
