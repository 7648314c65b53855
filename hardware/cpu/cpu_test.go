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

package cpu_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/cpu"
	"github.com/jetsetilly/gopheradvance/hardware/cpu/registers"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/test"
)

// testBus is 64k of memory mirrored across the address space. Every access
// takes one cycle.
type testBus struct {
	mem    [0x10000]byte
	sch    *scheduler.Scheduler
	irq    *interrupts.Controller
	halted bool
}

func (b *testBus) Fetch16(address uint32) uint16 { return b.Read16(address) }
func (b *testBus) Fetch32(address uint32) uint32 { return b.Read32(address) }

func (b *testBus) Read8(address uint32) uint8 {
	b.sch.Tick(1)
	return b.mem[address&0xffff]
}

func (b *testBus) Read16(address uint32) uint16 {
	b.sch.Tick(1)
	return binary.LittleEndian.Uint16(b.mem[address&0xfffe:])
}

func (b *testBus) Read32(address uint32) uint32 {
	b.sch.Tick(1)
	return binary.LittleEndian.Uint32(b.mem[address&0xfffc:])
}

func (b *testBus) Write8(address uint32, data uint8) {
	b.sch.Tick(1)
	b.mem[address&0xffff] = data
}

func (b *testBus) Write16(address uint32, data uint16) {
	b.sch.Tick(1)
	binary.LittleEndian.PutUint16(b.mem[address&0xfffe:], data)
}

func (b *testBus) Write32(address uint32, data uint32) {
	b.sch.Tick(1)
	binary.LittleEndian.PutUint32(b.mem[address&0xfffc:], data)
}

func (b *testBus) Halted() bool {
	if b.halted && b.irq.Pending(true) {
		b.halted = false
	}
	return b.halted
}

// arm writes a sequence of ARM opcodes starting at address.
func (b *testBus) arm(address uint32, opcodes ...uint32) {
	for _, o := range opcodes {
		binary.LittleEndian.PutUint32(b.mem[address&0xfffc:], o)
		address += 4
	}
}

// thumb writes a sequence of Thumb opcodes starting at address.
func (b *testBus) thumb(address uint32, opcodes ...uint16) {
	for _, o := range opcodes {
		binary.LittleEndian.PutUint16(b.mem[address&0xfffe:], o)
		address += 2
	}
}

func (b *testBus) word(address uint32) uint32 {
	return binary.LittleEndian.Uint32(b.mem[address&0xfffc:])
}

type testTracer struct {
	entries []cpu.TraceEntry
}

func (tr *testTracer) Trace(e cpu.TraceEntry) {
	tr.entries = append(tr.entries, e)
}

type harness struct {
	env    *environment.Environment
	sch    *scheduler.Scheduler
	irq    *interrupts.Controller
	bus    *testBus
	cpu    *cpu.CPU
	tracer *testTracer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)

	h := &harness{env: env}
	h.sch = scheduler.NewScheduler()
	h.irq = interrupts.NewController(h.sch)
	h.bus = &testBus{sch: h.sch, irq: h.irq}
	h.cpu = cpu.NewCPU(env, h.bus, h.irq, h.sch)
	h.tracer = &testTracer{}
	h.cpu.AttachTracer(h.tracer)
	return h
}

func (h *harness) step(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		test.DemandSuccess(t, h.cpu.Step())
	}
}

// run steps the CPU until n instructions have been executed.
func (h *harness) run(t *testing.T, n int) {
	t.Helper()
	target := len(h.tracer.entries) + n
	for len(h.tracer.entries) < target {
		test.DemandSuccess(t, h.cpu.Step())
	}
}

const nop = 0xe1a00000

func TestResetState(t *testing.T) {
	h := newHarness(t)
	st := h.cpu.Status()
	test.ExpectEquality(t, st.Mode, registers.Supervisor)
	test.ExpectSuccess(t, st.IRQDisable)
	test.ExpectFailure(t, st.Thumb)
	test.ExpectEquality(t, h.cpu.Reg(registers.PC), 0)
}

func TestSkipBIOS(t *testing.T) {
	h := newHarness(t)
	h.cpu.SkipBIOS()

	regs := h.cpu.Registers()
	test.ExpectEquality(t, regs.CPSR.Mode, registers.System)
	test.ExpectEquality(t, regs.Get(registers.PC), 0x08000000)
	test.ExpectEquality(t, regs.Get(registers.SP), 0x03007f00)
	test.ExpectEquality(t, regs.GetMode(registers.IRQ, registers.SP), 0x03007fa0)
	test.ExpectEquality(t, regs.GetMode(registers.Supervisor, registers.SP), 0x03007fe0)
}

func TestPipelineDepth(t *testing.T) {
	h := newHarness(t)
	h.bus.arm(0, 0xe2811001, 0xe2811001, 0xe2811001)

	h.step(t, 2)
	test.ExpectEquality(t, len(h.tracer.entries), 0)

	h.step(t, 1)
	test.ExpectEquality(t, len(h.tracer.entries), 1)
	test.ExpectEquality(t, h.tracer.entries[0].PC, 0)
	test.ExpectEquality(t, h.cpu.Reg(1), 1)

	// program counter is two instructions ahead of the executing instruction
	test.ExpectEquality(t, h.cpu.Reg(registers.PC), 0x0c)

	h.step(t, 1)
	test.ExpectEquality(t, h.tracer.entries[1].PC, 4)
	test.ExpectEquality(t, h.cpu.Reg(1), 2)
}

func TestBranchWithLink(t *testing.T) {
	h := newHarness(t)

	// BL 0x100
	h.bus.arm(0, 0xeb00003e, 0xe2811001, 0xe2811001)
	h.bus.arm(0x100, 0xe2822001)

	h.step(t, 3)
	test.ExpectEquality(t, len(h.tracer.entries), 1)
	test.ExpectEquality(t, h.cpu.Reg(registers.LR), 4)
	test.ExpectEquality(t, h.cpu.Reg(registers.PC), 0x100)

	// nothing executes while the pipeline refills
	h.step(t, 2)
	test.ExpectEquality(t, len(h.tracer.entries), 1)

	h.step(t, 1)
	test.ExpectEquality(t, len(h.tracer.entries), 2)
	test.ExpectEquality(t, h.tracer.entries[1].PC, 0x100)
	test.ExpectEquality(t, h.cpu.Reg(1), 0)
	test.ExpectEquality(t, h.cpu.Reg(2), 1)
}

func TestInvalidOpcode(t *testing.T) {
	h := newHarness(t)
	h.bus.arm(0, 0xe1600010)

	h.step(t, 2)
	err := h.cpu.Step()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cpu.InvalidOpcode))
	test.ExpectEquality(t, h.env.Log.Len(), 1)

	// the CPU will not continue
	err2 := h.cpu.Step()
	test.ExpectSuccess(t, curated.Is(err2, cpu.InvalidOpcode))
	test.ExpectEquality(t, err2.Error(), err.Error())

	h.cpu.Reset()
	h.bus.arm(0, nop)
	test.ExpectSuccess(t, h.cpu.Step())
}

func TestReservedCondition(t *testing.T) {
	h := newHarness(t)

	// ADD r1, r1, #1 with the reserved condition code
	h.bus.arm(0, 0xf2811001)
	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(1), 1)
	test.ExpectEquality(t, h.env.Log.Len(), 1)
}

func TestConditionFailed(t *testing.T) {
	h := newHarness(t)

	// MOVS r0, #0 ; MOVNE r1, #1 ; MOVEQ r2, #1
	h.bus.arm(0, 0xe3b00000, 0x13a01001, 0x03a02001)
	h.run(t, 3)
	test.ExpectSuccess(t, h.cpu.Status().Zero)
	test.ExpectEquality(t, h.cpu.Reg(1), 0)
	test.ExpectEquality(t, h.cpu.Reg(2), 1)
}

func TestDataProcessing(t *testing.T) {
	h := newHarness(t)

	h.bus.arm(0,
		0xe3a00001, // MOV r0, #1
		0xe3500002, // CMP r0, #2
		0xe3e01000, // MVN r1, #0
		0xe0912000, // ADDS r2, r1, r0
		0xe1a03020, // MOV r3, r0, LSR #32
		0xe0a04000, // ADC r4, r0, r0
	)

	h.run(t, 2)
	st := h.cpu.Status()
	test.ExpectSuccess(t, st.Negative)
	test.ExpectFailure(t, st.Carry)
	test.ExpectFailure(t, st.Zero)

	h.run(t, 2)
	test.ExpectEquality(t, h.cpu.Reg(1), 0xffffffff)
	test.ExpectEquality(t, h.cpu.Reg(2), 0)
	st = h.cpu.Status()
	test.ExpectSuccess(t, st.Zero)
	test.ExpectSuccess(t, st.Carry)

	h.run(t, 2)
	test.ExpectEquality(t, h.cpu.Reg(3), 0)
	test.ExpectEquality(t, h.cpu.Reg(4), 3)
}

func TestRegisterShiftReadsProgramCounterAhead(t *testing.T) {
	h := newHarness(t)

	// MOV r1, #0 ; ADD r0, pc, r1, LSL r1
	h.bus.arm(0, 0xe3a01000, 0xe08f0111)
	h.run(t, 2)
	test.ExpectEquality(t, h.cpu.Reg(0), 0x04+12)
}

func TestMultiply(t *testing.T) {
	h := newHarness(t)
	regs := h.cpu.Registers()

	h.bus.arm(0,
		0xe0020190, // MUL r2, r0, r1
		0xe0832190, // UMULL r2, r3, r0, r1
		0xe0c54190, // SMULL r4, r5, r0, r1
	)

	regs.Set(0, 0xffffffff)
	regs.Set(1, 2)

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(2), 0xfffffffe)

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(2), 0xfffffffe)
	test.ExpectEquality(t, h.cpu.Reg(3), 1)

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(4), 0xfffffffe)
	test.ExpectEquality(t, h.cpu.Reg(5), 0xffffffff)
}

func TestPSRTransfer(t *testing.T) {
	h := newHarness(t)

	h.bus.arm(0,
		0xe328f4f0, // MSR CPSR_f, #0xf0000000
		0xe10f0000, // MRS r0, CPSR
		0xe321f010, // MSR CPSR_c, #0x10
		0xe321f01f, // MSR CPSR_c, #0x1f
	)

	h.run(t, 2)
	test.ExpectEquality(t, h.cpu.Reg(0), 0xf00000d3)

	// in user mode the control field cannot be changed
	h.run(t, 2)
	test.ExpectEquality(t, h.cpu.Status().Mode, registers.User)
}

func TestLoadStore(t *testing.T) {
	h := newHarness(t)
	regs := h.cpu.Registers()

	h.bus.arm(0x1000, 0x11223344)

	h.bus.arm(0,
		0xe5901000, // LDR r1, [r0]
		0xe5d02000, // LDRB r2, [r0]
		0xe5a03004, // STR r3, [r0, #4]!
		0xe4904004, // LDR r4, [r0], #4
	)

	regs.Set(0, 0x1001)
	regs.Set(3, 0xcafef00d)

	h.run(t, 2)
	test.ExpectEquality(t, h.cpu.Reg(1), 0x44112233)
	test.ExpectEquality(t, h.cpu.Reg(2), 0x33)

	h.run(t, 1)
	test.ExpectEquality(t, h.bus.word(0x1004), 0xcafef00d)
	test.ExpectEquality(t, h.cpu.Reg(0), 0x1005)

	// post-indexed always writes back
	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(4), 0x0dcafef0)
	test.ExpectEquality(t, h.cpu.Reg(0), 0x1009)
}

func TestHalfwordTransfer(t *testing.T) {
	h := newHarness(t)
	regs := h.cpu.Registers()

	h.bus.arm(0x1000, 0x8081fffe)
	h.bus.arm(0,
		0xe1d010b0, // LDRH r1, [r0]
		0xe1d020f2, // LDRSH r2, [r0, #2]
		0xe1d030d2, // LDRSB r3, [r0, #2]
		0xe1c040b8, // STRH r4, [r0, #8]
	)
	regs.Set(0, 0x1000)
	regs.Set(4, 0x12345678)

	h.run(t, 4)
	test.ExpectEquality(t, h.cpu.Reg(1), 0xfffe)
	test.ExpectEquality(t, h.cpu.Reg(2), 0xffff8081)
	test.ExpectEquality(t, h.cpu.Reg(3), 0xffffff81)
	test.ExpectEquality(t, h.bus.word(0x1008), 0x5678)
}

func TestSwap(t *testing.T) {
	h := newHarness(t)
	regs := h.cpu.Registers()

	h.bus.arm(0x1000, 0xaaaaaaaa)

	// SWP r2, r1, [r0]
	h.bus.arm(0, 0xe1002091)
	regs.Set(0, 0x1000)
	regs.Set(1, 0x55555555)

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(2), 0xaaaaaaaa)
	test.ExpectEquality(t, h.bus.word(0x1000), 0x55555555)
}

func TestBlockTransfer(t *testing.T) {
	h := newHarness(t)
	regs := h.cpu.Registers()

	h.bus.arm(0,
		0xe92d000f, // STMDB sp!, {r0-r3}
		0xe8bd00f0, // LDMIA sp!, {r4-r7}
	)

	regs.Set(registers.SP, 0x2000)
	for i := 0; i < 4; i++ {
		regs.Set(i, uint32(0x10+i))
	}

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(registers.SP), 0x1ff0)
	test.ExpectEquality(t, h.bus.word(0x1ff0), 0x10)
	test.ExpectEquality(t, h.bus.word(0x1ffc), 0x13)

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(registers.SP), 0x2000)
	for i := 0; i < 4; i++ {
		test.ExpectEquality(t, h.cpu.Reg(4+i), uint32(0x10+i))
	}
}

func TestBlockTransferBaseInList(t *testing.T) {
	h := newHarness(t)
	regs := h.cpu.Registers()

	h.bus.arm(0,
		0xe8a00003, // STMIA r0!, {r0, r1}
		0xe8a10003, // STMIA r1!, {r0, r1}
		0xe8b20004, // LDMIA r2!, {r2}
	)

	regs.Set(0, 0x1000)
	regs.Set(1, 0x1100)
	regs.Set(2, 0x1200)
	h.bus.arm(0x1200, 0xdeadbeef)

	// base is first in the list. the original value is stored
	h.run(t, 1)
	test.ExpectEquality(t, h.bus.word(0x1000), 0x1000)
	test.ExpectEquality(t, h.cpu.Reg(0), 0x1008)

	// base is not first in the list. the updated value is stored
	h.run(t, 1)
	test.ExpectEquality(t, h.bus.word(0x1100), 0x1008)
	test.ExpectEquality(t, h.bus.word(0x1104), 0x1108)

	// loaded value beats writeback
	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(2), 0xdeadbeef)
}

func TestBlockTransferEmptyList(t *testing.T) {
	h := newHarness(t)
	regs := h.cpu.Registers()

	// STMIA r0!, {}
	h.bus.arm(0, 0xe8a00000)
	regs.Set(0, 0x1000)

	h.run(t, 1)
	test.ExpectEquality(t, h.bus.word(0x1000), 0x0c)
	test.ExpectEquality(t, h.cpu.Reg(0), 0x1040)

	// LDMIA r0!, {}
	h.cpu.Reset()
	h.bus.arm(0, 0xe8b00000)
	h.bus.arm(0x1000, 0x200)
	h.cpu.Registers().Set(0, 0x1000)

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(registers.PC), 0x200)
	test.ExpectEquality(t, h.cpu.Reg(0), 0x1040)
}

func TestBranchExchange(t *testing.T) {
	h := newHarness(t)

	// BX r0
	h.bus.arm(0, 0xe12fff10)
	h.bus.thumb(0x100,
		0x2005, // MOV r0, #5
		0x1cc1, // ADD r1, r0, #3
		0x008a, // LSL r2, r1, #2
	)
	h.cpu.Registers().Set(0, 0x101)

	h.run(t, 1)
	test.ExpectSuccess(t, h.cpu.Status().Thumb)
	test.ExpectEquality(t, h.cpu.Reg(registers.PC), 0x100)

	h.run(t, 3)
	test.ExpectEquality(t, h.cpu.Reg(0), 5)
	test.ExpectEquality(t, h.cpu.Reg(1), 8)
	test.ExpectEquality(t, h.cpu.Reg(2), 32)
	test.ExpectEquality(t, h.tracer.entries[3].PC, 0x104)
	test.ExpectSuccess(t, h.tracer.entries[3].Thumb)
}

func thumbHarness(t *testing.T) *harness {
	h := newHarness(t)
	h.cpu.Registers().CPSR.Thumb = true
	h.cpu.SetPC(0)
	return h
}

func TestThumbLongBranchWithLink(t *testing.T) {
	h := thumbHarness(t)
	h.bus.thumb(0, 0xf000, 0xf87e)
	h.bus.thumb(0x100, 0x2001)

	h.run(t, 2)
	test.ExpectEquality(t, h.cpu.Reg(registers.LR), 5)
	test.ExpectEquality(t, h.cpu.Reg(registers.PC), 0x100)

	h.run(t, 1)
	test.ExpectEquality(t, h.tracer.entries[2].PC, 0x100)
	test.ExpectEquality(t, h.cpu.Reg(0), 1)
}

func TestThumbConditionalBranch(t *testing.T) {
	h := thumbHarness(t)
	h.bus.thumb(0,
		0x2000, // MOV r0, #0
		0xd001, // BEQ +2
		0x2101, // MOV r1, #1
		0x2201, // MOV r2, #1
		0x2301, // MOV r3, #1
	)

	h.run(t, 3)
	test.ExpectEquality(t, h.tracer.entries[2].PC, 0x08)
	test.ExpectEquality(t, h.cpu.Reg(1), 0)
	test.ExpectEquality(t, h.cpu.Reg(3), 1)
}

func TestThumbPushPop(t *testing.T) {
	h := thumbHarness(t)
	regs := h.cpu.Registers()
	regs.Set(registers.SP, 0x2000)
	regs.Set(0, 0xaa)
	regs.Set(1, 0xbb)
	regs.Set(registers.LR, 0x301)

	h.bus.thumb(0,
		0xb503, // PUSH {r0, r1, lr}
		0xbc0c, // POP {r2, r3}
		0xbd00, // POP {pc}
	)

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Reg(registers.SP), 0x1ff4)
	test.ExpectEquality(t, h.bus.word(0x1ff4), 0xaa)
	test.ExpectEquality(t, h.bus.word(0x1ffc), 0x301)

	h.run(t, 2)
	test.ExpectEquality(t, h.cpu.Reg(2), 0xaa)
	test.ExpectEquality(t, h.cpu.Reg(3), 0xbb)
	test.ExpectEquality(t, h.cpu.Reg(registers.SP), 0x2000)
	test.ExpectEquality(t, h.cpu.Reg(registers.PC), 0x300)
	test.ExpectSuccess(t, h.cpu.Status().Thumb)
}

func TestThumbALU(t *testing.T) {
	h := thumbHarness(t)
	regs := h.cpu.Registers()
	regs.Set(0, 3)
	regs.Set(1, 5)

	h.bus.thumb(0,
		0x4341, // MUL r1, r0
		0x4242, // NEG r2, r0
		0x4281, // CMP r1, r0
	)

	h.run(t, 3)
	test.ExpectEquality(t, h.cpu.Reg(1), 15)
	test.ExpectEquality(t, h.cpu.Reg(2), 0xfffffffd)
	st := h.cpu.Status()
	test.ExpectSuccess(t, st.Carry)
	test.ExpectFailure(t, st.Zero)
	test.ExpectFailure(t, st.Negative)
}

func TestThumbUndefined(t *testing.T) {
	h := thumbHarness(t)
	h.cpu.Registers().CPSR.Mode = registers.System
	h.bus.thumb(0, 0xde00)

	h.run(t, 1)
	regs := h.cpu.Registers()
	test.ExpectEquality(t, regs.CPSR.Mode, registers.Undefined)
	test.ExpectFailure(t, regs.CPSR.Thumb)
	test.ExpectEquality(t, regs.Get(registers.PC), cpu.VectorUndefined)
	test.ExpectEquality(t, regs.Get(registers.LR), 2)

	spsr, ok := regs.SPSR()
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, spsr.Thumb)
	test.ExpectEquality(t, spsr.Mode, registers.System)
}

func TestSoftwareInterrupt(t *testing.T) {
	h := newHarness(t)
	h.cpu.Registers().CPSR.Mode = registers.System
	h.bus.arm(0, 0xef000000)

	h.run(t, 1)
	regs := h.cpu.Registers()
	test.ExpectEquality(t, regs.CPSR.Mode, registers.Supervisor)
	test.ExpectSuccess(t, regs.CPSR.IRQDisable)
	test.ExpectEquality(t, regs.Get(registers.PC), cpu.VectorSWI)
	test.ExpectEquality(t, regs.Get(registers.LR), 4)
}

func TestCoprocessorIsUndefined(t *testing.T) {
	h := newHarness(t)
	h.bus.arm(0, 0xee000000)

	h.run(t, 1)
	test.ExpectEquality(t, h.cpu.Status().Mode, registers.Undefined)
	test.ExpectEquality(t, h.cpu.Reg(registers.PC), cpu.VectorUndefined)
}

func TestInterruptEntry(t *testing.T) {
	h := newHarness(t)
	h.bus.arm(0, nop, nop, nop, nop, nop)

	regs := h.cpu.Registers()
	regs.CPSR.Mode = registers.System
	regs.CPSR.IRQDisable = false

	h.irq.SetIE(1 << interrupts.VBlank)
	h.irq.SetIME(1)

	h.step(t, 3)
	test.ExpectEquality(t, len(h.tracer.entries), 1)

	h.irq.Request(interrupts.VBlank)
	h.sch.Tick(interrupts.DispatchLatency)
	test.ExpectSuccess(t, h.irq.Pending(false))

	h.step(t, 1)
	test.ExpectEquality(t, len(h.tracer.entries), 1)
	test.ExpectEquality(t, regs.CPSR.Mode, registers.IRQ)
	test.ExpectSuccess(t, regs.CPSR.IRQDisable)
	test.ExpectEquality(t, regs.Get(registers.PC), cpu.VectorIRQ)

	// the interrupted instruction is at 0x04. the handler returns with
	// SUBS pc, lr, #4
	test.ExpectEquality(t, regs.Get(registers.LR), 0x08)

	spsr, _ := regs.SPSR()
	test.ExpectEquality(t, spsr.Mode, registers.System)
	test.ExpectFailure(t, spsr.IRQDisable)
}

func TestInterruptEntryThumb(t *testing.T) {
	h := thumbHarness(t)
	h.bus.thumb(0, 0x46c0, 0x46c0, 0x46c0, 0x46c0)

	regs := h.cpu.Registers()
	regs.CPSR.IRQDisable = false
	h.irq.SetIE(1 << interrupts.Timer0)
	h.irq.SetIME(1)

	h.step(t, 3)
	h.irq.Request(interrupts.Timer0)
	h.sch.Tick(interrupts.DispatchLatency)

	h.step(t, 1)
	test.ExpectEquality(t, regs.CPSR.Mode, registers.IRQ)
	test.ExpectFailure(t, regs.CPSR.Thumb)
	test.ExpectEquality(t, regs.Get(registers.LR), 0x06)
}

func TestInterruptNotTakenWhenDisabled(t *testing.T) {
	h := newHarness(t)
	h.bus.arm(0, nop, nop, nop, nop, nop)

	h.irq.SetIE(1 << interrupts.VBlank)
	h.irq.SetIME(1)
	h.irq.Request(interrupts.VBlank)
	h.sch.Tick(interrupts.DispatchLatency)

	// reset state has IRQs disabled in the CPSR
	h.run(t, 3)
	test.ExpectEquality(t, h.cpu.Status().Mode, registers.Supervisor)
}

func TestHalt(t *testing.T) {
	h := newHarness(t)
	h.bus.arm(0, nop, nop, nop, nop)

	h.irq.SetIE(1 << interrupts.VBlank)
	h.sch.AddEvent(scheduler.Video, func() {
		h.irq.Request(interrupts.VBlank)
	}, 1000)

	h.step(t, 2)
	h.bus.halted = true

	// the step does not return until the interrupt is visible, even though
	// the master enable is clear
	h.step(t, 1)
	test.ExpectFailure(t, h.bus.halted)
	test.ExpectEquality(t, h.sch.Now(), 1000+interrupts.DispatchLatency)
}

func TestHaltDeadlock(t *testing.T) {
	h := newHarness(t)
	h.bus.arm(0, nop)
	h.bus.halted = true

	err := h.cpu.Step()
	test.ExpectSuccess(t, curated.Is(err, cpu.HaltDeadlock))
}
