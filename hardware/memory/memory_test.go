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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/test"
)

type fixture struct {
	env *environment.Environment
	sch *scheduler.Scheduler
	irq *interrupts.Controller
	mem *memory.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)

	f := &fixture{env: env}
	f.sch = scheduler.NewScheduler()
	f.irq = interrupts.NewController(f.sch)
	f.mem, err = memory.NewMemory(env, f.sch, nil)
	test.DemandSuccess(t, err)
	f.mem.Plumb(f.irq, nil, nil)

	return f
}

// cycles returns the number of cycles taken by fn.
func (f *fixture) cycles(fn func()) uint64 {
	before := f.sch.Now()
	fn()
	return f.sch.Now() - before
}

func TestRAM(t *testing.T) {
	f := newFixture(t)

	f.mem.Write32(0x02000010, 0x11223344)
	test.ExpectEquality(t, f.mem.Read32(0x02000010), 0x11223344)
	test.ExpectEquality(t, f.mem.Read16(0x02000012), 0x1122)
	test.ExpectEquality(t, f.mem.Read8(0x02000011), 0x33)

	// EWRAM is mirrored every 256k
	test.ExpectEquality(t, f.mem.Read32(0x02040010), 0x11223344)

	// IWRAM is mirrored every 32k
	f.mem.Write16(0x03007ffc, 0xbeef)
	test.ExpectEquality(t, f.mem.Read16(0x03fffffc), 0xbeef)

	// byte writes to VRAM fill the halfword
	f.mem.Write8(0x06000001, 0xab)
	test.ExpectEquality(t, f.mem.Read16(0x06000000), 0xabab)
}

func TestWaitStates(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.mem.AttachROM(make([]byte, 0x100)))

	test.ExpectEquality(t, f.cycles(func() { f.mem.Read32(0x03000000) }), 1)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read16(0x02000000) }), 3)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read32(0x02000000) }), 6)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read32(0x05000000) }), 2)

	// default WAITCNT. non-sequential then sequential
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read16(0x08000000) }), 5)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read16(0x08000002) }), 3)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read32(0x08000004) }), 6)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read32(0x08000020) }), 8)

	// fastest WS0 settings
	f.mem.Write16(0x04000204, 0x0018)
	test.ExpectEquality(t, f.mem.Read16(0x04000204), 0x0018)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read16(0x08000040) }), 3)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read16(0x08000042) }), 2)

	// the prefetch enable bit reads back but does not change the timing
	f.mem.Write16(0x04000204, 0x4018)
	test.ExpectEquality(t, f.mem.Read16(0x04000204), 0x4018)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read16(0x08000080) }), 3)
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read16(0x08000082) }), 2)

	// SRAM
	test.ExpectEquality(t, f.cycles(func() { f.mem.Read8(0x0e000000) }), 5)
}

func TestROM(t *testing.T) {
	f := newFixture(t)
	rom := []byte{0x01, 0x02, 0x03, 0x04}
	test.DemandSuccess(t, f.mem.AttachROM(rom))

	test.ExpectEquality(t, f.mem.Read32(0x08000000), 0x04030201)

	// the same ROM is visible at all three windows
	test.ExpectEquality(t, f.mem.Read32(0x0a000000), 0x04030201)
	test.ExpectEquality(t, f.mem.Read32(0x0c000000), 0x04030201)

	// ROM can not be written to
	f.mem.Write32(0x08000000, 0)
	test.ExpectEquality(t, f.mem.Read32(0x08000000), 0x04030201)

	// beyond the end of the ROM the bus holds the address
	test.ExpectEquality(t, f.mem.Read16(0x08000100), 0x0080)
}

func TestInterruptRegisters(t *testing.T) {
	f := newFixture(t)

	f.mem.Write16(0x04000200, 0x0001)
	test.ExpectEquality(t, f.irq.IE(), 0x0001)
	f.mem.Write32(0x04000208, 1)
	test.ExpectEquality(t, f.irq.IME(), 0x0001)

	f.irq.Request(interrupts.VBlank)
	f.irq.Request(interrupts.HBlank)
	f.sch.Tick(interrupts.DispatchLatency)
	test.ExpectEquality(t, f.mem.Read16(0x04000202), 0x0003)

	// byte write to IF only acknowledges the bits that are set
	f.mem.Write8(0x04000202, 0x01)
	test.ExpectEquality(t, f.mem.Read16(0x04000202), 0x0002)

	// word write to IE also acknowledges IF
	f.mem.Write32(0x04000200, 0x00020001)
	test.ExpectEquality(t, f.mem.Read16(0x04000202), 0x0000)
	test.ExpectEquality(t, f.mem.Read16(0x04000200), 0x0001)
}

func TestHalt(t *testing.T) {
	f := newFixture(t)
	test.ExpectFailure(t, f.mem.Halted())

	f.mem.Write8(0x04000301, 0x00)
	test.ExpectSuccess(t, f.mem.Halted())

	// halt ends when an enabled interrupt is pending, regardless of IME
	f.irq.SetIE(1 << interrupts.Timer1)
	f.irq.Request(interrupts.Timer1)
	test.ExpectSuccess(t, f.mem.Halted())
	f.sch.Tick(interrupts.DispatchLatency)
	test.ExpectFailure(t, f.mem.Halted())

	// POSTFLG can be written without halting
	f.mem.Write8(0x04000300, 0x01)
	test.ExpectFailure(t, f.mem.Halted())
	test.ExpectEquality(t, f.mem.Read8(0x04000300), 0x01)
}

func TestDirectSoundFIFO(t *testing.T) {
	f := newFixture(t)

	// the first sample of a multi-sample write is latched
	f.mem.Write32(0x040000a0, 0x7f7f7ff0)
	f.mem.Write8(0x040000a4, 0x10)
	a, b := f.mem.Samples()
	test.ExpectEquality(t, a, -16)
	test.ExpectEquality(t, b, 16)

	// halfword writes to the upper half of each FIFO are latched too
	f.mem.Write16(0x040000a2, 0x0005)
	f.mem.Write16(0x040000a6, 0x00fe)
	a, b = f.mem.Samples()
	test.ExpectEquality(t, a, 5)
	test.ExpectEquality(t, b, -2)
}

func TestUnmapped(t *testing.T) {
	f := newFixture(t)

	test.ExpectEquality(t, f.mem.Read32(0x01000000), 0)
	test.ExpectEquality(t, f.mem.Read32(0x01000000), 0)
	test.ExpectEquality(t, f.env.Log.Len(), 1)

	// with the preference set, addresses are logged every time
	f.env.Prefs.LogUnmapped.Set(true)
	f.mem.Read8(0x01000004)
	f.mem.Read8(0x01000000)
	test.ExpectEquality(t, f.env.Log.Len(), 3)
}

func TestBootStub(t *testing.T) {
	f := newFixture(t)

	// IRQ vector branches to the handler
	v, err := f.mem.Peek(0x18)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x42)

	// first instruction of the handler saves the scratch registers
	test.ExpectEquality(t, f.mem.Read32(memory.StubIRQHandler), 0xe92d500f)

	// a supplied BIOS is used instead
	bios := []byte{0xaa, 0xbb}
	mem, err := memory.NewMemory(f.env, f.sch, bios)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, mem.Read16(0), 0xbbaa)

	_, err = memory.NewMemory(f.env, f.sch, make([]byte, 0x8000))
	test.ExpectFailure(t, err)
}

func TestPeekPoke(t *testing.T) {
	f := newFixture(t)

	before := f.sch.Now()
	test.ExpectSuccess(t, f.mem.Poke(0x03000000, 0x55))
	v, err := f.mem.Peek(0x03000000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x55)
	test.ExpectEquality(t, f.sch.Now(), before)

	_, err = f.mem.Peek(0x10000000)
	test.ExpectFailure(t, err)
}
