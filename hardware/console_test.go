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

package hardware_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/cpu/registers"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/test"
)

// assemble a ROM from a list of ARM opcodes
func assemble(opcodes ...uint32) []byte {
	rom := make([]byte, 0x100)
	for i, o := range opcodes {
		binary.LittleEndian.PutUint32(rom[i*4:], o)
	}
	return rom
}

// a ROM that loops at the entry point and has an interrupt handler at
// 0x08000010 that acknowledges VBlank and increments R6
var loopROM = assemble(
	0xeafffffe, // b .
	0xe1a00000, // nop
	0xe1a00000, // nop
	0xe1a00000, // nop
	0xe3a00404, // mov r0, #0x04000000
	0xe2800c02, // add r0, r0, #0x200
	0xe3a01001, // mov r1, #1
	0xe1c010b2, // strh r1, [r0, #2]
	0xe2866001, // add r6, r6, #1
	0xe12fff1e, // bx lr
)

func newConsole(t *testing.T, skipBIOS bool) *hardware.Console {
	t.Helper()

	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, env.Prefs.SkipBIOS.Set(skipBIOS))

	con, err := hardware.NewConsole(env, nil, loopROM)
	test.DemandSuccess(t, err)

	return con
}

func TestSkipBIOS(t *testing.T) {
	con := newConsole(t, true)
	test.ExpectEquality(t, con.CPU.Reg(registers.PC), 0x08000000)
	test.ExpectEquality(t, con.CPU.Status().Mode, registers.System)
}

func TestBootStub(t *testing.T) {
	con := newConsole(t, false)
	test.ExpectEquality(t, con.CPU.Reg(registers.PC), 0x00000000)
	test.ExpectEquality(t, con.CPU.Status().Mode, registers.Supervisor)

	for i := 0; i < 100 && con.CPU.ExecutingAddress() != 0x08000000; i++ {
		test.DemandSuccess(t, con.Step())
	}
	test.DemandEquality(t, con.CPU.ExecutingAddress(), 0x08000000)

	// stack pointers are the same as those left by the BIOS
	regs := con.CPU.Registers()
	test.ExpectEquality(t, con.CPU.Status().Mode, registers.System)
	test.ExpectEquality(t, regs.Get(registers.SP), 0x03007f00)
	test.ExpectEquality(t, regs.GetMode(registers.IRQ, registers.SP), 0x03007fa0)
	test.ExpectEquality(t, regs.GetMode(registers.Supervisor, registers.SP), 0x03007fe0)
	test.ExpectFailure(t, con.CPU.Status().IRQDisable)
}

func TestVBlankInterrupt(t *testing.T) {
	con := newConsole(t, true)

	// address of the user interrupt handler
	con.Mem.Write32(0x03007ffc, 0x08000010)
	con.Mem.Write16(0x04000004, 0x0008)
	con.Interrupts.SetIE(1 << interrupts.VBlank)
	con.Interrupts.SetIME(1)

	test.DemandSuccess(t, con.RunFrame())
	test.ExpectEquality(t, con.Display.Frame(), 1)
	test.ExpectEquality(t, con.CPU.Reg(6), 0)

	for i := 0; i < 1000 && con.CPU.Reg(6) == 0; i++ {
		test.DemandSuccess(t, con.Step())
	}
	test.ExpectEquality(t, con.CPU.Reg(6), 1)

	// the handler returns to the loop in System mode with the IRQ stack
	// balanced
	for i := 0; i < 1000 && con.CPU.ExecutingAddress() != 0x08000000; i++ {
		test.DemandSuccess(t, con.Step())
	}
	test.ExpectEquality(t, con.CPU.ExecutingAddress(), 0x08000000)
	test.ExpectEquality(t, con.CPU.Status().Mode, registers.System)
	test.ExpectEquality(t, con.CPU.Registers().GetMode(registers.IRQ, registers.SP), 0x03007fa0)
	test.ExpectEquality(t, con.Interrupts.IF(), 0)
}

type mixer struct {
	count int
	err   error
}

func (m *mixer) SetAudio(a, b int8) error {
	m.count++
	return m.err
}

func TestAudio(t *testing.T) {
	con := newConsole(t, true)

	m := &mixer{}
	con.AttachAudio(m)
	test.DemandSuccess(t, con.RunFrame())

	// one sample every 512 cycles at the default rate
	expected := int(con.Scheduler.Now() / 512)
	test.ExpectApproximate(t, m.count, expected, 0.01)

	// mixer errors stop the emulation
	m.err = curated.Errorf("test mixer error")
	test.ExpectFailure(t, con.RunFrame())

	// detaching the mixer stops the samples
	con.AttachAudio(nil)
	n := m.count
	m.err = nil
	test.DemandSuccess(t, con.RunFrame())
	test.ExpectEquality(t, m.count, n)
}

func TestReset(t *testing.T) {
	con := newConsole(t, true)
	test.DemandSuccess(t, con.RunFrame())
	con.Reset()
	test.ExpectEquality(t, con.Display.Frame(), 0)
	test.ExpectEquality(t, con.Scheduler.Now(), 0)
	test.ExpectEquality(t, con.CPU.Reg(registers.PC), 0x08000000)
}
