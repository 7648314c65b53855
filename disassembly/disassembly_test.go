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

package disassembly_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/disassembly"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestARM(t *testing.T) {
	const origin = 0x08000000

	tests := []struct {
		opcode   uint32
		expected string
	}{
		{0xe3a00001, "mov R0, #$01"},
		{0x13a00001, "movne R0, #$01"},
		{0xe0802001, "add R2, R0, R1"},
		{0xe1b0f00e, "movs PC, LR"},
		{0xe25ef004, "subs PC, LR, #$04"},
		{0xeafffffe, "b $08000000"},
		{0x0a000000, "beq $08000008"},
		{0xeb000006, "bl $08000020"},
		{0xe12fff1e, "bx LR"},
		{0xe92d500f, "stmdb SP!, {R0-R3, R12, LR}"},
		{0xe8bd500f, "ldmia SP!, {R0-R3, R12, LR}"},
		{0xe510f004, "ldr PC, [R0, #-$004]"},
		{0xe1c010b2, "strh R1, [R0, #$02]"},
		{0xe0010392, "mul R1, R2, R3"},
		{0x10010392, "mulne R1, R2, R3"},
		{0xe321f0d2, "msr cpsr_c, #$d2"},
		{0xef000000, "swi #$000000"},
		{0xe7f000f0, "undefined"},
	}

	for _, tt := range tests {
		e := disassembly.ARM(origin, tt.opcode)
		test.ExpectEquality(t, e.String(), tt.expected)
		test.ExpectFailure(t, e.Thumb)
	}
}

func TestThumb(t *testing.T) {
	const origin = 0x08000100

	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x2001, "mov R0, #$01"},
		{0x1840, "add R0, R0, R1"},
		{0xe7fe, "b $08000100"},
		{0xd0fe, "beq $08000100"},
		{0xb500, "push {LR}"},
		{0xbd00, "pop {PC}"},
		{0x4770, "bx LR"},
		{0x4801, "ldr R0, [PC, #$004] ; $08000108"},
		{0xb082, "add SP, #-$008"},
		{0xc803, "ldmia R0!, {R0, R1}"},
		{0xdf02, "swi #$02"},
		{0xde00, "undefined"},
	}

	for _, tt := range tests {
		e := disassembly.Thumb(origin, tt.opcode)
		test.ExpectEquality(t, e.String(), tt.expected)
		test.ExpectSuccess(t, e.Thumb)
	}
}

func TestLine(t *testing.T) {
	e := disassembly.Disassemble(0x08000000, 0xe3a00001, false)
	test.ExpectEquality(t, e.Line(), "08000000: e3a00001 mov R0, #$01")

	e = disassembly.Disassemble(0x08000100, 0x2001, true)
	test.ExpectEquality(t, e.Line(), "08000100: 2001     mov R0, #$01")
}
