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

package memory

import "encoding/binary"

// Address of the IRQ handler in the boot stub. The same address as the IRQ
// handler in the real BIOS.
const StubIRQHandler = 0x128

// UserIRQVector is the address the stub IRQ handler reads the address of the
// cartridge's interrupt handler from. It is mirrored at 0x03007ffc.
const UserIRQVector = 0x03fffffc

// the boot stub is installed when no BIOS image is supplied. it is enough to
// reach the cartridge entry point from the reset vector and to service
// interrupts the way cartridges expect
var stub = []struct {
	address uint32
	opcodes []uint32
}{
	{
		// exception vectors
		address: 0x00,
		opcodes: []uint32{
			0xea00002e, // b 0xc0             ; reset
			0xe1b0f00e, // movs pc, lr        ; undefined instruction
			0xe1b0f00e, // movs pc, lr        ; software interrupt
			0xe25ef004, // subs pc, lr, #4    ; prefetch abort
			0xe25ef008, // subs pc, lr, #8    ; data abort
			0xe1a00000, // nop                ; reserved
			0xea000042, // b 0x128            ; IRQ
			0xe25ef004, // subs pc, lr, #4    ; FIQ
		},
	},
	{
		// reset. set up the stack pointers the same as the BIOS and jump to
		// the cartridge entry point in System mode
		address: 0xc0,
		opcodes: []uint32{
			0xe3a00403, // mov r0, #0x03000000
			0xe321f0d2, // msr cpsr_c, #0xd2  ; IRQ mode
			0xe280dc7f, // add sp, r0, #0x7f00
			0xe28dd0a0, // add sp, sp, #0xa0
			0xe321f0d3, // msr cpsr_c, #0xd3  ; Supervisor mode
			0xe280dc7f, // add sp, r0, #0x7f00
			0xe28dd0e0, // add sp, sp, #0xe0
			0xe321f01f, // msr cpsr_c, #0x1f  ; System mode
			0xe280dc7f, // add sp, r0, #0x7f00
			0xe3a0f408, // mov pc, #0x08000000
		},
	},
	{
		// IRQ handler. calls the routine at the address in UserIRQVector
		address: StubIRQHandler,
		opcodes: []uint32{
			0xe92d500f, // stmfd sp!, {r0-r3, r12, lr}
			0xe3a00404, // mov r0, #0x04000000
			0xe28fe000, // add lr, pc, #0
			0xe510f004, // ldr pc, [r0, #-4]
			0xe8bd500f, // ldmfd sp!, {r0-r3, r12, lr}
			0xe25ef004, // subs pc, lr, #4
		},
	},
}

func installStub(bios []byte) {
	for _, s := range stub {
		for i, o := range s.opcodes {
			binary.LittleEndian.PutUint32(bios[s.address+uint32(i*4):], o)
		}
	}
}
