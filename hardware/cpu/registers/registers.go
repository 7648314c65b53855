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

// Package registers implements the banked register file of the ARM7TDMI.
//
// There are sixteen visible general purpose registers but which physical
// register is visible depends on the current processor mode. R0 to R7 and
// R15 are never banked. R8 to R12 have a private copy in FIQ mode only. R13
// and R14 have a private copy in every privileged mode except System. Every
// mode except User and System also has a saved program status register.
//
// The File type stores the banks as parallel arrays indexed by bank. All
// reads and writes go through the Get() and Set() functions, which consult
// the current mode. Changing mode is therefore nothing more than changing the
// Mode field of the CPSR; no copying of register values takes place.
package registers

import (
	"fmt"
	"strings"
)

// Names of the registers with a special purpose.
const (
	SP = 13
	LR = 14
	PC = 15
)

// File is the complete register file, including the CPSR and every SPSR.
type File struct {
	CPSR Status

	// user bank. R0 to R15 as seen in User and System mode
	user [16]uint32

	// private copies of R8 to R14 for each bank. only the FIQ bank uses the
	// R8 to R12 entries. the bankUser entry is unused
	banked [numBanks][7]uint32

	// the bankUser entry is unused
	spsr [numBanks]Status
}

// Reset puts the register file into the reset state: every register zero and
// the CPU in Supervisor mode with interrupts disabled.
func (f *File) Reset() {
	*f = File{}
	f.CPSR.Mode = Supervisor
	f.CPSR.IRQDisable = true
	f.CPSR.FIQDisable = true
}

func (f *File) String() string {
	s := strings.Builder{}
	for i := 0; i < 16; i++ {
		s.WriteString(fmt.Sprintf("R%-2d=%08x", i, f.Get(i)))
		if i%4 == 3 {
			s.WriteRune('\n')
		} else {
			s.WriteRune(' ')
		}
	}
	s.WriteString(f.CPSR.String())
	return s.String()
}

// location returns a pointer to the physical register for reg when the
// processor is in the specified bank.
func (f *File) location(reg int, b bank) *uint32 {
	if reg < 8 || reg == PC || b == bankUser || b == bankInvalid {
		return &f.user[reg]
	}
	if reg < SP && b != bankFIQ {
		return &f.user[reg]
	}
	return &f.banked[b][reg-8]
}

// Get returns the value of register reg as seen by the current mode.
func (f *File) Get(reg int) uint32 {
	return *f.location(reg, f.CPSR.Mode.bank())
}

// Set writes the value of register reg as seen by the current mode.
func (f *File) Set(reg int, v uint32) {
	*f.location(reg, f.CPSR.Mode.bank()) = v
}

// GetUser returns the value of register reg as seen by User mode, regardless
// of the current mode.
func (f *File) GetUser(reg int) uint32 {
	return f.user[reg]
}

// SetUser writes the value of register reg as seen by User mode, regardless
// of the current mode.
func (f *File) SetUser(reg int, v uint32) {
	f.user[reg] = v
}

// GetMode returns the value of register reg as seen by the specified mode.
func (f *File) GetMode(mode Mode, reg int) uint32 {
	return *f.location(reg, mode.bank())
}

// SetMode writes the value of register reg as seen by the specified mode.
func (f *File) SetMode(mode Mode, reg int, v uint32) {
	*f.location(reg, mode.bank()) = v
}

// SPSR returns the saved program status register of the current mode. The
// second return value is false if the current mode has no SPSR, in which case
// the CPSR is returned.
func (f *File) SPSR() (Status, bool) {
	b := f.CPSR.Mode.bank()
	if b == bankUser || b == bankInvalid {
		return f.CPSR, false
	}
	return f.spsr[b], true
}

// SetSPSR writes the saved program status register of the current mode.
// Returns false if the current mode has no SPSR, in which case the write is
// ignored.
func (f *File) SetSPSR(sr Status) bool {
	b := f.CPSR.Mode.bank()
	if b == bankUser || b == bankInvalid {
		return false
	}
	f.spsr[b] = sr
	return true
}
