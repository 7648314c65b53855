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

// Package memory implements the bus between the CPU and the rest of the
// console. It owns the storage for every area of memory and routes accesses
// to the I/O area to the peripherals that have been plumbed in.
//
// Every access made through the CPU facing functions (Fetch16(), Read32(),
// etc.) advances the clock by the number of cycles the access takes. The
// Peek() and Poke() functions are for the debugger and do not.
//
// The BIOS area is filled with a small boot stub if no BIOS image is
// supplied. See bios.go for details.
package memory

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/memory/bus"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
)

var (
	_ bus.DebuggerBus = (*Memory)(nil)
	_ bus.AudioBus    = (*Memory)(nil)
)

// Clock is the part of the scheduler used by memory.
type Clock interface {
	Tick(cycles uint64)
}

// Interrupts is the interrupt controller as seen by memory. IE, IF and IME
// are memory mapped.
type Interrupts interface {
	IE() uint16
	SetIE(v uint16)
	IF() uint16
	AcknowledgeIF(v uint16)
	IME() uint16
	SetIME(v uint16)
	Pending(bypass bool) bool
}

// Registers is implemented by peripherals with memory mapped registers. The
// offset is from the origin of the I/O area and is always halfword aligned.
type Registers interface {
	ReadRegister(offset uint32) uint16
	WriteRegister(offset uint32, data uint16)
}

// Memory is the console's memory bus.
type Memory struct {
	env   *environment.Environment
	clock Clock

	irq     Interrupts
	timers  Registers
	display Registers

	bios    []byte
	ewram   []byte
	iwram   []byte
	io      []byte
	palette []byte
	vram    []byte
	oam     []byte
	rom     []byte
	sram    []byte

	waitcnt uint16
	ws      waitStates

	// address of the access that would be sequential to the previous access
	next uint32

	halted bool

	// most recent value written to each direct sound FIFO
	fifoA int8
	fifoB int8

	// addresses of unmapped accesses that have already been logged
	loggedUnmapped map[uint32]bool
}

// NewMemory is the preferred method of initialisation for the Memory type. If
// the bios argument is nil then the boot stub is used.
func NewMemory(env *environment.Environment, clock Clock, bios []byte) (*Memory, error) {
	mem := &Memory{
		env:            env,
		clock:          clock,
		bios:           make([]byte, memorymap.SizeBIOS),
		ewram:          make([]byte, memorymap.SizeEWRAM),
		iwram:          make([]byte, memorymap.SizeIWRAM),
		io:             make([]byte, memorymap.SizeIO),
		palette:        make([]byte, memorymap.SizePalette),
		vram:           make([]byte, memorymap.SizeVRAM),
		oam:            make([]byte, memorymap.SizeOAM),
		sram:           make([]byte, memorymap.SizeSRAM),
		loggedUnmapped: make(map[uint32]bool),
	}

	if bios == nil {
		installStub(mem.bios)
	} else {
		if len(bios) > len(mem.bios) {
			return nil, fmt.Errorf("memory: BIOS image is too large (%d bytes)", len(bios))
		}
		copy(mem.bios, bios)
	}

	mem.Reset()

	return mem, nil
}

// Plumb the peripherals into the I/O area. Any of the arguments may be nil.
func (mem *Memory) Plumb(irq Interrupts, timers Registers, display Registers) {
	mem.irq = irq
	mem.timers = timers
	mem.display = display
}

// AttachROM inserts the cartridge ROM. The data is not copied.
func (mem *Memory) AttachROM(rom []byte) error {
	if len(rom) > int(memorymap.SizeROM) {
		return fmt.Errorf("memory: ROM is too large (%d bytes)", len(rom))
	}
	mem.rom = rom
	return nil
}

// Reset volatile memory and the memory control registers. The contents of
// the BIOS, ROM and SRAM survive.
func (mem *Memory) Reset() {
	clear(mem.ewram)
	clear(mem.iwram)
	clear(mem.io)
	clear(mem.palette)
	clear(mem.vram)
	clear(mem.oam)
	mem.setWaitcnt(0)
	mem.next = 0
	mem.halted = false
	mem.fifoA = 0
	mem.fifoB = 0
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("WAITCNT=%04x ", mem.waitcnt))
	s.WriteString(mem.ws.String())
	if mem.halted {
		s.WriteString(" halted")
	}
	return s.String()
}

// Halted implements the cpu.Bus interface. The halt is cleared as soon as an
// interrupt is pending, whether or not the master enable is set.
func (mem *Memory) Halted() bool {
	if mem.halted && mem.irq != nil && mem.irq.Pending(true) {
		mem.halted = false
	}
	return mem.halted
}

// Samples implements the bus.AudioBus interface.
func (mem *Memory) Samples() (int8, int8) {
	return mem.fifoA, mem.fifoB
}

// backing returns the storage for an area. ROM and SRAM are not included
// because they have special handling.
func (mem *Memory) backing(area memorymap.Area) []byte {
	switch area {
	case memorymap.BIOS:
		return mem.bios
	case memorymap.EWRAM:
		return mem.ewram
	case memorymap.IWRAM:
		return mem.iwram
	case memorymap.Palette:
		return mem.palette
	case memorymap.VRAM:
		return mem.vram
	case memorymap.OAM:
		return mem.oam
	}
	return nil
}

func (mem *Memory) unmapped(address uint32, write bool) {
	verbose := mem.env.Prefs.LogUnmapped.Get().(bool)
	if !verbose && mem.loggedUnmapped[address] {
		return
	}
	mem.loggedUnmapped[address] = true

	if write {
		mem.env.Logf("memory", "write to unmapped address %08x", address)
	} else {
		mem.env.Logf("memory", "read from unmapped address %08x", address)
	}
}

// Peek returns the byte at address without advancing the clock or triggering
// any side effects of a read.
func (mem *Memory) Peek(address uint32) (uint8, error) {
	a, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Undefined:
		return 0, fmt.Errorf("memory: peek of unmapped address %08x", address)
	case memorymap.IO:
		return uint8(mem.readIO16(a&^0x01) >> ((a & 0x01) * 8)), nil
	case memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		return mem.readROM8(a), nil
	case memorymap.SRAM:
		return mem.sram[a], nil
	}
	return mem.backing(area)[a], nil
}

// Poke writes a byte without advancing the clock. Unlike a CPU write, a poke
// can change the contents of the BIOS and ROM.
func (mem *Memory) Poke(address uint32, value uint8) error {
	a, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Undefined:
		return fmt.Errorf("memory: poke of unmapped address %08x", address)
	case memorymap.IO:
		mem.io[a] = value
		return nil
	case memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		if int(a) >= len(mem.rom) {
			return fmt.Errorf("memory: poke beyond end of ROM %08x", address)
		}
		mem.rom[a] = value
		return nil
	case memorymap.SRAM:
		mem.sram[a] = value
		return nil
	}
	mem.backing(area)[a] = value
	return nil
}
