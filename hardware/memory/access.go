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

import (
	"encoding/binary"

	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
)

// Fetch16 implements the cpu.Bus interface.
func (mem *Memory) Fetch16(address uint32) uint16 {
	address &^= 0x01
	mem.tick(address, 2)
	return mem.read16(address)
}

// Fetch32 implements the cpu.Bus interface.
func (mem *Memory) Fetch32(address uint32) uint32 {
	address &^= 0x03
	mem.tick(address, 4)
	return mem.read32(address)
}

// Read8 implements the cpu.Bus interface.
func (mem *Memory) Read8(address uint32) uint8 {
	mem.tick(address, 1)
	return mem.read8(address)
}

// Read16 implements the cpu.Bus interface.
func (mem *Memory) Read16(address uint32) uint16 {
	address &^= 0x01
	mem.tick(address, 2)
	return mem.read16(address)
}

// Read32 implements the cpu.Bus interface.
func (mem *Memory) Read32(address uint32) uint32 {
	address &^= 0x03
	mem.tick(address, 4)
	return mem.read32(address)
}

// Write8 implements the cpu.Bus interface.
func (mem *Memory) Write8(address uint32, data uint8) {
	mem.tick(address, 1)
	mem.write8(address, data)
}

// Write16 implements the cpu.Bus interface.
func (mem *Memory) Write16(address uint32, data uint16) {
	address &^= 0x01
	mem.tick(address, 2)
	mem.write16(address, data)
}

// Write32 implements the cpu.Bus interface.
func (mem *Memory) Write32(address uint32, data uint32) {
	address &^= 0x03
	mem.tick(address, 4)
	mem.write32(address, data)
}

// readROM8 returns a byte from the cartridge. Reading beyond the end of the
// ROM returns the low bits of the halfword address, which is what the
// cartridge bus holds in that case.
func (mem *Memory) readROM8(a uint32) uint8 {
	if int(a) < len(mem.rom) {
		return mem.rom[a]
	}
	return uint8((a >> 1) >> ((a & 0x01) * 8))
}

func (mem *Memory) readROM16(a uint32) uint16 {
	if int(a)+1 < len(mem.rom) {
		return binary.LittleEndian.Uint16(mem.rom[a:])
	}
	return uint16(a >> 1)
}

func (mem *Memory) read8(address uint32) uint8 {
	a, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Undefined:
		mem.unmapped(address, false)
		return 0
	case memorymap.IO:
		return uint8(mem.readIO16(a&^0x01) >> ((a & 0x01) * 8))
	case memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		return mem.readROM8(a)
	case memorymap.SRAM:
		return mem.sram[a]
	}
	return mem.backing(area)[a]
}

func (mem *Memory) read16(address uint32) uint16 {
	a, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Undefined:
		mem.unmapped(address, false)
		return 0
	case memorymap.IO:
		return mem.readIO16(a)
	case memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		return mem.readROM16(a)
	case memorymap.SRAM:
		// the 8bit bus repeats the byte on both lanes
		v := uint16(mem.sram[a])
		return v | v<<8
	}
	return binary.LittleEndian.Uint16(mem.backing(area)[a:])
}

func (mem *Memory) read32(address uint32) uint32 {
	a, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Undefined:
		mem.unmapped(address, false)
		return 0
	case memorymap.IO:
		return uint32(mem.readIO16(a)) | uint32(mem.readIO16(a+2))<<16
	case memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		return uint32(mem.readROM16(a)) | uint32(mem.readROM16(a+2))<<16
	case memorymap.SRAM:
		v := uint32(mem.sram[a])
		return v * 0x01010101
	}
	return binary.LittleEndian.Uint32(mem.backing(area)[a:])
}

func (mem *Memory) write8(address uint32, data uint8) {
	a, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Undefined:
		mem.unmapped(address, true)
	case memorymap.BIOS, memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		// read only
	case memorymap.IO:
		mem.writeIO8(a, data)
	case memorymap.SRAM:
		mem.sram[a] = data
	case memorymap.OAM:
		// byte writes to OAM are ignored
	case memorymap.Palette, memorymap.VRAM:
		// byte writes are written to both halves of the halfword
		b := mem.backing(area)
		a &^= 0x01
		b[a] = data
		b[a+1] = data
	default:
		mem.backing(area)[a] = data
	}
}

func (mem *Memory) write16(address uint32, data uint16) {
	a, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Undefined:
		mem.unmapped(address, true)
	case memorymap.BIOS, memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		// read only
	case memorymap.IO:
		mem.writeIO16(a, data)
	case memorymap.SRAM:
		mem.sram[a] = uint8(data >> ((address & 0x01) * 8))
	default:
		binary.LittleEndian.PutUint16(mem.backing(area)[a:], data)
	}
}

func (mem *Memory) write32(address uint32, data uint32) {
	a, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Undefined:
		mem.unmapped(address, true)
	case memorymap.BIOS, memorymap.ROM0, memorymap.ROM1, memorymap.ROM2:
		// read only
	case memorymap.IO:
		if a >= regFIFOA && a < regFIFOB+4 {
			// a word holds four samples. only the first is latched
			mem.latchSample(a, uint8(data))
			binary.LittleEndian.PutUint32(mem.io[a:], data)
			return
		}
		mem.writeIO16(a, uint16(data))
		mem.writeIO16(a+2, uint16(data>>16))
	case memorymap.SRAM:
		mem.sram[a] = uint8(data >> ((address & 0x03) * 8))
	default:
		binary.LittleEndian.PutUint32(mem.backing(area)[a:], data)
	}
}
