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

// Package memorymap describes the address space of the console. It says
// nothing about what is stored in memory, only where the different areas are
// and how the mirrors of each area map onto the primary range.
//
// The MapAddress() function should be used to normalise an address before
// indexing the backing array of an area. The returned address is an offset
// from the origin of the area.
package memorymap

import "fmt"

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case BIOS:
		return "BIOS"
	case EWRAM:
		return "EWRAM"
	case IWRAM:
		return "IWRAM"
	case IO:
		return "IO"
	case Palette:
		return "Palette"
	case VRAM:
		return "VRAM"
	case OAM:
		return "OAM"
	case ROM0:
		return "ROM0"
	case ROM1:
		return "ROM1"
	case ROM2:
		return "ROM2"
	case SRAM:
		return "SRAM"
	}

	return "undefined"
}

// The different memory areas in the console.
const (
	Undefined Area = iota
	BIOS
	EWRAM
	IWRAM
	IO
	Palette
	VRAM
	OAM
	ROM0
	ROM1
	ROM2
	SRAM
)

// The origin and size of each area of memory. The top eight bits of an
// address select the area.
const (
	OriginBIOS    = uint32(0x00000000)
	SizeBIOS      = uint32(0x00004000)
	OriginEWRAM   = uint32(0x02000000)
	SizeEWRAM     = uint32(0x00040000)
	OriginIWRAM   = uint32(0x03000000)
	SizeIWRAM     = uint32(0x00008000)
	OriginIO      = uint32(0x04000000)
	SizeIO        = uint32(0x00000400)
	OriginPalette = uint32(0x05000000)
	SizePalette   = uint32(0x00000400)
	OriginVRAM    = uint32(0x06000000)
	SizeVRAM      = uint32(0x00018000)
	OriginOAM     = uint32(0x07000000)
	SizeOAM       = uint32(0x00000400)
	OriginROM0    = uint32(0x08000000)
	OriginROM1    = uint32(0x0a000000)
	OriginROM2    = uint32(0x0c000000)
	SizeROM       = uint32(0x02000000)
	OriginSRAM    = uint32(0x0e000000)
	SizeSRAM      = uint32(0x00010000)
)

// Memtop is the top most address that has a defined area.
const Memtop = uint32(0x0fffffff)

// MapAddress translates the address argument from mirror space to primary
// space and returns it as an offset into the area.
func MapAddress(address uint32) (uint32, Area) {
	switch address >> 24 {
	case 0x00:
		if address < SizeBIOS {
			return address, BIOS
		}
	case 0x02:
		return address & (SizeEWRAM - 1), EWRAM
	case 0x03:
		return address & (SizeIWRAM - 1), IWRAM
	case 0x04:
		if address&0x00ffffff < SizeIO {
			return address & (SizeIO - 1), IO
		}
	case 0x05:
		return address & (SizePalette - 1), Palette
	case 0x06:
		// VRAM is 96k mirrored in 128k blocks. the upper 32k of each block
		// mirrors the 32k before it
		a := address & 0x1ffff
		if a >= SizeVRAM {
			a -= 0x8000
		}
		return a, VRAM
	case 0x07:
		return address & (SizeOAM - 1), OAM
	case 0x08, 0x09:
		return address & (SizeROM - 1), ROM0
	case 0x0a, 0x0b:
		return address & (SizeROM - 1), ROM1
	case 0x0c, 0x0d:
		return address & (SizeROM - 1), ROM2
	case 0x0e, 0x0f:
		return address & (SizeSRAM - 1), SRAM
	}

	return address, Undefined
}

// Origin returns the origin address of the primary range of an area.
func Origin(area Area) (uint32, error) {
	switch area {
	case BIOS:
		return OriginBIOS, nil
	case EWRAM:
		return OriginEWRAM, nil
	case IWRAM:
		return OriginIWRAM, nil
	case IO:
		return OriginIO, nil
	case Palette:
		return OriginPalette, nil
	case VRAM:
		return OriginVRAM, nil
	case OAM:
		return OriginOAM, nil
	case ROM0:
		return OriginROM0, nil
	case ROM1:
		return OriginROM1, nil
	case ROM2:
		return OriginROM2, nil
	case SRAM:
		return OriginSRAM, nil
	}
	return 0, fmt.Errorf("memorymap: no origin for %s area", area)
}
