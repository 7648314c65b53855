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

// Offsets of I/O registers handled by memory, relative to the origin of the
// I/O area.
const (
	regDISPSTAT  = 0x004
	regVCOUNT    = 0x006
	regFIFOA     = 0x0a0
	regFIFOB     = 0x0a4
	regTimers    = 0x100
	regTimersTop = 0x10f
	regIE        = 0x200
	regIF        = 0x202
	regWAITCNT   = 0x204
	regIME       = 0x208
	regPOSTFLG   = 0x300
	regHALTCNT   = 0x301
)

// readIO16 reads the I/O register at the halfword aligned offset. Registers
// that are not owned by a peripheral read back whatever was last written.
func (mem *Memory) readIO16(offset uint32) uint16 {
	if offset >= memorymap.SizeIO {
		return 0
	}

	switch {
	case offset == regDISPSTAT || offset == regVCOUNT:
		if mem.display != nil {
			return mem.display.ReadRegister(offset)
		}
	case offset >= regTimers && offset <= regTimersTop:
		if mem.timers != nil {
			return mem.timers.ReadRegister(offset)
		}
	case offset == regIE:
		if mem.irq != nil {
			return mem.irq.IE()
		}
	case offset == regIF:
		if mem.irq != nil {
			return mem.irq.IF()
		}
	case offset == regWAITCNT:
		return mem.waitcnt
	case offset == regIME:
		if mem.irq != nil {
			return mem.irq.IME()
		}
	case offset == regPOSTFLG:
		// HALTCNT is write only
		return uint16(mem.io[regPOSTFLG])
	}

	return binary.LittleEndian.Uint16(mem.io[offset:])
}

// writeIO16 writes the I/O register at the halfword aligned offset.
func (mem *Memory) writeIO16(offset uint32, data uint16) {
	if offset >= memorymap.SizeIO {
		return
	}

	switch {
	case offset == regDISPSTAT:
		if mem.display != nil {
			mem.display.WriteRegister(offset, data)
			return
		}
	case offset == regVCOUNT:
		// read only
		return
	case offset >= regFIFOA && offset < regFIFOB+4:
		mem.latchSample(offset, uint8(data))
	case offset >= regTimers && offset <= regTimersTop:
		if mem.timers != nil {
			mem.timers.WriteRegister(offset, data)
			return
		}
	case offset == regIE:
		if mem.irq != nil {
			mem.irq.SetIE(data)
			return
		}
	case offset == regIF:
		// write one to clear. there is no backing store
		if mem.irq != nil {
			mem.irq.AcknowledgeIF(data)
		}
		return
	case offset == regWAITCNT:
		mem.setWaitcnt(data)
		return
	case offset == regIME:
		if mem.irq != nil {
			mem.irq.SetIME(data)
			return
		}
	case offset == regPOSTFLG:
		mem.io[regPOSTFLG] = uint8(data)
		mem.halt(uint8(data >> 8))
		return
	}

	binary.LittleEndian.PutUint16(mem.io[offset:], data)
}

// writeIO8 writes a single byte of an I/O register. Most registers are
// updated with a read-modify-write of the halfword.
func (mem *Memory) writeIO8(offset uint32, data uint8) {
	switch {
	case offset == regHALTCNT:
		mem.halt(data)
		return
	case offset == regIF || offset == regIF+1:
		// a read-modify-write would acknowledge every pending interrupt
		if mem.irq != nil {
			mem.irq.AcknowledgeIF(uint16(data) << ((offset & 0x01) * 8))
		}
		return
	case offset == regPOSTFLG:
		mem.io[regPOSTFLG] = data
		return
	case offset >= regFIFOA && offset < regFIFOB+4:
		mem.latchSample(offset, data)
		mem.io[offset] = data
		return
	}

	aligned := offset &^ 0x01
	v := mem.readIO16(aligned)
	if offset&0x01 == 0x01 {
		v = v&0x00ff | uint16(data)<<8
	} else {
		v = v&0xff00 | uint16(data)
	}
	mem.writeIO16(aligned, v)
}

func (mem *Memory) latchSample(offset uint32, data uint8) {
	if offset < regFIFOB {
		mem.fifoA = int8(data)
	} else {
		mem.fifoB = int8(data)
	}
}

// halt is the effect of writing to HALTCNT. Bit 7 selects stop mode rather
// than halt mode. Both are treated as halt.
func (mem *Memory) halt(data uint8) {
	if data&0x80 == 0x80 {
		mem.env.Logs("memory", "stop mode requested. treating as halt")
	}
	mem.halted = true
}
