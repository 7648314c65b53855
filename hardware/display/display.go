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

// Package display implements the timing of the display. There is no
// rendering. The package maintains the DISPSTAT and VCOUNT registers and
// requests the HBlank, VBlank and VCount interrupts at the correct cycles.
//
// A scanline is 1232 cycles long. The first 960 cycles are the visible part
// of the line and the remainder is the horizontal blank. There are 228
// scanlines per frame, the last 68 of which are the vertical blank.
package display

import (
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// Scheduler defines the parts of the scheduler used by the display.
type Scheduler interface {
	Now() uint64
	EventTime() uint64
	AddEvent(e scheduler.Event, callback scheduler.Callback, timestamp uint64)
	RemoveEvent(e scheduler.Event)
}

// Interrupts defines the parts of the interrupt controller used by the
// display.
type Interrupts interface {
	Request(irq interrupts.Interrupt)
}

// Timing of the display in CPU cycles and scanlines.
const (
	CyclesHDraw      = 960
	CyclesHBlank     = 272
	CyclesPerLine    = CyclesHDraw + CyclesHBlank
	VisibleLines     = 160
	LinesPerFrame    = 228
	CyclesPerFrame   = CyclesPerLine * LinesPerFrame
	lastVBlankLine   = LinesPerFrame - 1
	dispstatOffset   = 0x004
	vcountOffset     = 0x006
	dispstatWritable = 0xfff8
)

// DISPSTAT bits
const (
	statVBlank      = 0x0001
	statHBlank      = 0x0002
	statVCount      = 0x0004
	statVBlankIRQ   = 0x0008
	statHBlankIRQ   = 0x0010
	statVCountIRQ   = 0x0020
	statVCountShift = 8
)

// Display is the display timing generator.
type Display struct {
	sch Scheduler
	irq Interrupts

	dispstat uint16
	vcount   uint16

	// the number of frames that have started their vertical blank
	frame int

	// called at the start of every vertical blank. may be nil
	onVBlank func()
}

// NewDisplay is the preferred method of initialisation for the Display type.
// The display is not started until Reset() is called.
func NewDisplay(sch Scheduler, irq Interrupts) *Display {
	return &Display{
		sch: sch,
		irq: irq,
	}
}

func (disp *Display) String() string {
	return fmt.Sprintf("frame=%d line=%d DISPSTAT=%04x", disp.frame, disp.vcount, disp.dispstat)
}

// Reset the display to the start of the first scanline and arm the Video
// event.
func (disp *Display) Reset() {
	disp.dispstat = 0
	disp.vcount = 0
	disp.frame = 0
	disp.compareVCount()
	disp.sch.AddEvent(scheduler.Video, disp.hblank, disp.sch.Now()+CyclesHDraw)
}

// OnVBlank sets the function that is called at the start of every vertical
// blank.
func (disp *Display) OnVBlank(f func()) {
	disp.onVBlank = f
}

// Frame returns the number of frames that have reached the vertical blank
// since the last reset.
func (disp *Display) Frame() int {
	return disp.frame
}

// Scanline returns the current scanline.
func (disp *Display) Scanline() int {
	return int(disp.vcount)
}

// hblank is the Video event callback at the end of the visible part of a
// scanline
func (disp *Display) hblank() {
	disp.dispstat |= statHBlank
	if disp.dispstat&statHBlankIRQ == statHBlankIRQ {
		disp.irq.Request(interrupts.HBlank)
	}
	disp.sch.AddEvent(scheduler.Video, disp.newLine, disp.sch.EventTime()+CyclesHBlank)
}

// newLine is the Video event callback at the end of the horizontal blank
func (disp *Display) newLine() {
	disp.dispstat &^= statHBlank

	disp.vcount++
	if disp.vcount >= LinesPerFrame {
		disp.vcount = 0
	}

	switch disp.vcount {
	case VisibleLines:
		disp.dispstat |= statVBlank
		disp.frame++
		if disp.dispstat&statVBlankIRQ == statVBlankIRQ {
			disp.irq.Request(interrupts.VBlank)
		}
		if disp.onVBlank != nil {
			disp.onVBlank()
		}
	case lastVBlankLine:
		// the flag is cleared on the last line of the vertical blank
		disp.dispstat &^= statVBlank
	}

	if disp.compareVCount() && disp.dispstat&statVCountIRQ == statVCountIRQ {
		disp.irq.Request(interrupts.VCount)
	}

	disp.sch.AddEvent(scheduler.Video, disp.hblank, disp.sch.EventTime()+CyclesHDraw)
}

// compareVCount updates the VCount flag and returns true if the current
// scanline matches the LYC setting.
func (disp *Display) compareVCount() bool {
	if disp.vcount == disp.dispstat>>statVCountShift {
		disp.dispstat |= statVCount
		return true
	}
	disp.dispstat &^= statVCount
	return false
}

// ReadRegister implements the memory.Registers interface.
func (disp *Display) ReadRegister(offset uint32) uint16 {
	switch offset {
	case dispstatOffset:
		return disp.dispstat
	case vcountOffset:
		return disp.vcount
	}
	return 0
}

// WriteRegister implements the memory.Registers interface. The status flags
// in DISPSTAT are read only, as is VCOUNT.
func (disp *Display) WriteRegister(offset uint32, data uint16) {
	if offset != dispstatOffset {
		return
	}
	disp.dispstat = disp.dispstat&^dispstatWritable | data&dispstatWritable
	disp.compareVCount()
}
