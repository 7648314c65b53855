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

package display_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/display"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/test"
)

const (
	dispstat = 0x004
	vcount   = 0x006
)

func newDisplay() (*scheduler.Scheduler, *interrupts.Controller, *display.Display) {
	sch := scheduler.NewScheduler()
	irq := interrupts.NewController(sch)
	disp := display.NewDisplay(sch, irq)
	disp.Reset()
	return sch, irq, disp
}

func TestScanline(t *testing.T) {
	sch, _, disp := newDisplay()

	sch.Tick(display.CyclesHDraw - 1)
	test.ExpectEquality(t, disp.ReadRegister(dispstat)&0x02, 0)
	sch.Tick(1)
	test.ExpectEquality(t, disp.ReadRegister(dispstat)&0x02, 0x02)
	test.ExpectEquality(t, disp.ReadRegister(vcount), 0)

	sch.Tick(display.CyclesHBlank)
	test.ExpectEquality(t, disp.ReadRegister(dispstat)&0x02, 0)
	test.ExpectEquality(t, disp.ReadRegister(vcount), 1)
}

func TestFrame(t *testing.T) {
	sch, _, disp := newDisplay()

	count := 0
	disp.OnVBlank(func() { count++ })

	sch.Tick(display.CyclesPerLine*display.VisibleLines - 1)
	test.ExpectEquality(t, disp.Frame(), 0)
	test.ExpectEquality(t, disp.Scanline(), display.VisibleLines-1)

	sch.Tick(1)
	test.ExpectEquality(t, disp.Frame(), 1)
	test.ExpectEquality(t, count, 1)
	test.ExpectEquality(t, disp.ReadRegister(dispstat)&0x01, 0x01)

	// the vblank flag is clear on the last line of the frame
	sch.Tick(display.CyclesPerLine * (display.LinesPerFrame - display.VisibleLines - 1))
	test.ExpectEquality(t, disp.Scanline(), display.LinesPerFrame-1)
	test.ExpectEquality(t, disp.ReadRegister(dispstat)&0x01, 0)

	sch.Tick(display.CyclesPerLine)
	test.ExpectEquality(t, disp.Scanline(), 0)
	test.ExpectEquality(t, disp.Frame(), 1)

	// no drift after many frames in one large tick
	sch.Tick(display.CyclesPerFrame * 10)
	test.ExpectEquality(t, disp.Scanline(), 0)
	test.ExpectEquality(t, disp.Frame(), 11)
	ts, ok := sch.Pending(scheduler.Video)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, ts, sch.Now()+display.CyclesHDraw)
}

func TestInterrupts(t *testing.T) {
	sch, irq, disp := newDisplay()
	irq.SetIE(0xffff)

	// enable all interrupts and match on line 2
	disp.WriteRegister(dispstat, 0x0238)
	test.ExpectEquality(t, disp.ReadRegister(dispstat), 0x0238)

	sch.Tick(display.CyclesHDraw + interrupts.DispatchLatency)
	test.ExpectEquality(t, irq.IF(), 1<<interrupts.HBlank)
	irq.AcknowledgeIF(0xffff)

	sch.Tick(display.CyclesPerLine - interrupts.DispatchLatency)
	sch.Tick(display.CyclesHBlank + interrupts.DispatchLatency)
	test.ExpectEquality(t, disp.ReadRegister(vcount), 2)
	test.ExpectEquality(t, disp.ReadRegister(dispstat)&0x04, 0x04)
	test.ExpectEquality(t, irq.IF()&(1<<interrupts.VCount), 1<<interrupts.VCount)
}

func TestReadOnly(t *testing.T) {
	sch, _, disp := newDisplay()
	sch.Tick(display.CyclesPerLine * 3)

	disp.WriteRegister(vcount, 100)
	test.ExpectEquality(t, disp.ReadRegister(vcount), 3)

	// status flags can not be written
	disp.WriteRegister(dispstat, 0x0007)
	test.ExpectEquality(t, disp.ReadRegister(dispstat)&0x0007, 0)
}
