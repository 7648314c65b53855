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

// Package interrupts implements the interrupt controller. Peripherals request
// interrupts and the CPU polls the controller once per step.
//
// Requests are not visible to the CPU immediately. A request sets a bit in the
// live request register and, if a dispatch is not already in flight, arms the
// InterruptDispatch event for four cycles in the future. When that event fires
// the live register is committed to the shadow register, which is the
// register the CPU (and software reading IF) sees.
package interrupts

import (
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// Interrupt is a single interrupt source. The value is the bit number in the
// IE and IF registers.
type Interrupt uint8

// List of valid Interrupt values.
const (
	VBlank Interrupt = iota
	HBlank
	VCount
	Timer0
	Timer1
	Timer2
	Timer3
	Serial
	DMA0
	DMA1
	DMA2
	DMA3
	Keypad
	GamePak

	NumInterrupts
)

func (irq Interrupt) String() string {
	switch irq {
	case VBlank:
		return "vblank"
	case HBlank:
		return "hblank"
	case VCount:
		return "vcount"
	case Timer0, Timer1, Timer2, Timer3:
		return fmt.Sprintf("timer%d", irq-Timer0)
	case Serial:
		return "serial"
	case DMA0, DMA1, DMA2, DMA3:
		return fmt.Sprintf("dma%d", irq-DMA0)
	case Keypad:
		return "keypad"
	case GamePak:
		return "gamepak"
	}
	return fmt.Sprintf("unknown interrupt (%d)", irq)
}

// the number of cycles between a request and it becoming visible
const DispatchLatency = 4

// only the lower 14 bits of IE and IF are meaningful
const mask = (1 << NumInterrupts) - 1

// Scheduler defines the parts of the scheduler used by the controller.
type Scheduler interface {
	Timestamp() uint64
	AddEvent(e scheduler.Event, callback scheduler.Callback, timestamp uint64)
	RemoveEvent(e scheduler.Event)
}

// Controller is the interrupt controller.
type Controller struct {
	sch Scheduler

	// the enabled interrupts (IE)
	enabled uint16

	// the requested interrupts. live is written to by requests and by
	// software acknowledgement. shadow is what is visible to the CPU and to
	// software reading the IF register
	live   uint16
	shadow uint16

	// the master enable (IME)
	master bool

	// a dispatch event is pending
	inFlight bool
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(sch Scheduler) *Controller {
	return &Controller{sch: sch}
}

func (ctrl *Controller) String() string {
	return fmt.Sprintf("IE=%04x IF=%04x (live %04x) IME=%v", ctrl.enabled, ctrl.shadow, ctrl.live, ctrl.master)
}

// Reset the controller to its power-on state.
func (ctrl *Controller) Reset() {
	if ctrl.inFlight {
		ctrl.sch.RemoveEvent(scheduler.InterruptDispatch)
	}
	ctrl.enabled = 0
	ctrl.live = 0
	ctrl.shadow = 0
	ctrl.master = false
	ctrl.inFlight = false
}

// Request an interrupt. The request becomes visible DispatchLatency cycles
// after the scheduler's Timestamp(). For a request made by an event callback
// that is measured from when the event was due.
func (ctrl *Controller) Request(irq Interrupt) {
	if irq >= NumInterrupts {
		panic(fmt.Sprintf("interrupts: request out of range (%d)", irq))
	}

	ctrl.live |= 1 << irq

	if !ctrl.inFlight {
		ctrl.inFlight = true
		ctrl.sch.AddEvent(scheduler.InterruptDispatch, ctrl.commit, ctrl.sch.Timestamp()+DispatchLatency)
	}
}

func (ctrl *Controller) commit() {
	ctrl.inFlight = false
	ctrl.shadow = ctrl.live
}

// Pending returns true if an enabled interrupt has been requested and is
// visible. The master enable is ignored if bypass is true.
func (ctrl *Controller) Pending(bypass bool) bool {
	return (ctrl.master || bypass) && ctrl.shadow&ctrl.enabled != 0
}

// IE returns the interrupt enable register.
func (ctrl *Controller) IE() uint16 {
	return ctrl.enabled
}

// SetIE sets the interrupt enable register.
func (ctrl *Controller) SetIE(v uint16) {
	ctrl.enabled = v & mask
}

// IF returns the interrupt request register as visible to software.
func (ctrl *Controller) IF() uint16 {
	return ctrl.shadow
}

// AcknowledgeIF clears the bits in the request register that are set in v.
// While a dispatch is in flight only the live register is changed, so that
// the acknowledgement survives the commit.
func (ctrl *Controller) AcknowledgeIF(v uint16) {
	ctrl.live &^= v
	if !ctrl.inFlight {
		ctrl.shadow = ctrl.live
	}
}

// IME returns the master enable register.
func (ctrl *Controller) IME() uint16 {
	if ctrl.master {
		return 1
	}
	return 0
}

// SetIME sets the master enable register. Only bit zero is meaningful.
func (ctrl *Controller) SetIME(v uint16) {
	ctrl.master = v&0x01 == 0x01
}
