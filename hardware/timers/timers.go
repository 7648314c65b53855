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

// Package timers implements the four 16bit timers. Each timer counts up from
// its reload value and on overflow reloads, optionally requests an interrupt
// and optionally clocks the next timer (count-up, or cascade, mode).
//
// A running timer is not ticked every cycle. The counter value is computed
// from the scheduler clock when it is read and the scheduler is asked to call
// back at the cycle the counter will overflow.
package timers

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// Scheduler defines the parts of the scheduler used by the timers.
type Scheduler interface {
	Now() uint64
	EventTime() uint64
	AddEvent(e scheduler.Event, callback scheduler.Callback, timestamp uint64)
	RemoveEvent(e scheduler.Event)
}

// Interrupts defines the parts of the interrupt controller used by the timers.
type Interrupts interface {
	Request(irq interrupts.Interrupt)
}

// NumTimers is the number of timers.
const NumTimers = 4

// control register bits
const (
	ctrlPrescaler = 0x0003
	ctrlCascade   = 0x0004
	ctrlIRQ       = 0x0040
	ctrlEnable    = 0x0080
	ctrlMask      = ctrlPrescaler | ctrlCascade | ctrlIRQ | ctrlEnable
)

// number of cycles per count for each prescaler selection
var prescalers = [4]uint64{1, 64, 256, 1024}

type timer struct {
	id int

	reload  uint16
	control uint16

	// the counter value at the timestamp in start. for a cascaded timer the
	// start field is not used and the counter is the actual value
	counter uint16
	start   uint64
}

func (tm *timer) enabled() bool {
	return tm.control&ctrlEnable == ctrlEnable
}

func (tm *timer) cascaded() bool {
	// timer 0 has nothing to cascade from
	return tm.id > 0 && tm.control&ctrlCascade == ctrlCascade
}

// free running timers are the ones that need a scheduled event
func (tm *timer) running() bool {
	return tm.enabled() && !tm.cascaded()
}

func (tm *timer) prescaler() uint64 {
	return prescalers[tm.control&ctrlPrescaler]
}

func (tm *timer) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("TM%d: %04x reload=%04x /%d", tm.id, tm.counter, tm.reload, tm.prescaler()))
	if tm.cascaded() {
		s.WriteString(" cascade")
	}
	if tm.control&ctrlIRQ == ctrlIRQ {
		s.WriteString(" irq")
	}
	if !tm.enabled() {
		s.WriteString(" stopped")
	}
	return s.String()
}

// Timers is the timer block.
type Timers struct {
	sch Scheduler
	irq Interrupts

	timers [NumTimers]timer
}

// NewTimers is the preferred method of initialisation for the Timers type.
func NewTimers(sch Scheduler, irq Interrupts) *Timers {
	t := &Timers{
		sch: sch,
		irq: irq,
	}
	for i := range t.timers {
		t.timers[i].id = i
	}
	return t
}

func (t *Timers) String() string {
	s := strings.Builder{}
	for i := range t.timers {
		t.sync(i)
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(t.timers[i].String())
	}
	return s.String()
}

// Reset stops all timers.
func (t *Timers) Reset() {
	for i := range t.timers {
		if t.timers[i].running() {
			t.sch.RemoveEvent(scheduler.Timer0 + scheduler.Event(i))
		}
		t.timers[i] = timer{id: i}
	}
}

// Counter returns the current value of the timer's counter.
func (t *Timers) Counter(n int) uint16 {
	t.sync(n)
	return t.timers[n].counter
}

// sync brings the counter of a free running timer up to date with the clock.
// any part of a count that has not yet elapsed is kept in the start field
func (t *Timers) sync(n int) {
	tm := &t.timers[n]
	if !tm.running() {
		return
	}
	p := tm.prescaler()
	elapsed := (t.sch.Now() - tm.start) / p
	tm.counter += uint16(elapsed)
	tm.start += elapsed * p
}

// schedule the overflow event of a free running timer
func (t *Timers) schedule(n int) {
	tm := &t.timers[n]
	cycles := (0x10000-uint64(tm.counter))*tm.prescaler() - (t.sch.Now() - tm.start)
	t.sch.AddEvent(scheduler.Timer0+scheduler.Event(n), func() {
		t.overflowEvent(n)
	}, t.sch.Now()+cycles)
}

// overflowEvent is the scheduler callback for a free running timer. the next
// overflow is scheduled from the time the event was due rather than from the
// current time
func (t *Timers) overflowEvent(n int) {
	tm := &t.timers[n]
	tm.start = t.sch.EventTime()
	t.overflow(n)

	next := tm.start + (0x10000-uint64(tm.counter))*tm.prescaler()
	t.sch.AddEvent(scheduler.Timer0+scheduler.Event(n), func() {
		t.overflowEvent(n)
	}, next)
}

func (t *Timers) overflow(n int) {
	tm := &t.timers[n]
	tm.counter = tm.reload

	if tm.control&ctrlIRQ == ctrlIRQ {
		t.irq.Request(interrupts.Timer0 + interrupts.Interrupt(n))
	}

	if n+1 < NumTimers {
		next := &t.timers[n+1]
		if next.enabled() && next.cascaded() {
			next.counter++
			if next.counter == 0 {
				t.overflow(n + 1)
			}
		}
	}
}

// the offset of the first timer register in the I/O area. each timer has two
// registers: the counter/reload and the control register
const origin = 0x100

// ReadRegister implements the memory.Registers interface.
func (t *Timers) ReadRegister(offset uint32) uint16 {
	offset -= origin
	n := int(offset >> 2)
	if n >= NumTimers {
		return 0
	}

	if offset&0x02 == 0x02 {
		return t.timers[n].control
	}
	return t.Counter(n)
}

// WriteRegister implements the memory.Registers interface. Writing to the
// counter register sets the reload value and does not change the counter.
func (t *Timers) WriteRegister(offset uint32, data uint16) {
	offset -= origin
	n := int(offset >> 2)
	if n >= NumTimers {
		return
	}

	if offset&0x02 == 0x00 {
		t.timers[n].reload = data
		return
	}

	t.setControl(n, data&ctrlMask)
}

func (t *Timers) setControl(n int, control uint16) {
	tm := &t.timers[n]

	// freeze the counter at its current value before the mode changes
	t.sync(n)
	wasEnabled := tm.enabled()
	wasRunning := tm.running()
	prescaler := tm.prescaler()
	if wasRunning {
		t.sch.RemoveEvent(scheduler.Timer0 + scheduler.Event(n))
	}

	tm.control = control

	if tm.enabled() && !wasEnabled {
		tm.counter = tm.reload
	}

	// a timer that keeps running at the same rate keeps the part of the
	// current count that has already elapsed
	if !wasRunning || !tm.running() || tm.prescaler() != prescaler {
		tm.start = t.sch.Now()
	}

	if tm.running() {
		t.schedule(n)
	}
}
