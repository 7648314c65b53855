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

// Package scheduler is the clock that all hardware timing derives from.
//
// The Scheduler holds a single global timestamp, measured in CPU cycles, and a
// fixed table of events. There is one slot in the table for each Event kind
// and so there can only ever be one pending callback for each kind. Arming an
// event that is already pending replaces it.
//
// Time moves forward only through Tick() and JumpToNextEvent(). When the
// clock reaches or passes the timestamp of an enabled event, the event is
// disabled and its callback run. Callbacks that need to recur must re-arm
// themselves and should use EventTime() rather than Now() as the basis for
// the next timestamp, so that any overshoot of the clock does not accumulate.
//
// The Scheduler is not safe for concurrent use.
package scheduler

import (
	"fmt"
	"strings"
)

// Event identifies a slot in the event table. When two events are due at the
// same timestamp the event with the lower value fires first.
type Event int

// List of valid Event values.
const (
	Video Event = iota
	Timer0
	Timer1
	Timer2
	Timer3
	DMA
	Serial
	AudioSample
	InterruptDispatch

	NumEvents
)

func (e Event) String() string {
	switch e {
	case Video:
		return "video"
	case Timer0:
		return "timer0"
	case Timer1:
		return "timer1"
	case Timer2:
		return "timer2"
	case Timer3:
		return "timer3"
	case DMA:
		return "dma"
	case Serial:
		return "serial"
	case AudioSample:
		return "audio sample"
	case InterruptDispatch:
		return "interrupt dispatch"
	}
	return fmt.Sprintf("unknown event (%d)", int(e))
}

// Callback is the function run when an event fires.
type Callback func()

type entry struct {
	callback  Callback
	timestamp uint64
	enabled   bool
}

// Scheduler is the global clock and event table.
type Scheduler struct {
	now    uint64
	events [NumEvents]entry

	// the timestamp that the most recently fired event was scheduled for
	eventTime uint64

	// a callback is running
	firing bool
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (sch *Scheduler) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("now: %d", sch.now))
	for e := range sch.events {
		if sch.events[e].enabled {
			s.WriteString(fmt.Sprintf("\n%s: %d", Event(e), sch.events[e].timestamp))
		}
	}
	return s.String()
}

func (e Event) check() {
	if e < 0 || e >= NumEvents {
		panic(fmt.Sprintf("scheduler: event out of range (%d)", int(e)))
	}
}

// Reset the clock to zero and disarm all events.
func (sch *Scheduler) Reset() {
	sch.now = 0
	sch.eventTime = 0
	sch.firing = false
	for e := range sch.events {
		sch.events[e] = entry{}
	}
}

// Now returns the current timestamp.
func (sch *Scheduler) Now() uint64 {
	return sch.now
}

// EventTime returns the timestamp at which the most recently fired event was
// scheduled to occur. This will be the same as or earlier than Now().
func (sch *Scheduler) EventTime() uint64 {
	return sch.eventTime
}

// Timestamp returns the logical time of whatever is happening now. While an
// event callback is running it is the time the event was due, which may be
// earlier than Now(). Otherwise it is the same as Now().
//
// Anything that is timed relative to the moment it was caused, such as an
// interrupt requested by a peripheral, should use Timestamp().
func (sch *Scheduler) Timestamp() uint64 {
	if sch.firing {
		return sch.eventTime
	}
	return sch.now
}

// AddEvent arms the slot for the event kind. The callback will be run when
// the clock reaches the timestamp, which is absolute. Any pending callback for
// the event kind is replaced.
func (sch *Scheduler) AddEvent(e Event, callback Callback, timestamp uint64) {
	e.check()
	sch.events[e] = entry{
		callback:  callback,
		timestamp: timestamp,
		enabled:   true,
	}
}

// RemoveEvent disarms the event kind without running the callback.
func (sch *Scheduler) RemoveEvent(e Event) {
	e.check()
	sch.events[e].enabled = false
}

// Pending returns the timestamp of the event if it is armed.
func (sch *Scheduler) Pending(e Event) (uint64, bool) {
	e.check()
	return sch.events[e].timestamp, sch.events[e].enabled
}

// Tick moves the clock forward by the number of cycles and fires any events
// that are now due.
func (sch *Scheduler) Tick(cycles uint64) {
	sch.now += cycles
	sch.fire()
}

// fire runs every due event. the event with the earliest timestamp is always
// chosen next, with ties broken by table order. because a callback can arm
// another event that is already due, the table is searched again after every
// callback
func (sch *Scheduler) fire() {
	for {
		next := NumEvents
		for e := range sch.events {
			ev := &sch.events[e]
			if !ev.enabled || ev.timestamp > sch.now {
				continue
			}
			if next == NumEvents || ev.timestamp < sch.events[next].timestamp {
				next = Event(e)
			}
		}

		if next == NumEvents {
			return
		}

		ev := &sch.events[next]
		ev.enabled = false
		sch.eventTime = ev.timestamp
		if ev.callback != nil {
			sch.firing = true
			ev.callback()
			sch.firing = false
		}
	}
}

// JumpToNextEvent moves the clock directly to the timestamp of the nearest
// enabled event and fires it (and anything else due at that time). Returns
// false if there are no enabled events, in which case the clock does not move.
//
// The result is the same as calling Tick(1) repeatedly until the event
// fires, which is what makes it safe to use while the CPU is halted.
func (sch *Scheduler) JumpToNextEvent() bool {
	next := NumEvents
	for e := range sch.events {
		if !sch.events[e].enabled {
			continue
		}
		if next == NumEvents || sch.events[e].timestamp < sch.events[next].timestamp {
			next = Event(e)
		}
	}

	if next == NumEvents {
		return false
	}

	if ts := sch.events[next].timestamp; ts > sch.now {
		sch.now = ts
	}
	sch.fire()

	return true
}
