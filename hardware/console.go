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

package hardware

import (
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware/clocks"
	"github.com/jetsetilly/gopheradvance/hardware/cpu"
	"github.com/jetsetilly/gopheradvance/hardware/display"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/hardware/timers"
)

// AudioMixer is implemented by anything that wants to receive the output of
// the direct sound channels. SetAudio() is called once for every
// AudioSample event.
type AudioMixer interface {
	SetAudio(a, b int8) error
}

// Console is the emulated console.
type Console struct {
	env *environment.Environment

	Scheduler  *scheduler.Scheduler
	Interrupts *interrupts.Controller
	Mem        *memory.Memory
	Timers     *timers.Timers
	Display    *display.Display
	CPU        *cpu.CPU

	audio    AudioMixer
	audioErr error
}

// NewConsole creates a new console and everything associated with the
// hardware. If bios is nil then the built in boot stub is used. The rom
// argument may be nil, in which case there is no cartridge.
//
// The console is returned in the reset state.
func NewConsole(env *environment.Environment, bios []byte, rom []byte) (*Console, error) {
	con := &Console{env: env}

	con.Scheduler = scheduler.NewScheduler()
	con.Interrupts = interrupts.NewController(con.Scheduler)

	var err error
	con.Mem, err = memory.NewMemory(env, con.Scheduler, bios)
	if err != nil {
		return nil, err
	}

	if rom != nil {
		if err := con.Mem.AttachROM(rom); err != nil {
			return nil, err
		}
	}

	con.Timers = timers.NewTimers(con.Scheduler, con.Interrupts)
	con.Display = display.NewDisplay(con.Scheduler, con.Interrupts)
	con.Mem.Plumb(con.Interrupts, con.Timers, con.Display)

	con.CPU = cpu.NewCPU(env, con.Mem, con.Interrupts, con.Scheduler)

	con.Reset()

	return con, nil
}

func (con *Console) String() string {
	return con.Display.String()
}

// Reset the console. The scheduler clock restarts from zero. Depending on the
// SkipBIOS preference the CPU starts at the reset vector or at the cartridge
// entry point.
func (con *Console) Reset() {
	con.Scheduler.Reset()
	con.Interrupts.Reset()
	con.Mem.Reset()
	con.Timers.Reset()
	con.Display.Reset()

	if con.env.Prefs.SkipBIOS.Get().(bool) {
		con.CPU.SkipBIOS()
	} else {
		con.CPU.Reset()
	}

	con.audioErr = nil
	con.scheduleAudio()
}

// AttachAudio sets the AudioMixer that receives samples. A nil value stops
// the AudioSample event.
func (con *Console) AttachAudio(mixer AudioMixer) {
	con.audio = mixer
	if mixer == nil {
		con.Scheduler.RemoveEvent(scheduler.AudioSample)
		return
	}
	con.scheduleAudio()
}

// ClockSpeed is the number of CPU cycles per second.
const ClockSpeed = clocks.CyclesPerSecond

// the number of CPU cycles between audio samples
func (con *Console) samplePeriod() uint64 {
	rate := con.env.Prefs.SampleRate.Get().(int)
	if rate <= 0 {
		rate = clocks.DirectSound
	}
	return ClockSpeed / uint64(rate)
}

func (con *Console) scheduleAudio() {
	if con.audio == nil {
		return
	}
	con.Scheduler.AddEvent(scheduler.AudioSample, con.sampleEvent, con.Scheduler.Now()+con.samplePeriod())
}

func (con *Console) sampleEvent() {
	a, b := con.Mem.Samples()
	if err := con.audio.SetAudio(a, b); err != nil && con.audioErr == nil {
		con.audioErr = err
	}
	con.Scheduler.AddEvent(scheduler.AudioSample, con.sampleEvent, con.Scheduler.EventTime()+con.samplePeriod())
}

// Step the CPU pipeline once.
func (con *Console) Step() error {
	if err := con.CPU.Step(); err != nil {
		return err
	}
	if con.audioErr != nil {
		err := con.audioErr
		con.audioErr = nil
		return err
	}
	return nil
}
