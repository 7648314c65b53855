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
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/debugger/govern"
)

// While the continueCheck() function only runs at the end of a CPU step it can
// still be expensive to do a full continue check every time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible.
func (con *Console) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running:
			if err := con.Step(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("console: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets the emulation running for the specified number of
// frames. A frame ends at the start of the vertical blank.
func (con *Console) RunForFrameCount(numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	frameNum := con.Display.Frame()
	targetFrame := frameNum + numFrames

	var err error

	state := govern.Running
	for frameNum != targetFrame && state != govern.Ending {
		if err := con.Step(); err != nil {
			return err
		}

		frameNum = con.Display.Frame()

		state, err = continueCheck(frameNum)
		if err != nil {
			return err
		}
	}

	return nil
}

// RunFrame runs the emulation until the start of the next vertical blank.
func (con *Console) RunFrame() error {
	return con.RunForFrameCount(1, nil)
}
