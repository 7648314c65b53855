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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/debugger/govern"
	"github.com/jetsetilly/gopheradvance/hardware"
)

// Check the performance of the emulator using the supplied console. The
// console should already have a cartridge attached.
//
// Emulation will run for the specified duration and will create a cpu
// profile, memory profile, a trace (or a combination of those) as defined by
// the Profile argument. Measurement begins after the leadtime has elapsed to
// allow the frame rate to settle down.
func Check(output io.Writer, profile Profile, con *hardware.Console, duration string, leadtime time.Duration) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	var startFrame int
	var endFrame int

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool, 1)

		time.AfterFunc(leadtime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		// checking the timerChan is relatively expensive so only do it every
		// PerformanceBrake steps
		performanceBrake := 0

		return con.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return govern.Running, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					endFrame = con.Display.Frame()
					return govern.Ending, nil
				}
				startFrame = con.Display.Frame()
			default:
			}

			return govern.Running, nil
		})
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return curated.Errorf("performance: %v", err)
	}

	numFrames := endFrame - startFrame
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
