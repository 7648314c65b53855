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

// Package limiter restricts the rate at which frames are emulated to a
// real-world frequency.
package limiter

import (
	"time"

	"github.com/jetsetilly/gopheradvance/curated"
)

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	framesPerSecond float64
	ticker          *time.Ticker
}

// NewFPSLimiter is the preferred method of initialisation for the FpsLimiter
// type.
func NewFPSLimiter(framesPerSecond float64) (*FpsLimiter, error) {
	if framesPerSecond <= 0 {
		return nil, curated.Errorf("limiter: frames per second must be positive (%f)", framesPerSecond)
	}

	lim := &FpsLimiter{
		framesPerSecond: framesPerSecond,
		ticker:          time.NewTicker(period(framesPerSecond)),
	}

	return lim, nil
}

func period(framesPerSecond float64) time.Duration {
	return time.Duration(float64(time.Second) / framesPerSecond)
}

// SetLimit changes the limit at which the FpsLimiter waits. Values of zero or
// less are ignored.
func (lim *FpsLimiter) SetLimit(framesPerSecond float64) {
	if framesPerSecond <= 0 {
		return
	}
	lim.framesPerSecond = framesPerSecond
	lim.ticker.Reset(period(framesPerSecond))
}

// Limit returns the current limit.
func (lim *FpsLimiter) Limit() float64 {
	return lim.framesPerSecond
}

// Wait will block until the next tick.
func (lim *FpsLimiter) Wait() {
	<-lim.ticker.C
}

// HasWaited returns true if the tick has passed without blocking.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.ticker.C:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Stop the limiter. The limiter can not be used after Stop() has been called.
func (lim *FpsLimiter) Stop() {
	lim.ticker.Stop()
}
