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

// Package clocks defines the basic frequencies of the console.
package clocks

// CPU is the frequency of the CPU clock in MHz. It is 2^24 Hz.
const CPU = 16.777216

// CyclesPerSecond is the CPU frequency in Hz. Every timestamp used by the
// scheduler is measured in these cycles.
const CyclesPerSecond = 1 << 24

// DirectSound is the default rate in Hz at which the direct sound FIFOs are
// sampled.
const DirectSound = 32768
