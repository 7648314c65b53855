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

// Package hardware is the base package for the emulated console. The Console
// type collects the scheduler, interrupt controller, memory, timers, display
// timing and CPU, and plumbs them together.
//
// All the hardware components share a single scheduler. Time only moves
// forward as a side effect of the CPU accessing the bus, or of the CPU
// executing an internal cycle, or of the CPU being halted. The console
// drives the emulation by repeatedly calling CPU.Step().
package hardware
