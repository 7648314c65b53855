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

// Package bus defines the memory bus concepts that are shared between the
// memory package and the packages that use memory without being part of the
// emulated hardware.
package bus

// DebuggerBus defines the meta-operations for all memory areas. Think of these
// functions as "debugging" functions, that is operations outside of the normal
// operation of the machine. They do not advance the clock and they have no
// side effects on the I/O registers.
type DebuggerBus interface {
	Peek(address uint32) (uint8, error)
	Poke(address uint32, value uint8) error
}

// AudioBus is implemented by the part of memory that receives samples for the
// direct sound channels.
type AudioBus interface {
	// Samples returns the most recent sample written to each FIFO
	Samples() (int8, int8)
}
