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

// Package script allows the debugger to record and replay its own input, and
// to run Lua code with access to the emulation.
//
// A Rescribe is a previously recorded script. It implements the
// terminal.Input interface and so can be used in place of the user's
// terminal. Lines starting with # are comments.
//
// A Scribe records the debugger's input as it is entered, for later replay
// with Rescribe.
//
// A Lua is a Lua virtual machine with functions bound to the debugger. The
// functions available are:
//
//	peek(address)            returns the byte at address
//	poke(address, value)     writes the byte to address
//	reg(n)                   returns the value of register n
//	step([n])                steps the CPU n times (one if omitted)
//	cmd(command)             runs a debugger command
//	print(...)               prints to the debugger terminal
package script
