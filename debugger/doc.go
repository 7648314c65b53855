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

// Package debugger implements a command line monitor for the emulation.
//
// The debugger reads commands from a terminal.Terminal, or from a script
// being replayed, and acts on them. A list of commands can be seen with the
// HELP command.
//
// The emulation is paused between commands. It can be stepped one pipeline
// stage at a time with STEP, or set running with RUN and FRAME. A running
// emulation stops when the CPU is about to execute an instruction at a
// breakpoint, when the CPU reports an error, or when the terminal reports
// that a key has been pressed.
//
// Commands can be recorded to a script with SCRIPT RECORD and replayed later
// with SCRIPT. Lua code can be run with the LUA command. See the script
// package for the functions available to Lua.
package debugger
