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

package debugger

// debugger keywords. not a useful data structure but we can use these to form
// the more useful help structure.
const (
	cmdHelp   = "HELP"
	cmdStep   = "STEP"
	cmdRun    = "RUN"
	cmdFrame  = "FRAME"
	cmdRegs   = "REGS"
	cmdStatus = "STATUS"
	cmdMemMap = "MEMMAP"
	cmdPeek   = "PEEK"
	cmdPoke   = "POKE"
	cmdDisasm = "DISASM"
	cmdBreak  = "BREAK"
	cmdClear  = "CLEAR"
	cmdScript = "SCRIPT"
	cmdLua    = "LUA"
	cmdMemviz = "MEMVIZ"
	cmdLog    = "LOG"
	cmdReset  = "RESET"
	cmdQuit   = "QUIT"
)

// help contains the help text for the debugger's top level commands.
var help = map[string]string{
	cmdHelp:   "Lists commands and provides help for individual debugger commands",
	cmdStep:   "Step the CPU pipeline. Optional argument sets the number of steps",
	cmdRun:    "Run emulator until a breakpoint is reached or a key is pressed",
	cmdFrame:  "Run emulator until the start of the next VBlank. Optional argument sets the number of frames",
	cmdRegs:   "Display the registers visible in the current CPU mode",
	cmdStatus: "Display the state of the CPU status register and the peripherals",
	cmdMemMap: "Display the memory map of the console",
	cmdPeek:   "Inspect memory. Optional second argument sets the number of bytes",
	cmdPoke:   "Modify memory. Additional values are written to consecutive addresses",
	cmdDisasm: "Disassemble instructions from address. Optional ARM or THUMB argument before the address selects the instruction set",
	cmdBreak:  "Halt the emulation before the instruction at address is executed. With no argument, lists breakpoints",
	cmdClear:  "Remove the breakpoint at address. With no argument, removes all breakpoints",
	cmdScript: "Run commands from specified file, or record commands to a file with SCRIPT RECORD and SCRIPT END",
	cmdLua:    "Run Lua code. LUA FILE runs the code in the named file",
	cmdMemviz: "Write a graphviz description of the CPU registers to the named file",
	cmdLog:    "Print the most recent log entries. LOG CLEAR empties the log",
	cmdReset:  "Reset the emulation to its initial state",
	cmdQuit:   "Exits the debugger",
}
