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

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/debugger/govern"
	"github.com/jetsetilly/gopheradvance/debugger/terminal"
	"github.com/jetsetilly/gopheradvance/disassembly"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/memory/memorymap"
	"github.com/jetsetilly/gopheradvance/modalflag"
)

// the most bytes that can be shown by a single PEEK
const maxPeek = 0x400

// the number of instructions listed by DISASM with no count argument
const defaultDisasm = 8

// the number of log entries shown by LOG with no argument
const defaultLogTail = 10

// split input into the keyword and the remainder of the line. the keyword is
// normalised to upper case. the remainder is left untouched.
func splitInput(input string) (string, string) {
	input = strings.TrimSpace(input)
	i := strings.IndexFunc(input, unicode.IsSpace)
	if i == -1 {
		return strings.ToUpper(input), ""
	}
	return strings.ToUpper(input[:i]), strings.TrimSpace(input[i:])
}

// command runs a single line of input. the boolean return value is true if
// the input is suitable for recording to a script.
func (dbg *Debugger) command(input string) (bool, error) {
	keyword, rest := splitInput(input)
	args := strings.Fields(rest)

	switch keyword {
	case "":
		return false, nil

	case cmdHelp:
		return false, dbg.commandHelp(args)

	case cmdQuit:
		dbg.state = govern.Ending
		return false, nil

	case cmdReset:
		dbg.con.Reset()
		dbg.printLine(terminal.StyleFeedback, "console reset")
		return true, nil

	case cmdStep:
		n, err := optionalCount(args, 1)
		if err != nil {
			return false, err
		}
		return true, dbg.step(n)

	case cmdRun:
		return true, dbg.run()

	case cmdFrame:
		n, err := optionalCount(args, 1)
		if err != nil {
			return false, err
		}
		return true, dbg.frame(n)

	case cmdRegs:
		dbg.printLine(terminal.StyleRegisters, "%s", dbg.con.CPU.Registers())
		return true, nil

	case cmdStatus:
		dbg.printLine(terminal.StyleRegisters, "CPSR: %s", dbg.con.CPU.Status())
		if spsr, ok := dbg.con.CPU.Registers().SPSR(); ok {
			dbg.printLine(terminal.StyleRegisters, "SPSR: %s", spsr)
		}
		dbg.printLine(terminal.StyleFeedback, "%s", dbg.con.Scheduler)
		dbg.printLine(terminal.StyleFeedback, "%s", dbg.con.Interrupts)
		dbg.printLine(terminal.StyleFeedback, "%s", dbg.con.Display)
		dbg.printLine(terminal.StyleFeedback, "%s", dbg.con.Timers)
		dbg.printLine(terminal.StyleFeedback, "%s", dbg.con.Mem)
		return true, nil

	case cmdMemMap:
		dbg.printLine(terminal.StyleFeedback, "%s", strings.TrimRight(memorymap.Summary(), "\n"))
		return true, nil

	case cmdPeek:
		return true, dbg.peek(args)

	case cmdDisasm:
		return true, dbg.disasm(args)

	case cmdPoke:
		return true, dbg.poke(args)

	case cmdBreak:
		if len(args) == 0 {
			dbg.printLine(terminal.StyleFeedback, "%s", dbg.breakpoints)
			return false, nil
		}
		for _, a := range args {
			address, err := modalflag.ParseAddress(a)
			if err != nil {
				return false, curated.Errorf("%s: %v", cmdBreak, err)
			}
			if err := dbg.breakpoints.add(address); err != nil {
				return false, err
			}
		}
		return true, nil

	case cmdClear:
		if len(args) == 0 {
			dbg.breakpoints.clear()
			dbg.printLine(terminal.StyleFeedback, "breakpoints cleared")
			return true, nil
		}
		for _, a := range args {
			address, err := modalflag.ParseAddress(a)
			if err != nil {
				return false, curated.Errorf("%s: %v", cmdClear, err)
			}
			if err := dbg.breakpoints.drop(address); err != nil {
				return false, err
			}
		}
		return true, nil

	case cmdScript:
		return dbg.commandScript(args)

	case cmdLua:
		return dbg.commandLua(rest)

	case cmdMemviz:
		if len(args) != 1 {
			return false, curated.Errorf("%s: requires a filename", cmdMemviz)
		}
		f, err := os.Create(args[0])
		if err != nil {
			return false, curated.Errorf("%s: %v", cmdMemviz, err)
		}
		defer f.Close()
		memviz.Map(f, dbg.con.CPU.Registers())
		dbg.printLine(terminal.StyleFeedback, "registers written to %s", args[0])
		return true, nil

	case cmdLog:
		if len(args) == 1 && strings.ToUpper(args[0]) == "CLEAR" {
			dbg.env.Log.Clear()
			return true, nil
		}
		n, err := optionalCount(args, defaultLogTail)
		if err != nil {
			return false, err
		}
		s := strings.Builder{}
		dbg.env.Log.Tail(&s, n)
		if s.Len() == 0 {
			dbg.printLine(terminal.StyleFeedback, "log is empty")
			return true, nil
		}
		dbg.printLine(terminal.StyleLog, "%s", strings.TrimRight(s.String(), "\n"))
		return true, nil
	}

	return false, curated.Errorf("%s is not a debugging command", keyword)
}

// optionalCount parses the first argument as a positive count. the default
// is used when there are no arguments.
func optionalCount(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, curated.Errorf("not a valid count: %s", args[0])
	}
	return n, nil
}

func (dbg *Debugger) commandHelp(args []string) error {
	if len(args) == 0 {
		keywords := make([]string, 0, len(help))
		for k := range help {
			keywords = append(keywords, k)
		}
		sort.Strings(keywords)
		dbg.printLine(terminal.StyleHelp, "%s", strings.Join(keywords, " "))
		return nil
	}

	k := strings.ToUpper(args[0])
	h, ok := help[k]
	if !ok {
		return curated.Errorf("no help for %s", k)
	}
	dbg.printLine(terminal.StyleHelp, "%s", h)
	return nil
}

// step the CPU pipeline n times and report the most recently executed
// instruction.
func (dbg *Debugger) step(n int) error {
	for i := 0; i < n; i++ {
		if err := dbg.con.Step(); err != nil {
			return err
		}
	}
	dbg.printLine(terminal.StyleCPUStep, "%s", dbg.lastExecuted())
	return nil
}

func (dbg *Debugger) lastExecuted() string {
	e := dbg.disassemble(dbg.con.CPU.ExecutingAddress(), dbg.con.CPU.Status().Thumb)
	return fmt.Sprintf("%s [%d]", e.Line(), dbg.con.Scheduler.Now())
}

// disassemble the opcode at address. memory is read without side effects.
func (dbg *Debugger) disassemble(address uint32, thumb bool) disassembly.Entry {
	width := uint32(4)
	if thumb {
		width = 2
	}
	address &^= width - 1

	var op uint32
	for i := uint32(0); i < width; i++ {
		v, _ := dbg.mem.Peek(address + i)
		op |= uint32(v) << (i * 8)
	}
	return disassembly.Disassemble(address, op, thumb)
}

// disasm lists instructions starting at the optional address. with no address
// the listing starts at the next instruction to be executed.
func (dbg *Debugger) disasm(args []string) error {
	thumb := dbg.con.CPU.Status().Thumb
	address, ok := dbg.con.CPU.NextExecuting()

	if len(args) > 0 {
		switch strings.ToUpper(args[0]) {
		case "ARM":
			thumb = false
			args = args[1:]
		case "THUMB":
			thumb = true
			args = args[1:]
		}
	}

	if len(args) > 0 {
		var err error
		address, err = modalflag.ParseAddress(args[0])
		if err != nil {
			return curated.Errorf("%s: %v", cmdDisasm, err)
		}
		args = args[1:]
	} else if !ok {
		return curated.Errorf("%s: pipeline is not full. an address is required", cmdDisasm)
	}

	n, err := optionalCount(args, defaultDisasm)
	if err != nil {
		return err
	}

	s := strings.Builder{}
	for i := 0; i < n; i++ {
		e := dbg.disassemble(address, thumb)
		if i > 0 {
			s.WriteRune('\n')
		}
		s.WriteString(e.Line())
		if thumb {
			address += 2
		} else {
			address += 4
		}
	}
	dbg.printLine(terminal.StyleFeedback, "%s", s.String())

	return nil
}

// haltCheck returns a continueCheck function suitable for the console's Run()
// function. the reason for the halt is stored in the string pointer.
func (dbg *Debugger) haltCheck(reason *string) func() (govern.State, error) {
	var performanceFilter int

	return func() (govern.State, error) {
		if dbg.breakpoints.check(dbg.con.CPU.NextExecuting()) {
			a, _ := dbg.con.CPU.NextExecuting()
			*reason = fmt.Sprintf("break at %08x", a)
			return govern.Ending, nil
		}

		performanceFilter++
		if performanceFilter >= hardware.PerformanceBrake {
			performanceFilter = 0
			if dbg.term.TermReadCheck() {
				*reason = "interrupted"
				return govern.Ending, nil
			}
		}

		return govern.Running, nil
	}
}

func (dbg *Debugger) run() error {
	dbg.state = govern.Running
	defer func() {
		dbg.state = govern.Paused
	}()

	var reason string
	if err := dbg.con.Run(dbg.haltCheck(&reason)); err != nil {
		return err
	}
	dbg.printLine(terminal.StyleFeedback, "%s", reason)

	return nil
}

func (dbg *Debugger) frame(n int) error {
	dbg.state = govern.Running
	defer func() {
		dbg.state = govern.Paused
	}()

	var reason string
	check := dbg.haltCheck(&reason)
	err := dbg.con.RunForFrameCount(n, func(_ int) (govern.State, error) {
		return check()
	})
	if err != nil {
		return err
	}

	if reason != "" {
		dbg.printLine(terminal.StyleFeedback, "%s", reason)
	}
	dbg.printLine(terminal.StyleFeedback, "%s", dbg.con.Display)

	return nil
}

func (dbg *Debugger) peek(args []string) error {
	if len(args) == 0 {
		return curated.Errorf("%s: requires an address", cmdPeek)
	}

	address, err := modalflag.ParseAddress(args[0])
	if err != nil {
		return curated.Errorf("%s: %v", cmdPeek, err)
	}

	n, err := optionalCount(args[1:], 1)
	if err != nil {
		return err
	}
	if n > maxPeek {
		n = maxPeek
	}

	s := strings.Builder{}
	for i := 0; i < n; i++ {
		a := address + uint32(i)
		v, err := dbg.mem.Peek(a)
		if err != nil {
			return err
		}
		if i%16 == 0 {
			if i > 0 {
				s.WriteRune('\n')
			}
			s.WriteString(fmt.Sprintf("%08x:", a))
		}
		s.WriteString(fmt.Sprintf(" %02x", v))
	}
	dbg.printLine(terminal.StyleFeedback, "%s", s.String())

	return nil
}

func (dbg *Debugger) poke(args []string) error {
	if len(args) < 2 {
		return curated.Errorf("%s: requires an address and a value", cmdPoke)
	}

	address, err := modalflag.ParseAddress(args[0])
	if err != nil {
		return curated.Errorf("%s: %v", cmdPoke, err)
	}

	for i, a := range args[1:] {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(a), "0x"), 16, 8)
		if err != nil {
			return curated.Errorf("%s: not a valid byte: %s", cmdPoke, a)
		}
		if err := dbg.mem.Poke(address+uint32(i), uint8(v)); err != nil {
			return err
		}
	}

	return nil
}

func (dbg *Debugger) commandScript(args []string) (bool, error) {
	if len(args) == 0 {
		return false, curated.Errorf("%s: requires a filename", cmdScript)
	}

	switch strings.ToUpper(args[0]) {
	case "RECORD":
		if len(args) != 2 {
			return false, curated.Errorf("%s: requires a filename", cmdScript)
		}
		if err := dbg.scribe.StartSession(args[1]); err != nil {
			return false, err
		}
		dbg.printLine(terminal.StyleFeedback, "recording to %s", args[1])
		return false, nil

	case "END":
		if !dbg.scribe.IsActive() {
			return false, curated.Errorf("%s: no script is being recorded", cmdScript)
		}
		return false, dbg.scribe.EndSession()
	}

	// the SCRIPT command is recorded and StartPlayback() prevents the
	// commands in the replayed script from being recorded a second time
	if err := dbg.scribe.WriteInput(fmt.Sprintf("%s %s", cmdScript, args[0])); err != nil {
		return false, err
	}

	return false, dbg.startReplay(args[0])
}

func (dbg *Debugger) commandLua(rest string) (bool, error) {
	if rest == "" {
		return false, curated.Errorf("%s: requires Lua code", cmdLua)
	}

	sub, filename := splitInput(rest)
	if sub == "FILE" {
		if filename == "" {
			return false, curated.Errorf("%s: requires a filename", cmdLua)
		}
		return true, dbg.lua.DoFile(filename)
	}

	return true, dbg.lua.DoString(rest)
}
