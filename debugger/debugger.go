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
	"io"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/debugger/govern"
	"github.com/jetsetilly/gopheradvance/debugger/script"
	"github.com/jetsetilly/gopheradvance/debugger/terminal"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/memory/bus"
	"github.com/pkg/errors"
)

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	env *environment.Environment
	con *hardware.Console

	// memory as seen by the debugger. peeks and pokes do not advance the
	// clock
	mem bus.DebuggerBus

	// interface to the terminal. used for user input when no script is
	// being replayed and for all output
	term terminal.Terminal

	state govern.State

	breakpoints breakpoints

	// scripts being replayed. the last entry is the current source of input.
	// a script can replay another script
	replay []*script.Rescribe

	// records user input to a script file
	scribe script.Scribe

	lua *script.Lua
}

// NewDebugger creates and initialises everything required for a new
// debugging session. Use the Start() function to actually begin the session.
func NewDebugger(env *environment.Environment, con *hardware.Console, term terminal.Terminal) (*Debugger, error) {
	dbg := &Debugger{
		env:         env,
		con:         con,
		mem:         con.Mem,
		term:        term,
		state:       govern.Initialising,
		breakpoints: newBreakpoints(),
	}

	if err := dbg.term.Initialise(); err != nil {
		return nil, curated.Errorf("debugger: %v", err)
	}

	dbg.lua = script.NewLua(&luaBridge{dbg: dbg})

	return dbg, nil
}

// State returns the current state of the debugger.
func (dbg *Debugger) State() govern.State {
	return dbg.state
}

// Start the main debugger sequence. If initScript is not the empty string
// then the commands in the file are run before the user is prompted.
//
// Start returns when the user quits, when there is no more input or when the
// terminal returns an error that is not one of the UserInterrupt or UserAbort
// errors.
func (dbg *Debugger) Start(initScript string) error {
	defer dbg.end()

	if initScript != "" {
		if err := dbg.startReplay(initScript); err != nil {
			return err
		}
	}

	dbg.state = govern.Paused

	for dbg.state != govern.Ending {
		input, err := dbg.read()
		if err != nil {
			if errors.Is(err, io.EOF) || curated.Is(err, terminal.UserAbort) || curated.Is(err, terminal.UserInterrupt) {
				dbg.state = govern.Ending
				break
			}
			return curated.Errorf("debugger: %v", err)
		}

		if err := dbg.parseInput(input); err != nil {
			dbg.printLine(terminal.StyleError, "%s", err)
		}
	}

	return nil
}

func (dbg *Debugger) end() {
	dbg.state = govern.Ending
	if err := dbg.scribe.EndSession(); err != nil {
		dbg.env.Logs("debugger", err)
	}
	dbg.lua.Close()
	dbg.term.CleanUp()
}

// read the next line of input. input comes from the most recent replaying
// script if there is one.
func (dbg *Debugger) read() (string, error) {
	for len(dbg.replay) > 0 {
		top := len(dbg.replay) - 1
		s, err := dbg.replay[top].TermRead(dbg.prompt())
		if err == nil {
			dbg.printLine(terminal.StyleEcho, "%s", s)
			return s, nil
		}

		dbg.replay = dbg.replay[:top]
		dbg.scribe.EndPlayback()
		if !curated.Is(err, script.ScriptEnd) {
			return "", err
		}
	}

	return dbg.term.TermRead(dbg.prompt())
}

func (dbg *Debugger) prompt() terminal.Prompt {
	address, ok := dbg.con.CPU.NextExecuting()
	return terminal.Prompt{
		Address:   address,
		Thumb:     dbg.con.CPU.Status().Thumb,
		Filling:   !ok,
		Recording: dbg.scribe.IsActive(),
	}
}

func (dbg *Debugger) startReplay(filename string) error {
	scr, err := script.RescribeScript(filename)
	if err != nil {
		return err
	}
	dbg.replay = append(dbg.replay, scr)
	dbg.scribe.StartPlayback()
	return nil
}

// printLine formats a string and sends it to the terminal. multi-line strings
// are sent one line at a time.
func (dbg *Debugger) printLine(style terminal.Style, format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	for _, l := range strings.Split(s, "\n") {
		dbg.term.TermPrintLine(style, l)
	}
}

// parseInput splits the input into tokens, runs the command and, if the
// command was successful, records the input to the active script.
func (dbg *Debugger) parseInput(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	record, err := dbg.command(input)
	if err != nil {
		return err
	}

	if record {
		return dbg.scribe.WriteInput(input)
	}

	return nil
}

// luaBridge is the debugger as seen by Lua code.
type luaBridge struct {
	dbg *Debugger
}

func (b *luaBridge) Peek(address uint32) (uint8, error) {
	return b.dbg.mem.Peek(address)
}

func (b *luaBridge) Poke(address uint32, value uint8) error {
	return b.dbg.mem.Poke(address, value)
}

func (b *luaBridge) Register(n int) uint32 {
	return b.dbg.con.CPU.Reg(n)
}

func (b *luaBridge) Step(n int) error {
	for i := 0; i < n; i++ {
		if err := b.dbg.con.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (b *luaBridge) Command(input string) error {
	_, err := b.dbg.command(strings.TrimSpace(input))
	return err
}

func (b *luaBridge) Print(s string) {
	b.dbg.printLine(terminal.StyleFeedback, "%s", s)
}
