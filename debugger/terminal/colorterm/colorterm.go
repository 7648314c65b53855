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

// Package colorterm implements the Terminal interface for the debugger. It
// offers line editing and command history through readline, coloured output,
// and detects key presses while the emulation is running.
package colorterm

import (
	"io"

	"github.com/chzyer/readline"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/debugger/terminal"
	"github.com/jetsetilly/gopheradvance/prefs"
	"github.com/pkg/term"
)

// ColorTerminal implements the terminal.Terminal interface.
type ColorTerminal struct {
	rl     *readline.Instance
	output io.Writer

	// the controlling terminal. used to check for key presses when readline
	// is not reading
	tty    *term.Term
	cbreak bool

	silenced bool
}

// Initialise perfoms any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	// command history is kept in the configuration directory. an error here
	// just means there is no history
	history, _ := prefs.ConfigFile("history")

	var err error
	ct.rl, err = readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		HistoryFile:     history,
	})
	if err != nil {
		return curated.Errorf("colorterm: %v", err)
	}
	ct.output = ct.rl.Stdout()

	ct.tty, err = term.Open("/dev/tty")
	if err != nil {
		ct.rl.Close()
		return curated.Errorf("colorterm: %v", err)
	}

	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.restore()
	if ct.tty != nil {
		ct.tty.Close()
	}
	if ct.rl != nil {
		ct.rl.Close()
	}
}

// Silence implements the terminal.Terminal interface.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.silenced = silenced
}

// IsInteractive implements the terminal.Input interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	ct.restore()

	ct.rl.SetPrompt(styles[terminal.StyleEcho] + prompt.String() + reset)
	s, err := ct.rl.Readline()
	switch err {
	case nil:
		return s, nil
	case readline.ErrInterrupt:
		return "", curated.Errorf(terminal.UserInterrupt)
	case io.EOF:
		return "", curated.Errorf(terminal.UserAbort)
	}
	return "", curated.Errorf("colorterm: %v", err)
}

// TermReadCheck implements the terminal.Input interface. Any key press is
// consumed.
func (ct *ColorTerminal) TermReadCheck() bool {
	if !ct.cbreak {
		if err := ct.tty.SetCbreak(); err != nil {
			return false
		}
		ct.cbreak = true
	}

	n, err := ct.tty.Available()
	if err != nil || n == 0 {
		return false
	}

	discard := make([]byte, n)
	_, _ = ct.tty.Read(discard)
	return true
}

// return the controlling terminal to the mode it was in before the first
// call to TermReadCheck()
func (ct *ColorTerminal) restore() {
	if ct.cbreak {
		_ = ct.tty.Restore()
		ct.cbreak = false
	}
}
