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

// Package plainterm implements the Terminal interface for the debugger. It's
// as simple as simple can be and offers no special features.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/gopheradvance/debugger/terminal"
	"golang.org/x/term"
)

// PlainTerminal is the most basic terminal interface. It keeps the terminal
// in whatever mode it started, probably cooked mode. As such, it offers only
// rudimentary editing facility and little control over output.
//
// The Input and Output fields can be set before calling Initialise(). If they
// are nil then stdin and stdout are used.
type PlainTerminal struct {
	Input  io.Reader
	Output io.Writer

	reader     *bufio.Reader
	realInput  bool
	realOutput bool
	silenced   bool
}

// Initialise perfoms any setting up required for the terminal.
func (pt *PlainTerminal) Initialise() error {
	if pt.Input == nil {
		pt.Input = os.Stdin
		pt.realInput = term.IsTerminal(int(os.Stdin.Fd()))
	}
	if pt.Output == nil {
		pt.Output = os.Stdout
		pt.realOutput = term.IsTerminal(int(os.Stdout.Fd()))
	}
	pt.reader = bufio.NewReader(pt.Input)
	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (pt *PlainTerminal) CleanUp() {
}

// Silence implements the terminal.Terminal interface.
func (pt *PlainTerminal) Silence(silenced bool) {
	pt.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if pt.silenced && style != terminal.StyleError {
		return
	}

	// we don't need to echo user input for this type of terminal
	if style == terminal.StyleEcho {
		return
	}

	if style == terminal.StyleError {
		s = fmt.Sprintf("* %s", s)
	}

	io.WriteString(pt.Output, s)
	io.WriteString(pt.Output, "\n")
}

// TermRead implements the terminal.Input interface.
func (pt *PlainTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	// insert prompt into output stream
	if pt.realInput && !pt.silenced {
		io.WriteString(pt.Output, prompt.String())
	}

	s, err := pt.reader.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// TermReadCheck implements the terminal.Input interface.
func (pt *PlainTerminal) TermReadCheck() bool {
	return false
}

// IsInteractive implements the terminal.Input interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return pt.realInput && pt.realOutput
}
