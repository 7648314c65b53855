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

package colorterm

import (
	"io"

	"github.com/jetsetilly/gopheradvance/debugger/terminal"
	"github.com/mgutz/ansi"
)

var reset = ansi.Reset

// the pen used for each terminal style
var styles = map[terminal.Style]string{
	terminal.StyleEcho:      ansi.ColorCode("white+b"),
	terminal.StyleHelp:      ansi.ColorCode("white+h"),
	terminal.StyleError:     ansi.ColorCode("red+b"),
	terminal.StyleFeedback:  ansi.ColorCode("white"),
	terminal.StyleCPUStep:   ansi.ColorCode("yellow"),
	terminal.StyleRegisters: ansi.ColorCode("cyan"),
	terminal.StyleLog:       ansi.ColorCode("magenta"),
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// readline has already echoed the input
	if style == terminal.StyleEcho {
		return
	}

	if style == terminal.StyleError {
		s = "* " + s
	}

	io.WriteString(ct.output, styles[style]+s+reset+"\n")
}
