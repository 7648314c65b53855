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

package plainterm_test

import (
	"io"
	"strings"
	"testing"

	"github.com/jetsetilly/gopheradvance/debugger/terminal"
	"github.com/jetsetilly/gopheradvance/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestPlainTerminal(t *testing.T) {
	tw := &test.Writer{}
	pt := &plainterm.PlainTerminal{
		Input:  strings.NewReader("step\r\nregs\nquit"),
		Output: tw,
	}
	test.DemandSuccess(t, pt.Initialise())
	test.ExpectFailure(t, pt.IsInteractive())

	for _, expected := range []string{"step", "regs", "quit"} {
		s, err := pt.TermRead(terminal.Prompt{})
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, s, expected)
	}
	_, err := pt.TermRead(terminal.Prompt{})
	test.ExpectEquality(t, err, io.EOF)

	pt.TermPrintLine(terminal.StyleFeedback, "hello")
	pt.TermPrintLine(terminal.StyleEcho, "not shown")
	pt.TermPrintLine(terminal.StyleError, "bad")
	test.ExpectSuccess(t, tw.Compare("hello\n* bad\n"))

	tw.Clear()
	pt.Silence(true)
	pt.TermPrintLine(terminal.StyleFeedback, "quiet")
	pt.TermPrintLine(terminal.StyleError, "loud")
	test.ExpectSuccess(t, tw.Compare("* loud\n"))
}
