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

package script

import (
	"os"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/debugger/terminal"
)

// Sentinal error patterns.
const (
	ScriptEnd         = "script: end of %s"
	ScriptUnavailable = "script: %v"
)

const commentLine = "#"

// lines that are empty or start with the comment prefix are not input
func isInputLine(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && !strings.HasPrefix(line, commentLine)
}

// Rescribe represents a previously scribed script. The type implements the
// terminal.Input interface.
type Rescribe struct {
	scriptFile string
	lines      []string
	lineCt     int
}

// RescribeScript is the preferred method of initialisation for the Rescribe
// type.
func RescribeScript(scriptFile string) (*Rescribe, error) {
	buffer, err := os.ReadFile(scriptFile)
	if err != nil {
		return nil, curated.Errorf(ScriptUnavailable, err)
	}

	scr := &Rescribe{scriptFile: scriptFile}
	for _, l := range strings.Split(string(buffer), "\n") {
		if isInputLine(l) {
			scr.lines = append(scr.lines, strings.TrimSpace(l))
		}
	}

	return scr, nil
}

// IsInteractive implements the terminal.Input interface.
func (scr *Rescribe) IsInteractive() bool {
	return false
}

// TermReadCheck implements the terminal.Input interface.
func (scr *Rescribe) TermReadCheck() bool {
	return false
}

// TermRead implements the terminal.Input interface.
func (scr *Rescribe) TermRead(_ terminal.Prompt) (string, error) {
	if scr.lineCt >= len(scr.lines) {
		return "", curated.Errorf(ScriptEnd, scr.scriptFile)
	}
	l := scr.lines[scr.lineCt]
	scr.lineCt++
	return l, nil
}
