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
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/gopheradvance/curated"
)

// ScribeError is the error pattern for all errors from the Scribe type.
const ScribeError = "scribe: %v"

// Scribe can be used to record debugger input to a script file.
type Scribe struct {
	file       *os.File
	scriptFile string

	// the depth of script playback while recording. input that comes from a
	// script being replayed is not recorded
	playbackDepth int
}

// IsActive returns true if a script is currently being captured.
func (scr *Scribe) IsActive() bool {
	return scr.file != nil
}

// StartSession creates a new script file. An existing file will not be
// overwritten.
func (scr *Scribe) StartSession(scriptFile string) error {
	if scr.IsActive() {
		return curated.Errorf(ScribeError, "already active")
	}

	if _, err := os.Stat(scriptFile); !os.IsNotExist(err) {
		return curated.Errorf(ScribeError, "file already exists")
	}

	f, err := os.Create(scriptFile)
	if err != nil {
		return curated.Errorf(ScribeError, "cannot create new script file")
	}

	scr.file = f
	scr.scriptFile = scriptFile
	fmt.Fprintf(scr.file, "%s recorded script\n", commentLine)

	return nil
}

// EndSession closes the current script file.
func (scr *Scribe) EndSession() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.file = nil
		scr.scriptFile = ""
		scr.playbackDepth = 0
	}()

	if err := scr.file.Close(); err != nil {
		return curated.Errorf(ScribeError, err)
	}

	return nil
}

// StartPlayback indicates that a replayed script has begun.
func (scr *Scribe) StartPlayback() {
	if scr.IsActive() {
		scr.playbackDepth++
	}
}

// EndPlayback indicates that a replayed script has finished.
func (scr *Scribe) EndPlayback() {
	if scr.IsActive() && scr.playbackDepth > 0 {
		scr.playbackDepth--
	}
}

// WriteInput writes user input to the open script file.
func (scr *Scribe) WriteInput(command string) error {
	if !scr.IsActive() || scr.playbackDepth > 0 || command == "" {
		return nil
	}

	line := fmt.Sprintf("%s\n", command)
	n, err := io.WriteString(scr.file, line)
	if err != nil {
		return curated.Errorf(ScribeError, err)
	}
	if n != len(line) {
		return curated.Errorf(ScribeError, "output truncated")
	}

	return nil
}
