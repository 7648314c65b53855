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

package terminal

// Sentinal errors. Returned by TermRead() if caught whilst waiting for input.
const (
	UserInterrupt = "user interrupt"
	UserAbort     = "user abort"
)

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead returns the next line of input, without the line ending.
	// Returns io.EOF when there is no more input or a curated error with the
	// UserInterrupt or UserAbort pattern
	TermRead(prompt Prompt) (string, error)

	// TermReadCheck returns true if input is waiting. Used to interrupt a
	// running emulation. Implementations that can't tell should return false
	TermReadCheck() bool

	// IsInteractive should return true for implementations that require user
	// interaction
	IsInteractive() bool
}

// Output defines the operations required by an interface that allows output.
type Output interface {
	TermPrintLine(style Style, s string)
}

// Terminal defines the operations required by the debugger's command line
// interface.
type Terminal interface {
	Input
	Output

	// Initialise the terminal. not all terminal implementations will need to
	// do anything
	Initialise() error

	// CleanUp restores the terminal to its original state, if possible
	CleanUp()

	// Silence all output except error messages
	Silence(silenced bool)
}
