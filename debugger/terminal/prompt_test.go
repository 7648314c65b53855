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

package terminal_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/debugger/terminal"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestPrompt(t *testing.T) {
	p := terminal.Prompt{Address: 0x08000000}
	test.ExpectEquality(t, p.String(), "[ 08000000 ] >> ")

	p.Thumb = true
	p.Recording = true
	test.ExpectEquality(t, p.String(), "[ (rec) 08000000 T ] >> ")

	p = terminal.Prompt{Filling: true}
	test.ExpectEquality(t, p.String(), "[ -------- ] >> ")
}
