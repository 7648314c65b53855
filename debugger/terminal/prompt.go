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

import (
	"fmt"
	"strings"
)

// Prompt specifies the prompt text and the prompt style.
type Prompt struct {
	// the address of the next instruction to execute
	Address uint32

	// the state of the CPU when the prompt was created
	Thumb bool

	// the pipeline is not yet full and the address is not meaningful
	Filling bool

	// whether the terminal input is being recorded to a script
	Recording bool
}

// String returns the prompt with "standard" decoration.
func (p Prompt) String() string {
	s := strings.Builder{}
	s.WriteString("[ ")
	if p.Recording {
		s.WriteString("(rec) ")
	}
	if p.Filling {
		s.WriteString("--------")
	} else {
		s.WriteString(fmt.Sprintf("%08x", p.Address))
	}
	if p.Thumb {
		s.WriteString(" T")
	}
	s.WriteString(" ] >> ")
	return s.String()
}
