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

package govern_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/debugger/govern"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestStrings(t *testing.T) {
	test.ExpectEquality(t, govern.Running.String(), "Running")
	test.ExpectEquality(t, govern.Ending.String(), "Ending")
	test.ExpectEquality(t, govern.ModeDebugger.String(), "Debugger")
	test.ExpectEquality(t, govern.ModeNone.String(), "")
}
