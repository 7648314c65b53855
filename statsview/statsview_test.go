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

package statsview_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/statsview"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestURL(t *testing.T) {
	test.ExpectEquality(t, statsview.URL(""), "http://localhost:12680/debug/statsview")
	test.ExpectEquality(t, statsview.URL("127.0.0.1:9000"), "http://127.0.0.1:9000/debug/statsview")
}
