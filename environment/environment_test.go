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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestLabelledLogging(t *testing.T) {
	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)

	env.Logf("test", "main %d", 1)
	test.ExpectEquality(t, env.Log.Len(), 1)

	// environments with a label share the log but are not allowed to add to it
	other := *env
	other.Label = "preview"
	other.Logs("test", "preview")
	test.ExpectEquality(t, env.Log.Len(), 1)
}
