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

package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.SkipBIOS.Get().(bool), true)
	test.ExpectEquality(t, p.SampleRate.Get().(int), 32768)
	test.ExpectSuccess(t, p.Save())
}

func TestPersistence(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferences(fn)
	test.DemandSuccess(t, err)
	p.SampleRate.Set(16384)
	p.SkipBIOS.Set(false)
	test.ExpectSuccess(t, p.Save())

	q, err := preferences.NewPreferences(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.SampleRate.Get().(int), 16384)
	test.ExpectEquality(t, q.SkipBIOS.Get().(bool), false)
}
