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

package prefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopheradvance/prefs"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestTypes(t *testing.T) {
	var b prefs.Bool
	test.ExpectSuccess(t, b.Set("TRUE"))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectFailure(t, b.Set(10))

	var i prefs.Int
	test.ExpectSuccess(t, i.Set("0x8000"))
	test.ExpectEquality(t, i.Get().(int), 0x8000)
	test.ExpectFailure(t, i.Set("foo"))
	test.ExpectEquality(t, i.String(), "32768")

	var s prefs.String
	test.ExpectSuccess(t, s.Set(100))
	test.ExpectEquality(t, s.String(), "100")
}

func TestHooks(t *testing.T) {
	var i prefs.Int
	var seen int
	i.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return errors.New("negative")
		}
		return nil
	})
	i.SetHookPost(func(v prefs.Value) error {
		seen = v.(int)
		return nil
	})

	test.ExpectSuccess(t, i.Set(10))
	test.ExpectEquality(t, seen, 10)
	test.ExpectFailure(t, i.Set(-1))
	test.ExpectEquality(t, i.Get().(int), 10)
}

func TestDisk(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var b prefs.Bool
	var i prefs.Int
	test.ExpectSuccess(t, dsk.Add("test.bool", &b))
	test.ExpectSuccess(t, dsk.Add("test.int", &i))
	test.ExpectFailure(t, dsk.Add("test.int", &i))

	// loading a file that doesn't exist is fine
	test.ExpectSuccess(t, dsk.Load())

	b.Set(true)
	i.Set(1024)
	test.ExpectSuccess(t, dsk.Save())

	b.Reset()
	i.Reset()
	test.ExpectEquality(t, b.Get().(bool), false)

	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectEquality(t, i.Get().(int), 1024)

	// a second disk with a different set of keys must not remove entries
	// belonging to the first
	dsk2, _ := prefs.NewDisk(fn)
	var s prefs.String
	dsk2.Add("other.string", &s)
	s.Set("hello")
	test.ExpectSuccess(t, dsk2.Save())

	i.Reset()
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, i.Get().(int), 1024)
}

func TestBadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")
	os.WriteFile(fn, []byte("not a prefs file\n"), 0o644)
	dsk, _ := prefs.NewDisk(fn)
	test.ExpectFailure(t, dsk.Load())
}
