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

package modalflag_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/modalflag"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-test", "1", "2"})
	testFlag := md.AddBool("test", false, "test flag")
	test.ExpectFailure(t, *testFlag)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectSuccess(t, *testFlag)
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"debug", "-script", "init.txt", "game.gba"})
	md.AddSubModes("run", "debug", "info")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "DEBUG")

	md.NewMode()
	script := md.AddString("script", "", "script")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *script, "init.txt")
	test.ExpectEquality(t, md.GetArg(0), "game.gba")
	test.ExpectEquality(t, md.Path(), "DEBUG")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-frames", "10", "game.gba"})
	md.AddSubModes("run", "debug")

	// unrecognised flags select the default mode
	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")

	md.NewMode()
	frames := md.AddInt("frames", 1, "frames")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *frames, 10)
	test.ExpectEquality(t, md.GetArg(0), "game.gba")
}

func TestAddress(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-break", "0x08000100", "-watch", "$3000000"})
	brk := md.AddAddress("break", 0, "breakpoint")
	watch := md.AddAddress("watch", 0, "watch")
	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *brk, 0x08000100)
	test.ExpectEquality(t, *watch, 0x03000000)

	md.NewArgs([]string{"-break", "xyz"})
	md.AddAddress("break", 0, "breakpoint")
	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("No help available\n"))
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("A", "B", "C")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n" +
		"\n" +
		"  available sub-modes: A, B, C\n" +
		"    default: A\n"

	test.ExpectSuccess(t, tw.Compare(expectedHelp))
}
