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

// Package test removes common boilerplate from the tests in the emulator
// packages.
//
// The Expect functions report a failure with t.Errorf() and allow the test to
// continue. The Demand functions report with t.Fatalf() and stop the test.
// Both accept optional tags which are prefixed to the failure message, useful
// when the check is inside a loop:
//
//	for i, c := range cases {
//		test.ExpectEquality(t, cpu.Reg(0), c.want, i)
//	}
//
// For the purposes of ExpectSuccess() and ExpectFailure() a nil value is a
// success, as is a nil error and a true boolean.
//
// The Writer type implements io.Writer and is used to capture output for
// comparison against an expected string.
package test
