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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given to NewArgs() and then Parse() is called with no
// arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, with a different set of flags. Sub-modes for
// the next Parse() are added with AddSubModes(). The first sub-mode is the
// default:
//
//	md.AddSubModes("run", "debug", "info")
//
// Sub-mode comparisons are case insensitive. After Parse() the selected mode
// is returned by Mode() and the full chain of modes by Path(). Calling
// NewMode() prepares the Modes type for the flags of the selected mode, after
// which Parse() is called again.
//
// Flags that are addresses in the emulated console's address space can be
// added with AddAddress(). These are parsed as hexadecimal, with or without a
// leading 0x or $.
package modalflag
