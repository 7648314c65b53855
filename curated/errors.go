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

// Package curated wraps the plain Go error type so that errors can be
// identified by the pattern that created them rather than by their final
// message. Emulation code that needs to report a condition which callers may
// want to test for (an invalid opcode, a halted CPU with nothing to wake it)
// creates the error with Errorf() and the caller tests it with Is() or Has().
//
//	const InvalidOpcode = "cpu: invalid opcode %08x at %08x"
//
//	err := curated.Errorf(InvalidOpcode, opcode, pc)
//	if curated.Is(err, InvalidOpcode) {
//		...
//	}
//
// Has() searches the chain of curated errors. A chain is made by passing a
// curated error as one of the values to another Errorf() call.
//
// The Error() string is normalised so that adjacent duplicate parts of the
// chain (parts being separated by ": ") are removed. "cpu: cpu: halted"
// becomes "cpu: halted".
package curated

import (
	"fmt"
	"strings"
)

type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error. Formatting is deferred until Error() is
// called.
func Errorf(pattern string, values ...any) error {
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error implements the error interface.
func (er curated) Error() string {
	s := fmt.Sprintf(er.pattern, er.values...)

	p := strings.Split(s, ": ")
	n := make([]string, 0, len(p))
	for i := range p {
		if i > 0 && p[i] == p[i-1] {
			continue
		}
		n = append(n, p[i])
	}

	return strings.Join(n, ": ")
}

// Unwrap returns the first error in the values list, if there is one. This
// allows the standard errors.Is() and errors.As() functions to see through a
// curated error.
func (er curated) Unwrap() error {
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			return e
		}
	}
	return nil
}

// IsAny returns true if error was created by Errorf().
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is checks if error was created with the specified pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}
	return false
}

// Has checks if the pattern appears anywhere in the chain of curated errors.
func Has(err error, pattern string) bool {
	if !IsAny(err) {
		return false
	}

	if Is(err, pattern) {
		return true
	}

	for _, v := range err.(curated).values {
		if e, ok := v.(error); ok && Has(e, pattern) {
			return true
		}
	}

	return false
}
