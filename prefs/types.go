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

// Package prefs holds typed preference values and the means to persist them
// to disk.
//
// Each preference type (Bool, Int, String) is safe to read from a goroutine
// other than the one that set it. Optional hook functions are called before
// and after a new value is stored. A pre-hook returning an error prevents the
// value from changing.
package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value is the type used to set and get preference values.
type Value any

// Pref is implemented by all preference types.
type Pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

type hooks struct {
	pre  func(value Value) error
	post func(value Value) error
}

// SetHookPre sets the function to call before a new value is stored.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.pre = f
}

// SetHookPost sets the function to call after a new value is stored.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.post = f
}

func (h *hooks) store(v Value, store func()) error {
	if h.pre != nil {
		if err := h.pre(v); err != nil {
			return err
		}
	}
	store()
	if h.post != nil {
		return h.post(v)
	}
	return nil
}

// Bool is a boolean preference.
type Bool struct {
	hooks
	value atomic.Bool
}

func (p *Bool) String() string {
	return strconv.FormatBool(p.value.Load())
}

// Set new value to Bool type. Value may be a bool or a string.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.ToLower(strings.TrimSpace(v)) == "true"
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
	}
	return p.store(nv, func() { p.value.Store(nv) })
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return p.value.Load()
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// Int is an integer preference.
type Int struct {
	hooks
	value atomic.Int64
}

func (p *Int) String() string {
	return strconv.FormatInt(p.value.Load(), 10)
}

// Set new value to Int type. Value may be an int or a string.
func (p *Int) Set(v Value) error {
	var nv int64
	switch v := v.(type) {
	case int:
		nv = int64(v)
	case int64:
		nv = v
	case string:
		var err error
		nv, err = strconv.ParseInt(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %q to prefs.Int", v)
		}
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
	}
	return p.store(int(nv), func() { p.value.Store(nv) })
}

// Get returns the raw pref value as an int.
func (p *Int) Get() Value {
	return int(p.value.Load())
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// String is a string preference.
type String struct {
	hooks
	value atomic.Value // string
}

func (p *String) String() string {
	if v, ok := p.value.Load().(string); ok {
		return v
	}
	return ""
}

// Set new value to String type. Any value type is accepted and formatted as
// a string.
func (p *String) Set(v Value) error {
	nv := fmt.Sprintf("%v", v)
	return p.store(nv, func() { p.value.Store(nv) })
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.String()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}
