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

package script

import (
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
	lua "github.com/yuin/gopher-lua"
)

// LuaError is the error pattern for errors raised by Lua code.
const LuaError = "lua: %v"

// Debugger is the part of the debugger that Lua code has access to.
type Debugger interface {
	Peek(address uint32) (uint8, error)
	Poke(address uint32, value uint8) error
	Register(n int) uint32
	Step(n int) error
	Command(input string) error
	Print(s string)
}

// Lua is a Lua virtual machine bound to a debugger.
type Lua struct {
	L   *lua.LState
	dbg Debugger
}

// NewLua is the preferred method of initialisation for the Lua type.
func NewLua(dbg Debugger) *Lua {
	l := &Lua{
		L:   lua.NewState(),
		dbg: dbg,
	}

	for name, fn := range map[string]lua.LGFunction{
		"peek":  l.peek,
		"poke":  l.poke,
		"reg":   l.reg,
		"step":  l.step,
		"cmd":   l.cmd,
		"print": l.print,
	} {
		l.L.SetGlobal(name, l.L.NewFunction(fn))
	}

	return l
}

// Close the virtual machine.
func (l *Lua) Close() {
	l.L.Close()
}

// DoString runs Lua code.
func (l *Lua) DoString(source string) error {
	if err := l.L.DoString(source); err != nil {
		return curated.Errorf(LuaError, err)
	}
	return nil
}

// DoFile runs the Lua code in a file.
func (l *Lua) DoFile(filename string) error {
	if err := l.L.DoFile(filename); err != nil {
		return curated.Errorf(LuaError, err)
	}
	return nil
}

func (l *Lua) peek(L *lua.LState) int {
	v, err := l.dbg.Peek(uint32(L.CheckInt64(1)))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (l *Lua) poke(L *lua.LState) int {
	if err := l.dbg.Poke(uint32(L.CheckInt64(1)), uint8(L.CheckInt(2))); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (l *Lua) reg(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 || n > 15 {
		L.ArgError(1, "register out of range")
		return 0
	}
	L.Push(lua.LNumber(l.dbg.Register(n)))
	return 1
}

func (l *Lua) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if err := l.dbg.Step(n); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (l *Lua) cmd(L *lua.LState) int {
	if err := l.dbg.Command(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (l *Lua) print(L *lua.LState) int {
	s := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		s = append(s, L.ToStringMeta(L.Get(i)).String())
	}
	l.dbg.Print(strings.Join(s, "\t"))
	return 0
}
