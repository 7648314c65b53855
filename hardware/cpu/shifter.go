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

package cpu

import "math/bits"

// carry is the carry out of the barrel shifter. A shift by zero leaves the
// carry flag untouched, which is different to clearing it.
type carry uint8

const (
	carryUnchanged carry = iota
	carryClear
	carrySet
)

func carryFrom(b bool) carry {
	if b {
		return carrySet
	}
	return carryClear
}

// shift type field of a register operand.
const (
	shiftLSL = 0b00
	shiftLSR = 0b01
	shiftASR = 0b10
	shiftROR = 0b11
)

func lsl(v uint32, n uint32) (uint32, carry) {
	switch {
	case n == 0:
		return v, carryUnchanged
	case n < 32:
		return v << n, carryFrom(v&(1<<(32-n)) != 0)
	case n == 32:
		return 0, carryFrom(v&1 == 1)
	}
	return 0, carryClear
}

func lsr(v uint32, n uint32) (uint32, carry) {
	switch {
	case n == 0:
		return v, carryUnchanged
	case n < 32:
		return v >> n, carryFrom(v&(1<<(n-1)) != 0)
	case n == 32:
		return 0, carryFrom(v&0x80000000 != 0)
	}
	return 0, carryClear
}

func asr(v uint32, n uint32) (uint32, carry) {
	switch {
	case n == 0:
		return v, carryUnchanged
	case n < 32:
		return uint32(int32(v) >> n), carryFrom(v&(1<<(n-1)) != 0)
	}
	if v&0x80000000 != 0 {
		return 0xffffffff, carrySet
	}
	return 0, carryClear
}

func ror(v uint32, n uint32) (uint32, carry) {
	if n == 0 {
		return v, carryUnchanged
	}
	n &= 31
	if n == 0 {
		return v, carryFrom(v&0x80000000 != 0)
	}
	return bits.RotateLeft32(v, -int(n)), carryFrom(v&(1<<(n-1)) != 0)
}

// rrx is the 33bit rotate through the carry flag.
func rrx(v uint32, c bool) (uint32, carry) {
	r := v >> 1
	if c {
		r |= 0x80000000
	}
	return r, carryFrom(v&1 == 1)
}

// shiftRegister performs a shift with the amount taken from the bottom byte
// of a register.
func shiftRegister(typ uint32, v uint32, amount uint32) (uint32, carry) {
	amount &= 0xff
	switch typ {
	case shiftLSL:
		return lsl(v, amount)
	case shiftLSR:
		return lsr(v, amount)
	case shiftASR:
		return asr(v, amount)
	}
	return ror(v, amount)
}

// shiftImmediate performs a shift with the amount encoded in the opcode. A zero
// amount means LSR #32, ASR #32 and RRX for the three shift types other than
// LSL.
func shiftImmediate(typ uint32, v uint32, amount uint32, c bool) (uint32, carry) {
	amount &= 0x1f
	switch typ {
	case shiftLSL:
		return lsl(v, amount)
	case shiftLSR:
		if amount == 0 {
			amount = 32
		}
		return lsr(v, amount)
	case shiftASR:
		if amount == 0 {
			amount = 32
		}
		return asr(v, amount)
	}
	if amount == 0 {
		return rrx(v, c)
	}
	return ror(v, amount)
}

// rotateImmediate expands the 12bit immediate field of a data processing
// opcode. The carry is only affected if the rotation is non-zero.
func rotateImmediate(imm uint32) (uint32, carry) {
	rot := (imm >> 8) & 0x0f
	v := imm & 0xff
	if rot == 0 {
		return v, carryUnchanged
	}
	v = bits.RotateLeft32(v, -int(rot*2))
	return v, carryFrom(v&0x80000000 != 0)
}
