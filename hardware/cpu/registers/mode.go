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

package registers

import "fmt"

// Mode is the processor mode held in the bottom five bits of a program status
// register.
type Mode uint8

// List of valid Mode values.
const (
	User       Mode = 0x10
	FIQ        Mode = 0x11
	IRQ        Mode = 0x12
	Supervisor Mode = 0x13
	Abort      Mode = 0x17
	Undefined  Mode = 0x1b
	System     Mode = 0x1f
)

func (m Mode) String() string {
	switch m {
	case User:
		return "USR"
	case FIQ:
		return "FIQ"
	case IRQ:
		return "IRQ"
	case Supervisor:
		return "SVC"
	case Abort:
		return "ABT"
	case Undefined:
		return "UND"
	case System:
		return "SYS"
	}
	return fmt.Sprintf("%#02x?", uint8(m))
}

// Valid returns true if the mode is one of the seven architected modes.
func (m Mode) Valid() bool {
	return m.bank() != bankInvalid
}

// Privileged returns true for every mode other than User.
func (m Mode) Privileged() bool {
	return m != User
}

// bank identifies one of the storage banks in the register file. User and
// System modes share a bank.
type bank int

const (
	bankUser bank = iota
	bankFIQ
	bankIRQ
	bankSupervisor
	bankAbort
	bankUndefined
	numBanks

	bankInvalid bank = -1
)

func (m Mode) bank() bank {
	switch m {
	case User, System:
		return bankUser
	case FIQ:
		return bankFIQ
	case IRQ:
		return bankIRQ
	case Supervisor:
		return bankSupervisor
	case Abort:
		return bankAbort
	case Undefined:
		return bankUndefined
	}
	return bankInvalid
}
