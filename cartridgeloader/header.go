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

package cartridgeloader

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// Sentinal error patterns for header validation.
const (
	HeaderTooShort = "cartridgeloader: data too short for cartridge header"
	HeaderFixed    = "cartridgeloader: header fixed value is %02x (expected 96)"
	HeaderChecksum = "cartridgeloader: header complement check is %02x (expected %02x)"
)

// HeaderSize is the size of the cartridge header at the start of the ROM.
const HeaderSize = 0xc0

// the value of the Fixed field in a valid header
const fixedValue = 0x96

// the range of bytes covered by the complement check
const (
	checkOrigin = 0xa0
	checkMemtop = 0xbc
)

// Header is the cartridge header found in the first 192 bytes of the ROM.
type Header struct {
	// the first instruction executed. normally a branch over the header
	Entry uint32

	Logo       []byte `struc:"[156]byte"`
	Title      string `struc:"[12]byte"`
	GameCode   string `struc:"[4]byte"`
	MakerCode  string `struc:"[2]byte"`
	Fixed      uint8
	UnitCode   uint8
	DeviceType uint8
	Reserved   []byte `struc:"[7]byte"`
	Version    uint8
	Complement uint8
	Reserved2  []byte `struc:"[2]byte"`
}

func (h Header) String() string {
	return fmt.Sprintf("%s [%s] maker %s v%d", h.Title, h.GameCode, h.MakerCode, h.Version)
}

// Header decodes the cartridge header from the loaded data. The header is
// returned even if the validation fails, along with the error.
func (cl Loader) Header() (Header, error) {
	return DecodeHeader(cl.Data)
}

// DecodeHeader decodes and validates a cartridge header.
func DecodeHeader(data []byte) (Header, error) {
	var h Header

	if len(data) < HeaderSize {
		return h, curated.Errorf(HeaderTooShort)
	}

	if err := struc.UnpackWithOrder(bytes.NewReader(data[:HeaderSize]), &h, binary.LittleEndian); err != nil {
		return h, errors.Wrap(err, "cartridgeloader: failed to unpack header")
	}

	h.Title = strings.TrimRight(h.Title, "\x00")
	h.GameCode = strings.TrimRight(h.GameCode, "\x00")
	h.MakerCode = strings.TrimRight(h.MakerCode, "\x00")

	if h.Fixed != fixedValue {
		return h, curated.Errorf(HeaderFixed, h.Fixed)
	}

	if c := Complement(data); c != h.Complement {
		return h, curated.Errorf(HeaderChecksum, h.Complement, c)
	}

	return h, nil
}

// Complement returns the expected value of the header complement check for
// the data. The data must be at least HeaderSize bytes long.
func Complement(data []byte) uint8 {
	var c uint8
	for _, b := range data[checkOrigin:checkMemtop+1] {
		c -= b
	}
	return c - 0x19
}
