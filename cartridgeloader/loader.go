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
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/pkg/errors"
)

// Sentinal error patterns.
const (
	UnexpectedHash = "cartridgeloader: unexpected hash value"
	BadSize        = "cartridgeloader: %s is the wrong size (%d bytes)"
	BadScheme      = "cartridgeloader: unsupported URL scheme (%s)"
)

// the largest cartridge that can be mapped into the address space
const maxROMSize = 0x02000000

// the size of a BIOS image
const biosSize = 0x4000

// Loader is used to specify the cartridge to use when creating the console.
type Loader struct {
	// filename of cartridge to load.
	Filename string

	// expected hash of the loaded cartridge. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: strings.TrimSpace(filename),
	}
}

// ShortName returns a shortened version of the Loader filename.
func (cl Loader) ShortName() string {
	shortCartName := path.Base(cl.Filename)
	shortCartName = strings.TrimSuffix(shortCartName, path.Ext(cl.Filename))
	return shortCartName
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data. Loader filenames with a valid schema will use
// that method to load the data. Currently supported schemes are HTTP and
// local files.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	data, err := fetch(cl.Filename)
	if err != nil {
		return err
	}

	if len(data) == 0 || len(data) > maxROMSize {
		return curated.Errorf(BadSize, cl.ShortName(), len(data))
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf(UnexpectedHash)
	}

	cl.Data = data
	cl.Hash = hash

	return nil
}

// LoadBIOS reads a BIOS image from a local file or URL. The image must be
// exactly 16k.
func LoadBIOS(filename string) ([]byte, error) {
	data, err := fetch(filename)
	if err != nil {
		return nil, err
	}
	if len(data) != biosSize {
		return nil, curated.Errorf(BadSize, "BIOS", len(data))
	}
	return data, nil
}

func fetch(filename string) ([]byte, error) {
	scheme := "file"

	u, err := url.Parse(filename)
	if err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(filename)
		if err != nil {
			return nil, errors.Wrap(err, "cartridgeloader")
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "cartridgeloader")
		}
		return data, nil

	case "file", "":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, errors.Wrap(err, "cartridgeloader")
		}
		return data, nil
	}

	return nil, curated.Errorf(BadScheme, scheme)
}
