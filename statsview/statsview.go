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

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is the address the server listens on if Launch() is given
// an empty address.
const DefaultAddress = "localhost:12680"

const path = "/debug/statsview"

// URL returns the location of the statistics page for the address.
func URL(address string) string {
	if address == "" {
		address = DefaultAddress
	}
	return fmt.Sprintf("http://%s%s", address, path)
}

// Launch a new goroutine running the statsview server. The location of the
// statistics page is written to output.
func Launch(output io.Writer, address string) {
	if address == "" {
		address = DefaultAddress
	}

	go func() {
		viewer.SetConfiguration(viewer.WithAddr(address))
		mgr := statsview.New()
		mgr.Start()
	}()

	output.Write([]byte(fmt.Sprintf("stats server available at %s\n", URL(address))))
}
