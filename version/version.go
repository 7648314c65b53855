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

// Package version reports the version of the program. The version number is
// set at link time, for example:
//
//	go build -ldflags "-X github.com/jetsetilly/gopheradvance/version.number=v0.1.0"
//
// When the number is not set the version is "unreleased" for builds from a
// version controlled tree and "local" otherwise.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name of the program.
const ApplicationName = "Gopheradvance"

// set by the linker
var number string

var (
	revision string
	version  string
)

// Version returns the version string, the revision and whether the version
// is a release.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns the application name and version on one line.
func String() string {
	return fmt.Sprintf("%s %s (%s)", ApplicationName, version, revision)
}

func init() {
	revision = "no revision information"
	version = "local"

	if info, ok := debug.ReadBuildInfo(); ok {
		var modified bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				version = "unreleased"
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if modified && revision != "no revision information" {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	if number != "" {
		version = number
	}
}
