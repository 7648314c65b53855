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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shibukawa/configdir"
)

// the string that separates keys from values in the preferences file
const separator = " :: "

// the first line of every preferences file
const fileHeader = "*** gopheradvance preferences file. do not edit ***"

// Disk represents preference values as they are stored on disk.
type Disk struct {
	path    string
	entries map[string]Pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for preferences file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]Pref),
	}, nil
}

// Add preference value to the disk. The key must be unique and must not
// contain the separator.
func (dsk *Disk) Add(key string, p Pref) error {
	if strings.Contains(key, strings.TrimSpace(separator)) {
		return fmt.Errorf("prefs: illegal key: %s", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: duplicate key: %s", key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset all preference values to their zero state.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}
	return nil
}

// Save current preference values to disk. Entries in the file for keys that
// have not been added to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	existing, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		existing[k] = p.String()
	}

	keys := make([]string, 0, len(existing))
	for k := range existing {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, fileHeader)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, separator, existing[k])
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}

// Load preference values from disk. A missing file is not an error.
func (dsk *Disk) Load() error {
	existing, err := dsk.read()
	if err != nil {
		return err
	}

	for k, v := range existing {
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}

func (dsk *Disk) read() (map[string]string, error) {
	m := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return m, nil
	}
	if scanner.Text() != fileHeader {
		return nil, fmt.Errorf("prefs: not a valid preferences file (%s)", dsk.path)
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), separator, 2)
		if len(kv) == 2 {
			m[kv[0]] = kv[1]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return m, nil
}

// ConfigFile returns the path to the named file in the user's configuration
// directory, creating the directory if necessary.
func ConfigFile(name string) (string, error) {
	dirs := configdir.New("jetsetilly", "gopheradvance")
	folders := dirs.QueryFolders(configdir.Global)
	if len(folders) == 0 {
		return "", fmt.Errorf("prefs: no configuration directory available")
	}
	if err := folders[0].MkdirAll(); err != nil {
		return "", fmt.Errorf("prefs: %w", err)
	}
	return folders[0].Path + string(os.PathSeparator) + name, nil
}

// DefaultPrefsFile returns the path to the preferences file in the user's
// configuration directory.
func DefaultPrefsFile() (string, error) {
	return ConfigFile("preferences")
}
