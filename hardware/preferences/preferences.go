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

// Package preferences collates the preference values that affect the
// emulated hardware.
package preferences

import (
	"github.com/jetsetilly/gopheradvance/hardware/clocks"
	"github.com/jetsetilly/gopheradvance/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware packages.
type Preferences struct {
	dsk *prefs.Disk

	// start execution from the cartridge entry point, with registers set as
	// the BIOS would leave them, rather than from the reset vector
	SkipBIOS prefs.Bool

	// log accesses to addresses that are not mapped to any memory or I/O
	// register
	LogUnmapped prefs.Bool

	// the rate at which the AudioSample event is scheduled
	SampleRate prefs.Int

	// echo log entries to stderr as they happen
	LogEcho prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty then the preferences are not backed by
// a file on disk and will only ever hold default or explicitly set values.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if path == "" {
		return p, nil
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	for k, v := range map[string]prefs.Pref{
		"hardware.skipbios":    &p.SkipBIOS,
		"hardware.logunmapped": &p.LogUnmapped,
		"hardware.samplerate":  &p.SampleRate,
		"hardware.logecho":     &p.LogEcho,
	} {
		if err := p.dsk.Add(k, v); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.SkipBIOS.Set(true)
	p.LogUnmapped.Set(false)
	p.SampleRate.Set(clocks.DirectSound)
	p.LogEcho.Set(false)
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
