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

// Package environment is the explicit context that is passed to every part of
// the emulated hardware. There is no global state in the hardware packages;
// anything shared (the log, the preferences) is reached through an
// Environment.
package environment

import (
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/logger"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main emulation.
const MainEmulation = Label("")

// the maximum number of entries kept by a new Logger
const maxLogEntries = 256

// Environment is used to provide context for an emulation.
type Environment struct {
	Label Label

	// the emulation preferences
	Prefs *preferences.Preferences

	// the log for this emulation
	Log *logger.Logger
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. Both arguments may be nil, in which case default
// preferences (not backed by disk) and a new log are created.
func NewEnvironment(prefs *preferences.Preferences, log *logger.Logger) (*Environment, error) {
	env := &Environment{
		Prefs: prefs,
		Log:   log,
	}

	if env.Prefs == nil {
		var err error
		env.Prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	if env.Log == nil {
		env.Log = logger.NewLogger(maxLogEntries)
	}

	return env, nil
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation is allowed to log.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}

// IsMainEmulation returns true if the environment is for the main emulation.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// Logf is a convenience function. It is the same as env.Log.Logf(env, ...).
func (env *Environment) Logf(tag string, pattern string, args ...any) {
	env.Log.Logf(env, tag, pattern, args...)
}

// Logs is a convenience function. It is the same as env.Log.Log(env, ...).
func (env *Environment) Logs(tag string, detail any) {
	env.Log.Log(env, tag, detail)
}
