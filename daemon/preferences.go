// This file is part of Keyleds.
//
// Keyleds is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Keyleds is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Keyleds.  If not, see <https://www.gnu.org/licenses/>.

package daemon

import (
	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/paths"
	"github.com/jetsetilly/keyleds/prefs"
	"github.com/jetsetilly/keyleds/render"
)

// name of the preferences file in the resource directory
const prefsFile = "preferences"

// Device kinds for the device.kind preference.
const (
	DeviceTerminal = "terminal"
	DeviceMemory   = "memory"
	DeviceSDL      = "sdl"
)

// Preferences for the daemon.
type Preferences struct {
	dsk *prefs.Disk

	// frame rate used when neither the command line nor the configuration
	// file specifies one
	FPS prefs.Int

	// number of consecutive device errors before the daemon gives up. zero
	// means never give up
	MaxFailures prefs.Int

	// the kind of device to open
	Device prefs.String

	// reload the configuration file when it changes
	Watch prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resource directory.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefsFile)
	if err != nil {
		return nil, err
	}
	return LoadPreferences(pth)
}

// LoadPreferences loads preferences from the named file. The file is created
// with default values if it does not exist.
func LoadPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("render.fps", &p.FPS)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("render.maxfailures", &p.MaxFailures)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("device.kind", &p.Device)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("config.watch", &p.Watch)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.FPS.Set(render.DefaultFPS)
	_ = p.MaxFailures.Set(0)
	_ = p.Device.Set(DeviceTerminal)
	_ = p.Watch.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
