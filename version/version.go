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

// Package version reports the version of the program. The version number is
// set at link time:
//
//	go build -ldflags "-X github.com/jetsetilly/keyleds/version.number=v1.0.0"
//
// Revision information comes from the build information embedded by the Go
// toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name used when referring to the program.
const ApplicationName = "Keyleds"

// set by the linker
var number string

// Info describes the build.
type Info struct {
	// the version number, or "unreleased" if there is vcs information but no
	// version number, or "local" if there is neither
	Version string

	// vcs revision with a "+dirty" suffix if the working tree was modified
	Revision string

	// true if Version is a release number
	Release bool
}

func (i Info) String() string {
	if i.Release {
		return fmt.Sprintf("%s %s", ApplicationName, i.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, i.Version, i.Revision)
}

// Get returns information about the running binary.
func Get() Info {
	info, _ := debug.ReadBuildInfo()
	return fromBuildInfo(info, number)
}

func fromBuildInfo(info *debug.BuildInfo, number string) Info {
	var vcs, modified bool
	var revision string

	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	i := Info{Revision: "no revision information"}
	if revision != "" {
		i.Revision = revision
		if modified {
			i.Revision += "+dirty"
		}
	}

	switch {
	case number != "":
		i.Version = number
		i.Release = true
	case vcs:
		i.Version = "unreleased"
	default:
		i.Version = "local"
	}

	return i
}
