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

// Package builtin registers the effects that come with keyleds.
package builtin

import (
	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/effects/breathe"
	"github.com/jetsetilly/keyleds/effects/fill"
	"github.com/jetsetilly/keyleds/effects/rainbow"
	"github.com/jetsetilly/keyleds/effects/soundpulse"
	"github.com/jetsetilly/keyleds/effects/wave"
)

// Register every builtin effect with the registry.
func Register(reg *effects.Registry) error {
	for name, f := range map[string]effects.Factory{
		fill.Name:       fill.New,
		wave.Name:       wave.New,
		breathe.Name:    breathe.New,
		rainbow.Name:    rainbow.New,
		soundpulse.Name: soundpulse.New,
	} {
		if err := reg.Register(name, f); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	if err := Register(effects.Default); err != nil {
		panic(err)
	}
}
