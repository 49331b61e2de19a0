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

// Package layout describes the physical arrangement of the keys on a device.
//
// A Layout is a list of blocks, each containing a list of named keys with a
// position. Layouts are usually loaded from YAML files:
//
//	name: generic
//	blocks:
//	  - name: keys
//	    keys:
//	      - {name: ESC, x: 0, y: 0, w: 18, h: 18}
//	groups:
//	  arrows: [UP, DOWN, LEFT, RIGHT]
//
// The KeyDB type is created from a Layout and is the form used by effects. It
// gives every key a flat index and a render.KeyIndex, and resolves named
// groups of keys.
package layout
