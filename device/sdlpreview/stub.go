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

//go:build !sdl

package sdlpreview

import (
	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
)

// Available is true if the package was built with the sdl tag.
const Available = false

// Main calls f.
func Main(f func()) {
	f()
}

// Device is never created without the sdl tag.
type Device struct{}

// Open always fails without the sdl tag.
func Open(_ *layout.KeyDB) (*Device, error) {
	return nil, curated.Errorf(Unavailable)
}

// BlockSizes implements the render.Device interface.
func (dev *Device) BlockSizes() []int {
	return nil
}

// Present implements the render.Device interface.
func (dev *Device) Present(_ *render.Target) error {
	return curated.Errorf(Unavailable)
}

// Done implements the same function as the sdl version of the Device.
func (dev *Device) Done() <-chan struct{} {
	return nil
}

// Close implements the io.Closer interface.
func (dev *Device) Close() error {
	return nil
}
