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

package render

import (
	"fmt"
	"image/color"
)

// Color is the value of one key. The zero value is fully transparent.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Transparent is the colour a renderer writes to signal that it makes no
// contribution to a key.
var Transparent = Color{}

// Opaque returns an opaque colour from the RGB components.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// IsTransparent returns true if the alpha channel is zero.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// WithAlpha returns a copy of the colour with a new alpha value.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// NRGBA converts the colour to the non-premultiplied type of the image/color
// package.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromNRGBA converts a non-premultiplied image/color value.
func FromNRGBA(c color.NRGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
