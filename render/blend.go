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

import "github.com/jetsetilly/keyleds/curated"

// Blend composites src over dst. A transparent source leaves dst unchanged and
// an opaque source replaces it. Otherwise the colour channels are interpolated
// by the source alpha and the alpha channels are combined with the "over"
// rule. Division truncates.
func Blend(dst *Color, src Color) {
	switch src.A {
	case 0:
		return
	case 0xff:
		*dst = src
		return
	}

	a := uint32(src.A)
	ia := 0xff - a

	dst.R = uint8((uint32(src.R)*a + uint32(dst.R)*ia) / 0xff)
	dst.G = uint8((uint32(src.G)*a + uint32(dst.G)*ia) / 0xff)
	dst.B = uint8((uint32(src.B)*a + uint32(dst.B)*ia) / 0xff)
	dst.A = uint8(a + uint32(dst.A)*ia/0xff)
}

// BlendTarget composites every key of src over the same key in dst. The
// targets must have the same shape.
func BlendTarget(dst *Target, src *Target) error {
	if !dst.SameShape(src) {
		return curated.Errorf(ShapeMismatch)
	}

	// padding is always transparent so it is safe to blend the entire slice
	for i := range src.colors {
		Blend(&dst.colors[i], src.colors[i])
	}

	return nil
}
