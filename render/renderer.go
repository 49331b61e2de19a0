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

import "time"

// Renderer implementations paint their contribution to the lighting of a
// device.
//
// Render() is called once per frame with the time since the previous call.
// Keys that the renderer does not want to change must be left as they are.
// Writing the Transparent colour is the way to say that the renderer has
// nothing to contribute to a key.
//
// Any phase or cycle counter kept by the renderer must be wrapped. The elapsed
// time can be very small or, after a stall, very large.
//
// A renderer that paints in more than one pass should paint into a private
// Target and then use BlendTarget() to composite it onto the target it was
// given.
type Renderer interface {
	Render(elapsed time.Duration, target *Target)
}

// RendererFunc allows an ordinary function to be used as a Renderer.
type RendererFunc func(elapsed time.Duration, target *Target)

// Render implements the Renderer interface.
func (f RendererFunc) Render(elapsed time.Duration, target *Target) {
	f(elapsed, target)
}
