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

// Package rainbow is an effect that cycles the hue of the keys. The hue of a
// key depends on its horizontal position so the rainbow moves across the
// keyboard.
//
// Options:
//
//	period      time for one full cycle. default 5s
//	saturation  saturation as a percentage. default 100
//	value       brightness as a percentage. default 100
//	group       keys to animate. default all keys
package rainbow

import (
	"math"
	"time"

	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
	"github.com/lucasb-eyer/go-colorful"
)

// Name of the effect in the registry.
const Name = "rainbow"

// Rainbow implements the render.Renderer interface.
type Rainbow struct {
	period     time.Duration
	time       time.Duration
	saturation float64
	value      float64

	keys []layout.Entry

	// hue offset of every key, in degrees
	offsets []float64
}

// New is the effects.Factory for the rainbow effect.
func New(svc *effects.Service) (render.Renderer, error) {
	period, err := svc.Duration("period", 5*time.Second)
	if err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, svc.OptionError("period", "must be more than zero")
	}

	sat, err := svc.Uint("saturation", 100)
	if err != nil {
		return nil, err
	}
	if sat > 100 {
		return nil, svc.OptionError("saturation", "must be a percentage")
	}

	val, err := svc.Uint("value", 100)
	if err != nil {
		return nil, err
	}
	if val > 100 {
		return nil, svc.OptionError("value", "must be a percentage")
	}

	g, err := svc.KeyGroup("group")
	if err != nil {
		return nil, err
	}

	r := &Rainbow{
		period:     period,
		saturation: float64(sat) / 100,
		value:      float64(val) / 100,
		keys:       svc.Keys(g),
	}

	bounds := svc.KeyDB.Bounds()
	r.offsets = make([]float64, len(r.keys))
	if w := float64(bounds.Width()); w > 0 {
		for i, k := range r.keys {
			x, _ := k.Position.Center()
			r.offsets[i] = (x - float64(bounds.X0)) / w * 360
		}
	}

	return r, nil
}

// Render implements the render.Renderer interface.
func (r *Rainbow) Render(elapsed time.Duration, target *render.Target) {
	r.time = effects.Advance(r.time, elapsed, r.period)
	base := float64(r.time) / float64(r.period) * 360

	for i, k := range r.keys {
		h := math.Mod(base+r.offsets[i], 360)
		cr, cg, cb := colorful.Hsv(h, r.saturation, r.value).Clamped().RGB255()
		*target.Get(k.Address.Block, k.Address.Key) = render.Opaque(cr, cg, cb)
	}
}
