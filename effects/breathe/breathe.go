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

// Package breathe is an effect that fades a colour in and out.
//
// Options:
//
//	color   the colour. default white
//	period  time for one full cycle. default 4s
//	group   keys to animate. default all keys
package breathe

import (
	"time"

	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
)

// Name of the effect in the registry.
const Name = "breathe"

// Breathe implements the render.Renderer interface.
type Breathe struct {
	color  render.Color
	period time.Duration
	time   time.Duration
	keys   []layout.Entry
}

// New is the effects.Factory for the breathe effect.
func New(svc *effects.Service) (render.Renderer, error) {
	c, err := svc.Color("color", render.Opaque(0xff, 0xff, 0xff))
	if err != nil {
		return nil, err
	}

	period, err := svc.Duration("period", 4*time.Second)
	if err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, svc.OptionError("period", "must be more than zero")
	}

	g, err := svc.KeyGroup("group")
	if err != nil {
		return nil, err
	}

	return &Breathe{
		color:  c,
		period: period,
		keys:   svc.Keys(g),
	}, nil
}

// level returns the intensity for the current position in the cycle. the
// intensity rises from zero to one in the first half of the cycle and falls
// back to zero in the second half.
func (b *Breathe) level() float64 {
	t := float64(b.time) / float64(b.period)
	if t < 0.5 {
		return t * 2
	}
	return (1 - t) * 2
}

// Render implements the render.Renderer interface.
func (b *Breathe) Render(elapsed time.Duration, target *render.Target) {
	b.time = effects.Advance(b.time, elapsed, b.period)

	c := b.color.WithAlpha(uint8(float64(b.color.A) * b.level()))
	for _, k := range b.keys {
		render.Blend(target.Get(k.Address.Block, k.Address.Key), c)
	}
}
