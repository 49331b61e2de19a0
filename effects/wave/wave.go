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

// Package wave is an effect that moves a gradient of colours across the keys.
//
// Options:
//
//	period     time for one full cycle. default 10s, minimum 1s
//	length     wave length in thousandths of the layout size. default 1000
//	direction  direction of travel in degrees. 0 is upwards. default 0
//	colors     the colours of the gradient. default none
//	group      keys to animate. default all keys
package wave

import (
	"math"
	"time"

	"github.com/jetsetilly/keyleds/colors"
	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
)

// Name of the effect in the registry.
const Name = "wave"

// number of entries in the colour table. phases and the cycle position are
// measured in the same unit
const accuracy = 1024

// MinPeriod is the shortest allowed period.
const MinPeriod = time.Second

// Wave implements the render.Renderer interface.
type Wave struct {
	period time.Duration

	// position in the current cycle. always less than period
	time time.Duration

	keys   []layout.Entry
	phases []int
	table  []render.Color

	// the effect is rendered into a private target and then blended
	buffer *render.Target
}

// New is the effects.Factory for the wave effect.
func New(svc *effects.Service) (render.Renderer, error) {
	bounds := svc.KeyDB.Bounds()
	if bounds.Empty() {
		return nil, svc.InvalidLayout("layout has no area")
	}

	period, err := svc.Duration("period", 10*time.Second)
	if err != nil {
		return nil, err
	}
	if period < MinPeriod {
		return nil, svc.OptionError("period", "minimum value is 1s")
	}

	length, err := svc.Uint("length", 1000)
	if err != nil {
		return nil, err
	}

	direction, err := svc.Uint("direction", 0)
	if err != nil {
		return nil, err
	}

	list, err := svc.Colors("colors", nil)
	if err != nil {
		return nil, err
	}

	g, err := svc.KeyGroup("group")
	if err != nil {
		return nil, err
	}

	w := &Wave{
		period: period,
		keys:   svc.Keys(g),
		table:  colors.Gradient(list, accuracy),
		buffer: svc.NewTarget(),
	}
	w.phases = phases(w.keys, bounds, length, float64(direction))

	return w, nil
}

// phases returns the phase shift of every key in the range 0 to accuracy.
func phases(keys []layout.Entry, bounds layout.Rect, length uint, direction float64) []int {
	var freqX, freqY float64
	if length > 0 {
		rad := direction * math.Pi / 180
		freqX = 1000 / float64(length) * math.Sin(rad)
		freqY = 1000 / float64(length) * math.Cos(rad)
	}

	w := float64(bounds.Width())
	h := float64(bounds.Height())

	p := make([]int, len(keys))
	for i, k := range keys {
		x, y := k.Position.Center()

		// the y axis is reversed because layouts go from top to bottom
		xpos := (x - float64(bounds.X0)) / w
		ypos := 1 - (y-float64(bounds.Y0))/h

		phase := math.Mod(freqX*xpos+freqY*ypos, 1)
		if phase < 0 {
			phase += 1
		}
		p[i] = int(phase*accuracy) % accuracy
	}

	return p
}

// Render implements the render.Renderer interface.
func (w *Wave) Render(elapsed time.Duration, target *render.Target) {
	w.time = effects.Advance(w.time, elapsed, w.period)
	t := effects.Fraction(w.time, w.period, accuracy)

	for i, k := range w.keys {
		tphi := (t - w.phases[i] + accuracy) % accuracy
		*w.buffer.Get(k.Address.Block, k.Address.Key) = w.table[tphi]
	}

	_ = render.BlendTarget(target, w.buffer)
}
