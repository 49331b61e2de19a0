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

package render_test

import (
	"math/rand"
	"testing"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/render"
	"github.com/jetsetilly/keyleds/test"
)

func randomColor(rnd *rand.Rand) render.Color {
	return render.Color{
		R: uint8(rnd.Intn(256)),
		G: uint8(rnd.Intn(256)),
		B: uint8(rnd.Intn(256)),
		A: uint8(rnd.Intn(256)),
	}
}

func TestBlendTransparent(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		d := randomColor(rnd)
		src := randomColor(rnd)
		src.A = 0

		r := d
		render.Blend(&r, src)
		test.ExpectEquality(t, r, d)
	}
}

func TestBlendOpaque(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		d := randomColor(rnd)
		src := randomColor(rnd)
		src.A = 0xff

		render.Blend(&d, src)
		test.ExpectEquality(t, d, src)
	}
}

func TestBlendPartial(t *testing.T) {
	d := render.Opaque(0, 0, 0)
	render.Blend(&d, render.Color{R: 0xff, A: 0x80})
	test.ExpectEquality(t, d, render.Color{R: 0x80, A: 0xff})

	// blending onto a transparent destination
	d = render.Transparent
	render.Blend(&d, render.Color{R: 100, G: 200, B: 50, A: 51})
	test.ExpectEquality(t, d, render.Color{R: 20, G: 40, B: 10, A: 51})
}

func TestBlendNotCommutative(t *testing.T) {
	a := render.Color{R: 0xff, A: 0x80}
	b := render.Color{B: 0xff, A: 0x80}

	ab := b
	render.Blend(&ab, a)
	test.ExpectEquality(t, ab, render.Color{R: 128, B: 127, A: 191})

	ba := a
	render.Blend(&ba, b)
	test.ExpectEquality(t, ba, render.Color{R: 127, B: 128, A: 191})

	test.ExpectInequality(t, ab, ba)
}

func TestBlendTarget(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))

	dst, err := render.NewTarget([]int{3, 9})
	test.DemandSuccess(t, err)
	layer, err := render.NewTarget(dst.Shape())
	test.DemandSuccess(t, err)
	expected, err := render.NewTarget(dst.Shape())
	test.DemandSuccess(t, err)

	dst.ForEach(func(_ render.KeyIndex, c *render.Color) {
		*c = randomColor(rnd)
	})
	test.DemandSuccess(t, expected.CopyFrom(dst))

	layer.ForEach(func(k render.KeyIndex, c *render.Color) {
		*c = randomColor(rnd)
		render.Blend(expected.Get(k.Block, k.Key), *c)
	})

	test.ExpectSuccess(t, render.BlendTarget(dst, layer))
	test.ExpectSuccess(t, dst.Equal(expected))

	other, err := render.NewTarget([]int{3})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(render.BlendTarget(dst, other), render.ShapeMismatch))
}

// blending A over B over C one step at a time gives the same result as
// layering A and B through private targets in a single pass
func TestBlendSequential(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))

	for i := 0; i < 200; i++ {
		a := randomColor(rnd)
		b := randomColor(rnd)
		c := randomColor(rnd)

		stepwise := c
		render.Blend(&stepwise, b)
		render.Blend(&stepwise, a)

		tgt, err := render.NewTarget([]int{1})
		test.DemandSuccess(t, err)
		*tgt.Get(0, 0) = c

		for _, layer := range []render.Color{b, a} {
			l, err := render.NewTarget(tgt.Shape())
			test.DemandSuccess(t, err)
			*l.Get(0, 0) = layer
			test.DemandSuccess(t, render.BlendTarget(tgt, l))
		}

		test.ExpectEquality(t, *tgt.Get(0, 0), stepwise)
	}
}
