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

// Package fill is the simplest effect. It sets every key, or every key in a
// group, to a single colour. A colour that is not opaque is blended with the
// keys underneath.
//
// Options:
//
//	color   colour to fill with. default black
//	group   keys to fill. default all keys
package fill

import (
	"time"

	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
)

// Name of the effect in the registry.
const Name = "fill"

// Fill implements the render.Renderer interface.
type Fill struct {
	color render.Color
	keys  []layout.Entry
}

// New is the effects.Factory for the fill effect.
func New(svc *effects.Service) (render.Renderer, error) {
	c, err := svc.Color("color", render.Opaque(0, 0, 0))
	if err != nil {
		return nil, err
	}

	g, err := svc.KeyGroup("group")
	if err != nil {
		return nil, err
	}

	return &Fill{
		color: c,
		keys:  svc.Keys(g),
	}, nil
}

// Render implements the render.Renderer interface.
func (f *Fill) Render(_ time.Duration, target *render.Target) {
	for _, k := range f.keys {
		render.Blend(target.Get(k.Address.Block, k.Address.Key), f.color)
	}
}
