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

// Package soundpulse is an effect that pulses a colour in time with a sound
// file. The file is decoded once when the effect is created and the loudness
// of the sound controls the alpha of the colour. The sound is not played.
//
// Options:
//
//	file    path to a WAV or MP3 file. required
//	color   the colour. default white
//	group   keys to animate. default all keys
package soundpulse

import (
	"time"

	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
)

// Name of the effect in the registry.
const Name = "soundpulse"

// SoundPulse implements the render.Renderer interface.
type SoundPulse struct {
	color render.Color
	keys  []layout.Entry

	// one amplitude value per window in the range 0 to 1
	envelope []float64

	// position in the sound. always less than length
	pos    time.Duration
	length time.Duration
}

// New is the effects.Factory for the soundpulse effect.
func New(svc *effects.Service) (render.Renderer, error) {
	fn, err := svc.String("file", "")
	if err != nil {
		return nil, err
	}
	if fn == "" {
		return nil, svc.OptionError("file", "a sound file is required")
	}

	c, err := svc.Color("color", render.Opaque(0xff, 0xff, 0xff))
	if err != nil {
		return nil, err
	}

	g, err := svc.KeyGroup("group")
	if err != nil {
		return nil, err
	}

	pcm, err := load(fn)
	if err != nil {
		return nil, svc.OptionError("file", err)
	}

	env := pcm.envelope()
	if len(env) == 0 {
		return nil, svc.OptionError("file", "no sound data")
	}

	return &SoundPulse{
		color:    c,
		keys:     svc.Keys(g),
		envelope: env,
		length:   time.Duration(len(env)) * window,
	}, nil
}

// Render implements the render.Renderer interface.
func (sp *SoundPulse) Render(elapsed time.Duration, target *render.Target) {
	sp.pos = effects.Advance(sp.pos, elapsed, sp.length)
	level := sp.envelope[min(int(sp.pos/window), len(sp.envelope)-1)]

	c := sp.color.WithAlpha(uint8(float64(sp.color.A) * level))
	for _, k := range sp.keys {
		render.Blend(target.Get(k.Address.Block, k.Address.Key), c)
	}
}
