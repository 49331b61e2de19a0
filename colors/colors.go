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

// Package colors converts strings to render.Color values. Colours can be
// written in hexadecimal notation or by name:
//
//	#f80        short form, opaque
//	ff8000      long form, opaque. the leading hash is optional
//	#ff800080   long form with alpha
//	orange      any name from the SVG 1.1 colour list
//	transparent the zero colour
package colors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/render"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// BadColor is the sentinel error pattern for a string that is not a colour.
const BadColor = "colors: not a colour (%s)"

// Parse a single colour.
func Parse(s string) (render.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if s == "transparent" {
		return render.Transparent, nil
	}

	if c, ok := colornames.Map[s]; ok {
		return render.Color{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}

	h := strings.TrimPrefix(s, "#")
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return render.Color{}, curated.Errorf(BadColor, s)
		}
	}

	switch len(h) {
	case 3:
		// each digit is repeated. #f80 is the same as #ff8800
		v, _ := strconv.ParseUint(h, 16, 16)
		return render.Color{
			R: uint8((v>>8)&0xf) * 0x11,
			G: uint8((v>>4)&0xf) * 0x11,
			B: uint8(v&0xf) * 0x11,
			A: 0xff,
		}, nil
	case 6:
		v, _ := strconv.ParseUint(h, 16, 32)
		return render.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	case 8:
		v, _ := strconv.ParseUint(h, 16, 32)
		return render.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}

	return render.Color{}, curated.Errorf(BadColor, s)
}

// ParseList parses a list of colours separated by commas or white space.
func ParseList(s string) ([]render.Color, error) {
	f := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	l := make([]render.Color, 0, len(f))
	for _, c := range f {
		v, err := Parse(c)
		if err != nil {
			return nil, err
		}
		l = append(l, v)
	}

	return l, nil
}

// MustParse is like Parse but panics if the string is not a colour. It is
// intended for default values.
func MustParse(s string) render.Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Gradient creates a table of n colours. The table moves in equal steps from
// each colour in the list to the next and from the last colour back to the
// first, so the table can be indexed cyclically. Every channel is
// interpolated linearly.
//
// An empty list produces a table of transparent colours.
func Gradient(list []render.Color, n int) []render.Color {
	table := make([]render.Color, n)
	if len(list) == 0 || n == 0 {
		return table
	}

	for i := range table {
		pos := float64(i) * float64(len(list)) / float64(n)
		from := int(pos)
		frac := pos - float64(from)
		a := list[from%len(list)]
		b := list[(from+1)%len(list)]

		ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
		cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
		r, g, bl := ca.BlendRgb(cb, frac).Clamped().RGB255()

		table[i] = render.Color{
			R: r,
			G: g,
			B: bl,
			A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*frac),
		}
	}

	return table
}

// Describe returns the colour in the same form accepted by Parse().
func Describe(c render.Color) string {
	if c == render.Transparent {
		return "transparent"
	}
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return c.String()
}
