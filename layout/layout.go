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

package layout

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/jetsetilly/keyleds/curated"
	"gopkg.in/yaml.v3"
)

// LayoutError is the sentinel error pattern for every error in the package.
const LayoutError = "layout: %v"

// Rect is an area of the device. X1 and Y1 are exclusive.
type Rect struct {
	X0, Y0 uint
	X1, Y1 uint
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}

// Empty returns true if the rectangle has no area.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Width of the rectangle.
func (r Rect) Width() uint {
	if r.X1 < r.X0 {
		return 0
	}
	return r.X1 - r.X0
}

// Height of the rectangle.
func (r Rect) Height() uint {
	if r.Y1 < r.Y0 {
		return 0
	}
	return r.Y1 - r.Y0
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return float64(r.X0+r.X1) / 2, float64(r.Y0+r.Y1) / 2
}

// Union returns the smallest rectangle containing both rectangles. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// Key is a single key of the layout.
type Key struct {
	Name     string
	Position Rect
}

// Block is a group of keys that are addressed together by the device.
type Block struct {
	Name string
	Keys []Key
}

// Layout of a device.
type Layout struct {
	Name   string
	Blocks []Block

	// named lists of key names
	Groups map[string][]string
}

// BlockSizes returns the number of keys in each block.
func (l *Layout) BlockSizes() []int {
	s := make([]int, len(l.Blocks))
	for i, b := range l.Blocks {
		s[i] = len(b.Keys)
	}
	return s
}

// the YAML form of a layout.
type yamlKey struct {
	Name string `yaml:"name"`
	X    uint   `yaml:"x"`
	Y    uint   `yaml:"y"`
	W    uint   `yaml:"w"`
	H    uint   `yaml:"h"`
}

type yamlBlock struct {
	Name string    `yaml:"name"`
	Keys []yamlKey `yaml:"keys"`
}

type yamlLayout struct {
	Name   string              `yaml:"name"`
	Blocks []yamlBlock         `yaml:"blocks"`
	Groups map[string][]string `yaml:"groups"`
}

// Parse a layout from YAML data.
func Parse(data []byte) (*Layout, error) {
	var yl yamlLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, curated.Errorf(LayoutError, err)
	}

	if len(yl.Blocks) == 0 {
		return nil, curated.Errorf(LayoutError, "no blocks")
	}

	l := &Layout{
		Name:   yl.Name,
		Groups: yl.Groups,
	}

	for bi, yb := range yl.Blocks {
		b := Block{Name: yb.Name}
		if b.Name == "" {
			b.Name = fmt.Sprintf("block%d", bi)
		}
		for ki, yk := range yb.Keys {
			if yk.Name == "" {
				return nil, curated.Errorf(LayoutError, fmt.Sprintf("key %d of block %s has no name", ki, b.Name))
			}
			b.Keys = append(b.Keys, Key{
				Name: yk.Name,
				Position: Rect{
					X0: yk.X,
					Y0: yk.Y,
					X1: yk.X + yk.W,
					Y1: yk.Y + yk.H,
				},
			})
		}
		l.Blocks = append(l.Blocks, b)
	}

	return l, nil
}

// Load a layout from a YAML file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(LayoutError, err)
	}
	return Parse(data)
}

//go:embed generic.yaml
var genericYAML []byte

var generic struct {
	once   sync.Once
	layout *Layout
}

// Generic returns the built in layout. It is used when no layout file has been
// specified. The returned value must not be modified.
func Generic() *Layout {
	generic.once.Do(func() {
		var err error
		generic.layout, err = Parse(genericYAML)
		if err != nil {
			panic(err)
		}
	})
	return generic.layout
}
