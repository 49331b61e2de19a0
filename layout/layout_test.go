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

package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
	"github.com/jetsetilly/keyleds/test"
)

const small = `
name: small
blocks:
  - name: keys
    keys:
      - {name: A, x: 0, y: 0, w: 10, h: 10}
      - {name: B, x: 10, y: 0, w: 10, h: 10}
      - {name: C, x: 20, y: 0, w: 10, h: 10}
  - name: logo
    keys:
      - {name: LOGO, x: 50, y: 30, w: 5, h: 5}
groups:
  ab: [a, B]
`

func TestParse(t *testing.T) {
	l, err := layout.Parse([]byte(small))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Name, "small")
	test.DemandEquality(t, len(l.Blocks), 2)
	test.ExpectEquality(t, l.Blocks[1].Name, "logo")
	test.ExpectEquality(t, l.Blocks[0].Keys[2].Position, layout.Rect{X0: 20, Y0: 0, X1: 30, Y1: 10})
	test.ExpectEquality(t, len(l.BlockSizes()), 2)
	test.ExpectEquality(t, l.BlockSizes()[0], 3)
}

func TestParseErrors(t *testing.T) {
	for _, data := range []string{
		"name: [",
		"name: empty\n",
		"blocks:\n  - keys:\n    - {x: 1}\n",
	} {
		_, err := layout.Parse([]byte(data))
		test.ExpectSuccess(t, curated.Is(err, layout.LayoutError), data)
	}
}

func TestKeyDB(t *testing.T) {
	l, err := layout.Parse([]byte(small))
	test.DemandSuccess(t, err)

	db, err := layout.NewKeyDB(l)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, db.Name(), "small")
	test.ExpectEquality(t, db.Len(), 4)
	test.ExpectEquality(t, db.Bounds(), layout.Rect{X0: 0, Y0: 0, X1: 55, Y1: 35})

	e, ok := db.Find("logo")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, e.Index, 3)
	test.ExpectEquality(t, e.Address, render.KeyIndex{Block: 1, Key: 0})

	_, ok = db.Find("Z")
	test.ExpectFailure(t, ok)

	g, ok := db.Group("ab")
	test.DemandSuccess(t, ok)
	test.DemandEquality(t, len(g.Keys), 2)
	test.ExpectEquality(t, g.Keys[0].Name, "A")
	test.ExpectEquality(t, g.Keys[1].Address, render.KeyIndex{Block: 0, Key: 1})

	_, err = db.NewGroup("bad", []string{"A", "Q"})
	test.ExpectSuccess(t, curated.Is(err, layout.LayoutError))

	// every address is valid for a target created from the block sizes
	tgt, err := render.NewTarget(db.BlockSizes())
	test.DemandSuccess(t, err)
	for _, k := range db.Keys() {
		_, err := tgt.At(k.Address)
		test.ExpectSuccess(t, err, k)
	}
}

func TestKeyDBErrors(t *testing.T) {
	l := &layout.Layout{
		Blocks: []layout.Block{
			{Name: "a", Keys: []layout.Key{{Name: "X"}, {Name: "x"}}},
		},
	}
	_, err := layout.NewKeyDB(l)
	test.ExpectSuccess(t, curated.Is(err, layout.LayoutError))

	l = &layout.Layout{
		Blocks: []layout.Block{
			{Name: "a", Keys: []layout.Key{{Name: "X"}}},
		},
		Groups: map[string][]string{"g": {"Y"}},
	}
	_, err = layout.NewKeyDB(l)
	test.ExpectSuccess(t, curated.Is(err, layout.LayoutError))
}

func TestGeneric(t *testing.T) {
	l := layout.Generic()
	test.ExpectEquality(t, l.Name, "generic")

	db, err := layout.NewKeyDB(l)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.Len(), 84)
	test.ExpectEquality(t, db.Bounds(), layout.Rect{X0: 0, Y0: 0, X1: 330, Y1: 114})
	test.ExpectEquality(t, len(db.GroupNames()), 5)

	g, ok := db.Group("wasd")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, len(g.Keys), 4)
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "layout.yaml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(small), 0o644))

	l, err := layout.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Name, "small")

	_, err = layout.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	test.ExpectSuccess(t, curated.Is(err, layout.LayoutError))
}

func TestRect(t *testing.T) {
	r := layout.Rect{X0: 10, Y0: 20, X1: 30, Y1: 60}
	test.ExpectEquality(t, r.Width(), uint(20))
	test.ExpectEquality(t, r.Height(), uint(40))
	x, y := r.Center()
	test.ExpectEquality(t, x, 20.0)
	test.ExpectEquality(t, y, 40.0)
	test.ExpectEquality(t, r.String(), "(10,20)-(30,60)")

	var empty layout.Rect
	test.ExpectSuccess(t, empty.Empty())
	test.ExpectEquality(t, empty.Union(r), r)
	test.ExpectEquality(t, r.Union(empty), r)
}
