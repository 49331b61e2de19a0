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
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/render"
)

// Entry is a key in a KeyDB.
type Entry struct {
	// position in the KeyDB
	Index int

	Name     string
	Address  render.KeyIndex
	Position Rect
}

func (e Entry) String() string {
	return fmt.Sprintf("%s [%v] %v", e.Name, e.Address, e.Position)
}

// Group is a named list of keys.
type Group struct {
	Name string
	Keys []Entry
}

// KeyDB is the list of every key in a layout, in block order then key order.
type KeyDB struct {
	name       string
	keys       []Entry
	byName     map[string]int
	blockSizes []int
	bounds     Rect
	groups     map[string]Group
}

// names are compared without regard to case.
func normalise(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewKeyDB creates a KeyDB from a layout. The groups of the layout are
// resolved. Duplicate key names and unknown key names in a group are errors.
func NewKeyDB(l *Layout) (*KeyDB, error) {
	db := &KeyDB{
		name:       l.Name,
		byName:     make(map[string]int),
		blockSizes: l.BlockSizes(),
		groups:     make(map[string]Group),
	}

	if _, err := render.NewTarget(db.blockSizes); err != nil {
		return nil, curated.Errorf(LayoutError, err)
	}

	for bi, b := range l.Blocks {
		for ki, k := range b.Keys {
			n := normalise(k.Name)
			if _, ok := db.byName[n]; ok {
				return nil, curated.Errorf(LayoutError, fmt.Sprintf("duplicate key name (%s)", k.Name))
			}
			e := Entry{
				Index:    len(db.keys),
				Name:     k.Name,
				Address:  render.KeyIndex{Block: bi, Key: ki},
				Position: k.Position,
			}
			db.byName[n] = e.Index
			db.keys = append(db.keys, e)
			db.bounds = db.bounds.Union(k.Position)
		}
	}

	for name, keys := range l.Groups {
		g, err := db.NewGroup(name, keys)
		if err != nil {
			return nil, err
		}
		db.groups[name] = g
	}

	return db, nil
}

// Name of the layout the KeyDB was created from.
func (db *KeyDB) Name() string {
	return db.name
}

// Len returns the number of keys.
func (db *KeyDB) Len() int {
	return len(db.keys)
}

// Key returns the key at index i.
func (db *KeyDB) Key(i int) Entry {
	return db.keys[i]
}

// Keys returns every key. The slice must not be modified.
func (db *KeyDB) Keys() []Entry {
	return db.keys
}

// Find a key by name.
func (db *KeyDB) Find(name string) (Entry, bool) {
	if i, ok := db.byName[normalise(name)]; ok {
		return db.keys[i], true
	}
	return Entry{}, false
}

// Bounds returns the smallest rectangle that contains every key.
func (db *KeyDB) Bounds() Rect {
	return db.bounds
}

// BlockSizes returns the number of keys in every block. This is the shape of
// the render targets for the device.
func (db *KeyDB) BlockSizes() []int {
	return append([]int{}, db.blockSizes...)
}

// NewGroup resolves a list of key names into a Group.
func (db *KeyDB) NewGroup(name string, keys []string) (Group, error) {
	g := Group{Name: name}
	for _, k := range keys {
		e, ok := db.Find(k)
		if !ok {
			return Group{}, curated.Errorf(LayoutError, fmt.Sprintf("unknown key (%s) in group %s", k, name))
		}
		g.Keys = append(g.Keys, e)
	}
	return g, nil
}

// Group returns the named group.
func (db *KeyDB) Group(name string) (Group, bool) {
	g, ok := db.groups[name]
	return g, ok
}

// GroupNames returns the name of every group in alphabetical order.
func (db *KeyDB) GroupNames() []string {
	n := make([]string, 0, len(db.groups))
	for k := range db.groups {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
