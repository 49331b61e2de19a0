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

package render

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/keyleds/curated"
)

// Sentinel error patterns.
const (
	InvalidBlockSize  = "render: invalid size (%d) for block %d"
	AddressOutOfRange = "render: key address out of range (%v)"
	ShapeMismatch     = "render: target shapes do not match"
)

// blocks start on a 32 byte boundary. a Color is four bytes.
const alignColors = 32 / 4

// MaxBlockSize is the largest number of keys allowed in a single block.
const MaxBlockSize = 0xffff

// KeyIndex addresses one key in a Target.
type KeyIndex struct {
	Block int
	Key   int
}

func (k KeyIndex) String() string {
	return fmt.Sprintf("%d:%d", k.Block, k.Key)
}

// the location of a block in the colors slice.
type span struct {
	offset int
	length int
}

// Target is the colour of every key on a device.
//
// The zero value is a valid Target with no blocks.
type Target struct {
	// every block, including the padding between blocks
	colors []Color

	// the block table never changes after NewTarget()
	blocks []span

	// number of addressable keys
	size int
}

// NewTarget creates a target for the specified block sizes. Every key is set
// to the transparent colour. An empty list of block sizes is allowed.
func NewTarget(blockSizes []int) (*Target, error) {
	t := &Target{
		blocks: make([]span, 0, len(blockSizes)),
	}

	offset := 0
	for i, sz := range blockSizes {
		if sz < 0 || sz > MaxBlockSize {
			return nil, curated.Errorf(InvalidBlockSize, sz, i)
		}
		t.blocks = append(t.blocks, span{offset: offset, length: sz})
		t.size += sz

		// round up to the next alignment boundary
		offset += (sz + alignColors - 1) / alignColors * alignColors
	}

	t.colors = make([]Color, offset)

	return t, nil
}

// Get returns the colour of a key. Indices must be inside the shape of the
// target. Use At() for indices that come from outside the program.
func (t *Target) Get(block, key int) *Color {
	return &t.colors[t.blocks[block].offset+key]
}

// At is the checked equivalent of Get().
func (t *Target) At(k KeyIndex) (*Color, error) {
	if k.Block < 0 || k.Block >= len(t.blocks) || k.Key < 0 || k.Key >= t.blocks[k.Block].length {
		return nil, curated.Errorf(AddressOutOfRange, k)
	}
	return t.Get(k.Block, k.Key), nil
}

// Len returns the number of addressable keys.
func (t *Target) Len() int {
	return t.size
}

// NumBlocks returns the number of blocks.
func (t *Target) NumBlocks() int {
	return len(t.blocks)
}

// BlockLen returns the number of keys in a block.
func (t *Target) BlockLen(block int) int {
	return t.blocks[block].length
}

// Block returns the keys of a block. The slice shares memory with the target
// and can not be extended into the padding.
func (t *Target) Block(block int) []Color {
	b := t.blocks[block]
	return t.colors[b.offset : b.offset+b.length : b.offset+b.length]
}

// Shape returns the size of every block. The result can be used to create a
// new Target with the same shape.
func (t *Target) Shape() []int {
	s := make([]int, len(t.blocks))
	for i, b := range t.blocks {
		s[i] = b.length
	}
	return s
}

// SameShape returns true if both targets have the same block sizes.
func (t *Target) SameShape(o *Target) bool {
	if len(t.blocks) != len(o.blocks) {
		return false
	}
	for i := range t.blocks {
		if t.blocks[i] != o.blocks[i] {
			return false
		}
	}
	return true
}

// ForEach calls f for every addressable key, in block order and then key
// order. The padding between blocks is skipped.
func (t *Target) ForEach(f func(k KeyIndex, c *Color)) {
	for bi, b := range t.blocks {
		for ki := 0; ki < b.length; ki++ {
			f(KeyIndex{Block: bi, Key: ki}, &t.colors[b.offset+ki])
		}
	}
}

// Fill sets every key to the colour.
func (t *Target) Fill(c Color) {
	for _, b := range t.blocks {
		blk := t.colors[b.offset : b.offset+b.length]
		for i := range blk {
			blk[i] = c
		}
	}
}

// Equal returns true if both targets have the same shape and every key has
// the same colour.
func (t *Target) Equal(o *Target) bool {
	if !t.SameShape(o) {
		return false
	}
	for _, b := range t.blocks {
		for i := b.offset; i < b.offset+b.length; i++ {
			if t.colors[i] != o.colors[i] {
				return false
			}
		}
	}
	return true
}

// CopyFrom copies every key from another target of the same shape.
func (t *Target) CopyFrom(o *Target) error {
	if !t.SameShape(o) {
		return curated.Errorf(ShapeMismatch)
	}
	copy(t.colors, o.colors)
	return nil
}

func (t *Target) String() string {
	s := strings.Builder{}
	for bi, b := range t.blocks {
		if bi > 0 {
			s.WriteString(" | ")
		}
		for ki := 0; ki < b.length; ki++ {
			if ki > 0 {
				s.WriteString(" ")
			}
			s.WriteString(t.colors[b.offset+ki].String())
		}
	}
	return s.String()
}

// Swap exchanges the contents of two targets. No colours are copied.
func Swap(a, b *Target) {
	*a, *b = *b, *a
}
