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

// Package terminal is a Device that draws the keyboard on a terminal that
// supports 24bit colour. Each key is drawn at its position in the layout as a
// block of background colour. It is a preview for when there is no keyboard
// with per-key lighting attached.
package terminal

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
	"github.com/pkg/term"
)

// Sentinel error patterns.
const (
	OpenFailed = "terminal: %v"
	Closed     = "terminal: closed"
)

// layout units per character cell. a cell is roughly twice as high as it is
// wide
const (
	cellWidth  = 6.0
	cellHeight = 18.0
)

// ANSI sequences.
const (
	csi         = "\x1b["
	clearScreen = csi + "2J"
	hideCursor  = csi + "?25l"
	showCursor  = csi + "?25h"
	resetAttr   = csi + "0m"
)

// cell is the screen position of a key.
type cell struct {
	row   int
	col   int
	width int
	label string
}

// Device implements the render.Device interface.
type Device struct {
	crit sync.Mutex

	out io.Writer

	// the terminal is nil if the Device was created with New()
	tty *term.Term

	blockSizes []int

	// screen position of every key, indexed by block and key
	cells [][]cell

	// row below the keyboard
	bottom int

	// the frame is built in the buffer before being written in one go
	buf bytes.Buffer
}

// Open the controlling terminal in cbreak mode and prepare it for drawing.
func Open(db *layout.KeyDB) (*Device, error) {
	tty, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf(OpenFailed, err)
	}

	dev := New(tty, db)
	dev.tty = tty

	if _, err := io.WriteString(tty, clearScreen+hideCursor); err != nil {
		_ = dev.Close()
		return nil, curated.Errorf(OpenFailed, err)
	}

	return dev, nil
}

// New creates a Device that writes to any io.Writer.
func New(out io.Writer, db *layout.KeyDB) *Device {
	dev := &Device{
		out:        out,
		blockSizes: db.BlockSizes(),
	}

	bounds := db.Bounds()

	dev.cells = make([][]cell, len(dev.blockSizes))
	for b, sz := range dev.blockSizes {
		dev.cells[b] = make([]cell, sz)
	}

	for _, k := range db.Keys() {
		c := cell{
			row:   1 + int(math.Round(float64(k.Position.Y0-bounds.Y0)/cellHeight)),
			col:   1 + int(math.Round(float64(k.Position.X0-bounds.X0)/cellWidth)),
			width: max(1, int(math.Round(float64(k.Position.Width())/cellWidth))),
		}
		c.label = label(k.Name, c.width)
		dev.cells[k.Address.Block][k.Address.Key] = c
		dev.bottom = max(dev.bottom, c.row+1)
	}

	return dev
}

// label fits the key name into the width of the key, leaving a space at the
// right edge so that neighbouring keys are separated.
func label(name string, width int) string {
	w := max(0, width-1)
	r := []rune(name)
	if len(r) > w {
		r = r[:w]
	}
	return fmt.Sprintf("%-*s", width, string(r))
}

// BlockSizes implements the render.Device interface.
func (dev *Device) BlockSizes() []int {
	return append([]int{}, dev.blockSizes...)
}

// Present implements the render.Device interface.
func (dev *Device) Present(target *render.Target) error {
	dev.crit.Lock()
	defer dev.crit.Unlock()

	if dev.out == nil {
		return curated.Errorf(Closed)
	}

	dev.buf.Reset()

	target.ForEach(func(k render.KeyIndex, c *render.Color) {
		if k.Block >= len(dev.cells) || k.Key >= len(dev.cells[k.Block]) {
			return
		}
		cl := dev.cells[k.Block][k.Key]
		fmt.Fprintf(&dev.buf, "%s%d;%dH", csi, cl.row, cl.col)
		writeColor(&dev.buf, *c)
		dev.buf.WriteString(cl.label)
		dev.buf.WriteString(resetAttr)
	})

	fmt.Fprintf(&dev.buf, "%s%d;1H", csi, dev.bottom)

	_, err := dev.out.Write(dev.buf.Bytes())
	return err
}

// writeColor writes the escape sequences for the colour of a key. the alpha
// channel is applied against a black background.
func writeColor(buf *bytes.Buffer, c render.Color) {
	if c.A == 0 {
		buf.WriteString(resetAttr)
		return
	}

	d := render.Opaque(0, 0, 0)
	render.Blend(&d, c)

	// dark text on a light key and light text on a dark key
	fg := 255
	if (299*int(d.R)+587*int(d.G)+114*int(d.B))/1000 > 128 {
		fg = 0
	}

	fmt.Fprintf(buf, "%s48;2;%d;%d;%dm%s38;2;%d;%d;%dm", csi, d.R, d.G, d.B, csi, fg, fg, fg)
}

// Close restores the terminal.
func (dev *Device) Close() error {
	dev.crit.Lock()
	defer dev.crit.Unlock()

	if dev.out == nil {
		return nil
	}

	_, err := io.WriteString(dev.out, resetAttr+showCursor+"\n")
	dev.out = nil

	if dev.tty != nil {
		if rerr := dev.tty.Restore(); rerr != nil && err == nil {
			err = rerr
		}
		if cerr := dev.tty.Close(); cerr != nil && err == nil {
			err = cerr
		}
		dev.tty = nil
	}

	return err
}
