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

//go:build sdl

package sdlpreview

import (
	"sync"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
	"github.com/veandco/go-sdl2/sdl"
)

// Available is true if the package was built with the sdl tag.
const Available = true

const windowTitle = "Keyleds"

// layout units are multiplied by scale to get window pixels
const scale = 3

// gap in pixels between neighbouring keys
const gap = 2

// Main runs f with the SDL main thread available to the package.
func Main(f func()) {
	sdl.Main(f)
}

// Device implements the render.Device interface.
type Device struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	blockSizes []int
	rects      [][]sdl.Rect

	closeOnce sync.Once
	quit      chan struct{}
}

// Open a window big enough for the layout.
func Open(db *layout.KeyDB) (*Device, error) {
	dev := &Device{
		blockSizes: db.BlockSizes(),
		quit:       make(chan struct{}),
	}

	bounds := db.Bounds()

	dev.rects = make([][]sdl.Rect, len(dev.blockSizes))
	for b, sz := range dev.blockSizes {
		dev.rects[b] = make([]sdl.Rect, sz)
	}
	for _, k := range db.Keys() {
		dev.rects[k.Address.Block][k.Address.Key] = sdl.Rect{
			X: int32(k.Position.X0-bounds.X0)*scale + gap,
			Y: int32(k.Position.Y0-bounds.Y0)*scale + gap,
			W: max(1, int32(k.Position.Width())*scale-gap),
			H: max(1, int32(k.Position.Height())*scale-gap),
		}
	}

	var err error

	sdl.Do(func() {
		err = sdl.Init(sdl.INIT_VIDEO)
		if err != nil {
			return
		}

		dev.window, err = sdl.CreateWindow(windowTitle,
			sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			int32(bounds.Width())*scale+gap*2, int32(bounds.Height())*scale+gap*2,
			uint32(sdl.WINDOW_SHOWN))
		if err != nil {
			return
		}

		dev.renderer, err = sdl.CreateRenderer(dev.window, -1, uint32(sdl.RENDERER_ACCELERATED))
		if err != nil {
			return
		}

		err = dev.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	})

	if err != nil {
		_ = dev.Close()
		return nil, curated.Errorf(OpenFailed, err)
	}

	return dev, nil
}

// BlockSizes implements the render.Device interface.
func (dev *Device) BlockSizes() []int {
	return append([]int{}, dev.blockSizes...)
}

// Present implements the render.Device interface. Window events are serviced
// at the same time.
func (dev *Device) Present(target *render.Target) error {
	var err error

	sdl.Do(func() {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			if _, ok := ev.(*sdl.QuitEvent); ok {
				dev.closeOnce.Do(func() { close(dev.quit) })
			}
		}

		if dev.renderer == nil {
			err = curated.Errorf(Closed)
			return
		}

		_ = dev.renderer.SetDrawColor(0, 0, 0, 255)
		_ = dev.renderer.Clear()

		target.ForEach(func(k render.KeyIndex, c *render.Color) {
			if err != nil || c.A == 0 {
				return
			}
			if k.Block >= len(dev.rects) || k.Key >= len(dev.rects[k.Block]) {
				return
			}
			err = dev.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
			if err == nil {
				err = dev.renderer.FillRect(&dev.rects[k.Block][k.Key])
			}
		})

		dev.renderer.Present()
	})

	return err
}

// Done is closed when the window has been closed by the user.
func (dev *Device) Done() <-chan struct{} {
	return dev.quit
}

// Close the window.
func (dev *Device) Close() error {
	var err error

	sdl.Do(func() {
		if dev.renderer != nil {
			err = dev.renderer.Destroy()
			dev.renderer = nil
		}
		if dev.window != nil {
			if werr := dev.window.Destroy(); werr != nil && err == nil {
				err = werr
			}
			dev.window = nil
		}
		sdl.Quit()
	})

	return err
}
