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

// Package render contains the render target for a lighting device, the
// Renderer contract implemented by every effect and the Loop that drives the
// renderers at a fixed frame rate.
//
// Target holds one colour for every key of a device. The keys are grouped into
// blocks and a key is addressed by its block index and its index inside the
// block. All blocks share a single allocation and every block starts on an
// eight colour boundary. The padding between blocks is never addressable.
//
// The Loop holds two targets of the same shape. On every tick the committed
// state is copied into the scratch target, every renderer paints into the
// scratch target in the order in which it was registered, the two targets are
// swapped and the new state is presented to the Device.
//
//	loop, err := render.NewLoop(dev, []render.Renderer{fill, wave}, render.LoopOptions{
//		FPS:        30,
//		Permission: logger.Allow,
//	})
//	if err != nil {
//		return err
//	}
//	loop.Start()
//	defer loop.Stop()
//
// The list of renderers can be replaced at any time with SetRenderers(). A tick
// that is already in progress continues with the list it started with.
//
// Blend() is the "over" compositing rule. It uses integer arithmetic and
// truncates, so the result of a sequence of blends is exactly reproducible.
package render
