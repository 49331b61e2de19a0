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

package render_test

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jetsetilly/keyleds/device/memory"
	"github.com/jetsetilly/keyleds/logger"
	"github.com/jetsetilly/keyleds/render"
	"github.com/jetsetilly/keyleds/test"
)

// paint returns a renderer that writes an opaque colour to key (0,0).
func paint(c render.Color) render.Renderer {
	return render.RendererFunc(func(_ time.Duration, tgt *render.Target) {
		*tgt.Get(0, 0) = c
	})
}

// count returns a renderer that increments the red channel of key (0,0).
func count() render.Renderer {
	return render.RendererFunc(func(_ time.Duration, tgt *render.Target) {
		c := tgt.Get(0, 0)
		c.R++
		c.A = 0xff
	})
}

func TestRendererOrder(t *testing.T) {
	red := paint(render.Opaque(0xff, 0, 0))
	blue := paint(render.Opaque(0, 0, 0xff))

	dev := memory.NewDevice(4, 3)
	loop, err := render.NewLoop(dev, []render.Renderer{red, blue}, render.LoopOptions{})
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, loop.Render(time.Millisecond))
	test.ExpectEquality(t, *dev.Last().Get(0, 0), render.Opaque(0, 0, 0xff))

	loop.SetRenderers([]render.Renderer{blue, red})
	test.ExpectSuccess(t, loop.Render(time.Millisecond))
	test.ExpectEquality(t, *dev.Last().Get(0, 0), render.Opaque(0xff, 0, 0))
}

func TestIdleRenderer(t *testing.T) {
	idle := render.RendererFunc(func(time.Duration, *render.Target) {})

	dev := memory.NewDevice(4, 3)
	loop, err := render.NewLoop(dev, []render.Renderer{idle}, render.LoopOptions{})
	test.DemandSuccess(t, err)

	initial, err := render.NewTarget(dev.BlockSizes())
	test.DemandSuccess(t, err)

	for i := 0; i < 1000; i++ {
		test.DemandSuccess(t, loop.Render(time.Millisecond))
	}

	test.ExpectSuccess(t, loop.State().Equal(initial))
	test.ExpectSuccess(t, dev.Last().Equal(initial))
	test.ExpectEquality(t, dev.Presented(), 1000)
	test.ExpectEquality(t, loop.Stats().Frames, 1000)
}

func TestNoRenderers(t *testing.T) {
	dev := memory.NewDevice()
	loop, err := render.NewLoop(dev, nil, render.LoopOptions{})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, loop.Render(0))
	test.ExpectEquality(t, dev.Presented(), 1)
}

func TestRendererListCopied(t *testing.T) {
	list := []render.Renderer{paint(render.Opaque(1, 0, 0))}

	dev := memory.NewDevice(1)
	loop, err := render.NewLoop(dev, list, render.LoopOptions{})
	test.DemandSuccess(t, err)

	// changing the caller's slice has no effect on the loop
	list[0] = paint(render.Opaque(2, 0, 0))
	test.ExpectSuccess(t, loop.Render(0))
	test.ExpectEquality(t, dev.Last().Get(0, 0).R, uint8(1))
	test.ExpectEquality(t, len(loop.Renderers()), 1)
}

func TestDeviceFailure(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	dev := memory.NewDevice(2)
	loop, err := render.NewLoop(dev, []render.Renderer{count()}, render.LoopOptions{
		Permission: logger.Allow,
	})
	test.DemandSuccess(t, err)

	dev.Fail(3, errors.New("unplugged"))
	for i := 0; i < 3; i++ {
		test.ExpectSuccess(t, loop.Render(time.Millisecond))
	}

	s := loop.Stats()
	test.ExpectEquality(t, s.Failures, 3)
	test.ExpectEquality(t, s.ConsecutiveFailures, 3)
	test.ExpectEquality(t, dev.Presented(), 0)

	// the state is not rolled back after a device error
	test.ExpectSuccess(t, loop.Render(time.Millisecond))
	test.ExpectEquality(t, dev.Last().Get(0, 0).R, uint8(4))

	s = loop.Stats()
	test.ExpectEquality(t, s.Frames, 4)
	test.ExpectEquality(t, s.Failures, 3)
	test.ExpectEquality(t, s.ConsecutiveFailures, 0)

	tw := &test.Writer{}
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "render: device error: unplugged (repeat x3)\n")
}

func TestFailureLimit(t *testing.T) {
	dev := memory.NewDevice(2)
	loop, err := render.NewLoop(dev, nil, render.LoopOptions{
		MaxConsecutiveFailures: 3,
	})
	test.DemandSuccess(t, err)

	dev.Fail(2, errors.New("unplugged"))
	test.ExpectSuccess(t, loop.Render(0))
	test.ExpectSuccess(t, loop.Render(0))

	// a successful frame resets the count
	test.ExpectSuccess(t, loop.Render(0))

	dev.Fail(-1, errors.New("unplugged"))
	test.ExpectSuccess(t, loop.Render(0))
	test.ExpectSuccess(t, loop.Render(0))
	test.ExpectFailure(t, loop.Render(0))
	test.ExpectEquality(t, loop.Stats().Failures, 5)
}

func TestRendererPanic(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	bad := render.RendererFunc(func(_ time.Duration, tgt *render.Target) {
		_ = tgt.Get(5, 0)
	})

	dev := memory.NewDevice(2)
	loop, err := render.NewLoop(dev, []render.Renderer{bad}, render.LoopOptions{
		Permission: logger.Allow,
	})
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, loop.Render(0))
	test.ExpectEquality(t, dev.Presented(), 0)

	tw := &test.Writer{}
	logger.Write(tw)
	test.ExpectSuccess(t, strings.HasPrefix(tw.String(), "render: renderer panic:"))
}

func TestElapsed(t *testing.T) {
	var got []time.Duration
	r := render.RendererFunc(func(elapsed time.Duration, _ *render.Target) {
		got = append(got, elapsed)
	})

	loop, err := render.NewLoop(memory.NewDevice(1), []render.Renderer{r}, render.LoopOptions{})
	test.DemandSuccess(t, err)
	loop.Render(10 * time.Millisecond)
	loop.Render(3 * time.Second)

	test.DemandEquality(t, len(got), 2)
	test.ExpectEquality(t, got[0], 10*time.Millisecond)
	test.ExpectEquality(t, got[1], 3*time.Second)
}

func TestInvalidDevice(t *testing.T) {
	_, err := render.NewLoop(memory.NewDevice(-1), nil, render.LoopOptions{})
	test.ExpectFailure(t, err)
}

// checkDevice fails the test if key (0,0) and key (0,1) differ. the renderer
// lists in TestSetRenderersConcurrent always write the same value to both
// keys so a difference means a frame used part of one list and part of
// another.
type checkDevice struct {
	mismatch atomic.Int32
	frames   atomic.Int32
}

func (dev *checkDevice) BlockSizes() []int {
	return []int{2}
}

func (dev *checkDevice) Present(tgt *render.Target) error {
	if *tgt.Get(0, 0) != *tgt.Get(0, 1) {
		dev.mismatch.Add(1)
	}
	dev.frames.Add(1)
	return nil
}

func list(v uint8) []render.Renderer {
	key := func(k int) render.Renderer {
		return render.RendererFunc(func(_ time.Duration, tgt *render.Target) {
			*tgt.Get(0, k) = render.Opaque(v, v, v)
		})
	}
	return []render.Renderer{key(0), key(1)}
}

func TestSetRenderersConcurrent(t *testing.T) {
	dev := &checkDevice{}
	loop, err := render.NewLoop(dev, list(0), render.LoopOptions{FPS: 1000})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, loop.Start())

	// the writers keep replacing the list until enough frames have been
	// rendered while they were running
	const overlap = 50
	deadline := time.Now().Add(10 * time.Second)

	var wg sync.WaitGroup
	var writes atomic.Int64
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; dev.frames.Load() < overlap && time.Now().Before(deadline); i++ {
				loop.SetRenderers(list(uint8(g*50 + i%50)))
				writes.Add(1)
			}
		}(g)
	}
	wg.Wait()

	test.DemandSuccess(t, dev.frames.Load() >= overlap, "frames rendered while the list was changing")
	test.ExpectSuccess(t, writes.Load() > overlap)

	loop.Stop()
	test.ExpectEquality(t, loop.Running(), false)
	test.ExpectEquality(t, dev.mismatch.Load(), int32(0))
}

func TestSetRenderersDuringRender(t *testing.T) {
	dev := &checkDevice{}
	loop, err := render.NewLoop(dev, list(0), render.LoopOptions{})
	test.DemandSuccess(t, err)

	quit := make(chan struct{})
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-quit:
					return
				default:
				}
				loop.SetRenderers(list(uint8(g*50 + i%50)))
			}
		}(g)
	}

	for i := 0; i < 2000; i++ {
		test.ExpectSuccess(t, loop.Render(time.Millisecond))
	}

	close(quit)
	wg.Wait()

	test.ExpectEquality(t, dev.frames.Load(), int32(2000))
	test.ExpectEquality(t, dev.mismatch.Load(), int32(0))
}

func TestStartStop(t *testing.T) {
	dev := memory.NewDevice(1)
	loop, err := render.NewLoop(dev, []render.Renderer{count()}, render.LoopOptions{FPS: 200})
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, loop.Start())
	test.ExpectEquality(t, loop.Running(), true)
	for dev.Presented() < 3 {
		time.Sleep(time.Millisecond)
	}
	loop.Stop()

	n := dev.Presented()
	time.Sleep(20 * time.Millisecond)
	test.ExpectEquality(t, dev.Presented(), n)
	test.ExpectEquality(t, loop.Stats().Frames, n)
}

func TestStopAfterFailureLimit(t *testing.T) {
	dev := memory.NewDevice(1)
	dev.Fail(-1, errors.New("unplugged"))

	loop, err := render.NewLoop(dev, nil, render.LoopOptions{
		FPS:                    500,
		MaxConsecutiveFailures: 2,
	})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, loop.Start())

	select {
	case <-loop.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	test.ExpectEquality(t, loop.Stats().Failures, 2)
	loop.Stop()
}
