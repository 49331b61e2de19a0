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
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/keyleds/animation"
	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/logger"
)

// PresentFailed is the error pattern for a Device.Present() error.
const PresentFailed = "device error: %v"

// the tag used for all log entries made by the loop.
const logTag = "render"

// DefaultFPS is used when LoopOptions.FPS is zero.
const DefaultFPS = 30

// LoopOptions control the behaviour of a Loop.
type LoopOptions struct {
	// frames per second. DefaultFPS is used if the value is zero or less
	FPS int

	// the loop stops after this number of consecutive Present() errors. a
	// value of zero means the loop never stops because of device errors
	MaxConsecutiveFailures int

	// logging permission for the loop. a nil value means that nothing is
	// logged
	Permission logger.Permission
}

// Stats is a snapshot of the loop's counters.
type Stats struct {
	Frames              int
	Failures            int
	ConsecutiveFailures int

	// measured frames per second
	FPS float32
}

func (s Stats) String() string {
	return fmt.Sprintf("%d frames (%.1f fps) %d failures", s.Frames, s.FPS, s.Failures)
}

// Loop renders a list of renderers to a Device at a fixed frame rate.
type Loop struct {
	device Device
	opts   LoopOptions

	// the renderer list is the only state shared between the render goroutine
	// and other goroutines. the slice is never modified after it has been
	// stored so the render goroutine can use a copy of the slice header
	// without holding the lock
	crit      sync.Mutex
	renderers []Renderer

	// state is the most recently presented target. buffer is rendered into
	// on every frame. both are only ever touched by the render goroutine
	state  *Target
	buffer *Target

	// counters. consecutive is only written by the render goroutine but is
	// read by Stats()
	frames      atomic.Int64
	failures    atomic.Int64
	consecutive atomic.Int64

	anim animation.Loop
}

// NewLoop creates a Loop for the device. The targets are sized with the result
// of Device.BlockSizes(). The loop does not start until Start() is called.
//
// The loop does not take ownership of the renderers.
func NewLoop(device Device, renderers []Renderer, opts LoopOptions) (*Loop, error) {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}

	l := &Loop{
		device: device,
		opts:   opts,
	}

	var err error

	l.state, err = NewTarget(device.BlockSizes())
	if err != nil {
		return nil, err
	}
	l.buffer, err = NewTarget(l.state.Shape())
	if err != nil {
		return nil, err
	}

	l.SetRenderers(renderers)

	return l, nil
}

// SetRenderers replaces the list of renderers. The new list is used from the
// next frame. A frame that is in progress completes with the previous list.
//
// The slice is copied so the caller is free to reuse it.
func (l *Loop) SetRenderers(renderers []Renderer) {
	r := make([]Renderer, len(renderers))
	copy(r, renderers)

	l.crit.Lock()
	defer l.crit.Unlock()
	l.renderers = r
}

// Renderers returns a copy of the current renderer list.
func (l *Loop) Renderers() []Renderer {
	l.crit.Lock()
	defer l.crit.Unlock()
	r := make([]Renderer, len(l.renderers))
	copy(r, l.renderers)
	return r
}

// Render produces and presents a single frame. It is the tick function for the
// animation loop and is exported so the loop can be driven by other
// schedulers, or by tests. It must not be called from more than one goroutine
// at a time.
//
// Returns false if the loop should not continue. That happens when a renderer
// panics or when the number of consecutive device errors reaches the limit set
// in LoopOptions.
func (l *Loop) Render(elapsed time.Duration) (cont bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logf(l.opts.Permission, logTag, "renderer panic: %v", r)
			cont = false
		}
	}()

	// the loop is the only writer of the device state so there is no need to
	// read it back from the device
	copy(l.buffer.colors, l.state.colors)

	l.crit.Lock()
	renderers := l.renderers
	l.crit.Unlock()

	for _, r := range renderers {
		r.Render(elapsed, l.buffer)
	}

	Swap(l.state, l.buffer)
	l.frames.Add(1)

	if err := l.device.Present(l.state); err != nil {
		err = curated.Errorf(PresentFailed, err)
		logger.Log(l.opts.Permission, logTag, err.Error())

		l.failures.Add(1)
		n := l.consecutive.Add(1)
		if l.opts.MaxConsecutiveFailures > 0 && n >= int64(l.opts.MaxConsecutiveFailures) {
			logger.Logf(l.opts.Permission, logTag, "stopping after %d consecutive device errors", n)
			return false
		}
		return true
	}

	l.consecutive.Store(0)

	return true
}

// State returns a copy of the most recently presented target. It must not be
// called while the loop is running.
func (l *Loop) State() *Target {
	t, _ := NewTarget(l.state.Shape())
	_ = t.CopyFrom(l.state)
	return t
}

// Start the loop on a new goroutine at the frame rate given in LoopOptions.
func (l *Loop) Start() error {
	return l.anim.Start(l.Render, animation.Interval(l.opts.FPS))
}

// Stop the loop and wait for the current frame to finish. The device and the
// renderers can be released once Stop() has returned.
func (l *Loop) Stop() {
	l.anim.Stop()
}

// Done returns a channel that is closed when the loop stops, including when it
// stops because Render() returned false.
func (l *Loop) Done() <-chan struct{} {
	return l.anim.Done()
}

// Running returns true if the loop goroutine is active.
func (l *Loop) Running() bool {
	return l.anim.Running()
}

// Stats returns the current value of the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Frames:              int(l.frames.Load()),
		Failures:            int(l.failures.Load()),
		ConsecutiveFailures: int(l.consecutive.Load()),
		FPS:                 l.anim.Measured(),
	}
}
