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

package animation

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/keyleds/curated"
)

// Sentinel error patterns.
const (
	AlreadyRunning  = "animation: already running"
	InvalidInterval = "animation: invalid interval (%v)"
)

// how often the tick rate is measured.
const measuringInterval = time.Second

// TickFunc is called once per interval with the time since the previous call.
// The first call receives the time since Start(). Returning false ends the
// animation.
type TickFunc func(elapsed time.Duration) bool

// Loop calls a TickFunc at a fixed interval.
//
// The zero value is ready to use.
type Loop struct {
	crit sync.Mutex

	// closed by Stop() to end the goroutine
	quit chan struct{}

	// closed by the goroutine when it ends
	done chan struct{}

	// measured number of ticks per second
	measured atomic.Value // float32
}

// Start the animation. Ticks are called on a new goroutine. It is an error to
// start a Loop that is already running.
func (lp *Loop) Start(tick TickFunc, interval time.Duration) error {
	if interval <= 0 {
		return curated.Errorf(InvalidInterval, interval)
	}

	lp.crit.Lock()
	defer lp.crit.Unlock()

	if lp.done != nil {
		select {
		case <-lp.done:
		default:
			return curated.Errorf(AlreadyRunning)
		}
	}

	lp.quit = make(chan struct{})
	lp.done = make(chan struct{})
	lp.measured.Store(float32(0))

	go lp.run(tick, interval, lp.quit, lp.done)

	return nil
}

func (lp *Loop) run(tick TickFunc, interval time.Duration, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	pulse := time.NewTicker(interval)
	defer pulse.Stop()

	measuringPulse := time.NewTicker(measuringInterval)
	defer measuringPulse.Stop()

	last := time.Now()
	measureTime := last
	measureCt := 0

	for {
		select {
		case <-quit:
			return
		case now := <-pulse.C:
			// a quit request takes priority over a tick that is ready at
			// the same moment
			select {
			case <-quit:
				return
			default:
			}

			elapsed := now.Sub(last)
			last = now

			measureCt++
			if !tick(elapsed) {
				return
			}
		case now := <-measuringPulse.C:
			lp.measured.Store(float32(measureCt) / float32(now.Sub(measureTime).Seconds()))
			measureTime = now
			measureCt = 0
		}
	}
}

// Stop the animation and wait for the current tick, if any, to finish. It is
// safe to call Stop() on a Loop that is not running or that has already
// stopped.
//
// Stop() must not be called from inside the TickFunc.
func (lp *Loop) Stop() {
	lp.crit.Lock()
	quit, done := lp.quit, lp.done
	lp.quit = nil
	lp.done = nil
	lp.crit.Unlock()

	if quit == nil {
		return
	}

	close(quit)
	<-done
}

// Running returns true if the animation goroutine is active.
func (lp *Loop) Running() bool {
	lp.crit.Lock()
	defer lp.crit.Unlock()

	if lp.done == nil {
		return false
	}
	select {
	case <-lp.done:
		return false
	default:
		return true
	}
}

// Done returns a channel that is closed when the animation ends, either
// because of Stop() or because the TickFunc returned false. Returns nil if
// the animation has not been started.
func (lp *Loop) Done() <-chan struct{} {
	lp.crit.Lock()
	defer lp.crit.Unlock()
	return lp.done
}

// Measured returns the number of ticks per second, as measured over the most
// recent measuring period.
func (lp *Loop) Measured() float32 {
	if m, ok := lp.measured.Load().(float32); ok {
		return m
	}
	return 0
}

// Interval converts a frame rate to a tick interval.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}
