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

// Package memory is a Device that keeps presented frames in memory. It is
// used by tests and by the daemon when no hardware or preview is wanted.
package memory

import (
	"sync"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/render"
)

// Closed is the error pattern returned by Present() after Close() has been
// called.
const Closed = "memory: device closed"

// Device records the frames sent to it.
type Device struct {
	crit sync.Mutex

	blockSizes []int

	// copy of the most recently presented target
	last *render.Target

	// number of successful calls to Present()
	presented int

	// recent frames, oldest first. the length is limited to historyLen
	history    []*render.Target
	historyLen int

	// number of future calls to Present() that will fail with failErr. a
	// negative value means every call fails
	failCount int
	failErr   error

	closed bool
}

// NewDevice creates a Device with the specified block sizes.
func NewDevice(blockSizes ...int) *Device {
	dev := &Device{
		blockSizes: append([]int{}, blockSizes...),
	}
	dev.last, _ = render.NewTarget(dev.blockSizes)
	return dev
}

// BlockSizes implements the render.Device interface.
func (dev *Device) BlockSizes() []int {
	return append([]int{}, dev.blockSizes...)
}

// Present implements the render.Device interface.
func (dev *Device) Present(target *render.Target) error {
	dev.crit.Lock()
	defer dev.crit.Unlock()

	if dev.closed {
		return curated.Errorf(Closed)
	}

	if dev.failCount != 0 {
		if dev.failCount > 0 {
			dev.failCount--
		}
		return dev.failErr
	}

	if err := dev.last.CopyFrom(target); err != nil {
		return err
	}
	dev.presented++

	if dev.historyLen > 0 {
		t, _ := render.NewTarget(target.Shape())
		_ = t.CopyFrom(target)
		dev.history = append(dev.history, t)
		if len(dev.history) > dev.historyLen {
			dev.history = dev.history[1:]
		}
	}

	return nil
}

// Close implements the io.Closer interface.
func (dev *Device) Close() error {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	dev.closed = true
	return nil
}

// Fail causes the next n calls to Present() to return err. A negative value of
// n causes every call to fail until Fail() is called again with n of zero.
func (dev *Device) Fail(n int, err error) {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	dev.failCount = n
	dev.failErr = err
}

// Record keeps up to n of the most recently presented frames.
func (dev *Device) Record(n int) {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	dev.historyLen = n
	if len(dev.history) > n {
		dev.history = dev.history[len(dev.history)-n:]
	}
}

// History returns the recorded frames, oldest first.
func (dev *Device) History() []*render.Target {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	return append([]*render.Target{}, dev.history...)
}

// Presented returns the number of frames successfully presented.
func (dev *Device) Presented() int {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	return dev.presented
}

// Last returns a copy of the most recently presented frame.
func (dev *Device) Last() *render.Target {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	t, _ := render.NewTarget(dev.last.Shape())
	_ = t.CopyFrom(dev.last)
	return t
}
