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

// Package daemon connects a device, a keyboard layout and an effect
// configuration to a render loop. The configuration can be replaced while the
// loop is running.
package daemon

import (
	"context"
	"io"
	"sync"

	"github.com/jetsetilly/keyleds/config"
	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/logger"
	"github.com/jetsetilly/keyleds/render"
)

// Sentinel error patterns.
const (
	ShapeMismatch = "daemon: device shape %v does not match layout %s %v"
	LoopStopped   = "daemon: render loop stopped (%v)"
)

const logTag = "daemon"

// Options for a Daemon.
type Options struct {
	// frame rate from the command line. zero means that the value in the
	// configuration file, or failing that DefaultFPS, is used
	FPS int

	// frame rate used if nothing else specifies one
	DefaultFPS int

	// see render.LoopOptions
	MaxConsecutiveFailures int

	// logging permission for the daemon and the render loop
	Permission logger.Permission
}

// Daemon owns the render loop for one device.
type Daemon struct {
	dev  render.Device
	db   *layout.KeyDB
	reg  *effects.Registry
	opts Options

	loop *render.Loop

	crit sync.Mutex
	cfg  *config.Config
}

// New creates the render loop for the device with the effects in the
// configuration and starts it. Effects that can not be created are logged and
// left out of the chain.
func New(dev render.Device, db *layout.KeyDB, reg *effects.Registry, cfg *config.Config, opts Options) (*Daemon, error) {
	if !sameSizes(dev.BlockSizes(), db.BlockSizes()) {
		return nil, curated.Errorf(ShapeMismatch, dev.BlockSizes(), db.Name(), db.BlockSizes())
	}

	d := &Daemon{
		dev:  dev,
		db:   db,
		reg:  reg,
		opts: opts,
		cfg:  cfg,
	}

	chain, err := d.chain(cfg)
	if err != nil {
		return nil, err
	}

	d.loop, err = render.NewLoop(dev, chain, render.LoopOptions{
		FPS:                    d.fps(cfg),
		MaxConsecutiveFailures: opts.MaxConsecutiveFailures,
		Permission:             opts.Permission,
	})
	if err != nil {
		return nil, err
	}

	err = d.loop.Start()
	if err != nil {
		return nil, err
	}

	return d, nil
}

func sameSizes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// the command line takes priority over the configuration file, which takes
// priority over the preferences.
func (d *Daemon) fps(cfg *config.Config) int {
	if d.opts.FPS > 0 {
		return d.opts.FPS
	}
	if cfg != nil && cfg.FPS > 0 {
		return cfg.FPS
	}
	return d.opts.DefaultFPS
}

func (d *Daemon) chain(cfg *config.Config) ([]render.Renderer, error) {
	if cfg == nil {
		return nil, nil
	}
	svcs, err := cfg.Services(d.db)
	if err != nil {
		return nil, err
	}
	return effects.Chain(d.reg, svcs, d.opts.Permission), nil
}

// Loop returns the render loop.
func (d *Daemon) Loop() *render.Loop {
	return d.loop
}

// Config returns the configuration currently in use.
func (d *Daemon) Config() *config.Config {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.cfg
}

// Reload replaces the effect chain with one built from the new configuration.
// The frame rate can not be changed while the loop is running.
func (d *Daemon) Reload(cfg *config.Config) error {
	chain, err := d.chain(cfg)
	if err != nil {
		return err
	}

	d.loop.SetRenderers(chain)

	d.crit.Lock()
	prev := d.cfg
	d.cfg = cfg
	d.crit.Unlock()

	if d.opts.FPS <= 0 && d.fps(cfg) != d.fps(prev) {
		logger.Logf(d.opts.Permission, logTag, "fps change to %d ignored until restart", d.fps(cfg))
	}

	logger.Logf(d.opts.Permission, logTag, "%d effects active", len(chain))

	return nil
}

// Run services configuration updates until the context is cancelled, the
// device goes away or the render loop stops by itself. The loop is then
// stopped and the device is closed if it implements io.Closer.
//
// The updates channel can be nil.
//
// An error is returned only if the render loop stopped by itself.
func (d *Daemon) Run(ctx context.Context, updates <-chan *config.Config) error {
	loopDone := d.loop.Done()

	// devices with a window of their own are done when the window is closed
	var devDone <-chan struct{}
	if dd, ok := d.dev.(interface{ Done() <-chan struct{} }); ok {
		devDone = dd.Done()
	}

	for {
		select {
		case <-ctx.Done():
			return d.shutdown()

		case <-devDone:
			return d.shutdown()

		case cfg, ok := <-updates:
			if !ok {
				updates = nil
				continue // for loop
			}
			if err := d.Reload(cfg); err != nil {
				logger.Log(d.opts.Permission, logTag, err.Error())
			}

		case <-loopDone:
			stats := d.loop.Stats()
			_ = d.shutdown()
			return curated.Errorf(LoopStopped, stats)
		}
	}
}

func (d *Daemon) shutdown() error {
	d.loop.Stop()
	if c, ok := d.dev.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
