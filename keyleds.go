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

package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/keyleds/config"
	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/daemon"
	"github.com/jetsetilly/keyleds/device/memory"
	"github.com/jetsetilly/keyleds/device/sdlpreview"
	"github.com/jetsetilly/keyleds/device/terminal"
	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/logger"
	"github.com/jetsetilly/keyleds/modalflag"
	"github.com/jetsetilly/keyleds/prefs"
	"github.com/jetsetilly/keyleds/render"
	"github.com/jetsetilly/keyleds/statsview"
	"github.com/jetsetilly/keyleds/version"

	// register the builtin effects with effects.Default
	_ "github.com/jetsetilly/keyleds/effects/builtin"
)

// Sentinel error patterns.
const (
	UnknownDevice  = "unknown device (%s)"
	UnexpectedArgs = "unexpected arguments for %s mode: %s"
)

// the configuration used when no configuration file is given
//
//go:embed default.yaml
var defaultConfig []byte

// #mainthread
func main() {
	exitVal := 0

	// the sdl preview needs the main thread. without the sdl build tag the
	// function is called directly
	sdlpreview.Main(func() {
		exitVal = launch(os.Args[1:], os.Stdout)
	})

	os.Exit(exitVal)
}

// launch returns the value to use with os.Exit()
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "LAYOUT", "EFFECTS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output)

	case "LAYOUT":
		err = showLayout(md, output)

	case "EFFECTS":
		err = listEffects(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.Get())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	device := md.AddString("device", "", "device: terminal, memory, sdl (default from preferences)")
	fps := md.AddInt("fps", 0, "frames per second (default from configuration file or preferences)")
	configFile := md.AddString("config", "", "effect configuration file")
	layoutFile := md.AddString("layout", "", "keyboard layout file (default is the builtin generic layout)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	log := md.AddBool("log", false, "echo log to stderr")
	prefsOverride := md.AddString("prefs", "", "override preferences for this run (key::value; key::value)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return curated.Errorf(UnexpectedArgs, md, strings.Join(md.RemainingArgs(), " "))
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
	}

	pref, err := daemon.NewPreferences()
	if err != nil {
		return err
	}

	// set log echo
	if *log {
		logger.SetEcho(os.Stderr, false)
	} else {
		logger.SetEcho(nil, false)
	}

	_, db, err := loadLayout(*layoutFile)
	if err != nil {
		return err
	}

	var cfg *config.Config
	if *configFile == "" {
		cfg, err = config.Parse(defaultConfig)
	} else {
		cfg, err = config.Load(*configFile)
	}
	if err != nil {
		return err
	}

	kind := pref.Device.Get().(string)
	if *device != "" {
		kind = *device
	}

	dev, err := openDevice(kind, db)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(output)
	}

	d, err := daemon.New(dev, db, effects.Default, cfg, daemon.Options{
		FPS:                    *fps,
		DefaultFPS:             pref.FPS.Get().(int),
		MaxConsecutiveFailures: pref.MaxFailures.Get().(int),
		Permission:             logger.Allow,
	})
	if err != nil {
		if c, ok := dev.(io.Closer); ok {
			_ = c.Close()
		}
		return err
	}

	var updates <-chan *config.Config
	if *configFile != "" && pref.Watch.Get().(bool) {
		w, err := config.NewWatcher(*configFile, logger.Allow)
		if err != nil {
			logger.Log(logger.Allow, "keyleds", err.Error())
		} else {
			defer w.Close()
			updates = w.Updates()
		}
	}

	// #ctrlc
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = d.Run(ctx, updates)

	// the log is only written if it hasn't already been echoed
	if !*log {
		logger.Tail(os.Stderr, 10)
	}

	return err
}

func loadLayout(path string) (*layout.Layout, *layout.KeyDB, error) {
	l := layout.Generic()
	if path != "" {
		var err error
		l, err = layout.Load(path)
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := layout.NewKeyDB(l)
	if err != nil {
		return nil, nil, err
	}

	return l, db, nil
}

func openDevice(kind string, db *layout.KeyDB) (render.Device, error) {
	switch strings.ToLower(kind) {
	case daemon.DeviceTerminal:
		dev, err := terminal.Open(db)
		if err != nil {
			return nil, err
		}
		return dev, nil

	case daemon.DeviceSDL:
		dev, err := sdlpreview.Open(db)
		if err != nil {
			return nil, err
		}
		return dev, nil

	case daemon.DeviceMemory:
		return memory.NewDevice(db.BlockSizes()...), nil
	}

	return nil, curated.Errorf(UnknownDevice, kind)
}

func showLayout(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	layoutFile := md.AddString("layout", "", "keyboard layout file (default is the builtin generic layout)")
	dot := md.AddBool("dot", false, "write a graphviz description of a render target for the layout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	l, db, err := loadLayout(*layoutFile)
	if err != nil {
		return err
	}

	if *dot {
		target, err := render.NewTarget(db.BlockSizes())
		if err != nil {
			return err
		}
		memviz.Map(output, target)
		return nil
	}

	fmt.Fprintf(output, "layout: %s\n", l.Name)
	for i, b := range l.Blocks {
		fmt.Fprintf(output, "block %d: %s (%d keys)\n", i, b.Name, len(b.Keys))
	}
	fmt.Fprintf(output, "bounds: %s\n", db.Bounds())
	if g := db.GroupNames(); len(g) > 0 {
		fmt.Fprintf(output, "groups: %s\n", strings.Join(g, ", "))
	}

	return nil
}

func listEffects(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	for _, n := range effects.Default.Names() {
		fmt.Fprintln(output, n)
	}

	return nil
}
