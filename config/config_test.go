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

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/keyleds/config"
	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/logger"
	"github.com/jetsetilly/keyleds/test"
)

const example = `
fps: 25
groups:
  wasd: [W, A, S, D]
effects:
  - effect: fill
    color: black
  - effect: wave
    period: 5s
    colors: [red, green, blue]
    group: wasd
`

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(example))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, cfg.FPS, 25)
	test.ExpectEquality(t, len(cfg.Groups["wasd"]), 4)
	test.DemandEquality(t, len(cfg.Effects), 2)

	test.ExpectEquality(t, cfg.Effects[0].Effect, "fill")
	test.ExpectEquality(t, cfg.Effects[0].Options["color"], any("black"))
	_, ok := cfg.Effects[0].Options["effect"]
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, cfg.Effects[1].Effect, "wave")
	test.ExpectEquality(t, len(cfg.Effects[1].Options), 3)
	l, ok := cfg.Effects[1].Options["colors"].([]any)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, len(l), 3)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := config.Parse([]byte(""))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.FPS, 0)
	test.ExpectEquality(t, len(cfg.Effects), 0)
}

func TestParseErrors(t *testing.T) {
	for _, data := range []string{
		"effects: [",
		"fps: -1\n",
		"effects:\n  - color: red\n",
		"effects:\n  - effect: [a, b]\n",
	} {
		_, err := config.Parse([]byte(data))
		test.ExpectSuccess(t, curated.Is(err, config.ConfigError), data)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	test.ExpectSuccess(t, curated.Is(err, config.ConfigError))
	test.ExpectSuccess(t, errors.Is(err, os.ErrNotExist))
}

func TestServices(t *testing.T) {
	db, err := layout.NewKeyDB(layout.Generic())
	test.DemandSuccess(t, err)

	cfg, err := config.Parse([]byte(example))
	test.DemandSuccess(t, err)

	svcs, err := cfg.Services(db)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(svcs), 2)
	test.ExpectEquality(t, svcs[0].Name, "fill")
	test.ExpectEquality(t, svcs[1].Name, "wave")

	g, err := svcs[1].KeyGroup("group")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, g != nil)
	test.ExpectEquality(t, len(g.Keys), 4)
	test.ExpectEquality(t, g.Keys[0].Name, "W")

	cfg, err = config.Parse([]byte("groups:\n  bad: [NOSUCHKEY]\n"))
	test.DemandSuccess(t, err)
	_, err = cfg.Services(db)
	test.ExpectSuccess(t, curated.Is(err, config.ConfigError))
}

func TestWatcher(t *testing.T) {
	logger.Clear()

	pth := filepath.Join(t.TempDir(), "keyleds.yaml")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("fps: 10\n"), 0o644))

	w, err := config.NewWatcher(pth, logger.Allow)
	test.DemandSuccess(t, err)
	defer w.Close()

	test.DemandSuccess(t, os.WriteFile(pth, []byte("fps: 20\n"), 0o644))

	select {
	case cfg := <-w.Updates():
		test.ExpectEquality(t, cfg.FPS, 20)
	case <-time.After(5 * time.Second):
		t.Fatalf("no update after writing the configuration file")
	}

	// a broken file is logged and not delivered
	test.DemandSuccess(t, os.WriteFile(pth, []byte("fps: [\n"), 0o644))

	deadline := time.Now().Add(5 * time.Second)
	for {
		tw := &test.Writer{}
		logger.Write(tw)
		if strings.Contains(tw.String(), "yaml: ") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("parse error was not logged")
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-w.Updates():
		t.Errorf("unexpected update for a broken configuration file")
	default:
	}

	// other files in the directory are ignored
	test.DemandSuccess(t, os.WriteFile(filepath.Join(filepath.Dir(pth), "other"), []byte("fps: 1\n"), 0o644))
	select {
	case <-w.Updates():
		t.Errorf("unexpected update for an unrelated file")
	case <-time.After(3 * debounceWait):
	}

	test.ExpectSuccess(t, w.Close())
	test.ExpectSuccess(t, w.Close())
}

const debounceWait = 100 * time.Millisecond
