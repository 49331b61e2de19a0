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

// Package config reads the effect chain configuration file. The file is YAML:
//
//	fps: 30
//	groups:
//	  wasd: [W, A, S, D]
//	effects:
//	  - effect: fill
//	    color: black
//	  - effect: wave
//	    period: 5s
//	    colors: [red, green, blue]
//	    group: wasd
//
// Every key of an effect entry other than "effect" is an option for that
// effect. The Watcher type watches the file and delivers a new Config every
// time the file changes.
package config

import (
	"fmt"
	"os"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"gopkg.in/yaml.v3"
)

// ConfigError is the pattern for all errors in this package.
const ConfigError = "config: %v"

// the key in an effect entry that names the effect
const effectKey = "effect"

// EffectConfig is a single entry in the effect chain.
type EffectConfig struct {
	Effect  string
	Options effects.Options
}

// Config is the parsed configuration file.
type Config struct {
	// zero means that the FPS has not been specified
	FPS int

	// named lists of key names. a group here replaces a group of the same
	// name in the layout
	Groups map[string][]string

	Effects []EffectConfig
}

type yamlConfig struct {
	FPS     int                 `yaml:"fps"`
	Groups  map[string][]string `yaml:"groups"`
	Effects []map[string]any    `yaml:"effects"`
}

// Parse configuration from YAML data.
func Parse(data []byte) (*Config, error) {
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, curated.Errorf(ConfigError, err)
	}

	if yc.FPS < 0 {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("negative fps (%d)", yc.FPS))
	}

	cfg := &Config{
		FPS:    yc.FPS,
		Groups: yc.Groups,
	}

	for i, e := range yc.Effects {
		v, ok := e[effectKey]
		if !ok {
			return nil, curated.Errorf(ConfigError, fmt.Sprintf("entry %d has no effect", i))
		}
		name, ok := v.(string)
		if !ok || name == "" {
			return nil, curated.Errorf(ConfigError, fmt.Sprintf("entry %d has an unusable effect name (%v)", i, v))
		}

		opts := make(effects.Options, len(e))
		for k, o := range e {
			if k != effectKey {
				opts[k] = o
			}
		}

		cfg.Effects = append(cfg.Effects, EffectConfig{
			Effect:  name,
			Options: opts,
		})
	}

	return cfg, nil
}

// Load configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(ConfigError, err)
	}
	return Parse(data)
}

// Services creates a Service for every entry in the effect chain. The groups
// of the configuration are resolved against the KeyDB.
func (cfg *Config) Services(db *layout.KeyDB) ([]*effects.Service, error) {
	groups := make(map[string]layout.Group, len(cfg.Groups))
	for name, keys := range cfg.Groups {
		g, err := db.NewGroup(name, keys)
		if err != nil {
			return nil, curated.Errorf(ConfigError, err)
		}
		groups[name] = g
	}

	svcs := make([]*effects.Service, 0, len(cfg.Effects))
	for _, e := range cfg.Effects {
		svcs = append(svcs, &effects.Service{
			Name:    e.Effect,
			KeyDB:   db,
			Options: e.Options,
			Groups:  groups,
		})
	}

	return svcs, nil
}
