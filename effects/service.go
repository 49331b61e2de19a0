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

package effects

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/keyleds/colors"
	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/render"
)

// Sentinel error patterns.
const (
	UnknownEffect = "effects: unknown effect (%s)"
	BadOption     = "effects: %s: option %s: %v"
	InvalidLayout = "effects: %s: invalid layout: %v"
)

// largest number of milliseconds that fits in a time.Duration
const maxMilliseconds = math.MaxInt64 / int64(time.Millisecond)

// Options for an effect. Values are the scalars, lists and maps decoded from
// the configuration file.
type Options map[string]any

// Service is given to a Factory when an effect is created.
type Service struct {
	// name of the effect. used in error messages and as the log tag
	Name string

	KeyDB   *layout.KeyDB
	Options Options

	// groups defined by the configuration. these take priority over groups
	// of the same name in the layout
	Groups map[string]layout.Group
}

// NewTarget creates a private target with the shape of the device. Every key
// is transparent.
func (svc *Service) NewTarget() *render.Target {
	// the shape has already been validated by layout.NewKeyDB()
	t, _ := render.NewTarget(svc.KeyDB.BlockSizes())
	return t
}

// OptionError returns an error for an option that has an unusable value.
func (svc *Service) OptionError(name string, err any) error {
	return curated.Errorf(BadOption, svc.Name, name, err)
}

// InvalidLayout returns an error for an effect that can not work with the
// layout of the device.
func (svc *Service) InvalidLayout(reason string) error {
	return curated.Errorf(InvalidLayout, svc.Name, reason)
}

// Has returns true if the option is present.
func (svc *Service) Has(name string) bool {
	_, ok := svc.Options[name]
	return ok
}

// String returns the string value of an option. Scalars of other types are
// converted.
func (svc *Service) String(name string, def string) (string, error) {
	v, ok := svc.Options[name]
	if !ok {
		return def, nil
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case int, uint, float64, bool:
		return fmt.Sprintf("%v", v), nil
	}
	return "", svc.OptionError(name, fmt.Sprintf("not a string (%T)", v))
}

// Duration returns the value of a duration option. The option can be a string
// in the format accepted by time.ParseDuration() or an integer number of
// milliseconds.
func (svc *Service) Duration(name string, def time.Duration) (time.Duration, error) {
	v, ok := svc.Options[name]
	if !ok {
		return def, nil
	}

	var d time.Duration

	switch v := v.(type) {
	case int:
		if int64(v) > maxMilliseconds {
			return 0, svc.OptionError(name, "duration too long")
		}
		d = time.Duration(v) * time.Millisecond
	case uint:
		if uint64(v) > uint64(maxMilliseconds) {
			return 0, svc.OptionError(name, "duration too long")
		}
		d = time.Duration(v) * time.Millisecond
	case float64:
		ns := v * float64(time.Millisecond)
		if math.IsNaN(ns) || ns >= math.MaxInt64 {
			return 0, svc.OptionError(name, "duration too long")
		}
		d = time.Duration(ns)
	case string:
		if ms, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			if int64(ms) > maxMilliseconds {
				return 0, svc.OptionError(name, "duration too long")
			}
			d = time.Duration(ms) * time.Millisecond
		} else {
			d, err = time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return 0, svc.OptionError(name, err)
			}
		}
	default:
		return 0, svc.OptionError(name, fmt.Sprintf("not a duration (%T)", v))
	}

	if d < 0 {
		return 0, svc.OptionError(name, "negative duration")
	}

	return d, nil
}

// Uint returns the value of an unsigned integer option.
func (svc *Service) Uint(name string, def uint) (uint, error) {
	v, ok := svc.Options[name]
	if !ok {
		return def, nil
	}

	switch v := v.(type) {
	case int:
		if v < 0 {
			return 0, svc.OptionError(name, "negative value")
		}
		return uint(v), nil
	case uint:
		return v, nil
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(v), 10, 0)
		if err != nil {
			return 0, svc.OptionError(name, err)
		}
		return uint(u), nil
	}

	return 0, svc.OptionError(name, fmt.Sprintf("not an integer (%T)", v))
}

// Color returns the value of a single colour option.
func (svc *Service) Color(name string, def render.Color) (render.Color, error) {
	v, ok := svc.Options[name]
	if !ok {
		return def, nil
	}

	s, ok := v.(string)
	if !ok {
		return render.Color{}, svc.OptionError(name, fmt.Sprintf("not a colour (%T)", v))
	}

	c, err := colors.Parse(s)
	if err != nil {
		return render.Color{}, svc.OptionError(name, err)
	}

	return c, nil
}

// Colors returns the value of a colour list option. The option can be a list
// or a string of colours separated by commas.
func (svc *Service) Colors(name string, def []render.Color) ([]render.Color, error) {
	v, ok := svc.Options[name]
	if !ok {
		return def, nil
	}

	switch v := v.(type) {
	case string:
		l, err := colors.ParseList(v)
		if err != nil {
			return nil, svc.OptionError(name, err)
		}
		return l, nil
	case []any:
		l := make([]render.Color, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, svc.OptionError(name, fmt.Sprintf("not a colour (%v)", e))
			}
			c, err := colors.Parse(s)
			if err != nil {
				return nil, svc.OptionError(name, err)
			}
			l = append(l, c)
		}
		return l, nil
	}

	return nil, svc.OptionError(name, fmt.Sprintf("not a colour list (%T)", v))
}

// KeyGroup returns the keys selected by an option. The option can be the
// name of a group or a list of key names. Returns nil if the option is absent,
// which by convention means that the effect applies to every key.
func (svc *Service) KeyGroup(name string) (*layout.Group, error) {
	v, ok := svc.Options[name]
	if !ok {
		return nil, nil
	}

	switch v := v.(type) {
	case string:
		if g, ok := svc.Groups[v]; ok {
			return &g, nil
		}
		if g, ok := svc.KeyDB.Group(v); ok {
			return &g, nil
		}
		return nil, svc.OptionError(name, fmt.Sprintf("unknown group (%s)", v))
	case []any:
		keys := make([]string, 0, len(v))
		for _, e := range v {
			keys = append(keys, fmt.Sprintf("%v", e))
		}
		g, err := svc.KeyDB.NewGroup(name, keys)
		if err != nil {
			return nil, svc.OptionError(name, err)
		}
		return &g, nil
	}

	return nil, svc.OptionError(name, fmt.Sprintf("not a key group (%T)", v))
}

// Keys returns the keys of the group, or every key in the layout if the group
// is nil.
func (svc *Service) Keys(g *layout.Group) []layout.Entry {
	if g == nil {
		return svc.KeyDB.Keys()
	}
	return g.Keys
}
