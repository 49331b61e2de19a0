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

package effects_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/effects"
	"github.com/jetsetilly/keyleds/layout"
	"github.com/jetsetilly/keyleds/logger"
	"github.com/jetsetilly/keyleds/render"
	"github.com/jetsetilly/keyleds/test"
	"gopkg.in/yaml.v3"
)

func newService(t *testing.T, name string, options string) *effects.Service {
	t.Helper()

	db, err := layout.NewKeyDB(layout.Generic())
	test.DemandSuccess(t, err)

	opts := effects.Options{}
	test.DemandSuccess(t, yaml.Unmarshal([]byte(options), &opts))

	return &effects.Service{
		Name:    name,
		KeyDB:   db,
		Options: opts,
	}
}

func TestDuration(t *testing.T) {
	svc := newService(t, "test", "a: 5s\nb: 250\nc: \"1500\"\nd: soon\ne: -10\nf: [1]\n")

	d, err := svc.Duration("a", time.Second)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 5*time.Second)

	d, err = svc.Duration("b", time.Second)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 250*time.Millisecond)

	d, err = svc.Duration("c", time.Second)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 1500*time.Millisecond)

	d, err = svc.Duration("missing", time.Second)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, time.Second)

	for _, name := range []string{"d", "e", "f"} {
		_, err = svc.Duration(name, time.Second)
		test.ExpectSuccess(t, curated.Is(err, effects.BadOption), name)
	}
}

func TestDurationTooLong(t *testing.T) {
	svc := newService(t, "test", "a: 9223372036854775\nb: \"9300000000000000\"\nc: 1e19\nd: 9223372036854\n")

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Duration(name, time.Second)
		test.ExpectSuccess(t, curated.Is(err, effects.BadOption), name)
	}

	// the longest duration that can be given in milliseconds
	d, err := svc.Duration("d", time.Second)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 9223372036854*time.Millisecond)
}

func TestAdvance(t *testing.T) {
	test.ExpectEquality(t, effects.Advance(0, 3*time.Second, 10*time.Second), 3*time.Second)
	test.ExpectEquality(t, effects.Advance(8*time.Second, 3*time.Second, 10*time.Second), time.Second)
	test.ExpectEquality(t, effects.Advance(8*time.Second, 23*time.Second, 10*time.Second), time.Second)
	test.ExpectEquality(t, effects.Advance(5*time.Second, time.Second, 0), time.Duration(0))
	test.ExpectEquality(t, effects.Advance(5*time.Second, -time.Second, 10*time.Second), 5*time.Second)

	// neither the position nor the elapsed time can overflow
	const long = time.Duration(math.MaxInt64 - 10)
	p := effects.Advance(long-1, long-1, long)
	test.ExpectEquality(t, p, long-2)
	p = effects.Advance(p, time.Duration(math.MaxInt64), long)
	test.ExpectSuccess(t, p >= 0 && p < long)
}

func TestFraction(t *testing.T) {
	test.ExpectEquality(t, effects.Fraction(0, time.Second, 1024), 0)
	test.ExpectEquality(t, effects.Fraction(500*time.Millisecond, time.Second, 1024), 512)
	test.ExpectEquality(t, effects.Fraction(time.Second-1, time.Second, 1024), 1023)
	test.ExpectEquality(t, effects.Fraction(2999*time.Hour, 3000*time.Hour, 1024), 1023)
	test.ExpectEquality(t, effects.Fraction(time.Second, 0, 1024), 0)
}

func TestUint(t *testing.T) {
	svc := newService(t, "test", "a: 42\nb: \"7\"\nc: -1\nd: lots\n")

	u, err := svc.Uint("a", 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, u, uint(42))

	u, err = svc.Uint("b", 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, u, uint(7))

	u, err = svc.Uint("missing", 1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, u, uint(1000))

	_, err = svc.Uint("c", 1)
	test.ExpectSuccess(t, curated.Is(err, effects.BadOption))
	_, err = svc.Uint("d", 1)
	test.ExpectSuccess(t, curated.Is(err, effects.BadOption))
}

func TestColors(t *testing.T) {
	svc := newService(t, "test", "a: [red, \"#00ff00\"]\nb: red, blue\nc: [red, nope]\nd: 12\nsingle: orange\n")

	l, err := svc.Colors("a", nil)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(l), 2)
	test.ExpectEquality(t, l[1], render.Opaque(0, 0xff, 0))

	l, err = svc.Colors("b", nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(l), 2)

	l, err = svc.Colors("missing", []render.Color{render.Transparent})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(l), 1)

	_, err = svc.Colors("c", nil)
	test.ExpectSuccess(t, curated.Is(err, effects.BadOption))
	_, err = svc.Colors("d", nil)
	test.ExpectSuccess(t, curated.Is(err, effects.BadOption))

	c, err := svc.Color("single", render.Transparent)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, render.Opaque(0xff, 0xa5, 0))
}

func TestKeyGroup(t *testing.T) {
	svc := newService(t, "test", "a: arrows\nb: [Q, W, \"1\"]\nc: nosuchgroup\nd: [Q, NOSUCHKEY]\ne: mine\n")
	svc.Groups = map[string]layout.Group{
		"mine": {Name: "mine", Keys: []layout.Entry{svc.KeyDB.Key(0)}},
	}

	g, err := svc.KeyGroup("missing")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, g == nil)
	test.ExpectEquality(t, len(svc.Keys(g)), svc.KeyDB.Len())

	g, err = svc.KeyGroup("a")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(g.Keys), 4)

	g, err = svc.KeyGroup("b")
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(svc.Keys(g)), 3)
	test.ExpectEquality(t, g.Keys[2].Name, "1")

	g, err = svc.KeyGroup("e")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, g.Keys[0].Name, "ESC")

	_, err = svc.KeyGroup("c")
	test.ExpectSuccess(t, curated.Is(err, effects.BadOption))
	_, err = svc.KeyGroup("d")
	test.ExpectSuccess(t, curated.Is(err, effects.BadOption))
}

func TestString(t *testing.T) {
	svc := newService(t, "test", "a: hello\nb: 12\nc: [1]\n")

	s, err := svc.String("a", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "hello")

	s, err = svc.String("b", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "12")

	s, err = svc.String("missing", "def")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "def")

	_, err = svc.String("c", "")
	test.ExpectFailure(t, err)
}

func TestNewTarget(t *testing.T) {
	svc := newService(t, "test", "")
	tgt := svc.NewTarget()
	test.ExpectEquality(t, tgt.Len(), svc.KeyDB.Len())
	tgt.ForEach(func(_ render.KeyIndex, c *render.Color) {
		test.ExpectEquality(t, *c, render.Transparent)
	})
}

func TestRegistryAndChain(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	reg := effects.NewRegistry()

	mark := func(v uint8) effects.Factory {
		return func(svc *effects.Service) (render.Renderer, error) {
			return render.RendererFunc(func(_ time.Duration, tgt *render.Target) {
				*tgt.Get(0, 0) = render.Opaque(v, 0, 0)
			}), nil
		}
	}

	test.ExpectSuccess(t, reg.Register("one", mark(1)))
	test.ExpectSuccess(t, reg.Register("two", mark(2)))
	test.ExpectSuccess(t, reg.Register("broken", func(svc *effects.Service) (render.Renderer, error) {
		return nil, errors.New("cannot start")
	}))
	test.ExpectSuccess(t, curated.Is(reg.Register("one", mark(3)), effects.DuplicateEffect))

	names := reg.Names()
	test.DemandEquality(t, len(names), 3)
	test.ExpectEquality(t, names[0], "broken")

	svcs := []*effects.Service{
		newService(t, "two", ""),
		newService(t, "broken", ""),
		newService(t, "missing", ""),
		newService(t, "one", ""),
	}

	_, err := reg.Create(svcs[2])
	test.ExpectSuccess(t, curated.Is(err, effects.UnknownEffect))

	chain := effects.Chain(reg, svcs, logger.Allow)
	test.DemandEquality(t, len(chain), 2)

	tgt := svcs[0].NewTarget()
	for _, r := range chain {
		r.Render(0, tgt)
	}
	test.ExpectEquality(t, tgt.Get(0, 0).R, uint8(1))

	tw := &test.Writer{}
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "broken: cannot start\nmissing: effects: unknown effect (missing)\n")
}
