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

package daemon

import (
	"testing"

	"github.com/jetsetilly/keyleds/config"
	"github.com/jetsetilly/keyleds/test"
)

func TestFPSPriority(t *testing.T) {
	d := &Daemon{opts: Options{DefaultFPS: 30}}
	test.ExpectEquality(t, d.fps(nil), 30)
	test.ExpectEquality(t, d.fps(&config.Config{}), 30)
	test.ExpectEquality(t, d.fps(&config.Config{FPS: 50}), 50)

	d.opts.FPS = 60
	test.ExpectEquality(t, d.fps(&config.Config{FPS: 50}), 60)
}
