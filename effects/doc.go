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

// Package effects is the framework for lighting effects. An effect is a
// render.Renderer created by a Factory from a Service. The Service gives the
// factory access to the key layout and to the options configured for the
// effect.
//
// Options are optional. Each getter takes a default that is returned when the
// option is absent. An option that is present but cannot be converted is an
// error and the factory should return it. The effect is then skipped by
// Chain(), which logs the error, and the remaining effects in the chain are
// still created.
//
// Factories are registered by name in a Registry. The builtin package
// registers the effects that come with keyleds.
package effects
