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

// Package sdlpreview is a Device that draws the keyboard in an SDL window. The
// package is only functional when built with the "sdl" tag. Without the tag
// Open() will always fail.
//
// SDL must be driven from the main thread. Programs that use the package
// should wrap their main function with Main().
package sdlpreview

// Sentinel error patterns.
const (
	OpenFailed  = "sdlpreview: %v"
	Closed      = "sdlpreview: closed"
	Unavailable = "sdlpreview: not available. build with the sdl tag"
)
