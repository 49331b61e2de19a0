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

// Package statsview serves runtime statistics of the keyleds process over
// HTTP. The server is only available when the program is built with the
// statsview build tag:
//
//	go build -tags statsview .
//
// Graphs of memory use, goroutine count and garbage collection are then
// available at:
//
//	localhost:12780/debug/statsview
//
// The standard pprof endpoints are served below /debug/pprof/ on the same
// address. Without the build tag Launch() prints a message and does nothing.
package statsview

// Address of the statistics server.
const Address = "localhost:12780"
