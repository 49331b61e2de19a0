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

// Package animation runs a tick function at a fixed interval on its own
// goroutine. It measures the actual number of ticks per second in the same
// way as the frame limiter of a television: a ticker paces the ticks and a
// second, slower ticker triggers the measurement.
package animation
