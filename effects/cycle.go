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

import "time"

// Advance moves a position in a cycle of the given period by elapsed. The
// result is always in the range 0 to period. Neither the addition nor the
// wrap can overflow, however long the period or the elapsed time.
func Advance(pos, elapsed, period time.Duration) time.Duration {
	if period <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	pos %= period
	if pos < 0 {
		pos += period
	}
	e := elapsed % period
	if pos >= period-e {
		return pos - (period - e)
	}
	return pos + e
}

// Fraction returns the position as a fraction of the period in the range 0 to
// n, excluding n.
func Fraction(pos, period time.Duration, n int) int {
	if period <= 0 || n <= 0 {
		return 0
	}
	f := int(float64(pos) / float64(period) * float64(n))
	return min(max(f, 0), n-1)
}
