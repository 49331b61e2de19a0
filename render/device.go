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

package render

// Device implementations display a Target. A Device is the transport to the
// physical keyboard, or a stand in for it.
type Device interface {
	// BlockSizes returns the number of keys in each block of the device. It
	// is called once when the Loop is created.
	BlockSizes() []int

	// Present sends the target to the device. It is called once per frame
	// from the render goroutine and must not keep a reference to the target
	// after it returns.
	Present(target *Target) error
}
