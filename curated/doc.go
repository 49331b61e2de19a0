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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function checks whether an error was created with a specific
// pattern. The pattern is how curated errors are told apart. For example:
//
//	e := curated.Errorf(render.AddressOutOfRange, 3, 200)
//
//	if curated.Is(e, render.AddressOutOfRange) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
// There is no special type for sentinel errors. Sentinel patterns are stored
// as exported const strings in the package that raises them, suitably named
// and commented.
//
// The Error() function normalises the message so that the chain does not
// contain duplicate adjacent parts. Parts are separated by the sub-string
// ": ". This means that a function wrapping an error from a sub-system with
// the same prefix does not produce messages like:
//
//	render: render: device failure
//
// Curated errors also implement Unwrap(). Any error values passed to
// Errorf() are visible to errors.Is() and errors.As() from the standard
// library. This is useful for standard library sentinels such as
// os.ErrNotExist.
package curated
