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

// Package prefs facilitates the storage of preferential values in the
// application. Preference values are typed (Bool, Int, Float, String and
// Duration) and are safe to read from one goroutine while being set in
// another.
//
// Values are collated in a Disk instance, each with a unique key. The Disk
// type loads and saves the values to a file on disk. The file consists of
// lines of the form:
//
//	key :: value
//
// Entries in the file that are not known to the Disk instance are preserved
// when the file is saved. This means more than one Disk instance can share the
// same file.
//
// Values can be overridden for a single run of the program with the command
// line stack (see PushCommandLineStack()). Command line values are applied
// when the Disk is loaded but are never saved to disk unless the value is
// explicitly Set() afterwards.
package prefs
