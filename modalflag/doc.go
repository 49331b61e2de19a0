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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It adds the concept of modes to the command line. A mode is a
// single word argument that selects which group of flags is parsed next.
//
// For keyleds the top level modes are RUN, LAYOUT and EFFECTS:
//
//	keyleds RUN -fps 60 -config lights.yaml
//	keyleds LAYOUT -dot
//
// The first sub-mode given to AddSubModes() is the default. If the first
// argument is not a recognised mode then the default mode is selected and the
// argument is left for the flags of that mode.
//
// Typical usage:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "LAYOUT", "EFFECTS")
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		fps := md.AddInt("fps", 30, "frames per second")
//		...
//	}
//
// Help is printed automatically to the Output writer when the -help flag is
// seen. The help text lists the flags of the current mode and any sub-modes.
package modalflag
