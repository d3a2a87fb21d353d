// This file is part of m4a2pret.
//
// m4a2pret is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// m4a2pret is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with m4a2pret.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It adds program modes (and sub-modes) to the flag package, with a
// separate set of flags for each mode.
//
// Arguments are given to the Modes type with NewArgs() and parsed with
// Parse(). Between those two calls the flags and sub-modes for the current
// mode are added:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("EXTRACT", "INFO")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// The first sub-mode is the default. If the first argument after the flags
// matches one of the sub-modes (case insensitive) then that mode is selected
// and the argument is consumed. Mode() returns the most recently selected
// mode and Path() the list of all modes selected so far.
//
// The flags for the selected mode are added after a call to NewMode():
//
//	md.NewMode()
//	table := md.AddHex("table", 0, "song table offset")
//	p, err = md.Parse()
//
// Non-flag arguments remaining after a Parse() are available through
// RemainingArgs() and GetArg().
//
// In addition to the standard flag types, AddHex() adds a uint32 flag that
// accepts hexadecimal values with or without the "0x" prefix. ROM offsets are
// always given in hex so this saves the user from having to type the prefix.
//
// Help messages are printed to the Output field when the -help flag is
// given. The list of sub-modes is appended to the flag usage information.
package modalflag
