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

// Package output renders the result of an extraction run as the files of a
// pret tree.
//
// Render() produces the text of every file, keyed by the path of the file
// relative to the root of the tree. The Files type can then be written to
// any directory:
//
//	files, err := output.Render(ctx)
//	if err != nil {
//		return err
//	}
//	err = files.Write("music_data")
//
// The fragments are meant to be merged by hand with the corresponding files
// of an existing pret checkout. The songs, voicegroups and keysplit tables are
// numbered to follow on from the entries already in that checkout.
package output
