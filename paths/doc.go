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

// Package paths describes the layout of a pret decompilation tree. Every file
// that m4a2pret reads from a pret checkout or writes to an output directory is
// named here, relative to the root of the tree.
//
// Paths are always slash separated. The Join() function converts a relative
// path to an operating system path under a root directory:
//
//	p := paths.Join("/home/user/music_data", paths.SongTable)
//
// The generated assembly refers to sample files with the same relative paths,
// which is why the relative forms are kept slash separated.
package paths
