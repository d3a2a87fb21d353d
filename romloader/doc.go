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

// Package romloader loads a GBA cartridge image from a local file or from an
// HTTP URL and identifies the game.
//
// Identification uses the four character game code in the cartridge header at
// offset 0xac. Each known game has two candidate locations for the pointer to
// the M4A song table. The first location that leads to a plausible song table
// is used:
//
//	ld := romloader.NewLoader("pokefirered.gba")
//	err := ld.Load()
//	if err != nil {
//		return err
//	}
//	r := rom.New(ld.Data)
//	ver, ok := romloader.Fingerprint(r)
//	if ok {
//		table, err := ver.SongTable(r)
//		...
//	}
//
// ROM images of a size other than 8, 16 or 32 MiB are rejected by Load().
package romloader
