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

package romloader

import (
	"github.com/m4a2pret/m4a2pret/rom"
)

// location of the game code in the cartridge header.
const gameCodeOffset = 0xac

// Version describes a known game.
type Version struct {
	// four character game code from the cartridge header
	Code string

	// human readable name of the game
	Name string

	// the pret project that decompiles this game. empty if there is no such
	// project
	Project string

	// locations in the image of the word that points to the song table. the
	// primary location is tried first
	Primary     uint32
	Alternative uint32
}

// Versions lists every game that can be extracted from without a manually
// supplied song table offset.
var Versions = []Version{
	{Code: "AXVE", Name: "Ruby [Eng]", Project: "pokeruby", Primary: 0x1ddf20, Alternative: 0x1ddf20},
	{Code: "BPRE", Name: "Fire Red [Eng]", Project: "pokefirered", Primary: 0x1dd11c, Alternative: 0x1dd11c},
	{Code: "BPEE", Name: "Emerald [Eng]", Project: "pokeemerald", Primary: 0x2e0158, Alternative: 0x2e0158},
	{Code: "AXVS", Name: "Rubí [Esp]", Project: "pokeruby", Primary: 0x1e2c30, Alternative: 0x1e2c64},
	{Code: "BPRS", Name: "Rojo Fuego [Esp]", Project: "pokefirered", Primary: 0x1dcc50, Alternative: 0x1dcc84},
	{Code: "BPES", Name: "Esmeralda [Esp]", Project: "pokeemerald", Primary: 0x2e78e0, Alternative: 0x2e7918},
	{Code: "AXVJ", Name: "Ruby [Jap]", Project: "pokeruby", Primary: 0x1ae9b8, Alternative: 0x1ae9ec},
	{Code: "BPRJ", Name: "Fire Red [Jap]", Project: "pokefirered", Primary: 0x1c10d8, Alternative: 0x1c110c},
	{Code: "BPEJ", Name: "Emerald [Jap]", Project: "pokeemerald", Primary: 0x28e6e0, Alternative: 0x28e714},
	{Code: "AFEJ", Name: "FE 6 [Eng]", Primary: 0x003748, Alternative: 0x01545c},
	{Code: "AE7E", Name: "FE 7 [Eng]", Primary: 0x003f50, Alternative: 0x014de8},
	{Code: "BE8E", Name: "FE 8 [Eng]", Primary: 0x0028bc, Alternative: 0x014b80},
	{Code: "BZ6P", Name: "Final Fantasy VI", Primary: 0x134a50, Alternative: 0x134a84},
}

// GameCode returns the four character game code of the image. Returns the
// empty string if the image is too short to have a cartridge header.
func GameCode(r *rom.ROM) string {
	b, err := r.Slice(gameCodeOffset, 4)
	if err != nil {
		return ""
	}
	return string(b)
}

// Fingerprint identifies the game in the image.
func Fingerprint(r *rom.ROM) (Version, bool) {
	code := GameCode(r)
	for _, v := range Versions {
		if v.Code == code {
			return v, true
		}
	}
	return Version{Code: code}, false
}

// SongTable returns the offset of the song table for this version. The
// primary location is used if it leads to a plausible song table, otherwise
// the alternative location is tried. The second return value is false if
// neither location leads to a song table.
func (v Version) SongTable(r *rom.ROM) (uint32, bool) {
	if off, ok := songTableAt(r, v.Primary); ok {
		return off, true
	}
	if v.Alternative != v.Primary {
		if off, ok := songTableAt(r, v.Alternative); ok {
			return off, true
		}
	}
	return 0, false
}

// a plausible song table is pointed to by a word in the cartridge window and
// begins with an entry whose header pointer is also in the cartridge window.
func songTableAt(r *rom.ROM, location uint32) (uint32, bool) {
	raw, err := r.Word(location)
	if err != nil {
		return 0, false
	}
	table, err := r.Resolve(raw)
	if err != nil {
		return 0, false
	}
	hdr, err := r.Word(table)
	if err != nil {
		return 0, false
	}
	if _, err := r.Resolve(hdr); err != nil {
		return 0, false
	}
	return table, true
}
