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

// Package m4a decodes the data structures of the M4A sound engine (also known
// as the Sappy engine) from a GBA ROM.
//
// Decoding starts at the song table. Each song points to a song header and
// each song header points to a voicegroup. A voicegroup is a table of 128
// instruments. Keysplit instruments point to another voicegroup and to a
// keysplit table, so the voicegroups of a ROM form a graph that may contain
// cycles. A voicegroup is decoded only once per run however many times it is
// referenced. Its id is allocated before its instruments are decoded, which
// means a voicegroup that refers to itself is already known by the time the
// reference is seen.
//
// All the state of a run is held by a Context:
//
//	ctx := m4a.NewContext(r, m4a.Baselines{Songs: 347, VoiceGroups: 190, Keysplits: 5})
//	err := ctx.WalkSongTable(tableOffset, 1, 999, nil)
//
// The instrument lines of a decoded voicegroup refer to other voicegroups and
// to keysplit tables with reference tokens (see the xref package). The tokens
// are replaced with the final symbols by the Rewrite() function once the walk
// is complete.
//
// Problems with the data of an individual instrument never stop decoding. The
// instrument's line in the voicegroup becomes a comment describing the
// problem and decoding continues with the next instrument.
package m4a
