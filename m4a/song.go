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

package m4a

import (
	"encoding/binary"
	"fmt"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/logger"
	"github.com/m4a2pret/m4a2pret/rom"
)

// layout of the song table and song headers.
const (
	SongEntryLength  = 8
	SongHeaderLength = 8

	// the song table is never longer than this. prevents a malformed table
	// from being scanned to the end of the image
	MaxSongs = 999
)

// SongHeader is the part of the song header used by the build rules.
type SongHeader struct {
	Tracks    uint8
	Blocks    uint8
	Priority  uint8
	ReverbRaw uint8

	// raw pointer value
	VoiceGroupPointer uint32
}

// Song is an entry in the song table.
type Song struct {
	// id allocated to the song
	ID int

	// one based position of the song in the song table
	Index int

	// raw pointer to the song header
	HeaderPointer uint32

	// the ms and me fields of the song table entry
	LoopStart uint16
	LoopEnd   uint16

	Header SongHeader

	// whether the header and voicegroup could be decoded. an invalid song
	// has a reason and is not given a voicegroup
	Valid  bool
	Reason string

	// offset and id of the voicegroup
	VoiceGroup   uint32
	VoiceGroupID int
}

// Symbol returns the name of the song in the pret tree.
func (s Song) Symbol() string {
	return fmt.Sprintf("mus_%d", s.ID)
}

// TableLength returns the number of entries in the song table. The end of
// the table is the first entry with a zero header pointer, or MaxSongs.
func TableLength(r *rom.ROM, offset uint32) int {
	n := 0
	for n < MaxSongs {
		w, err := r.Word(offset + uint32(n*SongEntryLength))
		if err != nil || w == 0 {
			break
		}
		n++
	}
	return n
}

// ClampWindow limits the one based, inclusive window to the length of the
// table. A window that is empty after clamping has first greater than last.
func ClampWindow(first int, last int, length int) (int, int) {
	if first < 1 {
		first = 1
	}
	if last > length {
		last = length
	}
	return first, last
}

// WalkSongTable decodes the songs in the window of the song table and every
// voicegroup reachable from them. The progress function, if not nil, is
// called after each song with the percentage of the window completed.
//
// Song ids are allocated in walk order starting at the song baseline plus
// one, irrespective of the window.
func (ctx *Context) WalkSongTable(offset uint32, first int, last int, progress func(int)) error {
	if offset >= ctx.rom.Size() {
		return curated.Errorf(TableOutOfBounds, offset)
	}

	length := TableLength(ctx.rom, offset)
	first, last = ClampWindow(first, last, length)

	logger.Logf(logger.Allow, logTag, "song table at %#07x has %d entries", offset, length)
	if first > last {
		logger.Logf(logger.Allow, logTag, "no songs in window")
		return nil
	}

	total := last - first + 1
	for k := first; k <= last; k++ {
		s := ctx.decodeSong(offset, k)
		ctx.Songs = append(ctx.Songs, s)

		if progress != nil {
			progress(len(ctx.Songs) * 100 / total)
		}
	}

	return nil
}

// decodeSong decodes the song at the one based table index.
func (ctx *Context) decodeSong(table uint32, k int) Song {
	entry := table + uint32((k-1)*SongEntryLength)

	s := Song{
		ID:    ctx.baselines.Songs + len(ctx.Songs) + 1,
		Index: k,
	}

	// entries inside the table length are always readable
	s.HeaderPointer, _ = ctx.rom.Word(entry)
	s.LoopStart, _ = ctx.rom.Halfword(entry + 4)
	s.LoopEnd, _ = ctx.rom.Halfword(entry + 6)

	hdr, err := ctx.rom.Resolve(s.HeaderPointer)
	if err != nil {
		return ctx.invalidSong(s, fmt.Sprintf("invalid song header pointer (%#08x)", s.HeaderPointer))
	}

	b, err := ctx.rom.Slice(hdr, SongHeaderLength)
	if err != nil {
		return ctx.invalidSong(s, fmt.Sprintf("song header past end of image (%#08x)", s.HeaderPointer))
	}

	s.Header = SongHeader{
		Tracks:            b[0],
		Blocks:            b[1],
		Priority:          b[2],
		ReverbRaw:         b[3],
		VoiceGroupPointer: binary.LittleEndian.Uint32(b[4:]),
	}

	vg, err := ctx.rom.Resolve(s.Header.VoiceGroupPointer)
	if err != nil {
		return ctx.invalidSong(s, fmt.Sprintf("invalid voicegroup pointer (%#08x)", s.Header.VoiceGroupPointer))
	}

	s.Valid = true
	s.VoiceGroup = vg
	s.VoiceGroupID = ctx.ResolveVoiceGroup(vg)

	logger.Logf(ctx, logTag, "%s: table index %d, header %#07x, voicegroup %03d", s.Symbol(), k, hdr, s.VoiceGroupID)

	return s
}

func (ctx *Context) invalidSong(s Song, reason string) Song {
	s.Valid = false
	s.Reason = reason
	logger.Logf(logger.Allow, logTag, "%s: %s", s.Symbol(), reason)
	return s
}
