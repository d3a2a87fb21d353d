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

package m4a_test

import (
	"encoding/binary"

	"github.com/m4a2pret/m4a2pret/m4a"
	"github.com/m4a2pret/m4a2pret/rom"
)

// locations in the synthetic image.
const (
	tableOffset  = 0x0100
	headerOffset = 0x1000
	vgA          = 0x2000
	vgB          = 0x3000
	ksOffset     = 0x4000
	dsOffset     = 0x5000
	waveOffset   = 0x5800
	imageSize    = 0x8000
)

func ptr(offset uint32) uint32 {
	return rom.WindowStart | offset
}

// builder creates synthetic ROM images.
type builder struct {
	data []byte
}

func newBuilder() *builder {
	return &builder{data: make([]byte, imageSize)}
}

func (b *builder) rom() *rom.ROM {
	return rom.New(b.data)
}

func (b *builder) word(offset uint32, v uint32) {
	binary.LittleEndian.PutUint32(b.data[offset:], v)
}

func (b *builder) half(offset uint32, v uint16) {
	binary.LittleEndian.PutUint16(b.data[offset:], v)
}

// song writes the table entry for the one based index k.
func (b *builder) song(k int, header uint32, ms uint16, me uint16) {
	e := uint32(tableOffset + (k-1)*m4a.SongEntryLength)
	b.word(e, header)
	b.half(e+4, ms)
	b.half(e+6, me)
}

// header writes a song header at the offset.
func (b *builder) header(offset uint32, priority uint8, reverb uint8, vg uint32) {
	b.data[offset] = 1
	b.data[offset+1] = 0
	b.data[offset+2] = priority
	b.data[offset+3] = reverb
	b.word(offset+4, vg)
}

// songs writes n songs, each with its own header, all using the same
// voicegroup.
func (b *builder) songs(n int, vg uint32) {
	for k := 1; k <= n; k++ {
		h := uint32(headerOffset + (k-1)*m4a.SongHeaderLength)
		b.header(h, 0, 0, ptr(vg))
		b.song(k, ptr(h), uint16(k), uint16(k))
	}
}

// voicegroup fills every slot of the voicegroup with a square wave
// instrument.
func (b *builder) voicegroup(offset uint32) {
	for s := 0; s < m4a.VoiceGroupSlots; s++ {
		b.slot(offset, s, []byte{0x02, 60, 0, 0, 2, 0, 0, 0, 0, 0, 15, 0})
	}
}

func (b *builder) slot(vg uint32, slot int, v []byte) {
	copy(b.data[vg+uint32(slot*m4a.SlotLength):], v)
}

func (b *builder) directSound(vg uint32, slot int, tag uint8, sample uint32) {
	s := []byte{tag, 60, 0, 0xc0, 0, 0, 0, 0, 255, 0, 255, 165}
	binary.LittleEndian.PutUint32(s[4:], sample)
	b.slot(vg, slot, s)
}

func (b *builder) wave(vg uint32, slot int, wave uint32) {
	s := []byte{0x03, 60, 0, 0, 0, 0, 0, 0, 0, 0, 15, 0}
	binary.LittleEndian.PutUint32(s[4:], wave)
	b.slot(vg, slot, s)
}

func (b *builder) keysplit(vg uint32, slot int, sub uint32, table uint32) {
	s := []byte{0x40, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(s[4:], sub)
	binary.LittleEndian.PutUint32(s[8:], table)
	b.slot(vg, slot, s)
}

func (b *builder) keysplitAll(vg uint32, slot int, sub uint32) {
	s := []byte{0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(s[4:], sub)
	b.slot(vg, slot, s)
}

// keysplitTable writes a table whose elements start at key start.
func (b *builder) keysplitTable(offset uint32, start int, elements []byte) {
	for i := 0; i < start; i++ {
		b.data[int(offset)+i] = 0xff
	}
	copy(b.data[int(offset)+start:], elements)
}
