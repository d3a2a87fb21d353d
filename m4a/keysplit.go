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
	"fmt"

	"github.com/m4a2pret/m4a2pret/logger"
	"github.com/m4a2pret/m4a2pret/rom"
)

// KeysplitWidth is the largest number of bytes examined for a keysplit table.
// There is one byte per MIDI key.
const KeysplitWidth = 128

// KeysplitTable maps MIDI keys to the instruments of a voicegroup.
type KeysplitTable struct {
	Offset uint32
	ID     int

	// position of the first element relative to Offset. the element for key
	// k is at Offset+k, so the first element is for key Start
	Start int

	Elements []byte
}

// Symbol returns the assembler label of the keysplit table.
func (ks *KeysplitTable) Symbol() string {
	return KeysplitSymbol(ks.ID)
}

// KeysplitSymbol returns the assembler label for a keysplit table id.
func KeysplitSymbol(id int) string {
	return fmt.Sprintf("KeySplitTable%d", id)
}

// DecodeKeysplit reads the keysplit table at the offset.
//
// The table has no length field. The elements are taken to start at the
// first zero byte in the KeysplitWidth bytes from the offset and to run to
// the end of the width. If there is no zero byte the elements start at the
// offset. The range is clamped to the end of the image.
func DecodeKeysplit(r *rom.ROM, offset uint32) (int, []byte) {
	if offset >= r.Size() {
		return 0, nil
	}

	n := uint32(KeysplitWidth)
	if r.Size()-offset < n {
		n = r.Size() - offset
	}

	b, _ := r.Slice(offset, n)

	start := 0
	for i, v := range b {
		if v == 0 {
			start = i
			break
		}
	}

	elements := make([]byte, len(b)-start)
	copy(elements, b[start:])

	return start, elements
}

// ResolveKeysplit returns the id of the keysplit table at the offset,
// decoding it if it has not been seen before in this run. The offset must be
// a flattened ROM offset.
func (ctx *Context) ResolveKeysplit(offset uint32) int {
	if id, ok := ctx.keysplitIDs[offset]; ok {
		return id
	}

	ks := &KeysplitTable{
		Offset: offset,
		ID:     ctx.baselines.Keysplits + len(ctx.Keysplits) + 1,
	}
	ks.Start, ks.Elements = DecodeKeysplit(ctx.rom, offset)

	ctx.keysplitIDs[offset] = ks.ID
	ctx.Keysplits = append(ctx.Keysplits, ks)

	logger.Logf(ctx, logTag, "%s at %#07x, %d elements from key %d", ks.Symbol(), offset, len(ks.Elements), ks.Start)

	return ks.ID
}
