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
)

// VoiceGroupSlots is the number of instruments in a voicegroup.
const VoiceGroupSlots = 128

// VoiceGroup is a decoded table of instruments.
type VoiceGroup struct {
	Offset uint32
	ID     int

	// one line per instrument slot. lines for keysplit instruments contain
	// reference tokens until the context has been rewritten
	Lines [VoiceGroupSlots]string

	// offsets of the voicegroups and keysplit tables referred to by the
	// keysplit instruments, in slot order. an offset appears once
	SubGroups []uint32
	Keysplits []uint32
}

// Symbol returns the assembler label of the voicegroup.
func (vg *VoiceGroup) Symbol() string {
	return VoiceGroupSymbol(vg.ID)
}

// VoiceGroupSymbol returns the assembler label for a voicegroup id.
func VoiceGroupSymbol(id int) string {
	return fmt.Sprintf("voicegroup%03d", id)
}

// ResolveVoiceGroup returns the id of the voicegroup at the offset, decoding
// it if it has not been seen before in this run. The offset must be a
// flattened ROM offset.
func (ctx *Context) ResolveVoiceGroup(offset uint32) int {
	if id, ok := ctx.voiceGroupIDs[offset]; ok {
		return id
	}

	// the voicegroup is recorded before any slot is decoded. a keysplit that
	// refers back to this voicegroup will find it here
	vg := &VoiceGroup{
		Offset: offset,
		ID:     ctx.baselines.VoiceGroups + len(ctx.VoiceGroups) + 1,
	}
	ctx.voiceGroupIDs[offset] = vg.ID
	ctx.VoiceGroups = append(ctx.VoiceGroups, vg)

	logger.Logf(ctx, logTag, "%s at %#07x", vg.Symbol(), offset)

	for slot := 0; slot < VoiceGroupSlots; slot++ {
		vg.Lines[slot] = ctx.decodeSlot(vg, slot)
	}

	return vg.ID
}

// decodeSlot returns the line for the instrument slot. Any problem with the
// slot results in a placeholder line.
func (ctx *Context) decodeSlot(vg *VoiceGroup, slot int) string {
	offset := vg.Offset + uint32(slot*SlotLength)

	b, err := ctx.rom.Slice(offset, SlotLength)
	if err != nil {
		return ctx.placeholder(vg, slot, "slot past end of image", offset)
	}

	ins, err := DecodeInstrument(b)
	if err != nil {
		return ctx.placeholder(vg, slot, "unknown instrument tag", uint32(b[0]))
	}

	switch {
	case ins.Kind.IsDirectSound():
		if _, err := ctx.rom.Resolve(ins.Pointer); err != nil {
			return ctx.placeholder(vg, slot, "invalid sample pointer", ins.Pointer)
		}
		s, _ := ins.Sample()
		ctx.addSample(s)

	case ins.Kind.IsProgrammableWave():
		if _, err := ctx.rom.Resolve(ins.Pointer); err != nil {
			return ctx.placeholder(vg, slot, "invalid wave pointer", ins.Pointer)
		}
		s, _ := ins.Sample()
		ctx.addSample(s)

	case ins.Kind == Keysplit:
		svg, err := ctx.rom.Resolve(ins.Pointer)
		if err != nil {
			return ctx.placeholder(vg, slot, "invalid voicegroup pointer", ins.Pointer)
		}
		ks, err := ctx.rom.Resolve(ins.Table)
		if err != nil {
			return ctx.placeholder(vg, slot, "invalid keysplit table pointer", ins.Table)
		}
		vg.addSubGroup(svg)
		vg.addKeysplit(ks)
		ctx.ResolveVoiceGroup(svg)
		ctx.ResolveKeysplit(ks)

	case ins.Kind == KeysplitAll:
		svg, err := ctx.rom.Resolve(ins.Pointer)
		if err != nil {
			return ctx.placeholder(vg, slot, "invalid voicegroup pointer", ins.Pointer)
		}
		vg.addSubGroup(svg)
		ctx.ResolveVoiceGroup(svg)
	}

	return ins.Render()
}

func (ctx *Context) placeholder(vg *VoiceGroup, slot int, reason string, raw uint32) string {
	ctx.Placeholders++
	logger.Logf(logger.Allow, logTag, "%s: voice %d: %s (0x%x)", vg.Symbol(), slot, reason, raw)
	return Placeholder(slot, reason, raw)
}

func (vg *VoiceGroup) addSubGroup(offset uint32) {
	for _, o := range vg.SubGroups {
		if o == offset {
			return
		}
	}
	vg.SubGroups = append(vg.SubGroups, offset)
}

func (vg *VoiceGroup) addKeysplit(offset uint32) {
	for _, o := range vg.Keysplits {
		if o == offset {
			return
		}
	}
	vg.Keysplits = append(vg.Keysplits, offset)
}
