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

package output_test

import (
	"encoding/binary"
	"os"
	"strings"
	"testing"

	"github.com/m4a2pret/m4a2pret/m4a"
	"github.com/m4a2pret/m4a2pret/output"
	"github.com/m4a2pret/m4a2pret/paths"
	"github.com/m4a2pret/m4a2pret/rom"
	"github.com/m4a2pret/m4a2pret/samples"
	"github.com/m4a2pret/m4a2pret/test"
)

func TestBuildRule(t *testing.T) {
	s := m4a.Song{ID: 610, Valid: true, VoiceGroupID: 7}
	test.ExpectEquality(t, output.BuildRule(s),
		"$(MID_SUBDIR)/mus_610.s: %.s: %.mid\n\t$(MID) $< $@ -E -G007 -V100")

	s.Header.ReverbRaw = 0xb2
	s.Header.Priority = 5
	test.ExpectEquality(t, output.BuildRule(s),
		"$(MID_SUBDIR)/mus_610.s: %.s: %.mid\n\t$(MID) $< $@ -E -R$(STD_REVERB) -G007 -V100 -P5")

	s.Header.ReverbRaw = 0x32
	s.Header.Priority = 0
	test.ExpectEquality(t, output.BuildRule(s),
		"$(MID_SUBDIR)/mus_610.s: %.s: %.mid\n\t$(MID) $< $@ -E -R$(STD_REVERB) -G007 -V100")

	s.Header.ReverbRaw = 0xbc
	s.VoiceGroupID = 191
	test.ExpectEquality(t, output.BuildRule(s),
		"$(MID_SUBDIR)/mus_610.s: %.s: %.mid\n\t$(MID) $< $@ -E -R60 -G191 -V100")

	// reverb enable bit with a zero level
	s.Header.ReverbRaw = 0x80
	test.ExpectEquality(t, output.BuildRule(s),
		"$(MID_SUBDIR)/mus_610.s: %.s: %.mid\n\t$(MID) $< $@ -E -R0 -G191 -V100")

	s = m4a.Song{ID: 611, Reason: "invalid song header pointer (0x02001000)"}
	test.ExpectEquality(t, output.BuildRule(s), "# mus_611: invalid song header pointer (0x02001000)")
}

func TestSongFragments(t *testing.T) {
	songs := []m4a.Song{
		{ID: 255, LoopStart: 1, LoopEnd: 2},
		{ID: 256, LoopStart: 0, LoopEnd: 0},
	}

	test.ExpectEquality(t, output.SongTable(songs), "\tsong mus_255, 1, 2\n\tsong mus_256, 0, 0\n")
	test.ExpectEquality(t, output.SongConstants(songs), "#define MUS_255 255\n#define MUS_256 256\n")
	test.ExpectEquality(t, output.Charmap(songs), "MUS_255 = ff 00\nMUS_256 = 00 01\n")
	test.ExpectEquality(t, output.LdScript(songs),
		"\t\tsound/songs/midi/mus_255.o(.rodata);\n\t\tsound/songs/midi/mus_256.o(.rodata);\n")
	test.ExpectEquality(t, output.SongsMK(nil), "")
}

func TestKeysplitTables(t *testing.T) {
	tables := []*m4a.KeysplitTable{
		{Offset: 0x100, ID: 6, Start: 36, Elements: []byte{0, 1}},
		{Offset: 0x200, ID: 7, Start: 0, Elements: []byte{2}},
	}
	test.ExpectEquality(t, output.KeysplitTables(tables),
		".set KeySplitTable6, . - 36\n\t.byte 0\n\t.byte 1\n\n.set KeySplitTable7, . - 0\n\t.byte 2\n")
}

func TestSampleData(t *testing.T) {
	l := []samples.Sample{
		{Offset: 0x1dd5a4, Kind: samples.DirectSound},
		{Offset: 0x1de000, Kind: samples.DirectSound},
	}
	test.ExpectEquality(t, output.SampleData(l),
		"\t.align 2\nDirectSoundWaveData_1dd5a4::\n\t.incbin \"sound/direct_sound_samples/1dd5a4.bin\"\n\n"+
			"\t.align 2\nDirectSoundWaveData_1de000::\n\t.incbin \"sound/direct_sound_samples/1de000.bin\"\n")

	l = []samples.Sample{{Offset: 0x1dd0b4, Kind: samples.ProgrammableWave}}
	test.ExpectEquality(t, output.SampleData(l),
		"\t.align 2\nProgrammableWaveData_1dd0b4::\n\t.incbin \"sound/programmable_wave_samples/1dd0b4.pcm\"\n")
}

// image with three songs sharing one voicegroup. the first slot of the
// voicegroup is a keysplit that refers back to the voicegroup.
func image() *rom.ROM {
	data := make([]byte, 0x4000)
	for k := 0; k < 3; k++ {
		hdr := uint32(0x800 + k*8)
		binary.LittleEndian.PutUint32(data[0x100+k*8:], rom.WindowStart|hdr)
		data[hdr+3] = 0xb2
		binary.LittleEndian.PutUint32(data[hdr+4:], rom.WindowStart|0x1000)
	}
	for s := 1; s < m4a.VoiceGroupSlots; s++ {
		copy(data[0x1000+s*m4a.SlotLength:], []byte{0x03, 60, 0, 0, 0x00, 0x30, 0x00, 0x08, 0, 0, 15, 0})
	}
	copy(data[0x1000:], []byte{0x40, 0, 0, 0, 0x00, 0x10, 0x00, 0x08, 0x00, 0x38, 0x00, 0x08})
	for i := 0; i < 24; i++ {
		data[0x3800+i] = 0xff
	}
	return rom.New(data)
}

func TestRender(t *testing.T) {
	ctx := m4a.NewContext(image(), m4a.Baselines{Songs: 100, VoiceGroups: 20, Keysplits: 4})
	test.DemandSuccess(t, ctx.WalkSongTable(0x100, 1, 3, nil))

	// rendering before the rewrite is an error
	_, err := output.Render(ctx)
	test.ExpectFailure(t, err)

	test.DemandSuccess(t, ctx.Rewrite())
	files, err := output.Render(ctx)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, files[paths.SongTable], "\tsong mus_101, 0, 0\n\tsong mus_102, 0, 0\n\tsong mus_103, 0, 0\n")
	test.ExpectEquality(t, strings.Count(files[paths.SongsMK], "-G021"), 3)
	test.ExpectEquality(t, files[paths.VoiceGroups], "\t.include \"sound/voicegroups/voicegroup021.inc\"\n")
	test.ExpectEquality(t, files[paths.KeysplitTables][:27], ".set KeySplitTable5, . - 24")
	test.ExpectEquality(t, files[paths.DirectSoundData], "")
	test.ExpectEquality(t, strings.Count(files[paths.ProgrammableWaveData], "::"), 1)

	vg := files[paths.VoiceGroupFile(21)]
	lines := strings.Split(strings.TrimSuffix(vg, "\n"), "\n")
	test.DemandEquality(t, len(lines), 2+m4a.VoiceGroupSlots)
	test.ExpectEquality(t, lines[0], "\t.align 2")
	test.ExpectEquality(t, lines[1], "voicegroup021:: @ 0x1000")
	test.ExpectEquality(t, lines[2], "\tvoice_keysplit voicegroup021, KeySplitTable5")
	test.ExpectEquality(t, lines[3], "\tvoice_programmable_wave ProgrammableWaveData_3000, 0, 0, 15, 0")

	for _, c := range paths.Charmaps {
		test.ExpectEquality(t, files[c], "MUS_101 = 65 00\nMUS_102 = 66 00\nMUS_103 = 67 00\n")
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	files := output.Files{
		paths.SongTable:         "\tsong mus_1, 0, 0\n",
		paths.VoiceGroupFile(1): "\t.align 2\n",
		"berry_fix/charmap.txt": "MUS_1 = 01 00\n",
	}
	test.ExpectEquality(t, files.Paths()[0], "berry_fix/charmap.txt")
	test.DemandSuccess(t, files.Write(dir))

	b, err := os.ReadFile(paths.Join(dir, paths.VoiceGroupFile(1)))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "\t.align 2\n")

	b, err = os.ReadFile(paths.Join(dir, "berry_fix/charmap.txt"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "MUS_1 = 01 00\n")
}
