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

package output

import (
	"fmt"
	"strings"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/m4a"
	"github.com/m4a2pret/m4a2pret/paths"
	"github.com/m4a2pret/m4a2pret/samples"
	"github.com/m4a2pret/m4a2pret/xref"
)

// Sentinal error pattern.
const OutputError = "output: %v"

// reverb values are masked before use. the standard reverb has its own make
// variable in the pret build.
const (
	reverbMask = 0x7f
	stdReverb  = 50
)

// Render produces the text of every output file. The context should have been
// rewritten. Voicegroup lines that still contain reference tokens are an
// error.
func Render(ctx *m4a.Context) (Files, error) {
	f := make(Files)

	f[paths.SongTable] = SongTable(ctx.Songs)
	f[paths.SongConstants] = SongConstants(ctx.Songs)
	for _, c := range paths.Charmaps {
		f[c] = Charmap(ctx.Songs)
	}
	f[paths.LdScript] = LdScript(ctx.Songs)
	f[paths.SongsMK] = SongsMK(ctx.Songs)

	for _, vg := range ctx.VoiceGroups {
		s := VoiceGroup(vg)
		if xref.HasTokens(s) {
			return nil, curated.Errorf(OutputError, fmt.Sprintf("%s has unresolved references", vg.Symbol()))
		}
		f[paths.VoiceGroupFile(vg.ID)] = s
	}
	f[paths.VoiceGroups] = VoiceGroupIncludes(ctx.VoiceGroups)
	f[paths.KeysplitTables] = KeysplitTables(ctx.Keysplits)
	f[paths.DirectSoundData] = SampleData(ctx.DirectSoundSamples())
	f[paths.ProgrammableWaveData] = SampleData(ctx.WaveSamples())

	return f, nil
}

// SongTable renders the song table entries.
func SongTable(songs []m4a.Song) string {
	s := &strings.Builder{}
	for _, sng := range songs {
		fmt.Fprintf(s, "\tsong %s, %d, %d\n", sng.Symbol(), sng.LoopStart, sng.LoopEnd)
	}
	return s.String()
}

// SongConstants renders the song id definitions.
func SongConstants(songs []m4a.Song) string {
	s := &strings.Builder{}
	for _, sng := range songs {
		fmt.Fprintf(s, "#define MUS_%d %d\n", sng.ID, sng.ID)
	}
	return s.String()
}

// Charmap renders the song ids as little-endian byte pairs.
func Charmap(songs []m4a.Song) string {
	s := &strings.Builder{}
	for _, sng := range songs {
		fmt.Fprintf(s, "MUS_%d = %02x %02x\n", sng.ID, sng.ID&0xff, (sng.ID>>8)&0xff)
	}
	return s.String()
}

// LdScript renders the linker script entries.
func LdScript(songs []m4a.Song) string {
	s := &strings.Builder{}
	for _, sng := range songs {
		fmt.Fprintf(s, "\t\t%s(.rodata);\n", paths.SongObject(sng.ID))
	}
	return s.String()
}

// SongsMK renders the build rules of every song, separated by blank lines.
func SongsMK(songs []m4a.Song) string {
	r := make([]string, 0, len(songs))
	for _, sng := range songs {
		r = append(r, BuildRule(sng))
	}
	if len(r) == 0 {
		return ""
	}
	return strings.Join(r, "\n\n") + "\n"
}

// BuildRule renders the rule that builds the assembly for a song from its
// MIDI file. The rule for an invalid song is a comment.
func BuildRule(sng m4a.Song) string {
	if !sng.Valid {
		return fmt.Sprintf("# %s: %s", sng.Symbol(), sng.Reason)
	}

	s := &strings.Builder{}
	fmt.Fprintf(s, "$(MID_SUBDIR)/%s.s: %%.s: %%.mid\n", sng.Symbol())
	s.WriteString("\t$(MID) $< $@ -E")

	rv := sng.Header.ReverbRaw & reverbMask
	switch {
	case rv == stdReverb:
		s.WriteString(" -R$(STD_REVERB)")
	case sng.Header.ReverbRaw != 0:
		fmt.Fprintf(s, " -R%d", rv)
	}

	fmt.Fprintf(s, " -G%03d -V100", sng.VoiceGroupID)

	if sng.Header.Priority != 0 {
		fmt.Fprintf(s, " -P%d", sng.Header.Priority)
	}

	return s.String()
}

// VoiceGroup renders the include file of a voicegroup.
func VoiceGroup(vg *m4a.VoiceGroup) string {
	s := &strings.Builder{}
	s.WriteString("\t.align 2\n")
	fmt.Fprintf(s, "%s:: @ 0x%x\n", vg.Symbol(), vg.Offset)
	for _, l := range vg.Lines {
		s.WriteString(l)
		s.WriteString("\n")
	}
	return s.String()
}

// VoiceGroupIncludes renders the include directives for the voicegroup files
// in id order.
func VoiceGroupIncludes(vgs []*m4a.VoiceGroup) string {
	s := &strings.Builder{}
	for _, vg := range vgs {
		fmt.Fprintf(s, "\t.include \"%s\"\n", paths.VoiceGroupFile(vg.ID))
	}
	return s.String()
}

// KeysplitTables renders the keysplit tables. The label of each table is
// placed before its first element so that the element for key k is at the
// label plus k.
func KeysplitTables(tables []*m4a.KeysplitTable) string {
	s := &strings.Builder{}
	for i, ks := range tables {
		if i > 0 {
			s.WriteString("\n")
		}
		fmt.Fprintf(s, ".set %s, . - %d\n", ks.Symbol(), ks.Start)
		for _, e := range ks.Elements {
			fmt.Fprintf(s, "\t.byte %d\n", e)
		}
	}
	return s.String()
}

// SampleData renders the data labels and include directives for samples.
func SampleData(list []samples.Sample) string {
	s := &strings.Builder{}
	for i, smp := range list {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString("\t.align 2\n")
		fmt.Fprintf(s, "%s::\n", smp.Symbol())
		fmt.Fprintf(s, "\t.incbin \"%s\"\n", smp.Include())
	}
	return s.String()
}
