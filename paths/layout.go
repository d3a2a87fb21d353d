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

package paths

import (
	"fmt"
	"path"
	"path/filepath"
)

// files in the target tree.
const (
	SongTable            = "sound/song_table.inc"
	SongConstants        = "include/constants/songs.h"
	VoiceGroups          = "sound/voice_groups.inc"
	KeysplitTables       = "sound/keysplit_tables.inc"
	DirectSoundData      = "sound/direct_sound_data.inc"
	ProgrammableWaveData = "sound/programmable_wave_data.inc"
	LdScript             = "ld_script.txt"
	SongsMK              = "songs.mk"
	Readme               = "README.md"
)

// directories in the target tree.
const (
	VoiceGroupDir       = "sound/voicegroups"
	DirectSoundDir      = "sound/direct_sound_samples"
	ProgrammableWaveDir = "sound/programmable_wave_samples"
	MidiDir             = "sound/songs/midi"
)

// Charmaps lists every charmap file that receives song constants. the berry
// fix program has its own copies of the charmap.
var Charmaps = []string{
	"charmap.txt",
	"berry_fix/charmap.txt",
	"berry_fix/payload/charmap.txt",
}

// extensions of the sample files referenced by the generated assembly.
const (
	BinExtension = ".bin"
	PcmExtension = ".pcm"
)

// VoiceGroupFile returns the include file for a numbered voicegroup.
func VoiceGroupFile(id int) string {
	return path.Join(VoiceGroupDir, fmt.Sprintf("voicegroup%03d.inc", id))
}

// DirectSoundSample returns the path of a direct sound sample, named after
// its ROM offset. ext should include the leading dot.
func DirectSoundSample(offset uint32, ext string) string {
	return path.Join(DirectSoundDir, fmt.Sprintf("%x%s", offset, ext))
}

// ProgrammableWaveSample returns the path of a programmable wave sample, named
// after its ROM offset. ext should include the leading dot.
func ProgrammableWaveSample(offset uint32, ext string) string {
	return path.Join(ProgrammableWaveDir, fmt.Sprintf("%x%s", offset, ext))
}

// SongObject returns the linker object for a numbered song.
func SongObject(id int) string {
	return path.Join(MidiDir, fmt.Sprintf("mus_%d.o", id))
}

// SHA1File returns the name of the checksum file of a pret project.
func SHA1File(project string) string {
	return fmt.Sprintf("%s.sha1", project)
}

// Join converts a slash separated relative path to an operating system path
// under root.
func Join(root string, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
