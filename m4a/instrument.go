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
	"github.com/m4a2pret/m4a2pret/rom"
	"github.com/m4a2pret/m4a2pret/samples"
	"github.com/m4a2pret/m4a2pret/xref"
)

// reference token namespaces for voicegroups and keysplit tables.
const (
	VoiceGroupNamespace = "vg"
	KeysplitNamespace   = "ks"
)

// SlotLength is the size of an instrument in a voicegroup.
const SlotLength = 12

// Kind of instrument.
type Kind int

// List of valid Kind values.
const (
	DirectSound Kind = iota
	DirectSoundNoResample
	DirectSoundAlt
	Square1
	Square1Alt
	Square2
	Square2Alt
	ProgrammableWave
	ProgrammableWaveAlt
	Noise
	NoiseAlt
	Keysplit
	KeysplitAll
)

// the tag in the first byte of an instrument slot.
var kindTags = map[uint8]Kind{
	0x00: DirectSound,
	0x08: DirectSoundNoResample,
	0x10: DirectSoundAlt,
	0x01: Square1,
	0x09: Square1Alt,
	0x02: Square2,
	0x0a: Square2Alt,
	0x03: ProgrammableWave,
	0x0b: ProgrammableWaveAlt,
	0x04: Noise,
	0x0c: NoiseAlt,
	0x40: Keysplit,
	0x80: KeysplitAll,
}

// the assembler macro for each kind.
var directives = map[Kind]string{
	DirectSound:           "voice_directsound",
	DirectSoundNoResample: "voice_directsound_no_resample",
	DirectSoundAlt:        "voice_directsound_alt",
	Square1:               "voice_square_1",
	Square1Alt:            "voice_square_1_alt",
	Square2:               "voice_square_2",
	Square2Alt:            "voice_square_2_alt",
	ProgrammableWave:      "voice_programmable_wave",
	ProgrammableWaveAlt:   "voice_programmable_wave_alt",
	Noise:                 "voice_noise",
	NoiseAlt:              "voice_noise_alt",
	Keysplit:              "voice_keysplit",
	KeysplitAll:           "voice_keysplit_all",
}

func (k Kind) String() string {
	if d, ok := directives[k]; ok {
		return d
	}
	return "unknown"
}

// IsDirectSound returns true for the three direct sound kinds.
func (k Kind) IsDirectSound() bool {
	return k == DirectSound || k == DirectSoundNoResample || k == DirectSoundAlt
}

// IsProgrammableWave returns true for the two programmable wave kinds.
func (k Kind) IsProgrammableWave() bool {
	return k == ProgrammableWave || k == ProgrammableWaveAlt
}

// IsKeysplit returns true for the two keysplit kinds.
func (k Kind) IsKeysplit() bool {
	return k == Keysplit || k == KeysplitAll
}

// Sentinal error pattern.
const UnknownTag = "m4a: unknown instrument tag (0x%02x)"

// ADSR is the envelope of an instrument.
type ADSR struct {
	Attack  uint8
	Decay   uint8
	Sustain uint8
	Release uint8
}

func (e ADSR) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", e.Attack, e.Decay, e.Sustain, e.Release)
}

// Instrument is a decoded instrument slot. Which fields are meaningful
// depends on the Kind.
type Instrument struct {
	Kind Kind

	// direct sound
	Key uint8
	Pan uint8

	// square and noise channels
	Sweep  uint8
	Duty   uint8
	Period uint8

	// raw pointer to the sample, the waveform or the sub-voicegroup
	Pointer uint32

	// raw pointer to the keysplit table
	Table uint32

	ADSR ADSR
}

// DecodeInstrument decodes a single instrument slot. Pointers are not
// checked.
func DecodeInstrument(b []byte) (Instrument, error) {
	if len(b) < SlotLength {
		return Instrument{}, curated.Errorf("m4a: short instrument slot (%d bytes)", len(b))
	}

	kind, ok := kindTags[b[0]]
	if !ok {
		return Instrument{}, curated.Errorf(UnknownTag, b[0])
	}

	ins := Instrument{Kind: kind}
	adsr := ADSR{Attack: b[8], Decay: b[9], Sustain: b[10], Release: b[11]}

	switch kind {
	case DirectSound, DirectSoundNoResample, DirectSoundAlt:
		ins.Key = b[1]
		if b[3]&0x80 == 0x80 {
			ins.Pan = b[3] & 0x7f
		}
		ins.Pointer = binary.LittleEndian.Uint32(b[4:])
		ins.ADSR = adsr

	case Square1, Square1Alt:
		ins.Sweep = b[3]
		ins.Duty = b[4]
		ins.ADSR = adsr

	case Square2, Square2Alt:
		ins.Duty = b[4]
		ins.ADSR = adsr

	case ProgrammableWave, ProgrammableWaveAlt:
		ins.Pointer = binary.LittleEndian.Uint32(b[4:])
		ins.ADSR = adsr

	case Noise, NoiseAlt:
		ins.Period = b[4]
		ins.ADSR = adsr

	case Keysplit:
		ins.Pointer = binary.LittleEndian.Uint32(b[4:])
		ins.Table = binary.LittleEndian.Uint32(b[8:])

	case KeysplitAll:
		ins.Pointer = binary.LittleEndian.Uint32(b[4:])
	}

	return ins, nil
}

// Sample returns the sample used by a direct sound or programmable wave
// instrument. The second return value is false for other kinds.
func (ins Instrument) Sample() (samples.Sample, bool) {
	switch {
	case ins.Kind.IsDirectSound():
		return samples.Sample{Offset: rom.Flatten(ins.Pointer), Kind: samples.DirectSound}, true
	case ins.Kind.IsProgrammableWave():
		return samples.Sample{Offset: rom.Flatten(ins.Pointer), Kind: samples.ProgrammableWave}, true
	}
	return samples.Sample{}, false
}

// Render returns the line of the voicegroup include file for the instrument.
// Voicegroups and keysplit tables are written as reference tokens.
func (ins Instrument) Render() string {
	d := ins.Kind.String()

	switch ins.Kind {
	case DirectSound, DirectSoundNoResample, DirectSoundAlt:
		s, _ := ins.Sample()
		return fmt.Sprintf("\t%s %d, %d, %s, %s", d, ins.Key, ins.Pan, s.Symbol(), ins.ADSR)
	case Square1, Square1Alt:
		return fmt.Sprintf("\t%s %d, %d, %s", d, ins.Sweep, ins.Duty, ins.ADSR)
	case Square2, Square2Alt:
		return fmt.Sprintf("\t%s %d, %s", d, ins.Duty, ins.ADSR)
	case ProgrammableWave, ProgrammableWaveAlt:
		s, _ := ins.Sample()
		return fmt.Sprintf("\t%s %s, %s", d, s.Symbol(), ins.ADSR)
	case Noise, NoiseAlt:
		return fmt.Sprintf("\t%s %d, %s", d, ins.Period, ins.ADSR)
	case Keysplit:
		return fmt.Sprintf("\t%s %s, %s", d,
			xref.Token(VoiceGroupNamespace, rom.Flatten(ins.Pointer)),
			xref.Token(KeysplitNamespace, rom.Flatten(ins.Table)))
	case KeysplitAll:
		return fmt.Sprintf("\t%s %s", d, xref.Token(VoiceGroupNamespace, rom.Flatten(ins.Pointer)))
	}

	return ""
}

// Placeholder returns the comment line used in place of an instrument that
// could not be decoded.
func Placeholder(slot int, reason string, raw uint32) string {
	return fmt.Sprintf("\t@ voice %d: %s (0x%x)", slot, reason, raw)
}
