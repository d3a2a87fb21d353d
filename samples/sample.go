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

package samples

import (
	"encoding/binary"
	"fmt"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/paths"
	"github.com/m4a2pret/m4a2pret/rom"
)

// Kind of sample.
type Kind int

// List of valid Kind values.
const (
	DirectSound Kind = iota
	ProgrammableWave
)

func (k Kind) String() string {
	switch k {
	case DirectSound:
		return "direct sound"
	case ProgrammableWave:
		return "programmable wave"
	}
	return "unknown"
}

// layout of sample data.
const (
	HeaderLength = 0x10
	WaveLength   = 16

	pitchOffset  = 0x04
	loopOffset   = 0x08
	lengthOffset = 0x0c
)

// LoopFlag is set in the flags field of a direct sound header when the sample
// loops back to LoopStart after the last sample.
const LoopFlag = 0x40000000

// DefaultRate is used for direct sound samples that have a zero pitch field.
const DefaultRate = 13379

// Sentinal error pattern.
const SampleError = "samples: %v"

// Sample is a reference to sample data in the ROM. Samples are identified by
// their offset.
type Sample struct {
	Offset uint32
	Kind   Kind
}

func (s Sample) String() string {
	return fmt.Sprintf("%s sample at %#07x", s.Kind, s.Offset)
}

// Symbol returns the assembler label of the sample data.
func (s Sample) Symbol() string {
	if s.Kind == ProgrammableWave {
		return fmt.Sprintf("ProgrammableWaveData_%x", s.Offset)
	}
	return fmt.Sprintf("DirectSoundWaveData_%x", s.Offset)
}

// Include returns the path in the pret tree that the assembly includes for
// this sample.
func (s Sample) Include() string {
	if s.Kind == ProgrammableWave {
		return paths.ProgrammableWaveSample(s.Offset, paths.PcmExtension)
	}
	return paths.DirectSoundSample(s.Offset, paths.BinExtension)
}

// Header of a direct sound sample.
type Header struct {
	Flags     uint32
	Pitch     uint32
	LoopStart uint32
	Length    uint32
}

// ParseHeader decodes the first HeaderLength bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderLength {
		return Header{}, curated.Errorf(SampleError, fmt.Sprintf("short header (%d bytes)", len(b)))
	}
	return Header{
		Flags:     binary.LittleEndian.Uint32(b),
		Pitch:     binary.LittleEndian.Uint32(b[pitchOffset:]),
		LoopStart: binary.LittleEndian.Uint32(b[loopOffset:]),
		Length:    binary.LittleEndian.Uint32(b[lengthOffset:]),
	}, nil
}

// Looped returns true if the sample has a loop point.
func (h Header) Looped() bool {
	return h.Flags&LoopFlag == LoopFlag
}

// Rate returns the playback rate of the sample in Hz.
func (h Header) Rate() int {
	r := int(h.Pitch / 1024)
	if r == 0 {
		return DefaultRate
	}
	return r
}

// Bytes returns the raw bytes of the sample. The length of a direct sound
// sample is clamped to the end of the image.
func Bytes(r *rom.ROM, s Sample) ([]byte, error) {
	switch s.Kind {
	case ProgrammableWave:
		b, err := r.Slice(s.Offset, WaveLength)
		if err != nil {
			return nil, curated.Errorf(SampleError, err)
		}
		return b, nil

	case DirectSound:
		b, err := r.Slice(s.Offset, HeaderLength)
		if err != nil {
			return nil, curated.Errorf(SampleError, err)
		}
		h, _ := ParseHeader(b)

		n := uint64(HeaderLength) + uint64(h.Length)
		if uint64(s.Offset)+n > uint64(r.Size()) {
			n = uint64(r.Size() - s.Offset)
		}

		b, err = r.Slice(s.Offset, uint32(n))
		if err != nil {
			return nil, curated.Errorf(SampleError, err)
		}
		return b, nil
	}

	return nil, curated.Errorf(SampleError, fmt.Sprintf("unknown kind (%d)", s.Kind))
}
