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
	"github.com/m4a2pret/m4a2pret/rom"
	"github.com/m4a2pret/m4a2pret/samples"
)

const logTag = "m4a"

// Sentinal error patterns.
const (
	TableOutOfBounds = "m4a: song table offset %#07x is outside of the image"
)

// Baselines are the number of songs, voicegroups and keysplit tables already
// in the target tree. Newly discovered entities are numbered from the
// baseline plus one.
type Baselines struct {
	Songs       int
	VoiceGroups int
	Keysplits   int
}

// Context holds the state of a single extraction run. A Context must not be
// reused for a second run.
type Context struct {
	rom       *rom.ROM
	baselines Baselines

	// log every decoded entity. problems are always logged
	Verbose bool

	// songs in the order they were walked
	Songs []Song

	// voicegroups and keysplit tables in id order
	VoiceGroups []*VoiceGroup
	Keysplits   []*KeysplitTable

	// unique samples in the order they were discovered
	Samples []samples.Sample

	// number of instrument slots that could not be decoded
	Placeholders int

	voiceGroupIDs map[uint32]int
	keysplitIDs   map[uint32]int
	sampleSeen    map[samples.Sample]bool
}

// NewContext is the preferred method of initialisation for the Context type.
func NewContext(r *rom.ROM, baselines Baselines) *Context {
	return &Context{
		rom:           r,
		baselines:     baselines,
		voiceGroupIDs: make(map[uint32]int),
		keysplitIDs:   make(map[uint32]int),
		sampleSeen:    make(map[samples.Sample]bool),
	}
}

// AllowLogging implements the logger.Permission interface.
func (ctx *Context) AllowLogging() bool {
	return ctx.Verbose
}

// ROM returns the image being decoded.
func (ctx *Context) ROM() *rom.ROM {
	return ctx.rom
}

// Baselines returns the baselines of the run.
func (ctx *Context) Baselines() Baselines {
	return ctx.baselines
}

// VoiceGroupID returns the id of the voicegroup at the offset. The second
// return value is false if the voicegroup has not been discovered.
func (ctx *Context) VoiceGroupID(offset uint32) (int, bool) {
	id, ok := ctx.voiceGroupIDs[offset]
	return id, ok
}

// KeysplitID returns the id of the keysplit table at the offset. The second
// return value is false if the table has not been discovered.
func (ctx *Context) KeysplitID(offset uint32) (int, bool) {
	id, ok := ctx.keysplitIDs[offset]
	return id, ok
}

// addSample adds the sample to the list of samples if it has not been seen
// before.
func (ctx *Context) addSample(s samples.Sample) {
	if ctx.sampleSeen[s] {
		return
	}
	ctx.sampleSeen[s] = true
	ctx.Samples = append(ctx.Samples, s)
}

// DirectSoundSamples returns the direct sound samples in discovery order.
func (ctx *Context) DirectSoundSamples() []samples.Sample {
	return ctx.samplesOfKind(samples.DirectSound)
}

// WaveSamples returns the programmable wave samples in discovery order.
func (ctx *Context) WaveSamples() []samples.Sample {
	return ctx.samplesOfKind(samples.ProgrammableWave)
}

func (ctx *Context) samplesOfKind(k samples.Kind) []samples.Sample {
	l := make([]samples.Sample, 0, len(ctx.Samples))
	for _, s := range ctx.Samples {
		if s.Kind == k {
			l = append(l, s)
		}
	}
	return l
}
