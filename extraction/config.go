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

package extraction

import (
	"fmt"
	"io"

	"github.com/m4a2pret/m4a2pret/m4a"
	"github.com/m4a2pret/m4a2pret/pret"
	"github.com/m4a2pret/m4a2pret/samples"
)

// Config for a single extraction run.
type Config struct {
	// filename or URL of the ROM
	ROMFile string

	// offset of the song table. zero means that the offset is taken from the
	// version table
	TableOffset uint32

	// one based, inclusive window of the song table to extract
	Min int
	Max int

	// baselines for id allocation. ignored if PretDir is set
	Baselines m4a.Baselines

	// pret tree to take the baselines from
	PretDir string

	// directory to write to. a unique name in the current directory is used
	// if this is empty
	OutputDir string

	// sample converter. the WAV converter is used if this is nil
	Converter samples.Converter

	// called after each song with the percentage of songs completed
	Progress func(percent int)

	// log every decoded entity
	Verbose bool

	// the pointer graph of the run is written here if it is not nil
	Graph io.Writer
}

// NewConfig returns a Config that extracts every song of the ROM.
func NewConfig(romFile string) Config {
	return Config{
		ROMFile: romFile,
		Min:     1,
		Max:     m4a.MaxSongs,
	}
}

// Report summarises an extraction run.
type Report struct {
	// short name and SHA-1 of the ROM
	ROM  string
	Hash string

	// name of the game. empty if the game is unknown
	Game string

	TableOffset uint32
	Baselines   m4a.Baselines

	// project of the pret tree the baselines were taken from and whether the
	// ROM is the one the project builds
	Project      string
	ProjectMatch bool

	Songs        int
	InvalidSongs int
	VoiceGroups  int
	Keysplits    int
	Placeholders int

	DirectSound      int
	ProgrammableWave int
	Extracted        int
	FailedSamples    int

	OutputDir string
	Files     []string

	tree *pret.Tree
}

func (rep Report) String() string {
	game := rep.Game
	if game == "" {
		game = "unknown game"
	}
	return fmt.Sprintf("%s (%s): %d songs (%d invalid), %d voicegroups, %d keysplit tables, %d samples (%d failed) -> %s",
		rep.ROM, game, rep.Songs, rep.InvalidSongs, rep.VoiceGroups, rep.Keysplits,
		rep.DirectSound+rep.ProgrammableWave, rep.FailedSamples, rep.OutputDir)
}
