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
	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/logger"
	"github.com/m4a2pret/m4a2pret/m4a"
	"github.com/m4a2pret/m4a2pret/output"
	"github.com/m4a2pret/m4a2pret/paths"
	"github.com/m4a2pret/m4a2pret/pret"
	"github.com/m4a2pret/m4a2pret/rom"
	"github.com/m4a2pret/m4a2pret/romloader"
	"github.com/m4a2pret/m4a2pret/samples"
)

const logTag = "extraction"

// Sentinal error patterns.
const (
	UnsupportedROM  = "extraction: unsupported ROM (%s) and no song table offset given"
	NoSongTable     = "extraction: no song table found for %s"
	ExtractionError = "extraction: %v"
)

// prefix of the default output directory.
const defaultOutputPrefix = "music_data"

// Run loads the ROM named in the configuration and extracts from it.
func Run(cfg Config) (Report, error) {
	ld := romloader.NewLoader(cfg.ROMFile)
	if err := ld.Load(); err != nil {
		return Report{}, err
	}

	logger.Logf(logger.Allow, logTag, "loaded %s (%d bytes, sha1 %s)", ld.ShortName(), len(ld.Data), ld.Hash)

	if cfg.OutputDir == "" {
		cfg.OutputDir = paths.UniqueFilename(defaultOutputPrefix, ld.ShortName())
	}

	rep, err := Extract(rom.New(ld.Data), cfg)
	rep.ROM = ld.ShortName()
	rep.Hash = ld.Hash
	if err != nil {
		return rep, err
	}

	if rep.tree != nil && rep.tree.Project != "" {
		rep.ProjectMatch = rep.tree.MatchesROM(ld.Hash)
		if !rep.ProjectMatch {
			logger.Logf(logger.Allow, logTag, "ROM is not the one built by %s", rep.tree.Project)
		}
	}

	return rep, nil
}

// Extract from a ROM that has already been loaded.
func Extract(r *rom.ROM, cfg Config) (Report, error) {
	rep := Report{OutputDir: cfg.OutputDir}

	// fatal checks. nothing has been written yet
	ver, known := romloader.Fingerprint(r)
	if known {
		rep.Game = ver.Name
		logger.Logf(logger.Allow, logTag, "game is %s", ver.Name)
	}

	rep.TableOffset = cfg.TableOffset
	if rep.TableOffset == 0 {
		if !known {
			return rep, curated.Errorf(UnsupportedROM, ver.Code)
		}
		off, ok := ver.SongTable(r)
		if !ok {
			return rep, curated.Errorf(NoSongTable, ver.Name)
		}
		rep.TableOffset = off
	}

	rep.Baselines = cfg.Baselines
	if cfg.PretDir != "" {
		tr, err := pret.Inspect(cfg.PretDir)
		if err != nil {
			return rep, curated.Errorf(ExtractionError, err)
		}
		logger.Logf(logger.Allow, logTag, "%s", tr)
		rep.Baselines = tr.Baselines()
		rep.Project = tr.Project
		rep.tree = &tr
	}

	if rep.OutputDir == "" {
		rep.OutputDir = paths.UniqueFilename(defaultOutputPrefix, "")
	}

	conv := cfg.Converter
	if conv == nil {
		conv = samples.WAVConverter{}
	}

	// decode
	ctx := m4a.NewContext(r, rep.Baselines)
	ctx.Verbose = cfg.Verbose

	if err := ctx.WalkSongTable(rep.TableOffset, cfg.Min, cfg.Max, cfg.Progress); err != nil {
		return rep, curated.Errorf(ExtractionError, err)
	}
	if err := ctx.Rewrite(); err != nil {
		return rep, curated.Errorf(ExtractionError, err)
	}

	files, err := output.Render(ctx)
	if err != nil {
		return rep, curated.Errorf(ExtractionError, err)
	}

	rep.Songs = len(ctx.Songs)
	for _, s := range ctx.Songs {
		if !s.Valid {
			rep.InvalidSongs++
		}
	}
	rep.VoiceGroups = len(ctx.VoiceGroups)
	rep.Keysplits = len(ctx.Keysplits)
	rep.Placeholders = ctx.Placeholders
	rep.DirectSound = len(ctx.DirectSoundSamples())
	rep.ProgrammableWave = len(ctx.WaveSamples())

	if cfg.Graph != nil {
		ctx.WriteGraph(cfg.Graph)
	}

	// the extractor is the last thing that can fail before the output tree is
	// touched
	ex, err := samples.NewExtractor(r, conv, rep.OutputDir, ctx)
	if err != nil {
		return rep, curated.Errorf(ExtractionError, err)
	}
	defer func() {
		if err := ex.Cleanup(); err != nil {
			logger.Log(logger.Allow, logTag, err.Error())
		}
	}()

	// write
	if err := files.Write(rep.OutputDir); err != nil {
		return rep, curated.Errorf(ExtractionError, err)
	}
	rep.Files = files.Paths()

	ex.ExtractAll(ctx.Samples)
	rep.Extracted = ex.Extracted
	rep.FailedSamples = ex.Failed

	logger.Logf(logger.Allow, logTag, "%d songs, %d voicegroups, %d keysplit tables, %d samples", rep.Songs, rep.VoiceGroups, rep.Keysplits, len(ctx.Samples))

	return rep, nil
}
