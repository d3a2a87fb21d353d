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
	"os"
	"path/filepath"
	"strconv"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/logger"
	"github.com/m4a2pret/m4a2pret/paths"
	"github.com/m4a2pret/m4a2pret/rom"
)

const logTag = "samples"

// Extractor writes samples from a ROM to the sound directories of an output
// tree. Raw artifacts are kept in a temporary directory until Cleanup() is
// called.
type Extractor struct {
	rom    *rom.ROM
	conv   Converter
	outDir string
	perm   logger.Permission

	tempDir string

	// number of samples converted and the number that failed
	Extracted int
	Failed    int
}

// NewExtractor is the preferred method of initialisation for the Extractor
// type. The perm argument controls logging of individual conversions.
// Failures are always logged.
func NewExtractor(r *rom.ROM, conv Converter, outDir string, perm logger.Permission) (*Extractor, error) {
	tmp, err := os.MkdirTemp("", "m4a2pret_")
	if err != nil {
		return nil, curated.Errorf(SampleError, err)
	}

	return &Extractor{
		rom:     r,
		conv:    conv,
		outDir:  outDir,
		perm:    perm,
		tempDir: tmp,
	}, nil
}

// TempDir returns the directory used for raw artifacts.
func (ex *Extractor) TempDir() string {
	return ex.tempDir
}

// Output returns the path, relative to the output root, of the converted
// sample.
func (ex *Extractor) Output(s Sample) string {
	if s.Kind == ProgrammableWave {
		return paths.ProgrammableWaveSample(s.Offset, paths.PcmExtension)
	}
	return paths.DirectSoundSample(s.Offset, ex.conv.Extension())
}

// Extract a single sample. The error is returned for information and does not
// indicate that the Extractor can no longer be used.
func (ex *Extractor) Extract(s Sample) error {
	b, err := Bytes(ex.rom, s)
	if err != nil {
		return err
	}

	raw := filepath.Join(ex.tempDir, strconv.FormatUint(uint64(s.Offset), 16))
	if err := os.WriteFile(raw, b, 0o644); err != nil {
		return curated.Errorf(SampleError, err)
	}

	out := paths.Join(ex.outDir, ex.Output(s))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return curated.Errorf(SampleError, err)
	}

	return ex.conv.Convert(s.Kind, raw, out)
}

// ExtractAll extracts every sample in the list. Failures are logged and
// counted and do not stop the remaining samples from being extracted.
func (ex *Extractor) ExtractAll(list []Sample) {
	for _, s := range list {
		if err := ex.Extract(s); err != nil {
			ex.Failed++
			logger.Logf(logger.Allow, logTag, "%s: %v", s, err)
			continue
		}
		ex.Extracted++
		logger.Logf(ex.perm, logTag, "%s -> %s", s, ex.Output(s))
	}
}

// Cleanup removes the temporary directory and everything in it.
func (ex *Extractor) Cleanup() error {
	if ex.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(ex.tempDir)
	ex.tempDir = ""
	if err != nil {
		return curated.Errorf(SampleError, err)
	}
	return nil
}
