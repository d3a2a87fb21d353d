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
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/shlex"

	"github.com/m4a2pret/m4a2pret/curated"
)

// Converter writes the file for a sample in the pret tree from the raw bytes
// of the sample.
type Converter interface {
	// the file extension (including the leading dot) of converted direct
	// sound samples
	Extension() string

	// convert the raw sample data in the file named by the in argument and
	// write the result to the file named by the out argument
	Convert(kind Kind, in string, out string) error
}

// the converters by name.
const (
	ConverterWAV  = "wav"
	ConverterRaw  = "raw"
	ConverterExec = "exec"
)

// ConverterNames lists the names accepted by NewConverter().
var ConverterNames = []string{ConverterWAV, ConverterRaw, ConverterExec}

// NewConverter returns the named converter. The command argument is the
// command template of the exec converter and is ignored otherwise.
func NewConverter(name string, command string) (Converter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ConverterWAV:
		return WAVConverter{}, nil
	case ConverterRaw:
		return RawConverter{}, nil
	case ConverterExec:
		cv, err := NewExecConverter(command)
		if err != nil {
			return nil, err
		}
		return cv, nil
	}
	return nil, curated.Errorf(SampleError, fmt.Sprintf("unknown converter (%s)", name))
}

// RawConverter copies the raw bytes unchanged.
type RawConverter struct{}

// Extension implements the Converter interface.
func (RawConverter) Extension() string {
	return ".bin"
}

// Convert implements the Converter interface.
func (RawConverter) Convert(_ Kind, in string, out string) error {
	return copyFile(in, out)
}

// WAVConverter writes direct sound samples as 8-bit mono WAV files. The loop
// point of a looped sample is written to a smpl chunk.
type WAVConverter struct{}

// Extension implements the Converter interface.
func (WAVConverter) Extension() string {
	return ".wav"
}

// Convert implements the Converter interface.
func (WAVConverter) Convert(kind Kind, in string, out string) error {
	if kind != DirectSound {
		return copyFile(in, out)
	}

	b, err := os.ReadFile(in)
	if err != nil {
		return curated.Errorf(SampleError, err)
	}

	h, err := ParseHeader(b)
	if err != nil {
		return err
	}

	// GBA PCM is signed and 8-bit WAV is unsigned
	pcm := b[HeaderLength:]
	buf := &audio.IntBuffer{
		Data:           make([]int, len(pcm)),
		Format:         &audio.Format{SampleRate: h.Rate(), NumChannels: 1},
		SourceBitDepth: 8,
	}
	for i, v := range pcm {
		buf.Data[i] = int(int8(v)) + 128
	}

	f, err := os.Create(out)
	if err != nil {
		return curated.Errorf(SampleError, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, h.Rate(), 8, 1, 1)
	if err := enc.Write(buf); err != nil {
		return curated.Errorf(SampleError, err)
	}
	if h.Looped() {
		if err := writeLoop(enc, h, len(pcm)); err != nil {
			return curated.Errorf(SampleError, err)
		}
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(SampleError, err)
	}

	return nil
}

// length of a smpl chunk with a single loop.
const smplLength = 36 + 24

// writeLoop adds a smpl chunk describing a forward loop from the loop start of
// the header to the last frame. the chunk follows the data chunk, which must
// be padded to an even length first. the encoder fixes the RIFF size on Close().
func writeLoop(enc *wav.Encoder, h Header, frames int) error {
	if frames%2 == 1 {
		if err := enc.AddLE(uint8(0)); err != nil {
			return err
		}
	}

	end := uint32(0)
	if frames > 0 {
		end = uint32(frames - 1)
	}

	fields := []interface{}{
		uint32(0),                     // manufacturer
		uint32(0),                     // product
		uint32(1000000000 / h.Rate()), // sample period (ns)
		uint32(60),                    // unity note
		uint32(0),                     // pitch fraction
		uint32(0),                     // smpte format
		uint32(0),                     // smpte offset
		uint32(1),                     // number of loops
		uint32(0),                     // sampler data
		uint32(0),                     // cue point id
		uint32(0),                     // loop type: forward
		h.LoopStart,                   // start
		end,                           // end
		uint32(0),                     // fraction
		uint32(0),                     // play count: infinite
	}

	if err := enc.AddBE(wav.CIDSmpl); err != nil {
		return err
	}
	if err := enc.AddLE(uint32(smplLength)); err != nil {
		return err
	}
	for _, v := range fields {
		if err := enc.AddLE(v); err != nil {
			return err
		}
	}

	return nil
}

// ExecConverter runs an external program for each direct sound sample.
type ExecConverter struct {
	// program and arguments. the placeholders {in} and {out} are replaced by
	// the input and output filenames
	args []string

	ext string
}

// the file extension used by the exec converter if the command template has
// no {ext:...} argument.
const defaultExecExtension = ".aif"

// NewExecConverter parses the command template. The template is split into
// arguments with shell quoting rules. For example:
//
//	aif2pcm {in} {out}
//	sox -t raw -r 13379 -e signed -b 8 {in} {out} {ext:.wav}
//
// An argument of the form {ext:.xxx} sets the extension of the output file and
// is removed from the command.
func NewExecConverter(command string) (ExecConverter, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return ExecConverter{}, curated.Errorf(SampleError, err)
	}

	cv := ExecConverter{ext: defaultExecExtension}

	var hasIn, hasOut bool
	for _, a := range args {
		if strings.HasPrefix(a, "{ext:") && strings.HasSuffix(a, "}") {
			cv.ext = strings.TrimSuffix(strings.TrimPrefix(a, "{ext:"), "}")
			continue
		}
		hasIn = hasIn || strings.Contains(a, "{in}")
		hasOut = hasOut || strings.Contains(a, "{out}")
		cv.args = append(cv.args, a)
	}

	if len(cv.args) == 0 {
		return ExecConverter{}, curated.Errorf(SampleError, "empty converter command")
	}
	if !hasIn || !hasOut {
		return ExecConverter{}, curated.Errorf(SampleError, "converter command needs {in} and {out}")
	}

	return cv, nil
}

// Extension implements the Converter interface.
func (cv ExecConverter) Extension() string {
	return cv.ext
}

// Command returns the program and arguments for the input and output files.
func (cv ExecConverter) Command(in string, out string) []string {
	r := strings.NewReplacer("{in}", in, "{out}", out)
	c := make([]string, len(cv.args))
	for i, a := range cv.args {
		c[i] = r.Replace(a)
	}
	return c
}

// Convert implements the Converter interface.
func (cv ExecConverter) Convert(kind Kind, in string, out string) error {
	if kind != DirectSound {
		return copyFile(in, out)
	}

	c := cv.Command(in, out)
	cmd := exec.Command(c[0], c[1:]...)
	msg, err := cmd.CombinedOutput()
	if err != nil {
		return curated.Errorf(SampleError, fmt.Errorf("%s: %w: %s", c[0], err, strings.TrimSpace(string(msg))))
	}

	return nil
}

func copyFile(in string, out string) error {
	b, err := os.ReadFile(in)
	if err != nil {
		return curated.Errorf(SampleError, err)
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return curated.Errorf(SampleError, err)
	}
	return nil
}
