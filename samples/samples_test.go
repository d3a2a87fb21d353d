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

package samples_test

import (
	"encoding/binary"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/logger"
	"github.com/m4a2pret/m4a2pret/paths"
	"github.com/m4a2pret/m4a2pret/rom"
	"github.com/m4a2pret/m4a2pret/samples"
	"github.com/m4a2pret/m4a2pret/test"
)

const (
	dsOffset   = 0x100
	waveOffset = 0x200
	pcmLength  = 24
)

// image with one direct sound sample and one programmable wave.
func image(pitch uint32) *rom.ROM {
	data := make([]byte, 0x400)
	binary.LittleEndian.PutUint32(data[dsOffset+0x04:], pitch)
	binary.LittleEndian.PutUint32(data[dsOffset+0x0c:], pcmLength)
	for i := 0; i < pcmLength; i++ {
		data[dsOffset+samples.HeaderLength+i] = byte(i * 10)
	}
	for i := 0; i < samples.WaveLength; i++ {
		data[waveOffset+i] = byte(0xf0 | i)
	}
	return rom.New(data)
}

func TestSymbols(t *testing.T) {
	ds := samples.Sample{Offset: 0x1dd5a4, Kind: samples.DirectSound}
	test.ExpectEquality(t, ds.Symbol(), "DirectSoundWaveData_1dd5a4")
	test.ExpectEquality(t, ds.Include(), "sound/direct_sound_samples/1dd5a4.bin")

	pw := samples.Sample{Offset: 0x1dd0b4, Kind: samples.ProgrammableWave}
	test.ExpectEquality(t, pw.Symbol(), "ProgrammableWaveData_1dd0b4")
	test.ExpectEquality(t, pw.Include(), "sound/programmable_wave_samples/1dd0b4.pcm")
}

func TestHeader(t *testing.T) {
	r := image(13379 * 1024)
	b, err := samples.Bytes(r, samples.Sample{Offset: dsOffset, Kind: samples.DirectSound})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(b), samples.HeaderLength+pcmLength)

	h, err := samples.ParseHeader(b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, h.Length, uint32(pcmLength))
	test.ExpectEquality(t, h.Rate(), 13379)

	h.Pitch = 0
	test.ExpectEquality(t, h.Rate(), samples.DefaultRate)

	_, err = samples.ParseHeader(b[:4])
	test.ExpectFailure(t, err)
}

func TestLengthClamped(t *testing.T) {
	data := make([]byte, 0x40)
	binary.LittleEndian.PutUint32(data[0x10+0x0c:], 0xffffffff)
	b, err := samples.Bytes(rom.New(data), samples.Sample{Offset: 0x10, Kind: samples.DirectSound})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(b), 0x30)

	_, err = samples.Bytes(rom.New(data), samples.Sample{Offset: 0x38, Kind: samples.DirectSound})
	test.ExpectSuccess(t, curated.Is(err, samples.SampleError))
}

func TestWave(t *testing.T) {
	b, err := samples.Bytes(image(0), samples.Sample{Offset: waveOffset, Kind: samples.ProgrammableWave})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(b), samples.WaveLength)
	test.ExpectEquality(t, b[15], uint8(0xff))
}

func TestNewConverter(t *testing.T) {
	cv, err := samples.NewConverter("", "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cv.Extension(), ".wav")

	cv, err = samples.NewConverter("RAW", "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cv.Extension(), ".bin")

	_, err = samples.NewConverter("mp3", "")
	test.ExpectFailure(t, err)

	_, err = samples.NewConverter("exec", "")
	test.ExpectFailure(t, err)
}

func TestExecTemplate(t *testing.T) {
	cv, err := samples.NewExecConverter(`aif2pcm "{in}" {out}`)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cv.Extension(), ".aif")

	c := cv.Command("/tmp/a b", "/out/c.aif")
	test.DemandEquality(t, len(c), 3)
	test.ExpectEquality(t, c[0], "aif2pcm")
	test.ExpectEquality(t, c[1], "/tmp/a b")
	test.ExpectEquality(t, c[2], "/out/c.aif")

	cv, err = samples.NewExecConverter("sox -t raw {in} {out} {ext:.wav}")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cv.Extension(), ".wav")
	test.ExpectEquality(t, len(cv.Command("i", "o")), 5)

	_, err = samples.NewExecConverter("sox {in}")
	test.ExpectFailure(t, err)

	_, err = samples.NewExecConverter(`sox "{in} {out}`)
	test.ExpectFailure(t, err)
}

func TestExtractWAV(t *testing.T) {
	out := t.TempDir()
	r := image(22050 * 1024)

	ex, err := samples.NewExtractor(r, samples.WAVConverter{}, out, logger.Allow)
	test.DemandSuccess(t, err)

	ex.ExtractAll([]samples.Sample{
		{Offset: dsOffset, Kind: samples.DirectSound},
		{Offset: waveOffset, Kind: samples.ProgrammableWave},
	})
	test.ExpectEquality(t, ex.Extracted, 2)
	test.ExpectEquality(t, ex.Failed, 0)

	f, err := os.Open(paths.Join(out, paths.DirectSoundSample(dsOffset, ".wav")))
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dec.SampleRate, uint32(22050))
	test.ExpectEquality(t, dec.NumChans, uint16(1))
	test.ExpectEquality(t, dec.BitDepth, uint16(8))
	test.ExpectEquality(t, len(buf.Data), pcmLength)

	pcm, err := os.ReadFile(paths.Join(out, paths.ProgrammableWaveSample(waveOffset, paths.PcmExtension)))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(pcm), samples.WaveLength)

	tmp := ex.TempDir()
	test.ExpectSuccess(t, ex.Cleanup())
	_, err = os.Stat(tmp)
	test.ExpectSuccess(t, os.IsNotExist(err))
}

func TestExtractWAVLoop(t *testing.T) {
	// odd length needs a pad byte before the smpl chunk
	for _, n := range []int{pcmLength, pcmLength + 1} {
		data := make([]byte, 0x400)
		binary.LittleEndian.PutUint32(data[dsOffset:], samples.LoopFlag)
		binary.LittleEndian.PutUint32(data[dsOffset+0x04:], 13379*1024)
		binary.LittleEndian.PutUint32(data[dsOffset+0x08:], 20)
		binary.LittleEndian.PutUint32(data[dsOffset+0x0c:], uint32(n))
		r := rom.New(data)

		b, err := samples.Bytes(r, samples.Sample{Offset: dsOffset, Kind: samples.DirectSound})
		test.DemandSuccess(t, err)
		h, err := samples.ParseHeader(b)
		test.DemandSuccess(t, err)
		test.ExpectSuccess(t, h.Looped())

		out := t.TempDir()
		ex, err := samples.NewExtractor(r, samples.WAVConverter{}, out, logger.Allow)
		test.DemandSuccess(t, err)
		ex.ExtractAll([]samples.Sample{{Offset: dsOffset, Kind: samples.DirectSound}})
		test.ExpectEquality(t, ex.Failed, 0)
		test.ExpectSuccess(t, ex.Cleanup())

		f, err := os.Open(paths.Join(out, paths.DirectSoundSample(dsOffset, ".wav")))
		test.DemandSuccess(t, err)

		dec := wav.NewDecoder(f)
		dec.ReadMetadata()
		test.DemandSuccess(t, dec.Err())
		f.Close()

		if dec.Metadata == nil || dec.Metadata.SamplerInfo == nil {
			t.Fatalf("no sampler information for %d byte sample", n)
		}
		test.DemandEquality(t, len(dec.Metadata.SamplerInfo.Loops), 1)
		loop := dec.Metadata.SamplerInfo.Loops[0]
		test.ExpectEquality(t, loop.Start, uint32(20))
		test.ExpectEquality(t, loop.End, uint32(n-1))
		test.ExpectEquality(t, loop.Type, uint32(0))
	}

	// a sample without the loop flag has no smpl chunk
	out := t.TempDir()
	ex, err := samples.NewExtractor(image(0), samples.WAVConverter{}, out, logger.Allow)
	test.DemandSuccess(t, err)
	ex.ExtractAll([]samples.Sample{{Offset: dsOffset, Kind: samples.DirectSound}})
	test.ExpectSuccess(t, ex.Cleanup())

	f, err := os.Open(paths.Join(out, paths.DirectSoundSample(dsOffset, ".wav")))
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadMetadata()
	test.DemandSuccess(t, dec.Err())
	test.ExpectEquality(t, dec.Metadata, (*wav.Metadata)(nil))
}

func TestExtractFailureIsLocal(t *testing.T) {
	out := t.TempDir()
	ex, err := samples.NewExtractor(image(0), samples.RawConverter{}, out, logger.Allow)
	test.DemandSuccess(t, err)
	defer ex.Cleanup()

	ex.ExtractAll([]samples.Sample{
		{Offset: 0x3fc, Kind: samples.DirectSound},
		{Offset: dsOffset, Kind: samples.DirectSound},
	})
	test.ExpectEquality(t, ex.Failed, 1)
	test.ExpectEquality(t, ex.Extracted, 1)

	b, err := os.ReadFile(filepath.Join(out, "sound", "direct_sound_samples", "100.bin"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(b), samples.HeaderLength+pcmLength)
}

func TestExtractExec(t *testing.T) {
	if _, err := exec.LookPath("cp"); err != nil {
		t.Skip("cp not available")
	}

	cv, err := samples.NewExecConverter("cp {in} {out} {ext:.bin}")
	test.DemandSuccess(t, err)

	out := t.TempDir()
	ex, err := samples.NewExtractor(image(0), cv, out, logger.Allow)
	test.DemandSuccess(t, err)
	defer ex.Cleanup()

	test.ExpectSuccess(t, ex.Extract(samples.Sample{Offset: dsOffset, Kind: samples.DirectSound}))
	_, err = os.Stat(paths.Join(out, paths.DirectSoundSample(dsOffset, ".bin")))
	test.ExpectSuccess(t, err)
}
