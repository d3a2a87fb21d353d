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

package m4a_test

import (
	"testing"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/m4a"
	"github.com/m4a2pret/m4a2pret/test"
)

func render(t *testing.T, b []byte) string {
	t.Helper()
	ins, err := m4a.DecodeInstrument(b)
	test.DemandSuccess(t, err)
	return ins.Render()
}

func TestRenderDirectSound(t *testing.T) {
	test.ExpectEquality(t,
		render(t, []byte{0x00, 60, 0, 0xc0, 0xa4, 0xd5, 0x1d, 0x08, 255, 0, 255, 165}),
		"\tvoice_directsound 60, 64, DirectSoundWaveData_1dd5a4, 255, 0, 255, 165")

	// pan without the enable bit is centred
	test.ExpectEquality(t,
		render(t, []byte{0x08, 60, 0, 0x40, 0xa4, 0xd5, 0x1d, 0x08, 255, 0, 255, 165}),
		"\tvoice_directsound_no_resample 60, 0, DirectSoundWaveData_1dd5a4, 255, 0, 255, 165")

	// mirrored pointer
	test.ExpectEquality(t,
		render(t, []byte{0x10, 48, 0, 0x80, 0x00, 0x01, 0x00, 0x09, 255, 0, 255, 0}),
		"\tvoice_directsound_alt 48, 0, DirectSoundWaveData_1000100, 255, 0, 255, 0")
}

func TestRenderChannels(t *testing.T) {
	test.ExpectEquality(t,
		render(t, []byte{0x01, 60, 0, 8, 2, 0, 0, 0, 0, 0, 15, 0}),
		"\tvoice_square_1 8, 2, 0, 0, 15, 0")
	test.ExpectEquality(t,
		render(t, []byte{0x09, 60, 0, 0, 1, 0, 0, 0, 0, 1, 9, 0}),
		"\tvoice_square_1_alt 0, 1, 0, 1, 9, 0")
	test.ExpectEquality(t,
		render(t, []byte{0x02, 60, 0, 0, 3, 0, 0, 0, 0, 0, 15, 0}),
		"\tvoice_square_2 3, 0, 0, 15, 0")
	test.ExpectEquality(t,
		render(t, []byte{0x0a, 60, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4}),
		"\tvoice_square_2_alt 0, 1, 2, 3, 4")
	test.ExpectEquality(t,
		render(t, []byte{0x03, 60, 0, 0, 0xb4, 0xd0, 0x1d, 0x08, 0, 7, 15, 1}),
		"\tvoice_programmable_wave ProgrammableWaveData_1dd0b4, 0, 7, 15, 1")
	test.ExpectEquality(t,
		render(t, []byte{0x0b, 60, 0, 0, 0xb4, 0xd0, 0x1d, 0x08, 0, 7, 15, 1}),
		"\tvoice_programmable_wave_alt ProgrammableWaveData_1dd0b4, 0, 7, 15, 1")
	test.ExpectEquality(t,
		render(t, []byte{0x04, 60, 0, 0, 1, 0, 0, 0, 0, 0, 15, 0}),
		"\tvoice_noise 1, 0, 0, 15, 0")
	test.ExpectEquality(t,
		render(t, []byte{0x0c, 60, 0, 0, 0, 0, 0, 0, 0, 6, 0, 0}),
		"\tvoice_noise_alt 0, 0, 6, 0, 0")
}

func TestRenderKeysplit(t *testing.T) {
	test.ExpectEquality(t,
		render(t, []byte{0x40, 0, 0, 0, 0x00, 0x30, 0x00, 0x08, 0x00, 0x40, 0x00, 0x08}),
		"\tvoice_keysplit {vg:3000}, {ks:4000}")
	test.ExpectEquality(t,
		render(t, []byte{0x80, 0, 0, 0, 0x00, 0x30, 0x00, 0x08, 0, 0, 0, 0}),
		"\tvoice_keysplit_all {vg:3000}")
}

func TestUnknownTag(t *testing.T) {
	_, err := m4a.DecodeInstrument([]byte{0x05, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, m4a.UnknownTag))
	test.ExpectEquality(t, err.Error(), "m4a: unknown instrument tag (0x05)")

	_, err = m4a.DecodeInstrument([]byte{0x00, 0})
	test.ExpectFailure(t, err)
}

func TestPlaceholder(t *testing.T) {
	test.ExpectEquality(t, m4a.Placeholder(3, "invalid sample pointer", 0x7ffffff),
		"\t@ voice 3: invalid sample pointer (0x7ffffff)")
}

func TestKindSample(t *testing.T) {
	ins, err := m4a.DecodeInstrument([]byte{0x01, 60, 0, 0, 2, 0, 0, 0, 0, 0, 15, 0})
	test.DemandSuccess(t, err)
	_, ok := ins.Sample()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, ins.Kind.String(), "voice_square_1")
}
