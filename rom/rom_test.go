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

package rom_test

import (
	"testing"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/rom"
	"github.com/m4a2pret/m4a2pret/test"
)

func TestReads(t *testing.T) {
	r := rom.New([]byte{0x01, 0x02, 0x03, 0x04, 0x10, 0x00, 0x00, 0x08})
	test.ExpectEquality(t, r.Size(), uint32(8))

	b, err := r.Byte(2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, uint8(0x03))

	h, err := r.Halfword(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, h, uint16(0x0201))

	w, err := r.Word(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint32(0x04030201))

	p, err := r.Pointer(4)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, uint32(0x10))
}

func TestOutOfBounds(t *testing.T) {
	r := rom.New(make([]byte, 6))

	_, err := r.Word(4)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, rom.OutOfBounds))

	_, err = r.Byte(6)
	test.ExpectFailure(t, err)

	_, err = r.Slice(0xffffffff, 2)
	test.ExpectFailure(t, err)

	_, err = r.Halfword(4)
	test.ExpectSuccess(t, err)
}

func TestWindow(t *testing.T) {
	test.ExpectSuccess(t, rom.InWindow(0x08000000))
	test.ExpectSuccess(t, rom.InWindow(0x09ffffff))
	test.ExpectFailure(t, rom.InWindow(0x07ffffff))
	test.ExpectFailure(t, rom.InWindow(0x0a000000))
	test.ExpectFailure(t, rom.InWindow(0))

	// mirrored addresses resolve to the same offset
	test.ExpectEquality(t, rom.Flatten(0x081dd5a4), uint32(0x1dd5a4))
	test.ExpectEquality(t, rom.Flatten(0x091dd5a4), uint32(0x11dd5a4))
	test.ExpectEquality(t, rom.Flatten(0x09000010), uint32(0x1000010))
}

func TestResolve(t *testing.T) {
	r := rom.New(make([]byte, 0x100))

	off, err := r.Resolve(0x08000080)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, off, uint32(0x80))

	_, err = r.Resolve(0x07ffffff)
	test.ExpectSuccess(t, curated.Is(err, rom.InvalidPointer))

	_, err = r.Resolve(0x08000100)
	test.ExpectSuccess(t, curated.Is(err, rom.PointerPastEnd))
}
