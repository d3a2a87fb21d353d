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
// Package rom gives read-only random access to a GBA cartridge image.
//
// Multi-byte values are little-endian. ROM pointers are 32-bit bus addresses
// in the cartridge window. Both 0x08xxxxxx and the mirror at 0x09xxxxxx
// resolve to the same flat image offset, which is the address with the top
// seven bits masked off (see Flatten()).
//
// Every read is bounds checked. A read that runs past the end of the image is
// an error rather than a panic because pointers in a ROM cannot be trusted.
package rom

import (
	"encoding/binary"

	"github.com/m4a2pret/m4a2pret/curated"
)

// the cartridge window on the GBA bus. ROM pointers outside of this range do
// not point into the cartridge.
const (
	WindowStart uint32 = 0x08000000
	WindowEnd   uint32 = 0x09ffffff
)

// PointerMask converts a pointer in the cartridge window to an image offset.
const PointerMask uint32 = 0x01ffffff

// Sentinal error patterns.
const (
	OutOfBounds    = "rom: read of %d bytes at %#07x is out of bounds (size %#07x)"
	InvalidPointer = "rom: pointer %#08x is outside of the cartridge window"
	PointerPastEnd = "rom: pointer %#08x is past the end of the image (size %#07x)"
)

// InWindow returns true if the raw value is a pointer into the cartridge
// window.
func InWindow(raw uint32) bool {
	return raw >= WindowStart && raw <= WindowEnd
}

// Flatten converts a raw pointer to an image offset.
func Flatten(raw uint32) uint32 {
	return raw & PointerMask
}

// ROM is a read-only cartridge image.
type ROM struct {
	data []byte
}

// New is the preferred method of initialisation for the ROM type. The data is
// not copied and must not be changed by the caller after the call.
func New(data []byte) *ROM {
	return &ROM{data: data}
}

// Size returns the number of bytes in the image.
func (r *ROM) Size() uint32 {
	return uint32(len(r.data))
}

// Contains returns true if the n bytes beginning at offset are all inside the
// image.
func (r *ROM) Contains(offset uint32, n uint32) bool {
	end := uint64(offset) + uint64(n)
	return end <= uint64(len(r.data))
}

// Slice returns the n bytes beginning at offset. The returned slice shares
// memory with the image and must not be changed.
func (r *ROM) Slice(offset uint32, n uint32) ([]byte, error) {
	if !r.Contains(offset, n) {
		return nil, curated.Errorf(OutOfBounds, n, offset, len(r.data))
	}
	return r.data[offset : offset+n], nil
}

// Byte reads the byte at offset.
func (r *ROM) Byte(offset uint32) (uint8, error) {
	b, err := r.Slice(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Halfword reads the 16-bit value at offset.
func (r *ROM) Halfword(offset uint32) (uint16, error) {
	b, err := r.Slice(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Word reads the 32-bit value at offset.
func (r *ROM) Word(offset uint32) (uint32, error) {
	b, err := r.Slice(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Pointer reads the 32-bit value at offset and flattens it to an image offset.
// The raw value is not checked against the cartridge window. Use Resolve() if
// that is required.
func (r *ROM) Pointer(offset uint32) (uint32, error) {
	w, err := r.Word(offset)
	if err != nil {
		return 0, err
	}
	return Flatten(w), nil
}

// Resolve checks that the raw value is a pointer into the cartridge window and
// that the flattened offset is inside the image. Returns the flattened offset.
func (r *ROM) Resolve(raw uint32) (uint32, error) {
	if !InWindow(raw) {
		return 0, curated.Errorf(InvalidPointer, raw)
	}
	off := Flatten(raw)
	if off >= r.Size() {
		return 0, curated.Errorf(PointerPastEnd, raw, len(r.data))
	}
	return off, nil
}
