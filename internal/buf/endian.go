// Package buf contains helpers for bounds-checked, byte-order aware decoding
// routines over a region owned by another process.
package buf

import "encoding/binary"

// U8 reads the byte at off. ok is false when off is out of range.
func U8(b []byte, off int) (uint8, bool) {
	if off < 0 || off >= len(b) {
		return 0, false
	}
	return b[off], true
}

// U32 reads a uint32 at off in the given byte order. ok is false when the
// four bytes are not entirely within b.
func U32(b []byte, off int, order binary.ByteOrder) (uint32, bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	return order.Uint32(s), true
}

// I32 reads an int32 at off in the given byte order.
func I32(b []byte, off int, order binary.ByteOrder) (int32, bool) {
	v, ok := U32(b, off, order)
	return int32(v), ok
}

// U64 reads a uint64 at off in the given byte order.
func U64(b []byte, off int, order binary.ByteOrder) (uint64, bool) {
	s, ok := Slice(b, off, 8)
	if !ok {
		return 0, false
	}
	return order.Uint64(s), true
}

// I64 reads an int64 at off in the given byte order.
func I64(b []byte, off int, order binary.ByteOrder) (int64, bool) {
	v, ok := U64(b, off, order)
	return int64(v), ok
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}
