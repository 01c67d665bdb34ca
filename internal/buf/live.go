package buf

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"
)

// HostOrder is the byte order of the running process.
var HostOrder binary.ByteOrder = func() binary.ByteOrder {
	probe := uint16(1)
	if *(*byte)(unsafe.Pointer(&probe)) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()

// LoadU64 reads the 8-byte slot at off, which another process may be updating
// concurrently. When the slot is naturally aligned and order matches the host
// the load is a single atomic instruction, so the value is never torn;
// otherwise it falls back to a byte-order decode.
func LoadU64(b []byte, off int, order binary.ByteOrder) (uint64, bool) {
	s, ok := Slice(b, off, 8)
	if !ok {
		return 0, false
	}
	p := unsafe.Pointer(&s[0])
	if order == HostOrder && uintptr(p)%8 == 0 {
		return atomic.LoadUint64((*uint64)(p)), true
	}
	return order.Uint64(s), true
}

// LoadU32 is the 4-byte counterpart of LoadU64.
func LoadU32(b []byte, off int, order binary.ByteOrder) (uint32, bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	p := unsafe.Pointer(&s[0])
	if order == HostOrder && uintptr(p)%4 == 0 {
		return atomic.LoadUint32((*uint32)(p)), true
	}
	return order.Uint32(s), true
}
