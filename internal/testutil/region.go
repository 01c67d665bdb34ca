// Package testutil builds synthetic PerfData regions the way a producer lays
// them out, so tests can exercise the reader without a live JVM.
package testutil

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/perfkit/internal/format"
	"github.com/joshuapare/perfkit/pkg/types"
)

// Region is a mutable PerfData image. It plays the producer: entries are
// appended at an 8-byte aligned cursor and the prologue counters follow.
type Region struct {
	b     []byte
	order binary.ByteOrder
	next  int
}

// EntrySpec describes one entry to append. Zero offsets are computed the way
// the producer computes them: name right after the header, data aligned up,
// and the whole entry padded to 8 bytes.
type EntrySpec struct {
	Name         string
	RawName      []byte // written verbatim instead of Name+NUL when set
	Type         byte
	Flags        uint8
	Units        uint8
	Variability  uint8
	VectorLength int
	Data         []byte

	NameOffset int
	DataOffset int
	Length     int
}

// NewRegion returns an accessible region of the given capacity with a valid
// prologue and the first entry slot right after it.
func NewRegion(capacity int, order binary.ByteOrder) *Region {
	if capacity < format.PrologueSize {
		panic(fmt.Sprintf("testutil: capacity %d below prologue size", capacity))
	}
	r := &Region{b: make([]byte, capacity), order: order}
	binary.BigEndian.PutUint32(r.b[format.PrologueMagicOffset:], format.Magic)
	if order == binary.BigEndian {
		r.b[format.PrologueByteOrderOffset] = format.ByteOrderBig
	} else {
		r.b[format.PrologueByteOrderOffset] = format.ByteOrderLittle
	}
	r.b[format.PrologueMajorOffset] = format.SupportedMajorVersion
	r.b[format.PrologueMinorOffset] = format.SupportedMinorVersion
	r.b[format.PrologueAccessibleOffset] = 1
	r.SetEntryOffset(format.Align8(format.PrologueSize))
	return r
}

// Bytes returns the backing region. Mutations through the Region remain
// visible to readers holding it, as with shared memory.
func (r *Region) Bytes() []byte { return r.b }

// Order returns the byte order the region was built with.
func (r *Region) Order() binary.ByteOrder { return r.order }

// Next returns the offset the next entry will be written at.
func (r *Region) Next() int { return r.next }

// SetEntryOffset moves the first-entry offset (and the append cursor).
func (r *Region) SetEntryOffset(off int) {
	r.next = off
	r.order.PutUint32(r.b[format.PrologueEntryOffsetOffset:], uint32(off))
	r.order.PutUint32(r.b[format.PrologueUsedOffset:], uint32(off))
}

// SetAccessible sets or clears the accessible flag.
func (r *Region) SetAccessible(ok bool) {
	if ok {
		r.b[format.PrologueAccessibleOffset] = 1
	} else {
		r.b[format.PrologueAccessibleOffset] = 0
	}
}

// NumEntries returns the entry count in the prologue.
func (r *Region) NumEntries() int {
	return int(int32(r.order.Uint32(r.b[format.PrologueNumEntriesOffset:])))
}

// SetNumEntries overwrites the entry count, e.g. to announce an entry before
// its bytes are written.
func (r *Region) SetNumEntries(n int) {
	r.order.PutUint32(r.b[format.PrologueNumEntriesOffset:], uint32(n))
}

// SetOverflow overwrites the overflow counter.
func (r *Region) SetOverflow(n int) {
	r.order.PutUint32(r.b[format.PrologueOverflowOffset:], uint32(n))
}

// SetModTimeStamp overwrites the structural modification time stamp.
func (r *Region) SetModTimeStamp(ts int64) {
	r.order.PutUint64(r.b[format.PrologueModTimeStampOffset:], uint64(ts))
}

// AddLong appends a supported scalar long entry and returns its start.
func (r *Region) AddLong(name string, units types.Units, variability types.Variability, v int64) int {
	data := make([]byte, format.LongSize)
	r.order.PutUint64(data, uint64(v))
	return r.AddEntry(EntrySpec{
		Name:        name,
		Type:        byte(types.TypeLong),
		Flags:       format.EntryFlagSupported,
		Units:       uint8(units),
		Variability: uint8(variability),
		Data:        data,
	})
}

// AddString appends a byte-vector entry with String units. size is the
// vector length (slot size); value is NUL padded into it.
func (r *Region) AddString(name string, variability types.Variability, size int, value string) int {
	data := make([]byte, size)
	copy(data, value)
	return r.AddEntry(EntrySpec{
		Name:         name,
		Type:         byte(types.TypeByte),
		Flags:        format.EntryFlagSupported,
		Units:        uint8(types.UnitsString),
		Variability:  uint8(variability),
		VectorLength: size,
		Data:         data,
	})
}

// AddEntry appends an entry, bumps the entry count and the used counter, and
// returns the entry start.
func (r *Region) AddEntry(s EntrySpec) int {
	start := r.WriteEntry(r.next, s)
	r.next = start + r.EntryLength(start)
	r.SetNumEntries(r.NumEntries() + 1)
	r.order.PutUint32(r.b[format.PrologueUsedOffset:], uint32(r.next))
	return start
}

// WriteEntry writes an entry at start without touching the prologue.
func (r *Region) WriteEntry(start int, s EntrySpec) int {
	name := s.RawName
	if name == nil {
		name = append([]byte(s.Name), 0)
	}
	nameOff := s.NameOffset
	if nameOff == 0 {
		nameOff = format.EntryHeaderSize
	}
	dataOff := s.DataOffset
	if dataOff == 0 {
		dataOff = format.Align8(nameOff + len(name))
	}
	length := s.Length
	if length == 0 {
		length = format.Align8(dataOff + len(s.Data))
	}
	if start+length > len(r.b) || start+dataOff+len(s.Data) > len(r.b) {
		panic(fmt.Sprintf("testutil: entry %q at %d (length %d) overflows region of %d",
			s.Name, start, length, len(r.b)))
	}

	o := r.order
	o.PutUint32(r.b[start+format.EntryLengthOffset:], uint32(length))
	o.PutUint32(r.b[start+format.EntryNameOffsetOffset:], uint32(nameOff))
	o.PutUint32(r.b[start+format.EntryVectorLengthOffset:], uint32(s.VectorLength))
	r.b[start+format.EntryDataTypeOffset] = s.Type
	r.b[start+format.EntryFlagsOffset] = s.Flags
	r.b[start+format.EntryUnitsOffset] = s.Units
	r.b[start+format.EntryVariabilityOffset] = s.Variability
	o.PutUint32(r.b[start+format.EntryDataOffsetOffset:], uint32(dataOff))
	copy(r.b[start+nameOff:], name)
	copy(r.b[start+dataOff:], s.Data)
	return start
}

// EntryLength returns the length word of the entry at start.
func (r *Region) EntryLength(start int) int {
	return int(int32(r.order.Uint32(r.b[start+format.EntryLengthOffset:])))
}

// SetEntryLength overwrites the length word of the entry at start.
func (r *Region) SetEntryLength(start, n int) {
	r.order.PutUint32(r.b[start+format.EntryLengthOffset:], uint32(n))
}

// SetLong overwrites the payload of the scalar long entry at start.
func (r *Region) SetLong(start int, v int64) {
	dataOff := int(r.order.Uint32(r.b[start+format.EntryDataOffsetOffset:]))
	r.order.PutUint64(r.b[start+dataOff:], uint64(v))
}

// SetString overwrites the payload of the string entry at start, NUL padding
// the rest of its slot.
func (r *Region) SetString(start int, v string) {
	dataOff := int(r.order.Uint32(r.b[start+format.EntryDataOffsetOffset:]))
	size := int(r.order.Uint32(r.b[start+format.EntryVectorLengthOffset:]))
	slot := r.b[start+dataOff : start+dataOff+size]
	clear(slot)
	copy(slot, v)
}

// SetByte overwrites a single byte, for corrupting fields in tests.
func (r *Region) SetByte(off int, v byte) { r.b[off] = v }

// PutU32 overwrites a 4-byte field in the region byte order.
func (r *Region) PutU32(off int, v uint32) { r.order.PutUint32(r.b[off:], v) }
