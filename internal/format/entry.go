package format

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/perfkit/internal/buf"
	"github.com/joshuapare/perfkit/pkg/types"
)

// Entry models one validated entry header. Offsets are relative to Start
// except Start itself, which is absolute within the region. An entry is
// transient: it is decoded, turned into a monitor, and discarded.
type Entry struct {
	Start        int
	Length       int
	NameOffset   int
	VectorLength int
	Type         types.TypeCode
	Flags        uint8
	Units        types.Units
	Variability  types.Variability
	DataOffset   int
}

// Supported reports whether the producer flagged the monitor as supported.
func (e Entry) Supported() bool {
	return e.Flags&EntryFlagSupported != 0
}

// Scalar reports whether the entry describes a single value.
func (e Entry) Scalar() bool {
	return e.VectorLength == 0
}

// ReadEntryLength reads the length word of the entry at start. The caller is
// responsible for the alignment and range checks on start itself.
func ReadEntryLength(region []byte, start int, order binary.ByteOrder) (int32, error) {
	v, ok := buf.I32(region, start+EntryLengthOffset, order)
	if !ok {
		return 0, fmt.Errorf("entry length at %d: %w", start, ErrTruncated)
	}
	return v, nil
}

// DecodeEntry decodes the fixed header of the entry occupying
// region[start:start+length] and validates its internal offsets. The caller
// has already checked that the range lies within the region.
func DecodeEntry(region []byte, start, length int, order binary.ByteOrder) (Entry, error) {
	if length < EntryHeaderSize {
		return Entry{}, fmt.Errorf("entry at %d: %w (length %d, need %d)",
			start, ErrTruncated, length, EntryHeaderSize)
	}
	rec, ok := buf.Slice(region, start, length)
	if !ok {
		return Entry{}, fmt.Errorf("entry at %d: %w (length %d, region %d)",
			start, ErrTruncated, length, len(region))
	}

	nameOff := int(int32(order.Uint32(rec[EntryNameOffsetOffset:])))
	vecLen := int(int32(order.Uint32(rec[EntryVectorLengthOffset:])))
	typeByte := rec[EntryDataTypeOffset]
	flags := rec[EntryFlagsOffset]
	unitsByte := rec[EntryUnitsOffset]
	varByte := rec[EntryVariabilityOffset]
	dataOff := int(int32(order.Uint32(rec[EntryDataOffsetOffset:])))

	units, err := types.ParseUnits(unitsByte)
	if err != nil {
		return Entry{}, fmt.Errorf("entry at %d: %w: %v", start, ErrInvalidUnits, err)
	}
	variability, err := types.ParseVariability(varByte)
	if err != nil {
		return Entry{}, fmt.Errorf("entry at %d: %w: %v", start, ErrInvalidVariability, err)
	}
	typeCode, err := types.ParseTypeCode(typeByte)
	if err != nil {
		return Entry{}, fmt.Errorf("entry at %d: %w: %v", start, ErrInvalidTypeCode, err)
	}

	if nameOff < EntryHeaderSize || nameOff > length {
		return Entry{}, fmt.Errorf("entry at %d: name %w (%d, length %d)",
			start, ErrBadOffset, nameOff, length)
	}
	if dataOff < nameOff || dataOff > length {
		return Entry{}, fmt.Errorf("entry at %d: data %w (%d, name %d, length %d)",
			start, ErrBadOffset, dataOff, nameOff, length)
	}
	if vecLen < 0 {
		return Entry{}, fmt.Errorf("entry at %d: vector length %w (%d)", start, ErrBadOffset, vecLen)
	}

	return Entry{
		Start:        start,
		Length:       length,
		NameOffset:   nameOff,
		VectorLength: vecLen,
		Type:         typeCode,
		Flags:        flags,
		Units:        units,
		Variability:  variability,
		DataOffset:   dataOff,
	}, nil
}

// Name returns the raw name bytes: from the name offset up to the first NUL,
// capped at the data offset so padding or payload is never read as name.
func (e Entry) Name(region []byte) []byte {
	raw, ok := buf.Slice(region, e.Start+e.NameOffset, e.DataOffset-e.NameOffset)
	if !ok {
		return nil
	}
	return buf.CString(raw)
}

// Payload returns the n data bytes of the entry, or ErrBadOffset when they
// would extend past the end of the entry.
func (e Entry) Payload(region []byte, n int) ([]byte, error) {
	end, ok := buf.AddOverflowSafe(e.DataOffset, n)
	if !ok || n < 0 || end > e.Length {
		return nil, fmt.Errorf("entry at %d: payload %w (data %d + %d > length %d)",
			e.Start, ErrBadOffset, e.DataOffset, n, e.Length)
	}
	p, ok := buf.Slice(region, e.Start+e.DataOffset, n)
	if !ok {
		return nil, fmt.Errorf("entry at %d: payload %w", e.Start, ErrTruncated)
	}
	return p, nil
}
