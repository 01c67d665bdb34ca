package format

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/perfkit/internal/buf"
)

// Prologue is a live view of the header at offset 0 of a PerfData region.
// Only the validated facts (byte order, version) are captured at parse time;
// every other accessor re-reads the region because the producer rewrites
// those fields in place without notifying readers.
type Prologue struct {
	b     []byte
	order binary.ByteOrder
}

// ParsePrologue validates the fixed header of b and returns a live view of it.
func ParsePrologue(b []byte) (*Prologue, error) {
	if len(b) < PrologueSize {
		return nil, fmt.Errorf("prologue: %w (have %d, need %d)", ErrTruncated, len(b), PrologueSize)
	}
	if magic := buf.U32BE(b[PrologueMagicOffset:]); magic != Magic {
		return nil, fmt.Errorf("prologue: %w (0x%08x)", ErrSignatureMismatch, magic)
	}
	order, err := DecodeByteOrder(b[PrologueByteOrderOffset])
	if err != nil {
		return nil, fmt.Errorf("prologue: %w", err)
	}
	major, minor := b[PrologueMajorOffset], b[PrologueMinorOffset]
	if major != SupportedMajorVersion || minor != SupportedMinorVersion {
		return nil, fmt.Errorf("prologue: %w %d.%d (want %d.%d)",
			ErrUnsupportedVersion, major, minor, SupportedMajorVersion, SupportedMinorVersion)
	}
	return &Prologue{b: b, order: order}, nil
}

// DecodeByteOrder maps the byte order code to a binary.ByteOrder.
func DecodeByteOrder(code uint8) (binary.ByteOrder, error) {
	switch code {
	case ByteOrderBig:
		return binary.BigEndian, nil
	case ByteOrderLittle:
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("%w %d", ErrBadByteOrder, code)
	}
}

// IsAccessible reads only the accessible flag. It needs no valid magic or
// version, so it can be polled while the producer is still initializing a
// zero-filled region.
func IsAccessible(b []byte) (bool, error) {
	if len(b) < PrologueSize {
		return false, fmt.Errorf("prologue: %w (have %d, need %d)", ErrTruncated, len(b), PrologueSize)
	}
	// The flag shares an aligned word with the order and version bytes; load
	// the whole word so the read is atomic.
	word, _ := buf.LoadU32(b, PrologueByteOrderOffset, buf.HostOrder)
	var raw [4]byte
	buf.HostOrder.PutUint32(raw[:], word)
	return raw[PrologueAccessibleOffset-PrologueByteOrderOffset] != 0, nil
}

// ByteOrder returns the byte order declared by the region.
func (p *Prologue) ByteOrder() binary.ByteOrder { return p.order }

// Capacity returns the total size of the region in bytes.
func (p *Prologue) Capacity() int { return len(p.b) }

// Bytes returns the region the prologue was parsed from.
func (p *Prologue) Bytes() []byte { return p.b }

// MajorVersion returns the major format version.
func (p *Prologue) MajorVersion() int { return int(p.b[PrologueMajorOffset]) }

// MinorVersion returns the minor format version.
func (p *Prologue) MinorVersion() int { return int(p.b[PrologueMinorOffset]) }

// Accessible reports whether the producer has marked the region ready.
func (p *Prologue) Accessible() bool {
	ok, _ := IsAccessible(p.b)
	return ok
}

// Used returns the number of bytes of the region in use.
func (p *Prologue) Used() int32 { return p.i32(PrologueUsedOffset) }

// Overflow returns the number of bytes the producer could not allocate.
func (p *Prologue) Overflow() int32 { return p.i32(PrologueOverflowOffset) }

// ModTimeStamp returns the time stamp of the last structural modification.
func (p *Prologue) ModTimeStamp() int64 {
	v, _ := buf.LoadU64(p.b, PrologueModTimeStampOffset, p.order)
	return int64(v)
}

// EntryOffset returns the offset of the first entry.
func (p *Prologue) EntryOffset() int32 { return p.i32(PrologueEntryOffsetOffset) }

// NumEntries returns the number of entries the producer has allocated.
func (p *Prologue) NumEntries() int32 { return p.i32(PrologueNumEntriesOffset) }

func (p *Prologue) i32(off int) int32 {
	v, _ := buf.LoadU32(p.b, off, p.order)
	return int32(v)
}
