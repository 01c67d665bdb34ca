// Package format houses low-level decoders for the HotSpot PerfData shared
// memory layout (version 2.0). The goal is to keep the parsing focused,
// allocation-free where possible, and independent from the public API so
// higher-level packages can orchestrate the data in a more ergonomic form.
//
// Every multi-byte read is preceded by a bounds check: the backing memory is
// written by another process that may be buggy, mid-update, or hostile.
package format

// Magic is the four-byte signature at the start of every PerfData region. The
// producer stores it so that the bytes read CA FE C0 C0 in memory order
// regardless of its own endianness, so it is always compared big-endian.
const Magic uint32 = 0xcafec0c0

// Byte order codes stored at PrologueByteOrderOffset.
const (
	ByteOrderBig    = 0
	ByteOrderLittle = 1
)

// Supported format version. One decoder per version; other versions are
// rejected rather than decoded speculatively.
const (
	SupportedMajorVersion = 2
	SupportedMinorVersion = 0
)

// ============================================================================
// Prologue Constants
// ============================================================================
// Prologue field offsets (version 2.0).
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    magic 0xcafec0c0 (big-endian)
//	 0x04    1    byte order (0 = big, 1 = little)
//	 0x05    1    major version
//	 0x06    1    minor version
//	 0x07    1    accessible flag
//	 0x08    4    bytes used
//	 0x0C    4    overflow bytes
//	 0x10    8    last structural modification time stamp (ticks)
//	 0x18    4    offset of the first entry
//	 0x1C    4    number of allocated entries
const (
	PrologueMagicOffset        = 0x00
	PrologueByteOrderOffset    = 0x04
	PrologueMajorOffset        = 0x05
	PrologueMinorOffset        = 0x06
	PrologueAccessibleOffset   = 0x07
	PrologueUsedOffset         = 0x08
	PrologueOverflowOffset     = 0x0C
	PrologueModTimeStampOffset = 0x10
	PrologueEntryOffsetOffset  = 0x18
	PrologueNumEntriesOffset   = 0x1C
)

// derived lengths.
const (
	PrologueMagicLen        = PrologueByteOrderOffset - PrologueMagicOffset           // 0x04
	PrologueUsedLen         = PrologueOverflowOffset - PrologueUsedOffset             // 0x04
	PrologueOverflowLen     = PrologueModTimeStampOffset - PrologueOverflowOffset     // 0x04
	PrologueModTimeStampLen = PrologueEntryOffsetOffset - PrologueModTimeStampOffset  // 0x08
	PrologueEntryOffsetLen  = PrologueNumEntriesOffset - PrologueEntryOffsetOffset    // 0x04
	PrologueNumEntriesLen   = 4                                                       // 0x04
	PrologueSize            = PrologueNumEntriesOffset + PrologueNumEntriesLen        // 0x20
)

// ============================================================================
// Entry Constants
// ============================================================================
// Entry header field offsets, relative to the start of the entry.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    entry length (header, name, padding and data)
//	 0x04    4    name offset
//	 0x08    4    vector length (0 = scalar)
//	 0x0C    1    data type (JVM basic type char)
//	 0x0D    1    flags (bit 0 = supported)
//	 0x0E    1    data units
//	 0x0F    1    data variability
//	 0x10    4    data offset
const (
	EntryLengthOffset       = 0x00
	EntryNameOffsetOffset   = 0x04
	EntryVectorLengthOffset = 0x08
	EntryDataTypeOffset     = 0x0C
	EntryFlagsOffset        = 0x0D
	EntryUnitsOffset        = 0x0E
	EntryVariabilityOffset  = 0x0F
	EntryDataOffsetOffset   = 0x10
)

// derived lengths.
const (
	EntryLengthLen     = EntryNameOffsetOffset - EntryLengthOffset // 0x04
	EntryDataOffsetLen = 4
	EntryHeaderSize    = EntryDataOffsetOffset + EntryDataOffsetLen // 0x14
)

// flags.
const (
	EntryFlagSupported = 0x01
)

// EntryAlignment is the alignment the reader demands of every entry start.
const EntryAlignment = 4

// LongSize is the payload size of a scalar long monitor.
const LongSize = 8
