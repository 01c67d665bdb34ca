package format

// Alignment utilities for the PerfData layout. The producer pads each entry
// so the next one starts on an 8-byte boundary; the reader only insists on
// EntryAlignment.

const (
	// ProducerAlignment is the boundary the producer pads entries to.
	ProducerAlignment = 8

	// ProducerAlignmentMask is the bitmask used for aligning to 8-byte boundaries.
	ProducerAlignmentMask = ProducerAlignment - 1
)

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + ProducerAlignmentMask) & ^ProducerAlignmentMask
}

// EntryAligned reports whether off is a legal entry start.
func EntryAligned(off int) bool {
	return off%EntryAlignment == 0
}
