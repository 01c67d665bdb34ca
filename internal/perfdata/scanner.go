package perfdata

import (
	"github.com/joshuapare/perfkit/internal/buf"
	"github.com/joshuapare/perfkit/internal/format"
)

// nextMonitor decodes the entry at the scan cursor. It returns nil, nil at
// the end of the region or at a zero-length entry, which marks the point the
// producer has not written past yet. The cursor only moves past an entry that
// decoded successfully, so a failed scan can resume at the same record.
func (b *Buffer) nextMonitor() (*Monitor, error) {
	start := b.nextEntry
	capacity := len(b.region)

	if !format.EntryAligned(start) {
		return nil, structureErr("misaligned entry index %d", start)
	}
	if start < 0 || start > capacity {
		return nil, structureErr("entry index out of bounds: %d (capacity %d)", start, capacity)
	}
	if start == capacity {
		return nil, nil
	}

	n, err := format.ReadEntryLength(b.region, start, b.order)
	if err != nil {
		return nil, wrapFormatErr(err)
	}
	length := int(n)
	if n < 0 || length > capacity {
		return nil, structureErr("invalid entry length %d (0x%x) at %d", n, uint32(n), start)
	}
	if _, ok := buf.End(capacity, start, length); !ok {
		return nil, structureErr("entry at %d extends beyond end of buffer: length %d, capacity %d",
			start, length, capacity)
	}
	if length == 0 {
		return nil, nil
	}

	e, err := format.DecodeEntry(b.region, start, length, b.order)
	if err != nil {
		return nil, wrapFormatErr(err)
	}
	m, err := b.decodeMonitor(e)
	if err != nil {
		return nil, err
	}
	b.nextEntry = start + length
	return m, nil
}
