package perfdata

import (
	"encoding/binary"

	"github.com/joshuapare/perfkit/internal/buf"
	"github.com/joshuapare/perfkit/pkg/types"
)

// Monitor is a named performance counter bound to its bytes in the region.
// A Monitor never changes after construction; Read observes whatever the
// producer has most recently written to the bound slot.
type Monitor struct {
	name         string
	units        types.Units
	variability  types.Variability
	supported    bool
	typ          types.TypeCode
	vectorLength int

	kind   types.ValueKind
	region []byte
	order  binary.ByteOrder
	off    int    // absolute offset of the live slot
	size   int    // usable bytes of a variable string slot
	fixed  int64  // KindFixedInt
	str    string // KindStringConstant
	decode func([]byte) string
}

// Name returns the monitor name.
func (m *Monitor) Name() string { return m.name }

// Units returns the unit of measure.
func (m *Monitor) Units() types.Units { return m.units }

// Variability returns the variability classification.
func (m *Monitor) Variability() types.Variability { return m.variability }

// Supported reports whether the producer flagged the counter as supported.
func (m *Monitor) Supported() bool { return m.supported }

// Type returns the element type code.
func (m *Monitor) Type() types.TypeCode { return m.typ }

// VectorLength returns the vector length, 0 for scalars.
func (m *Monitor) VectorLength() int { return m.vectorLength }

// Kind returns the value binding kind.
func (m *Monitor) Kind() types.ValueKind { return m.kind }

// Offset returns the absolute region offset of the value, or -1 for values
// that are not bound to the region.
func (m *Monitor) Offset() int {
	switch m.kind {
	case types.KindFixedInt, types.KindStringConstant:
		return -1
	}
	return m.off
}

// Read returns an owned copy of the current value. Numeric slots are loaded
// atomically where the platform allows; a variable string is copied out of
// its slot before decoding.
func (m *Monitor) Read() types.Snapshot {
	s := types.Snapshot{Kind: m.kind}
	switch m.kind {
	case types.KindLong:
		v, _ := buf.LoadU64(m.region, m.off, m.order)
		s.Int = int64(v)
	case types.KindInt:
		v, _ := buf.LoadU32(m.region, m.off, m.order)
		s.Int = int64(int32(v))
	case types.KindFixedInt:
		s.Int = m.fixed
	case types.KindStringConstant:
		s.Str = m.str
	case types.KindStringVariable:
		raw, ok := buf.Slice(m.region, m.off, m.size)
		if ok {
			s.Str = m.decode(buf.CString(append([]byte(nil), raw...)))
		}
	}
	return s
}

// Int64 returns the numeric value, or false for string monitors.
func (m *Monitor) Int64() (int64, bool) {
	if m.kind.IsString() {
		return 0, false
	}
	return m.Read().Int, true
}

func (m *Monitor) String() string {
	return m.name + "=" + m.Read().String()
}
