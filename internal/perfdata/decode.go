package perfdata

import (
	"github.com/joshuapare/perfkit/internal/buf"
	"github.com/joshuapare/perfkit/internal/format"
	"github.com/joshuapare/perfkit/pkg/types"
)

// decodeMonitor turns a validated entry into a Monitor. Only long scalars and
// String-unit byte vectors are decoded at this format version; everything
// else is a type error so a newer decoder can claim it.
func (b *Buffer) decodeMonitor(e format.Entry) (*Monitor, error) {
	m := &Monitor{
		name:         b.decode(e.Name(b.region)),
		units:        e.Units,
		variability:  e.Variability,
		supported:    e.Supported(),
		typ:          e.Type,
		vectorLength: e.VectorLength,
		region:       b.region,
		order:        b.order,
		off:          e.Start + e.DataOffset,
		decode:       b.decode,
	}

	if e.Scalar() {
		if e.Type != types.TypeLong {
			return nil, typeErr("unexpected type code %v for scalar monitor %q", e.Type, m.name)
		}
		if _, err := e.Payload(b.region, format.LongSize); err != nil {
			return nil, wrapFormatErr(err)
		}
		m.kind = types.KindLong
		return m, nil
	}

	if e.Type != types.TypeByte || e.Units != types.UnitsString {
		return nil, typeErr("unexpected vector type %v with units %v for monitor %q", e.Type, e.Units, m.name)
	}
	payload, err := e.Payload(b.region, e.VectorLength)
	if err != nil {
		return nil, wrapFormatErr(err)
	}
	switch e.Variability {
	case types.VariabilityConstant:
		m.kind = types.KindStringConstant
		m.str = b.decode(buf.CString(payload))
	case types.VariabilityVariable:
		// The last byte of the slot is reserved for the terminating NUL.
		m.kind = types.KindStringVariable
		m.size = e.VectorLength - 1
	default:
		return nil, dataErr("unexpected variability %v for string monitor %q", e.Variability, m.name)
	}
	return m, nil
}
