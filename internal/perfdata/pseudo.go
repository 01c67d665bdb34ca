package perfdata

import (
	"github.com/joshuapare/perfkit/internal/format"
	"github.com/joshuapare/perfkit/pkg/types"
)

// Names of the monitors synthesized from prologue fields.
const (
	PseudoSize      = "sun.perfdata.size"
	PseudoUsed      = "sun.perfdata.used"
	PseudoOverflow  = "sun.perfdata.overflow"
	PseudoTimestamp = "sun.perfdata.timestamp"
)

// pseudoMonitors exposes the prologue counters as monitors. They are bound to
// the header slots directly and reported as unsupported.
func (b *Buffer) pseudoMonitors() []*Monitor {
	mk := func(name string, units types.Units, v types.Variability, kind types.ValueKind, off int) *Monitor {
		typ := types.TypeInt
		if kind == types.KindLong {
			typ = types.TypeLong
		}
		return &Monitor{
			name:        name,
			units:       units,
			variability: v,
			typ:         typ,
			kind:        kind,
			region:      b.region,
			order:       b.order,
			off:         off,
			decode:      b.decode,
		}
	}

	size := mk(PseudoSize, types.UnitsBytes, types.VariabilityConstant, types.KindFixedInt, -1)
	size.fixed = int64(len(b.region))

	return []*Monitor{
		size,
		mk(PseudoUsed, types.UnitsBytes, types.VariabilityVariable, types.KindInt, format.PrologueUsedOffset),
		mk(PseudoOverflow, types.UnitsBytes, types.VariabilityVariable, types.KindInt, format.PrologueOverflowOffset),
		mk(PseudoTimestamp, types.UnitsTicks, types.VariabilityMonotonic, types.KindLong, format.PrologueModTimeStampOffset),
	}
}
