package types

import "strconv"

// ValueKind tags the binding a monitor holds into the region.
type ValueKind uint8

const (
	KindLong           ValueKind = iota + 1 // live 8-byte slot
	KindInt                                 // live 4-byte slot (prologue fields)
	KindFixedInt                            // value captured at construction
	KindStringConstant                      // decoded once
	KindStringVariable                      // re-decoded on every read
)

func (k ValueKind) String() string {
	switch k {
	case KindLong:
		return "long"
	case KindInt:
		return "int"
	case KindFixedInt:
		return "fixed-int"
	case KindStringConstant:
		return "string-constant"
	case KindStringVariable:
		return "string-variable"
	default:
		return "invalid"
	}
}

// IsString reports whether the kind carries a string value.
func (k ValueKind) IsString() bool {
	return k == KindStringConstant || k == KindStringVariable
}

// Snapshot is an owned copy of a monitor's value at the moment it was read.
// Numeric kinds populate Int; string kinds populate Str.
type Snapshot struct {
	Kind ValueKind
	Int  int64
	Str  string
}

// Value returns the snapshot as an int64 or a string.
func (s Snapshot) Value() any {
	if s.Kind.IsString() {
		return s.Str
	}
	return s.Int
}

func (s Snapshot) String() string {
	if s.Kind.IsString() {
		return s.Str
	}
	return strconv.FormatInt(s.Int, 10)
}
