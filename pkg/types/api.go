package types

import "errors"

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindStructure ErrKind = iota // region too small, misaligned or out-of-bounds offsets, unknown type code
	ErrKindData                     // field outside its closed enumeration, unsupported variability for a shape
	ErrKindType                     // valid record describing a type/vector combination we don't decode
	ErrKindTimeout                  // target never became accessible
	ErrKindState                    // invalid operation for current state (closed buffer, I/O)
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindStructure:
		return "structure"
	case ErrKindData:
		return "data"
	case ErrKindType:
		return "type"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind and message so wrapped copies compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// IsKind reports whether err carries a *Error of the given kind anywhere in
// its chain.
func IsKind(err error, kind ErrKind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}

// Sentinels commonly returned by implementations.
var (
	// ErrSyncTimeout indicates the target never set its accessible flag.
	ErrSyncTimeout = &Error{Kind: ErrKindTimeout, Msg: "could not synchronize with target"}
	// ErrClosed indicates the buffer was used after Close.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "perfdata buffer is closed"}
)
