package buf

import (
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// End returns off+n when the range [off, off+n) lies within [0, size).
// It is the length-only form of Slice, used when the caller holds a capacity
// rather than the bytes themselves.
func End(size, off, n int) (int, bool) {
	if off < 0 || n < 0 || off > size {
		return 0, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > size {
		return 0, false
	}
	return end, true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	end, ok := End(len(b), off, n)
	if !ok {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// CString returns the prefix of b up to, not including, the first NUL byte.
// The whole of b is returned when it holds no NUL.
func CString(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
