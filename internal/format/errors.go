package format

import "errors"

var (
	// ErrSignatureMismatch indicates the region does not start with Magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnsupportedVersion indicates a prologue version this decoder does not handle.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
	// ErrBadByteOrder indicates the byte order code is neither big nor little.
	ErrBadByteOrder = errors.New("format: invalid byte order")
	// ErrInvalidUnits indicates a data_units byte outside the known set.
	ErrInvalidUnits = errors.New("format: invalid units")
	// ErrInvalidVariability indicates a data_variability byte outside the known set.
	ErrInvalidVariability = errors.New("format: invalid variability")
	// ErrInvalidTypeCode indicates a data_type byte that names no basic type.
	ErrInvalidTypeCode = errors.New("format: invalid type code")
	// ErrBadOffset indicates an entry-relative offset outside the entry.
	ErrBadOffset = errors.New("format: offset out of bounds")
)
