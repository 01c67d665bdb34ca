//go:build !linux

package mmfile

// Prefault is a no-op where populate-on-read is unavailable.
func Prefault(data []byte) error { return nil }
