// Package mmfile maps PerfData files into memory. On unix the mapping is
// shared and read-only, so values the producer writes after Map are visible
// through the returned bytes.
package mmfile

import "sync"

// Region is a mapped file. Its bytes must not be used after Close.
type Region struct {
	data  []byte
	once  sync.Once
	unmap func([]byte) error
	err   error
}

// Bytes returns the mapped contents.
func (r *Region) Bytes() []byte { return r.data }

// Len returns the mapped size.
func (r *Region) Len() int { return len(r.data) }

// Close releases the mapping. Further calls return the first result.
func (r *Region) Close() error {
	r.once.Do(func() {
		if r.unmap != nil && len(r.data) > 0 {
			r.err = r.unmap(r.data)
		}
		r.data = nil
	})
	return r.err
}
