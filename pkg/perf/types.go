package perf

import "github.com/joshuapare/perfkit/internal/perfdata"

// Monitor is a named counter bound to the live region.
type Monitor = perfdata.Monitor

// Delta is the result of one Poll.
type Delta = perfdata.Delta

// Names of the counters synthesized from the region header.
const (
	PseudoSize      = perfdata.PseudoSize
	PseudoUsed      = perfdata.PseudoUsed
	PseudoOverflow  = perfdata.PseudoOverflow
	PseudoTimestamp = perfdata.PseudoTimestamp
)

// PrologueInfo is a snapshot of the region header.
type PrologueInfo struct {
	ByteOrder    string `json:"byte_order"`
	MajorVersion int    `json:"major_version"`
	MinorVersion int    `json:"minor_version"`
	Accessible   bool   `json:"accessible"`
	Capacity     int    `json:"capacity"`
	Used         int32  `json:"used"`
	Overflow     int32  `json:"overflow"`
	ModTimeStamp int64  `json:"mod_time_stamp"`
	EntryOffset  int32  `json:"entry_offset"`
	NumEntries   int32  `json:"num_entries"`
}
