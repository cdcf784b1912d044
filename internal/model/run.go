package model

import "time"

// Run kinds. A clean run stops after dedup and scoring; a validate run also
// probes websites.
const (
	RunKindClean    = "clean"
	RunKindValidate = "validate"
)

// Run records one pipeline execution and its aggregate statistics.
type Run struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Stats       *Stats     `json:"stats,omitempty"`
	RecordCount int        `json:"record_count"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
