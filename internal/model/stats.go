package model

// SourceStats breaks down classification results for one source batch.
type SourceStats struct {
	Raw     int            `json:"raw"`
	Kept    int            `json:"kept"`
	Removed map[string]int `json:"removed,omitempty"`
}

// ValidationStats counts website probe outcomes.
type ValidationStats struct {
	Checked     int            `json:"checked"`
	Reachable   int            `json:"reachable"`
	Unreachable int            `json:"unreachable"`
	Verdicts    map[string]int `json:"verdicts,omitempty"`
}

// Stats aggregates one full pipeline run.
type Stats struct {
	TotalRaw          int                    `json:"total_raw"`
	Removed           map[string]int         `json:"removed"`
	TotalAfterFilter  int                    `json:"total_after_filter"`
	DuplicatesRemoved int                    `json:"duplicates_removed"`
	TotalClean        int                    `json:"total_clean"`
	BySource          map[string]SourceStats `json:"by_source"`
	Validation        *ValidationStats       `json:"validation,omitempty"`
}

// NewStats returns a Stats with all maps allocated.
func NewStats() *Stats {
	return &Stats{
		Removed:  make(map[string]int),
		BySource: make(map[string]SourceStats),
	}
}
