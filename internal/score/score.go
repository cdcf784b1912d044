// Package score computes the deterministic 0-1 data quality score used to
// rank cleaned listings.
package score

import (
	"math"

	"github.com/sells-group/listings-cli/internal/model"
)

// maxScore is the sum of the five group maxima: required fields (4),
// verification signals (1.5), reviews (1), rating (1), photos (1).
const maxScore = 4 + 1.5 + 1 + 1 + 1

// Quality scores a record's completeness and trust signals. Pure and total:
// missing numeric fields count as zero, and the result is always in [0, 1],
// rounded to two decimals.
func Quality(r *model.Record) float64 {
	score := 0.0

	// Required-field presence.
	if r.Name != "" {
		score++
	}
	if r.Phone != "" {
		score++
	}
	if r.Address != "" {
		score++
	}
	if r.Website != "" {
		score++
	}

	// Verification signals.
	if r.Verified {
		score++
	}
	if r.BusinessStatus == model.StatusOperational {
		score += 0.5
	}

	// Review volume.
	switch {
	case r.Reviews >= 50:
		score++
	case r.Reviews >= 20:
		score += 0.7
	case r.Reviews >= 5:
		score += 0.4
	case r.Reviews >= 1:
		score += 0.2
	}

	// Rating.
	switch {
	case r.Rating >= 4.5:
		score++
	case r.Rating >= 4.0:
		score += 0.7
	case r.Rating >= 3.5:
		score += 0.4
	}

	// Photos.
	switch {
	case r.PhotosCount >= 10:
		score++
	case r.PhotosCount >= 5:
		score += 0.6
	case r.PhotosCount >= 1:
		score += 0.3
	}

	return math.Round(score/maxScore*100) / 100
}
