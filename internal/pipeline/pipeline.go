// Package pipeline sequences the cleaning stages: classification,
// deduplication, quality scoring, and website validation. It holds no rule
// or network logic of its own — it wires the stages together and aggregates
// statistics.
package pipeline

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/listings-cli/internal/classify"
	"github.com/sells-group/listings-cli/internal/config"
	"github.com/sells-group/listings-cli/internal/dedupe"
	"github.com/sells-group/listings-cli/internal/model"
	"github.com/sells-group/listings-cli/internal/score"
	"github.com/sells-group/listings-cli/internal/source"
	"github.com/sells-group/listings-cli/internal/validate"
)

// Pipeline runs the full cleaning sequence over raw batches.
type Pipeline struct {
	policy     config.Policy
	classifier *classify.Classifier
	validator  *validate.Validator
}

// New creates a Pipeline. validator may be nil when website validation is
// not wanted (the clean-only path).
func New(policy config.Policy, validator *validate.Validator) *Pipeline {
	return &Pipeline{
		policy:     policy,
		classifier: classify.New(policy),
		validator:  validator,
	}
}

// Result is the pipeline output: the clean, scored, sorted record set and
// the aggregate statistics.
type Result struct {
	Records []*model.Record
	Stats   *model.Stats
}

// Run processes the batches in order: classify each batch (tagging records
// with their source), dedupe across the accumulated keep set, score, sort,
// then validate websites when a validator is configured. The classify,
// dedupe, and score stages are deliberately synchronous and input-ordered —
// the dedup survivor choice depends on strict scan order.
func (p *Pipeline) Run(ctx context.Context, batches []source.Batch) (*Result, error) {
	log := zap.L().With(zap.String("component", "pipeline"))
	stats := model.NewStats()

	// Phase 1: classify per batch, accumulate survivors across all batches.
	var kept []*model.Record
	for _, batch := range batches {
		stats.TotalRaw += len(batch.Records)
		srcStats := model.SourceStats{
			Raw:     len(batch.Records),
			Removed: make(map[string]int),
		}

		for _, r := range batch.Records {
			reason := p.classifier.Classify(r)
			if reason != classify.ReasonKeep {
				stats.Removed[reason]++
				srcStats.Removed[reason]++
				continue
			}
			r.SourceState = batch.Source
			kept = append(kept, r)
			srcStats.Kept++
		}

		stats.BySource[batch.Source] = srcStats
		log.Info("classified batch",
			zap.String("source", batch.Source),
			zap.Int("raw", srcStats.Raw),
			zap.Int("kept", srcStats.Kept),
		)
	}
	stats.TotalAfterFilter = len(kept)

	// Phase 2: dedupe across the whole keep set, not per batch. The key
	// tables are scoped to this run.
	unique, dupes := dedupe.New(p.policy.PlatformDomains).Run(kept)
	stats.DuplicatesRemoved = dupes
	stats.TotalClean = len(unique)

	// Phase 3: score every survivor fresh, then rank best-first.
	for _, r := range unique {
		r.QualityScore = score.Quality(r)
	}
	sortByQuality(unique)

	// Phase 4: website validation, when configured. Records without a
	// website pass through untouched; the sort is repeated afterwards to
	// keep the ordering contract regardless of completion order.
	if p.validator != nil {
		stats.Validation = p.validator.Run(ctx, unique)
		sortByQuality(unique)
	}

	log.Info("pipeline complete",
		zap.Int("total_raw", stats.TotalRaw),
		zap.Int("after_filter", stats.TotalAfterFilter),
		zap.Int("duplicates", stats.DuplicatesRemoved),
		zap.Int("total_clean", stats.TotalClean),
	)

	return &Result{Records: unique, Stats: stats}, nil
}

// sortByQuality sorts descending by quality score. The sort is stable so
// equal scores keep their input order.
func sortByQuality(records []*model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].QualityScore > records[j].QualityScore
	})
}
