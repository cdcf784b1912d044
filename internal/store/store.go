// Package store persists pipeline runs and their cleaned record sets so the
// export and serve commands can read results back without re-running the
// pipeline.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/listings-cli/internal/config"
	"github.com/sells-group/listings-cli/internal/model"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface for pipeline results.
type Store interface {
	CreateRun(ctx context.Context, kind string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, stats *model.Stats, recordCount int) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	LatestRun(ctx context.Context) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	SaveRecords(ctx context.Context, runID string, records []*model.Record) error
	ListRecords(ctx context.Context, runID string, limit int) ([]*model.Record, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store from config, selecting the backend by driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
