package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/listings-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, kept narrow so tests can
// substitute a mock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects to PostgreSQL and verifies the connection.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           UUID PRIMARY KEY,
	kind         TEXT NOT NULL,
	stats        JSONB,
	record_count INTEGER NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS records (
	id            UUID PRIMARY KEY,
	run_id        UUID NOT NULL REFERENCES runs(id),
	position      INTEGER NOT NULL,
	name          TEXT NOT NULL,
	source_state  TEXT,
	quality_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	data          JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id);
CREATE INDEX IF NOT EXISTS idx_records_run_position ON records(run_id, position);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, kind string) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, kind, created_at) VALUES ($1, $2, $3)`,
		id, kind, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &model.Run{ID: id, Kind: kind, CreatedAt: now}, nil
}

func (s *PostgresStore) CompleteRun(ctx context.Context, runID string, stats *model.Stats, recordCount int) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal stats")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET stats = $1, record_count = $2, completed_at = $3 WHERE id = $4`,
		statsJSON, recordCount, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, kind, stats, record_count, created_at, completed_at FROM runs WHERE id = $1`,
		runID,
	)
	return scanPgRun(row.Scan)
}

func (s *PostgresStore) LatestRun(ctx context.Context) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, kind, stats, record_count, created_at, completed_at
		 FROM runs WHERE completed_at IS NOT NULL
		 ORDER BY created_at DESC LIMIT 1`,
	)
	return scanPgRun(row.Scan)
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, stats, record_count, created_at, completed_at
		 FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanPgRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs rows")
}

func (s *PostgresStore) SaveRecords(ctx context.Context, runID string, records []*model.Record) error {
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal record")
		}
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO records (id, run_id, position, name, source_state, quality_score, data)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New().String(), runID, i, r.Name, r.SourceState, r.QualityScore, data,
		); err != nil {
			return eris.Wrapf(err, "postgres: insert record %d", i)
		}
	}
	return nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, runID string, limit int) ([]*model.Record, error) {
	if limit <= 0 {
		limit = 10000
	}
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM records WHERE run_id = $1 ORDER BY position LIMIT $2`,
		runID, limit,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list records for run %s", runID)
	}
	defer rows.Close()

	var records []*model.Record
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		var r model.Record
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal record")
		}
		records = append(records, &r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list records rows")
}

func scanPgRun(scan func(dest ...any) error) (*model.Run, error) {
	var (
		run       model.Run
		statsJSON []byte
		completed *time.Time
	)
	if err := scan(&run.ID, &run.Kind, &statsJSON, &run.RecordCount, &run.CreatedAt, &completed); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "postgres: scan run")
	}
	if len(statsJSON) > 0 {
		var stats model.Stats
		if err := json.Unmarshal(statsJSON, &stats); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal stats")
		}
		run.Stats = &stats
	}
	run.CompletedAt = completed
	return &run, nil
}
