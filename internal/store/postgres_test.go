package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/listings-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_CreateRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(pgxmock.AnyArg(), model.RunKindClean, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(context.Background(), model.RunKindClean)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunKindClean, run.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET`).
		WithArgs(pgxmock.AnyArg(), 42, pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.CompleteRun(context.Background(), "run-1", model.NewStats(), 42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET`).
		WithArgs(pgxmock.AnyArg(), 0, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.CompleteRun(context.Background(), "missing", model.NewStats(), 0)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	stats := model.NewStats()
	stats.TotalRaw = 12
	statsJSON, err := json.Marshal(stats)
	require.NoError(t, err)

	created := time.Now().UTC()
	completed := created.Add(time.Minute)

	mock.ExpectQuery(`SELECT id, kind, stats, record_count, created_at, completed_at FROM runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "kind", "stats", "record_count", "created_at", "completed_at"},
		).AddRow("run-1", model.RunKindValidate, statsJSON, 9, created, &completed))

	run, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, model.RunKindValidate, run.Kind)
	assert.Equal(t, 9, run.RecordCount)
	require.NotNil(t, run.Stats)
	assert.Equal(t, 12, run.Stats.TotalRaw)
	require.NotNil(t, run.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, kind, stats, record_count, created_at, completed_at FROM runs WHERE id = \$1`).
		WithArgs("nonexistent-run").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetRun(context.Background(), "nonexistent-run")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LatestRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, kind, stats, record_count, created_at, completed_at`).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.LatestRun(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	created := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, kind, stats, record_count, created_at, completed_at`).
		WithArgs(50).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "kind", "stats", "record_count", "created_at", "completed_at"},
		).
			AddRow("run-2", model.RunKindClean, []byte(nil), 0, created, (*time.Time)(nil)).
			AddRow("run-1", model.RunKindClean, []byte(nil), 3, created.Add(-time.Hour), (*time.Time)(nil)))

	runs, err := s.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Nil(t, runs[0].Stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRecords(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	records := []*model.Record{
		{Name: "Acme Dumpsters", SourceState: "Ohio", QualityScore: 0.85},
		{Name: "Budget Bins", SourceState: "Ohio", QualityScore: 0.42},
	}
	for i, r := range records {
		mock.ExpectExec(`INSERT INTO records`).
			WithArgs(pgxmock.AnyArg(), "run-1", i, r.Name, r.SourceState, r.QualityScore, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	err := s.SaveRecords(context.Background(), "run-1", records)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRecords(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	r1, err := json.Marshal(&model.Record{Name: "Acme Dumpsters", QualityScore: 0.85})
	require.NoError(t, err)
	r2, err := json.Marshal(&model.Record{Name: "Budget Bins", QualityScore: 0.42})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT data FROM records WHERE run_id = \$1`).
		WithArgs("run-1", 10000).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(r1).AddRow(r2))

	got, err := s.ListRecords(context.Background(), "run-1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Dumpsters", got[0].Name)
	assert.Equal(t, 0.42, got[1].QualityScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}
