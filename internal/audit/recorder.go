// Package audit records one history row per stage run in PostgreSQL.
// Recording is best-effort operational bookkeeping: the pipeline
// result never depends on it.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/dlima/medalha/pkg/database"
)

// Entry is one recorded stage run.
type Entry struct {
	Stage      string
	Status     string // succeeded, failed
	Rows       int64
	Detail     string // proximate cause when failed
	StartedAt  time.Time
	FinishedAt time.Time
}

// Recorder persists stage run history.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close()
}

// NopRecorder is used when no DATABASE_URL is configured.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(ctx context.Context, e Entry) error { return nil }

// Recent implements Recorder.
func (NopRecorder) Recent(ctx context.Context, limit int) ([]Entry, error) { return nil, nil }

// Close implements Recorder.
func (NopRecorder) Close() {}

const schema = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
	id           BIGSERIAL PRIMARY KEY,
	stage        TEXT NOT NULL,
	status       TEXT NOT NULL,
	rows_written BIGINT NOT NULL DEFAULT 0,
	detail       TEXT NOT NULL DEFAULT '',
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
)`

// PostgresRecorder stores run history in a pipeline_runs table.
type PostgresRecorder struct {
	db *database.DB
}

// NewPostgresRecorder ensures the history table exists and returns a
// recorder over the given pool.
func NewPostgresRecorder(ctx context.Context, db *database.DB) (*PostgresRecorder, error) {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure pipeline_runs table: %w", err)
	}

	return &PostgresRecorder{db: db}, nil
}

// Record inserts one run entry.
func (r *PostgresRecorder) Record(ctx context.Context, e Entry) error {
	query := `
		INSERT INTO pipeline_runs (stage, status, rows_written, detail, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query, e.Stage, e.Status, e.Rows, e.Detail, e.StartedAt, e.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert pipeline run: %w", err)
	}

	return nil
}

// Recent returns the latest run entries, newest first.
func (r *PostgresRecorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT stage, status, rows_written, detail, started_at, finished_at
		FROM pipeline_runs
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query pipeline runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Stage, &e.Status, &e.Rows, &e.Detail, &e.StartedAt, &e.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline run: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pipeline runs: %w", err)
	}

	return entries, nil
}

// Close closes the underlying pool.
func (r *PostgresRecorder) Close() {
	r.db.Close()
}
