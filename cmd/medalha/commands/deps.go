package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dlima/medalha/internal/audit"
	"github.com/dlima/medalha/pkg/blob"
	"github.com/dlima/medalha/pkg/config"
	"github.com/dlima/medalha/pkg/database"
	"github.com/dlima/medalha/pkg/logger"
)

// deps holds everything a stage command needs, wired once per
// process run and passed by parameter.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	store    blob.Store
	recorder audit.Recorder
}

// setup builds config, logger, blob store and run recorder.
func setup(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg)

	store, err := blob.NewS3Store(ctx, cfg.Blob)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	return &deps{
		cfg:      cfg,
		log:      log,
		store:    store,
		recorder: newRecorder(ctx, cfg, log),
	}, nil
}

// newRecorder returns the Postgres run recorder when DATABASE_URL is
// configured, a no-op otherwise. An unreachable history store only
// disables recording; it never blocks the pipeline.
func newRecorder(ctx context.Context, cfg *config.Config, log *logger.Logger) audit.Recorder {
	if cfg.Database.URL == "" {
		return audit.NopRecorder{}
	}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Warn("Run history store unavailable, recording disabled")
		return audit.NopRecorder{}
	}

	recorder, err := audit.NewPostgresRecorder(ctx, db)
	if err != nil {
		db.Close()
		log.WithError(err).Warn("Run history store unavailable, recording disabled")
		return audit.NopRecorder{}
	}

	return recorder
}

// record persists one stage run entry, best effort.
func record(ctx context.Context, d *deps, stage string, rows int64, started time.Time, runErr error) {
	entry := audit.Entry{
		Stage:      stage,
		Status:     "succeeded",
		Rows:       rows,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if runErr != nil {
		entry.Status = "failed"
		entry.Detail = runErr.Error()
	}

	if err := d.recorder.Record(ctx, entry); err != nil {
		d.log.WithError(err).Warn("Failed to record pipeline run")
	}
}
