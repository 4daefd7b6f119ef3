package silver

import (
	"context"
	"fmt"

	"github.com/dlima/medalha/internal/report"
	"github.com/dlima/medalha/pkg/blob"
	"github.com/dlima/medalha/pkg/logger"
)

// Stage reads the bronze payload, derives the dimensional model and
// merges it into the silver tables. One Run processes one full batch;
// it either completes all three merges or fails the run.
type Stage struct {
	store     blob.Store
	logger    *logger.Logger
	bronzeKey string
}

// Result reports the persisted row count per table after the merge.
type Result struct {
	DateRows  int
	StateRows int
	FactRows  int
}

// NewStage creates a silver stage reading from the given bronze key.
func NewStage(store blob.Store, log *logger.Logger, bronzeKey string) *Stage {
	return &Stage{
		store:     store,
		logger:    log,
		bronzeKey: bronzeKey,
	}
}

// Run executes one silver batch.
func (s *Stage) Run(ctx context.Context) (*Result, error) {
	s.logger.WithField("key", s.bronzeKey).Info("Downloading bronze layer data")

	raw, err := s.store.Read(ctx, s.bronzeKey)
	if err != nil {
		return nil, fmt.Errorf("read bronze object %s: %w", s.bronzeKey, err)
	}

	rep, err := report.Decode(raw)
	if err != nil {
		return nil, err
	}

	if len(rep.Data) == 0 {
		return nil, fmt.Errorf("bronze payload %s contains no records", s.bronzeKey)
	}

	s.logger.WithField("records", len(rep.Data)).Info("Cleaning and transforming raw records")

	dates, err := BuildDimDate(rep.Data)
	if err != nil {
		return nil, err
	}

	states := BuildDimState(rep.Data, s.logger)

	facts, err := BuildFacts(rep.Data, dates, states)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	result.DateRows, err = MergeTable(ctx, s.store, s.logger, DimDateKey, dates)
	if err != nil {
		return nil, err
	}

	result.StateRows, err = MergeTable(ctx, s.store, s.logger, DimStateKey, states)
	if err != nil {
		return nil, err
	}

	result.FactRows, err = MergeTable(ctx, s.store, s.logger, FactKey, facts)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"dim_date":   result.DateRows,
		"dim_state":  result.StateRows,
		"fact_covid": result.FactRows,
	}).Info("Silver layer transformation completed")

	return result, nil
}
