// Package gold assembles the denormalized analytical view from the
// silver tables. The view is a derived materialization, recomputed
// wholesale on each run and fully overwritten, never merged.
package gold

import (
	"context"
	"fmt"
	"sort"

	"github.com/dlima/medalha/internal/silver"
	"github.com/dlima/medalha/internal/tables"
	"github.com/dlima/medalha/pkg/blob"
	"github.com/dlima/medalha/pkg/logger"
)

// Folder is the fixed gold layer prefix; not configurable.
const Folder = "covid-gold"

// ViewKey is the gold view object key.
const ViewKey = Folder + "/covid_cases_view.parquet"

// Assembler joins fact against both dimensions and writes the view.
type Assembler struct {
	store  blob.Store
	logger *logger.Logger
}

// Result reports the assembled view size and how many fact rows were
// dropped for lack of a dimension match.
type Result struct {
	ViewRows     int
	DroppedFacts int
}

// NewAssembler creates a gold stage over the given store.
func NewAssembler(store blob.Store, log *logger.Logger) *Assembler {
	return &Assembler{
		store:  store,
		logger: log,
	}
}

// Run reads the three silver tables, inner-joins fact with both
// dimensions and overwrites the gold view. Re-running with unchanged
// silver inputs yields the same output.
func (a *Assembler) Run(ctx context.Context) (*Result, error) {
	a.logger.Info("Reading silver layer tables")

	dates, err := readTable[tables.DimDate](ctx, a.store, silver.DimDateKey)
	if err != nil {
		return nil, err
	}

	states, err := readTable[tables.DimState](ctx, a.store, silver.DimStateKey)
	if err != nil {
		return nil, err
	}

	facts, err := readTable[tables.FactCovid](ctx, a.store, silver.FactKey)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Building unified view for the gold layer")

	view, dropped := Join(facts, dates, states)

	if dropped > 0 {
		a.logger.WithFields(map[string]interface{}{
			"dropped": dropped,
			"facts":   len(facts),
		}).Warn("Fact rows without matching dimension rows were dropped from the view")
	}

	data, err := tables.Encode(view)
	if err != nil {
		return nil, fmt.Errorf("encode gold view: %w", err)
	}

	if err := a.store.Write(ctx, ViewKey, data, true); err != nil {
		return nil, fmt.Errorf("write gold view %s: %w", ViewKey, err)
	}

	a.logger.WithFields(map[string]interface{}{
		"key":  ViewKey,
		"rows": len(view),
	}).Info("Unified view saved to gold layer")

	return &Result{ViewRows: len(view), DroppedFacts: dropped}, nil
}

// Join performs the inner join fact x date x state. Fact rows whose
// keys resolve in both dimensions become view rows; the rest are
// counted and dropped.
func Join(facts []tables.FactCovid, dates []tables.DimDate, states []tables.DimState) ([]tables.CovidCaseView, int) {
	dateByID := make(map[int64]tables.DimDate, len(dates))
	for _, d := range dates {
		dateByID[d.IDData] = d
	}

	stateByID := make(map[int64]tables.DimState, len(states))
	for _, s := range states {
		stateByID[s.IDEstado] = s
	}

	view := make([]tables.CovidCaseView, 0, len(facts))
	dropped := 0

	for _, f := range facts {
		date, okDate := dateByID[f.IDData]
		state, okState := stateByID[f.IDEstado]
		if !okDate || !okState {
			dropped++
			continue
		}

		view = append(view, tables.CovidCaseView{
			IDData:           f.IDData,
			IDEstado:         f.IDEstado,
			CasosConfirmados: f.CasosConfirmados,
			Mortes:           f.Mortes,
			CasosSuspeitos:   f.CasosSuspeitos,
			CasosDescartados: f.CasosDescartados,
			Date:             date.Date,
			Ano:              date.Ano,
			Mes:              date.Mes,
			Dia:              date.Dia,
			DiaSemana:        date.DiaSemana,
			Trimestre:        date.Trimestre,
			Semestre:         date.Semestre,
			SiglaEstado:      state.SiglaEstado,
			NomeEstado:       state.NomeEstado,
			Regiao:           state.Regiao,
		})
	}

	sort.Slice(view, func(i, j int) bool {
		return view[i].Key() < view[j].Key()
	})

	return view, dropped
}

func readTable[T any](ctx context.Context, store blob.Store, key string) ([]T, error) {
	data, err := store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read silver table %s: %w", key, err)
	}

	rows, err := tables.Decode[T](data)
	if err != nil {
		return nil, fmt.Errorf("decode silver table %s: %w", key, err)
	}

	return rows, nil
}
