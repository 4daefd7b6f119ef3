package silver

import (
	"fmt"

	"github.com/dlima/medalha/internal/report"
	"github.com/dlima/medalha/internal/tables"
)

// BuildFacts derives one fact row per raw record by joining on
// calendar date and state uid against the dimensions built from the
// same batch. The join is inner: a record whose derived key has no
// dimension row is dropped. That is a referential-integrity safety
// net; with dimensions derived from the same batch it does not
// trigger.
func BuildFacts(records []report.Record, dates []tables.DimDate, states []tables.DimState) ([]tables.FactCovid, error) {
	dateIDs := make(map[int64]struct{}, len(dates))
	for _, d := range dates {
		dateIDs[d.IDData] = struct{}{}
	}

	stateIDs := make(map[int64]struct{}, len(states))
	for _, s := range states {
		stateIDs[s.IDEstado] = struct{}{}
	}

	facts := make([]tables.FactCovid, 0, len(records))

	for _, rec := range records {
		date, err := rec.Date()
		if err != nil {
			return nil, fmt.Errorf("build facts: %w", err)
		}

		idData := tables.DateID(date)
		idEstado := int64(rec.UID)

		if _, ok := dateIDs[idData]; !ok {
			continue
		}
		if _, ok := stateIDs[idEstado]; !ok {
			continue
		}

		facts = append(facts, tables.FactCovid{
			IDData:           idData,
			IDEstado:         idEstado,
			CasosConfirmados: int64(rec.Cases),
			Mortes:           int64(rec.Deaths),
			CasosSuspeitos:   int64(rec.Suspects),
			CasosDescartados: int64(rec.Refuses),
		})
	}

	return facts, nil
}
