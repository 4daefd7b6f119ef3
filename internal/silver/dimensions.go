// Package silver turns a raw bronze batch into the dimensional model:
// date dimension, state dimension and fact table, incrementally
// merged into the silver layer of the lake.
package silver

import (
	"fmt"

	"github.com/dlima/medalha/internal/report"
	"github.com/dlima/medalha/internal/tables"
	"github.com/dlima/medalha/pkg/logger"
)

// regioes maps state code to region for all 27 Brazilian federative
// units. Codes outside this table get a nil region, never an error.
var regioes = map[string]string{
	"AC": "Norte", "AL": "Nordeste", "AP": "Norte", "AM": "Norte", "BA": "Nordeste",
	"CE": "Nordeste", "DF": "Centro-Oeste", "ES": "Sudeste", "GO": "Centro-Oeste",
	"MA": "Nordeste", "MT": "Centro-Oeste", "MS": "Centro-Oeste", "MG": "Sudeste",
	"PA": "Norte", "PB": "Nordeste", "PR": "Sul", "PE": "Nordeste", "PI": "Nordeste",
	"RJ": "Sudeste", "RN": "Nordeste", "RS": "Sul", "RO": "Norte", "RR": "Norte",
	"SC": "Sul", "SP": "Sudeste", "SE": "Nordeste", "TO": "Norte",
}

// RegionOf returns the region for a state code, nil when unmapped.
func RegionOf(sigla string) *string {
	if r, ok := regioes[sigla]; ok {
		return &r
	}
	return nil
}

// BuildDimDate derives the distinct date dimension rows observed in
// the batch. An unparseable record date fails the whole batch.
func BuildDimDate(records []report.Record) ([]tables.DimDate, error) {
	seen := make(map[int64]struct{}, len(records))
	rows := make([]tables.DimDate, 0, len(records))

	for _, rec := range records {
		date, err := rec.Date()
		if err != nil {
			return nil, fmt.Errorf("build date dimension: %w", err)
		}

		id := tables.DateID(date)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		rows = append(rows, tables.NewDimDate(date))
	}

	return rows, nil
}

// BuildDimState derives the distinct state dimension rows observed in
// the batch. When one uid appears with conflicting uf/state attributes
// within a batch the first occurrence wins and the conflict is logged;
// the source report is assumed internally consistent per batch.
func BuildDimState(records []report.Record, log *logger.Logger) []tables.DimState {
	seen := make(map[int64]tables.DimState, len(records))
	order := make([]int64, 0, len(records))

	for _, rec := range records {
		uid := int64(rec.UID)

		if prev, ok := seen[uid]; ok {
			if prev.SiglaEstado != rec.UF || prev.NomeEstado != rec.State {
				log.WithFields(map[string]interface{}{
					"id_estado": uid,
					"kept":      fmt.Sprintf("%s/%s", prev.SiglaEstado, prev.NomeEstado),
					"ignored":   fmt.Sprintf("%s/%s", rec.UF, rec.State),
				}).Warn("Conflicting state attributes in batch, keeping first occurrence")
			}
			continue
		}

		seen[uid] = tables.DimState{
			IDEstado:    uid,
			SiglaEstado: rec.UF,
			NomeEstado:  rec.State,
			Regiao:      RegionOf(rec.UF),
		}
		order = append(order, uid)
	}

	rows := make([]tables.DimState, 0, len(order))
	for _, uid := range order {
		rows = append(rows, seen[uid])
	}

	return rows
}
