// Package tables defines the silver and gold table schemas as
// explicit record types. Column names and types are fixed at compile
// time; the parquet tags are the single source of truth for the
// on-store columnar layout.
package tables

import (
	"fmt"
	"strconv"
	"time"
)

// Row is implemented by every persisted table row. Key returns the
// natural key used by the incremental merge writer to upsert.
type Row interface {
	Key() string
}

// DimDate is one row of the date dimension. Every attribute is a pure
// function of the calendar date; id_data is the date formatted as a
// YYYYMMDD integer, never a surrogate counter.
type DimDate struct {
	IDData    int64     `parquet:"id_data"`
	Date      time.Time `parquet:"date,timestamp(millisecond)"`
	Ano       int32     `parquet:"ano"`
	Mes       int32     `parquet:"mes"`
	Dia       int32     `parquet:"dia"`
	DiaSemana int32     `parquet:"dia_semana"` // 1=Monday .. 7=Sunday
	Trimestre int32     `parquet:"trimestre"`
	Semestre  int32     `parquet:"semestre"`
}

// Key implements Row.
func (d DimDate) Key() string {
	return strconv.FormatInt(d.IDData, 10)
}

// DimState is one row of the state dimension, keyed by the source
// uid. Regiao is nil for state codes outside the fixed lookup table.
type DimState struct {
	IDEstado    int64   `parquet:"id_estado"`
	SiglaEstado string  `parquet:"sigla_estado"`
	NomeEstado  string  `parquet:"nome_estado"`
	Regiao      *string `parquet:"regiao,optional"`
}

// Key implements Row.
func (s DimState) Key() string {
	return strconv.FormatInt(s.IDEstado, 10)
}

// FactCovid is one row of the fact table, keyed by
// (id_data, id_estado). Counters are default-filled to zero upstream.
type FactCovid struct {
	IDData           int64 `parquet:"id_data"`
	IDEstado         int64 `parquet:"id_estado"`
	CasosConfirmados int64 `parquet:"casos_confirmados"`
	Mortes           int64 `parquet:"mortes"`
	CasosSuspeitos   int64 `parquet:"casos_suspeitos"`
	CasosDescartados int64 `parquet:"casos_descartados"`
}

// Key implements Row.
func (f FactCovid) Key() string {
	return fmt.Sprintf("%d/%d", f.IDData, f.IDEstado)
}

// CovidCaseView is one fully denormalized row of the gold view:
// fact counters joined with all date and state attributes.
type CovidCaseView struct {
	IDData           int64     `parquet:"id_data"`
	IDEstado         int64     `parquet:"id_estado"`
	CasosConfirmados int64     `parquet:"casos_confirmados"`
	Mortes           int64     `parquet:"mortes"`
	CasosSuspeitos   int64     `parquet:"casos_suspeitos"`
	CasosDescartados int64     `parquet:"casos_descartados"`
	Date             time.Time `parquet:"date,timestamp(millisecond)"`
	Ano              int32     `parquet:"ano"`
	Mes              int32     `parquet:"mes"`
	Dia              int32     `parquet:"dia"`
	DiaSemana        int32     `parquet:"dia_semana"`
	Trimestre        int32     `parquet:"trimestre"`
	Semestre         int32     `parquet:"semestre"`
	SiglaEstado      string    `parquet:"sigla_estado"`
	NomeEstado       string    `parquet:"nome_estado"`
	Regiao           *string   `parquet:"regiao,optional"`
}

// Key implements Row.
func (v CovidCaseView) Key() string {
	return fmt.Sprintf("%d/%d", v.IDData, v.IDEstado)
}

// DateID formats a calendar date as its YYYYMMDD integer key.
func DateID(date time.Time) int64 {
	y, m, d := date.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}

// NewDimDate derives a full date dimension row from a calendar date.
func NewDimDate(date time.Time) DimDate {
	y, m, d := date.Date()

	semestre := int32(1)
	if m > 6 {
		semestre = 2
	}

	return DimDate{
		IDData:    DateID(date),
		Date:      date,
		Ano:       int32(y),
		Mes:       int32(m),
		Dia:       int32(d),
		DiaSemana: int32((int(date.Weekday())+6)%7) + 1,
		Trimestre: (int32(m)-1)/3 + 1,
		Semestre:  semestre,
	}
}
