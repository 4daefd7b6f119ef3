package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	payload := []byte(`{
		"data": [
			{"uid": 35, "uf": "SP", "state": "São Paulo", "cases": 100, "deaths": 5, "suspects": 20, "refuses": 3, "datetime": "2021-03-15T18:30:00.000Z"},
			{"uid": "13", "uf": "AM", "state": "Amazonas", "cases": null, "datetime": "2021-03-15T18:30:00.000Z"}
		]
	}`)

	rep, err := Decode(payload)
	require.NoError(t, err)
	require.Len(t, rep.Data, 2)

	sp := rep.Data[0]
	assert.Equal(t, FlexInt(35), sp.UID)
	assert.Equal(t, "SP", sp.UF)
	assert.Equal(t, "São Paulo", sp.State)
	assert.Equal(t, NullInt(100), sp.Cases)
	assert.Equal(t, NullInt(5), sp.Deaths)

	// String uid and default-filled counters.
	am := rep.Data[1]
	assert.Equal(t, FlexInt(13), am.UID)
	assert.Equal(t, NullInt(0), am.Cases)
	assert.Equal(t, NullInt(0), am.Deaths)
	assert.Equal(t, NullInt(0), am.Suspects)
	assert.Equal(t, NullInt(0), am.Refuses)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `not json at all`},
		{"uid null", `{"data":[{"uid": null, "uf": "SP", "datetime": "2021-03-15"}]}`},
		{"uid non-numeric string", `{"data":[{"uid": "abc", "uf": "SP", "datetime": "2021-03-15"}]}`},
		{"counter wrong type", `{"data":[{"uid": 35, "cases": "muitos", "datetime": "2021-03-15"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestRecordDate(t *testing.T) {
	tests := []struct {
		name     string
		datetime string
		want     time.Time
		wantErr  bool
	}{
		{
			name:     "RFC3339 with millis",
			datetime: "2021-03-15T18:30:00.000Z",
			want:     time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339",
			datetime: "2021-03-15T18:30:00Z",
			want:     time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "no zone",
			datetime: "2021-03-15T18:30:00",
			want:     time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			datetime: "2021-03-15",
			want:     time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "empty",
			datetime: "",
			wantErr:  true,
		},
		{
			name:     "garbage",
			datetime: "15/03/2021",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{UID: 35, Datetime: tt.datetime}
			got, err := rec.Date()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}
