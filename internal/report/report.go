// Package report defines the raw COVID report payload as served by
// the upstream API and stored verbatim in the bronze layer.
package report

import (
	"encoding/json"
	"fmt"
	"time"
)

// Report is the top-level payload: one record per state per report
// date.
type Report struct {
	Data []Record `json:"data"`
}

// Record is one raw state entry. Counter fields may be absent or null
// in the source; they decode to zero.
type Record struct {
	Datetime string  `json:"datetime"`
	UID      FlexInt `json:"uid"`
	UF       string  `json:"uf"`
	State    string  `json:"state"`
	Cases    NullInt `json:"cases"`
	Deaths   NullInt `json:"deaths"`
	Suspects NullInt `json:"suspects"`
	Refuses  NullInt `json:"refuses"`
}

// FlexInt decodes from a JSON number or a numeric string. The source
// API is loose about the uid type.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return fmt.Errorf("uid must not be null")
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		// Quoted number, e.g. "35".
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("uid is neither number nor string: %s", b)
		}
		num = json.Number(s)
	}

	v, err := num.Int64()
	if err != nil {
		return fmt.Errorf("uid %q is not an integer: %w", num, err)
	}

	*f = FlexInt(v)
	return nil
}

// NullInt decodes absent and null values to zero, matching the
// default-fill rule applied before fact derivation.
type NullInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = 0
		return nil
	}

	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("counter is not an integer: %s", b)
	}

	*n = NullInt(v)
	return nil
}

// datetimeLayouts are the timestamp shapes observed in the source
// feed, most specific first.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date parses the record timestamp and discards the time of day. An
// unparseable timestamp fails the whole batch; no null dates are
// tolerated downstream.
func (r Record) Date() (time.Time, error) {
	if r.Datetime == "" {
		return time.Time{}, fmt.Errorf("record for uid %d has empty datetime", int64(r.UID))
	}

	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, r.Datetime)
		if err == nil {
			y, m, d := t.UTC().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable datetime %q for uid %d", r.Datetime, int64(r.UID))
}

// Decode parses a raw bronze payload. Any malformed record is fatal
// for the batch.
func Decode(b []byte) (*Report, error) {
	var rep Report
	if err := json.Unmarshal(b, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode raw report: %w", err)
	}

	return &rep, nil
}
