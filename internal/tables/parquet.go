package tables

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// Encode serializes rows to a parquet object ready for the blob
// store. Tables are small enough to buffer whole.
func Encode[T any](rows []T) ([]byte, error) {
	var buf bytes.Buffer

	if err := parquet.Write(&buf, rows); err != nil {
		return nil, fmt.Errorf("failed to encode parquet: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode deserializes a parquet object read back from the blob store.
// A payload that does not match the declared row schema is an error,
// not a silently reshaped table.
func Decode[T any](data []byte) ([]T, error) {
	rows, err := parquet.Read[T](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode parquet: %w", err)
	}

	return rows, nil
}
