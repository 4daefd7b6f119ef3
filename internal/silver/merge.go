package silver

import (
	"context"
	"fmt"
	"sort"

	"github.com/dlima/medalha/internal/tables"
	"github.com/dlima/medalha/pkg/blob"
	"github.com/dlima/medalha/pkg/logger"
)

// Folder is the fixed silver layer prefix; not configurable.
const Folder = "covid-silver"

// Silver object keys.
const (
	FactKey     = Folder + "/fact_covid.parquet"
	DimDateKey  = Folder + "/dim_date.parquet"
	DimStateKey = Folder + "/dim_state.parquet"
)

// Upsert merges incoming rows into existing ones by natural key:
// an incoming row replaces the existing row sharing its key, so each
// key appears exactly once with its latest attributes. Output is
// sorted by key to keep re-runs byte-stable.
func Upsert[T tables.Row](existing, incoming []T) []T {
	merged := make([]T, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, row := range merged {
		index[row.Key()] = i
	}

	for _, row := range incoming {
		if i, ok := index[row.Key()]; ok {
			merged[i] = row
			continue
		}
		index[row.Key()] = len(merged)
		merged = append(merged, row)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Key() < merged[j].Key()
	})

	return merged
}

// MergeTable merges newly derived rows into whatever table exists at
// key and persists the whole object. A missing target means first
// write. The write is a whole-object overwrite: an interruption
// between read and write leaves the prior object untouched and the
// merge must be re-run.
func MergeTable[T tables.Row](ctx context.Context, store blob.Store, log *logger.Logger, key string, rows []T) (int, error) {
	exists, err := store.Exists(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("check merge target %s: %w", key, err)
	}

	merged := rows

	if exists {
		data, err := store.Read(ctx, key)
		if err != nil {
			return 0, fmt.Errorf("read merge target %s: %w", key, err)
		}

		existing, err := tables.Decode[T](data)
		if err != nil {
			return 0, fmt.Errorf("decode merge target %s: %w", key, err)
		}

		log.WithFields(map[string]interface{}{
			"key":      key,
			"existing": len(existing),
			"incoming": len(rows),
		}).Info("Merge target exists, upserting batch")

		merged = Upsert(existing, rows)
	}

	data, err := tables.Encode(merged)
	if err != nil {
		return 0, fmt.Errorf("encode table %s: %w", key, err)
	}

	if err := store.Write(ctx, key, data, true); err != nil {
		return 0, fmt.Errorf("write table %s: %w", key, err)
	}

	log.WithFields(map[string]interface{}{
		"key":  key,
		"rows": len(merged),
	}).Info("Table saved to silver layer")

	return len(merged), nil
}
