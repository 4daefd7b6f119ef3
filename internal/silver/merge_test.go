package silver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlima/medalha/internal/tables"
	"github.com/dlima/medalha/pkg/blob"
)

func fact(idData, idEstado, casos int64) tables.FactCovid {
	return tables.FactCovid{IDData: idData, IDEstado: idEstado, CasosConfirmados: casos}
}

func TestUpsert(t *testing.T) {
	existing := []tables.FactCovid{
		fact(20210315, 35, 100),
		fact(20210315, 13, 50),
	}
	incoming := []tables.FactCovid{
		fact(20210315, 35, 120), // updated attributes, same key
		fact(20210316, 35, 130), // new key
	}

	merged := Upsert(existing, incoming)
	require.Len(t, merged, 3)

	byKey := make(map[string]tables.FactCovid)
	for _, f := range merged {
		byKey[f.Key()] = f
	}

	// Latest attributes win; one row per key.
	assert.Equal(t, int64(120), byKey["20210315/35"].CasosConfirmados)
	assert.Equal(t, int64(50), byKey["20210315/13"].CasosConfirmados)
	assert.Equal(t, int64(130), byKey["20210316/35"].CasosConfirmados)
}

func TestUpsertIdempotent(t *testing.T) {
	rows := []tables.FactCovid{
		fact(20210315, 35, 100),
		fact(20210315, 13, 50),
	}

	once := Upsert(nil, rows)
	twice := Upsert(once, rows)

	assert.Equal(t, once, twice)
}

// Merging into a non-existent key writes exactly the batch, with no
// error from the not-found check.
func TestMergeTableFirstWrite(t *testing.T) {
	store := blob.NewMemStore()
	ctx := context.Background()

	rows := []tables.FactCovid{
		fact(20210315, 35, 100),
		fact(20210315, 13, 50),
	}

	n, err := MergeTable(ctx, store, testLogger(), FactKey, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := store.Read(ctx, FactKey)
	require.NoError(t, err)

	persisted, err := tables.Decode[tables.FactCovid](data)
	require.NoError(t, err)
	assert.ElementsMatch(t, rows, persisted)
}

// Re-merging the same batch yields the same row set as merging once.
func TestMergeTableIdempotentRemerge(t *testing.T) {
	store := blob.NewMemStore()
	ctx := context.Background()

	rows := []tables.FactCovid{
		fact(20210315, 35, 100),
		fact(20210315, 13, 50),
	}

	n, err := MergeTable(ctx, store, testLogger(), FactKey, rows)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	first, err := store.Read(ctx, FactKey)
	require.NoError(t, err)

	n, err = MergeTable(ctx, store, testLogger(), FactKey, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	second, err := store.Read(ctx, FactKey)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMergeTableUpsertsAcrossRuns(t *testing.T) {
	store := blob.NewMemStore()
	ctx := context.Background()

	_, err := MergeTable(ctx, store, testLogger(), FactKey, []tables.FactCovid{
		fact(20210315, 35, 100),
	})
	require.NoError(t, err)

	// Next batch revises the counter for the same composite key.
	n, err := MergeTable(ctx, store, testLogger(), FactKey, []tables.FactCovid{
		fact(20210315, 35, 150),
		fact(20210316, 35, 200),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := store.Read(ctx, FactKey)
	require.NoError(t, err)

	persisted, err := tables.Decode[tables.FactCovid](data)
	require.NoError(t, err)
	require.Len(t, persisted, 2)

	byKey := make(map[string]tables.FactCovid)
	for _, f := range persisted {
		byKey[f.Key()] = f
	}
	assert.Equal(t, int64(150), byKey["20210315/35"].CasosConfirmados)
}

func TestMergeTableCorruptTarget(t *testing.T) {
	store := blob.NewMemStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, FactKey, []byte("not parquet"), true))

	_, err := MergeTable(ctx, store, testLogger(), FactKey, []tables.FactCovid{
		fact(20210315, 35, 100),
	})
	assert.Error(t, err)

	// The prior object is untouched on failure.
	data, err := store.Read(ctx, FactKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("not parquet"), data)
}
