package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreReadNotFound(t *testing.T) {
	store := NewMemStore()

	_, err := store.Read(context.Background(), "covid-silver/missing.parquet")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreWriteAndRead(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	err := store.Write(ctx, "covid-bronze/covid_cases.json", []byte(`{"data":[]}`), true)
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "covid-bronze/covid_cases.json")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := store.Read(ctx, "covid-bronze/covid_cases.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"data":[]}`), data)
}

func TestMemStoreOverwriteFlag(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "k", []byte("v1"), false))

	err := store.Write(ctx, "k", []byte("v2"), false)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	require.NoError(t, store.Write(ctx, "k", []byte("v3"), true))

	data, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v3"), data)
}

func TestMemStoreReadReturnsCopy(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "k", []byte("abc"), true))

	data, err := store.Read(ctx, "k")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestParseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ConnectionInfo
		wantErr bool
	}{
		{
			name:  "empty means default credential chain",
			input: "",
			want:  ConnectionInfo{},
		},
		{
			name:  "full minio style",
			input: "endpoint=http://localhost:9000;access_key=minio;secret_key=minio123",
			want: ConnectionInfo{
				Endpoint:  "http://localhost:9000",
				AccessKey: "minio",
				SecretKey: "minio123",
			},
		},
		{
			name:  "whitespace and trailing separator",
			input: " endpoint = http://s3.local ; access_key = ak ; ",
			want: ConnectionInfo{
				Endpoint:  "http://s3.local",
				AccessKey: "ak",
			},
		},
		{
			name:  "unknown keys ignored",
			input: "endpoint=http://s3.local;protocol=https",
			want: ConnectionInfo{
				Endpoint: "http://s3.local",
			},
		},
		{
			name:    "malformed segment",
			input:   "endpoint",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConnectionString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
