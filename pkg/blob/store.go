// Package blob provides key-addressed object storage for the data
// lake. The pipeline persists every bronze, silver and gold artifact
// through the Store interface; objects are read and written whole.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no object exists at the key.
// Callers checking for a prior merge target treat this as "first
// write", not as a failure.
var ErrNotFound = errors.New("blob: object not found")

// ErrAlreadyExists is returned by Write when the key is occupied and
// overwrite was not requested.
var ErrAlreadyExists = errors.New("blob: object already exists")

// Store is a key-addressed object store.
type Store interface {
	// Exists reports whether an object is present at key.
	Exists(ctx context.Context, key string) (bool, error)

	// Read returns the whole object at key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores data at key. When overwrite is false and the key
	// is occupied, it fails with ErrAlreadyExists.
	Write(ctx context.Context, key string, data []byte, overwrite bool) error
}
