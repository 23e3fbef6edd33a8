package storage

import "context"

// System stores and retrieves document blobs.
type System interface {
	// Init creates the base directory.
	Init(ctx context.Context) error

	// Store writes data at key, replacing existing content.
	// Returns ErrTooLarge when data exceeds the maximum document size.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at key, or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Path returns the absolute filesystem path backing key.
	Path(ctx context.Context, key string) (string, error)

	// MaxSize returns the maximum blob size in bytes.
	MaxSize() int64
}
