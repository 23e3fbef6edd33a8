// Package storage keeps working copies of documents as blobs on the local
// filesystem, addressed by slash-separated keys.
package storage

import "errors"

var (
	// ErrNotFound indicates the requested key does not exist.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates the key exists but cannot be accessed.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey covers empty keys, absolute keys and path traversal.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrTooLarge indicates a blob exceeds the configured maximum document size.
	ErrTooLarge = errors.New("storage: blob exceeds maximum document size")
)
