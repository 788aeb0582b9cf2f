// Package storage manages the blocks directory on disk and optional
// publishing of rendered artifacts to S3. It defines the Store interface
// (port) with local disk and S3 implementations.
package storage

import (
	"context"
	"io"
)

// Store defines the blocks directory operations the workflows depend on.
type Store interface {
	// Dir returns the blocks directory path.
	Dir() string

	// BlockPath returns the absolute path a block file has inside the
	// blocks directory.
	BlockPath(filename string) string

	// ListFiles returns the file names (not paths) present in the blocks
	// directory, sorted.
	ListFiles(ctx context.Context) ([]string, error)

	// Remove deletes the given files from the blocks directory.
	// It continues even if some files fail to delete.
	Remove(ctx context.Context, filenames []string) error

	// Publish uploads data under key and returns its public URL.
	// Returns ErrPublishNotConfigured when no remote backend is set up.
	Publish(ctx context.Context, key string, data io.Reader) (url string, err error)
}
