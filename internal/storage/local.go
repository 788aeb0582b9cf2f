package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ErrPublishNotConfigured is returned when publishing is attempted
// without an S3 backend configured.
var ErrPublishNotConfigured = errors.New("publishing is not configured")

// Compile-time check that LocalStore implements Store.
var _ Store = (*LocalStore)(nil)

// LocalStore implements Store on the local blocks directory.
// It does not support publishing unless wrapped with S3Store.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a LocalStore rooted at dir, creating the
// directory if it doesn't exist. If dir is empty, "blocks" under the
// working directory is used.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "blocks"
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create blocks directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the blocks directory path.
func (s *LocalStore) Dir() string {
	return s.dir
}

// BlockPath returns the path a block file has inside the blocks directory.
func (s *LocalStore) BlockPath(filename string) string {
	return filepath.Join(s.dir, filename)
}

// ListFiles returns the sorted file names present in the blocks directory.
func (s *LocalStore) ListFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read blocks directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes the given files from the blocks directory.
// It continues even if some files fail to delete, returning the first
// error encountered.
func (s *LocalStore) Remove(ctx context.Context, filenames []string) error {
	var firstErr error
	for _, name := range filenames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}

		if err := os.Remove(s.BlockPath(name)); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove block file %s: %w", name, err)
			}
		}
	}
	return firstErr
}

// Publish is not supported by LocalStore and returns ErrPublishNotConfigured.
func (s *LocalStore) Publish(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "", ErrPublishNotConfigured
}
