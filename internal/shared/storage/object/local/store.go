package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"listdist/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes r to baseDir/key, replacing any existing file.
func (s *Store) Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		return 0, err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}
	return written, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.baseDir, filepath.FromSlash(clean)))
}

var _ object.ObjectStore = (*Store)(nil)
