package object

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidKey is returned for keys that escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStore saves and retrieves raw uploaded files.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// CleanKey normalizes key to a slash separated relative path.
func CleanKey(key string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(strings.TrimSpace(key), "\\", "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return clean, nil
}
