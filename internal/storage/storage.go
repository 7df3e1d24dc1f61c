// Package storage abstracts the blob backend behind a small interface with
// two implementations mirroring the two deployment targets: an object store
// (MinIO) and a local uploads directory.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned when a storage key would resolve outside the
// configured uploads directory.
var ErrInvalidKey = errors.New("storage key resolves outside the uploads directory")

// BlobStore is the byte-storage abstraction used by the photo service.
// Put returns the public URL of the stored object.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}
