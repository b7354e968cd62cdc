package storage

import (
	"context"
	"io"
)

// Storage abstracts the blob store behind image uploads. The local
// implementation keeps development self-contained; a cloud bucket can be
// swapped in without touching the services.
type Storage interface {
	// Save writes the blob under key and returns the public URL it will be
	// served from.
	Save(ctx context.Context, key string, reader io.Reader) (string, error)

	// Open returns the blob for reading.
	Open(key string) (io.ReadCloser, error)

	// Exists reports whether the blob exists and its size.
	Exists(ctx context.Context, key string) (bool, int64, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error
}
