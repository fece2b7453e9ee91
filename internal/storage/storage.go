package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrPresignUnsupported is returned by backends that cannot hand out direct URLs;
// callers stream the object through Open instead.
var ErrPresignUnsupported = errors.New("presigned URLs not supported by this storage backend")

// ErrObjectNotFound is returned when the object key does not exist.
var ErrObjectNotFound = errors.New("object not found in storage")

// FileStorage defines the interface for document object storage.
type FileStorage interface {
	// PutObject stores data under objectKey, replacing any existing object.
	PutObject(ctx context.Context, objectKey string, contentType string, data []byte) error

	// Open streams an object's content. The caller closes the reader.
	Open(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
