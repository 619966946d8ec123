package profile

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

// ErrObjectNotFound is returned by ObjectStorage.Get when no object exists under a key.
var ErrObjectNotFound = errors.New("object not found")

// Repository persists profiles.
type Repository interface {
	Create(ctx context.Context, p Profile) error
	Get(ctx context.Context, id uuid.UUID) (Profile, bool, error)
	List(ctx context.Context, limit int) ([]Profile, error)
}

// ObjectStorage abstracts blob storage for chart exports (R2/S3/local).
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
