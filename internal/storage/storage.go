package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	cfg "github.com/roamlog/roamlog/internal/config"
)

// ErrInvalidObjectURL marks a URL that cannot name a stored object at all,
// as opposed to a backend failure while removing one.
var ErrInvalidObjectURL = errors.New("invalid object URL")

// Storage is the media backend contract. Both implementations assign their
// own collision-resistant object names; callers never branch on which
// backend is active.
type Storage interface {
	// Store writes the file contents and returns its retrieval URL.
	// The original filename is only consulted for its extension.
	Store(ctx context.Context, file io.Reader, filename string) (string, error)

	// Remove deletes the object a previously returned URL points at.
	// An already-absent object is success: deletion is idempotent.
	Remove(ctx context.Context, url string) error
}

// New creates the media storage backend selected by config.
func New(c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case "local":
		return NewLocalStorage(c.UploadDir, c.AppURL)
	case "s3":
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
