// Package storage contains object storage abstractions for the PDF and image blobs.
// Implementations stream content and never touch local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"msdsapi/internal/config"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob store used by the file lifecycle manager.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL. params are extra query
	// parameters signed into the URL (e.g. response-content-disposition).
	PresignGet(ctx context.Context, key string, expiry time.Duration, params url.Values) (string, error)
}

// NewFromConfig builds the backend selected by cfg.Backend.
func NewFromConfig(ctx context.Context, cfg config.BlobConfig) (Storage, error) {
	switch cfg.Backend {
	case "", BackendMinIO:
		return NewMinIO(ctx, cfg)
	case BackendGCS:
		return NewGCS(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Backend)
	}
}

const (
	BackendMinIO = "minio"
	BackendGCS   = "gcs"
)
