package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"msdsapi/internal/config"
)

// gcsStorage implements Storage on Google Cloud Storage.
type gcsStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCS creates a Cloud Storage client. Credentials come from cfg.CredentialsFile when set,
// otherwise from Application Default Credentials. Signed URLs need a service account key.
func NewGCS(ctx context.Context, cfg config.BlobConfig) (Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob bucket is required")
	}
	opts := []option.ClientOption{option.WithScopes(gcs.ScopeReadWrite)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	cli, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := cli.Bucket(cfg.Bucket).Attrs(ctx); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}

	return &gcsStorage{client: cli, bucket: cfg.Bucket}, nil
}

func (g *gcsStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = opt.ContentType
	w.Metadata = opt.Metadata
	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return ObjectInfo{}, fmt.Errorf("write gcs object: %w", err)
	}
	if err := w.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("close gcs writer: %w", err)
	}
	info := ObjectInfo{Key: key, Size: n, ContentType: opt.ContentType, LastModified: time.Now(), Metadata: opt.Metadata}
	if attrs := w.Attrs(); attrs != nil {
		info.ETag = attrs.Etag
		info.LastModified = attrs.Updated
	}
	return info, nil
}

func (g *gcsStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	rd, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	return rd, ObjectInfo{
		Key:          key,
		Size:         rd.Attrs.Size,
		ContentType:  rd.Attrs.ContentType,
		LastModified: rd.Attrs.LastModified,
	}, nil
}

func (g *gcsStorage) Delete(ctx context.Context, key string) error {
	return g.client.Bucket(g.bucket).Object(key).Delete(ctx)
}

func (g *gcsStorage) PresignGet(_ context.Context, key string, expiry time.Duration, params url.Values) (string, error) {
	return g.client.Bucket(g.bucket).SignedURL(key, &gcs.SignedURLOptions{
		Method:          "GET",
		Scheme:          gcs.SigningSchemeV4,
		Expires:         time.Now().Add(expiry),
		QueryParameters: params,
	})
}

// Close releases the underlying client.
func (g *gcsStorage) Close() error {
	return g.client.Close()
}
