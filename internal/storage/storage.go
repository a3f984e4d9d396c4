package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/courseware-labs/account-service/config"
)

// ObjectStore is the image-store contract: profile images are written under a
// generated key, removed when superseded, and addressed by URL for rendering.
// Backends do not list or enumerate objects.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New selects a backend from config. The local disk driver mirrors the
// classic uploads-directory layout; gcs and minio are drop-in object-store
// equivalents.
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.StorageDriver {
	case "local", "":
		return NewLocalStore(cfg.UploadsDir)
	case "gcs":
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSONPath)
	case "minio":
		return NewMinioStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
