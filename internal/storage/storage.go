package storage

import (
	"context"
	"fmt"

	"github.com/Sa-pphire/contactcard/internal/config"
	"github.com/Sa-pphire/contactcard/internal/pkg/logger"
)

// Storage driver names accepted by STORAGE_DRIVER.
const (
	DriverS3         = "s3"
	DriverFilesystem = "filesystem"
	DriverMemory     = "memory"
)

// BlobStore persists binary assets under a logical folder and returns
// a resolvable URL for each stored object. There is no overwrite or
// versioning contract; every Put stores a new object.
type BlobStore interface {
	Put(ctx context.Context, folder, name, contentType string, data []byte) (string, error)
}

// FromConfig selects the blob store backend from configuration.
func FromConfig(ctx context.Context, cfg *config.Config, log *logger.Logger) (BlobStore, error) {
	switch cfg.StorageDriver {
	case DriverS3:
		log.Info("using s3 blob store", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
		return NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
	case DriverFilesystem:
		log.Info("using filesystem blob store", "base_dir", cfg.LocalStoragePath, "static_base", cfg.StaticURLBase)
		return NewFilesystemStore(cfg.LocalStoragePath, cfg.StaticURLBase), nil
	case DriverMemory:
		log.Info("using in-memory blob store")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
