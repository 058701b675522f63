// Package storage is a small filesystem abstraction with two drivers:
//   - "local": local filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2)
//
// The CLI uses it to write catalog snapshots:
//
//	disk, _ := storage.Open(ctx, config.StorageDisk())
//	disk.Put(ctx, "snapshots/catalog.json", data)
package storage

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/stockroom/config"
)

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Location describes where path lives, for messages.
	Location(path string) string
}

// Open builds the named disk from configuration.
func Open(ctx context.Context, name string) (Disk, error) {
	switch name {
	case "local", "":
		return NewLocalDisk(config.StorageLocalRoot()), nil
	case "s3":
		return NewS3Disk(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
		})
	default:
		return nil, fmt.Errorf("storage: unknown disk %q (supported: local, s3)", name)
	}
}
