// Package storage archives generated files on a local directory or an
// S3-compatible bucket (AWS S3, MinIO, R2).
package storage

import (
	"context"
	"fmt"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, replacing any existing file.
	Put(ctx context.Context, path string, content []byte, contentType string) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
	Delete(ctx context.Context, path string) error
	// URL returns where the stored file can be fetched from.
	URL(path string) string
}

// Config selects and configures a driver.
type Config struct {
	Driver    string // "local" or "s3"
	LocalRoot string
	BaseURL   string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
}

// New returns the disk named by cfg.Driver.
func New(ctx context.Context, cfg Config) (Disk, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalDisk(cfg.LocalRoot, cfg.BaseURL)
	case "s3":
		return NewS3Disk(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q (use local or s3)", cfg.Driver)
	}
}
