// Package storage abstracts where coverage report files live. Reports
// are fetched to local disk before parsing since the engine memory-maps
// its input.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/coverage-analysis/pkg/config"
)

// Storage is the interface for report object storage backends.
type Storage interface {
	// Upload stores data from reader under the given key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// UploadFile stores a local file under the given key.
	UploadFile(ctx context.Context, key string, localPath string) error

	// Download opens the object at key for reading.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// DownloadFile copies the object at key to a local file.
	DownloadFile(ctx context.Context, key string, localPath string) error

	// Delete removes the object at key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the location of key, a filesystem path for local
	// storage or a public URL for remote backends.
	URL(key string) string
}

// Type identifies a storage backend.
type Type string

const (
	TypeLocal Type = "local"
	TypeCOS   Type = "cos"
)

// New creates a Storage backend from the configuration.
func New(cfg *config.StorageConfig) (Storage, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	switch Type(cfg.Type) {
	case TypeCOS:
		return NewCOSStorage(&COSConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Domain:    cfg.Domain,
			Scheme:    cfg.Scheme,
		})
	default:
		return NewLocalStorage(cfg.LocalPath)
	}
}

// ValidateConfig checks the storage section of the configuration.
func ValidateConfig(cfg *config.StorageConfig) error {
	if cfg == nil {
		return fmt.Errorf("storage config is nil")
	}

	t := Type(cfg.Type)
	if t == "" {
		t = TypeLocal
	}

	switch t {
	case TypeLocal:
		if cfg.LocalPath == "" {
			return fmt.Errorf("local storage path is required")
		}
	case TypeCOS:
		if cfg.Bucket == "" {
			return fmt.Errorf("COS bucket is required")
		}
		if cfg.Region == "" {
			return fmt.Errorf("COS region is required")
		}
		if cfg.SecretID == "" || cfg.SecretKey == "" {
			return fmt.Errorf("COS credentials are required")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}

	return nil
}
