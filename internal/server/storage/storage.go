// Package storage abstracts where uploaded media bytes live: the local
// filesystem in development, an S3-compatible bucket (MinIO) elsewhere.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/google/uuid"
)

type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// List returns the keys stored under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// URL returns a link a client can GET the object from. For S3 this is
	// a presigned URL with a limited lifetime.
	URL(ctx context.Context, key string) (string, error)
}

const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// RandomKey builds a collision-free object key, partitioned by date so
// bucket listings stay manageable.
func RandomKey(prefix string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%v", prefix, d.Year(), d.Month(), d.Day(), uuid.New())
}

func New(cfg *config.Config) (Storage, error) {
	switch cfg.StorageType {
	case TypeLocal:
		return NewLocalStorage(cfg.UploadDir)
	case TypeS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown storage type %q", common.ErrorConfiguration, cfg.StorageType)
	}
}
