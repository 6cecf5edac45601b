// Package storage keeps uploaded product images on a local directory or an
// S3-compatible bucket behind one small interface.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Disk interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Delete(ctx context.Context, name string) error
	// URL is the public address the storefront serves name from.
	URL(name string) string
}

type Config struct {
	Disk      string
	PublicDir string
	URLPrefix string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string
}

func New(ctx context.Context, cfg Config) (Disk, error) {
	switch cfg.Disk {
	case "", "local":
		return NewLocalDisk(filepath.Join(cfg.PublicDir, "images"), cfg.URLPrefix), nil
	case "s3":
		return NewS3Disk(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown disk %q", cfg.Disk)
	}
}

// UniqueName builds a collision-free object name that keeps the upload's extension.
func UniqueName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return uuid.New().String() + ext
}
