package storage

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/platform/config"
)

// New returns the S3 backend when it is enabled, otherwise local files under cfg.Documents.Dir.
func New(ctx context.Context, cfg *config.Config) (FileStorage, error) {
	if cfg.S3.Enabled {
		return NewS3Storage(ctx, cfg.S3)
	}
	return NewLocalStorage(cfg.Documents.Dir)
}
