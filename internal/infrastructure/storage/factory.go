// File: internal/infrastructure/storage/factory.go
package storage

import (
	"context"
	"fmt"

	"github.com/lolmatina/coincash-back/internal/config"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
)

// New builds the file storage backend selected by storage.type.
func New(ctx context.Context, cfg *config.Config) (repository.Storage, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.LocalURL)
	case "supabase":
		return NewSupabaseStorage(cfg.Supabase.URL, cfg.Supabase.ServiceKey), nil
	case "s3":
		return NewS3Storage(ctx, cfg.Storage.S3)
	default:
		return nil, fmt.Errorf("unknown storage type %q (expected \"local\", \"supabase\" or \"s3\")", cfg.Storage.Type)
	}
}
