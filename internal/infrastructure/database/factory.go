// File: internal/infrastructure/database/factory.go
package database

import (
	"context"
	"fmt"

	"github.com/lolmatina/coincash-back/internal/config"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
	"github.com/lolmatina/coincash-back/internal/infrastructure/database/postgres"
	"github.com/lolmatina/coincash-back/internal/infrastructure/database/supabase"
)

// New builds the persistence backend selected by database.type.
// An unknown type is a startup error, never a silent fallback.
func New(ctx context.Context, cfg *config.Config) (repository.Database, error) {
	switch cfg.Database.Type {
	case "direct":
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.NewDatabase(pool), nil
	case "supabase":
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		return supabase.NewDatabase(client), nil
	default:
		return nil, fmt.Errorf("unknown database type %q (expected \"direct\" or \"supabase\")", cfg.Database.Type)
	}
}
