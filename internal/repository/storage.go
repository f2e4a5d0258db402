// Package repository selects and wires the snapshot-store backend.
package repository

import (
	"context"
	"fmt"

	"github.com/muhandis-app/assistant-api/internal/config"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/repository/mongo"
	"github.com/muhandis-app/assistant-api/internal/repository/mysql"
	"github.com/muhandis-app/assistant-api/internal/repository/postgres"
	"github.com/muhandis-app/assistant-api/internal/repository/sqlite"
)

// OpenSnapshotStore returns the snapshot repository selected by
// storage.driver, plus a close function for backends with their own
// connection. The Postgres pool is shared with the user repository and is
// closed by its owner, so its close function is a no-op.
func OpenSnapshotStore(ctx context.Context, cfg *config.Config, pg *postgres.DB) (domain.SnapshotRepository, func() error, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return postgres.NewSnapshotRepository(pg), func() error { return nil }, nil

	case "sqlite":
		repo, err := sqlite.NewSnapshotRepository(cfg.SQLite)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite snapshot store: %w", err)
		}
		return repo, repo.Close, nil

	case "mysql":
		repo, err := mysql.NewSnapshotRepository(cfg.MySQL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open mysql snapshot store: %w", err)
		}
		return repo, repo.Close, nil

	case "mongo":
		repo, err := mongo.NewSnapshotRepository(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open mongo snapshot store: %w", err)
		}
		return repo, repo.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
