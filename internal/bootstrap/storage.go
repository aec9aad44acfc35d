package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/casevault/internal/config"
	"github.com/osse101/casevault/internal/database"
	"github.com/osse101/casevault/internal/database/memory"
	"github.com/osse101/casevault/internal/database/postgres"
	"github.com/osse101/casevault/internal/repository"
)

// Storage holds the inventory repository and, for PostgreSQL, its pool.
type Storage struct {
	Inventory repository.Inventory
	Pool      *pgxpool.Pool // nil for memory storage
}

// InitializeStorage selects the repository named by cfg.StorageDriver.
// PostgreSQL storage connects, applies migrations and fails fast on either.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if !cfg.UsesPostgres() {
		slog.Info(LogMsgUsingMemoryStorage)
		return &Storage{Inventory: memory.NewInventoryRepository()}, nil
	}

	pool, err := database.NewPool(ctx, cfg.PoolOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied)
	slog.Info(LogMsgUsingPostgresStorage, "max_conns", cfg.DBMaxConns)

	return &Storage{
		Inventory: postgres.NewInventoryRepository(pool),
		Pool:      pool,
	}, nil
}

// ReadinessPool returns the pool readiness checks should ping, or nil
func (s *Storage) ReadinessPool() database.Pool {
	if s.Pool == nil {
		return nil
	}
	return s.Pool
}

// Close releases the database pool if there is one
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
