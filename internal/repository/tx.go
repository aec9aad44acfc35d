package repository

import (
	"context"

	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/logger"
)

// Tx defines the interface for transactional operations
type Tx interface {
	GetInventory(ctx context.Context, ownerID string) (*domain.InventorySnapshot, error)
	SaveInventory(ctx context.Context, ownerID string, snap domain.InventorySnapshot) (int64, error)
	RecordUnlock(ctx context.Context, record *domain.UnlockRecord) error
	Commit(ctx context.Context) error
	// Rollback is a no-op after Commit
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, LogFieldError, err)
	}
}
