package repository

import (
	"context"
	"fmt"

	"github.com/osse101/casevault/internal/domain"
)

// ErrVersionConflict is returned when a save does not match the stored version.
// It wraps domain.ErrConflict.
var ErrVersionConflict = fmt.Errorf("%w: %s", domain.ErrConflict, ErrMsgVersionConflict)

// Inventory defines the interface for inventory persistence.
//
// SaveInventory is a compare-and-swap on snap.Version: version 0 creates the
// inventory, any other value must equal the stored version. On success the
// new stored version is returned. A mismatch yields ErrVersionConflict.
// GetInventory wraps domain.ErrNotFound when the owner has no inventory yet.
type Inventory interface {
	GetInventory(ctx context.Context, ownerID string) (*domain.InventorySnapshot, error)
	SaveInventory(ctx context.Context, ownerID string, snap domain.InventorySnapshot) (int64, error)
	DeleteInventory(ctx context.Context, ownerID string) error

	// ListUnlocks returns the newest unlock records of an owner first
	ListUnlocks(ctx context.Context, ownerID string, limit int) ([]domain.UnlockRecord, error)

	BeginTx(ctx context.Context) (Tx, error)
}
