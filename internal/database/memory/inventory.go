// Package memory provides an in-process inventory repository. It backs the
// service when no database is configured and serves as a test double.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/repository"
)

// InventoryRepository keeps snapshots and unlock records in maps
type InventoryRepository struct {
	mu           sync.RWMutex
	inventories  map[string]domain.InventorySnapshot
	unlocks      map[string][]domain.UnlockRecord
	nextUnlockID int64
	now          func() time.Time
}

// NewInventoryRepository creates an empty repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		inventories: make(map[string]domain.InventorySnapshot),
		unlocks:     make(map[string][]domain.UnlockRecord),
		now:         time.Now,
	}
}

// GetInventory returns a copy of the stored snapshot
func (r *InventoryRepository) GetInventory(_ context.Context, ownerID string) (*domain.InventorySnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getLocked(ownerID)
}

// SaveInventory stores snap if its version matches
func (r *InventoryRepository) SaveInventory(_ context.Context, ownerID string, snap domain.InventorySnapshot) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkLocked(ownerID, snap.Version); err != nil {
		return 0, err
	}
	return r.putLocked(ownerID, snap), nil
}

// DeleteInventory drops the owner's snapshot and unlock history. Missing owners are ignored.
func (r *InventoryRepository) DeleteInventory(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inventories, ownerID)
	delete(r.unlocks, ownerID)
	return nil
}

// ListUnlocks returns up to limit records, newest first
func (r *InventoryRepository) ListUnlocks(_ context.Context, ownerID string, limit int) ([]domain.UnlockRecord, error) {
	if limit <= 0 {
		limit = repository.DefaultUnlockListLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.unlocks[ownerID]
	out := make([]domain.UnlockRecord, 0, min(limit, len(records)))
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

// BeginTx starts a transaction whose writes apply atomically on Commit
func (r *InventoryRepository) BeginTx(_ context.Context) (repository.Tx, error) {
	return &inventoryTx{repo: r, saves: make(map[string]domain.InventorySnapshot)}, nil
}

func (r *InventoryRepository) getLocked(ownerID string) (*domain.InventorySnapshot, error) {
	snap, ok := r.inventories[ownerID]
	if !ok {
		return nil, fmt.Errorf("%w: inventory of %s", domain.ErrNotFound, ownerID)
	}
	out := cloneSnapshot(snap)
	return &out, nil
}

func (r *InventoryRepository) checkLocked(ownerID string, version int64) error {
	current, ok := r.inventories[ownerID]
	if version == 0 {
		if ok {
			return repository.ErrVersionConflict
		}
		return nil
	}
	if !ok || current.Version != version {
		return repository.ErrVersionConflict
	}
	return nil
}

func (r *InventoryRepository) putLocked(ownerID string, snap domain.InventorySnapshot) int64 {
	stored := cloneSnapshot(snap)
	stored.Version = snap.Version + 1
	r.inventories[ownerID] = stored
	return stored.Version
}

func (r *InventoryRepository) appendUnlockLocked(record domain.UnlockRecord) {
	r.nextUnlockID++
	record.ID = r.nextUnlockID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now()
	}
	r.unlocks[record.OwnerID] = append(r.unlocks[record.OwnerID], record)
}

type inventoryTx struct {
	repo    *InventoryRepository
	saves   map[string]domain.InventorySnapshot
	unlocks []domain.UnlockRecord
	done    bool
}

func (t *inventoryTx) GetInventory(ctx context.Context, ownerID string) (*domain.InventorySnapshot, error) {
	if staged, ok := t.saves[ownerID]; ok {
		out := cloneSnapshot(staged)
		out.Version++
		return &out, nil
	}
	return t.repo.GetInventory(ctx, ownerID)
}

// SaveInventory stages snap. The version check runs again on Commit.
func (t *inventoryTx) SaveInventory(_ context.Context, ownerID string, snap domain.InventorySnapshot) (int64, error) {
	if t.done {
		return 0, errTxDone
	}
	t.repo.mu.RLock()
	err := t.repo.checkLocked(ownerID, snap.Version)
	t.repo.mu.RUnlock()
	if err != nil {
		return 0, err
	}
	t.saves[ownerID] = cloneSnapshot(snap)
	return snap.Version + 1, nil
}

func (t *inventoryTx) RecordUnlock(_ context.Context, record *domain.UnlockRecord) error {
	if t.done {
		return errTxDone
	}
	t.unlocks = append(t.unlocks, *record)
	return nil
}

func (t *inventoryTx) Commit(_ context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for ownerID, snap := range t.saves {
		if err := t.repo.checkLocked(ownerID, snap.Version); err != nil {
			return err
		}
	}
	for ownerID, snap := range t.saves {
		t.repo.putLocked(ownerID, snap)
	}
	for _, record := range t.unlocks {
		t.repo.appendUnlockLocked(record)
	}
	return nil
}

func (t *inventoryTx) Rollback(_ context.Context) error {
	t.done = true
	return nil
}

func cloneSnapshot(snap domain.InventorySnapshot) domain.InventorySnapshot {
	out := snap
	out.Items = make([]domain.ItemInstance, len(snap.Items))
	for i := range snap.Items {
		out.Items[i] = snap.Items[i].Clone()
	}
	return out
}

var errTxDone = errors.New("transaction already finished")

var _ repository.Inventory = (*InventoryRepository)(nil)
