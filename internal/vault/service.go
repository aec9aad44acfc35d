// Package vault owns the current inventory of every owner. It serializes the
// writers of one owner, persists with optimistic versioning and opens owned
// containers.
package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/concurrency"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/inventory"
	"github.com/osse101/casevault/internal/logger"
	"github.com/osse101/casevault/internal/lootbox"
	"github.com/osse101/casevault/internal/metrics"
	"github.com/osse101/casevault/internal/repository"
)

// View is an owner's inventory at a stored version
type View struct {
	OwnerID   string
	Inventory *inventory.Inventory
	Version   int64
	// Changed is false when the operation was a no-op
	Changed bool
}

// OpenResult is the outcome of opening an owned container
type OpenResult struct {
	View
	Unlock *domain.UnlockResult
}

// Service defines the per-owner inventory interface
type Service interface {
	Get(ctx context.Context, ownerID string) (*View, error)
	Add(ctx context.Context, ownerID string, inst domain.ItemInstance) (*View, error)
	Remove(ctx context.Context, ownerID string, index int) (*View, error)
	Equip(ctx context.Context, ownerID string, index int, slot domain.EquipSlot) (*View, error)
	Unequip(ctx context.Context, ownerID string, index int, slot domain.EquipSlot) (*View, error)
	// OpenContainer consumes the container at index and adds the unlocked item
	OpenContainer(ctx context.Context, ownerID string, index int) (*OpenResult, error)
	Unlocks(ctx context.Context, ownerID string, limit int) ([]domain.UnlockRecord, error)
	Delete(ctx context.Context, ownerID string) error
}

type service struct {
	repo      repository.Inventory
	catalog   catalog.Lookup
	validator attribute.Validator
	unlocker  lootbox.Service
	locks     *concurrency.LockManager
	cache     *inventoryCache

	capacity  int
	cacheSize int
	cacheTTL  time.Duration
}

// Option configures the service
type Option func(*service)

// WithCapacity sets the capacity of newly created inventories
func WithCapacity(capacity int) Option {
	return func(s *service) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithCache sets the inventory cache size and entry lifetime
func WithCache(size int, ttl time.Duration) Option {
	return func(s *service) {
		if size > 0 {
			s.cacheSize = size
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// NewService creates a new vault service
func NewService(
	repo repository.Inventory,
	lookup catalog.Lookup,
	validator attribute.Validator,
	unlocker lootbox.Service,
	locks *concurrency.LockManager,
	opts ...Option,
) Service {
	s := &service{
		repo:      repo,
		catalog:   lookup,
		validator: validator,
		unlocker:  unlocker,
		locks:     locks,
		capacity:  domain.DefaultInventoryCapacity,
		cacheSize: DefaultCacheSize,
		cacheTTL:  DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = newInventoryCache(s.cacheSize, s.cacheTTL)
	return s
}

// Get returns the owner's inventory. Owners without a stored inventory get an
// empty one at version 0.
func (s *service) Get(ctx context.Context, ownerID string) (*View, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(ownerID)
	defer unlock()

	inv, version, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &View{OwnerID: ownerID, Inventory: inv, Version: version}, nil
}

// Add validates inst and prepends it. A full inventory is a no-op.
func (s *service) Add(ctx context.Context, ownerID string, inst domain.ItemInstance) (*View, error) {
	view, err := s.mutate(ctx, ownerID, inventory.OpAdd, func(inv *inventory.Inventory) (*inventory.Inventory, error) {
		return inv.Add(inst)
	})
	if err != nil && isAttributeError(err) {
		metrics.AttributeRejections.WithLabelValues(domain.ErrorKind(err)).Inc()
	}
	return view, err
}

// Remove drops the instance at index. Out of range is a no-op.
func (s *service) Remove(ctx context.Context, ownerID string, index int) (*View, error) {
	return s.mutate(ctx, ownerID, inventory.OpRemove, func(inv *inventory.Inventory) (*inventory.Inventory, error) {
		return inv.Remove(index), nil
	})
}

// Equip equips the instance at index in slot
func (s *service) Equip(ctx context.Context, ownerID string, index int, slot domain.EquipSlot) (*View, error) {
	return s.mutate(ctx, ownerID, inventory.OpEquip, func(inv *inventory.Inventory) (*inventory.Inventory, error) {
		return inv.Equip(index, slot)
	})
}

// Unequip clears the slot flag of the instance at index
func (s *service) Unequip(ctx context.Context, ownerID string, index int, slot domain.EquipSlot) (*View, error) {
	return s.mutate(ctx, ownerID, inventory.OpUnequip, func(inv *inventory.Inventory) (*inventory.Inventory, error) {
		return inv.Unequip(index, slot), nil
	})
}

// OpenContainer removes the container at index, unlocks it and prepends the
// drop. The new inventory and the unlock record are stored in one transaction.
func (s *service) OpenContainer(ctx context.Context, ownerID string, index int) (*OpenResult, error) {
	var result *domain.UnlockResult
	var containerID int

	view, err := s.mutateWith(ctx, ownerID, inventory.OpOpen,
		func(inv *inventory.Inventory) (*inventory.Inventory, error) {
			inst, ok := inv.At(index)
			if !ok {
				return nil, fmt.Errorf(ErrFmtOpenNotOwned, domain.ErrNotFound, index)
			}
			container, err := s.catalog.Get(inst.ItemID)
			if err != nil {
				return nil, err
			}
			unlocked, err := s.unlocker.UnlockItem(ctx, container)
			if err != nil {
				return nil, err
			}
			result, containerID = unlocked, container.ID
			return inv.Remove(index).Add(unlocked.Instance())
		},
		func(tx repository.Tx) error {
			return tx.RecordUnlock(ctx, &domain.UnlockRecord{
				OwnerID:     ownerID,
				ContainerID: containerID,
				Result:      *result,
			})
		},
	)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgContainerOpened,
		LogFieldOwner, ownerID,
		LogFieldContainer, containerID,
		LogFieldItem, result.ItemID)
	return &OpenResult{View: *view, Unlock: result}, nil
}

// Unlocks lists the owner's unlock history, newest first
func (s *service) Unlocks(ctx context.Context, ownerID string, limit int) ([]domain.UnlockRecord, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListUnlocks(ctx, ownerID, limit)
}

// Delete drops the owner's inventory and history
func (s *service) Delete(ctx context.Context, ownerID string) error {
	if err := validateOwner(ownerID); err != nil {
		return err
	}
	unlock := s.locks.Lock(ownerID)
	defer unlock()

	s.cache.Invalidate(ownerID)
	return s.repo.DeleteInventory(ctx, ownerID)
}

type applyFunc func(inv *inventory.Inventory) (*inventory.Inventory, error)

func (s *service) mutate(ctx context.Context, ownerID, op string, apply applyFunc) (*View, error) {
	return s.mutateWith(ctx, ownerID, op, apply, nil)
}

// mutateWith runs load, apply and save under the owner's lock. A version
// conflict drops the cached value and starts over, up to MaxSaveAttempts.
// extra runs inside the save transaction after the inventory is written.
func (s *service) mutateWith(ctx context.Context, ownerID, op string, apply applyFunc, extra func(tx repository.Tx) error) (*View, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(ownerID)
	defer unlock()

	for attempt := 1; attempt <= MaxSaveAttempts; attempt++ {
		inv, version, err := s.load(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		next, err := apply(inv)
		if err != nil {
			s.recordOutcome(op, domain.ErrorKind(err))
			log.Warn(LogMsgOperationRejected,
				LogFieldOwner, ownerID,
				LogFieldOperation, op,
				LogFieldKind, domain.ErrorKind(err),
				LogFieldError, err)
			return nil, err
		}
		if next == inv {
			s.recordOutcome(op, metrics.OutcomeNoop)
			return &View{OwnerID: ownerID, Inventory: inv, Version: version}, nil
		}

		newVersion, err := s.save(ctx, ownerID, next, version, extra)
		if errors.Is(err, repository.ErrVersionConflict) {
			metrics.InventoryVersionConflicts.Inc()
			s.cache.Invalidate(ownerID)
			log.Warn(LogMsgVersionConflict,
				LogFieldOwner, ownerID,
				LogFieldOperation, op,
				LogFieldAttempt, attempt)
			continue
		}
		if err != nil {
			s.recordOutcome(op, domain.KindInternal)
			return nil, fmt.Errorf(ErrFmtSaveInventory, ownerID, err)
		}

		s.cache.Set(ownerID, next, newVersion)
		s.recordOutcome(op, metrics.OutcomeOK)
		log.Debug(LogMsgInventoryChanged,
			LogFieldOwner, ownerID,
			LogFieldOperation, op,
			LogFieldVersion, newVersion)
		return &View{OwnerID: ownerID, Inventory: next, Version: newVersion, Changed: true}, nil
	}

	s.recordOutcome(op, domain.KindConflict)
	return nil, fmt.Errorf(ErrFmtRetriesExhaust, repository.ErrVersionConflict, MaxSaveAttempts)
}

// load returns the cached inventory or reads it from the repository
func (s *service) load(ctx context.Context, ownerID string) (*inventory.Inventory, int64, error) {
	if entry, ok := s.cache.Get(ownerID); ok {
		return entry.inv, entry.version, nil
	}

	snap, err := s.repo.GetInventory(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		inv := inventory.New(s.catalog, s.validator, inventory.WithCapacity(s.capacity))
		s.cache.Set(ownerID, inv, 0)
		return inv, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf(ErrFmtLoadInventory, ownerID, err)
	}

	inv, err := inventory.Load(s.catalog, s.validator, snap)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgStoredInvalid, LogFieldOwner, ownerID, LogFieldError, err)
		return nil, 0, fmt.Errorf(ErrFmtLoadInventory, ownerID, err)
	}
	s.cache.Set(ownerID, inv, snap.Version)
	return inv, snap.Version, nil
}

func (s *service) save(ctx context.Context, ownerID string, inv *inventory.Inventory, version int64, extra func(tx repository.Tx) error) (int64, error) {
	snap := inv.Snapshot()
	snap.Version = version

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer repository.SafeRollback(ctx, tx)

	newVersion, err := tx.SaveInventory(ctx, ownerID, snap)
	if err != nil {
		return 0, err
	}
	if extra != nil {
		if err := extra(tx); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newVersion, nil
}

func (s *service) recordOutcome(op, outcome string) {
	metrics.InventoryOperations.WithLabelValues(op, outcome).Inc()
}

func validateOwner(ownerID string) error {
	if _, err := uuid.Parse(ownerID); err != nil {
		return fmt.Errorf(ErrFmtInvalidOwner, domain.ErrInvalidInput, ownerID)
	}
	return nil
}

func isAttributeError(err error) bool {
	return errors.Is(err, domain.ErrUnsupported) ||
		errors.Is(err, domain.ErrOutOfRange) ||
		errors.Is(err, domain.ErrInvalidFormat)
}
