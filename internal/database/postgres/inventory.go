package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/repository"
)

// querier is the subset of pgx shared by the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InventoryRepository implements repository.Inventory for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetInventory loads the owner's snapshot
func (r *InventoryRepository) GetInventory(ctx context.Context, ownerID string) (*domain.InventorySnapshot, error) {
	return getInventory(ctx, r.db, ownerID, false)
}

// SaveInventory writes snap if the stored version still equals snap.Version
func (r *InventoryRepository) SaveInventory(ctx context.Context, ownerID string, snap domain.InventorySnapshot) (int64, error) {
	return saveInventory(ctx, r.db, ownerID, snap)
}

// DeleteInventory removes the owner's snapshot and unlock history
func (r *InventoryRepository) DeleteInventory(ctx context.Context, ownerID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, queryDeleteUnlocks, ownerID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteInventory, err)
	}
	if _, err := tx.Exec(ctx, queryDeleteInventory, ownerID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteInventory, err)
	}
	return tx.Commit(ctx)
}

// ListUnlocks returns the owner's newest unlock records first
func (r *InventoryRepository) ListUnlocks(ctx context.Context, ownerID string, limit int) ([]domain.UnlockRecord, error) {
	if limit <= 0 {
		limit = repository.DefaultUnlockListLimit
	}

	rows, err := r.db.Query(ctx, queryListUnlocks, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUnlocks, err)
	}
	defer rows.Close()

	records := []domain.UnlockRecord{}
	for rows.Next() {
		var (
			rec        domain.UnlockRecord
			resultJSON []byte
		)
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.ContainerID, &resultJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUnlocks, err)
		}
		if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeUnlock, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUnlocks, err)
	}
	return records, nil
}

// BeginTx starts a transaction. Reads inside it lock the inventory row.
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &inventoryTx{tx: tx}, nil
}

type inventoryTx struct {
	tx pgx.Tx
}

func (t *inventoryTx) GetInventory(ctx context.Context, ownerID string) (*domain.InventorySnapshot, error) {
	return getInventory(ctx, t.tx, ownerID, true)
}

func (t *inventoryTx) SaveInventory(ctx context.Context, ownerID string, snap domain.InventorySnapshot) (int64, error) {
	return saveInventory(ctx, t.tx, ownerID, snap)
}

func (t *inventoryTx) RecordUnlock(ctx context.Context, record *domain.UnlockRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeUnlock, err)
	}
	err = t.tx.QueryRow(ctx, queryInsertUnlock,
		record.OwnerID,
		record.ContainerID,
		record.Result.ItemID,
		record.Result.Special,
		resultJSON,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordUnlock, err)
	}
	return nil
}

func (t *inventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *inventoryTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func getInventory(ctx context.Context, q querier, ownerID string, forUpdate bool) (*domain.InventorySnapshot, error) {
	query := queryGetInventory
	if forUpdate {
		query = queryGetInventoryForUpdate
	}

	var (
		snap      domain.InventorySnapshot
		itemsJSON []byte
	)
	err := q.QueryRow(ctx, query, ownerID).Scan(&snap.Capacity, &itemsJSON, &snap.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: inventory of %s", domain.ErrNotFound, ownerID)
		}
		return nil, wrapError(ErrMsgFailedToGetInventory, err)
	}

	if err := json.Unmarshal(itemsJSON, &snap.Items); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeInventory, err)
	}
	if snap.Items == nil {
		snap.Items = []domain.ItemInstance{}
	}
	return &snap, nil
}

func saveInventory(ctx context.Context, q querier, ownerID string, snap domain.InventorySnapshot) (int64, error) {
	items := snap.Items
	if items == nil {
		items = []domain.ItemInstance{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeInventory, err)
	}

	var version int64
	if snap.Version == 0 {
		err = q.QueryRow(ctx, queryInsertInventory, ownerID, snap.Capacity, itemsJSON).Scan(&version)
	} else {
		err = q.QueryRow(ctx, queryUpdateInventory, ownerID, snap.Capacity, itemsJSON, snap.Version).Scan(&version)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrVersionConflict
		}
		return 0, wrapError(ErrMsgFailedToSaveInventory, err)
	}
	return version, nil
}

// wrapError maps malformed owner ids to domain.ErrInvalidInput
func wrapError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeInvalidTextRepresentation {
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, msg, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

var _ repository.Inventory = (*InventoryRepository)(nil)
