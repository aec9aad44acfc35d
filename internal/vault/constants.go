package vault

import "time"

// MaxSaveAttempts bounds the load-apply-save loop when saves hit a version conflict
const MaxSaveAttempts = 3

// DefaultCacheSize is the default number of owners whose inventories stay cached
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default lifetime of a cached inventory
const DefaultCacheTTL = 5 * time.Minute

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrFmtInvalidOwner   = "%w: owner id %q is not a uuid"
	ErrFmtRetriesExhaust = "%w: gave up after %d attempts"
	ErrFmtOpenNotOwned   = "%w: no inventory slot %d"
	ErrFmtLoadInventory  = "failed to load inventory of %s: %w"
	ErrFmtSaveInventory  = "failed to save inventory of %s: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgInventoryChanged  = "Inventory updated"
	LogMsgOperationRejected = "Inventory operation rejected"
	LogMsgVersionConflict   = "Inventory version conflict, retrying"
	LogMsgContainerOpened   = "Container opened"
	LogMsgStoredInvalid     = "Stored inventory failed validation"
)

// Log field keys for structured logging
const (
	LogFieldOwner     = "owner_id"
	LogFieldOperation = "operation"
	LogFieldIndex     = "index"
	LogFieldVersion   = "version"
	LogFieldAttempt   = "attempt"
	LogFieldKind      = "kind"
	LogFieldItem      = "item_id"
	LogFieldContainer = "container_id"
	LogFieldError     = "error"
)
