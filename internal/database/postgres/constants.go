package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeInvalidTextRepresentation is raised for malformed UUIDs
	PgErrorCodeInvalidTextRepresentation = "22P02"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetInventory    = "failed to get inventory"
	ErrMsgFailedToSaveInventory   = "failed to save inventory"
	ErrMsgFailedToDeleteInventory = "failed to delete inventory"
	ErrMsgFailedToEncodeInventory = "failed to encode inventory items"
	ErrMsgFailedToDecodeInventory = "failed to decode inventory items"
)

// Error Messages - Unlock History
const (
	ErrMsgFailedToRecordUnlock = "failed to record unlock"
	ErrMsgFailedToListUnlocks  = "failed to list unlocks"
	ErrMsgFailedToEncodeUnlock = "failed to encode unlock result"
	ErrMsgFailedToDecodeUnlock = "failed to decode unlock result"
)
