package repository

// DefaultUnlockListLimit bounds ListUnlocks when the caller passes no limit
const DefaultUnlockListLimit = 50

const (
	ErrMsgVersionConflict = "inventory version conflict"
)

const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
	LogFieldError        = "error"
)
