package handler

// Generic HTTP error messages for client responses.
// Internal failures never expose their details; domain failures return their message.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgRequestTooLarge       = "Request body too large"
	ErrMsgInvalidPathParam      = "Invalid %s path parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnavailable           = "database connection failed"
)

// Validation messages returned per field
const (
	ValidationMsgRequired = "This field is required"
	ValidationMsgTeam     = "Must be ct or t"
	ValidationMsgMax      = "Must be at most %s"
	ValidationMsgMin      = "Must be at least %s"
	ValidationMsgGt       = "Must be greater than %s"
	ValidationMsgInvalid  = "Invalid value"
	ValidationMsgFormat   = "Invalid request format"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgValidationFailed  = "Request validation failed"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgServiceRejected   = "Service rejected request"
	LogMsgServiceFailed     = "Service call failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgInvalidPathParam  = "Invalid path parameter"
	LogMsgContainerUnlocked = "Container unlocked via API"
)

// Log field keys
const (
	LogFieldError     = "error"
	LogFieldOperation = "operation"
	LogFieldKind      = "kind"
	LogFieldStatus    = "status"
	LogFieldParam     = "param"
	LogFieldValue     = "value"
	LogFieldContainer = "container_id"
	LogFieldItem      = "item_id"
)

// Operation names used in logs
const (
	OpGetItem         = "Get catalog item"
	OpListContents    = "List container contents"
	OpContainerOdds   = "Container odds"
	OpUnlock          = "Unlock container"
	OpVerifyUnlock    = "Verify unlock"
	OpGetInventory    = "Get inventory"
	OpAddItem         = "Add item"
	OpRemoveItem      = "Remove item"
	OpEquipItem       = "Equip item"
	OpUnequipItem     = "Unequip item"
	OpOpenContainer   = "Open container"
	OpListUnlocks     = "List unlocks"
	OpDeleteInventory = "Delete inventory"
)

// Path and query parameter names
const (
	ParamID           = "id"
	ParamOwner        = "owner"
	ParamIndex        = "index"
	ParamHideSpecials = "hide_specials"
	ParamLimit        = "limit"
	HeaderAcceptLang  = "Accept-Language"
)

// MaxUnlockListLimit caps the limit query parameter of the unlock history
const MaxUnlockListLimit = 500
