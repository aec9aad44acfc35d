package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgNotFound      = "item not found"
	ErrMsgNotAContainer = "item is not a container"

	// Unlock verification errors
	ErrMsgForeignItem = "item does not belong to container"

	// Attribute errors
	ErrMsgUnsupported   = "attribute not supported by item type"
	ErrMsgOutOfRange    = "attribute out of range"
	ErrMsgInvalidFormat = "attribute has invalid format"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Persistence errors
	ErrMsgConflict = "concurrent modification"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound      = errors.New(ErrMsgNotFound)
	ErrNotAContainer = errors.New(ErrMsgNotAContainer)
	ErrForeignItem   = errors.New(ErrMsgForeignItem)
	ErrUnsupported   = errors.New(ErrMsgUnsupported)
	ErrOutOfRange    = errors.New(ErrMsgOutOfRange)
	ErrInvalidFormat = errors.New(ErrMsgInvalidFormat)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
	ErrConflict      = errors.New(ErrMsgConflict)
)

// Stable error kind names used in logs, metrics labels and API responses
const (
	KindNotFound      = "not_found"
	KindNotAContainer = "not_a_container"
	KindForeignItem   = "foreign_item"
	KindUnsupported   = "unsupported"
	KindOutOfRange    = "out_of_range"
	KindInvalidFormat = "invalid_format"
	KindInvalidInput  = "invalid_input"
	KindConflict      = "conflict"
	KindInternal      = "internal"
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrNotFound, KindNotFound},
	{ErrNotAContainer, KindNotAContainer},
	{ErrForeignItem, KindForeignItem},
	{ErrUnsupported, KindUnsupported},
	{ErrOutOfRange, KindOutOfRange},
	{ErrInvalidFormat, KindInvalidFormat},
	{ErrInvalidInput, KindInvalidInput},
	{ErrConflict, KindConflict},
}

// ErrorKind classifies err by the first domain sentinel it wraps.
// Errors that wrap none of them are KindInternal.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
