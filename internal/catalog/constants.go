package catalog

// ==================== Configuration File Names ====================

const (
	// ConfigFileName is the default name of the catalog file
	ConfigFileName = "catalog.json"

	// DefaultLanguage is used when no localization matches
	DefaultLanguage = "en"
)

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog: %w"
	ErrMsgSchemaFailed         = "schema validation failed for %s: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoItemsDefined = "no items defined"
)

// ==================== Format Strings for Error Construction ====================

const (
	ErrFmtItemInvalid         = "%w: item %d: %s"
	ErrFmtDuplicateID         = "%w: item %d is defined more than once"
	ErrFmtWearBoundsInverted  = "%w: item %d has wearMin %v above wearMax %v"
	ErrFmtDanglingReference   = "%w: container %d references unknown item %d"
	ErrFmtContainedNoRarity   = "%w: container %d holds item %d without a known rarity"
	ErrFmtContentsOnNonBox    = "%w: item %d of type %s lists contents"
	ErrFmtUnknownLocalization = "%w: localization %q references unknown item %s"
	ErrFmtBadLanguageTag      = "%w: localization key %q is not a language tag: %v"
)

// ==================== Image Variants ====================

const (
	imageSuffixLight  = "_light.png"
	imageSuffixMedium = "_medium.png"
	imageSuffixHeavy  = "_heavy.png"
)

// ==================== Log Messages ====================

const (
	LogMsgCatalogLoaded = "Catalog loaded"
)

// ==================== Log Fields ====================

const (
	LogFieldPath       = "path"
	LogFieldItems      = "items"
	LogFieldContainers = "containers"
	LogFieldLanguages  = "languages"
)
