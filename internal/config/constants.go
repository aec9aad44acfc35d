package config

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Defaults
const (
	DefaultPort              = 8080
	DefaultCatalogPath       = "configs/catalog.json"
	DefaultImageBaseURL      = "https://cdn.casevault.dev/images"
	DefaultLanguage          = "en"
	DefaultDBMaxConns        = 20
	DefaultInventoryCapacity = 256
	DefaultCacheSize         = 1000
	DefaultMaxRequestBytes   = 1 << 20
)

// Error Messages
const (
	ErrMsgInvalidPort     = "invalid PORT value"
	ErrMsgInvalidSeed     = "invalid RANDOM_SEED value"
	ErrMsgInvalidConfig   = "invalid configuration"
	ErrMsgUnknownStorage  = "STORAGE_DRIVER must be memory or postgres"
	ErrMsgUnknownFormat   = "LOG_FORMAT must be json or text"
	ErrMsgBadLanguage     = "DEFAULT_LANGUAGE is not a BCP 47 tag"
	ErrMsgMustBePositive  = "must be positive"
	ErrMsgPortRange       = "PORT must be in 1..65535"
	ErrMsgEmptyCatalog    = "CATALOG_PATH must be set"
	ErrMsgMissingSchema   = "ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)"
	ErrMsgSchemaMismatch  = "ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated"
	ErrMsgMissingRequired = "missing required environment variables: %s"
)
