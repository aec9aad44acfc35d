package database

const (
	// DefaultMinConnections is kept open even when idle, capped by MaxConns
	DefaultMinConnections = 2

	// GooseDialect is the goose dialect of every migration
	GooseDialect = "postgres"

	// RuntimeParamApplicationName tags sessions in pg_stat_activity
	RuntimeParamApplicationName = "application_name"
)

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToSetDialect      = "failed to set migration dialect"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

const (
	LogMsgSuccessfullyConnectedToDatabase = "Connected to database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)

const (
	LogFieldVersion  = "version"
	LogFieldHost     = "host"
	LogFieldDatabase = "database"
	LogFieldMaxConns = "max_conns"
)
