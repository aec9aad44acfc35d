package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/osse101/casevault/internal/database"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string // when set, logs are also written to rotated session files here
	Environment string
	ServiceName string
	Version     string
	APIKey      string // optional; when set every /api route requires it

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string
	// CORSAllowedOrigins enables CORS for browser clients when non-empty
	CORSAllowedOrigins []string

	CatalogPath     string
	ImageBaseURL    string
	DefaultLanguage string

	InventoryCapacity int
	CacheSize         int
	CacheTTL          time.Duration
	RandomSeed        uint64 // 0 seeds from the clock

	StorageDriver     string
	DatabaseURL       string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	MaxRequestBytes int64
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "casevault"),
		Version:     getEnv("VERSION", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies:     getEnvAsList("TRUSTED_PROXIES"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),

		CatalogPath:     getEnv("CATALOG_PATH", DefaultCatalogPath),
		ImageBaseURL:    getEnv("IMAGE_BASE_URL", DefaultImageBaseURL),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", DefaultLanguage),

		InventoryCapacity: getEnvAsInt("INVENTORY_CAPACITY", DefaultInventoryCapacity),
		CacheSize:         getEnvAsInt("CACHE_SIZE", DefaultCacheSize),
		CacheTTL:          getEnvAsDuration("CACHE_TTL", 5*time.Minute),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "casevault"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		MaxRequestBytes: int64(getEnvAsInt("MAX_REQUEST_BYTES", DefaultMaxRequestBytes)),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if raw := getEnv("RANDOM_SEED", ""); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgInvalidSeed, err)
		}
		cfg.RandomSeed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, errors.New(ErrMsgPortRange))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, errors.New(ErrMsgUnknownFormat))
	}
	if c.StorageDriver != StorageMemory && c.StorageDriver != StoragePostgres {
		errs = append(errs, errors.New(ErrMsgUnknownStorage))
	}
	if c.CatalogPath == "" {
		errs = append(errs, errors.New(ErrMsgEmptyCatalog))
	}
	if _, err := language.Parse(c.DefaultLanguage); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", ErrMsgBadLanguage, err))
	}
	for name, v := range map[string]int{
		"INVENTORY_CAPACITY": c.InventoryCapacity,
		"CACHE_SIZE":         c.CacheSize,
		"DB_MAX_CONNS":       c.DBMaxConns,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s %s", name, ErrMsgMustBePositive))
		}
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL %s", ErrMsgMustBePositive))
	}
	if c.MaxRequestBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_REQUEST_BYTES %s", ErrMsgMustBePositive))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// UsesPostgres reports whether inventories are stored in PostgreSQL
func (c *Config) UsesPostgres() bool {
	return c.StorageDriver == StoragePostgres
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "prod" || c.Environment == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back to defaultValue when the variable is unset or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsDuration falls back to defaultValue when the variable is unset or unparsable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string.
// DATABASE_URL wins over the individual DB_* settings.
func (c *Config) GetDBConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// PoolOptions returns the connection pool settings for the configured database
func (c *Config) PoolOptions() database.PoolOptions {
	return database.PoolOptions{
		ConnString:      c.GetDBConnString(),
		ApplicationName: c.ServiceName,
		MaxConns:        c.DBMaxConns,
		MaxConnIdleTime: c.DBMaxConnIdleTime,
		MaxConnLifetime: c.DBMaxConnLifetime,
	}
}
