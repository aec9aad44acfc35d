package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/concurrency"
	"github.com/osse101/casevault/internal/config"
	"github.com/osse101/casevault/internal/handler"
	"github.com/osse101/casevault/internal/lootbox"
	"github.com/osse101/casevault/internal/server"
	"github.com/osse101/casevault/internal/utils"
	"github.com/osse101/casevault/internal/vault"
)

// LoadCatalog reads, validates and indexes the catalog file named by cfg
func LoadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, *catalog.Localizer, error) {
	cat, loc, err := catalog.LoadFile(ctx, catalog.NewLoader(), cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	return cat, loc, nil
}

// InitializeServices wires the unlock and vault services over a loaded
// catalog and the selected storage.
func InitializeServices(cfg *config.Config, cat *catalog.Catalog, loc *catalog.Localizer, storage *Storage) (server.Services, error) {
	if cfg.RandomSeed != 0 {
		slog.Warn(LogMsgRandomSeedFixed, "seed", cfg.RandomSeed)
	}

	checker := attribute.NewChecker(cat)
	unlocker, err := lootbox.NewService(cat, checker,
		lootbox.WithRandomSource(utils.NewRandomSource(cfg.RandomSeed)),
		lootbox.WithCacheSize(cfg.CacheSize),
	)
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgFailedCreateUnlocker, err)
	}

	vaultService := vault.NewService(storage.Inventory, cat, checker, unlocker, concurrency.NewLockManager(),
		vault.WithCapacity(cfg.InventoryCapacity),
		vault.WithCache(cfg.CacheSize, cfg.CacheTTL),
	)

	return server.Services{
		Catalog:   cat,
		Presenter: handler.NewPresenter(loc, cfg.ImageBaseURL, cfg.DefaultLanguage),
		Unlocker:  unlocker,
		Vault:     vaultService,
		DBPool:    storage.ReadinessPool(),
	}, nil
}

// ServerOptions maps the transport settings of cfg
func ServerOptions(cfg *config.Config) server.Options {
	return server.Options{
		Port:               cfg.Port,
		APIKey:             cfg.APIKey,
		TrustedProxies:     cfg.TrustedProxies,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MaxRequestBytes:    cfg.MaxRequestBytes,
	}
}
