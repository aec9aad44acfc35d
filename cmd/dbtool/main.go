// Command dbtool prepares the PostgreSQL database used by the vault.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/urfave/cli/v2"

	"github.com/osse101/casevault/internal/config"
	"github.com/osse101/casevault/internal/database"
	"github.com/osse101/casevault/internal/logger"
)

const (
	maintenanceDatabase = "postgres"

	flagForce = "force"

	queryDatabaseExists    = "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	queryTerminateSessions = "SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		slog.Error("dbtool failed", "error", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "dbtool",
		Usage:  "create, migrate or reset the casevault database",
		Writer: out,
		Before: func(c *cli.Context) error {
			logger.InitLoggerWithWriter(logger.CLIConfig("dbtool", logger.LogLevelInfo), c.App.ErrWriter)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "setup",
				Usage:  "create the database if it is missing and apply migrations",
				Action: runSetup,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending migrations",
				Action: runMigrate,
			},
			{
				Name:  "reset",
				Usage: "drop and recreate the database, then apply migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagForce, Usage: "required, the database is dropped with every row in it"},
				},
				Action: runReset,
			},
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func runSetup(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := withMaintenanceConn(c.Context, cfg, func(conn *pgx.Conn, name string) error {
		return createDatabase(c.Context, conn, name)
	}); err != nil {
		return err
	}
	return migrate(c.Context, cfg)
}

func runMigrate(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return migrate(c.Context, cfg)
}

func runReset(c *cli.Context) error {
	if !c.Bool(flagForce) {
		return cli.Exit("refusing to drop the database without --force", 2)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := withMaintenanceConn(c.Context, cfg, func(conn *pgx.Conn, name string) error {
		if err := dropDatabase(c.Context, conn, name); err != nil {
			return err
		}
		return createDatabase(c.Context, conn, name)
	}); err != nil {
		return err
	}
	return migrate(c.Context, cfg)
}

// withMaintenanceConn connects to the server's maintenance database and
// passes the name of the configured target database to fn.
func withMaintenanceConn(ctx context.Context, cfg *config.Config, fn func(*pgx.Conn, string) error) error {
	connCfg, err := pgx.ParseConfig(cfg.GetDBConnString())
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}
	target := connCfg.Database
	if target == "" || target == maintenanceDatabase {
		return fmt.Errorf("refusing to manage database %q", target)
	}
	connCfg.Database = maintenanceDatabase

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", maintenanceDatabase, err)
	}
	defer conn.Close(context.Background())

	return fn(conn, target)
}

func createDatabase(ctx context.Context, conn *pgx.Conn, name string) error {
	var exists bool
	if err := conn.QueryRow(ctx, queryDatabaseExists, name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		logger.FromContext(ctx).Info("Database already exists", "database", name)
		return nil
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	logger.FromContext(ctx).Info("Database created", "database", name)
	return nil
}

func dropDatabase(ctx context.Context, conn *pgx.Conn, name string) error {
	if _, err := conn.Exec(ctx, queryTerminateSessions, name); err != nil {
		return fmt.Errorf("failed to terminate sessions on %s: %w", name, err)
	}
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{name}.Sanitize()); err != nil {
		return fmt.Errorf("failed to drop database %s: %w", name, err)
	}
	logger.FromContext(ctx).Warn("Database dropped", "database", name)
	return nil
}

func migrate(ctx context.Context, cfg *config.Config) error {
	pool, err := database.NewPool(ctx, cfg.PoolOptions())
	if err != nil {
		return err
	}
	defer pool.Close()
	return database.Migrate(ctx, pool)
}
