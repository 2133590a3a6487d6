// Package main implements the entry point for the TaskNest API server,
// which manages users' personal tasks and categories behind JWT
// authentication.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/tasknest/tasknest-api/internal/config"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
)

// main parses flags, initializes configuration and logging, and either
// runs a migration command or starts the HTTP server.
func main() {
	// A .env file is a local development convenience; in production the
	// environment carries the configuration directly.
	_ = godotenv.Load()

	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command (up, down, reset, status, version, create) and exit",
	)
	migrationName := flag.String("name", "", "name for a new migration, used with -migrate create")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd, *migrationName); err != nil {
			appLogger.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runServer(context.Background(), cfg, appLogger); err != nil {
		appLogger.Error("Server terminated with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up application-wide logging.
// Returns the loaded config, the root logger, and any initialization error.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return cfg, appLogger, nil
}

// runServer connects to the database, wires the application together, and
// runs the HTTP server until shutdown.
func runServer(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) error {
	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		// The application never took ownership of the connection.
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return err
	}

	return app.Run(ctx)
}
