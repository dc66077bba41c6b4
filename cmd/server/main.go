// Package main implements the entry point for the DragonBridge learning
// server, which keeps each family member's review schedule, activity
// history, and preferences behind a small HTTP API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/Harmony-cloud-01/mandarin-app/internal/config"
	"github.com/Harmony-cloud-01/mandarin-app/internal/platform/logger"
	"github.com/Harmony-cloud-01/mandarin-app/internal/platform/sqlstore"
	"github.com/Harmony-cloud-01/mandarin-app/internal/redact"
)

// main is the entry point for the learning server. It initializes
// configuration, sets up logging, opens the storage backend, injects
// dependencies, and starts the HTTP server.
func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		app.logger.Error("application exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Application error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
// Returns the assembled application and any initialization error.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_driver", cfg.Storage.Driver)

	db, err := sqlstore.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage %q: %w",
			redact.String(cfg.Storage.DSN), err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database after failed init", "error", closeErr)
		}
		return nil, err
	}

	return app, nil
}
