package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Harmony-cloud-01/mandarin-app/internal/config"
	"github.com/Harmony-cloud-01/mandarin-app/internal/domain/srs"
	"github.com/Harmony-cloud-01/mandarin-app/internal/events"
	"github.com/Harmony-cloud-01/mandarin-app/internal/platform/sqlstore"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service"
	"github.com/Harmony-cloud-01/mandarin-app/internal/service/auth"
	"github.com/Harmony-cloud-01/mandarin-app/internal/store"
	"github.com/Harmony-cloud-01/mandarin-app/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Storage
	kv store.KV

	// Service layer
	jwtService      auth.JWTService
	profileService  *service.ProfileService
	ledgerService   *service.LedgerService
	srsService      *service.SRSService
	progressService *service.ProgressService
	prefsService    *service.PrefsService

	// Event system
	bus *events.InMemoryBus

	// Background work
	rollover *task.MidnightScheduler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("profile session service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize storage
	app.kv = sqlstore.NewKVStore(db, logger)

	// Initialize event bus
	app.bus = events.NewInMemoryBus(logger)

	// Initialize services. The profile service doubles as the storage
	// scope every profile-local service keys off.
	app.profileService = service.NewProfileService(app.kv, app.bus, auth.NewDigest(), logger)
	app.ledgerService = service.NewLedgerService(app.kv, app.profileService, app.bus, logger)
	app.srsService = service.NewSRSService(
		app.kv,
		app.profileService,
		app.ledgerService,
		srs.NewDefaultService(),
		app.bus,
		logger,
	)
	app.progressService = service.NewProgressService(app.ledgerService, app.srsService, logger)
	app.prefsService = service.NewPrefsService(app.kv, app.profileService, logger)

	// Wire signal subscriptions: a profile switch drops cached review
	// state, and any state change refreshes the progress snapshot.
	app.bus.Subscribe(app.srsService, events.SignalProfileChanged)
	app.bus.Subscribe(app.progressService,
		events.SignalProfileChanged,
		events.SignalActivityUpdated,
		events.SignalSRSChanged,
	)

	// Seed the progress snapshot before the first request arrives.
	app.progressService.Recompute(ctx)

	// Streaks and due counts change at local midnight even when nothing
	// else happens, so the snapshot is refreshed on day rollover.
	app.rollover = task.NewMidnightScheduler(app.progressService.Recompute, time.Local, logger)
	app.rollover.Start()

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.rollover != nil {
		app.rollover.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
