package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Harmony-cloud-01/mandarin-app/internal/api"
	apiMiddleware "github.com/Harmony-cloud-01/mandarin-app/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	profileHandler := api.NewProfileHandler(app.profileService, app.jwtService, app.logger)
	reviewHandler := api.NewReviewHandler(app.srsService, app.ledgerService, app.logger)
	activityHandler := api.NewActivityHandler(app.ledgerService, app.logger)
	progressHandler := api.NewProgressHandler(app.progressService, app.logger)
	prefsHandler := api.NewPrefsHandler(app.prefsService, app.logger)

	sessionMiddleware := apiMiddleware.NewSessionMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Profile endpoints (public: selecting a profile is how a
		// session starts)
		r.Get("/profiles", profileHandler.List)
		r.Get("/profiles/current", profileHandler.GetCurrent)
		r.Post("/profiles", profileHandler.Create)
		r.Post("/profiles/switch", profileHandler.Switch)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware.Authenticate)

			// Review item endpoints
			r.Get("/review/items", reviewHandler.ListItems)
			r.Get("/review/due", reviewHandler.DueItems)
			r.Post("/review/items", reviewHandler.AddItem)
			r.Delete("/review/items", reviewHandler.RemoveItem)
			r.Post("/review/grade", reviewHandler.GradeItem)

			// Activity ledger endpoints
			r.Get("/activity", activityHandler.List)
			r.Post("/activity/play", activityHandler.LogPlay)
			r.Delete("/activity", activityHandler.Clear)

			// Progress endpoint
			r.Get("/progress", progressHandler.Get)

			// Preference endpoints
			r.Get("/prefs/reminder", prefsHandler.GetReminder)
			r.Put("/prefs/reminder", prefsHandler.SetReminder)
			r.Get("/prefs/dialect", prefsHandler.GetDialect)
			r.Put("/prefs/dialect", prefsHandler.SetDialect)
			r.Get("/prefs/language", prefsHandler.GetLanguage)
			r.Put("/prefs/language", prefsHandler.SetLanguage)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
