// Package app assembles the database, services and HTTP stack into one
// application value that is built once at process start.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"holocron/internal/app/characters"
	"holocron/internal/app/favorites"
	"holocron/internal/app/planets"
	"holocron/internal/app/users"
	"holocron/internal/config"
	"holocron/internal/database"
	"holocron/internal/http/middleware"
	"holocron/internal/httpapi"
	"holocron/internal/identity"
	"holocron/internal/logging"
	"holocron/internal/search"
	"holocron/internal/store"
)

// App owns the database handle and the fully wrapped HTTP handler.
type App struct {
	Config *config.Config
	Logger *logging.Logger
	DB     *sqlx.DB
	Store  *store.Store

	handler http.Handler
}

// New migrates (when enabled), connects and wires the application.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*App, error) {
	if cfg.Features.AutoMigrate {
		if err := database.MigrateUp(ctx, cfg.Database); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("database migrations applied")
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Zerolog().Info().Str("driver", cfg.Database.Driver()).Msg("database connected")

	dataStore := store.New(db)

	api := httpapi.New(
		characters.New(dataStore),
		planets.New(dataStore),
		users.New(dataStore),
		favorites.New(dataStore),
		httpapi.Options{
			Identity:     Resolver(cfg),
			AdminEnabled: cfg.Features.AdminEnabled,
			Health:       dataStore,
			Search:       search.NewHandler(search.NewSQLStore(db)),
		},
	)

	var handler http.Handler = api.Routes()
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)

	return &App{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Store:   dataStore,
		handler: handler,
	}, nil
}

// Resolver picks the caller identity strategy: JWT bearer tokens when a secret is
// configured, the fixed development user otherwise.
func Resolver(cfg *config.Config) identity.Resolver {
	if cfg.Security.JWTSecret != "" {
		return identity.JWT(cfg.Security.JWTSecret)
	}
	return identity.Fixed(cfg.Security.CurrentUserID)
}

// Handler returns the HTTP handler with the full middleware chain applied.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
