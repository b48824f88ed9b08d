// Package httpapi maps the HTTP surface onto the catalogue and favorites services.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"holocron/internal/apperror"
	"holocron/internal/http/middleware"
	"holocron/internal/identity"
	"holocron/internal/logging"
	"holocron/internal/models"
	"holocron/internal/store"
)

// CharacterService exposes character workflows.
type CharacterService interface {
	List(ctx context.Context) ([]models.Character, error)
	Get(ctx context.Context, id int64) (models.Character, error)
	Create(ctx context.Context, character models.Character) (models.Character, error)
	Delete(ctx context.Context, id int64) (models.Character, error)
}

// PlanetService exposes planet workflows.
type PlanetService interface {
	List(ctx context.Context) ([]models.Planet, error)
	Get(ctx context.Context, id int64) (models.Planet, error)
	Create(ctx context.Context, planet models.Planet) (models.Planet, error)
	Delete(ctx context.Context, id int64) (models.Planet, error)
}

// UserService exposes user workflows.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	Create(ctx context.Context, email, password string, isActive bool) (models.User, error)
	Delete(ctx context.Context, id int64) (models.User, error)
}

// FavoritesService coordinates favoriting workflows on behalf of a user.
type FavoritesService interface {
	List(ctx context.Context) ([]models.Favorite, error)
	Add(ctx context.Context, userID int64, target models.Target) (models.Favorite, error)
	Remove(ctx context.Context, userID int64, target models.Target) (models.Favorite, error)
}

// HealthChecker reports whether the backing database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Options tunes the routes exposed by a Server.
type Options struct {
	// Identity resolves the caller of favorite mutations. Required.
	Identity identity.Resolver
	// AdminEnabled mounts the /admin create and delete routes.
	AdminEnabled bool
	// Health backs /health. When nil the endpoint always reports OK.
	Health HealthChecker
	// Search serves GET /search when set.
	Search http.Handler
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	characters CharacterService
	planets    PlanetService
	users      UserService
	favorites  FavoritesService
	opts       Options
}

// New configures a Server with the given services.
func New(
	characters CharacterService,
	planets PlanetService,
	users UserService,
	favorites FavoritesService,
	opts Options,
) *Server {
	return &Server{
		characters: characters,
		planets:    planets,
		users:      users,
		favorites:  favorites,
		opts:       opts,
	}
}

const (
	msgNotFound         = "404 no existe"
	msgNothingToDelete  = "no existe para borrar"
	msgEmailRegistered  = "email already registered"
	msgInvalidJSONInput = "invalid JSON payload"
)

// msgResponse is the body of the fixed not-found answers.
type msgResponse struct {
	Msg string `json:"msg"`
}

// Routes exposes the HTTP handlers. Paths are matched with or without a trailing slash.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apperror.Write(w, apperror.NewNotFoundError("not found", nil))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, apperror.ErrorResponse{Message: "method not allowed"})
	})

	r.HandleFunc("/", sitemap(r)).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/characters", s.handleListCharacters).Methods(http.MethodGet)
	r.HandleFunc("/character/{id:[0-9]+}", s.handleGetCharacter).Methods(http.MethodGet)
	r.HandleFunc("/planets", s.handleListPlanets).Methods(http.MethodGet)
	r.HandleFunc("/planet/{id:[0-9]+}", s.handleGetPlanet).Methods(http.MethodGet)
	r.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	r.HandleFunc("/user/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)

	r.HandleFunc("/favorites", s.handleListFavorites).Methods(http.MethodGet)
	caller := middleware.Identity(s.opts.Identity)
	r.Handle("/favorite/planet/{planet_id:[0-9]+}", caller(http.HandlerFunc(s.handleAddPlanetFavorite))).Methods(http.MethodPost)
	r.Handle("/favorite/character/{character_id:[0-9]+}", caller(http.HandlerFunc(s.handleAddCharacterFavorite))).Methods(http.MethodPost)
	r.Handle("/favorite/planet/{planet_id:[0-9]+}", caller(http.HandlerFunc(s.handleRemovePlanetFavorite))).Methods(http.MethodDelete)
	r.Handle("/favorite/character/{character_id:[0-9]+}", caller(http.HandlerFunc(s.handleRemoveCharacterFavorite))).Methods(http.MethodDelete)

	if s.opts.Search != nil {
		r.Handle("/search", s.opts.Search).Methods(http.MethodGet)
	}

	if s.opts.AdminEnabled {
		s.adminRoutes(r)
	}

	return middleware.TrimTrailingSlash(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health.Ping(r.Context()); err != nil {
			logging.WithContext(r.Context()).Error().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// pathID reads a numeric route variable. The route regex already rejects
// non-digits, so a failure here means the value overflowed.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid "+name, err)
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewBadRequestError(msgInvalidJSONInput, err)
	}
	return nil
}

// writeLookupError answers a failed single-entity read or delete. store.ErrNotFound
// maps to the fixed {"msg": ...} body, anything else goes through writeError.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, msgResponse{Msg: notFoundMsg})
		return
	}
	writeError(w, r, err)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logging.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	apperror.Write(w, appErr)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
