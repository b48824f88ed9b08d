package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound signals that the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUserExists signals the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidFavorite indicates a stored favorite that references neither or both targets.
	ErrInvalidFavorite = errors.New("invalid favorite row")
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store provides persistence for the catalogue and favorites.
// Queries are written with `?` placeholders and rebound for the connected driver.
type Store struct {
	db *sqlx.DB
}

// New sets up a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) q(query string) string {
	return s.db.Rebind(query)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
