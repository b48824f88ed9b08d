package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Store defines the persistence operations required by the search handler.
type Store interface {
	Search(ctx context.Context, query string, limit int) (Results, error)
}

// Results captures the result buckets surfaced by the handler.
type Results struct {
	Planets    []Match
	Characters []Match
}

// Match summarises one named catalogue row.
type Match struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

// SQLStore implements Store with a LIKE query per catalogue table.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates a Store backed by the supplied database handle.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Search matches planet and character names containing query, ignoring case.
func (s *SQLStore) Search(ctx context.Context, query string, limit int) (Results, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	like := "%" + escapeLike(strings.ToLower(query)) + "%"

	planets, err := s.fetch(ctx, "planets", like, limit)
	if err != nil {
		return Results{}, err
	}

	characters, err := s.fetch(ctx, "characters", like, limit)
	if err != nil {
		return Results{}, err
	}

	return Results{Planets: planets, Characters: characters}, nil
}

func (s *SQLStore) fetch(ctx context.Context, table, like string, limit int) ([]Match, error) {
	var matches []Match
	err := s.db.SelectContext(ctx, &matches, s.db.Rebind(fmt.Sprintf(`
		SELECT id, name, COALESCE(description, '') AS description
		FROM %s
		WHERE name IS NOT NULL AND LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY name, id
		LIMIT ?
	`, table)), like, limit)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", table, err)
	}
	return matches, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
