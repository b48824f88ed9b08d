package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"holocron/internal/models"
)

// ListPlanets returns every planet in id order.
func (s *Store) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	planets := []models.Planet{}
	if err := s.db.SelectContext(ctx, &planets, s.q(`
		SELECT id, name, description
		FROM planets
		ORDER BY id
	`)); err != nil {
		return nil, fmt.Errorf("select planets: %w", err)
	}
	return planets, nil
}

// PlanetByID fetches a single planet.
func (s *Store) PlanetByID(ctx context.Context, id int64) (models.Planet, error) {
	var planet models.Planet
	err := s.db.GetContext(ctx, &planet, s.q(`
		SELECT id, name, description
		FROM planets
		WHERE id = ?
	`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Planet{}, ErrNotFound
		}
		return models.Planet{}, fmt.Errorf("select planet: %w", err)
	}
	return planet, nil
}

// CreatePlanet inserts a planet and returns the stored row.
func (s *Store) CreatePlanet(ctx context.Context, planet models.Planet) (models.Planet, error) {
	var created models.Planet
	if err := s.db.GetContext(ctx, &created, s.q(`
		INSERT INTO planets (name, description)
		VALUES (?, ?)
		RETURNING id, name, description
	`), planet.Name, planet.Description); err != nil {
		return models.Planet{}, fmt.Errorf("insert planet: %w", err)
	}
	return created, nil
}

// DeletePlanet removes a planet and returns the deleted row.
func (s *Store) DeletePlanet(ctx context.Context, id int64) (models.Planet, error) {
	var deleted models.Planet
	err := s.db.GetContext(ctx, &deleted, s.q(`
		DELETE FROM planets
		WHERE id = ?
		RETURNING id, name, description
	`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Planet{}, ErrNotFound
		}
		return models.Planet{}, fmt.Errorf("delete planet: %w", err)
	}
	return deleted, nil
}
