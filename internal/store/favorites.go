package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"holocron/internal/models"
)

type favoriteRow struct {
	ID          int64  `db:"id"`
	UserID      int64  `db:"user_id"`
	PlanetID    *int64 `db:"planet_id"`
	CharacterID *int64 `db:"character_id"`
}

func (r favoriteRow) favorite() (models.Favorite, error) {
	target, err := models.TargetFromColumns(r.PlanetID, r.CharacterID)
	if err != nil {
		return models.Favorite{}, fmt.Errorf("favorite %d: %w", r.ID, ErrInvalidFavorite)
	}
	return models.Favorite{ID: r.ID, UserID: r.UserID, Target: target}, nil
}

func favoritesFromRows(rows []favoriteRow) ([]models.Favorite, error) {
	favorites := make([]models.Favorite, 0, len(rows))
	for _, row := range rows {
		fav, err := row.favorite()
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

// targetColumn maps a target kind onto its storage column.
func targetColumn(kind models.TargetKind) (string, error) {
	switch kind {
	case models.TargetPlanet:
		return "planet_id", nil
	case models.TargetCharacter:
		return "character_id", nil
	default:
		return "", models.ErrInvalidTarget
	}
}

// ListFavorites returns every favorite in id order.
func (s *Store) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	var rows []favoriteRow
	if err := s.db.SelectContext(ctx, &rows, s.q(`
		SELECT id, user_id, planet_id, character_id
		FROM favorites
		ORDER BY id
	`)); err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}
	return favoritesFromRows(rows)
}

func (s *Store) favoritesByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	var rows []favoriteRow
	if err := s.db.SelectContext(ctx, &rows, s.q(`
		SELECT id, user_id, planet_id, character_id
		FROM favorites
		WHERE user_id = ?
		ORDER BY id
	`), userID); err != nil {
		return nil, fmt.Errorf("select user favorites: %w", err)
	}
	return favoritesFromRows(rows)
}

// AddFavorite links the user to the target. Existence of the target is left to the
// foreign key constraints.
func (s *Store) AddFavorite(ctx context.Context, userID int64, target models.Target) (models.Favorite, error) {
	var planetID, characterID *int64
	switch target.Kind {
	case models.TargetPlanet:
		planetID = &target.ID
	case models.TargetCharacter:
		characterID = &target.ID
	default:
		return models.Favorite{}, models.ErrInvalidTarget
	}

	var row favoriteRow
	if err := s.db.GetContext(ctx, &row, s.q(`
		INSERT INTO favorites (user_id, planet_id, character_id)
		VALUES (?, ?, ?)
		RETURNING id, user_id, planet_id, character_id
	`), userID, planetID, characterID); err != nil {
		return models.Favorite{}, fmt.Errorf("insert favorite: %w", err)
	}
	return row.favorite()
}

// RemoveFavorite deletes the user's oldest favorite for the target and returns it.
func (s *Store) RemoveFavorite(ctx context.Context, userID int64, target models.Target) (models.Favorite, error) {
	column, err := targetColumn(target.Kind)
	if err != nil {
		return models.Favorite{}, err
	}

	var row favoriteRow
	err = s.db.GetContext(ctx, &row, s.q(fmt.Sprintf(`
		DELETE FROM favorites
		WHERE id = (
			SELECT id
			FROM favorites
			WHERE user_id = ? AND %s = ?
			ORDER BY id
			LIMIT 1
		)
		RETURNING id, user_id, planet_id, character_id
	`, column)), userID, target.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Favorite{}, ErrNotFound
		}
		return models.Favorite{}, fmt.Errorf("delete favorite: %w", err)
	}
	return row.favorite()
}
