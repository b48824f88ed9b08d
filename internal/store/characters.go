package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"holocron/internal/models"
)

// ListCharacters returns every character in id order.
func (s *Store) ListCharacters(ctx context.Context) ([]models.Character, error) {
	characters := []models.Character{}
	if err := s.db.SelectContext(ctx, &characters, s.q(`
		SELECT id, name, description, eye_color
		FROM characters
		ORDER BY id
	`)); err != nil {
		return nil, fmt.Errorf("select characters: %w", err)
	}
	return characters, nil
}

// CharacterByID fetches a single character.
func (s *Store) CharacterByID(ctx context.Context, id int64) (models.Character, error) {
	var character models.Character
	err := s.db.GetContext(ctx, &character, s.q(`
		SELECT id, name, description, eye_color
		FROM characters
		WHERE id = ?
	`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Character{}, ErrNotFound
		}
		return models.Character{}, fmt.Errorf("select character: %w", err)
	}
	return character, nil
}

// CreateCharacter inserts a character. A nil eye color is stored as DefaultEyeColor.
func (s *Store) CreateCharacter(ctx context.Context, character models.Character) (models.Character, error) {
	eyeColor := character.EyeColor
	if eyeColor == nil {
		def := models.DefaultEyeColor
		eyeColor = &def
	}

	var created models.Character
	if err := s.db.GetContext(ctx, &created, s.q(`
		INSERT INTO characters (name, description, eye_color)
		VALUES (?, ?, ?)
		RETURNING id, name, description, eye_color
	`), character.Name, character.Description, eyeColor); err != nil {
		return models.Character{}, fmt.Errorf("insert character: %w", err)
	}
	return created, nil
}

// DeleteCharacter removes a character and returns the deleted row.
func (s *Store) DeleteCharacter(ctx context.Context, id int64) (models.Character, error) {
	var deleted models.Character
	err := s.db.GetContext(ctx, &deleted, s.q(`
		DELETE FROM characters
		WHERE id = ?
		RETURNING id, name, description, eye_color
	`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Character{}, ErrNotFound
		}
		return models.Character{}, fmt.Errorf("delete character: %w", err)
	}
	return deleted, nil
}
