package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"holocron/internal/models"
)

// ListUsers returns every user with their favorites attached.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.SelectContext(ctx, &users, s.q(`
		SELECT id, email, password, is_active
		FROM users
		ORDER BY id
	`)); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	favorites, err := s.ListFavorites(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int64][]models.Favorite, len(users))
	for _, fav := range favorites {
		byUser[fav.UserID] = append(byUser[fav.UserID], fav)
	}
	for i := range users {
		users[i].Favorites = byUser[users[i].ID]
		if users[i].Favorites == nil {
			users[i].Favorites = []models.Favorite{}
		}
	}
	return users, nil
}

// UserByID fetches a user and their favorites.
func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.q(`
		SELECT id, email, password, is_active
		FROM users
		WHERE id = ?
	`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}

	favorites, err := s.favoritesByUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.Favorites = favorites
	return user, nil
}

// CreateUser registers a user. The password is stored as a bcrypt hash.
func (s *Store) CreateUser(ctx context.Context, email, password string, isActive bool) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = s.db.GetContext(ctx, &user, s.q(`
		INSERT INTO users (email, password, is_active)
		VALUES (?, ?, ?)
		RETURNING id, email, password, is_active
	`), email, string(hash), isActive)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	user.Favorites = []models.Favorite{}
	return user, nil
}

// DeleteUser removes a user. Users that still own favorites are protected by the
// foreign key and the storage error is returned as-is.
func (s *Store) DeleteUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.q(`
		DELETE FROM users
		WHERE id = ?
		RETURNING id, email, password, is_active
	`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("delete user: %w", err)
	}
	user.Favorites = []models.Favorite{}
	return user, nil
}
