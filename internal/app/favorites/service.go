package favorites

import (
	"context"

	"holocron/internal/models"
)

// Store defines persistence operations required for favorites workflows.
type Store interface {
	ListFavorites(ctx context.Context) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, userID int64, target models.Target) (models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID int64, target models.Target) (models.Favorite, error)
}

// Service describes high level favorites operations used by HTTP handlers.
// The caller identity is always passed explicitly.
type Service interface {
	List(ctx context.Context) ([]models.Favorite, error)
	Add(ctx context.Context, userID int64, target models.Target) (models.Favorite, error)
	Remove(ctx context.Context, userID int64, target models.Target) (models.Favorite, error)
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) List(ctx context.Context) ([]models.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListFavorites(ctx)
}

func (s *service) Add(ctx context.Context, userID int64, target models.Target) (models.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return models.Favorite{}, err
	}
	if !target.Valid() {
		return models.Favorite{}, models.ErrInvalidTarget
	}
	return s.store.AddFavorite(ctx, userID, target)
}

func (s *service) Remove(ctx context.Context, userID int64, target models.Target) (models.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return models.Favorite{}, err
	}
	if !target.Valid() {
		return models.Favorite{}, models.ErrInvalidTarget
	}
	return s.store.RemoveFavorite(ctx, userID, target)
}
