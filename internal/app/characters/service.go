package characters

import (
	"context"

	"holocron/internal/models"
)

// Store captures the persistence needs for character workflows.
type Store interface {
	ListCharacters(ctx context.Context) ([]models.Character, error)
	CharacterByID(ctx context.Context, id int64) (models.Character, error)
	CreateCharacter(ctx context.Context, character models.Character) (models.Character, error)
	DeleteCharacter(ctx context.Context, id int64) (models.Character, error)
}

// Service coordinates character-related operations.
type Service interface {
	List(ctx context.Context) ([]models.Character, error)
	Get(ctx context.Context, id int64) (models.Character, error)
	Create(ctx context.Context, character models.Character) (models.Character, error)
	Delete(ctx context.Context, id int64) (models.Character, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListCharacters(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (models.Character, error) {
	if err := ctx.Err(); err != nil {
		return models.Character{}, err
	}
	return s.store.CharacterByID(ctx, id)
}

func (s *service) Create(ctx context.Context, character models.Character) (models.Character, error) {
	if err := ctx.Err(); err != nil {
		return models.Character{}, err
	}
	return s.store.CreateCharacter(ctx, character)
}

func (s *service) Delete(ctx context.Context, id int64) (models.Character, error) {
	if err := ctx.Err(); err != nil {
		return models.Character{}, err
	}
	return s.store.DeleteCharacter(ctx, id)
}
