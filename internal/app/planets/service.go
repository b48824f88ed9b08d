package planets

import (
	"context"

	"holocron/internal/models"
)

// Store captures the persistence needs for planet workflows.
type Store interface {
	ListPlanets(ctx context.Context) ([]models.Planet, error)
	PlanetByID(ctx context.Context, id int64) (models.Planet, error)
	CreatePlanet(ctx context.Context, planet models.Planet) (models.Planet, error)
	DeletePlanet(ctx context.Context, id int64) (models.Planet, error)
}

// Service coordinates planet-related operations.
type Service interface {
	List(ctx context.Context) ([]models.Planet, error)
	Get(ctx context.Context, id int64) (models.Planet, error)
	Create(ctx context.Context, planet models.Planet) (models.Planet, error)
	Delete(ctx context.Context, id int64) (models.Planet, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.Planet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlanets(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (models.Planet, error) {
	if err := ctx.Err(); err != nil {
		return models.Planet{}, err
	}
	return s.store.PlanetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, planet models.Planet) (models.Planet, error) {
	if err := ctx.Err(); err != nil {
		return models.Planet{}, err
	}
	return s.store.CreatePlanet(ctx, planet)
}

func (s *service) Delete(ctx context.Context, id int64) (models.Planet, error) {
	if err := ctx.Err(); err != nil {
		return models.Planet{}, err
	}
	return s.store.DeletePlanet(ctx, id)
}
