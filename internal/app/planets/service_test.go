package planets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holocron/internal/models"
)

var errMissing = errors.New("missing")

type stubStore struct {
	planets map[int64]models.Planet
}

func (s *stubStore) ListPlanets(context.Context) ([]models.Planet, error) {
	out := make([]models.Planet, 0, len(s.planets))
	for _, p := range s.planets {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubStore) PlanetByID(_ context.Context, id int64) (models.Planet, error) {
	p, ok := s.planets[id]
	if !ok {
		return models.Planet{}, errMissing
	}
	return p, nil
}

func (s *stubStore) CreatePlanet(_ context.Context, planet models.Planet) (models.Planet, error) {
	planet.ID = int64(len(s.planets) + 1)
	s.planets[planet.ID] = planet
	return planet, nil
}

func (s *stubStore) DeletePlanet(_ context.Context, id int64) (models.Planet, error) {
	p, ok := s.planets[id]
	if !ok {
		return models.Planet{}, errMissing
	}
	delete(s.planets, id)
	return p, nil
}

func TestServiceDelegatesToStore(t *testing.T) {
	name := "Dagobah"
	svc := New(&stubStore{planets: map[int64]models.Planet{}})
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Planet{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dagobah", *got.Name)

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, errMissing)
}

func TestServiceHonoursCancellation(t *testing.T) {
	svc := New(&stubStore{planets: map[int64]models.Planet{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
