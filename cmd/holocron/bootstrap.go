package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"holocron/internal/models"
	"holocron/internal/store"
)

const (
	demoEmail    = "demo@holocron.dev"
	demoPassword = "demo123"
)

// seedStore is the slice of the store the demo bootstrap writes through.
type seedStore interface {
	CreateUser(ctx context.Context, email, password string, isActive bool) (models.User, error)
	ListPlanets(ctx context.Context) ([]models.Planet, error)
	CreatePlanet(ctx context.Context, planet models.Planet) (models.Planet, error)
	ListCharacters(ctx context.Context) ([]models.Character, error)
	CreateCharacter(ctx context.Context, character models.Character) (models.Character, error)
}

func bootstrapDemoData(ctx context.Context, dataStore seedStore) error {
	if err := ensureDemoUser(ctx, dataStore); err != nil {
		return err
	}
	if err := ensureDemoPlanets(ctx, dataStore); err != nil {
		return err
	}
	if err := ensureDemoCharacters(ctx, dataStore); err != nil {
		return err
	}
	return nil
}

func ensureDemoUser(ctx context.Context, dataStore seedStore) error {
	if _, err := dataStore.CreateUser(ctx, demoEmail, demoPassword, true); err != nil && !errors.Is(err, store.ErrUserExists) {
		return fmt.Errorf("bootstrap demo user: %w", err)
	}
	return nil
}

func ensureDemoPlanets(ctx context.Context, dataStore seedStore) error {
	existing, err := dataStore.ListPlanets(ctx)
	if err != nil {
		return fmt.Errorf("list planets: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	demo := []models.Planet{
		{Name: ptr("Tatooine"), Description: ptr("Desert world orbiting twin suns in the Outer Rim")},
		{Name: ptr("Hoth"), Description: ptr("Ice planet, briefly home to Echo Base")},
		{Name: ptr("Naboo"), Description: ptr("Lush world of rolling plains and underwater cities")},
	}
	for _, planet := range demo {
		if _, err := dataStore.CreatePlanet(ctx, planet); err != nil {
			return fmt.Errorf("bootstrap planet %s: %w", *planet.Name, err)
		}
	}
	log.Info().Int("count", len(demo)).Msg("seeded demo planets")
	return nil
}

func ensureDemoCharacters(ctx context.Context, dataStore seedStore) error {
	existing, err := dataStore.ListCharacters(ctx)
	if err != nil {
		return fmt.Errorf("list characters: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	demo := []models.Character{
		{Name: ptr("Luke Skywalker"), Description: ptr("Farm boy from Tatooine"), EyeColor: ptr("blue")},
		{Name: ptr("Leia Organa"), Description: ptr("Princess of Alderaan")},
		{Name: ptr("Yoda"), Description: ptr("Jedi Master"), EyeColor: ptr("green")},
	}
	for _, character := range demo {
		if _, err := dataStore.CreateCharacter(ctx, character); err != nil {
			return fmt.Errorf("bootstrap character %s: %w", *character.Name, err)
		}
	}
	log.Info().Int("count", len(demo)).Msg("seeded demo characters")
	return nil
}

func ptr(s string) *string {
	return &s
}
