package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidTarget indicates a favorite that does not point at exactly one planet or character.
var ErrInvalidTarget = errors.New("favorite must reference exactly one planet or character")

// TargetKind names the entity type a favorite points at.
type TargetKind string

const (
	TargetPlanet    TargetKind = "planet"
	TargetCharacter TargetKind = "character"
)

// Target identifies the favorited entity.
type Target struct {
	Kind TargetKind
	ID   int64
}

// PlanetTarget returns a Target for the planet with the given id.
func PlanetTarget(id int64) Target {
	return Target{Kind: TargetPlanet, ID: id}
}

// CharacterTarget returns a Target for the character with the given id.
func CharacterTarget(id int64) Target {
	return Target{Kind: TargetCharacter, ID: id}
}

// Valid reports whether the target has a known kind.
func (t Target) Valid() bool {
	return t.Kind == TargetPlanet || t.Kind == TargetCharacter
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// TargetFromColumns rebuilds a Target from the two nullable storage columns.
// Exactly one of the ids must be set.
func TargetFromColumns(planetID, characterID *int64) (Target, error) {
	switch {
	case planetID != nil && characterID == nil:
		return PlanetTarget(*planetID), nil
	case characterID != nil && planetID == nil:
		return CharacterTarget(*characterID), nil
	default:
		return Target{}, ErrInvalidTarget
	}
}

// Favorite links a user to either a planet or a character.
type Favorite struct {
	ID     int64
	UserID int64
	Target Target
}

// PlanetID returns the favorited planet id, or nil for character favorites.
func (f Favorite) PlanetID() *int64 {
	if f.Target.Kind != TargetPlanet {
		return nil
	}
	id := f.Target.ID
	return &id
}

// CharacterID returns the favorited character id, or nil for planet favorites.
func (f Favorite) CharacterID() *int64 {
	if f.Target.Kind != TargetCharacter {
		return nil
	}
	id := f.Target.ID
	return &id
}

type favoriteJSON struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	PlanetID    *int64 `json:"planetId"`
	CharacterID *int64 `json:"characterId"`
}

// MarshalJSON keeps the two-column wire shape: the unused target is null.
func (f Favorite) MarshalJSON() ([]byte, error) {
	return json.Marshal(favoriteJSON{
		ID:          f.ID,
		UserID:      f.UserID,
		PlanetID:    f.PlanetID(),
		CharacterID: f.CharacterID(),
	})
}

func (f *Favorite) UnmarshalJSON(data []byte) error {
	var raw favoriteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	target, err := TargetFromColumns(raw.PlanetID, raw.CharacterID)
	if err != nil {
		return err
	}
	*f = Favorite{ID: raw.ID, UserID: raw.UserID, Target: target}
	return nil
}
