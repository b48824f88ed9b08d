package models

import "encoding/json"

// DefaultEyeColor is applied to characters created without an eye color.
const DefaultEyeColor = "brown"

// User is an account that owns favorites.
// The password never leaves the service; it is stored as a bcrypt hash.
type User struct {
	ID        int64      `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password"`
	IsActive  bool       `json:"-" db:"is_active"`
	Favorites []Favorite `json:"favorites" db:"-"`
}

// MarshalJSON renders the public projection of a user. Favorites is always an array.
func (u User) MarshalJSON() ([]byte, error) {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []Favorite{}
	}
	return json.Marshal(struct {
		ID        int64      `json:"id"`
		Email     string     `json:"email"`
		Favorites []Favorite `json:"favorites"`
	}{
		ID:        u.ID,
		Email:     u.Email,
		Favorites: favorites,
	})
}

// Planet is a catalogue entry that users can favorite.
type Planet struct {
	ID          int64   `json:"id" db:"id"`
	Name        *string `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}

// Character is a catalogue entry that users can favorite.
type Character struct {
	ID          int64   `json:"id" db:"id"`
	Name        *string `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
	EyeColor    *string `json:"eyeColor" db:"eye_color"`
}
