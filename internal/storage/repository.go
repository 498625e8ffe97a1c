package storage

import (
	"errors"

	"github.com/ericogr/breath-arena/internal/game"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type Repository interface {
	// GetCharacters returns the configured roster in config order.
	GetCharacters() ([]game.Character, error)
	// GetCharacterByKey returns a character by its roster key.
	GetCharacterByKey(key string) (*game.Character, error)
}
