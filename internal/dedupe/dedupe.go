// Package dedupe collapses concurrent lookups for the same key into a
// single call.
package dedupe

import (
	"golang.org/x/sync/singleflight"

	"github.com/ericogr/breath-arena/internal/game"
)

// CharacterLookups deduplicates roster lookups keyed by character key. The
// zero value is ready to use. Each roster needs its own CharacterLookups;
// callers sharing one get each other's results.
type CharacterLookups struct {
	group singleflight.Group
}

// Do runs fetch for key unless a fetch for the same key is already in
// flight, in which case it waits for and returns that result. The returned
// character is a copy owned by the caller.
func (l *CharacterLookups) Do(key string, fetch func() (*game.Character, error)) (game.Character, bool, error) {
	v, err, shared := l.group.Do(key, func() (interface{}, error) {
		return fetch()
	})
	if err != nil {
		return game.Character{}, shared, err
	}
	c, _ := v.(*game.Character)
	if c == nil {
		return game.Character{}, shared, errNilCharacter
	}
	return *c, shared, nil
}
