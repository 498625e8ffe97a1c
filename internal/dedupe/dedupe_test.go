package dedupe

import (
	"errors"
	"testing"

	"github.com/ericogr/breath-arena/internal/game"
)

func TestCharacterLookups_ReturnsCopy(t *testing.T) {
	var l CharacterLookups
	src := &game.Character{Key: "tanjiro", MaxHealth: 180}
	c, _, err := l.Do("tanjiro", func() (*game.Character, error) { return src, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.MaxHealth = 1
	if src.MaxHealth != 180 {
		t.Fatalf("caller mutation leaked into the fetched value")
	}
}

func TestCharacterLookups_Errors(t *testing.T) {
	var l CharacterLookups
	boom := errors.New("boom")
	if _, _, err := l.Do("a", func() (*game.Character, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if _, _, err := l.Do("b", func() (*game.Character, error) { return nil, nil }); err == nil {
		t.Fatalf("expected error for nil character")
	}
}
