package api

import (
	"github.com/ericogr/breath-arena/internal/engine"
	"github.com/ericogr/breath-arena/internal/game"
)

// Roster lists the selectable characters.
type Roster interface {
	GetCharacters() ([]game.Character, error)
}

// Battles is the battle service surface the handlers drive.
// *service.BattleService satisfies it.
type Battles interface {
	Opponent() game.Character
	StartBattle(characterKey string, seed *int64) (string, engine.Snapshot, error)
	SubmitAction(battleID string, a game.Action) (engine.Snapshot, bool, error)
	GetBattle(battleID string) (engine.Snapshot, error)
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	roster  Roster
	battles Battles
}

// NewBattleHandler creates a BattleHandler backed by the given roster and
// battle service.
func NewBattleHandler(roster Roster, battles Battles) *BattleHandler {
	return &BattleHandler{roster: roster, battles: battles}
}
