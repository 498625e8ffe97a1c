package game

import "gorm.io/gorm"

// Character is the stat block of a combatant. Rows are seeded from the
// configuration file on startup; the engine only ever reads them.
type Character struct {
	gorm.Model `json:"-"`
	// Key is the stable identifier used by the API (e.g. "tanjiro").
	Key   string `json:"id" gorm:"column:character_key;uniqueIndex"`
	Name  string `json:"name"`
	Class string `json:"class"`

	MaxHealth    int `json:"max_health"`
	MaxResource  int `json:"max_resource"`
	AttackPower  int `json:"attack"`
	DefensePower int `json:"defense"`
	// Speed is carried for presentation. No formula reads it.
	Speed int `json:"speed"`

	// Presentation metadata, passed through untouched.
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

// TableName keeps the roster in `character_templates` instead of the
// default `characters`.
func (Character) TableName() string { return "character_templates" }

// TurnOwner names the side allowed to act next.
type TurnOwner string

const (
	TurnPlayer   TurnOwner = "player"
	TurnOpponent TurnOwner = "opponent"
)

// Outcome is the result of a battle. InProgress is the only non-terminal value.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeVictory    Outcome = "victory"
	OutcomeDefeat     Outcome = "defeat"
)

// IsTerminal reports whether the battle is over.
func (o Outcome) IsTerminal() bool {
	return o == OutcomeVictory || o == OutcomeDefeat
}

// CombatState is the mutable numeric state of a single battle.
type CombatState struct {
	PlayerHealth   int       `json:"player_health"`
	PlayerResource int       `json:"player_resource"`
	OpponentHealth int       `json:"opponent_health"`
	Combo          int       `json:"combo"`
	TurnOwner      TurnOwner `json:"turn_owner"`
	Outcome        Outcome   `json:"outcome"`
}

// NewCombatState seeds a fresh state with full pools for both sides.
func NewCombatState(player, opponent Character) CombatState {
	return CombatState{
		PlayerHealth:   player.MaxHealth,
		PlayerResource: player.MaxResource,
		OpponentHealth: opponent.MaxHealth,
		TurnOwner:      TurnPlayer,
		Outcome:        OutcomeInProgress,
	}
}
