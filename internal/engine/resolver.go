package engine

import (
	"math"

	"github.com/ericogr/breath-arena/internal/game"
)

// Rand is the random source used for damage rolls. *math/rand.Rand
// satisfies it; tests inject fixed values.
type Rand interface {
	Float64() float64
}

const (
	// BasicAttackResourceGain is restored to the actor on every basic attack.
	BasicAttackResourceGain = 10
	// BasicAttackComboGain is added to the combo by a basic attack.
	BasicAttackComboGain = 1
	// basicAttackSpread is the maximum random bonus over attack power.
	basicAttackSpread = 0.3

	// TechniqueCost is deducted from the actor's resource pool per technique.
	TechniqueCost = 30
	// TechniqueComboGain is added to the combo by a technique.
	TechniqueComboGain = 2
	// comboBonusTenths is the damage bonus per combo point, in tenths.
	comboBonusTenths = 1

	opponentBaseDamage   = 15
	opponentDamageSpread = 20
)

// TechniqueInfo describes a breathing technique.
type TechniqueInfo struct {
	Technique game.Technique `json:"technique"`
	Name      string         `json:"name"`
	Icon      string         `json:"icon"`
	Color     string         `json:"color"`
	// MultiplierTenths is the damage multiplier over attack power, in tenths.
	MultiplierTenths int `json:"multiplier_tenths"`
}

var techniques = map[game.Technique]TechniqueInfo{
	game.TechniqueWater:   {Technique: game.TechniqueWater, Name: "Water Breathing", Icon: "🌊", Color: "#00E5FF", MultiplierTenths: 20},
	game.TechniqueThunder: {Technique: game.TechniqueThunder, Name: "Thunder Breathing", Icon: "⚡", Color: "#FFD600", MultiplierTenths: 25},
	game.TechniqueFlame:   {Technique: game.TechniqueFlame, Name: "Flame Breathing", Icon: "🔥", Color: "#FF1744", MultiplierTenths: 18},
}

// LookupTechnique returns the definition of t.
func LookupTechnique(t game.Technique) (TechniqueInfo, bool) {
	info, ok := techniques[t]
	return info, ok
}

// BasicAttackResult is the effect of a basic attack.
type BasicAttackResult struct {
	Damage       int
	ResourceGain int
	ComboGain    int
}

// ResolveBasicAttack rolls a basic attack: attack power plus a random
// 0-30% bonus, truncated.
func ResolveBasicAttack(rng Rand, attackPower int) BasicAttackResult {
	dmg := int(math.Floor(float64(attackPower) * (1 + rng.Float64()*basicAttackSpread)))
	if dmg < 0 {
		dmg = 0
	}
	return BasicAttackResult{
		Damage:       dmg,
		ResourceGain: BasicAttackResourceGain,
		ComboGain:    BasicAttackComboGain,
	}
}

// TechniqueResult is the effect of a technique.
type TechniqueResult struct {
	Info         TechniqueInfo
	BaseDamage   int
	Damage       int
	ResourceCost int
	ComboGain    int
}

// ResolveTechnique computes technique damage. combo is the value before
// this action's own increment; each point adds 10% over the base damage.
// Integer arithmetic keeps the floors exact.
func ResolveTechnique(t game.Technique, attackPower, combo int) (TechniqueResult, bool) {
	info, ok := LookupTechnique(t)
	if !ok {
		return TechniqueResult{}, false
	}
	if attackPower < 0 {
		attackPower = 0
	}
	if combo < 0 {
		combo = 0
	}
	base := attackPower * info.MultiplierTenths / 10
	dmg := base * (10 + combo*comboBonusTenths) / 10
	return TechniqueResult{
		Info:         info,
		BaseDamage:   base,
		Damage:       dmg,
		ResourceCost: TechniqueCost,
		ComboGain:    TechniqueComboGain,
	}, true
}

// OpponentResult is the effect of the opponent's fixed attack.
type OpponentResult struct {
	Damage int
}

// ResolveOpponentAction rolls the opponent's attack, an integer in [15, 35).
func ResolveOpponentAction(rng Rand) OpponentResult {
	return OpponentResult{Damage: int(math.Floor(opponentBaseDamage + rng.Float64()*opponentDamageSpread))}
}
