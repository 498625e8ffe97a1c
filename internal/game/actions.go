package game

import "fmt"

// ActionKind is the type of action a player submits.
type ActionKind string

const (
	ActionBasicAttack ActionKind = "basic_attack"
	ActionTechnique   ActionKind = "technique"
)

// Technique identifies one of the breathing techniques.
type Technique string

const (
	TechniqueWater   Technique = "water"
	TechniqueThunder Technique = "thunder"
	TechniqueFlame   Technique = "flame"
)

// Techniques lists every technique in display order.
var Techniques = []Technique{TechniqueWater, TechniqueThunder, TechniqueFlame}

// Valid reports whether t is a known technique.
func (t Technique) Valid() bool {
	switch t {
	case TechniqueWater, TechniqueThunder, TechniqueFlame:
		return true
	}
	return false
}

// Action is a player's choice for one half-turn.
type Action struct {
	Kind      ActionKind `json:"action_type"`
	Technique Technique  `json:"technique,omitempty"`
}

// BasicAttack returns the basic attack action.
func BasicAttack() Action { return Action{Kind: ActionBasicAttack} }

// UseTechnique returns the action for the given technique.
func UseTechnique(t Technique) Action { return Action{Kind: ActionTechnique, Technique: t} }

// ParseAction builds an Action from its wire representation.
func ParseAction(kind, technique string) (Action, error) {
	switch ActionKind(kind) {
	case ActionBasicAttack:
		return BasicAttack(), nil
	case ActionTechnique:
		t := Technique(technique)
		if !t.Valid() {
			return Action{}, fmt.Errorf("unknown technique %q", technique)
		}
		return UseTechnique(t), nil
	default:
		return Action{}, fmt.Errorf("unknown action type %q", kind)
	}
}

func (a Action) String() string {
	if a.Kind == ActionTechnique {
		return string(a.Kind) + ":" + string(a.Technique)
	}
	return string(a.Kind)
}
