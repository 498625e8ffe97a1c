// Command arena-sim plays one battle headlessly and prints how it went.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ericogr/breath-arena/internal/config"
	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/ericogr/breath-arena/internal/engine"
	"github.com/ericogr/breath-arena/internal/game"
	"github.com/ericogr/breath-arena/internal/keys"
	"github.com/ericogr/breath-arena/internal/logging"
	"github.com/ericogr/breath-arena/internal/random"
)

func main() {
	configPath := flag.String("config", constants.DefaultConfigPath, "path to the arena configuration file")
	character := flag.String("character", "", "character id to play (defaults to the first in the roster)")
	seed := flag.Int64("seed", 0, "random seed; 0 picks one")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{constants.LogFieldConfigPath: *configPath})
	}
	player, ok := pickCharacter(cfg.Characters, *character)
	if !ok {
		logging.Fatal("Unknown character", nil, logging.Fields{constants.LogFieldCharacterID: *character})
	}
	if *seed == 0 {
		if *seed, err = random.NewSeed(); err != nil {
			logging.Fatal("Failed to draw a seed", err, nil)
		}
	}

	res := simulate(player, cfg.Opponent, *seed)
	for _, line := range res.rounds {
		fmt.Println(line)
	}
	fmt.Println("--- last log entries ---")
	for _, line := range res.log {
		fmt.Println(line)
	}
	fmt.Printf("seed=%d outcome=%s rounds=%d\n", *seed, res.outcome, len(res.rounds))
	if res.outcome != game.OutcomeVictory {
		os.Exit(1)
	}
}

func pickCharacter(roster []game.Character, id string) (game.Character, bool) {
	if len(roster) == 0 {
		return game.Character{}, false
	}
	if id == "" {
		return roster[0], true
	}
	id = keys.Normalize(id)
	for _, c := range roster {
		if c.Key == id {
			return c, true
		}
	}
	return game.Character{}, false
}

type simResult struct {
	rounds  []string
	log     []string
	outcome game.Outcome
	ended   int
}

func simulate(player, opponent game.Character, seed int64) simResult {
	var res simResult
	b := engine.NewBattle(player, opponent,
		engine.WithSeed(seed),
		engine.WithScheduler(engine.Immediate{}),
		engine.OnEnd(func(bool) { res.ended++ }),
	)
	for {
		snap := b.Snapshot()
		if snap.Outcome.IsTerminal() {
			res.log = snap.Log
			res.outcome = snap.Outcome
			return res
		}
		a := chooseAction(snap)
		if !b.Submit(a) {
			res.log = snap.Log
			res.outcome = snap.Outcome
			return res
		}
		after := b.Snapshot()
		res.rounds = append(res.rounds, fmt.Sprintf("round %d: %s | %s %d/%d HP, %d resource | %s %d/%d HP",
			after.Round, a, player.Name, after.PlayerHealth, player.MaxHealth, after.PlayerResource,
			opponent.Name, after.OpponentHealth, opponent.MaxHealth))
	}
}

// chooseAction plays the strongest technique the player can afford and
// falls back to a basic attack.
func chooseAction(snap engine.Snapshot) game.Action {
	best := game.BasicAttack()
	bestMult := 0
	for _, a := range snap.AvailableActions {
		if a.Kind != game.ActionTechnique {
			continue
		}
		info, ok := engine.LookupTechnique(a.Technique)
		if ok && info.MultiplierTenths > bestMult {
			best, bestMult = a, info.MultiplierTenths
		}
	}
	return best
}
