package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/ericogr/breath-arena/internal/dedupe"
	"github.com/ericogr/breath-arena/internal/engine"
	"github.com/ericogr/breath-arena/internal/game"
	"github.com/ericogr/breath-arena/internal/keys"
	"github.com/ericogr/breath-arena/internal/logging"
	"github.com/ericogr/breath-arena/internal/random"
	"github.com/ericogr/breath-arena/internal/storage"
)

// CharacterRepo is the part of the roster the service reads.
type CharacterRepo interface {
	GetCharacterByKey(key string) (*game.Character, error)
}

// Options tunes a BattleService. Zero values pick defaults.
type Options struct {
	Pacing engine.Pacing
	// Scheduler runs delayed battle phases. Defaults to engine.Immediate.
	Scheduler         engine.Scheduler
	BattleTTL         time.Duration
	FinishedBattleTTL time.Duration
	Now               func() time.Time
}

// BattleService owns every live battle. It is the application-state
// container around the engine: it picks the stat blocks, keeps battles
// addressable by ID and forgets them once they are over or abandoned.
type BattleService struct {
	roster      CharacterRepo
	opponent    game.Character
	pacing      engine.Pacing
	scheduler   engine.Scheduler
	battleTTL   time.Duration
	finishedTTL time.Duration
	now         func() time.Time
	battles     *registry
	lookups     dedupe.CharacterLookups
}

func NewBattleService(roster CharacterRepo, opponent game.Character, opts Options) *BattleService {
	s := &BattleService{
		roster:      roster,
		opponent:    opponent,
		pacing:      opts.Pacing,
		scheduler:   opts.Scheduler,
		battleTTL:   opts.BattleTTL,
		finishedTTL: opts.FinishedBattleTTL,
		now:         opts.Now,
		battles:     newRegistry(),
	}
	if s.scheduler == nil {
		s.scheduler = engine.Immediate{}
	}
	if s.battleTTL <= 0 {
		s.battleTTL = 30 * time.Minute
	}
	if s.finishedTTL <= 0 {
		s.finishedTTL = 2 * time.Minute
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Opponent returns the stat block every battle is fought against.
func (s *BattleService) Opponent() game.Character { return s.opponent }

// StartBattle creates a battle for the character with the given key. A nil
// seed draws a fresh one; a fixed seed replays the same damage rolls.
func (s *BattleService) StartBattle(characterKey string, seed *int64) (string, engine.Snapshot, error) {
	player, err := s.lookupCharacter(characterKey)
	if err != nil {
		return "", engine.Snapshot{}, err
	}

	var sd int64
	if seed != nil {
		sd = *seed
	} else if sd, err = random.NewSeed(); err != nil {
		sd = s.now().UnixNano()
		logging.Warn("falling back to clock seed", logging.Fields{"error": err.Error()})
	}

	id := uuid.NewString()
	b := engine.NewBattle(player, s.opponent,
		engine.WithSeed(sd),
		engine.WithScheduler(s.scheduler),
		engine.WithPacing(s.pacing),
		engine.OnEnd(func(victory bool) { s.battleEnded(id, victory) }),
	)
	now := s.now()
	s.battles.put(id, &battleEntry{battle: b, characterKey: player.Key, createdAt: now, lastActivity: now})

	logging.Info("battle started", logging.Fields{constants.LogFieldBattleID: id, constants.LogFieldCharacterID: player.Key})
	return id, b.Snapshot(), nil
}

// SubmitAction forwards a player action to the battle. Actions the rules
// do not allow right now are ignored: accepted is false and err is nil.
func (s *BattleService) SubmitAction(battleID string, a game.Action) (engine.Snapshot, bool, error) {
	b, ok := s.battles.get(battleID)
	if !ok {
		return engine.Snapshot{}, false, ErrBattleNotFound
	}
	accepted := b.Submit(a)
	if accepted {
		s.battles.touch(battleID, s.now())
	} else {
		logging.Debug("action ignored", logging.Fields{constants.LogFieldBattleID: battleID, constants.LogFieldAction: a.String()})
	}
	return b.Snapshot(), accepted, nil
}

// GetBattle returns the current snapshot of a battle.
func (s *BattleService) GetBattle(battleID string) (engine.Snapshot, error) {
	b, ok := s.battles.get(battleID)
	if !ok {
		return engine.Snapshot{}, ErrBattleNotFound
	}
	return b.Snapshot(), nil
}

// ExpireBattles drops ended battles past their grace period and abandoned
// ones. It returns how many were removed.
func (s *BattleService) ExpireBattles(now time.Time) int {
	removed := s.battles.sweep(now, s.battleTTL, s.finishedTTL)
	for _, id := range removed {
		logging.Debug("battle expired", logging.Fields{constants.LogFieldBattleID: id})
	}
	return len(removed)
}

// ActiveBattles returns the number of battles held in memory.
func (s *BattleService) ActiveBattles() int { return s.battles.len() }

func (s *BattleService) battleEnded(id string, victory bool) {
	now := s.now()
	entry, ok := s.battles.markFinished(id, now)
	outcome := game.OutcomeDefeat
	if victory {
		outcome = game.OutcomeVictory
	}
	fields := logging.Fields{constants.LogFieldBattleID: id, constants.LogFieldOutcome: string(outcome)}
	if ok {
		fields[constants.LogFieldCharacterID] = entry.characterKey
		fields[constants.LogFieldDuration] = now.Sub(entry.createdAt).String()
		fields[constants.LogFieldRound] = entry.battle.Snapshot().Round
	}
	logging.Info("battle ended", fields)
}

func (s *BattleService) lookupCharacter(key string) (game.Character, error) {
	key = keys.Normalize(key)
	if key == "" {
		return game.Character{}, ErrCharacterNotFound
	}
	c, _, err := s.lookups.Do(key, func() (*game.Character, error) {
		return s.roster.GetCharacterByKey(key)
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return game.Character{}, ErrCharacterNotFound
		}
		return game.Character{}, fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}
	return c, nil
}
