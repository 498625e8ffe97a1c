package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ericogr/breath-arena/internal/game"
)

// Phase is the coordinator's position in the turn cycle.
type Phase string

const (
	PhasePlayerChoosing    Phase = "player_choosing"
	PhaseResolvingPlayer   Phase = "resolving_player_action"
	PhaseAwaitingOpponent  Phase = "awaiting_opponent"
	PhaseResolvingOpponent Phase = "resolving_opponent_action"
	PhaseRecovering        Phase = "recovering"
	PhaseVictory           Phase = "victory"
	PhaseDefeat            Phase = "defeat"
)

// Battle drives one fight between a player character and the opponent.
// It owns the combat state; every mutation happens under mu, and scheduled
// callbacks are handed to the scheduler only after mu is released.
type Battle struct {
	mu sync.Mutex

	player   game.Character
	opponent game.Character

	state game.CombatState
	phase Phase
	log   *Log
	round int

	playerFlash   flash
	opponentFlash flash

	rng    Rand
	sched  Scheduler
	pacing Pacing

	onEnd       func(victory bool)
	endReported bool
}

// flash is a transient presentation cue. seq lets a late clear ignore a
// flash raised after it was scheduled.
type flash struct {
	on  bool
	seq uint64
}

// Option configures a Battle.
type Option func(*Battle)

// WithRand sets the random source for damage rolls.
func WithRand(r Rand) Option { return func(b *Battle) { b.rng = r } }

// WithSeed seeds a private math/rand generator.
func WithSeed(seed int64) Option {
	return func(b *Battle) { b.rng = rand.New(rand.NewSource(seed)) }
}

// WithScheduler sets how delayed phases are run. Defaults to Immediate.
func WithScheduler(s Scheduler) Option { return func(b *Battle) { b.sched = s } }

// WithPacing sets the phase delays. Defaults to NoPacing.
func WithPacing(p Pacing) Option { return func(b *Battle) { b.pacing = p } }

// OnEnd registers the callback fired once when the battle ends.
func OnEnd(fn func(victory bool)) Option { return func(b *Battle) { b.onEnd = fn } }

// NewBattle starts a battle between player and opponent.
func NewBattle(player, opponent game.Character, opts ...Option) *Battle {
	b := &Battle{
		player:   player,
		opponent: opponent,
		state:    game.NewCombatState(player, opponent),
		phase:    PhasePlayerChoosing,
		log:      NewLog(DefaultLogCap),
		sched:    Immediate{},
		pacing:   NoPacing(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b.log.Append(battleStartedLine)
	return b
}

type task struct {
	delay time.Duration
	fn    func()
}

func (b *Battle) schedule(tasks []task) {
	for _, t := range tasks {
		b.sched.After(t.delay, t.fn)
	}
}

// Submit applies a player action. It returns false, changing nothing, when
// the action is not allowed right now.
func (b *Battle) Submit(a game.Action) bool {
	b.mu.Lock()
	if !b.canActLocked(a) {
		b.mu.Unlock()
		return false
	}
	b.phase = PhaseResolvingPlayer
	b.round++
	switch a.Kind {
	case game.ActionBasicAttack:
		b.applyBasicAttackLocked()
	case game.ActionTechnique:
		b.applyTechniqueLocked(a.Technique)
	}
	tasks := []task{b.raiseFlashLocked(&b.playerFlash)}
	tasks = append(tasks, b.afterHalfTurnLocked(game.TurnPlayer)...)
	b.mu.Unlock()

	b.schedule(tasks)
	return true
}

// CanAct reports whether Submit would accept a.
func (b *Battle) CanAct(a game.Action) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canActLocked(a)
}

func (b *Battle) canActLocked(a game.Action) bool {
	if b.phase != PhasePlayerChoosing || b.state.TurnOwner != game.TurnPlayer {
		return false
	}
	if b.state.Outcome.IsTerminal() || b.state.PlayerHealth <= 0 || b.state.OpponentHealth <= 0 {
		return false
	}
	switch a.Kind {
	case game.ActionBasicAttack:
		return true
	case game.ActionTechnique:
		if _, ok := LookupTechnique(a.Technique); !ok {
			return false
		}
		return b.state.PlayerResource >= TechniqueCost
	}
	return false
}

func (b *Battle) applyBasicAttackLocked() {
	res := ResolveBasicAttack(b.rng, b.player.AttackPower)
	b.state.OpponentHealth = clamp(b.state.OpponentHealth-res.Damage, 0, b.opponent.MaxHealth)
	b.state.PlayerResource = clamp(b.state.PlayerResource+res.ResourceGain, 0, b.player.MaxResource)
	b.state.Combo += res.ComboGain
	b.log.Append(basicAttackLine(res.Damage, b.state.Combo))
}

func (b *Battle) applyTechniqueLocked(t game.Technique) {
	res, _ := ResolveTechnique(t, b.player.AttackPower, b.state.Combo)
	b.state.OpponentHealth = clamp(b.state.OpponentHealth-res.Damage, 0, b.opponent.MaxHealth)
	b.state.PlayerResource = clamp(b.state.PlayerResource-res.ResourceCost, 0, b.player.MaxResource)
	b.log.Append(techniqueLine(res.Info, res.Damage, b.state.Combo))
	b.state.Combo += res.ComboGain
}

// afterHalfTurnLocked runs the terminal check and returns what to schedule
// next.
func (b *Battle) afterHalfTurnLocked(actor game.TurnOwner) []task {
	if b.checkTerminalLocked() {
		return []task{{delay: b.pacing.EndDelay, fn: b.reportEnd}}
	}
	if actor == game.TurnPlayer {
		b.phase = PhaseAwaitingOpponent
		b.state.TurnOwner = game.TurnOpponent
		return []task{{delay: b.pacing.OpponentDelay, fn: b.opponentTurn}}
	}
	b.phase = PhaseRecovering
	return []task{{delay: b.pacing.HandBackDelay, fn: b.handBack}}
}

func (b *Battle) checkTerminalLocked() bool {
	switch {
	case b.state.OpponentHealth == 0:
		b.log.Append(victoryLine(b.opponent.Name))
		b.state.Outcome = game.OutcomeVictory
		b.phase = PhaseVictory
	case b.state.PlayerHealth == 0:
		b.log.Append(defeatLine)
		b.state.Outcome = game.OutcomeDefeat
		b.phase = PhaseDefeat
	default:
		return false
	}
	return true
}

func (b *Battle) opponentTurn() {
	b.mu.Lock()
	if b.phase != PhaseAwaitingOpponent {
		b.mu.Unlock()
		return
	}
	b.phase = PhaseResolvingOpponent
	res := ResolveOpponentAction(b.rng)
	b.state.PlayerHealth = clamp(b.state.PlayerHealth-res.Damage, 0, b.player.MaxHealth)
	b.state.Combo = 0
	b.log.Append(opponentAttackLine(b.opponent.Name, res.Damage))
	tasks := []task{b.raiseFlashLocked(&b.opponentFlash)}
	tasks = append(tasks, b.afterHalfTurnLocked(game.TurnOpponent)...)
	b.mu.Unlock()

	b.schedule(tasks)
}

func (b *Battle) handBack() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhaseRecovering {
		return
	}
	b.phase = PhasePlayerChoosing
	b.state.TurnOwner = game.TurnPlayer
}

func (b *Battle) reportEnd() {
	b.mu.Lock()
	if b.endReported || !b.state.Outcome.IsTerminal() {
		b.mu.Unlock()
		return
	}
	b.endReported = true
	victory := b.state.Outcome == game.OutcomeVictory
	cb := b.onEnd
	b.mu.Unlock()

	if cb != nil {
		cb(victory)
	}
}

func (b *Battle) raiseFlashLocked(f *flash) task {
	f.on = true
	f.seq++
	seq := f.seq
	return task{delay: b.pacing.Feedback, fn: func() {
		b.mu.Lock()
		if f.seq == seq {
			f.on = false
		}
		b.mu.Unlock()
	}}
}

// Snapshot is a read-only copy of a battle for presentation.
type Snapshot struct {
	Player   game.Character `json:"player"`
	Opponent game.Character `json:"opponent"`
	game.CombatState
	Phase             Phase         `json:"phase"`
	Round             int           `json:"round"`
	Log               []string      `json:"log"`
	AvailableActions  []game.Action `json:"available_actions"`
	PlayerAttacking   bool          `json:"player_attacking"`
	OpponentAttacking bool          `json:"opponent_attacking"`
	EndReported       bool          `json:"end_reported"`
}

// Snapshot returns the current state of the battle.
func (b *Battle) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	available := make([]game.Action, 0, 1+len(game.Techniques))
	if a := game.BasicAttack(); b.canActLocked(a) {
		available = append(available, a)
	}
	for _, t := range game.Techniques {
		if a := game.UseTechnique(t); b.canActLocked(a) {
			available = append(available, a)
		}
	}
	return Snapshot{
		Player:            b.player,
		Opponent:          b.opponent,
		CombatState:       b.state,
		Phase:             b.phase,
		Round:             b.round,
		Log:               b.log.Entries(),
		AvailableActions:  available,
		PlayerAttacking:   b.playerFlash.on,
		OpponentAttacking: b.opponentFlash.on,
		EndReported:       b.endReported,
	}
}

// State returns a copy of the combat state.
func (b *Battle) State() game.CombatState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
