package engine

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ericogr/breath-arena/internal/game"
)

func tanjiro() game.Character {
	return game.Character{Key: "tanjiro", Name: "Tanjiro", Class: "Water Breathing", MaxHealth: 180, MaxResource: 100, AttackPower: 45, DefensePower: 35, Speed: 60}
}

func demon(hp int) game.Character {
	return game.Character{Key: "lesser_demon", Name: "Lesser Demon", Class: "Demon", MaxHealth: hp}
}

func TestBattle_FullRound(t *testing.T) {
	b := NewBattle(tanjiro(), demon(150), WithRand(fixedRand(0)))

	if !b.Submit(game.BasicAttack()) {
		t.Fatalf("basic attack should be accepted")
	}
	s := b.Snapshot()
	if s.OpponentHealth != 105 {
		t.Fatalf("expected opponent health 105, got %d", s.OpponentHealth)
	}
	if s.PlayerResource != 100 {
		t.Fatalf("resource gain should cap at max, got %d", s.PlayerResource)
	}
	if s.PlayerHealth != 165 {
		t.Fatalf("expected opponent to deal 15, player health %d", s.PlayerHealth)
	}
	if s.Combo != 0 {
		t.Fatalf("combo should reset after opponent acts, got %d", s.Combo)
	}
	if s.TurnOwner != game.TurnPlayer || s.Phase != PhasePlayerChoosing {
		t.Fatalf("control should return to player, got %s/%s", s.TurnOwner, s.Phase)
	}
	want := []string{
		"Battle started!",
		"⚔️ Basic attack! Damage: 45 (Combo x1)",
		"👹 Lesser Demon attacks! Damage: 15",
	}
	if !reflect.DeepEqual(s.Log, want) {
		t.Fatalf("unexpected log:\n%v\nwant\n%v", s.Log, want)
	}
	if s.Round != 1 {
		t.Fatalf("expected round 1, got %d", s.Round)
	}
}

func TestBattle_HalfTurnsDoNotInterleave(t *testing.T) {
	q := &Queue{}
	b := NewBattle(tanjiro(), demon(150), WithRand(fixedRand(0)), WithScheduler(q), WithPacing(DefaultPacing()))

	if !b.Submit(game.UseTechnique(game.TechniqueWater)) {
		t.Fatalf("technique should be accepted")
	}
	mid := b.Snapshot()
	if mid.TurnOwner != game.TurnOpponent || mid.Phase != PhaseAwaitingOpponent {
		t.Fatalf("expected opponent to be pending, got %s/%s", mid.TurnOwner, mid.Phase)
	}
	if mid.OpponentHealth != 60 || mid.PlayerResource != 70 || mid.Combo != 2 {
		t.Fatalf("player half-turn not fully applied: %+v", mid.CombatState)
	}
	if !mid.PlayerAttacking {
		t.Fatalf("attack flash should be raised")
	}
	if len(mid.AvailableActions) != 0 {
		t.Fatalf("no actions should be available during opponent turn, got %v", mid.AvailableActions)
	}

	// Out-of-turn submissions are ignored.
	if b.Submit(game.BasicAttack()) || b.Submit(game.UseTechnique(game.TechniqueFlame)) {
		t.Fatalf("out-of-turn actions must be rejected")
	}
	if got := b.Snapshot(); !reflect.DeepEqual(got, mid) {
		t.Fatalf("rejected action mutated state:\n%+v\n%+v", got, mid)
	}

	// flash clear, then opponent turn
	if d, _ := q.Step(); d != 400*time.Millisecond {
		t.Fatalf("expected feedback delay first, got %v", d)
	}
	if d, _ := q.Step(); d != time.Second {
		t.Fatalf("expected opponent delay, got %v", d)
	}
	after := b.Snapshot()
	if after.Combo != 0 || after.PlayerHealth != 165 {
		t.Fatalf("opponent half-turn not applied: %+v", after.CombatState)
	}
	if after.TurnOwner != game.TurnOpponent || after.Phase != PhaseRecovering {
		t.Fatalf("control should not return before hand-back delay, got %s/%s", after.TurnOwner, after.Phase)
	}
	if b.Submit(game.BasicAttack()) {
		t.Fatalf("action during recovery must be rejected")
	}

	q.Drain()
	final := b.Snapshot()
	if final.TurnOwner != game.TurnPlayer || final.Phase != PhasePlayerChoosing {
		t.Fatalf("expected player turn, got %s/%s", final.TurnOwner, final.Phase)
	}
	if final.PlayerAttacking || final.OpponentAttacking {
		t.Fatalf("flashes should be cleared")
	}
}

func TestBattle_DefeatReportsOnce(t *testing.T) {
	q := &Queue{}
	var reports []bool
	player := tanjiro()
	player.MaxHealth = 10
	b := NewBattle(player, demon(150),
		WithRand(fixedRand(0)),
		WithScheduler(q),
		WithPacing(DefaultPacing()),
		OnEnd(func(v bool) { reports = append(reports, v) }),
	)

	b.Submit(game.BasicAttack())
	for {
		d, ok := q.Step()
		if !ok {
			break
		}
		if len(reports) == 1 && d != 2*time.Second {
			t.Fatalf("end should be reported after the end delay, got %v", d)
		}
	}

	s := b.Snapshot()
	if s.PlayerHealth != 0 {
		t.Fatalf("player health should clamp to 0, got %d", s.PlayerHealth)
	}
	if s.Outcome != game.OutcomeDefeat || s.Phase != PhaseDefeat {
		t.Fatalf("expected defeat, got %s/%s", s.Outcome, s.Phase)
	}
	if last := s.Log[len(s.Log)-1]; last != "💀 Defeat..." {
		t.Fatalf("expected defeat line, got %q", last)
	}
	if len(reports) != 1 || reports[0] {
		t.Fatalf("expected a single defeat report, got %v", reports)
	}
	if !s.EndReported {
		t.Fatalf("snapshot should show end reported")
	}

	b.reportEnd()
	if len(reports) != 1 {
		t.Fatalf("end must be reported exactly once, got %d", len(reports))
	}
}

func TestBattle_VictoryStopsTheFight(t *testing.T) {
	var reports []bool
	b := NewBattle(tanjiro(), demon(40), WithRand(fixedRand(0)), OnEnd(func(v bool) { reports = append(reports, v) }))

	if !b.Submit(game.BasicAttack()) {
		t.Fatalf("basic attack should be accepted")
	}
	s := b.Snapshot()
	if s.Outcome != game.OutcomeVictory || s.OpponentHealth != 0 {
		t.Fatalf("expected victory, got %+v", s.CombatState)
	}
	if s.PlayerHealth != 180 || s.Combo != 1 {
		t.Fatalf("opponent must not act after defeat: %+v", s.CombatState)
	}
	if last := s.Log[len(s.Log)-1]; last != "🎉 Victory! Lesser Demon is defeated!" {
		t.Fatalf("unexpected last log line %q", last)
	}
	if len(reports) != 1 || !reports[0] {
		t.Fatalf("expected a single victory report, got %v", reports)
	}

	if b.Submit(game.BasicAttack()) || b.Submit(game.UseTechnique(game.TechniqueThunder)) {
		t.Fatalf("actions after the battle ended must be rejected")
	}
	// a stray opponent callback is a no-op once the battle is over
	b.opponentTurn()
	b.handBack()
	if got := b.Snapshot(); !reflect.DeepEqual(got, s) {
		t.Fatalf("terminal state changed:\n%+v\n%+v", got, s)
	}
}

func TestBattle_UnaffordableTechniqueIsNoop(t *testing.T) {
	player := tanjiro()
	player.MaxResource = 50
	b := NewBattle(player, demon(10000), WithRand(fixedRand(0)))

	if !b.Submit(game.UseTechnique(game.TechniqueFlame)) {
		t.Fatalf("first technique should be affordable")
	}
	before := b.Snapshot()
	if before.PlayerResource != 20 {
		t.Fatalf("expected resource 20, got %d", before.PlayerResource)
	}
	if b.CanAct(game.UseTechnique(game.TechniqueWater)) {
		t.Fatalf("technique should not be available with 20 resource")
	}
	if b.Submit(game.UseTechnique(game.TechniqueWater)) {
		t.Fatalf("technique with 20 resource must be rejected")
	}
	if got := b.Snapshot(); !reflect.DeepEqual(got, before) {
		t.Fatalf("rejected technique mutated state")
	}
	if len(before.AvailableActions) != 1 || before.AvailableActions[0] != game.BasicAttack() {
		t.Fatalf("only basic attack should be available, got %v", before.AvailableActions)
	}

	b.Submit(game.BasicAttack())
	if r := b.State().PlayerResource; r != 30 {
		t.Fatalf("expected resource 30 after basic attack, got %d", r)
	}
	if !b.Submit(game.UseTechnique(game.TechniqueWater)) {
		t.Fatalf("technique should be available again")
	}
}

func TestBattle_TechniqueLogUsesComboBeforeIncrement(t *testing.T) {
	b := NewBattle(tanjiro(), demon(10000), WithRand(fixedRand(0)))
	b.Submit(game.UseTechnique(game.TechniqueThunder))
	entries := b.Snapshot().Log
	line := entries[1]
	if !strings.HasPrefix(line, "⚡ Thunder Breathing! Damage: 112!") || !strings.HasSuffix(line, "(Combo x0)") {
		t.Fatalf("unexpected technique line %q", line)
	}
}

func TestBattle_LogStaysBounded(t *testing.T) {
	b := NewBattle(tanjiro(), demon(100000), WithRand(fixedRand(0.5)))
	for i := 0; i < 5; i++ {
		b.Submit(game.BasicAttack())
	}
	s := b.Snapshot()
	if len(s.Log) != DefaultLogCap {
		t.Fatalf("expected %d log entries, got %d", DefaultLogCap, len(s.Log))
	}
	if !strings.HasPrefix(s.Log[len(s.Log)-1], "👹") {
		t.Fatalf("newest entry should be the opponent attack, got %q", s.Log[len(s.Log)-1])
	}
}

func TestBattle_TimerSchedulerReachesEnd(t *testing.T) {
	ended := make(chan bool, 1)
	pacing := Pacing{Feedback: time.Millisecond, OpponentDelay: time.Millisecond, HandBackDelay: time.Millisecond, EndDelay: time.Millisecond}
	b := NewBattle(tanjiro(), demon(40), WithSeed(7), WithScheduler(TimerScheduler{}), WithPacing(pacing), OnEnd(func(v bool) { ended <- v }))
	b.Submit(game.BasicAttack())
	select {
	case v := <-ended:
		if !v {
			t.Fatalf("expected victory")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("battle end was never reported")
	}
}
