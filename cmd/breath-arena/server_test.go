package main

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingExpirer struct {
	mu    sync.Mutex
	calls int
}

func (c *countingExpirer) ExpireBattles(time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return 1
}

func (c *countingExpirer) ActiveBattles() int { return 0 }

func (c *countingExpirer) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestBattleReaperStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exp := &countingExpirer{}
	done := make(chan struct{})
	go func() {
		startBattleReaper(ctx, exp, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for exp.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if exp.count() < 2 {
		t.Fatalf("reaper did not tick")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("reaper did not stop after cancel")
	}
}
