package service

import (
	"sync"
	"time"

	"github.com/ericogr/breath-arena/internal/engine"
)

type battleEntry struct {
	battle       *engine.Battle
	characterKey string
	createdAt    time.Time
	lastActivity time.Time
	// finishedAt is set when the battle reports its end.
	finishedAt time.Time
}

// registry holds the live battles. Entries are never touched while a
// battle method runs, so end callbacks may take the lock.
type registry struct {
	mu      sync.RWMutex
	battles map[string]*battleEntry
}

func newRegistry() *registry {
	return &registry{battles: make(map[string]*battleEntry)}
}

func (r *registry) put(id string, e *battleEntry) {
	r.mu.Lock()
	r.battles[id] = e
	r.mu.Unlock()
}

func (r *registry) get(id string) (*engine.Battle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.battles[id]
	if !ok {
		return nil, false
	}
	return e.battle, true
}

func (r *registry) touch(id string, now time.Time) {
	r.mu.Lock()
	if e, ok := r.battles[id]; ok {
		e.lastActivity = now
	}
	r.mu.Unlock()
}

// markFinished stamps the end time once and returns a copy of the entry.
func (r *registry) markFinished(id string, now time.Time) (battleEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.battles[id]
	if !ok {
		return battleEntry{}, false
	}
	if e.finishedAt.IsZero() {
		e.finishedAt = now
	}
	return *e, true
}

// sweep removes finished battles older than finishedTTL and unfinished
// battles idle for longer than idleTTL. It returns the removed IDs.
func (r *registry) sweep(now time.Time, idleTTL, finishedTTL time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []string
	for id, e := range r.battles {
		expired := false
		if !e.finishedAt.IsZero() {
			expired = now.Sub(e.finishedAt) >= finishedTTL
		} else {
			expired = now.Sub(e.lastActivity) >= idleTTL
		}
		if expired {
			delete(r.battles, id)
			removed = append(removed, id)
		}
	}
	return removed
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.battles)
}
