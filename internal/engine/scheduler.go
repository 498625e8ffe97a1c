package engine

import (
	"sync"
	"time"
)

// Scheduler runs fn after delay d. Implementations decide whether the
// delay is honoured; callers never rely on it for correctness.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Immediate runs every callback synchronously and ignores the delay.
type Immediate struct{}

func (Immediate) After(_ time.Duration, fn func()) { fn() }

// TimerScheduler fires callbacks on timers, reproducing presentation pacing.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) {
	if d <= 0 {
		go fn()
		return
	}
	time.AfterFunc(d, fn)
}

// Queue collects callbacks until the caller runs them. It lets tests stop
// a battle between half-turns.
type Queue struct {
	mu    sync.Mutex
	tasks []queuedTask
}

type queuedTask struct {
	delay time.Duration
	fn    func()
}

func (q *Queue) After(d time.Duration, fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, queuedTask{delay: d, fn: fn})
	q.mu.Unlock()
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Step runs the oldest pending callback and reports its delay. It returns
// false when the queue is empty.
func (q *Queue) Step() (time.Duration, bool) {
	q.mu.Lock()
	if len(q.tasks) == 0 {
		q.mu.Unlock()
		return 0, false
	}
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	q.mu.Unlock()
	t.fn()
	return t.delay, true
}

// Drain runs callbacks, including ones scheduled while draining, until the
// queue is empty. It returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		if _, ok := q.Step(); !ok {
			return n
		}
		n++
	}
}

// Pacing holds the delays between battle phases.
type Pacing struct {
	// Feedback is how long the attack/damage flash stays raised.
	Feedback time.Duration
	// OpponentDelay is the pause before the opponent acts.
	OpponentDelay time.Duration
	// HandBackDelay is the pause before control returns to the player.
	HandBackDelay time.Duration
	// EndDelay is the pause before the end of battle is reported.
	EndDelay time.Duration
}

// DefaultPacing returns the browser game's timings.
func DefaultPacing() Pacing {
	return Pacing{
		Feedback:      400 * time.Millisecond,
		OpponentDelay: 1000 * time.Millisecond,
		HandBackDelay: 800 * time.Millisecond,
		EndDelay:      2000 * time.Millisecond,
	}
}

// NoPacing returns zero delays.
func NoPacing() Pacing { return Pacing{} }
