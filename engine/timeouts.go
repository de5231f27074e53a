package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timeouts is the single cancellable delay primitive of the engine
// Every callback captures the run id at schedule time and is discarded if the run moved on
type Timeouts struct {
	clock Clock
	lock  sync.Locker // engine lock, held while a callback runs

	run atomic.Uint64

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]Timer
}

// NewTimeouts creates a registry on clock; callbacks run while holding lock
func NewTimeouts(clock Clock, lock sync.Locker) *Timeouts {
	return &Timeouts{
		clock:   clock,
		lock:    lock,
		pending: make(map[uint64]Timer),
	}
}

// Run returns the current run id
func (t *Timeouts) Run() uint64 {
	return t.run.Load()
}

// After schedules fn after d for the current run
func (t *Timeouts) After(d time.Duration, fn func()) {
	run := t.run.Load()

	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.pending[id] = nil
	t.mu.Unlock()

	timer := t.clock.AfterFunc(d, func() {
		t.lock.Lock()
		defer t.lock.Unlock()

		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()

		if t.run.Load() != run {
			return
		}
		fn()
	})

	t.mu.Lock()
	// The entry is gone if the timer already fired or CancelAll ran in between
	if _, ok := t.pending[id]; ok {
		t.pending[id] = timer
	} else if run != t.run.Load() {
		timer.Stop()
	}
	t.mu.Unlock()
}

// CancelAll invalidates the current run and stops every pending timer
// Returns the new run id
func (t *Timeouts) CancelAll() uint64 {
	next := t.run.Add(1)

	t.mu.Lock()
	for id, timer := range t.pending {
		if timer != nil {
			timer.Stop()
		}
		delete(t.pending, id)
	}
	t.mu.Unlock()
	return next
}

// Pending returns the number of timers not yet fired or cancelled
func (t *Timeouts) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
