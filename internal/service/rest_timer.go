package service

import (
	"sync"
	"time"
)

// RestTimer is the single between-sets countdown for one active workout.
// Starting it again replaces any in-flight countdown; two countdowns never
// run at once. The counting goroutine re-checks cancellation under the lock
// before every decrement, so no tick can be observed after a cancel.
type RestTimer struct {
	mu        sync.Mutex
	remaining int
	running   bool
	cancel    chan struct{}

	// tick returns a channel that fires once per countdown second.
	// Replaced in tests to drive the timer deterministically.
	tick func() <-chan time.Time
}

// NewRestTimer creates a stopped timer ticking at one-second intervals.
func NewRestTimer() *RestTimer {
	return &RestTimer{
		tick: func() <-chan time.Time { return time.After(time.Second) },
	}
}

func newRestTimerWithTick(tick func() <-chan time.Time) *RestTimer {
	return &RestTimer{tick: tick}
}

// Start cancels any running countdown and begins a new one of the given
// duration in seconds. Durations <= 0 leave the timer stopped.
func (t *RestTimer) Start(seconds int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	if seconds <= 0 {
		return
	}

	t.remaining = seconds
	t.running = true
	t.cancel = make(chan struct{})
	go t.run(t.cancel)
}

// Stop cancels the countdown. Safe to call at any time, any number of
// times; always leaves the timer not running.
func (t *RestTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *RestTimer) stopLocked() {
	if t.cancel != nil {
		close(t.cancel)
		t.cancel = nil
	}
	t.running = false
}

// Remaining returns the seconds left on the countdown.
func (t *RestTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// IsRunning reports whether a countdown is in flight.
func (t *RestTimer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *RestTimer) run(cancel chan struct{}) {
	for {
		select {
		case <-cancel:
			return
		case <-t.tick():
		}

		t.mu.Lock()
		// A Stop or replacing Start may have raced the tick; the stale
		// goroutine must not touch state.
		if t.cancel != cancel {
			t.mu.Unlock()
			return
		}
		t.remaining--
		if t.remaining <= 0 {
			t.remaining = 0
			t.running = false
			t.cancel = nil
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
	}
}
