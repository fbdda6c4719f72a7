package service

import (
	"testing"
	"time"
)

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// manualTimer returns a timer driven by the returned channel: each send is
// one countdown second.
func manualTimer() (*RestTimer, chan time.Time) {
	ticks := make(chan time.Time)
	return newRestTimerWithTick(func() <-chan time.Time { return ticks }), ticks
}

// trySend offers one tick without blocking forever; after a stop no
// goroutine is listening and the send must simply go nowhere.
func trySend(ticks chan time.Time) {
	select {
	case ticks <- time.Time{}:
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRestTimerCountsDownToZero(t *testing.T) {
	timer, ticks := manualTimer()

	timer.Start(3)
	if !timer.IsRunning() {
		t.Fatal("timer should be running after Start")
	}
	if got := timer.Remaining(); got != 3 {
		t.Fatalf("Remaining = %d, want 3", got)
	}

	for expect := 2; expect >= 1; expect-- {
		ticks <- time.Time{}
		want := expect
		waitFor(t, "decrement", func() bool { return timer.Remaining() == want })
	}

	ticks <- time.Time{}
	waitFor(t, "timer to finish", func() bool { return !timer.IsRunning() })
	if got := timer.Remaining(); got != 0 {
		t.Fatalf("Remaining after finish = %d, want 0", got)
	}

	// A stray tick after expiry must not push the countdown negative.
	trySend(ticks)
	if got := timer.Remaining(); got != 0 {
		t.Fatalf("Remaining after stray tick = %d, want 0", got)
	}
}

func TestRestTimerFullDefaultCountdown(t *testing.T) {
	timer, ticks := manualTimer()

	timer.Start(75)
	for expect := 74; expect >= 0; expect-- {
		ticks <- time.Time{}
		want := expect
		waitFor(t, "decrement", func() bool { return timer.Remaining() == want })
		if timer.Remaining() < 0 {
			t.Fatal("remaining went negative")
		}
	}
	waitFor(t, "timer to finish", func() bool { return !timer.IsRunning() })
}

func TestRestTimerStop(t *testing.T) {
	timer, ticks := manualTimer()

	timer.Start(10)
	ticks <- time.Time{}
	waitFor(t, "decrement", func() bool { return timer.Remaining() == 9 })

	timer.Stop()
	if timer.IsRunning() {
		t.Fatal("timer should not be running after Stop")
	}

	// The cancelled goroutine must never apply a late tick.
	trySend(ticks)
	if got := timer.Remaining(); got != 9 {
		t.Fatalf("Remaining changed after Stop: %d", got)
	}

	// Stop is idempotent.
	timer.Stop()
}

func TestRestTimerRestartReplacesCountdown(t *testing.T) {
	timer, ticks := manualTimer()

	timer.Start(30)
	ticks <- time.Time{}
	waitFor(t, "decrement", func() bool { return timer.Remaining() == 29 })

	// Completing another set restarts the countdown; the two never stack.
	timer.Start(30)
	time.Sleep(10 * time.Millisecond) // Let the replaced goroutine observe its cancel
	if got := timer.Remaining(); got != 30 {
		t.Fatalf("Remaining after restart = %d, want 30", got)
	}

	ticks <- time.Time{}
	waitFor(t, "single decrement", func() bool { return timer.Remaining() == 29 })
	if !timer.IsRunning() {
		t.Fatal("timer should still be running")
	}
}

func TestRestTimerStartWithNonPositiveDuration(t *testing.T) {
	timer, _ := manualTimer()

	timer.Start(0)
	if timer.IsRunning() {
		t.Fatal("zero-duration start should leave the timer stopped")
	}
	timer.Start(-5)
	if timer.IsRunning() {
		t.Fatal("negative-duration start should leave the timer stopped")
	}
}
