package main

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced Clock for deterministic timer tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestTimerAccumulatesAcrossPause(t *testing.T) {
	clock := newFakeClock()
	timer := newQuestionTimer(clock, 60*time.Second, 90*time.Second)

	timer.Start()
	clock.Advance(10 * time.Second)
	timer.Pause()

	if got := timer.Elapsed(); got != 10*time.Second {
		t.Fatalf("elapsed after pause = %v, want 10s", got)
	}

	// Wall time passing while paused must not count.
	clock.Advance(30 * time.Second)
	if got := timer.Elapsed(); got != 10*time.Second {
		t.Fatalf("elapsed while paused = %v, want 10s", got)
	}

	timer.Start()
	clock.Advance(5 * time.Second)
	if got := timer.Elapsed(); got != 15*time.Second {
		t.Fatalf("elapsed after resume = %v, want 15s", got)
	}
}

func TestTimerStartAndPauseIdempotent(t *testing.T) {
	clock := newFakeClock()
	timer := newQuestionTimer(clock, 60*time.Second, 90*time.Second)

	timer.Start()
	clock.Advance(5 * time.Second)
	timer.Start()
	if got := timer.Elapsed(); got != 5*time.Second {
		t.Fatalf("elapsed after double start = %v, want 5s", got)
	}

	timer.Pause()
	timer.Pause()
	if got := timer.Elapsed(); got != 5*time.Second {
		t.Fatalf("elapsed after double pause = %v, want 5s", got)
	}
}

func TestTimerSoftThenHardEscalation(t *testing.T) {
	clock := newFakeClock()
	timer := newQuestionTimer(clock, 60*time.Second, 90*time.Second)
	timer.Start()

	clock.Advance(59 * time.Second)
	if phase, changed := timer.Tick(false); changed || phase != TimeoutNone {
		t.Fatalf("before soft threshold: phase=%v changed=%v", phase, changed)
	}

	clock.Advance(1 * time.Second)
	phase, changed := timer.Tick(false)
	if !changed || phase != TimeoutSoft {
		t.Fatalf("at soft threshold: phase=%v changed=%v, want soft transition", phase, changed)
	}

	// Soft fires once only.
	if _, changed := timer.Tick(false); changed {
		t.Fatal("soft transition reported twice")
	}

	clock.Advance(30 * time.Second)
	phase, changed = timer.Tick(false)
	if !changed || phase != TimeoutHard {
		t.Fatalf("at hard threshold: phase=%v changed=%v, want hard transition", phase, changed)
	}
	if timer.Running() {
		t.Fatal("timer still running after hard timeout")
	}
	if got := timer.Elapsed(); got != 90*time.Second {
		t.Fatalf("elapsed frozen at %v, want 90s", got)
	}

	// A stopped timer never ticks again.
	if _, changed := timer.Tick(false); changed {
		t.Fatal("tick reported a change after hard timeout")
	}
}

func TestTimerSuppressedSoftSkipsToHard(t *testing.T) {
	clock := newFakeClock()
	timer := newQuestionTimer(clock, 60*time.Second, 90*time.Second)
	timer.Start()

	clock.Advance(70 * time.Second)
	if phase, changed := timer.Tick(true); changed || phase != TimeoutNone {
		t.Fatalf("suppressed soft: phase=%v changed=%v, want no transition", phase, changed)
	}

	clock.Advance(20 * time.Second)
	phase, changed := timer.Tick(true)
	if !changed || phase != TimeoutHard {
		t.Fatalf("suppressed tick at hard threshold: phase=%v changed=%v", phase, changed)
	}
}

func TestTimerThresholdOrdering(t *testing.T) {
	clock := newFakeClock()
	timer := newQuestionTimer(clock, 60*time.Second, 90*time.Second)
	timer.Start()

	// Extend then replace: the replacement wins outright.
	timer.ExtendThresholds(searchExtension)
	timer.SetThresholds(addTimeSoft, addTimeHard)
	if soft, hard := timer.Thresholds(); soft != 120*time.Second || hard != 150*time.Second {
		t.Fatalf("thresholds after extend-then-set = %v/%v, want 120s/150s", soft, hard)
	}

	// Replace then extend: the extension stacks on the replacement.
	timer.SetThresholds(addTimeSoft, addTimeHard)
	timer.ExtendThresholds(searchExtension)
	if soft, hard := timer.Thresholds(); soft != 140*time.Second || hard != 170*time.Second {
		t.Fatalf("thresholds after set-then-extend = %v/%v, want 140s/170s", soft, hard)
	}
}

func TestTimerResetClearsPhase(t *testing.T) {
	clock := newFakeClock()
	timer := newQuestionTimer(clock, 1*time.Second, 2*time.Second)
	timer.Start()

	clock.Advance(2 * time.Second)
	timer.Tick(false)
	if timer.Phase() != TimeoutHard {
		t.Fatalf("phase = %v, want hard", timer.Phase())
	}

	timer.Reset()
	if timer.Phase() != TimeoutNone {
		t.Fatalf("phase after reset = %v, want none", timer.Phase())
	}
	if timer.Elapsed() != 0 {
		t.Fatalf("elapsed after reset = %v, want 0", timer.Elapsed())
	}
	if timer.Running() {
		t.Fatal("timer running after reset")
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{999 * time.Millisecond, "00:00"},
		{1 * time.Second, "00:01"},
		{59 * time.Second, "00:59"},
		{60 * time.Second, "01:00"},
		{90*time.Second + 500*time.Millisecond, "01:30"},
		{10 * time.Minute, "10:00"},
	}

	for _, tc := range cases {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
