package main

import (
	"fmt"
	"time"
)

// tickInterval is how often a hub polls its active question's timer.
// Threshold crossings are detected within one interval, not at the
// exact instant.
const tickInterval = 200 * time.Millisecond

// Clock abstracts time.Now so tests can drive the timer deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// TimeoutPhase escalates from advisory to overdue. It never moves
// backwards within one question; closing the question resets it.
type TimeoutPhase int

const (
	TimeoutNone TimeoutPhase = iota
	TimeoutSoft
	TimeoutHard
)

func (p TimeoutPhase) String() string {
	switch p {
	case TimeoutSoft:
		return "soft"
	case TimeoutHard:
		return "hard"
	default:
		return "none"
	}
}

// QuestionTimer tracks elapsed time for the active question. The clock
// survives pause/resume cycles by backdating the start instant, so
// elapsed time accumulates across them.
type QuestionTimer struct {
	clock     Clock
	running   bool
	startedAt time.Time
	paused    time.Duration
	soft      time.Duration
	hard      time.Duration
	phase     TimeoutPhase
}

func newQuestionTimer(clock Clock, soft, hard time.Duration) *QuestionTimer {
	return &QuestionTimer{
		clock: clock,
		soft:  soft,
		hard:  hard,
	}
}

// Start is a no-op if the timer is already running.
func (t *QuestionTimer) Start() {
	if t.running {
		return
	}
	t.startedAt = t.clock.Now().Add(-t.paused)
	t.running = true
}

// Pause is a no-op if the timer is not running.
func (t *QuestionTimer) Pause() {
	if !t.running {
		return
	}
	t.paused = t.clock.Now().Sub(t.startedAt)
	t.running = false
}

// Reset zeroes elapsed time and clears the timeout phase. It leaves the
// timer stopped; the caller restarts it if the question is still open.
func (t *QuestionTimer) Reset() {
	t.Pause()
	t.paused = 0
	t.phase = TimeoutNone
}

func (t *QuestionTimer) Running() bool {
	return t.running
}

func (t *QuestionTimer) Phase() TimeoutPhase {
	return t.phase
}

func (t *QuestionTimer) Elapsed() time.Duration {
	if t.running {
		return t.clock.Now().Sub(t.startedAt)
	}
	return t.paused
}

// SetThresholds replaces both timeout thresholds absolutely.
func (t *QuestionTimer) SetThresholds(soft, hard time.Duration) {
	t.soft = soft
	t.hard = hard
}

// ExtendThresholds shifts both thresholds by delta, relative to
// whichever values are active at the time of the call.
func (t *QuestionTimer) ExtendThresholds(delta time.Duration) {
	t.soft += delta
	t.hard += delta
}

func (t *QuestionTimer) Thresholds() (soft, hard time.Duration) {
	return t.soft, t.hard
}

// Tick checks for a threshold crossing. Crossing the hard threshold
// pauses the clock; crossing the soft threshold does not. When
// suppressSoft is set (opponent answer channel disabled) the soft phase
// is skipped entirely and the phase can move straight to hard. Returns
// the new phase and whether this call changed it.
func (t *QuestionTimer) Tick(suppressSoft bool) (TimeoutPhase, bool) {
	if !t.running {
		return t.phase, false
	}

	elapsed := t.Elapsed()

	if t.phase != TimeoutHard && elapsed >= t.hard {
		t.phase = TimeoutHard
		t.Pause()
		return t.phase, true
	}

	if t.phase == TimeoutNone && !suppressSoft && elapsed >= t.soft {
		t.phase = TimeoutSoft
		return t.phase, true
	}

	return t.phase, false
}

// formatElapsed renders a duration as MM:SS, floor-truncated to the second.
func formatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
