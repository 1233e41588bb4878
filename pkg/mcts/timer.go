package mcts

import (
	"time"
)

type timer struct {
	start    time.Time
	duration time.Duration
}

func newTimer() *timer {
	return &timer{start: time.Now()}
}

// Check if this timer has ended, a timer without duration never ends
func (t *timer) expired() bool {
	return t.duration > 0 && time.Since(t.start) >= t.duration
}

// Set the 'start' as now
func (t *timer) reset(duration time.Duration) {
	t.start = time.Now()
	t.duration = duration
}

func (t *timer) elapsed() time.Duration {
	return time.Since(t.start)
}
