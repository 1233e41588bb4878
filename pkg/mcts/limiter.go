package mcts

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1  // Stopped by user, by calling .Stop() or context cancellation
	StopMovetime  StopReason = 2  // Time limit reached
	StopNodes     StopReason = 4  // Tree size limit reached
	StopCycles    StopReason = 8  // Cycle limit reached
	StopSolved    StopReason = 16 // The pruning layer proved the root's value
)

var stopReasonNames = []lo.Tuple2[StopReason, string]{
	{A: StopInterrupt, B: "Interrupt"},
	{A: StopMovetime, B: "Movetime"},
	{A: StopNodes, B: "Nodes"},
	{A: StopCycles, B: "Cycles"},
	{A: StopSolved, B: "Solved"},
}

// Names of every set flag joined with '|', e.g. "Cycles|Solved"
func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}
	return strings.Join(lo.FilterMap(stopReasonNames, func(t lo.Tuple2[StopReason, string], _ int) (string, bool) {
		return t.B, sr&t.A == t.A
	}), "|")
}

// Limiter decides when a budgeted search ends. The stop flag may be set from any goroutine,
// everything else belongs to the searching goroutine
type Limiter struct {
	limits *Limits
	timer  *timer
	stop   atomic.Bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		timer:  newTimer(),
		ctx:    context.Background(),
	}
}

// Restart the clock and clear the stop flag, called on search setup
func (l *Limiter) Reset() {
	l.timer.reset(l.limits.Movetime)
	l.stop.Store(false)
	l.reason = StopNone
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) SetLimits(limits *Limits) {
	if limits == nil {
		limits = DefaultLimits()
	}
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Set the stop signal, will cause the search to exit if set to true
func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

// Get the stop signal, a cancelled context sets it
func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) Elapsed() time.Duration {
	return l.timer.elapsed()
}

// Get the reason why the search was stopped, valid after search ends
func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func toMask(val bool, flag StopReason) StopReason {
	if val {
		return flag
	}
	return StopNone
}

// Every limit reached for given tree size, number of cycles ran and solved state
func (l *Limiter) LimitMask(size, cycles int, solved bool) StopReason {
	mask := toMask(l.Stop(), StopInterrupt) | toMask(solved, StopSolved)
	if l.limits.Infinite {
		return mask
	}

	mask |= toMask(l.timer.expired(), StopMovetime)
	mask |= toMask(l.limits.Nodes > 0 && size >= l.limits.Nodes, StopNodes)
	mask |= toMask(l.limits.Cycles > 0 && cycles >= l.limits.Cycles, StopCycles)
	return mask
}

// Whether the search may continue, records the stop reason otherwise
func (l *Limiter) Ok(size, cycles int, solved bool) bool {
	l.reason = l.LimitMask(size, cycles, solved)
	return l.reason == StopNone
}

// Number of iterations to run before the next check
func (l *Limiter) batch(cycles int) int {
	n := l.limits.Batch
	if n <= 0 {
		n = DefaultBatchSize
	}
	if !l.limits.Infinite && l.limits.Cycles > 0 {
		n = min(n, l.limits.Cycles-cycles)
	}
	return max(n, 1)
}
