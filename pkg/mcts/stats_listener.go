package mcts

import "time"

type ListenerTreeStats[M MoveLike] struct {
	MaxDepth int
	// Cycles of the current search call
	Cycles  int
	Elapsed time.Duration
	Size    int
	// Valid only if HasBestMove is set
	BestMove    M
	HasBestMove bool
	// Win rate of the best move, for the player to move at the root
	WinRate    float64
	Pv         []M
	Solved     bool
	StopReason StopReason
}

// Listener function callback, will receive current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc[M MoveLike] func(ListenerTreeStats[M])

type StatsListener[M MoveLike] struct {
	// called when 'max depth' increases
	onDepth ListenerFunc[M]

	// called after every batch of iterations
	onBatch ListenerFunc[M]

	// called when the search stops (either by limiter or 'stop' signal)
	onStop ListenerFunc[M]
}

func NewStatsListener[M MoveLike]() StatsListener[M] {
	return StatsListener[M]{}
}

func (listener *StatsListener[M]) OnDepth(onDepth ListenerFunc[M]) *StatsListener[M] {
	listener.onDepth = onDepth
	return listener
}

// Attach a callback invoked after each batch of a Search call,
// computing the principal variation makes it costly for tiny batches
func (listener *StatsListener[M]) OnBatch(onBatch ListenerFunc[M]) *StatsListener[M] {
	listener.onBatch = onBatch
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener[M]) OnStop(onStop ListenerFunc[M]) *StatsListener[M] {
	listener.onStop = onStop
	return listener
}

func (s *Session[M, B]) StatsListener() *StatsListener[M] {
	return s.listener
}

func (s *Session[M, B]) SetListener(listener StatsListener[M]) {
	*s.listener = listener
}

func (s *Session[M, B]) ResetListener() {
	s.listener.OnBatch(nil).OnDepth(nil).OnStop(nil)
}

func (s *Session[M, B]) invokeListener(f ListenerFunc[M], cycles int) {
	if f != nil {
		f(s.listenerStats(cycles))
	}
}

func (s *Session[M, B]) listenerStats(cycles int) ListenerTreeStats[M] {
	stats := ListenerTreeStats[M]{
		MaxDepth:   s.maxDepth,
		Cycles:     cycles,
		Elapsed:    s.limiter.Elapsed(),
		Size:       s.tree.Len(),
		Pv:         s.Pv(),
		Solved:     s.Solved(),
		StopReason: s.limiter.StopReason(),
	}
	if best := s.bestChild(s.Root()); best != nil {
		stats.BestMove = best.move
		stats.HasBestMove = true
		stats.WinRate, _ = best.WinRate()
	}
	return stats
}
