package mcts

import (
	"encoding/json"
	"strings"
	"time"
)

// Budget of a Search call. Zero values mean 'no limit', Infinite ignores every limit
// and only stops on Session.Stop, context cancellation or a solved root
type Limits struct {
	// Number of iterations
	Cycles int
	// Number of nodes in the tree
	Nodes    int
	Movetime time.Duration
	// Iterations run between two limit checks
	Batch    int
	Infinite bool
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const DefaultBatchSize int = 64

func DefaultLimits() *Limits {
	return &Limits{
		Batch:    DefaultBatchSize,
		Infinite: true,
	}
}

// Set the number of iterations to run
func (l *Limits) SetCycles(cycles int) *Limits {
	l.Cycles = cycles
	l.Infinite = false
	return l
}

// Set the maximum size of the tree
func (l *Limits) SetNodes(nodes int) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the maximum time for engine to think
func (l *Limits) SetMovetime(movetime time.Duration) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetBatch(batch int) *Limits {
	l.Batch = max(batch, 1)
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}
