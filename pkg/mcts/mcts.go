package mcts

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

type SessionState int

const (
	// No iteration touched the root yet
	StateFresh SessionState = iota
	// Iterations ran, the root is still in progress
	StateRunning
	// The root position is terminal, there is nothing to search
	StateExhausted
)

func (state SessionState) String() string {
	switch state {
	case StateFresh:
		return "Fresh"
	case StateRunning:
		return "Running"
	case StateExhausted:
		return "Exhausted"
	}
	return fmt.Sprintf("SessionState(%d)", int(state))
}

// Session owns the search tree of one root position, with its random source and configuration.
// It is not safe for concurrent use, apart from Stop.
type Session[M MoveLike, B Board[M, B]] struct {
	config   Config
	tree     *Tree[M, B]
	random   RandomSource
	logger   zerolog.Logger
	cycles   int
	maxDepth int
	limiter  *Limiter
	listener *StatsListener[M]
}

// Create a new session rooted at 'board'
//
// Example:
//
//	session, err := mcts.New[tictactoe.Square](tictactoe.New(),
//		mcts.WithPruning(true),
//		mcts.WithRandom(mcts.NewRandom(42)),
//	)
//	if err != nil { ... }
//	if err := session.Run(1000); err != nil { ... }
//	move, err := session.BestMove()
func New[M MoveLike, B Board[M, B]](board B, opts ...Option) (*Session[M, B], error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Random == nil {
		config.Random = NewSystemRandom()
	}

	tree, err := newRootedTree[M, B](board, config.NodeCapacity)
	if err != nil {
		return nil, errors.WithMessage(err, "creating the root node")
	}

	return &Session[M, B]{
		config:   config,
		tree:     tree,
		random:   config.Random,
		logger:   config.Logger,
		limiter:  NewLimiter(),
		listener: &StatsListener[M]{},
	}, nil
}

func (s *Session[M, B]) Config() Config {
	return s.config
}

// Read access to the search tree, valid until the next Advance or Reset
func (s *Session[M, B]) Tree() *Tree[M, B] {
	return s.tree
}

func (s *Session[M, B]) Root() *Node[M, B] {
	return s.tree.nodes[s.tree.root]
}

func (s *Session[M, B]) State() SessionState {
	root := s.Root()
	switch {
	case root.Terminal():
		return StateExhausted
	case root.visits == 0:
		return StateFresh
	}
	return StateRunning
}

// Number of iterations completed since the root was set
func (s *Session[M, B]) Cycles() int {
	return s.cycles
}

// Maximum depth of a node reached by the search, relative to the root
func (s *Session[M, B]) MaxDepth() int {
	return s.maxDepth
}

// Move of the most visited root child. With pruning, a child proven to be a win for
// the player to move is returned first, and dominated children are not considered.
// Ties go to the child expanded first, no randomness is consumed.
func (s *Session[M, B]) BestMove() (M, error) {
	root := s.Root()
	child := s.bestChild(root)
	if child == nil {
		var none M
		return none, errors.Wrapf(ErrNoMovesAvailable, "root has no explored moves (state %v)", s.State())
	}
	return child.move, nil
}

func (s *Session[M, B]) bestChild(node *Node[M, B]) *Node[M, B] {
	if len(node.children) == 0 {
		return nil
	}
	children := lo.Map(node.children, func(id NodeID, _ int) *Node[M, B] {
		return s.tree.nodes[id]
	})

	if s.config.Pruning {
		if winner, ok := lo.Find(children, func(child *Node[M, B]) bool {
			return child.bounds.lo == rankWin
		}); ok {
			return winner
		}
		if open := lo.Reject(children, func(child *Node[M, B], _ int) bool {
			return child.Dominated()
		}); len(open) > 0 {
			children = open
		}
	}

	return lo.MaxBy(children, func(a, b *Node[M, B]) bool {
		return a.visits > b.visits
	})
}

// Principal variation, following the best child from the root
func (s *Session[M, B]) Pv() []M {
	pv := make([]M, 0, s.maxDepth)
	for node := s.bestChild(s.Root()); node != nil; node = s.bestChild(node) {
		pv = append(pv, node.move)
	}
	return pv
}

// Makes the position after 'move' the new root. An explored move keeps its subtree with
// all statistics, the rest of the tree is dropped. A legal move that was never explored
// starts a fresh tree. Fails with ErrInvalidState if the move is not legal at the root.
func (s *Session[M, B]) Advance(move M) error {
	root := s.Root()
	if root.Terminal() {
		return errors.Wrapf(ErrInvalidState, "cannot advance from terminal root (%v)", root.outcome)
	}

	if id := s.tree.Child(root.id, move); id != NoNode {
		s.tree = s.tree.subtree(id, s.config.NodeCapacity)
	} else {
		if !lo.Contains(root.untried, move) {
			return errors.Wrapf(ErrInvalidState, "move %v is not legal at the root", move)
		}
		tree, err := newRootedTree[M, B](root.board.Apply(move), s.config.NodeCapacity)
		if err != nil {
			return errors.WithMessagef(err, "applying move %v", move)
		}
		s.tree = tree
	}

	s.cycles = 0
	s.maxDepth = 0
	s.tree.Walk(s.tree.root, func(node *Node[M, B]) bool {
		s.maxDepth = max(s.maxDepth, node.depth)
		return true
	})

	s.logger.Debug().
		Str("move", fmt.Sprint(move)).
		Int("size", s.tree.Len()).
		Int("visits", s.Root().visits).
		Msg("advanced root")
	return nil
}

// Drops the whole tree and starts over from 'board'
func (s *Session[M, B]) Reset(board B) error {
	tree, err := newRootedTree[M, B](board, s.config.NodeCapacity)
	if err != nil {
		return errors.WithMessage(err, "creating the root node")
	}
	s.tree = tree
	s.cycles = 0
	s.maxDepth = 0
	return nil
}

func (s *Session[M, B]) String() string {
	return fmt.Sprintf("Session={State=%v, Size=%d, Stats:{maxdepth=%d, cycles=%d}, Root=%v, Root.Children=%v}",
		s.State(), s.tree.Len(), s.maxDepth, s.cycles, s.Root(), s.Root().children)
}
