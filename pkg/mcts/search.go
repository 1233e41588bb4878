package mcts

import (
	"context"
	"slices"

	"github.com/pkg/errors"
)

// Actual search loop, simply calls n times:
//
// 1. selection - to choose the most promising node
//
// 2. expansion - to add one untried move of that node to the tree
//
// 3. rollout - to simulate the game, and get the result of a playout
//
// 4. backpropagate - to update counters up to the root
//
// Calls accumulate on the same tree. Fails with ErrInvalidState for negative n
// or when the root position is already terminal. On error the tree keeps the
// statistics of every iteration completed before the failing one.
func (s *Session[M, B]) Run(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidState, "negative iteration count %d", n)
	}
	if err := s.checkRoot(); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		if _, err := s.iterate(); err != nil {
			return s.iterationError(err)
		}
	}

	s.logger.Debug().
		Int("iterations", n).
		Int("cycles", s.cycles).
		Int("size", s.tree.Len()).
		Int("maxdepth", s.maxDepth).
		Msg("run finished")
	return nil
}

// Runs a single iteration and returns the ids of the nodes it updated, from the
// expanded (or terminal) node up to the root. Fails like Run.
func (s *Session[M, B]) Step() ([]NodeID, error) {
	if err := s.checkRoot(); err != nil {
		return nil, err
	}
	id, err := s.iterate()
	if err != nil {
		return nil, s.iterationError(err)
	}

	path := make([]NodeID, 0, s.tree.nodes[id].depth+1)
	for ; id != NoNode; id = s.tree.nodes[id].parent {
		path = append(path, id)
	}
	return path, nil
}

func (s *Session[M, B]) checkRoot() error {
	if root := s.Root(); root.Terminal() {
		return errors.Wrapf(ErrInvalidState, "root position is terminal (%v)", root.outcome)
	}
	return nil
}

func (s *Session[M, B]) iterationError(err error) error {
	if errors.Is(err, ErrContractViolation) {
		s.logger.Warn().Err(err).Int("cycle", s.cycles).Msg("board or random source broke its contract")
	}
	return errors.WithMessagef(err, "iteration %d", s.cycles+1)
}

// Single iteration, returns the node the playout was credited from. Everything that can fail (selection draws, the successor board,
// the rollout) is computed before the tree is touched, so a failing iteration
// leaves the tree as it was.
func (s *Session[M, B]) iterate() (NodeID, error) {
	leaf, err := s.selection()
	if err != nil {
		return NoNode, err
	}

	var (
		child *Node[M, B]
		index int
		board = leaf.board
	)
	if !leaf.Terminal() {
		child, index, err = s.expand(leaf)
		if err != nil {
			return NoNode, err
		}
		board = child.board
	}

	outcome, err := Rollout[M, B](board, s.random, s.config.RolloutLimit, s.config.RolloutCutoffOutcome)
	if err != nil {
		return NoNode, err
	}

	// commit
	id := leaf.id
	if child != nil {
		leaf.untried = slices.Delete(leaf.untried, index, index+1)
		id = s.tree.add(child)
		leaf.children = append(leaf.children, id)
	}
	s.maxDepth = max(s.maxDepth, s.tree.nodes[id].depth)
	s.backpropagate(id, outcome)
	s.cycles++
	return id, nil
}

// Descends from the root to the node to expand or simulate from: a terminal node,
// or a node with untried moves. With pruning, a proven node is descended through
// its representative child instead of being scored.
func (s *Session[M, B]) selection() (*Node[M, B], error) {
	node := s.tree.nodes[s.tree.root]
	for !node.Terminal() {
		if s.config.Pruning {
			if _, proven := node.Proven(); proven {
				if rep := s.representative(node); rep != NoNode {
					node = s.tree.nodes[rep]
					continue
				}
			}
		}

		if len(node.untried) > 0 {
			break
		}

		id, err := s.selectChild(node)
		if err != nil {
			return nil, err
		}
		node = s.tree.nodes[id]
	}
	return node, nil
}

// Prepares the child for one untried move of 'node', drawn uniformly from the
// random source. The child is not added to the tree, returns it with the index
// of its move in node's untried moves.
func (s *Session[M, B]) expand(node *Node[M, B]) (*Node[M, B], int, error) {
	if node.Terminal() {
		return nil, 0, errors.Wrapf(ErrInvalidState, "cannot expand terminal node %d", node.id)
	}
	if len(node.untried) == 0 {
		return nil, 0, errors.Wrapf(ErrInvalidState, "node %d has no untried moves", node.id)
	}

	index := 0
	if len(node.untried) > 1 {
		var err error
		if index, err = drawIndex(s.random, len(node.untried)); err != nil {
			return nil, 0, err
		}
	}

	move := node.untried[index]
	// The child's rewards are kept for the player who made the move
	child, err := newNode[M, B](NoNode, node.id, move, node.board.Apply(move), node.turn, node.depth+1)
	if err != nil {
		return nil, 0, errors.WithMessagef(err, "applying move %v", move)
	}
	return child, index, nil
}

// Plays uniformly random moves from 'board' until the game ends and returns the outcome.
// A terminal board is returned as is, without drawing from 'r'. With limit > 0 the playout
// stops after that many plies and reports 'cutoff'.
func Rollout[M MoveLike, B Board[M, B]](board B, r RandomSource, limit int, cutoff Outcome) (Outcome, error) {
	for plies := 0; ; plies++ {
		outcome := board.Outcome()
		if outcome.Terminal() {
			return outcome, nil
		}
		if limit > 0 && plies >= limit {
			return cutoff, nil
		}

		moves := board.LegalMoves()
		if len(moves) == 0 {
			return Outcome{}, errors.Wrapf(ErrContractViolation, "board in progress reports no legal moves after %d plies", plies)
		}

		index := 0
		if len(moves) > 1 {
			var err error
			if index, err = drawIndex(r, len(moves)); err != nil {
				return Outcome{}, err
			}
		}
		board = board.Apply(moves[index])
	}
}

// Runs batches of iterations until one of the limits is reached, the context is cancelled,
// Stop is called, or (with pruning) the root gets solved. Passing nil limits searches
// until interrupted. Returns the reason the search ended.
//
// Example:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	go func() {
//	    time.Sleep(2 * time.Second)
//	    cancel() // Cancel the search after 2 seconds
//	}()
//
//	reason, err := session.Search(ctx, mcts.DefaultLimits().SetCycles(100000))
func (s *Session[M, B]) Search(ctx context.Context, limits *Limits) (StopReason, error) {
	if err := s.checkRoot(); err != nil {
		return StopNone, err
	}

	s.limiter.SetContext(ctx)
	s.limiter.SetLimits(limits)
	s.limiter.Reset()

	start, depth := s.cycles, s.maxDepth
	for s.limiter.Ok(s.tree.Len(), s.cycles-start, s.Solved()) {
		if err := s.Run(s.limiter.batch(s.cycles - start)); err != nil {
			return StopNone, err
		}

		if s.maxDepth > depth {
			depth = s.maxDepth
			s.invokeListener(s.listener.onDepth, s.cycles-start)
		}
		s.invokeListener(s.listener.onBatch, s.cycles-start)
	}

	reason := s.limiter.StopReason()
	s.invokeListener(s.listener.onStop, s.cycles-start)
	s.logger.Debug().
		Stringer("reason", reason).
		Int("cycles", s.cycles-start).
		Dur("elapsed", s.limiter.Elapsed()).
		Msg("search stopped")
	return reason, nil
}

// Interrupts a running Search, safe to call from another goroutine
func (s *Session[M, B]) Stop() {
	s.limiter.SetStop(true)
}
