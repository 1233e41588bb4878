package mcts

import "github.com/pkg/errors"

// Alpha-beta style pruning over the explored part of the tree.
//
// Every node keeps bounds [lo, hi] on its game value for its perspective player,
// on the scale loss < draw < win. Terminal nodes are exact. An internal node takes,
// for the player to move, the maximum of its children's bounds (an untried move may
// still be a win, so it lifts hi to win). The result is mirrored when the player to
// move differs from the perspective player, which assumes a two-player zero-sum game.
//
// Among the children the representative is the one with the greatest lower bound
// (then the greatest upper bound, then the earliest expanded). Any other child whose
// upper bound does not exceed the representative's lower bound can never be a better
// choice and is flagged dominated. Bounds only ever tighten, so a flag once set stays
// set, but it is recomputed every time the parent is refreshed.

type rank int8

const (
	rankLoss rank = 0
	rankDraw rank = 1
	rankWin  rank = 2
)

type bounds struct {
	lo, hi rank
}

var unknownBounds = bounds{lo: rankLoss, hi: rankWin}

func exactBounds(r rank) bounds {
	return bounds{lo: r, hi: r}
}

func (b bounds) exact() bool {
	return b.lo == b.hi
}

// Same bounds, seen by the other player
func (b bounds) mirror() bounds {
	return bounds{lo: rankWin - b.hi, hi: rankWin - b.lo}
}

func rankOf(outcome Outcome, player Player) rank {
	switch {
	case outcome.IsDraw():
		return rankDraw
	case outcome.IsWin() && outcome.Winner == player:
		return rankWin
	}
	return rankLoss
}

// Child realising the node's lower bound, NoNode if there are no children
func (s *Session[M, B]) representative(node *Node[M, B]) NodeID {
	best := NoNode
	var bb bounds
	for _, id := range node.children {
		cb := s.tree.nodes[id].bounds
		if best == NoNode || cb.lo > bb.lo || (cb.lo == bb.lo && cb.hi > bb.hi) {
			best, bb = id, cb
		}
	}
	return best
}

// Recomputes bounds, proof and the children's dominated flags of a single node
// from the current bounds of its children
func (s *Session[M, B]) refreshBounds(node *Node[M, B]) {
	if node.Terminal() {
		return
	}

	b := bounds{lo: rankLoss, hi: rankLoss}
	if len(node.untried) > 0 {
		b.hi = rankWin
	}
	for _, id := range node.children {
		cb := s.tree.nodes[id].bounds
		b.lo = max(b.lo, cb.lo)
		b.hi = max(b.hi, cb.hi)
	}

	rep := s.representative(node)
	if node.perspective != node.turn {
		b = b.mirror()
	}
	node.bounds = b
	if b.exact() && rep != NoNode {
		node.proof = s.tree.nodes[rep].proof
	}

	if rep == NoNode {
		return
	}
	alpha := s.tree.nodes[rep].bounds.lo
	for _, id := range node.children {
		child := s.tree.nodes[id]
		child.setDominated(id != rep && child.bounds.hi <= alpha)
	}
}

// Full minimax pass with alpha/beta cutoffs over the explored subtree of 'id',
// bounds are given for the player to move at 'id'
func (s *Session[M, B]) prove(id NodeID, alpha, beta rank) {
	node := s.tree.nodes[id]
	if node.Terminal() || node.bounds.exact() {
		return
	}

	for _, childID := range node.children {
		if alpha >= beta {
			// beta cutoff, the remaining siblings cannot change this node's value
			break
		}
		child := s.tree.nodes[childID]
		// alpha cutoff, already no better than a known alternative
		if child.bounds.hi <= alpha {
			continue
		}

		// child's window is seen by the player to move at the child
		ca, cb := alpha, beta
		if child.turn != node.turn {
			ca, cb = rankWin-beta, rankWin-alpha
		}
		s.prove(childID, ca, cb)
		alpha = max(alpha, child.bounds.lo)
	}

	s.refreshBounds(node)
}

// Runs the pruning pass over the whole tree, fails if pruning is disabled.
// Returns true if the root position got solved
func (s *Session[M, B]) Prune() (bool, error) {
	if !s.config.Pruning {
		return false, errors.Wrap(ErrInvalidState, "pruning is disabled")
	}

	root := s.tree.nodes[s.tree.root]
	s.prove(root.id, rankLoss, rankWin)
	proof, solved := root.Proven()
	if solved {
		s.logger.Debug().Stringer("outcome", proof).Int("size", s.tree.Len()).Msg("root solved")
	}
	return solved, nil
}

// Whether the pruning layer proved the game value of the root position
func (s *Session[M, B]) Solved() bool {
	if !s.config.Pruning {
		return false
	}
	_, solved := s.tree.nodes[s.tree.root].Proven()
	return solved
}
