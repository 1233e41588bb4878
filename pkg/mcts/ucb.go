package mcts

import (
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// UCB 1 : wins/visits + C * sqrt(ln(parent_visits)/visits),
// an unvisited child scores +Inf, so every move is tried once before any is revisited
func UCB1(winRate float64, visits, parentVisits int, c float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	return winRate + c*math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
}

// Chooses the child of 'parent' to descend into. The child's win rate is kept from the
// perspective of the player who moved into it, that is the player to move at 'parent',
// so the maximum is taken directly. Exact ties are broken with a draw from the random source.
// With pruning, dominated children are skipped unless every child is dominated.
func (s *Session[M, B]) selectChild(parent *Node[M, B]) (NodeID, error) {
	if len(parent.children) == 0 {
		return NoNode, errors.Wrapf(ErrInvalidState, "node %d has no children to select from", parent.id)
	}

	candidates := parent.children
	if s.config.Pruning {
		open := lo.Filter(parent.children, func(id NodeID, _ int) bool {
			return !s.tree.nodes[id].Dominated()
		})
		if len(open) > 0 {
			candidates = open
		}
	}

	best := math.Inf(-1)
	ties := make([]NodeID, 0, len(candidates))
	for _, id := range candidates {
		child := s.tree.nodes[id]
		rate, _ := child.WinRate()
		score := UCB1(rate, child.visits, parent.visits, s.config.ExplorationConstant)

		if score > best {
			best = score
			ties = append(ties[:0], id)
		} else if score == best {
			ties = append(ties, id)
		}
	}

	if len(ties) == 1 {
		return ties[0], nil
	}
	i, err := drawIndex(s.random, len(ties))
	if err != nil {
		return NoNode, err
	}
	return ties[i], nil
}
