package mcts

// Reward credited to 'player' for a finished playout
func (s *Session[M, B]) reward(outcome Outcome, player Player) float64 {
	switch {
	case outcome.IsDraw():
		return s.config.DrawReward
	case outcome.IsWin() && outcome.Winner == player:
		return 1.0
	}
	return 0.0
}

// Walks from 'id' up to the root, every node on the way gets one visit and the reward
// of the outcome seen from its perspective player.
//
// source: https://en.wikipedia.org/wiki/Monte_Carlo_tree_search
// If white loses the simulation, all nodes along the selection incremented their simulation count,
// but among them only the black nodes were credited with wins. In games where draws are possible,
// a draw causes the numerator for both black and white to be incremented by 0.5 and the denominator by 1.
func (s *Session[M, B]) backpropagate(id NodeID, outcome Outcome) {
	for id != NoNode {
		node := s.tree.nodes[id]
		node.update(s.reward(outcome, node.perspective), outcome.IsDraw())
		if s.config.Pruning {
			s.refreshBounds(node)
		}
		id = node.parent
	}
}
