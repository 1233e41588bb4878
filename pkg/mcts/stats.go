package mcts

// Visit count and cumulative reward of a node, the reward is accumulated from the
// perspective of the player who moved into the node
type NodeStats struct {
	visits int
	draws  int
	reward float64
}

// Get number of visits to this node
func (stats *NodeStats) Visits() int {
	return stats.visits
}

// Cumulated rewards for this node
func (stats *NodeStats) Reward() float64 {
	return stats.reward
}

// Average reward, defined only when the node was visited at least once
func (stats *NodeStats) WinRate() (float64, bool) {
	if stats.visits == 0 {
		return 0, false
	}
	return stats.reward / float64(stats.visits), true
}

// Number of playouts through this node that ended in a draw
func (stats *NodeStats) Draws() int {
	return stats.draws
}

func (stats *NodeStats) DrawRate() (float64, bool) {
	if stats.visits == 0 {
		return 0, false
	}
	return float64(stats.draws) / float64(stats.visits), true
}

func (stats *NodeStats) update(reward float64, draw bool) {
	stats.visits++
	stats.reward += reward
	if draw {
		stats.draws++
	}
}
