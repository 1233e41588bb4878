package tictactoe

import "github.com/darkcodi/mcts-lib/pkg/mcts"

// horizontal, vertical and diagonal patterns as bitboards
var _winningBitboardPatterns = [8]uint16{
	0b111000000, 0b000111000, 0b000000111,
	0b100100100, 0b010010010, 0b001001001,
	0b100010001, 0b001010100,
}

func hasPattern(bb uint16) bool {
	for _, pattern := range _winningBitboardPatterns {
		if bb&pattern == pattern {
			return true
		}
	}
	return false
}

// Outcome of the position: a completed line wins, a full board without one is a draw
func (p Position) Outcome() mcts.Outcome {
	switch {
	case hasPattern(p.bitboards[_bitboardCrossIdx]):
		return mcts.Win(Cross)
	case hasPattern(p.bitboards[_bitboardCircleIdx]):
		return mcts.Win(Circle)
	case p.bitboards[0]|p.bitboards[1] == _fullBitboard:
		return mcts.Draw()
	}
	return mcts.InProgress()
}
