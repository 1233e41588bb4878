package tictactoe

import "math/bits"

// Free squares in ascending order, empty once the game is over
func (p Position) LegalMoves() []Square {
	if p.Outcome().Terminal() {
		return nil
	}

	free := uint(_fullBitboard ^ (p.bitboards[0] | p.bitboards[1]))
	moves := make([]Square, 0, bits.OnesCount(free))
	for free != 0 {
		moves = append(moves, Square(bits.TrailingZeros(free)))
		free &= free - 1
	}
	return moves
}
