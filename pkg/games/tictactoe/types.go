package tictactoe

import "github.com/darkcodi/mcts-lib/pkg/mcts"

const (
	Cross  mcts.Player = 1
	Circle mcts.Player = 2
)

const (
	_bitboardCrossIdx  = 0
	_bitboardCircleIdx = 1
)

// Every square occupied
const _fullBitboard uint16 = 0b111111111
