package mcts

import "github.com/pkg/errors"

var (
	// Operation attempted on a session or node that is not in the required state,
	// e.g. expanding a fully expanded node or running a session with a terminal root
	ErrInvalidState = errors.New("mcts: invalid state")

	// Best move queried before any root child was explored
	ErrNoMovesAvailable = errors.New("mcts: no moves available")

	// A Board or RandomSource implementation returned data violating its contract
	ErrContractViolation = errors.New("mcts: contract violation")

	// Session options out of range
	ErrInvalidConfig = errors.New("mcts: invalid config")
)
