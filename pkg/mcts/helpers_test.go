package mcts

import (
	"io"
	"strconv"

	"github.com/rs/zerolog"
)

func nodeStats(visits int, reward float64) NodeStats {
	return NodeStats{visits: visits, reward: reward}
}

// Random source replaying a fixed script, then falling back to the low end of the range
type scriptedRandom struct {
	values []int
	calls  int
}

func (r *scriptedRandom) NextInRange(low, high int) int {
	r.calls++
	if len(r.values) == 0 {
		return low
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

// Counts the draws taken from the wrapped source
type countingRandom struct {
	source RandomSource
	calls  int
}

func (r *countingRandom) NextInRange(low, high int) int {
	r.calls++
	return r.source.NextInRange(low, high)
}

// Game given by an explicit table of states, keyed by the moves played so far ("", "0", "0.2", ...).
// States missing from the table are draws.
type mockState struct {
	player  Player
	outcome Outcome
	moves   []int
}

type mockBoard struct {
	game map[string]mockState
	path string
}

func (b mockBoard) state() mockState {
	if st, ok := b.game[b.path]; ok {
		return st
	}
	return mockState{player: 1, outcome: Draw()}
}

func (b mockBoard) CurrentPlayer() Player {
	return b.state().player
}

func (b mockBoard) Outcome() Outcome {
	return b.state().outcome
}

func (b mockBoard) LegalMoves() []int {
	return b.state().moves
}

func (b mockBoard) Apply(m int) mockBoard {
	path := strconv.Itoa(m)
	if b.path != "" {
		path = b.path + "." + path
	}
	return mockBoard{game: b.game, path: path}
}

// Subtraction game: players take 1 or 2 from the pile in turns, taking the last one wins
type nimBoard struct {
	pile   int
	player Player
}

func newNim(pile int) nimBoard {
	return nimBoard{pile: pile, player: 1}
}

func (b nimBoard) CurrentPlayer() Player {
	return b.player
}

func (b nimBoard) Outcome() Outcome {
	if b.pile == 0 {
		// previous player took the last one
		return Win(3 - b.player)
	}
	return InProgress()
}

func (b nimBoard) LegalMoves() []int {
	switch {
	case b.pile == 0:
		return nil
	case b.pile == 1:
		return []int{1}
	}
	return []int{1, 2}
}

func (b nimBoard) Apply(m int) nimBoard {
	return nimBoard{pile: b.pile - m, player: 3 - b.player}
}

// Game that never ends, every state has the same two moves
type endlessBoard struct {
	plies int
}

func (b endlessBoard) CurrentPlayer() Player { return Player(1 + b.plies%2) }
func (b endlessBoard) Outcome() Outcome      { return InProgress() }
func (b endlessBoard) LegalMoves() []int     { return []int{0, 1} }
func (b endlessBoard) Apply(int) endlessBoard {
	return endlessBoard{plies: b.plies + 1}
}

func quietLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func newTestSession[M MoveLike, B Board[M, B]](board B, opts ...Option) (*Session[M, B], error) {
	return New[M, B](board, append([]Option{WithLogger(quietLogger())}, opts...)...)
}
