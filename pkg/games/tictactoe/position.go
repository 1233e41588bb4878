package tictactoe

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"

	"github.com/darkcodi/mcts-lib/pkg/mcts"
)

// Position is an immutable 3x3 board, Cross always moves first
type Position struct {
	bitboards [2]uint16
}

var _ mcts.Board[Square, Position] = Position{}

func New() Position {
	return Position{}
}

// Parse a position from 9 characters, rank 3 first: 'x', 'o' and '.' for an empty square,
// whitespace and '/' are ignored
//
//	FromString("xx./oo./...") // cross to move, wins on c3
func FromString(s string) (Position, error) {
	var p Position
	squares := strings.Map(func(r rune) rune {
		if r == '/' || r == ' ' || r == '\n' || r == '\t' {
			return -1
		}
		return r
	}, strings.ToLower(s))

	if len(squares) != 9 {
		return p, errors.Errorf("tictactoe: expected 9 squares, got %d in %q", len(squares), s)
	}
	for i, c := range squares {
		switch c {
		case 'x':
			p.bitboards[_bitboardCrossIdx] |= 1 << i
		case 'o':
			p.bitboards[_bitboardCircleIdx] |= 1 << i
		case '.':
		default:
			return p, errors.Errorf("tictactoe: invalid square %q in %q", c, s)
		}
	}

	crosses, circles := p.count(_bitboardCrossIdx), p.count(_bitboardCircleIdx)
	if crosses != circles && crosses != circles+1 {
		return p, errors.Errorf("tictactoe: %d crosses and %d circles cannot occur in a game", crosses, circles)
	}
	if hasPattern(p.bitboards[_bitboardCrossIdx]) && hasPattern(p.bitboards[_bitboardCircleIdx]) {
		return p, errors.Errorf("tictactoe: both players have a line in %q", s)
	}
	return p, nil
}

func (p Position) count(idx int) int {
	return bits.OnesCount16(p.bitboards[idx])
}

func (p Position) CurrentPlayer() mcts.Player {
	if p.count(_bitboardCrossIdx) > p.count(_bitboardCircleIdx) {
		return Circle
	}
	return Cross
}

// Mark of the square, mcts.NoPlayer if it's empty
func (p Position) At(sq Square) mcts.Player {
	switch {
	case p.bitboards[_bitboardCrossIdx]&(1<<sq) != 0:
		return Cross
	case p.bitboards[_bitboardCircleIdx]&(1<<sq) != 0:
		return Circle
	}
	return mcts.NoPlayer
}

// Position after the current player marks 'sq', the receiver is left unchanged.
// Marking an occupied square is a caller error and panics.
func (p Position) Apply(sq Square) Position {
	if sq > C1 || p.At(sq) != mcts.NoPlayer {
		panic("tictactoe: illegal move " + sq.String())
	}

	idx := _bitboardCrossIdx
	if p.CurrentPlayer() == Circle {
		idx = _bitboardCircleIdx
	}
	p.bitboards[idx] |= 1 << sq
	return p
}

func (p Position) String() string {
	var sb strings.Builder
	for sq := A3; sq <= C1; sq++ {
		switch p.At(sq) {
		case Cross:
			sb.WriteByte('x')
		case Circle:
			sb.WriteByte('o')
		default:
			sb.WriteByte('.')
		}
		if sq%3 == 2 && sq != C1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
