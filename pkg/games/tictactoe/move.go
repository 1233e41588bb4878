package tictactoe

import (
	"fmt"

	"github.com/pkg/errors"
)

// Square of the board, also the move placing the current player's mark on it
type Square uint8

// Enum for the squares, rank 3 is the top row
const (
	A3 Square = iota
	B3
	C3
	A2
	B2
	C2
	A1
	B1
	C1
)

const SquareIllegal Square = 255

var _squareNames = [9]string{"a3", "b3", "c3", "a2", "b2", "c2", "a1", "b1", "c1"}

func (sq Square) String() string {
	if sq > C1 {
		return fmt.Sprintf("Square(%d)", uint8(sq))
	}
	return _squareNames[sq]
}

// Parse a square in 'a1'..'c3' notation
func ParseSquare(s string) (Square, error) {
	for i, name := range _squareNames {
		if name == s {
			return Square(i), nil
		}
	}
	return SquareIllegal, errors.Errorf("tictactoe: invalid square %q", s)
}
