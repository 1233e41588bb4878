package mcts

import "fmt"

// Types shared by the board contract, the tree and the search

type MoveLike comparable

// Player identifies a side in the game, the values are chosen by the Board implementation,
// NoPlayer is reserved and never reported as the player to move
type Player int8

const NoPlayer Player = 0

type Status uint8

const (
	StatusInProgress Status = iota
	StatusWin
	StatusDraw
)

// Outcome of a game state: in progress, won by a player, or drawn
type Outcome struct {
	Status Status
	Winner Player
}

func InProgress() Outcome {
	return Outcome{Status: StatusInProgress}
}

func Win(p Player) Outcome {
	return Outcome{Status: StatusWin, Winner: p}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

// Whether the game is over
func (o Outcome) Terminal() bool {
	return o.Status != StatusInProgress
}

func (o Outcome) IsWin() bool {
	return o.Status == StatusWin
}

func (o Outcome) IsDraw() bool {
	return o.Status == StatusDraw
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusInProgress:
		return "InProgress"
	case StatusWin:
		return fmt.Sprintf("Win(%d)", o.Winner)
	case StatusDraw:
		return "Draw"
	}
	return fmt.Sprintf("Outcome(%d)", o.Status)
}

// Board is the contract a game state must satisfy to be searched.
//
// B is the concrete board type itself, so Apply can return it without an interface
// conversion on the rollout path:
//
//	type Position struct{ ... }
//	func (p Position) Apply(m Square) Position { ... }
//
// LegalMoves must be empty exactly when Outcome is terminal, and must return
// the moves in the same order for equal states (the search relies on it for determinism).
// Apply must not modify the receiver.
type Board[M MoveLike, B any] interface {
	CurrentPlayer() Player
	Outcome() Outcome
	LegalMoves() []M
	Apply(M) B
}
