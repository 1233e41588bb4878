package mcts

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Stable identifier of a node within a single Tree, never reused while the tree lives
type NodeID int32

const NoNode NodeID = -1

const (
	TerminalMask  uint32 = 1
	DominatedMask uint32 = 2
)

// Node represents one reached game state. Statistics change only through the search,
// callers get read access through the Tree.
type Node[M MoveLike, B Board[M, B]] struct {
	NodeStats
	id       NodeID
	parent   NodeID
	children []NodeID
	move     M
	board    B
	outcome  Outcome
	// player to move in this node's board
	turn Player
	// player from whose point of view the rewards and bounds are kept
	perspective Player
	untried     []M
	depth       int
	flags       uint32
	bounds      bounds
	proof       Outcome
}

func newNode[M MoveLike, B Board[M, B]](id, parent NodeID, move M, board B, perspective Player, depth int) (*Node[M, B], error) {
	outcome := board.Outcome()
	node := &Node[M, B]{
		id:          id,
		parent:      parent,
		move:        move,
		board:       board,
		outcome:     outcome,
		turn:        board.CurrentPlayer(),
		perspective: perspective,
		depth:       depth,
		bounds:      unknownBounds,
	}

	if outcome.Terminal() {
		node.flags |= TerminalMask
		node.proof = outcome
		node.bounds = exactBounds(rankOf(outcome, perspective))
		return node, nil
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return nil, errors.Wrap(ErrContractViolation, "board in progress reports no legal moves")
	}
	if len(lo.Uniq(moves)) != len(moves) {
		return nil, errors.Wrapf(ErrContractViolation, "board reports duplicate legal moves %v", moves)
	}
	node.untried = make([]M, len(moves))
	copy(node.untried, moves)
	return node, nil
}

func (node *Node[M, B]) ID() NodeID {
	return node.id
}

// Parent id, ok is false for the root
func (node *Node[M, B]) Parent() (NodeID, bool) {
	return node.parent, node.parent != NoNode
}

// Children ids, in the order they were expanded. The returned slice is a copy
func (node *Node[M, B]) Children() []NodeID {
	return slices.Clone(node.children)
}

// Move that produced this node from its parent, ok is false for the root
func (node *Node[M, B]) Move() (M, bool) {
	return node.move, node.parent != NoNode
}

func (node *Node[M, B]) Board() B {
	return node.board
}

func (node *Node[M, B]) Outcome() Outcome {
	return node.outcome
}

func (node *Node[M, B]) Turn() Player {
	return node.turn
}

func (node *Node[M, B]) Perspective() Player {
	return node.perspective
}

// Moves not yet expanded into children, the returned slice is a copy
func (node *Node[M, B]) Untried() []M {
	return slices.Clone(node.untried)
}

func (node *Node[M, B]) Depth() int {
	return node.depth
}

func (node *Node[M, B]) Terminal() bool {
	return node.flags&TerminalMask == TerminalMask
}

// Whether the pruning layer excluded this node from selection
func (node *Node[M, B]) Dominated() bool {
	return node.flags&DominatedMask == DominatedMask
}

// Same as asking if there are no untried moves left
func (node *Node[M, B]) Expanded() bool {
	return len(node.untried) == 0
}

// Game outcome under perfect play, known only once the pruning layer solved the node
func (node *Node[M, B]) Proven() (Outcome, bool) {
	return node.proof, node.bounds.exact()
}

// Lower and upper bound of the node's value for its perspective player,
// 0 = loss, 1 = draw, 2 = win
func (node *Node[M, B]) Bounds() (lo, hi int) {
	return int(node.bounds.lo), int(node.bounds.hi)
}

func (node *Node[M, B]) setDominated(dominated bool) {
	if dominated {
		node.flags |= DominatedMask
	} else {
		node.flags &^= DominatedMask
	}
}

func (node *Node[M, B]) String() string {
	rate, _ := node.WinRate()
	return fmt.Sprintf("Node{id=%d, move=%v, visits=%d, winrate=%.3f, outcome=%v, dominated=%v}",
		node.id, node.move, node.visits, rate, node.outcome, node.Dominated())
}
