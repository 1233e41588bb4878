package mcts_test

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/darkcodi/mcts-lib/pkg/games/tictactoe"
	"github.com/darkcodi/mcts-lib/pkg/mcts"
)

func newSession(t *testing.T, board tictactoe.Position, opts ...mcts.Option) *mcts.Session[tictactoe.Square, tictactoe.Position] {
	t.Helper()
	opts = append([]mcts.Option{mcts.WithLogger(zerolog.New(io.Discard))}, opts...)
	s, err := mcts.New[tictactoe.Square](board, opts...)
	require.NoError(t, err)
	return s
}

func TestTicTacToeEmptyBoard(t *testing.T) {
	board := tictactoe.New()
	s := newSession(t, board, mcts.WithRandom(mcts.NewLCG(mcts.DefaultLCGSeed)))
	require.NoError(t, s.Run(1000))

	move, err := s.BestMove()
	require.NoError(t, err)
	require.Contains(t, board.LegalMoves(), move, "Best move should be a legal first move")

	tree := s.Tree()
	child := tree.Node(tree.Child(tree.Root(), move))
	require.NotNil(t, child)
	require.Positive(t, child.Visits())
	require.Equal(t, 1000, s.Root().Visits())
	require.Len(t, s.Root().Children(), 9)
}

func TestTicTacToeDraws(t *testing.T) {
	s := newSession(t, tictactoe.New(), mcts.WithRandom(mcts.NewLCG(mcts.DefaultLCGSeed)), mcts.WithDrawReward(0))
	_, ok := s.Root().DrawRate()
	require.False(t, ok, "Draw rate is undefined before the first visit")
	require.NoError(t, s.Run(1000))

	root := s.Root()
	require.Positive(t, root.Draws(), "Random playouts of tic-tac-toe should draw sometimes")
	require.Less(t, root.Draws(), root.Visits())

	tree := s.Tree()
	draws := 0
	for _, id := range tree.Children(tree.Root()) {
		draws += tree.Node(id).Draws()
	}
	require.Equal(t, root.Draws(), draws, "Every root draw comes from one of its children")

	rate, ok := root.DrawRate()
	require.True(t, ok)
	require.InDelta(t, float64(root.Draws())/1000, rate, 1e-12)
}

func TestTicTacToeExploresEveryMoveFirst(t *testing.T) {
	s := newSession(t, tictactoe.New(), mcts.WithRandom(mcts.NewRandom(11)))
	require.NoError(t, s.Run(9))

	tree := s.Tree()
	for _, id := range tree.Children(tree.Root()) {
		require.Equal(t, 1, tree.Node(id).Visits())
	}
	require.Len(t, tree.Children(tree.Root()), 9)
}

func TestTicTacToeForcedWin(t *testing.T) {
	// Cross completes the top row on c3, circle threatens c2
	board, err := tictactoe.FromString("xx./oo./...")
	require.NoError(t, err)

	for _, seed := range []uint64{1, 2, 3, 4, 5} {
		s := newSession(t, board, mcts.WithPruning(true), mcts.WithRandom(mcts.NewRandom(seed)))
		require.NoError(t, s.Run(len(board.LegalMoves())))

		move, err := s.BestMove()
		require.NoError(t, err)
		require.Equal(t, tictactoe.C3, move, "Seed %d should find the winning move", seed)
		require.True(t, s.Solved())

		proof, ok := s.Root().Proven()
		require.True(t, ok)
		require.Equal(t, mcts.Win(tictactoe.Cross), proof)
	}
}

func TestTicTacToeDeterminism(t *testing.T) {
	run := func() (tictactoe.Square, string) {
		s := newSession(t, tictactoe.New(), mcts.WithRandom(mcts.NewLCG(99)), mcts.WithPruning(true))
		require.NoError(t, s.Run(2000))
		move, err := s.BestMove()
		require.NoError(t, err)
		return move, s.Tree().Digest()
	}

	move1, digest1 := run()
	move2, digest2 := run()
	require.Equal(t, move1, move2)
	require.Equal(t, digest1, digest2)
}

func TestTicTacToeSelfPlay(t *testing.T) {
	board := tictactoe.New()
	s := newSession(t, board, mcts.WithPruning(true), mcts.WithRandom(mcts.NewRandom(2024)))

	for !board.Outcome().Terminal() {
		require.NoError(t, s.Run(20000))
		move, err := s.BestMove()
		require.NoError(t, err)
		require.Contains(t, board.LegalMoves(), move)

		board = board.Apply(move)
		require.NoError(t, s.Advance(move))
		require.Equal(t, board, s.Root().Board())
	}

	require.True(t, s.Root().Terminal())
	require.Equal(t, mcts.Draw(), s.Root().Outcome(), "Both sides play perfectly, so the game is drawn")
	require.Equal(t, mcts.StateExhausted, s.State())
	require.ErrorIs(t, s.Run(1), mcts.ErrInvalidState)
}
