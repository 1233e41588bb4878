package bench

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/darkcodi/mcts-lib/pkg/games/tictactoe"
	"github.com/darkcodi/mcts-lib/pkg/mcts"
)

type countingListener struct {
	DefaultListener[tictactoe.Square]
	moves      atomic.Int32
	games      atomic.Int32
	workers    atomic.Int32
	summary    Summary
	summarized atomic.Bool
}

func (l *countingListener) OnMoveMade(WorkerInfo[tictactoe.Square]) { l.moves.Add(1) }

func (l *countingListener) OnFinishedGame(WorkerInfo[tictactoe.Square]) { l.games.Add(1) }

func (l *countingListener) OnFinishedWork(WorkerInfo[tictactoe.Square]) { l.workers.Add(1) }

func (l *countingListener) Summary(s Summary) {
	l.summary = s
	l.summarized.Store(true)
}

func newTestArena(nGames, nWorkers int) *VersusArena[tictactoe.Square, tictactoe.Position] {
	quiet := zerolog.New(io.Discard)
	strong := Engine{
		Name:    "mcts-400",
		Options: []mcts.Option{mcts.WithPruning(true), mcts.WithLogger(quiet)},
		Limits:  mcts.DefaultLimits().SetCycles(400),
	}
	weak := Engine{
		Name:    "mcts-10",
		Options: []mcts.Option{mcts.WithLogger(quiet)},
		Limits:  mcts.DefaultLimits().SetCycles(10),
	}

	arena := NewVersusArena[tictactoe.Square](tictactoe.New(), strong, weak).Setup(nGames, nWorkers)
	arena.Logger = quiet
	return arena
}

func TestVersusArena(t *testing.T) {
	arena := newTestArena(8, 3)
	listener := &countingListener{}

	summary, err := arena.Run(context.Background(), listener)
	require.NoError(t, err)

	require.Equal(t, 8, summary.TotalGames)
	require.Equal(t, 8, summary.P1Wins+summary.P2Wins+summary.Draws)
	require.Equal(t, summary.P1Wins+summary.P2Wins, summary.FirstToMoveWins+summary.SecondToMoveWins)
	require.Equal(t, 3, summary.Workers)
	require.Equal(t, "mcts-400", summary.P1Name)
	require.LessOrEqual(t, summary.P1ScoreLow, summary.P1Score)
	require.GreaterOrEqual(t, summary.P1ScoreHigh, summary.P1Score)

	require.Equal(t, int32(8), listener.games.Load())
	require.Equal(t, int32(3), listener.workers.Load())
	require.GreaterOrEqual(t, listener.moves.Load(), int32(8*5), "Every game lasts at least 5 plies")
	require.True(t, listener.summarized.Load())
	require.Equal(t, summary, listener.summary)
}

func TestVersusArenaDeterminism(t *testing.T) {
	s1, err := newTestArena(6, 1).Run(context.Background(), nil)
	require.NoError(t, err)
	s2, err := newTestArena(6, 3).Run(context.Background(), nil)
	require.NoError(t, err)

	s1.Workers, s2.Workers = 0, 0
	require.Equal(t, s1, s2, "Games are seeded per game, the number of workers should not matter")
}

func TestVersusArenaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newTestArena(4, 2).Run(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, summary.TotalGames)
}

func TestVersusArenaInvalidSetup(t *testing.T) {
	t.Run("no workers", func(t *testing.T) {
		_, err := newTestArena(4, 0).Run(context.Background(), nil)
		require.Error(t, err)
	})

	for _, confidence := range []float64{2, 1, 0, -0.5} {
		t.Run(fmt.Sprintf("confidence %v", confidence), func(t *testing.T) {
			arena := newTestArena(1, 1)
			arena.Confidence = confidence
			listener := &countingListener{}

			_, err := arena.Run(context.Background(), listener)
			require.Error(t, err)
			require.Zero(t, listener.games.Load(), "No game should be played with a bad setup")
			require.False(t, listener.summarized.Load())
		})
	}
}

func TestWilsonScore(t *testing.T) {
	score, low, high := WilsonScore(50, 0, 100, 0.95)
	require.InDelta(t, 0.5, score, 1e-12)
	require.InDelta(t, 0.4038, low, 1e-3)
	require.InDelta(t, 0.5962, high, 1e-3)

	score, low, high = WilsonScore(10, 0, 10, 0.95)
	require.Equal(t, 1.0, score)
	require.Less(t, low, 1.0)
	require.InDelta(t, 1.0, high, 1e-9)

	score, _, _ = WilsonScore(2, 4, 8, 0.95)
	require.InDelta(t, 0.5, score, 1e-12, "Draws count half")

	score, low, high = WilsonScore(0, 0, 0, 0.95)
	require.Zero(t, score)
	require.Zero(t, low)
	require.Zero(t, high)
}

func TestMatchResultString(t *testing.T) {
	require.Equal(t, "1-0", Player1Win.String())
	require.Equal(t, "0-1", Player2Win.String())
	require.Equal(t, "1/2-1/2", MatchDraw.String())
}
