package bench

import (
	"github.com/rs/zerolog"

	"github.com/darkcodi/mcts-lib/pkg/mcts"
)

// Arena callbacks, invoked from the worker goroutines, implementations must be safe for concurrent use
type ListenerLike[M mcts.MoveLike] interface {
	OnMoveMade(info WorkerInfo[M])
	OnFinishedGame(info WorkerInfo[M])
	OnFinishedWork(info WorkerInfo[M])
	Summary(summary Summary)
}

type DefaultListener[M mcts.MoveLike] struct{}

func (DefaultListener[M]) OnMoveMade(WorkerInfo[M])     {}
func (DefaultListener[M]) OnFinishedGame(WorkerInfo[M]) {}
func (DefaultListener[M]) OnFinishedWork(WorkerInfo[M]) {}
func (DefaultListener[M]) Summary(Summary)              {}

// Writes finished games and the summary to a zerolog logger
type LogListener[M mcts.MoveLike] struct {
	DefaultListener[M]
	Logger zerolog.Logger
}

func NewLogListener[M mcts.MoveLike](logger zerolog.Logger) *LogListener[M] {
	return &LogListener[M]{Logger: logger}
}

func (l *LogListener[M]) OnFinishedGame(info WorkerInfo[M]) {
	l.Logger.Info().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("plies", info.GameMoveNum).
		Bool("p1_first", info.P1WentFirst).
		Stringer("result", info.Result).
		Msg("game finished")
}

func (l *LogListener[M]) Summary(s Summary) {
	l.Logger.Info().
		Str("player1", s.P1Name).
		Str("player2", s.P2Name).
		Int("games", s.TotalGames).
		Int("p1_wins", s.P1Wins).
		Int("p2_wins", s.P2Wins).
		Int("draws", s.Draws).
		Float64("p1_score", s.P1Score).
		Float64("p1_score_low", s.P1ScoreLow).
		Float64("p1_score_high", s.P1ScoreHigh).
		Msg("arena finished")
}
