package bench

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/darkcodi/mcts-lib/pkg/mcts"
)

/*
Arena benchmark subpackage, allows to play a series of games between two
different engine configurations. Every game gets its own sessions and random
sources, so games are independent and can run on several workers.
*/

// Engine is one side of the arena: session options and the search budget per move
type Engine struct {
	Name    string
	Options []mcts.Option
	Limits  *mcts.Limits
}

// Budget used when the engine doesn't set one
const DefaultCyclesPerMove = 1000

func (e Engine) limits() *mcts.Limits {
	if e.Limits == nil {
		return mcts.DefaultLimits().SetCycles(DefaultCyclesPerMove)
	}
	return e.Limits
}

type VersusArena[M mcts.MoveLike, B mcts.Board[M, B]] struct {
	ArenaStats
	Player1  Engine
	Player2  Engine
	NGames   int
	NWorkers int
	Position B
	// Base seed of the per-game random sources, options of the engines may override them
	Seed       uint64
	// Confidence level of the score interval, in (0, 1)
	Confidence float64
	Logger     zerolog.Logger
	finished   atomic.Int32
}

func NewVersusArena[M mcts.MoveLike, B mcts.Board[M, B]](position B, p1, p2 Engine) *VersusArena[M, B] {
	return &VersusArena[M, B]{
		Player1:    p1,
		Player2:    p2,
		NGames:     100,
		NWorkers:   2,
		Position:   position,
		Seed:       1,
		Confidence: 0.95,
		Logger:     log.Logger.With().Str("component", "arena").Logger(),
	}
}

func (va *VersusArena[M, B]) Setup(nGames, nWorkers int) *VersusArena[M, B] {
	va.NGames = nGames
	va.NWorkers = nWorkers
	return va
}

// Plays all the games and returns the summary. Player 1 moves first in even games.
// Stops at the first error, a cancelled context returns the summary of the finished games
// together with the context's error.
func (va *VersusArena[M, B]) Run(ctx context.Context, listener ListenerLike[M]) (Summary, error) {
	if listener == nil {
		listener = DefaultListener[M]{}
	}
	if va.NGames < 0 || va.NWorkers < 1 {
		return Summary{}, errors.Errorf("bench: invalid arena setup, %d games on %d workers", va.NGames, va.NWorkers)
	}
	if !(va.Confidence > 0 && va.Confidence < 1) {
		return Summary{}, errors.Errorf("bench: confidence %v must lie in (0, 1)", va.Confidence)
	}

	workers := min(va.NWorkers, max(va.NGames, 1))
	g, ctx := errgroup.WithContext(ctx)
	for id := range workers {
		g.Go(func() error {
			return va.worker(ctx, id, workers, listener)
		})
	}
	err := g.Wait()

	summary := va.summary(workers)
	listener.Summary(summary)
	va.Logger.Debug().
		Int("games", summary.TotalGames).
		Float64("p1_score", summary.P1Score).
		Msg("arena finished")
	return summary, err
}

func (va *VersusArena[M, B]) summary(workers int) Summary {
	s := Summary{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		Draws:            va.Draws(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Workers:          workers,
		P1Name:           va.Player1.Name,
		P2Name:           va.Player2.Name,
	}
	s.P1Score, s.P1ScoreLow, s.P1ScoreHigh = WilsonScore(s.P1Wins, s.Draws, s.TotalGames, va.Confidence)
	return s
}

// Worker 'id' plays games id, id+workers, id+2*workers, ...
func (va *VersusArena[M, B]) worker(ctx context.Context, id, workers int, listener ListenerLike[M]) error {
	played := 0
	for game := id; game < va.NGames; game += workers {
		if err := ctx.Err(); err != nil {
			return err
		}

		p1First := game%2 == 0
		moves, result, err := va.playGame(ctx, game, p1First, func(moves []M) {
			listener.OnMoveMade(va.info(id, moves, p1First, MatchDraw))
		})
		if err != nil {
			return errors.WithMessagef(err, "game %d", game)
		}

		va.record(result, p1First)
		played++
		info := va.info(id, moves, p1First, result)
		info.FinishedGames = int(va.finished.Add(1))
		listener.OnFinishedGame(info)
	}

	info := va.info(id, nil, false, MatchDraw)
	info.NGames = played
	listener.OnFinishedWork(info)
	return nil
}

func (va *VersusArena[M, B]) info(id int, moves []M, p1First bool, result MatchResult) WorkerInfo[M] {
	return WorkerInfo[M]{
		WorkerID:      id,
		NGames:        va.NGames,
		FinishedGames: int(va.finished.Load()),
		GameMoveNum:   len(moves),
		Moves:         moves,
		P1WentFirst:   p1First,
		Result:        result,
		P1Name:        va.Player1.Name,
		P2Name:        va.Player2.Name,
	}
}

func (va *VersusArena[M, B]) newSession(engine Engine, seed uint64) (*mcts.Session[M, B], error) {
	opts := append([]mcts.Option{
		mcts.WithRandom(mcts.NewRandom(seed)),
		mcts.WithLogger(va.Logger),
	}, engine.Options...)
	return mcts.New[M, B](va.Position, opts...)
}

// Plays a single game from the arena's position and returns the moves with the result for player 1
func (va *VersusArena[M, B]) playGame(ctx context.Context, game int, p1First bool, onMove func([]M)) ([]M, MatchResult, error) {
	seed := va.Seed + 2*uint64(game)
	s1, err := va.newSession(va.Player1, seed)
	if err != nil {
		return nil, MatchDraw, errors.WithMessage(err, "player 1")
	}
	s2, err := va.newSession(va.Player2, seed+1)
	if err != nil {
		return nil, MatchDraw, errors.WithMessage(err, "player 2")
	}

	first, second := s1, s2
	firstLimits, secondLimits := va.Player1.limits(), va.Player2.limits()
	if !p1First {
		first, second = s2, s1
		firstLimits, secondLimits = secondLimits, firstLimits
	}

	board := va.Position
	firstPlayer := board.CurrentPlayer()
	moves := make([]M, 0, 16)
	for !board.Outcome().Terminal() {
		mover, limits := first, firstLimits
		if board.CurrentPlayer() != firstPlayer {
			mover, limits = second, secondLimits
		}

		if _, err := mover.Search(ctx, limits); err != nil {
			return moves, MatchDraw, err
		}
		if err := ctx.Err(); err != nil {
			return moves, MatchDraw, err
		}
		move, err := mover.BestMove()
		if err != nil {
			return moves, MatchDraw, err
		}

		board = board.Apply(move)
		moves = append(moves, move)
		if err := first.Advance(move); err != nil {
			return moves, MatchDraw, err
		}
		if err := second.Advance(move); err != nil {
			return moves, MatchDraw, err
		}
		onMove(moves)
	}

	outcome := board.Outcome()
	if outcome.IsDraw() {
		return moves, MatchDraw, nil
	}
	if (outcome.Winner == firstPlayer) == p1First {
		return moves, Player1Win, nil
	}
	return moves, Player2Win, nil
}
