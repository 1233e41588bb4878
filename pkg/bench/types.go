package bench

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/darkcodi/mcts-lib/pkg/mcts"
)

type MatchResult int

const (
	Player1Win MatchResult = 1
	Player2Win MatchResult = -1
	MatchDraw  MatchResult = 0
)

func (r MatchResult) String() string {
	switch r {
	case Player1Win:
		return "1-0"
	case Player2Win:
		return "0-1"
	}
	return "1/2-1/2"
}

// Arena counters, safe for concurrent updates by the workers
type ArenaStats struct {
	p1Wins           atomic.Uint32
	p2Wins           atomic.Uint32
	draws            atomic.Uint32
	firstToMoveWins  atomic.Uint32
	secondToMoveWins atomic.Uint32
}

func (s *ArenaStats) Total() int {
	return s.P1Wins() + s.P2Wins() + s.Draws()
}

func (s *ArenaStats) P1Wins() int {
	return int(s.p1Wins.Load())
}

func (s *ArenaStats) P2Wins() int {
	return int(s.p2Wins.Load())
}

func (s *ArenaStats) Draws() int {
	return int(s.draws.Load())
}

func (s *ArenaStats) FirstToMoveWins() int {
	return int(s.firstToMoveWins.Load())
}

func (s *ArenaStats) SecondToMoveWins() int {
	return int(s.secondToMoveWins.Load())
}

func (s *ArenaStats) record(result MatchResult, p1WentFirst bool) {
	switch result {
	case MatchDraw:
		s.draws.Add(1)
		return
	case Player1Win:
		s.p1Wins.Add(1)
	case Player2Win:
		s.p2Wins.Add(1)
	}

	if (result == Player1Win) == p1WentFirst {
		s.firstToMoveWins.Add(1)
	} else {
		s.secondToMoveWins.Add(1)
	}
}

type WorkerInfo[M mcts.MoveLike] struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	GameMoveNum   int
	Moves         []M
	P1WentFirst   bool
	Result        MatchResult
	P1Name        string
	P2Name        string
}

type Summary struct {
	TotalGames       int     `json:"total_games"`
	P1Wins           int     `json:"player1_wins"`
	P2Wins           int     `json:"player2_wins"`
	FirstToMoveWins  int     `json:"first_to_move_wins"`
	SecondToMoveWins int     `json:"second_to_move_wins"`
	Draws            int     `json:"draws"`
	Workers          int     `json:"workers"`
	P1Name           string  `json:"player1_name"`
	P2Name           string  `json:"player2_name"`
	P1Score          float64 `json:"player1_score"`
	P1ScoreLow       float64 `json:"player1_score_low"`
	P1ScoreHigh      float64 `json:"player1_score_high"`
}

// Score of player 1 (a draw counts half) with its Wilson score interval
// at given confidence level, all zeros when no game was played
func WilsonScore(wins, draws, total int, confidence float64) (score, low, high float64) {
	if total <= 0 {
		return 0, 0, 0
	}

	n := float64(total)
	score = (float64(wins) + 0.5*float64(draws)) / n
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	z2 := z * z

	center := (score + z2/(2*n)) / (1 + z2/n)
	margin := z / (1 + z2/n) * math.Sqrt(score*(1-score)/n+z2/(4*n*n))
	return score, math.Max(0, center-margin), math.Min(1, center+margin)
}
