// Package sim plays match-3 boards headlessly, for balancing configs and
// checking that long games never stall.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	m3 "github.com/vovakirdan/tui-match3/internal/match3"
)

// Strategy picks the swap to play from the valid moves, best first.
type Strategy string

const (
	StrategyGreedy Strategy = "greedy" // always the swap clearing the most pieces
	StrategyRandom Strategy = "random" // any valid swap
)

// ErrUnknownStrategy is returned for a strategy name that is not defined.
var ErrUnknownStrategy = errors.New("sim: unknown strategy")

// ParseStrategy converts a flag value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyGreedy, StrategyRandom:
		return Strategy(s), nil
	case "":
		return StrategyGreedy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Options controls a simulation run.
type Options struct {
	Games    int
	Moves    int // swaps per game
	Seed     int64
	Strategy Strategy
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Seed        int64
	Score       int
	Moves       int
	BestCascade int
	Shuffles    int
}

// Stats aggregates the results of a run.
type Stats struct {
	Games       []GameResult
	TotalScore  int
	BestScore   int
	BestCascade int
	Shuffles    int
}

// AvgScore returns the mean score per game.
func (s Stats) AvgScore() float64 {
	if len(s.Games) == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(len(s.Games))
}

// Runner plays games with instant collaborators.
type Runner struct {
	cfg    config.Match3Config
	preset config.DifficultyPreset
	logger *log.Logger
}

// NewRunner creates a runner for the given game configuration.
func NewRunner(cfg config.Match3Config, logger *log.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cfg: cfg, logger: logger}, nil
}

// WithPreset plays every game at a difficulty preset instead of the
// configured progression.
func (r *Runner) WithPreset(p config.DifficultyPreset) *Runner {
	r.preset = p
	return r
}

// Run plays opts.Games games. Game i uses seed opts.Seed+i.
// It stops early when ctx is cancelled and returns the games completed so far.
func (r *Runner) Run(ctx context.Context, opts Options) (Stats, error) {
	var stats Stats
	for i := range opts.Games {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		res, err := r.Play(ctx, opts.Seed+int64(i), opts.Moves, opts.Strategy)
		if err != nil {
			return stats, err
		}
		stats.Games = append(stats.Games, res)
		stats.TotalScore += res.Score
		stats.BestScore = max(stats.BestScore, res.Score)
		stats.BestCascade = max(stats.BestCascade, res.BestCascade)
		stats.Shuffles += res.Shuffles
		r.logger.Debug("game finished", "seed", res.Seed, "score", res.Score, "cascade", res.BestCascade)
	}
	return stats, nil
}

// Play runs a single game of up to moves swaps.
func (r *Runner) Play(ctx context.Context, seed int64, moves int, strategy Strategy) (GameResult, error) {
	res := GameResult{Seed: seed}

	bc, err := r.cfg.BoardConfig(seed)
	if err != nil {
		return res, err
	}
	palette := bc.Types
	difficulty := config.NewDifficultyManager(r.cfg.Difficulty)
	difficulty.ApplyPreset(r.preset)
	bc.Types = difficulty.TypesAt(palette, 0, 0)

	board, err := m3.NewBoard(bc, m3.Collaborators{}, r.logger)
	if err != nil {
		return res, err
	}
	board.OnSettled(func(matched bool) {
		if !matched {
			return
		}
		types := difficulty.TypesAt(palette, board.Score(), board.Moves())
		if len(types) != len(board.Types()) {
			if err := board.SetTypes(types); err != nil {
				r.logger.Warn("cannot change palette", "err", err)
			}
		}
	})
	board.Fill()

	rng := rand.New(rand.NewSource(seed))
	stuck := 0
	for board.Moves() < moves {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		valid := m3.FindValidMoves(board.Grid(), bc.MinMatch)
		if len(valid) == 0 {
			// Settled boards reshuffle themselves; this catches the opening fill
			// and a shuffle that gave up.
			board.Shuffle()
			stuck++
			if stuck > moves {
				return res, fmt.Errorf("sim: seed %d: board keeps dead-locking", seed)
			}
			continue
		}

		pick := valid[0]
		if strategy == StrategyRandom {
			pick = valid[rng.Intn(len(valid))]
		}
		if !board.Swap(pick.From, pick.To) {
			return res, fmt.Errorf("sim: seed %d: swap %v-%v rejected", seed, pick.From, pick.To)
		}
		if board.Busy() {
			return res, fmt.Errorf("sim: seed %d: board still busy with instant collaborators", seed)
		}
	}

	res.Score = board.Score()
	res.Moves = board.Moves()
	res.BestCascade = board.BestCascade()
	res.Shuffles = board.Shuffles()
	return res, nil
}
