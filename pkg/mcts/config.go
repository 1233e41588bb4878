package mcts

import (
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// Exploration parameter used in UCB1 formula, higher values increase exploration
	// while lower values increase exploitation
	DefaultExplorationConstant = math.Sqrt2

	// Reward credited to both sides for a drawn playout
	DefaultDrawReward = 0.5

	// Maximum number of plies played in a single rollout, before the rollout is cut off
	DefaultRolloutLimit = 4096

	// Preallocated number of nodes in the tree arena
	DefaultNodeCapacity = 10000
)

type Config struct {
	ExplorationConstant float64
	// Enables the alpha-beta style pruning layer
	Pruning    bool
	DrawReward float64
	// 0 means the rollout runs until the board reports a terminal outcome
	RolloutLimit int
	// Outcome reported by a rollout that hit RolloutLimit
	RolloutCutoffOutcome Outcome
	NodeCapacity         int
	// When nil, a system seeded source is created for the session
	Random RandomSource
	Logger zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		ExplorationConstant:  DefaultExplorationConstant,
		DrawReward:           DefaultDrawReward,
		RolloutLimit:         DefaultRolloutLimit,
		RolloutCutoffOutcome: Draw(),
		NodeCapacity:         DefaultNodeCapacity,
		Logger:               log.Logger.With().Str("component", "mcts").Logger(),
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.ExplorationConstant) || c.ExplorationConstant < 0 {
		return errors.Wrapf(ErrInvalidConfig, "exploration constant %v must be non-negative", c.ExplorationConstant)
	}
	if math.IsNaN(c.DrawReward) || c.DrawReward < 0 || c.DrawReward > 1 {
		return errors.Wrapf(ErrInvalidConfig, "draw reward %v must lie in [0, 1]", c.DrawReward)
	}
	if c.RolloutLimit < 0 {
		return errors.Wrapf(ErrInvalidConfig, "rollout limit %d must be non-negative", c.RolloutLimit)
	}
	if c.RolloutCutoffOutcome.Status == StatusInProgress {
		return errors.Wrap(ErrInvalidConfig, "rollout cutoff outcome must be terminal")
	}
	if c.NodeCapacity < 0 {
		return errors.Wrapf(ErrInvalidConfig, "node capacity %d must be non-negative", c.NodeCapacity)
	}
	return nil
}

type Option func(c *Config)

func WithExplorationConstant(c float64) Option {
	return func(cfg *Config) {
		cfg.ExplorationConstant = c
	}
}

func WithPruning(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Pruning = enabled
	}
}

// Use given random source, primarily for reproducible searches
func WithRandom(r RandomSource) Option {
	return func(cfg *Config) {
		if r != nil {
			cfg.Random = r
		}
	}
}

func WithDrawReward(reward float64) Option {
	return func(cfg *Config) {
		cfg.DrawReward = reward
	}
}

// Cut rollouts off after 'plies' moves and report 'outcome' instead,
// plies == 0 disables the cutoff
func WithRolloutLimit(plies int, outcome Outcome) Option {
	return func(cfg *Config) {
		cfg.RolloutLimit = plies
		cfg.RolloutCutoffOutcome = outcome
	}
}

func WithNodeCapacity(capacity int) Option {
	return func(cfg *Config) {
		cfg.NodeCapacity = capacity
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}
