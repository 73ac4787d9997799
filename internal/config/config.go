// Package config provides YAML-based board configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board      Match3Board      `yaml:"board"`
	Timing     Match3Timing     `yaml:"timing"`
	Scoring    Match3Scoring    `yaml:"scoring"`
	Gameplay   Match3Gameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Match3Board defines the grid and the piece palette.
type Match3Board struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	MinMatch int      `yaml:"min_match"`
	Types    []string `yaml:"types"` // spawn order; difficulty uses a prefix of this list
}

// Match3Timing defines animation durations.
type Match3Timing struct {
	SwapTime     time.Duration `yaml:"swap_time"`
	CollapseTime time.Duration `yaml:"collapse_time"`
}

// Match3Scoring defines how cleared pieces are scored.
type Match3Scoring struct {
	PointsPerPiece int `yaml:"points_per_piece"`
}

// Match3Gameplay defines mode-specific rules.
type Match3Gameplay struct {
	MoveLimit int `yaml:"move_limit"` // budget for the moves mode
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	MinTypes int `yaml:"min_types"` // Piece types in play at level 0
	MaxTypes int `yaml:"max_types"` // Piece types in play at level 1
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalidConfig, s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks the configuration for values the board cannot use.
func (c Match3Config) Validate() error {
	b := c.Board
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrInvalidConfig, b.Width, b.Height)
	}
	if b.MinMatch < 2 {
		return fmt.Errorf("%w: min_match %d", ErrInvalidConfig, b.MinMatch)
	}
	if len(b.Types) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, match3.ErrNoPieceTypes)
	}
	if _, err := match3.ParseMatchTypes(b.Types); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Timing.SwapTime < 0 || c.Timing.CollapseTime < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	s := c.Difficulty.Scaling
	if c.Difficulty.Enabled && (s.MinTypes <= 0 || s.MaxTypes < s.MinTypes) {
		return fmt.Errorf("%w: type scaling %d..%d", ErrInvalidConfig, s.MinTypes, s.MaxTypes)
	}
	return nil
}

// BoardConfig converts the YAML settings into an engine configuration.
// Types holds the full palette; callers narrow it with TypesAt.
func (c Match3Config) BoardConfig(seed int64) (match3.Config, error) {
	if err := c.Validate(); err != nil {
		return match3.Config{}, err
	}
	types, _ := match3.ParseMatchTypes(c.Board.Types)
	return match3.Config{
		Width:          c.Board.Width,
		Height:         c.Board.Height,
		MinMatch:       c.Board.MinMatch,
		Types:          types,
		SwapTime:       c.Timing.SwapTime,
		CollapseTime:   c.Timing.CollapseTime,
		PointsPerPiece: c.Scoring.PointsPerPiece,
		Seed:           seed,
	}, nil
}
