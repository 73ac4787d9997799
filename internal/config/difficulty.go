package config

import (
	"math"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// DifficultyManager calculates the active piece palette from score or moves.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// ApplyPreset switches to a named preset. The fixed preset turns
// progression off and keeps the configured starting level; an empty
// preset changes nothing.
func (d *DifficultyManager) ApplyPreset(preset DifficultyPreset) {
	switch {
	case preset == "":
	case IsFixedPreset(preset):
		d.SetEnabled(false)
	default:
		d.SetEnabled(true)
		d.SetInitialLevel(InitialLevelForPreset(preset))
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(score int, moves int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "moves":
		progress = float64(moves) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TypeCount returns how many piece types should be in play.
// The result never exceeds available.
func (d *DifficultyManager) TypeCount(available, score, moves int) int {
	lo, hi := d.cfg.Scaling.MinTypes, d.cfg.Scaling.MaxTypes
	if lo <= 0 {
		return available
	}
	hi = max(hi, lo)

	level := d.Level(score, moves)
	n := lo + int(math.Round(level*float64(hi-lo)))
	return min(max(n, 1), available)
}

// TypesAt returns the prefix of palette in play at the given progress.
func (d *DifficultyManager) TypesAt(palette []match3.MatchType, score, moves int) []match3.MatchType {
	return palette[:d.TypeCount(len(palette), score, moves)]
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
