package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseMatch3(GetDefaultYAML("match3"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMatch3Config(), cfg)
	assert.Nil(t, GetDefaultYAML("snake"))
}

func TestLoadMatch3CustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m3.yaml")
	data := []byte(`
board:
  width: 6
  types: [red, green, blue, wild]
timing:
  swap_time: 400ms
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadMatch3(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Board.Width)
	assert.Equal(t, 8, cfg.Board.Height, "unset keys keep defaults")
	assert.Equal(t, 400*time.Millisecond, cfg.Timing.SwapTime)
	assert.Equal(t, []string{"red", "green", "blue", "wild"}, cfg.Board.Types)

	bc, err := cfg.BoardConfig(42)
	require.NoError(t, err)
	assert.Equal(t, []match3.MatchType{match3.Red, match3.Green, match3.Blue, match3.Wild}, bc.Types)
	assert.Equal(t, int64(42), bc.Seed)
}

func TestLoadMatch3Errors(t *testing.T) {
	_, err := LoadMatch3(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  types: [purple]\n"), 0o644))
	_, err = LoadMatch3(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, match3.ErrUnknownMatchType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
	}{
		{"zero width", func(c *Match3Config) { c.Board.Width = 0 }},
		{"min match one", func(c *Match3Config) { c.Board.MinMatch = 1 }},
		{"no types", func(c *Match3Config) { c.Board.Types = nil }},
		{"negative swap", func(c *Match3Config) { c.Timing.SwapTime = -time.Second }},
		{"inverted scaling", func(c *Match3Config) { c.Difficulty.Scaling.MaxTypes = 2 }},
	}

	require.NoError(t, DefaultMatch3Config().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := DefaultMatch3Config()
	cfg.Board.Types = nil
	assert.ErrorIs(t, cfg.Validate(), match3.ErrNoPieceTypes)
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultMatch3Config().Difficulty
	cfg.Progression = ProgressionConfig{Type: "score", MaxAt: 1000}

	d := NewDifficultyManager(cfg)
	d.ApplyPreset(DifficultyHard)
	assert.True(t, d.IsEnabled())
	assert.InDelta(t, 0.7, d.Level(0, 0), 1e-9)

	d.ApplyPreset(DifficultyFixed)
	assert.False(t, d.IsEnabled())
	assert.InDelta(t, 0.7, d.Level(1000, 0), 1e-9, "fixed keeps the starting level")

	cfg.Enabled = false
	d = NewDifficultyManager(cfg)
	d.ApplyPreset("")
	assert.False(t, d.IsEnabled())
	d.ApplyPreset(DifficultyNormal)
	assert.True(t, d.IsEnabled())
	assert.InDelta(t, 0.3, d.Level(0, 0), 1e-9)

	p, err := ParsePreset("normal")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)
	assert.True(t, IsFixedPreset(DifficultyFixed))
	assert.False(t, IsFixedPreset(p))
	_, err = ParsePreset("insane")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
