package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Width:    8,
			Height:   8,
			MinMatch: 3,
			Types:    []string{"yellow", "blue", "magenta", "green", "red", "cyan", "indigo", "teal"},
		},
		Timing: Match3Timing{
			SwapTime:     250 * time.Millisecond,
			CollapseTime: 120 * time.Millisecond,
		},
		Scoring: Match3Scoring{
			PointsPerPiece: 10,
		},
		Gameplay: Match3Gameplay{
			MoveLimit: 30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				MinTypes: 5,
				MaxTypes: 7,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_moves":
		return defaultMatch3YAML
	default:
		return nil
	}
}
