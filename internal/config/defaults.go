package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default Match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Width:     8,
			Height:    8,
			Varieties: 6,
		},
		Scoring: Match3Scoring{
			GoalScore:  1000,
			GoalGrowth: 1.25,
		},
		Timing: Match3Timing{
			LevelSeconds:   60,
			HintSeconds:    5,
			WarningSeconds: 5,
		},
		Generation: Match3Generation{
			MaxRegenerations: 64,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "stage",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				VarietyIncrease: 1,
				TimeReduction:   20,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_endless":
		return defaultMatch3YAML
	default:
		return nil
	}
}
