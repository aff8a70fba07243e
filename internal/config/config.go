// Package config provides YAML-based game configuration loading and
// difficulty management for the match-3 game.
package config

// Match3Config contains all configuration for the Match-3 game.
type Match3Config struct {
	Board      Match3Board      `yaml:"board"`
	Scoring    Match3Scoring    `yaml:"scoring"`
	Timing     Match3Timing     `yaml:"timing"`
	Generation Match3Generation `yaml:"generation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Match3Board defines board dimensions and the number of tile varieties.
type Match3Board struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Varieties int `yaml:"varieties"`
}

// Match3Scoring defines the per-level score goal.
type Match3Scoring struct {
	GoalScore  int     `yaml:"goal_score"`  // Base points needed to clear a level
	GoalGrowth float64 `yaml:"goal_growth"` // Goal multiplier applied per level
}

// Match3Timing defines level and hint timers, in seconds.
type Match3Timing struct {
	LevelSeconds   int `yaml:"level_seconds"`
	HintSeconds    int `yaml:"hint_seconds"`    // Idle time before a hint is shown
	WarningSeconds int `yaml:"warning_seconds"` // Remaining time that triggers the warning state
}

// Match3Generation bounds board regeneration when a deal has no moves.
type Match3Generation struct {
	MaxRegenerations int `yaml:"max_regenerations"`
}

// GoalForLevel returns the score needed to clear the given 1-indexed level.
func (c Match3Config) GoalForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(float64(level) * c.Scoring.GoalGrowth * float64(c.Scoring.GoalScore))
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "stage", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Stage/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	VarietyIncrease int `yaml:"variety_increase"` // Extra varieties at max difficulty
	TimeReduction   int `yaml:"time_reduction"`   // Seconds removed from the level timer at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// Unknown values yield an empty preset, which leaves the config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
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
