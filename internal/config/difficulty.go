package config

import "math"

// Bounds that keep a board playable however hard the progression gets.
const (
	minLevelSeconds = 15
	maxVarieties    = 8
)

// DifficultyManager calculates per-level board parameters from progress.
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

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
// stage is the 1-indexed game level; score is the running total.
func (d *DifficultyManager) Level(stage, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "stage":
		progress = float64(stage-1) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Varieties returns the number of tile varieties for the current difficulty.
func (d *DifficultyManager) Varieties(base, stage, score int) int {
	level := d.Level(stage, score)
	result := base + int(math.Round(level*float64(d.cfg.Scaling.VarietyIncrease)))
	if result > maxVarieties {
		result = maxVarieties
	}
	if result < 2 {
		result = 2
	}
	return result
}

// LevelSeconds returns the level timer length for the current difficulty.
func (d *DifficultyManager) LevelSeconds(base, stage, score int) int {
	level := d.Level(stage, score)
	result := base - int(level*float64(d.cfg.Scaling.TimeReduction))
	if result < minLevelSeconds {
		result = minLevelSeconds
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
