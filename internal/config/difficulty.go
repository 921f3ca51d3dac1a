package config

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// DifficultyManager calculates dynamic game parameters based on score/time.
// It implements core.Scaler so games can consult it without importing config.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

var _ core.Scaler = (*DifficultyManager)(nil)

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
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

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns an adversary speed scaled by the current difficulty.
// It grows from base to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	return math.Max(min, math.Min(max, val))
}
