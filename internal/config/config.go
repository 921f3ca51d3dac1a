// Package config provides YAML-based engine and game configuration loading
// and difficulty management for the arcade platform.
package config

import (
	"fmt"
	"time"
)

// EngineConfig holds the settings shared by every game.
type EngineConfig struct {
	Timing TimingConfig `yaml:"timing"`
	Input  InputConfig  `yaml:"input"`
	Audio  AudioConfig  `yaml:"audio"`
}

// TimingConfig controls the fixed-timestep loop.
type TimingConfig struct {
	TickRate        int `yaml:"tick_rate"`          // Simulation ticks per second
	MaxFrameDeltaMS int `yaml:"max_frame_delta_ms"` // Longest wall-clock step simulated per frame
}

// InputConfig controls the key latch and attract-mode ownership.
type InputConfig struct {
	HoldTicks          int     `yaml:"hold_ticks"`           // How long a key stays down without repeats
	AttractIdleSeconds float64 `yaml:"attract_idle_seconds"` // Idle time after game over before the demo resumes
}

// AudioConfig controls the sound player.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // Master volume, 0.0 to 1.0
	SampleRate int     `yaml:"sample_rate"`
	MaxVoices  int     `yaml:"max_voices"`
}

// MaxFrameDelta returns the frame clamp as a duration.
func (t TimingConfig) MaxFrameDelta() time.Duration {
	return time.Duration(t.MaxFrameDeltaMS) * time.Millisecond
}

// AttractIdle returns the idle timeout as a duration.
func (i InputConfig) AttractIdle() time.Duration {
	return time.Duration(i.AttractIdleSeconds * float64(time.Second))
}

// Validate reports settings that cannot be run.
func (c EngineConfig) Validate() error {
	if c.Timing.TickRate < 1 || c.Timing.TickRate > 1000 {
		return fmt.Errorf("config: tick_rate %d out of range [1, 1000]", c.Timing.TickRate)
	}
	if c.Timing.MaxFrameDeltaMS < 1 {
		return fmt.Errorf("config: max_frame_delta_ms must be positive, got %d", c.Timing.MaxFrameDeltaMS)
	}
	if c.Input.AttractIdleSeconds < 0 {
		return fmt.Errorf("config: attract_idle_seconds must not be negative")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio volume %.2f out of range [0, 1]", c.Audio.Volume)
	}
	if c.Audio.SampleRate < 0 {
		return fmt.Errorf("config: sample_rate must not be negative")
	}
	return nil
}

// GameConfig holds the per-game tunables.
type GameConfig struct {
	Lives      int              `yaml:"lives"` // 0 keeps the game's own rule
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to adversary speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. The empty string means
// "keep the configured difficulty".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
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

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	if cfg.Lives == 0 {
		return
	}
	switch preset {
	case DifficultyEasy:
		cfg.Lives += 2
	case DifficultyHard:
		cfg.Lives = max(cfg.Lives-1, 1)
	}
}
