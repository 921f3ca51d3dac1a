package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// embedded returns the built-in YAML for name, or nil when there is none.
func embedded(name string) []byte {
	data, err := defaultFS.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil
	}
	return data
}

// DefaultEngineConfig returns the hardcoded engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Timing: TimingConfig{
			TickRate:        60,
			MaxFrameDeltaMS: 100,
		},
		Input: InputConfig{
			HoldTicks:          9,
			AttractIdleSeconds: 20,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.8,
			SampleRate: 44100,
			MaxVoices:  16,
		},
	}
}

// DefaultGameConfig returns the hardcoded configuration for a game.
// Unknown ids get three lives and score-driven progression.
func DefaultGameConfig(id string) GameConfig {
	cfg := GameConfig{
		Lives: 3,
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}

	switch id {
	case "pong":
		cfg.Lives = 0
		cfg.Difficulty.Progression = ProgressionConfig{Type: "time", MaxAt: 36000}
		cfg.Difficulty.Scaling.SpeedMultiplier = 0.5
	case "missilecommand":
		cfg.Lives = 0
		cfg.Difficulty.Progression.MaxAt = 10000
		cfg.Difficulty.Scaling.SpeedMultiplier = 0.5
	case "pitfall":
		cfg.Difficulty = DifficultyConfig{Progression: ProgressionConfig{Type: "none"}}
	case "adventure":
		cfg.Lives = 1
		cfg.Difficulty.Progression = ProgressionConfig{Type: "time", MaxAt: 54000}
		cfg.Difficulty.Scaling.SpeedMultiplier = 0.5
	}
	return cfg
}
