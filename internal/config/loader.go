package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEngine loads the engine configuration.
// Search order: customPath -> ~/.arcade/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
func LoadEngine(customPath string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := load("engine", customPath, &cfg); err != nil {
		return DefaultEngineConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultEngineConfig(), err
	}
	return cfg, nil
}

// LoadGame loads the configuration of one game.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default
func LoadGame(id, customPath string) (GameConfig, error) {
	cfg := DefaultGameConfig(id)
	if err := load(id, customPath, &cfg); err != nil {
		return DefaultGameConfig(id), err
	}
	if cfg.Lives < 0 {
		return DefaultGameConfig(id), fmt.Errorf("config: %s lives must not be negative", id)
	}
	return cfg, nil
}

// ForGame returns the active configuration for a game with a preset
// applied. Broken override files are skipped in favor of the defaults.
func ForGame(id string, preset DifficultyPreset) GameConfig {
	cfg, err := LoadGame(id, "")
	if err != nil {
		cfg = DefaultGameConfig(id)
	}
	ApplyPreset(&cfg, preset)
	return cfg
}

// load fills dst from the first source that exists. Keys missing from the
// YAML keep the values already in dst. An explicit path must exist and
// parse; the implicit locations are skipped when they are absent or broken.
func load(name, customPath string, dst any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("config: failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	filename := name + ".yaml"
	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := tryUnmarshal(data, dst); err == nil {
			return nil
		}
	}

	if data := embedded(name); data != nil {
		// A broken embedded file leaves the hardcoded defaults in place.
		_ = tryUnmarshal(data, dst)
	}
	return nil
}

// tryUnmarshal decodes into a scratch copy so a parse failure never leaves
// dst half-written.
func tryUnmarshal(data []byte, dst any) error {
	switch d := dst.(type) {
	case *EngineConfig:
		tmp := *d
		if err := yaml.Unmarshal(data, &tmp); err != nil {
			return err
		}
		*d = tmp
	case *GameConfig:
		tmp := *d
		if err := yaml.Unmarshal(data, &tmp); err != nil {
			return err
		}
		*d = tmp
	default:
		return errors.New("config: unsupported config type")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
