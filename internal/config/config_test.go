package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gameIDs = []string{
	"pong", "invaders", "pacman", "asteroids", "donkeykong",
	"centipede", "defender", "pitfall", "missilecommand", "adventure",
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestEmbeddedEngineMatchesHardcoded(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadEngine("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEngineConfig(), cfg)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.MaxFrameDelta())
	assert.Equal(t, 20*time.Second, cfg.Input.AttractIdle())
}

func TestEveryGameHasEmbeddedDefaults(t *testing.T) {
	isolateHome(t)

	for _, id := range gameIDs {
		t.Run(id, func(t *testing.T) {
			require.NotNil(t, embedded(id), "defaults/%s.yaml is missing", id)
			cfg, err := LoadGame(id, "")
			require.NoError(t, err)
			assert.GreaterOrEqual(t, cfg.Lives, 0)
		})
	}
}

func TestLoadEnginePartialOverride(t *testing.T) {
	path := writeFile(t, "engine.yaml", "timing:\n  tick_rate: 30\naudio:\n  enabled: false\n")

	cfg, err := LoadEngine(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Timing.TickRate)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 100, cfg.Timing.MaxFrameDeltaMS, "missing keys keep defaults")
	assert.Equal(t, 9, cfg.Input.HoldTicks)
}

func TestLoadEngineErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"bad yaml", func(t *testing.T) string { return writeFile(t, "bad.yaml", "timing: [1, 2\n") }},
		{"invalid volume", func(t *testing.T) string { return writeFile(t, "vol.yaml", "audio:\n  volume: 3\n") }},
		{"zero tick rate", func(t *testing.T) string { return writeFile(t, "tick.yaml", "timing:\n  tick_rate: 0\n") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadEngine(tc.path(t))
			require.Error(t, err)
			assert.Equal(t, DefaultEngineConfig(), cfg, "errors fall back to defaults")
		})
	}
}

func TestLoadGameLocalDirectory(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "pacman.yaml"), []byte("lives: 5\n"), 0o600))
	t.Chdir(dir)

	cfg, err := LoadGame("pacman", "")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Lives)
	assert.True(t, cfg.Difficulty.Enabled, "difficulty block comes from defaults")
}

func TestLoadGameRejectsNegativeLives(t *testing.T) {
	path := writeFile(t, "g.yaml", "lives: -2\n")
	_, err := LoadGame("invaders", path)
	assert.Error(t, err)
}

func TestForGameAppliesPreset(t *testing.T) {
	isolateHome(t)

	easy := ForGame("invaders", DifficultyEasy)
	assert.Equal(t, 5, easy.Lives)
	assert.Equal(t, 0.0, easy.Difficulty.InitialLevel)

	hard := ForGame("invaders", DifficultyHard)
	assert.Equal(t, 2, hard.Lives)
	assert.Equal(t, 0.7, hard.Difficulty.InitialLevel)

	fixed := ForGame("pong", DifficultyFixed)
	assert.False(t, fixed.Difficulty.Enabled)
	assert.Equal(t, 0, fixed.Lives, "games without lives keep none")
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		p, err := ParsePreset(s)
		require.NoError(t, err)
		assert.Equal(t, DifficultyPreset(s), p)
	}
	_, err := ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestDifficultyManager(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	assert.InDelta(t, 0.2, dm.Level(0, 0), 1e-9)
	assert.InDelta(t, 0.6, dm.Level(500, 0), 1e-9)
	assert.InDelta(t, 1.0, dm.Level(5000, 0), 1e-9, "progress is clamped")
	assert.InDelta(t, 4.0, dm.Speed(2, 5000, 0), 1e-9)

	dm.SetEnabled(false)
	assert.False(t, dm.IsEnabled())
	assert.InDelta(t, 0.2, dm.Level(5000, 0), 1e-9)

	dm.SetInitialLevel(7)
	assert.InDelta(t, 1.0, dm.Level(0, 0), 1e-9)

	timed := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 0},
		Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
	})
	assert.InDelta(t, 1.0, timed.Level(0, 10), 1e-9, "max_at 0 does not divide by zero")
}
