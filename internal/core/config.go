package core

import "math/rand"

// RNG is the source of randomness a game may use.
// *math/rand.Rand satisfies it; tests can inject a scripted source.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// Scaler adjusts adversary speeds as a game progresses.
type Scaler interface {
	Speed(base float64, score int, ticks int) float64
}

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	Lives      int    // Starting lives; 0 keeps the game's own rule
	Audio      Signal // Sound cue sink; nil means silent
	RNG        RNG    // Overrides the seeded source when set
	Difficulty Scaler // nil keeps base speeds
}

// Speed scales an adversary speed through the configured difficulty.
func (c RuntimeConfig) Speed(base float64, score, ticks int) float64 {
	if c.Difficulty == nil {
		return base
	}
	return c.Difficulty.Speed(base, score, ticks)
}

// LivesOr returns the configured starting lives or def when unset.
func (c RuntimeConfig) LivesOr(def int) int {
	if c.Lives > 0 {
		return c.Lives
	}
	return def
}

// Rand returns the configured RNG, or a source seeded from Seed.
func (c RuntimeConfig) Rand() RNG {
	if c.RNG != nil {
		return c.RNG
	}
	return rand.New(rand.NewSource(c.Seed))
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Sound returns the configured signal or a silent one.
func (c RuntimeConfig) Sound() Signal {
	if c.Audio == nil {
		return Silent{}
	}
	return c.Audio
}

// GameState is the summary a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Remaining lives (0 when the game has none)
	Level    int  // Current level, wave or room number
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended in victory
	Paused   bool // Set by the session while paused
	Attract  bool // Set by the session while the autopilot plays
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
