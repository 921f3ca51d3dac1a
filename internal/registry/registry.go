// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "pong", "pacman").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Space Invaders").
	Title() string

	// Description is the one-line blurb shown in the menu and pause overlay.
	Description() string

	// Controls lists the key bindings in display form, one per entry.
	Controls() []string

	// Reset initializes or resets the game state.
	// Called once the screen has a size and again on every restart.
	// The RuntimeConfig provides the tick rate, RNG seed and audio sink.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Autopilot fills the frame with synthetic input derived from the world.
	// It must not change world state.
	Autopilot(frame *core.InputFrame)

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared and row 0 is left to the platform HUD.
	Render(dst *core.Screen)

	// State returns the current game state (score, lives, game over).
	State() core.GameState
}

// Aimer is implemented by games that accept a pointer position.
// WorldSize reports the logical space the aim is expressed in.
type Aimer interface {
	WorldSize() (w, h float64)
}

// TakeoverResetter is implemented by games that choose what happens when a
// player takes over from the demo. Games without it start a fresh game;
// returning false keeps the demo world running under the player's hands.
type TakeoverResetter interface {
	ResetOnTakeover() bool
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
	Controls    []string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	infos[id] = Describe(f())
}

// Describe collects the metadata of a game instance.
func Describe(g Game) GameInfo {
	return GameInfo{
		ID:          g.ID(),
		Title:       g.Title(),
		Description: g.Description(),
		Controls:    g.Controls(),
	}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns the metadata of a registered game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
