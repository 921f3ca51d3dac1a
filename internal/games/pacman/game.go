// Package pacman implements a maze chase: eat every dot while four ghosts
// hunt the player with breadth-first search.
package pacman

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/pathfind"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Scoring and timing.
const (
	DotPoints     = 10
	PowerPoints   = 50
	ghostPoints   = 200
	PowerTicks    = 600
	PlayerSpeed   = 0.15
	StartLives    = 3
	catchDistance = 0.8
)

// Player is the maze runner. Next is the queued turn taken at the next
// cell center where it is legal.
type Player struct {
	Cell     pathfind.Cell
	Dir      pathfind.Dir
	Next     pathfind.Dir
	Progress float64
}

// Pos returns the player's interpolated position in cells.
func (p Player) Pos() core.Vec {
	return lerp(p.Cell, p.Dir, p.Progress)
}

// World is the complete simulation state.
type World struct {
	Maze       Maze
	Player     Player
	Ghosts     [4]Ghost
	PowerTimer int
	Score      int
	Lives      int
	Level      int
	Over       bool
	Tick       int
}

// Game implements registry.Game.
type Game struct {
	w     World
	cfg   core.RuntimeConfig
	rng   core.RNG
	sound core.Signal
}

// New creates a new Pac-Man game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "pacman" }
func (g *Game) Title() string { return "Pac-Man" }

func (g *Game) Description() string {
	return "Navigate the maze, eat all the dots, and avoid the ghosts. Eat Power Pellets to turn the tables!"
}

func (g *Game) Controls() []string {
	return []string{"Arrow Keys: Move"}
}

// Reset starts a new game on level 1.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{
		Maze:  NewMaze(),
		Lives: cfg.LivesOr(StartLives),
		Level: 1,
	}
	g.resetPositions()
}

// resetPositions puts every actor back on its start cell after a death or
// a cleared level. Eaten dots stay eaten.
func (g *Game) resetPositions() {
	g.w.Player = Player{Cell: PlayerSpawn, Dir: pathfind.Left, Next: pathfind.Left}
	g.w.PowerTimer = 0
	g.resetGhosts()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++

	if g.w.PowerTimer > 0 {
		g.w.PowerTimer--
		if g.w.PowerTimer == 0 {
			for i := range g.w.Ghosts {
				if g.w.Ghosts[i].Mode == ModeScared {
					g.w.Ghosts[i].Mode = ModeChase
				}
			}
		}
	}

	if d := inputDir(in); d != pathfind.None {
		g.w.Player.Next = d
	}
	g.movePlayer()

	for i := range g.w.Ghosts {
		if g.stepGhost(&g.w.Ghosts[i]) {
			g.die()
			break
		}
	}

	if !g.w.Over && g.w.Maze.Pellets() == 0 {
		g.w.Level++
		g.w.Maze = NewMaze()
		g.resetPositions()
		g.sound.Sweep(400, 1200, 0.6, core.WaveSquare, core.SweepVolume)
	}
	return core.StepResult{State: g.State()}
}

// inputDir maps held direction actions to a grid direction. Vertical
// actions win when both axes are held.
func inputDir(in core.InputFrame) pathfind.Dir {
	switch {
	case in.Has(core.ActionUp):
		return pathfind.Up
	case in.Has(core.ActionDown):
		return pathfind.Down
	case in.Has(core.ActionLeft):
		return pathfind.Left
	case in.Has(core.ActionRight):
		return pathfind.Right
	}
	return pathfind.None
}

func (g *Game) movePlayer() {
	p := &g.w.Player
	grid := g.playerGrid()

	if p.Progress == 0 {
		if p.Next != pathfind.None && pathfind.CanMove(grid, p.Cell, p.Next) {
			p.Dir = p.Next
		}
		if p.Dir != pathfind.None && !pathfind.CanMove(grid, p.Cell, p.Dir) {
			p.Dir = pathfind.None
		}
	}
	if p.Dir == pathfind.None {
		return
	}

	p.Progress += PlayerSpeed
	if p.Progress < 1 {
		return
	}
	if n, ok := pathfind.Neighbor(grid, p.Cell, p.Dir); ok {
		p.Cell = n
	}
	p.Progress = 0
	g.eat(p.Cell)
}

func (g *Game) eat(c pathfind.Cell) {
	switch g.w.Maze.At(c) {
	case TileDot:
		g.w.Maze[c.Y][c.X] = TileEmpty
		g.w.Score += DotPoints
		g.sound.Tone(300+g.rng.Float64()*200, 0.05, core.WaveTriangle, 0.1)
	case TilePower:
		g.w.Maze[c.Y][c.X] = TileEmpty
		g.w.Score += PowerPoints
		g.w.PowerTimer = PowerTicks
		for i := range g.w.Ghosts {
			if g.w.Ghosts[i].Mode == ModeChase {
				g.w.Ghosts[i].Mode = ModeScared
			}
		}
		g.sound.Sweep(600, 800, 0.5, core.WaveSine, 0.1)
	}
}

// die costs a life and resets positions, or ends the game.
func (g *Game) die() {
	g.sound.Sweep(400, 100, 0.5, core.WaveSawtooth, 0.2)
	g.w.Lives--
	if g.w.Lives <= 0 {
		g.w.Lives = 0
		g.w.Over = true
		return
	}
	g.resetPositions()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.w.Score,
		Lives:    g.w.Lives,
		Level:    g.w.Level,
		GameOver: g.w.Over,
	}
}

// Snapshot returns a copy of the world.
func (g *Game) Snapshot() World {
	return g.w
}

func init() {
	registry.Register("pacman", func() registry.Game {
		return New()
	})
}
