// Package centipede implements Centipede on a 30x30 grid of 16 unit cells.
package centipede

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Logical playfield.
const (
	CellSize = 16
	Cols     = 30
	Rows     = 30
	WorldW   = Cols * CellSize
	WorldH   = Rows * CellSize

	ZoneTop = WorldH - 150 // Highest the player may go
)

// Actors and rules.
const (
	PlayerSpeed   = 4.0
	ShotSpeed     = 8.0
	MaxShots      = 3
	fireInterval  = 10
	SegmentSpeed  = 2.0
	Segments      = 10
	MushroomCount = 40
	MushroomHP    = 3
	MushroomPoint = 1
	SegmentPoints = 10
	StartLives    = 3
	respawnTicks  = 60
)

// Segment is one body part. X, Y is the top-left corner of its cell-sized
// box; Dir is 1 moving right and -1 moving left.
type Segment struct {
	X, Y float64
	Dir  float64
	Head bool
}

// Mushroom is an obstacle cell. HP counts the hits it still takes.
type Mushroom struct {
	X, Y float64
	HP   int
}

// Shot is a bullet's nose.
type Shot struct {
	X, Y float64
}

// World is the complete simulation state.
type World struct {
	PlayerX, PlayerY float64
	Dead             bool
	Respawn          int // Ticks until a dead player returns
	Cooldown         int
	Shots            []Shot
	Mushrooms        []Mushroom
	Segments         []Segment
	Score            int
	Lives            int
	Wave             int
	Over             bool
	Tick             int
}

// Game implements registry.Game.
type Game struct {
	w     World
	cfg   core.RuntimeConfig
	rng   core.RNG
	sound core.Signal
}

// New creates a new Centipede game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "centipede" }
func (g *Game) Title() string { return "Centipede" }

func (g *Game) Description() string {
	return "Shoot the centipede as it winds down the screen. Every segment you hit becomes a mushroom."
}

func (g *Game) Controls() []string {
	return []string{"Arrow Keys: Move", "Space: Shoot"}
}

// Reset plants a fresh mushroom field and releases the first centipede.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{
		Lives: cfg.LivesOr(StartLives),
		Wave:  1,
	}
	for i := 0; i < MushroomCount; i++ {
		g.w.Mushrooms = append(g.w.Mushrooms, Mushroom{
			X:  float64(g.rng.Intn(Cols) * CellSize),
			Y:  float64((3 + g.rng.Intn(Rows-5)) * CellSize),
			HP: MushroomHP,
		})
	}
	g.placePlayer()
	g.spawnCentipede()
}

func (g *Game) placePlayer() {
	g.w.PlayerX = WorldW/2 - CellSize/2
	g.w.PlayerY = WorldH - CellSize
	g.w.Dead = false
	g.w.Shots = g.w.Shots[:0]
}

// spawnCentipede lines up a head and its body along the top row, heading
// right.
func (g *Game) spawnCentipede() {
	g.w.Segments = g.w.Segments[:0]
	for i := 0; i < Segments; i++ {
		g.w.Segments = append(g.w.Segments, Segment{
			X:    WorldW/2 - float64(i*CellSize),
			Dir:  1,
			Head: i == 0,
		})
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++

	if g.w.Dead {
		g.w.Respawn--
		if g.w.Respawn <= 0 {
			g.placePlayer()
			g.spawnCentipede()
		}
		return core.StepResult{State: g.State()}
	}

	g.w.PlayerX = core.ClampF(g.w.PlayerX+in.Horizontal()*PlayerSpeed, 0, WorldW-CellSize)
	g.w.PlayerY = core.ClampF(g.w.PlayerY+in.Vertical()*PlayerSpeed, ZoneTop, WorldH-CellSize)

	if g.w.Cooldown > 0 {
		g.w.Cooldown--
	}
	if in.Has(core.ActionFire) && g.w.Cooldown == 0 && len(g.w.Shots) < MaxShots {
		g.w.Shots = append(g.w.Shots, Shot{X: g.w.PlayerX + CellSize/2, Y: g.w.PlayerY})
		g.w.Cooldown = fireInterval
		g.sound.Tone(600, 0.05, core.WaveSquare, core.ToneVolume)
	}

	g.moveShots()
	g.crawl()

	if !g.w.Dead && len(g.w.Segments) == 0 {
		g.w.Wave++
		g.spawnCentipede()
		g.sound.Sweep(400, 800, 0.5, core.WaveSine, core.SweepVolume)
	}
	return core.StepResult{State: g.State()}
}

// moveShots flies every bullet and resolves what it hits. Mushrooms shield
// the segments behind them.
func (g *Game) moveShots() {
	kept := g.w.Shots[:0]
	for _, s := range g.w.Shots {
		s.Y -= ShotSpeed
		if g.shootMushroom(s) || g.shootSegment(s) || s.Y < 0 {
			continue
		}
		kept = append(kept, s)
	}
	g.w.Shots = kept
}

func (g *Game) shootMushroom(s Shot) bool {
	for i := range g.w.Mushrooms {
		m := &g.w.Mushrooms[i]
		if math.Abs(s.X-(m.X+CellSize/2)) >= CellSize/2 || math.Abs(s.Y-(m.Y+CellSize/2)) >= CellSize/2 {
			continue
		}
		m.HP--
		g.w.Score += MushroomPoint
		if m.HP <= 0 {
			g.w.Mushrooms = append(g.w.Mushrooms[:i], g.w.Mushrooms[i+1:]...)
			g.sound.Noise(0.1, 0.1)
		} else {
			g.sound.Tone(200, 0.05, core.WaveTriangle, core.ToneVolume)
		}
		return true
	}
	return false
}

// shootSegment kills the first segment under the shot. It leaves a
// mushroom in its cell and the segment behind it becomes a head.
func (g *Game) shootSegment(s Shot) bool {
	for i, seg := range g.w.Segments {
		if math.Abs(s.X-(seg.X+CellSize/2)) >= 12 || math.Abs(s.Y-(seg.Y+CellSize/2)) >= 12 {
			continue
		}
		g.w.Mushrooms = append(g.w.Mushrooms, Mushroom{
			X:  math.Floor(seg.X/CellSize) * CellSize,
			Y:  math.Floor(seg.Y/CellSize) * CellSize,
			HP: MushroomHP,
		})
		g.w.Segments = append(g.w.Segments[:i], g.w.Segments[i+1:]...)
		if i < len(g.w.Segments) {
			g.w.Segments[i].Head = true
		}
		g.w.Score += SegmentPoints
		g.sound.Noise(0.2, 0.3)
		return true
	}
	return false
}

// crawl moves each segment sideways. A segment that meets a wall or a
// mushroom drops one row and reverses; past the bottom it re-enters the
// player zone.
func (g *Game) crawl() {
	speed := g.cfg.Speed(SegmentSpeed, g.w.Score, g.w.Tick)
	for i := range g.w.Segments {
		s := &g.w.Segments[i]
		s.X += s.Dir * speed
		if s.X < 0 || s.X > WorldW-CellSize || g.blocked(s.X, s.Y) {
			s.Y += CellSize
			s.Dir = -s.Dir
			s.X = core.ClampF(s.X, 0, WorldW-CellSize)
			if s.Y > WorldH-CellSize {
				s.Y = ZoneTop
			}
		}
		if math.Abs(s.X-g.w.PlayerX) < 12 && math.Abs(s.Y-g.w.PlayerY) < 12 {
			g.die()
			return
		}
	}
}

func (g *Game) blocked(x, y float64) bool {
	for _, m := range g.w.Mushrooms {
		if math.Abs(x-m.X) < 10 && math.Abs(y-m.Y) < 10 {
			return true
		}
	}
	return false
}

func (g *Game) die() {
	g.sound.Sweep(800, 200, 1.0, core.WaveSawtooth, core.SweepVolume)
	g.w.Lives--
	if g.w.Lives <= 0 {
		g.w.Lives = 0
		g.w.Over = true
		return
	}
	g.w.Dead = true
	g.w.Respawn = respawnTicks
}

// Autopilot lines up under the lowest segment and fires every tenth tick
// once aligned.
func (g *Game) Autopilot(frame *core.InputFrame) {
	if g.w.Dead || len(g.w.Segments) == 0 {
		return
	}
	target := g.w.Segments[0]
	for _, s := range g.w.Segments[1:] {
		if s.Y > target.Y {
			target = s
		}
	}
	switch dx := target.X - g.w.PlayerX; {
	case dx > 4:
		frame.Set(core.ActionRight)
	case dx < -4:
		frame.Set(core.ActionLeft)
	case g.w.Tick%fireInterval == 0:
		frame.Set(core.ActionFire)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.w.Score,
		Lives:    g.w.Lives,
		Level:    g.w.Wave,
		GameOver: g.w.Over,
	}
}

// ResetOnTakeover is false: the player steps into the running demo.
func (g *Game) ResetOnTakeover() bool { return false }

// Snapshot returns a copy of the world with its own slices.
func (g *Game) Snapshot() World {
	w := g.w
	w.Shots = append([]Shot(nil), g.w.Shots...)
	w.Mushrooms = append([]Mushroom(nil), g.w.Mushrooms...)
	w.Segments = append([]Segment(nil), g.w.Segments...)
	return w
}

func init() {
	registry.Register("centipede", func() registry.Game {
		return New()
	})
}
