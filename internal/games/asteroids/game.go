// Package asteroids implements Asteroids on a wrapping 800x600 field.
package asteroids

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Logical playfield.
const (
	WorldW = 800
	WorldH = 600
)

// Ship handling.
const (
	ShipRadius   = 10.0
	noseLength   = 20.0
	Rotation     = 0.08 // Radians per tick
	Thrust       = 0.1
	Friction     = 0.99
	MaxSpeed     = 8.0
	recoil       = 0.1
	InvulnTicks  = 120
	StartLives   = 3
	respawnClear = 100.0 // New rocks never appear this close to the ship
)

// Shots and rocks.
const (
	ShotSpeed    = 6.0
	ShotLife     = 60
	FireCooldown = 15
	WaveRocks    = 6
	BigRock      = 40.0
	splitAbove   = 15.0 // Rocks larger than this break in two
	rockDrift    = 2.0  // Spread of a new rock's velocity per axis
	sparkCount   = 5
	sparkFade    = 0.02
)

// Ship is the player's craft. Angle 0 points right; -Pi/2 points up.
type Ship struct {
	X, Y     float64
	VX, VY   float64
	Angle    float64
	Cooldown int
	Invuln   int // Ticks left in which rocks pass through the ship
}

// Pos returns the ship's center.
func (s Ship) Pos() core.Vec { return core.Vec{X: s.X, Y: s.Y} }

// Rock is one asteroid. Shape holds the relative radius of each outline
// vertex, evenly spaced around the center.
type Rock struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Shape  []float64
}

// Pos returns the rock's center.
func (r Rock) Pos() core.Vec { return core.Vec{X: r.X, Y: r.Y} }

// Shot is a bullet that expires after Life ticks.
type Shot struct {
	X, Y   float64
	VX, VY float64
	Life   int
}

// Spark is a fading debris particle.
type Spark struct {
	X, Y   float64
	VX, VY float64
	Life   float64
}

// World is the complete simulation state.
type World struct {
	Ship   Ship
	Rocks  []Rock
	Shots  []Shot
	Sparks []Spark
	Score  int
	Lives  int
	Wave   int
	Over   bool
	Tick   int
}

// Game implements registry.Game.
type Game struct {
	w     World
	cfg   core.RuntimeConfig
	rng   core.RNG
	sound core.Signal
}

// New creates a new Asteroids game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "asteroids" }
func (g *Game) Title() string { return "Asteroids" }

func (g *Game) Description() string {
	return "Destroy asteroids and saucers. Watch out for debris!"
}

func (g *Game) Controls() []string {
	return []string{"Arrow Up: Thrust", "Arrow Left/Right: Rotate", "Space: Shoot"}
}

// Reset starts a new game with a fresh field.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{
		Lives: cfg.LivesOr(StartLives),
		Wave:  1,
	}
	g.centerShip()
	g.spawnWave()
}

func (g *Game) centerShip() {
	g.w.Ship = Ship{X: WorldW / 2, Y: WorldH / 2, Angle: -math.Pi / 2}
}

// spawnWave scatters WaveRocks big rocks away from the ship.
func (g *Game) spawnWave() {
	g.w.Rocks = g.w.Rocks[:0]
	for i := 0; i < WaveRocks; i++ {
		p := core.Vec{X: g.rng.Float64() * WorldW, Y: g.rng.Float64() * WorldH}
		if core.Near(p, g.w.Ship.Pos(), respawnClear) {
			p.X = core.Wrap(p.X+WorldW/2, WorldW)
		}
		g.w.Rocks = append(g.w.Rocks, g.newRock(p, BigRock))
	}
}

func (g *Game) newRock(p core.Vec, size float64) Rock {
	drift := g.cfg.Speed(rockDrift, g.w.Score, g.w.Tick)
	r := Rock{
		X:    p.X,
		Y:    p.Y,
		VX:   (g.rng.Float64() - 0.5) * drift,
		VY:   (g.rng.Float64() - 0.5) * drift,
		Size: size,
	}
	n := 8 + g.rng.Intn(4)
	r.Shape = make([]float64, n)
	for i := range r.Shape {
		r.Shape[i] = 0.8 + g.rng.Float64()*0.4
	}
	return r
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++

	g.steer(in)
	g.moveShip()
	g.moveShots()
	g.moveRocks()
	g.moveSparks()

	g.shootRocks()
	g.ram()

	if !g.w.Over && len(g.w.Rocks) == 0 {
		g.w.Wave++
		g.spawnWave()
		g.sound.Sweep(200, 600, 0.5, core.WaveTriangle, core.SweepVolume)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) steer(in core.InputFrame) {
	s := &g.w.Ship
	s.Angle += in.Horizontal() * Rotation
	if in.Has(core.ActionUp) {
		s.VX += math.Cos(s.Angle) * Thrust
		s.VY += math.Sin(s.Angle) * Thrust
	}
	if in.Has(core.ActionFire) && s.Cooldown <= 0 {
		cos, sin := math.Cos(s.Angle), math.Sin(s.Angle)
		g.w.Shots = append(g.w.Shots, Shot{
			X:    s.X + cos*noseLength,
			Y:    s.Y + sin*noseLength,
			VX:   cos * ShotSpeed,
			VY:   sin * ShotSpeed,
			Life: ShotLife,
		})
		s.Cooldown = FireCooldown
		s.VX -= cos * recoil
		s.VY -= sin * recoil
		g.sound.Tone(800-g.rng.Float64()*200, 0.05, core.WaveSawtooth, core.ToneVolume)
	}
	if s.Cooldown > 0 {
		s.Cooldown--
	}
	if s.Invuln > 0 {
		s.Invuln--
	}
}

func (g *Game) moveShip() {
	s := &g.w.Ship
	v := core.Vec{X: s.VX, Y: s.VY}
	if !core.Finite(v) || !core.Finite(s.Pos()) || math.IsNaN(s.Angle) {
		g.centerShip()
		return
	}
	v = core.CapSpeed(v, MaxSpeed)
	s.X = core.Wrap(s.X+v.X, WorldW)
	s.Y = core.Wrap(s.Y+v.Y, WorldH)
	s.VX = v.X * Friction
	s.VY = v.Y * Friction
}

func (g *Game) moveShots() {
	shots := g.w.Shots[:0]
	for _, sh := range g.w.Shots {
		sh.X = core.Wrap(sh.X+sh.VX, WorldW)
		sh.Y = core.Wrap(sh.Y+sh.VY, WorldH)
		sh.Life--
		if sh.Life > 0 {
			shots = append(shots, sh)
		}
	}
	g.w.Shots = shots
}

// moveRocks drifts every rock. Rocks leave the field completely before
// reappearing on the far side.
func (g *Game) moveRocks() {
	for i := range g.w.Rocks {
		r := &g.w.Rocks[i]
		r.X = wrapPast(r.X+r.VX, WorldW, r.Size)
		r.Y = wrapPast(r.Y+r.VY, WorldH, r.Size)
	}
}

func wrapPast(v, limit, margin float64) float64 {
	switch {
	case v < -margin:
		return limit + margin
	case v > limit+margin:
		return -margin
	}
	return v
}

func (g *Game) moveSparks() {
	sparks := g.w.Sparks[:0]
	for _, p := range g.w.Sparks {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= sparkFade
		if p.Life > 0 {
			sparks = append(sparks, p)
		}
	}
	g.w.Sparks = sparks
}

// shootRocks resolves shots against rocks. A shot is spent on the first
// rock it touches; big rocks split into two halves.
func (g *Game) shootRocks() {
	var born []Rock
	shots := g.w.Shots[:0]
	for _, sh := range g.w.Shots {
		spent := false
		for i := range g.w.Rocks {
			r := &g.w.Rocks[i]
			if r.Size <= 0 || !core.Near(core.Vec{X: sh.X, Y: sh.Y}, r.Pos(), r.Size) {
				continue
			}
			g.w.Score += rockPoints(r.Size)
			if r.Size > splitAbove {
				born = append(born, g.newRock(r.Pos(), r.Size/2), g.newRock(r.Pos(), r.Size/2))
			}
			g.burst(r.Pos())
			g.sound.Noise(0.1, 0.1)
			r.Size = 0
			spent = true
			break
		}
		if !spent {
			shots = append(shots, sh)
		}
	}
	g.w.Shots = shots

	rocks := g.w.Rocks[:0]
	for _, r := range g.w.Rocks {
		if r.Size > 0 {
			rocks = append(rocks, r)
		}
	}
	g.w.Rocks = append(rocks, born...)
}

// rockPoints gives small rocks more points.
func rockPoints(size float64) int {
	switch {
	case size > BigRock/2:
		return 20
	case size > splitAbove:
		return 50
	default:
		return 100
	}
}

func (g *Game) burst(p core.Vec) {
	for i := 0; i < sparkCount; i++ {
		g.w.Sparks = append(g.w.Sparks, Spark{
			X:    p.X,
			Y:    p.Y,
			VX:   (g.rng.Float64() - 0.5) * 2,
			VY:   (g.rng.Float64() - 0.5) * 2,
			Life: 1,
		})
	}
}

// ram checks the ship against every rock. A hit costs a life and the ship
// respawns in the middle with a spell of invulnerability.
func (g *Game) ram() {
	s := &g.w.Ship
	if s.Invuln > 0 {
		return
	}
	for _, r := range g.w.Rocks {
		if core.Near(s.Pos(), r.Pos(), r.Size+ShipRadius) {
			g.burst(s.Pos())
			g.sound.Noise(0.5, 0.3)
			g.w.Lives--
			if g.w.Lives <= 0 {
				g.w.Lives = 0
				g.w.Over = true
				return
			}
			g.centerShip()
			g.w.Ship.Invuln = InvulnTicks
			return
		}
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

// ResetOnTakeover is false: the player inherits the demo's rock field.
func (g *Game) ResetOnTakeover() bool { return false }

// Snapshot returns a copy of the world with its own slices.
func (g *Game) Snapshot() World {
	w := g.w
	w.Rocks = append([]Rock(nil), g.w.Rocks...)
	w.Shots = append([]Shot(nil), g.w.Shots...)
	w.Sparks = append([]Spark(nil), g.w.Sparks...)
	return w
}

func init() {
	registry.Register("asteroids", func() registry.Game {
		return New()
	})
}
