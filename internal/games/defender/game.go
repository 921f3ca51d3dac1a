// Package defender implements Defender: a ship patrolling a wide scrolling
// world above a ridge of mountains, shooting down landers.
package defender

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// World and camera geometry.
const (
	WorldW   = 4000
	WorldH   = 600
	ViewW    = 800 // Camera width
	MinimapH = 50  // Scanner strip at the top of the view
)

// Ship handling.
const (
	Thrust    = 0.5
	MaxSpeed  = 8.0
	FrictionX = 0.98
	FrictionY = 0.95
	shipTop   = MinimapH + 20
	shipFloor = WorldH - 20

	LaserSpeed    = 20.0
	LaserLife     = 60
	LaserCooldown = 10
	muzzle        = 20
)

// Landers and scoring.
const (
	Landers      = 15
	HitRange     = 20
	LanderPoints = 150
	landerFloor  = WorldH - 50
	jitterChance = 0.02
	StartLives   = 3
	InvulnTicks  = 120
	sparkCount   = 10
	sparkLife    = 30
	terrainStep  = 10
)

// Ship is the player's craft. Facing is 1 to the right and -1 to the left.
type Ship struct {
	X, Y     float64
	VX, VY   float64
	Facing   float64
	Cooldown int
	Invuln   int
}

// Lander is an alien drifting over the planet.
type Lander struct {
	X, Y   float64
	VX, VY float64
}

// Laser is a horizontal bolt.
type Laser struct {
	X, Y float64
	VX   float64
	Life int
}

// Spark is explosion debris.
type Spark struct {
	X, Y   float64
	VX, VY float64
	Life   int
}

// World is the complete simulation state.
type World struct {
	Ship    Ship
	Landers []Lander
	Lasers  []Laser
	Sparks  []Spark
	Terrain []float64 // Ground height every terrainStep units
	Score   int
	Lives   int
	Wave    int
	Over    bool
	Tick    int
}

// Camera returns the left edge of the view. It follows the ship and stops
// at the world's ends.
func (w World) Camera() float64 {
	return core.ClampF(w.Ship.X-ViewW/2, 0, WorldW-ViewW)
}

// Ground returns the terrain height under x.
func (w World) Ground(x float64) float64 {
	if len(w.Terrain) == 0 {
		return WorldH
	}
	i := core.Clamp(int(x/terrainStep), 0, len(w.Terrain)-1)
	return w.Terrain[i]
}

// Game implements registry.Game.
type Game struct {
	w     World
	cfg   core.RuntimeConfig
	rng   core.RNG
	sound core.Signal
}

// New creates a new Defender game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "defender" }
func (g *Game) Title() string { return "Defender" }

func (g *Game) Description() string {
	return "Patrol the planet's surface and shoot down the alien landers."
}

func (g *Game) Controls() []string {
	return []string{"Left/Right: Thrust and Face", "Up/Down: Climb and Dive", "Space: Laser"}
}

// Reset raises new terrain and sends in the first wave.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{
		Ship:  Ship{X: 200, Y: 300, VX: 3, Facing: 1},
		Lives: cfg.LivesOr(StartLives),
		Wave:  1,
	}
	g.raiseTerrain()
	g.spawnLanders()
}

// raiseTerrain random-walks the mountain line between 20 and 200 units
// above the bottom of the world.
func (g *Game) raiseTerrain() {
	y := float64(WorldH - 100)
	for x := 0; x < WorldW; x += terrainStep {
		g.w.Terrain = append(g.w.Terrain, y)
		y = core.ClampF(y+(g.rng.Float64()-0.5)*40, WorldH-200, WorldH-20)
	}
	g.w.Terrain = append(g.w.Terrain, WorldH-100)
}

func (g *Game) spawnLanders() {
	for i := 0; i < Landers; i++ {
		g.w.Landers = append(g.w.Landers, Lander{
			X:  g.rng.Float64() * WorldW,
			Y:  g.rng.Float64()*(WorldH-200) + 50,
			VX: (g.rng.Float64() - 0.5) * 2,
			VY: (g.rng.Float64() - 0.5) * 2,
		})
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++

	g.fly(in)
	if in.Has(core.ActionFire) && g.w.Ship.Cooldown <= 0 {
		s := g.w.Ship
		g.w.Lasers = append(g.w.Lasers, Laser{
			X:    s.X + s.Facing*muzzle,
			Y:    s.Y,
			VX:   s.Facing * LaserSpeed,
			Life: LaserLife,
		})
		g.w.Ship.Cooldown = LaserCooldown
		g.sound.Tone(400, 0.05, core.WaveSquare, core.ToneVolume)
	}
	if g.w.Ship.Cooldown > 0 {
		g.w.Ship.Cooldown--
	}
	if g.w.Ship.Invuln > 0 {
		g.w.Ship.Invuln--
	}

	g.moveLasers()
	g.moveLanders()
	g.shootLanders()
	g.moveSparks()
	g.ram()

	if !g.w.Over && len(g.w.Landers) == 0 {
		g.w.Wave++
		g.spawnLanders()
		g.sound.Sweep(300, 900, 0.5, core.WaveSine, core.SweepVolume)
	}
	return core.StepResult{State: g.State()}
}

// fly applies thrust, friction and the speed cap, then keeps the ship
// between the scanner and the ground line.
func (g *Game) fly(in core.InputFrame) {
	s := &g.w.Ship
	s.VX += in.Horizontal() * Thrust
	s.VY += in.Vertical() * Thrust
	s.VX *= FrictionX
	s.VY *= FrictionY
	s.VX = core.ClampF(s.VX, -MaxSpeed, MaxSpeed)
	s.VY = core.ClampF(s.VY, -MaxSpeed, MaxSpeed)
	if !core.Finite(core.Vec{X: s.VX, Y: s.VY}) {
		s.VX, s.VY = 0, 0
	}
	s.X = core.ClampF(s.X+s.VX, 0, WorldW)
	s.Y = core.ClampF(s.Y+s.VY, shipTop, shipFloor)

	if h := in.Horizontal(); h != 0 {
		s.Facing = h
	}
}

func (g *Game) moveLasers() {
	kept := g.w.Lasers[:0]
	for _, l := range g.w.Lasers {
		l.X += l.VX
		l.Life--
		if l.Life > 0 && l.X >= 0 && l.X <= WorldW {
			kept = append(kept, l)
		}
	}
	g.w.Lasers = kept
}

// moveLanders drifts every lander, bouncing off the scanner, the low
// ceiling over the ground and the world's ends. Now and then a lander
// picks a new vertical drift.
func (g *Game) moveLanders() {
	pace := g.cfg.Speed(1, g.w.Score, g.w.Tick)
	for i := range g.w.Landers {
		l := &g.w.Landers[i]
		l.X += l.VX * pace
		l.Y += l.VY * pace
		if l.Y < MinimapH || l.Y > landerFloor {
			l.VY = -l.VY
		}
		if l.X < 0 || l.X > WorldW {
			l.VX = -l.VX
		}
		if g.rng.Float64() < jitterChance {
			l.VY = (g.rng.Float64() - 0.5) * 2
		}
	}
}

// shootLanders resolves laser hits. A laser is spent on the first lander
// it reaches.
func (g *Game) shootLanders() {
	for li := range g.w.Lasers {
		l := &g.w.Lasers[li]
		for i, e := range g.w.Landers {
			if math.Abs(l.X-e.X) >= HitRange || math.Abs(l.Y-e.Y) >= HitRange {
				continue
			}
			g.w.Landers = append(g.w.Landers[:i], g.w.Landers[i+1:]...)
			l.Life = 0
			g.w.Score += LanderPoints
			g.explode(e.X, e.Y)
			g.sound.Tone(150, 0.1, core.WaveSawtooth, 0.2)
			break
		}
	}
	kept := g.w.Lasers[:0]
	for _, l := range g.w.Lasers {
		if l.Life > 0 {
			kept = append(kept, l)
		}
	}
	g.w.Lasers = kept
}

func (g *Game) explode(x, y float64) {
	for i := 0; i < sparkCount; i++ {
		g.w.Sparks = append(g.w.Sparks, Spark{
			X:    x,
			Y:    y,
			VX:   (g.rng.Float64() - 0.5) * 10,
			VY:   (g.rng.Float64() - 0.5) * 10,
			Life: sparkLife,
		})
	}
}

func (g *Game) moveSparks() {
	kept := g.w.Sparks[:0]
	for _, s := range g.w.Sparks {
		s.X += s.VX
		s.Y += s.VY
		s.Life--
		if s.Life > 0 {
			kept = append(kept, s)
		}
	}
	g.w.Sparks = kept
}

// ram costs a life when a lander touches the ship. Both are destroyed and
// the ship is shielded for a while.
func (g *Game) ram() {
	s := &g.w.Ship
	if s.Invuln > 0 {
		return
	}
	for i, e := range g.w.Landers {
		if math.Abs(s.X-e.X) >= HitRange || math.Abs(s.Y-e.Y) >= HitRange {
			continue
		}
		g.w.Landers = append(g.w.Landers[:i], g.w.Landers[i+1:]...)
		g.explode(s.X, s.Y)
		g.sound.Noise(0.5, 0.3)
		g.w.Lives--
		if g.w.Lives <= 0 {
			g.w.Lives = 0
			g.w.Over = true
			return
		}
		s.Invuln = InvulnTicks
		return
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

// ResetOnTakeover is false: the demo's planet and landers stay.
func (g *Game) ResetOnTakeover() bool { return false }

// Snapshot returns a copy of the world with its own slices.
func (g *Game) Snapshot() World {
	w := g.w
	w.Landers = append([]Lander(nil), g.w.Landers...)
	w.Lasers = append([]Laser(nil), g.w.Lasers...)
	w.Sparks = append([]Spark(nil), g.w.Sparks...)
	w.Terrain = append([]float64(nil), g.w.Terrain...)
	return w
}

func init() {
	registry.Register("defender", func() registry.Game {
		return New()
	})
}
