// Package invaders implements Space Invaders: a marching grid of aliens,
// one cannon and a handful of lives.
package invaders

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Logical playfield and actor sizes.
const (
	WorldW = 800
	WorldH = 600

	PlayerW = 30
	PlayerH = 15
	PlayerY = WorldH - PlayerH - 20 // Top of the cannon
	margin  = 10                    // Closest the cannon gets to a side

	BulletW = 4
	BulletH = 10

	InvaderW = 25
	InvaderH = 20
	GridRows = 4
	GridCols = 8
	gap      = 15
	startX   = WorldW / 10
	startY   = 50
	edge     = 20
	drop     = 20
)

// Speeds, timers and odds.
const (
	PlayerSpeed  = 2.0
	BulletSpeed  = 5.0
	InvaderSpeed = 1.0
	WaveSpeedUp  = 0.25 // Added to the march speed per cleared wave
	FireCooldown = 40
	EnemyFire    = 0.02 // Chance per tick that a living invader shoots
	StartLives   = 3
)

// rowPoints is the score of an invader by row, top first.
var rowPoints = [GridRows]int{30, 20, 20, 10}

// Autopilot tuning.
const (
	dangerZone    = 200 // Bullets lower than WorldH-dangerZone are watched
	dodgeRadius   = 50
	trackSlack    = 10
	alignedWithin = 15
)

// Invader is one alien. Dead invaders keep their slot in the grid.
type Invader struct {
	X, Y  float64
	Row   int
	Alive bool
}

// Box returns the invader's bounding box.
func (i Invader) Box() core.Box {
	return core.Box{X: i.X, Y: i.Y, W: InvaderW, H: InvaderH}
}

// Bullet is a shot's top-left corner.
type Bullet struct {
	X, Y float64
}

// Box returns the bullet's bounding box.
func (b Bullet) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: BulletW, H: BulletH}
}

// World is the complete simulation state.
type World struct {
	PlayerX  float64
	Cooldown int
	Shots    []Bullet // Player bullets, moving up
	Bombs    []Bullet // Invader bullets, moving down
	Invaders []Invader
	Dir      float64 // 1 marching right, -1 left
	Score    int
	Lives    int
	Wave     int
	Over     bool
	Tick     int
}

// Game implements registry.Game.
type Game struct {
	w     World
	cfg   core.RuntimeConfig
	rng   core.RNG
	sound core.Signal
}

// New creates a new Space Invaders game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "invaders" }
func (g *Game) Title() string { return "Space Invaders" }

func (g *Game) Description() string {
	return "Defend Earth from waves of descending aliens. Shoot them down before they land."
}

func (g *Game) Controls() []string {
	return []string{"Arrow Left/Right: Move", "Space: Shoot"}
}

// Reset starts a new game at wave 1.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{
		Lives: cfg.LivesOr(StartLives),
		Wave:  1,
	}
	g.spawnWave()
}

// spawnWave lays out a fresh grid and recenters the cannon.
func (g *Game) spawnWave() {
	g.w.PlayerX = WorldW/2 - PlayerW/2
	g.w.Cooldown = 0
	g.w.Shots = g.w.Shots[:0]
	g.w.Bombs = g.w.Bombs[:0]
	g.w.Dir = 1
	g.w.Invaders = g.w.Invaders[:0]
	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			g.w.Invaders = append(g.w.Invaders, Invader{
				X:     startX + float64(c*(InvaderW+gap)),
				Y:     startY + float64(r*(InvaderH+gap)),
				Row:   r,
				Alive: true,
			})
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++

	if in.Has(core.ActionFire) && g.w.Cooldown <= 0 {
		g.w.Shots = append(g.w.Shots, Bullet{X: g.w.PlayerX + PlayerW/2 - BulletW/2, Y: PlayerY - BulletH})
		g.w.Cooldown = FireCooldown
		g.sound.Tone(800, 0.05, core.WaveSquare, core.ToneVolume)
	}
	g.w.PlayerX = core.ClampF(g.w.PlayerX+in.Horizontal()*PlayerSpeed, margin, WorldW-PlayerW-margin)
	if g.w.Cooldown > 0 {
		g.w.Cooldown--
	}

	g.moveBullets()
	if g.living() == 0 {
		g.w.Wave++
		g.spawnWave()
		g.sound.Sweep(300, 900, 0.4, core.WaveSquare, core.SweepVolume)
		return core.StepResult{State: g.State()}
	}
	if g.march() {
		g.w.Over = true
		g.sound.Noise(0.5, core.NoiseVolume)
		return core.StepResult{State: g.State()}
	}
	g.enemyFire()
	g.collide()
	return core.StepResult{State: g.State()}
}

func (g *Game) moveBullets() {
	shots := g.w.Shots[:0]
	for _, b := range g.w.Shots {
		b.Y -= BulletSpeed
		if b.Y+BulletH > 0 {
			shots = append(shots, b)
		}
	}
	g.w.Shots = shots

	bombs := g.w.Bombs[:0]
	for _, b := range g.w.Bombs {
		b.Y += BulletSpeed
		if b.Y < WorldH {
			bombs = append(bombs, b)
		}
	}
	g.w.Bombs = bombs
}

// march moves the grid one tick. At an edge the grid reverses and drops
// instead of moving sideways. It reports whether an invader reached the
// cannon's row.
func (g *Game) march() bool {
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, inv := range g.w.Invaders {
		if inv.Alive {
			minX = math.Min(minX, inv.X)
			maxX = math.Max(maxX, inv.X+InvaderW)
		}
	}

	if (g.w.Dir > 0 && maxX >= WorldW-edge) || (g.w.Dir < 0 && minX <= edge) {
		g.w.Dir = -g.w.Dir
		for i := range g.w.Invaders {
			g.w.Invaders[i].Y += drop
		}
	} else {
		speed := g.cfg.Speed(InvaderSpeed+WaveSpeedUp*float64(g.w.Wave-1), g.w.Score, g.w.Tick)
		for i := range g.w.Invaders {
			g.w.Invaders[i].X += g.w.Dir * speed
		}
	}

	for _, inv := range g.w.Invaders {
		if inv.Alive && inv.Y+InvaderH >= PlayerY {
			return true
		}
	}
	return false
}

func (g *Game) enemyFire() {
	if g.rng.Float64() >= EnemyFire {
		return
	}
	alive := make([]int, 0, len(g.w.Invaders))
	for i, inv := range g.w.Invaders {
		if inv.Alive {
			alive = append(alive, i)
		}
	}
	if len(alive) == 0 {
		return
	}
	s := g.w.Invaders[alive[g.rng.Intn(len(alive))]]
	g.w.Bombs = append(g.w.Bombs, Bullet{X: s.X + InvaderW/2.0 - BulletW/2, Y: s.Y + InvaderH})
}

func (g *Game) collide() {
	shots := g.w.Shots[:0]
	for _, b := range g.w.Shots {
		hit := false
		for i := range g.w.Invaders {
			inv := &g.w.Invaders[i]
			if inv.Alive && b.Box().Overlaps(inv.Box()) {
				inv.Alive = false
				g.w.Score += rowPoints[inv.Row]
				g.sound.Noise(0.1, 0.1)
				hit = true
				break
			}
		}
		if !hit {
			shots = append(shots, b)
		}
	}
	g.w.Shots = shots

	cannon := g.cannon()
	for _, b := range g.w.Bombs {
		if b.Box().Overlaps(cannon) {
			g.hit()
			return
		}
	}
}

// hit costs a life. Bullets are cleared and the cannon recentered; the
// grid keeps its place.
func (g *Game) hit() {
	g.sound.Noise(0.5, 0.3)
	g.w.Lives--
	g.w.Shots = g.w.Shots[:0]
	g.w.Bombs = g.w.Bombs[:0]
	g.w.PlayerX = WorldW/2 - PlayerW/2
	if g.w.Lives <= 0 {
		g.w.Lives = 0
		g.w.Over = true
	}
}

func (g *Game) cannon() core.Box {
	return core.Box{X: g.w.PlayerX, Y: PlayerY, W: PlayerW, H: PlayerH}
}

func (g *Game) living() int {
	n := 0
	for _, inv := range g.w.Invaders {
		if inv.Alive {
			n++
		}
	}
	return n
}

// Autopilot dodges the lowest bomb near the cannon, otherwise walks under
// the nearest invader column and fires when one is overhead.
func (g *Game) Autopilot(frame *core.InputFrame) {
	center := g.w.PlayerX + PlayerW/2

	var danger *Bullet
	for i, b := range g.w.Bombs {
		if b.Y > WorldH-dangerZone && math.Abs(b.X-center) < dodgeRadius {
			if danger == nil || b.Y > danger.Y {
				danger = &g.w.Bombs[i]
			}
		}
	}

	switch {
	case danger != nil:
		if danger.X > center {
			frame.Set(core.ActionLeft)
		} else {
			frame.Set(core.ActionRight)
		}
	default:
		if target, ok := g.nearestColumn(center); ok {
			switch {
			case target > center+trackSlack:
				frame.Set(core.ActionRight)
			case target < center-trackSlack:
				frame.Set(core.ActionLeft)
			}
		}
	}

	if g.w.Cooldown <= 0 {
		for _, inv := range g.w.Invaders {
			if inv.Alive && math.Abs(inv.X+InvaderW/2.0-center) < alignedWithin {
				frame.Set(core.ActionFire)
				break
			}
		}
	}
}

func (g *Game) nearestColumn(x float64) (float64, bool) {
	best, found := 0.0, false
	for _, inv := range g.w.Invaders {
		if !inv.Alive {
			continue
		}
		c := inv.X + InvaderW/2.0
		if !found || math.Abs(c-x) < math.Abs(best-x) {
			best, found = c, true
		}
	}
	return best, found
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

// Snapshot returns a deep copy of the world.
func (g *Game) Snapshot() World {
	w := g.w
	w.Shots = append([]Bullet(nil), g.w.Shots...)
	w.Bombs = append([]Bullet(nil), g.w.Bombs...)
	w.Invaders = append([]Invader(nil), g.w.Invaders...)
	return w
}

func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}
