// Package missilecommand implements Missile Command on an 800x600 field.
package missilecommand

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Logical playfield.
const (
	WorldW  = 800
	WorldH  = 600
	GroundY = 550
	BaseY   = GroundY - 20 // Where cities and silos stand
)

// Rules.
const (
	SiloAmmo       = 10
	PlayerSpeed    = 15.0
	CrosshairSpeed = 8.0
	EnemySpeed     = 1.0
	EnemySpeedStep = 0.1 // Added per wave
	WaveMissiles   = 10
	WaveMissileAdd = 2
	ExplosionMax   = 40.0
	ExplosionRate  = 1.0
	KillPoints     = 25
	CityBonus      = 100
	AmmoBonus      = 50
	waveBreak      = 180
	spawnGap       = 100
	spawnGapStep   = 5
	minSpawnGap    = 10
)

var (
	cityX = [...]float64{120, 200, 280, 520, 600, 680}
	siloX = [...]float64{40, 400, 760}
)

// City is a target the player defends.
type City struct {
	Pos   core.Vec
	Alive bool
}

// Silo launches counter-missiles while it stands and has ammo.
type Silo struct {
	Pos   core.Vec
	Ammo  int
	Alive bool
}

// Missile flies in a straight line from From to Target.
type Missile struct {
	Pos, From, Target core.Vec
	Speed             float64
	Dead              bool
}

// Explosion is an expanding then collapsing fireball. Hostile explosions
// come from enemy warheads and flatten what they reach.
type Explosion struct {
	Pos     core.Vec
	Radius  float64
	Growing bool
	Hostile bool
}

// World is the complete simulation state.
type World struct {
	Crosshair  core.Vec
	Cities     []City
	Silos      []Silo
	Missiles   []Missile
	Enemies    []Missile
	Explosions []Explosion
	Wave       int
	ToSpawn    int // Enemy missiles still to launch this wave
	SpawnTimer int
	Break      int // Ticks left in the pause between waves
	FireHeld   bool
	Score      int
	Over       bool
	Tick       int
}

// Game implements registry.Game and registry.Aimer.
type Game struct {
	w     World
	cfg   core.RuntimeConfig
	rng   core.RNG
	sound core.Signal
}

// New creates a new Missile Command game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "missilecommand" }
func (g *Game) Title() string { return "Missile Command" }

func (g *Game) Description() string {
	return "Defend six cities from falling warheads. Detonate counter-missiles in their path."
}

func (g *Game) Controls() []string {
	return []string{"Mouse / Arrow Keys: Aim", "Click / Space: Fire"}
}

// WorldSize reports the space pointer aims are expressed in.
func (g *Game) WorldSize() (w, h float64) {
	return WorldW, WorldH
}

// Reset rebuilds the cities and silos and starts the first wave.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{
		Crosshair: core.Vec{X: WorldW / 2, Y: WorldH / 2},
	}
	for _, x := range cityX {
		g.w.Cities = append(g.w.Cities, City{Pos: core.Vec{X: x, Y: BaseY}, Alive: true})
	}
	for _, x := range siloX {
		g.w.Silos = append(g.w.Silos, Silo{Pos: core.Vec{X: x, Y: BaseY}, Ammo: SiloAmmo, Alive: true})
	}
	g.startWave()
}

func (g *Game) startWave() {
	g.w.Wave++
	g.w.ToSpawn = WaveMissiles + WaveMissileAdd*g.w.Wave
	g.w.SpawnTimer = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++

	g.aim(in)
	fire := in.Has(core.ActionFire)
	if fire && !g.w.FireHeld {
		g.launch()
	}
	g.w.FireHeld = fire

	if g.w.Break > 0 {
		g.w.Break--
		if g.w.Break == 0 {
			g.startWave()
		}
	} else {
		g.spawn()
	}

	g.flyMissiles()
	g.flyEnemies()
	g.blast()

	switch {
	case g.CitiesLeft() == 0:
		g.w.Over = true
		g.sound.Sweep(600, 60, 1.5, core.WaveSawtooth, core.SweepVolume)
	case g.w.Break == 0 && g.w.ToSpawn == 0 && len(g.w.Enemies) == 0 && len(g.w.Explosions) == 0:
		g.endWave()
	}
	return core.StepResult{State: g.State()}
}

// aim moves the crosshair to the pointer if there is one, then by the
// direction keys.
func (g *Game) aim(in core.InputFrame) {
	c := g.w.Crosshair
	if in.HasAim {
		c = in.Aim
	}
	c.X += in.Horizontal() * CrosshairSpeed
	c.Y += in.Vertical() * CrosshairSpeed
	g.w.Crosshair = core.Vec{
		X: core.ClampF(c.X, 0, WorldW),
		Y: core.ClampF(c.Y, 0, GroundY),
	}
}

// launch fires from the standing silo nearest the crosshair that still
// has ammo.
func (g *Game) launch() {
	best := -1
	for i, s := range g.w.Silos {
		if !s.Alive || s.Ammo == 0 {
			continue
		}
		if best < 0 || core.Dist(s.Pos, g.w.Crosshair) < core.Dist(g.w.Silos[best].Pos, g.w.Crosshair) {
			best = i
		}
	}
	if best < 0 {
		return
	}
	s := &g.w.Silos[best]
	s.Ammo--
	g.w.Missiles = append(g.w.Missiles, Missile{
		Pos:    s.Pos,
		From:   s.Pos,
		Target: g.w.Crosshair,
		Speed:  PlayerSpeed,
	})
	g.sound.Tone(600, 0.1, core.WaveTriangle, core.ToneVolume)
}

// spawn launches the next enemy missile of the wave at a random standing
// city or silo.
func (g *Game) spawn() {
	if g.w.ToSpawn == 0 {
		return
	}
	if g.w.SpawnTimer > 0 {
		g.w.SpawnTimer--
		return
	}
	targets := g.targets()
	if len(targets) == 0 {
		return
	}
	from := core.Vec{X: g.rng.Float64() * WorldW}
	base := EnemySpeed + EnemySpeedStep*float64(g.w.Wave)
	g.w.Enemies = append(g.w.Enemies, Missile{
		Pos:    from,
		From:   from,
		Target: targets[g.rng.Intn(len(targets))],
		Speed:  g.cfg.Speed(base, g.w.Score, g.w.Tick),
	})
	g.w.ToSpawn--
	g.w.SpawnTimer = max(minSpawnGap, spawnGap-spawnGapStep*g.w.Wave)
}

func (g *Game) targets() []core.Vec {
	var out []core.Vec
	for _, c := range g.w.Cities {
		if c.Alive {
			out = append(out, c.Pos)
		}
	}
	for _, s := range g.w.Silos {
		if s.Alive {
			out = append(out, s.Pos)
		}
	}
	return out
}

// fly advances m toward its target and reports whether it arrived.
func fly(m *Missile) bool {
	d := m.Target.Sub(m.Pos)
	if d.Len() <= m.Speed {
		m.Pos = m.Target
		return true
	}
	m.Pos = m.Pos.Add(d.Scale(m.Speed / d.Len()))
	return false
}

func (g *Game) flyMissiles() {
	kept := g.w.Missiles[:0]
	for _, m := range g.w.Missiles {
		if fly(&m) {
			g.detonate(m.Pos, false)
			continue
		}
		kept = append(kept, m)
	}
	g.w.Missiles = kept
}

func (g *Game) flyEnemies() {
	kept := g.w.Enemies[:0]
	for _, m := range g.w.Enemies {
		if fly(&m) {
			g.detonate(m.Pos, true)
			continue
		}
		kept = append(kept, m)
	}
	g.w.Enemies = kept
}

func (g *Game) detonate(at core.Vec, hostile bool) {
	g.w.Explosions = append(g.w.Explosions, Explosion{Pos: at, Growing: true, Hostile: hostile})
	if hostile {
		g.sound.Noise(0.5, 0.4)
	} else {
		g.sound.Noise(0.2, core.NoiseVolume)
	}
}

// blast grows or shrinks every explosion and applies it. Any fireball
// destroys the enemy missiles inside it but only the player's own score
// points. Hostile fireballs also flatten cities and silos.
func (g *Game) blast() {
	kept := g.w.Explosions[:0]
	for _, e := range g.w.Explosions {
		if e.Growing {
			e.Radius += ExplosionRate
			if e.Radius >= ExplosionMax {
				e.Radius = ExplosionMax
				e.Growing = false
			}
		} else {
			e.Radius -= ExplosionRate
		}
		if e.Radius <= 0 {
			continue
		}

		for i := range g.w.Enemies {
			m := &g.w.Enemies[i]
			if !m.Dead && core.Near(m.Pos, e.Pos, e.Radius) {
				m.Dead = true
				if !e.Hostile {
					g.w.Score += KillPoints
				}
			}
		}
		if e.Hostile {
			g.flatten(e)
		}
		kept = append(kept, e)
	}
	g.w.Explosions = kept

	alive := g.w.Enemies[:0]
	for _, m := range g.w.Enemies {
		if !m.Dead {
			alive = append(alive, m)
		}
	}
	g.w.Enemies = alive
}

func (g *Game) flatten(e Explosion) {
	for i := range g.w.Cities {
		c := &g.w.Cities[i]
		if c.Alive && core.Near(c.Pos, e.Pos, e.Radius) {
			c.Alive = false
			g.sound.Sweep(300, 50, 0.8, core.WaveSawtooth, core.SweepVolume)
		}
	}
	for i := range g.w.Silos {
		s := &g.w.Silos[i]
		if s.Alive && core.Near(s.Pos, e.Pos, e.Radius) {
			s.Alive = false
			s.Ammo = 0
		}
	}
}

// endWave pays the bonus for surviving cities and unspent ammo, restocks
// the standing silos and starts the pause before the next wave.
func (g *Game) endWave() {
	bonus := CityBonus * g.CitiesLeft()
	for i := range g.w.Silos {
		s := &g.w.Silos[i]
		if !s.Alive {
			continue
		}
		bonus += AmmoBonus * s.Ammo
		s.Ammo = SiloAmmo
	}
	g.w.Score += bonus
	g.w.Break = waveBreak
	g.sound.Sweep(400, 1200, 0.6, core.WaveSine, core.SweepVolume)
}

// CitiesLeft counts the standing cities.
func (g *Game) CitiesLeft() int {
	n := 0
	for _, c := range g.w.Cities {
		if c.Alive {
			n++
		}
	}
	return n
}

// State returns the current game state. Lives are the standing cities.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.w.Score,
		Lives:    g.CitiesLeft(),
		Level:    g.w.Wave,
		GameOver: g.w.Over,
	}
}

// ResetOnTakeover is false: the current wave keeps falling.
func (g *Game) ResetOnTakeover() bool { return false }

// Snapshot returns a copy of the world with its own slices.
func (g *Game) Snapshot() World {
	w := g.w
	w.Cities = append([]City(nil), g.w.Cities...)
	w.Silos = append([]Silo(nil), g.w.Silos...)
	w.Missiles = append([]Missile(nil), g.w.Missiles...)
	w.Enemies = append([]Missile(nil), g.w.Enemies...)
	w.Explosions = append([]Explosion(nil), g.w.Explosions...)
	return w
}

func init() {
	registry.Register("missilecommand", func() registry.Game {
		return New()
	})
}
