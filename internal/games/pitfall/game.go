// Package pitfall implements Pitfall!: a run through a jungle of 256
// screens decoded from a linear-feedback shift register.
package pitfall

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Screen geometry.
const (
	WorldW       = 800
	WorldH       = 600
	GroundY      = 450 // Feet on the jungle floor
	UndergroundY = 550 // Feet in the tunnel
	abyss        = 700
)

// Player and world rules.
const (
	Gravity      = 0.65
	JumpForce    = -10.0
	RunSpeed     = 4.0
	PlayerW      = 16
	PlayerH      = 32
	StartScore   = 2000
	StartLives   = 3
	TimeLimit    = 20 * 60 // Seconds on the clock
	ticksPerSec  = 60
	DeathTicks   = 90
	FallPenalty  = 100
	DeathPenalty = 100
	respawnX     = 80
	respawnY     = 150
)

// Hazards.
const (
	LogSpeed      = 3.0
	LogDrain      = 10
	logDrainEvery = 8
	knockback     = 8
	knockbackTime = 10
	ScorpionSpeed = 2.0
	crocCycle     = 180
	crocOpenAt    = 140 // Mouth opens for the last 40 ticks of a cycle
	breathCycle   = 300
	VinePoints    = 100
	vineCooldown  = 45
	vineDamping   = 0.995
	vineLength    = 170
	vinePivotY    = 80
)

// PlayerState is Harry's movement state.
type PlayerState int

const (
	StateIdle PlayerState = iota
	StateRun
	StateJump
	StateFall
	StateClimb
	StateSwing
	StateDead
)

func (s PlayerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRun:
		return "run"
	case StateJump:
		return "jump"
	case StateFall:
		return "fall"
	case StateClimb:
		return "climb"
	case StateSwing:
		return "swing"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Player is Harry. X is the center of his feet and Y their height.
type Player struct {
	X, Y         float64
	VX, VY       float64
	State        PlayerState
	OnGround     bool
	OnLadder     bool
	VineCooldown int
	Knockback    int
	DeathTimer   int
}

// Airborne reports whether the player is off the ground on purpose or not.
func (p Player) Airborne() bool {
	return p.State == StateJump || p.State == StateFall
}

// Underground reports whether the player is in the tunnel.
func (p Player) Underground() bool {
	return p.Y >= UndergroundY-15
}

// Log is a rolling or resting log.
type Log struct {
	X       float64
	Rolling bool
}

// Croc is a crocodile whose mouth opens on a timer.
type Croc struct {
	X     float64
	Timer int
}

// Open reports whether the crocodile's mouth is open.
func (c Croc) Open() bool {
	return c.Timer >= crocOpenAt
}

// Scorpion patrols the tunnel.
type Scorpion struct {
	X, VX float64
}

// Vine is a pendulum hanging from the canopy.
type Vine struct {
	PivotX, PivotY float64
	Length         float64
	Angle, Spin    float64
}

// Tip returns the end of the vine.
func (v Vine) Tip() core.Vec {
	return core.Vec{
		X: v.PivotX + math.Sin(v.Angle)*v.Length,
		Y: v.PivotY + math.Cos(v.Angle)*v.Length,
	}
}

// World is the complete simulation state. The live objects of the current
// room are copied out of its Room and change freely.
type World struct {
	Room      int
	Player    Player
	Logs      []Log
	Crocs     []Croc
	Scorpions []Scorpion
	Vines     []Vine
	Breath    float64 // 0 closed to 1 fully open for tar and quicksand
	Collected map[int]bool
	FireHeld  bool
	Score     int
	Lives     int
	TimeLeft  int
	Clock     int
	Over      bool
	Won       bool
	Tick      int
}

// Game implements registry.Game.
type Game struct {
	w         World
	room      Room
	rooms     *Rooms
	treasures int
	cfg       core.RuntimeConfig
	sound     core.Signal
}

// New creates a new Pitfall game instance.
func New() *Game {
	return &Game{rooms: NewRooms(), treasures: len(TreasureRooms())}
}

func (g *Game) ID() string    { return "pitfall" }
func (g *Game) Title() string { return "Pitfall!" }

func (g *Game) Description() string {
	return "Swing, jump and climb through the jungle collecting treasure before time runs out."
}

func (g *Game) Controls() []string {
	return []string{"Left/Right: Run", "Space: Jump / Let Go", "Up/Down: Climb", "Down: Let Go of Vine"}
}

// Reset starts a fresh expedition in room 0.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.sound = cfg.Sound()
	g.w = World{
		Player:    Player{X: 50, Y: GroundY, OnGround: true},
		Collected: make(map[int]bool),
		Score:     StartScore,
		Lives:     cfg.LivesOr(StartLives),
		TimeLeft:  TimeLimit,
	}
	g.enter(0)
}

// Room returns the layout of the current screen.
func (g *Game) Room() Room {
	return g.room
}

// enter loads room i and copies its objects into live actors.
func (g *Game) enter(i int) {
	g.room = g.rooms.Get(i)
	g.w.Room = g.room.Index
	g.w.Logs = g.w.Logs[:0]
	g.w.Crocs = g.w.Crocs[:0]
	g.w.Scorpions = g.w.Scorpions[:0]
	g.w.Vines = g.w.Vines[:0]
	g.w.Breath = 0
	for _, o := range g.room.Items {
		switch o.Kind {
		case KindLog:
			g.w.Logs = append(g.w.Logs, Log{X: o.X, Rolling: o.Rolling})
		case KindCroc:
			g.w.Crocs = append(g.w.Crocs, Croc{X: o.X, Timer: o.Phase})
		case KindScorpion:
			g.w.Scorpions = append(g.w.Scorpions, Scorpion{X: o.X, VX: 1})
		case KindVine:
			g.w.Vines = append(g.w.Vines, Vine{
				PivotX: o.X,
				PivotY: vinePivotY,
				Length: vineLength,
				Angle:  math.Pi / 4,
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
	fire := in.Has(core.ActionFire)
	pressed := fire && !g.w.FireHeld
	g.w.FireHeld = fire

	p := &g.w.Player
	switch p.State {
	case StateIdle, StateRun, StateJump, StateFall, StateClimb, StateSwing:
	case StateDead:
		g.dying()
		g.clockTick()
		return core.StepResult{State: g.State()}
	default:
		p.State = StateIdle
	}

	g.animate()
	g.move(in, fire)
	g.floor()
	if p.Y > abyss {
		g.kill(DeathPenalty)
	}
	g.rollLogs()
	g.touchHazards()
	g.climb(in)
	g.swing(in, pressed)
	g.collect()
	g.tunnelWall()
	g.leaveScreen()
	g.clockTick()
	return core.StepResult{State: g.State()}
}

// dying runs the death animation, then spends a life and drops Harry in
// from the canopy.
func (g *Game) dying() {
	p := &g.w.Player
	p.DeathTimer--
	if p.DeathTimer > 0 {
		return
	}
	g.w.Lives--
	if g.w.Lives <= 0 {
		g.w.Lives = 0
		g.w.Over = true
		return
	}
	*p = Player{X: respawnX, Y: respawnY, State: StateFall}
}

func (g *Game) clockTick() {
	if g.w.Over {
		return
	}
	g.w.Clock++
	if g.w.Clock%ticksPerSec == 0 {
		g.w.TimeLeft--
	}
	if g.w.TimeLeft <= 0 {
		g.w.TimeLeft = 0
		g.w.Over = true
	}
}

// animate advances the timers of the room: crocodile mouths, the
// scorpion's patrol and the breathing of tar and quicksand.
func (g *Game) animate() {
	if g.w.Player.Knockback > 0 {
		g.w.Player.Knockback--
	}
	for i := range g.w.Crocs {
		g.w.Crocs[i].Timer = (g.w.Crocs[i].Timer + 1) % crocCycle
	}
	speed := g.cfg.Speed(ScorpionSpeed, g.w.Score, g.w.Tick)
	for i := range g.w.Scorpions {
		s := &g.w.Scorpions[i]
		s.X += s.VX * speed
		if s.X > WorldW-30 || s.X < 30 {
			s.VX = -s.VX
		}
	}
	if g.room.Scene.Breathes() {
		// Opens over three fifths of the cycle and closes over the rest.
		pos := float64(g.w.Clock%breathCycle) / breathCycle
		if pos < 0.6 {
			g.w.Breath = pos / 0.6
		} else {
			g.w.Breath = 1 - (pos-0.6)/0.4
		}
	}
}

func (g *Game) move(in core.InputFrame, fire bool) {
	p := &g.w.Player
	if p.VineCooldown > 0 {
		p.VineCooldown--
	}
	if p.State != StateSwing {
		p.VX = in.Horizontal() * RunSpeed
	}
	if p.OnGround && (p.State == StateIdle || p.State == StateRun) {
		if p.VX != 0 {
			p.State = StateRun
		} else {
			p.State = StateIdle
		}
	}
	// No jumping in the tunnel; the ladder is the way up.
	if fire && p.OnGround && p.State != StateClimb && p.Y <= GroundY {
		p.VY = JumpForce
		p.OnGround = false
		p.State = StateJump
		g.sound.Tone(200, 0.1, core.WaveSquare, core.ToneVolume)
	}
	if !p.OnGround && p.State != StateClimb && p.State != StateSwing {
		p.VY += Gravity
	}
	p.X += p.VX
	p.Y += p.VY
}

// inHole reports whether x is over open ground in this room.
func (g *Game) inHole(x float64) bool {
	switch {
	case !g.room.Scene.Holes():
		return false
	case g.room.Scene == SceneTriplePit:
		return (x > 180 && x < 300) || (x > 340 && x < 460) || (x > 500 && x < 620)
	default:
		return x > 300 && x < 500
	}
}

// floor resolves footing: crocodile heads, holes, tar, quicksand, the
// jungle floor and the tunnel floor.
func (g *Game) floor() {
	p := &g.w.Player
	if p.OnLadder || p.State == StateClimb || p.State == StateSwing {
		return
	}
	onSurface := math.Abs(p.Y-GroundY) < 10 && p.State != StateJump
	switch {
	case p.Y < UndergroundY-10 && g.inHole(p.X):
		onHead, bitten := false, false
		for _, c := range g.w.Crocs {
			if math.Abs(p.X-c.X) < 25 && math.Abs(p.Y-GroundY) < 15 {
				if c.Open() {
					bitten = true
					break
				}
				onHead = true
			}
		}
		switch {
		case bitten:
			g.kill(DeathPenalty)
			return
		case onHead && p.VY >= 0 && p.Y >= GroundY-10:
			g.land(GroundY)
		case !onHead && p.Y >= GroundY && p.OnGround:
			p.OnGround = false
			p.State = StateFall
			p.VX = 0
			p.VY = 2
			g.w.Score = max(0, g.w.Score-FallPenalty)
			g.sound.Sweep(300, 80, 0.2, core.WaveSawtooth, core.SweepVolume)
		}
	case g.room.Scene == SceneTarPit && g.w.Breath > 0.5 && p.X > 300 && p.X < 500 && onSurface,
		g.room.Scene == SceneQuicksand && g.w.Breath > 0.5 && p.X > 330 && p.X < 470 && onSurface:
		g.kill(DeathPenalty)
		return
	default:
		if p.Y > GroundY && p.Y < UndergroundY-10 && p.VY >= 0 {
			g.land(GroundY)
		}
	}
	if p.Y > UndergroundY && p.VY >= 0 {
		g.land(UndergroundY)
	}
}

func (g *Game) land(y float64) {
	p := &g.w.Player
	p.Y = y
	p.VY = 0
	p.OnGround = true
	if p.VX != 0 {
		p.State = StateRun
	} else {
		p.State = StateIdle
	}
}

func (g *Game) kill(penalty int) {
	p := &g.w.Player
	if p.State == StateDead {
		return
	}
	p.State = StateDead
	p.DeathTimer = DeathTicks
	p.VX, p.VY = 0, 0
	p.OnLadder = false
	g.w.Score = max(0, g.w.Score-penalty)
	g.sound.Sweep(440, 262, 1.0, core.WaveSquare, core.SweepVolume)
}

func (g *Game) rollLogs() {
	speed := g.cfg.Speed(LogSpeed, g.w.Score, g.w.Tick)
	for i := range g.w.Logs {
		l := &g.w.Logs[i]
		if !l.Rolling {
			continue
		}
		l.X -= speed
		if l.X < -20 {
			l.X = WorldW + 20
		}
	}
}

// touchHazards drains points on a log and kills on fire, snake or
// scorpion. The pass ends at the first death.
func (g *Game) touchHazards() {
	p := &g.w.Player
	if p.State == StateDead {
		return
	}
	onSurface := math.Abs(p.Y-GroundY) < 10 && !p.Airborne()
	if onSurface {
		for _, l := range g.w.Logs {
			if math.Abs(p.X-l.X) >= 18 {
				continue
			}
			if g.w.Clock%logDrainEvery == 0 {
				g.w.Score = max(0, g.w.Score-LogDrain)
			}
			if p.Knockback <= 0 {
				if p.X > l.X {
					p.X += knockback
				} else {
					p.X -= knockback
				}
				p.Knockback = knockbackTime
				g.sound.Tone(120, 0.05, core.WaveSquare, core.ToneVolume)
			}
		}
		for _, o := range g.room.Items {
			if (o.Kind == KindFire || o.Kind == KindSnake) && math.Abs(p.X-o.X) < 15 {
				g.kill(DeathPenalty)
				return
			}
		}
	}
	if p.Y >= UndergroundY-10 {
		for _, s := range g.w.Scorpions {
			if math.Abs(p.X-s.X) < 15 {
				g.kill(DeathPenalty)
				return
			}
		}
	}
}

// climb handles the ladder between the pit and the tunnel.
func (g *Game) climb(in core.InputFrame) {
	p := &g.w.Player
	ladder, ok := g.room.Find(KindLadder)
	if !ok || p.State == StateDead || p.State == StateSwing {
		return
	}
	if math.Abs(p.X-ladder.X) >= 15 {
		if p.OnLadder {
			p.OnLadder = false
			p.State = StateFall
		}
		return
	}
	up, down := in.Has(core.ActionUp), in.Has(core.ActionDown)
	if !p.OnLadder && (p.Y < GroundY || !up && !down) {
		return
	}
	p.State = StateClimb
	p.OnLadder = true
	p.OnGround = false
	p.VX, p.VY = 0, 0
	p.X = ladder.X
	if up {
		p.Y -= 2
	}
	if down {
		p.Y += 2
	}
	if h := in.Horizontal(); h != 0 {
		p.X = ladder.X + h*50
		p.OnLadder = false
		p.State = StateFall
		return
	}
	switch {
	case p.Y <= GroundY:
		// Out of the pit onto solid ground on its left.
		p.X = 250
		if g.room.Scene == SceneTriplePit {
			p.X = 320
		}
		p.OnLadder = false
		g.land(GroundY)
	case p.Y >= UndergroundY:
		p.OnLadder = false
		g.land(UndergroundY)
	}
}

// swing moves every vine and lets an airborne player catch one. A caught
// player rides the tip until Down or a fresh press of Fire lets go.
func (g *Game) swing(in core.InputFrame, pressed bool) {
	p := &g.w.Player
	for i := range g.w.Vines {
		v := &g.w.Vines[i]
		v.Spin += -0.6 / v.Length * math.Sin(v.Angle)
		v.Angle += v.Spin
		v.Spin *= vineDamping
		if math.Abs(v.Angle) < 0.05 && math.Abs(v.Spin) < 0.002 {
			v.Spin = 0.03
		}
		tip := v.Tip()
		if p.State != StateSwing && p.State != StateDead && p.VineCooldown <= 0 && !p.OnGround &&
			math.Abs(p.X-tip.X) < 40 && math.Abs(p.Y-tip.Y) < 60 {
			p.State = StateSwing
			p.OnLadder = false
			p.VY = 0
			g.w.Score += VinePoints
			g.sound.Sweep(200, 600, 0.15, core.WaveSawtooth, core.SweepVolume)
			pressed = false
		}
	}
	if p.State != StateSwing || len(g.w.Vines) == 0 {
		return
	}
	v := g.w.Vines[0]
	tip := v.Tip()
	p.X, p.Y = tip.X, tip.Y
	if in.Has(core.ActionDown) || pressed {
		p.State = StateJump
		p.VX = fling(v.Spin * 150)
		p.VY = -6
		p.VineCooldown = vineCooldown
		g.sound.Tone(200, 0.1, core.WaveSquare, core.ToneVolume)
	}
}

// fling bounds a release speed to between 4 and 8 either way.
func fling(vx float64) float64 {
	switch {
	case vx > 0:
		return core.ClampF(vx, 4, 8)
	case vx < 0:
		return core.ClampF(vx, -8, -4)
	default:
		return 0
	}
}

// collect banks the room's treasure once per expedition.
func (g *Game) collect() {
	t, ok := g.room.Find(KindTreasure)
	p := g.w.Player
	if !ok || g.w.Collected[g.w.Room] || p.State == StateDead {
		return
	}
	if math.Abs(p.X-t.X) >= 20 || math.Abs(p.Y-GroundY) >= 10 {
		return
	}
	g.w.Collected[g.w.Room] = true
	g.w.Score += t.Treasure.Value()
	g.sound.Sweep(523, 1047, 0.3, core.WaveSquare, core.SweepVolume)
	if len(g.w.Collected) >= g.treasures {
		g.w.Won = true
		g.w.Over = true
	}
}

// tunnelWall stops the player at the brick wall underground.
func (g *Game) tunnelWall() {
	p := &g.w.Player
	if !p.Underground() {
		return
	}
	wall := g.room.WallX()
	if p.X <= wall-20 || p.X >= wall+20 {
		return
	}
	switch {
	case p.VX > 0 && p.X < wall:
		p.X = wall - 20
		p.VX = 0
	case p.VX < 0 && p.X > wall:
		p.X = wall + 20
		p.VX = 0
	}
}

// leaveScreen moves to the next room when the player runs off an edge.
// The tunnel skips three rooms at a time.
func (g *Game) leaveScreen() {
	p := &g.w.Player
	if p.X <= WorldW && p.X >= 0 {
		return
	}
	step := 1
	if p.Y > UndergroundY-20 {
		step = 3
	}
	if p.X > WorldW {
		g.enter(g.w.Room + step)
		p.X = 10
	} else {
		g.enter(g.w.Room - step)
		p.X = WorldW - 10
	}
	if p.State == StateSwing {
		p.State = StateFall
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.w.Score,
		Lives:    g.w.Lives,
		Level:    g.w.Room,
		GameOver: g.w.Over,
		Won:      g.w.Won,
	}
}

// ResetOnTakeover is false: Harry keeps running from where the demo left him.
func (g *Game) ResetOnTakeover() bool { return false }

// Snapshot returns a copy of the world with its own slices and set.
func (g *Game) Snapshot() World {
	w := g.w
	w.Logs = append([]Log(nil), g.w.Logs...)
	w.Crocs = append([]Croc(nil), g.w.Crocs...)
	w.Scorpions = append([]Scorpion(nil), g.w.Scorpions...)
	w.Vines = append([]Vine(nil), g.w.Vines...)
	w.Collected = make(map[int]bool, len(g.w.Collected))
	for k, v := range g.w.Collected {
		w.Collected[k] = v
	}
	return w
}

func init() {
	registry.Register("pitfall", func() registry.Game {
		return New()
	})
}
