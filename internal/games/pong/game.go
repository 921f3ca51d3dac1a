// Package pong implements Pong against a CPU opponent.
// The player controls the left paddle, the CPU the right one.
package pong

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Logical playfield and actor sizes.
const (
	WorldW = 800
	WorldH = 600

	PaddleWidth  = 10
	PaddleHeight = 80
	PaddleOffset = 20
	BallSize     = 8
)

// Speeds in units per tick.
const (
	BaseSpeed   = 4.0
	PlayerSpeed = BaseSpeed * 1.5
	CPUSpeed    = 3.5
	MaxSpeed    = 14.0
	SpeedUp     = 1.05
	Deflection  = 0.75 // Share of the speed turned vertical at the paddle tip
	DeadZone    = 10.0 // Paddles ignore the ball this close to their center
	WinScore    = 11
)

// Ball is the ball's top-left corner and velocity.
type Ball struct {
	X, Y   float64
	DX, DY float64
}

// Box returns the ball's bounding box.
func (b Ball) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: BallSize, H: BallSize}
}

// Speed returns the length of the ball velocity.
func (b Ball) Speed() float64 {
	return math.Hypot(b.DX, b.DY)
}

// World is the complete simulation state.
type World struct {
	Ball       Ball
	LeftY      float64 // Top of the player paddle
	RightY     float64 // Top of the CPU paddle
	LeftScore  int
	RightScore int
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

// New creates a new Pong game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "pong" }
func (g *Game) Title() string { return "Pong" }

// Description returns the menu blurb.
func (g *Game) Description() string {
	return "The classic table tennis arcade game. Defeat the AI by hitting the ball past their paddle."
}

// Controls returns the key help.
func (g *Game) Controls() []string {
	return []string{"Arrow Up/Down: Move Left Paddle"}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{}
	g.serve()
}

// serve puts the ball in the middle with a random direction and scatters
// the paddles, as the cabinet does after every point.
func (g *Game) serve() {
	dir := -1.0
	if g.rng.Float64() > 0.5 {
		dir = 1
	}
	g.w.Ball = Ball{
		X:  WorldW / 2,
		Y:  WorldH / 2,
		DX: dir * BaseSpeed,
		DY: (g.rng.Float64()*2 - 1) * BaseSpeed,
	}
	maxY := float64(WorldH - PaddleHeight)
	g.w.LeftY = g.rng.Float64() * maxY
	g.w.RightY = g.rng.Float64() * maxY
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++

	g.w.LeftY += in.Vertical() * PlayerSpeed
	g.w.RightY = track(g.w.RightY, g.w.Ball.Y, g.cfg.Speed(CPUSpeed, g.w.LeftScore, g.w.Tick))
	g.w.LeftY = core.ClampF(g.w.LeftY, 0, WorldH-PaddleHeight)
	g.w.RightY = core.ClampF(g.w.RightY, 0, WorldH-PaddleHeight)

	g.moveBall()
	return core.StepResult{State: g.State()}
}

// track moves a paddle toward y unless the ball is inside the dead zone.
func track(top, y, speed float64) float64 {
	center := top + PaddleHeight/2
	switch {
	case center < y-DeadZone:
		return top + speed
	case center > y+DeadZone:
		return top - speed
	}
	return top
}

func (g *Game) moveBall() {
	b := &g.w.Ball
	if !core.Finite(core.Vec{X: b.X, Y: b.Y}) || !core.Finite(core.Vec{X: b.DX, Y: b.DY}) {
		g.serve()
		return
	}
	v := core.CapSpeed(core.Vec{X: b.DX, Y: b.DY}, MaxSpeed)
	b.DX, b.DY = v.X, v.Y
	b.X += b.DX
	b.Y += b.DY

	switch {
	case b.Y <= 0:
		b.Y = 0
		b.DY = math.Abs(b.DY)
		g.sound.Tone(300, 0.05, core.WaveSquare, core.ToneVolume)
	case b.Y+BallSize >= WorldH:
		b.Y = WorldH - BallSize
		b.DY = -math.Abs(b.DY)
		g.sound.Tone(300, 0.05, core.WaveSquare, core.ToneVolume)
	}

	left := core.Box{X: PaddleOffset, Y: g.w.LeftY, W: PaddleWidth, H: PaddleHeight}
	right := core.Box{X: WorldW - PaddleOffset - PaddleWidth, Y: g.w.RightY, W: PaddleWidth, H: PaddleHeight}
	switch {
	case b.DX < 0 && b.Box().Overlaps(left):
		g.bounce(left, 1)
		b.X = left.Right() + 1
	case b.DX > 0 && b.Box().Overlaps(right):
		g.bounce(right, -1)
		b.X = right.X - BallSize - 1
	}

	switch {
	case b.X < 0:
		g.point(&g.w.RightScore)
	case b.X > WorldW:
		g.point(&g.w.LeftScore)
	}
}

// bounce sends the ball back in direction dir. The vertical share of the
// new velocity is proportional to how far from the paddle center the ball
// struck, and the speed grows by SpeedUp up to MaxSpeed.
func (g *Game) bounce(paddle core.Box, dir float64) {
	b := &g.w.Ball
	offset := Offset(paddle, b.Box())
	speed := math.Min(b.Speed()*SpeedUp, MaxSpeed)
	b.DY = offset * speed * Deflection
	b.DX = dir * math.Sqrt(speed*speed-b.DY*b.DY)
	g.sound.Tone(400, 0.1, core.WaveSquare, core.ToneVolume)
}

// Offset returns where ball hit paddle, from -1 at the top tip to 1 at the
// bottom tip.
func Offset(paddle, ball core.Box) float64 {
	half := (paddle.H + ball.H) / 2
	return core.ClampF((ball.Center().Y-paddle.Center().Y)/half, -1, 1)
}

func (g *Game) point(score *int) {
	*score++
	g.sound.Tone(200, 0.2, core.WaveSawtooth, core.ToneVolume)
	if *score >= WinScore {
		g.w.Over = true
		return
	}
	g.serve()
}

// Autopilot tracks the ball with the left paddle.
func (g *Game) Autopilot(frame *core.InputFrame) {
	center := g.w.LeftY + PaddleHeight/2
	switch {
	case center < g.w.Ball.Y-DeadZone:
		frame.Set(core.ActionDown)
	case center > g.w.Ball.Y+DeadZone:
		frame.Set(core.ActionUp)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.w.LeftScore,
		GameOver: g.w.Over,
		Won:      g.w.Over && g.w.LeftScore >= WinScore,
	}
}

// ResetOnTakeover is false: the rally in progress carries on.
func (g *Game) ResetOnTakeover() bool { return false }

// Snapshot returns a copy of the world.
func (g *Game) Snapshot() World {
	return g.w
}

func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}
