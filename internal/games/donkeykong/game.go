// Package donkeykong implements the girder stage of Donkey Kong: climb to
// the top while the ape rolls barrels down the slopes.
package donkeykong

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Logical playfield.
const (
	WorldW = 224
	WorldH = 256
)

// Player physics.
const (
	Gravity    = 0.25
	JumpForce  = -4.5
	WalkSpeed  = 1.5
	ClimbSpeed = 1.2
	MaxFall    = 6.0

	PlayerW = 11
	PlayerH = 16
	spawnX  = 24
	spawnY  = 216

	landWindow  = 8    // Feet this far below a surface still land on it
	ladderReach = 8    // Horizontal distance from a ladder's axis to grab it
	surfaceEps  = 1e-6 // Rounding slack when feet rest exactly on a surface
)

// Scoring and timers.
const (
	DeathTicks = 90
	WinTicks   = 90
	WinBonus   = 1000
	JumpBonus  = 100
	StartLives = 3
)

// Goal area on the top girder.
const (
	goalFeet  = 56
	goalLeft  = 72
	goalRight = 152
)

// PlayerState is what the player is doing.
type PlayerState int

const (
	StateIdle PlayerState = iota
	StateWalk
	StateJump
	StateClimb
	StateDead
)

func (s PlayerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalk:
		return "walk"
	case StateJump:
		return "jump"
	case StateClimb:
		return "climb"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Player is the jumpman. X, Y is the top-left corner.
type Player struct {
	X, Y   float64
	VX, VY float64
	Facing float64
	State  PlayerState
}

// Feet returns the height of the player's soles.
func (p Player) Feet() float64 { return p.Y + PlayerH }

// CenterX returns the horizontal center.
func (p Player) CenterX() float64 { return p.X + PlayerW/2.0 }

// Grounded reports whether the player stands on a girder.
func (p Player) Grounded() bool { return p.State == StateIdle || p.State == StateWalk }

// World is the complete simulation state.
type World struct {
	Player      Player
	Barrels     []Barrel
	BarrelTimer int
	NextBarrel  int
	DeathTimer  int
	WinTimer    int
	Score       int
	Lives       int
	Stage       int
	Over        bool
	Tick        int
}

// Game implements registry.Game.
type Game struct {
	w     World
	level Level
	cfg   core.RuntimeConfig
	rng   core.RNG
	sound core.Signal
}

// New creates a new Donkey Kong game instance.
func New() *Game {
	return &Game{level: NewLevel()}
}

func (g *Game) ID() string    { return "donkeykong" }
func (g *Game) Title() string { return "Donkey Kong" }

func (g *Game) Description() string {
	return "Climb the construction site to save the damsel from the giant ape."
}

func (g *Game) Controls() []string {
	return []string{"Arrow Left/Right: Move", "Arrow Up/Down: Climb Ladder", "Space: Jump"}
}

// Reset starts a new game on stage 1.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{
		Lives: cfg.LivesOr(StartLives),
		Stage: 1,
	}
	g.resetStage()
}

// resetStage puts the player back at the bottom and clears the barrels.
func (g *Game) resetStage() {
	g.w.Player = Player{X: spawnX, Y: spawnY, Facing: 1, State: StateIdle}
	g.w.Barrels = g.w.Barrels[:0]
	g.w.BarrelTimer = firstBarrel
	g.w.DeathTimer = 0
	g.w.WinTimer = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++

	if g.w.Player.State == StateDead {
		g.w.DeathTimer--
		if g.w.DeathTimer <= 0 {
			g.w.Lives--
			if g.w.Lives <= 0 {
				g.w.Lives = 0
				g.w.Over = true
			} else {
				g.resetStage()
			}
		}
		return core.StepResult{State: g.State()}
	}
	if g.w.WinTimer > 0 {
		g.w.WinTimer--
		if g.w.WinTimer == 0 {
			g.w.Score += WinBonus
			g.w.Stage++
			g.resetStage()
		}
		return core.StepResult{State: g.State()}
	}

	g.movePlayer(in)
	if g.w.Player.State != StateDead {
		g.stepBarrels()
		g.touchBarrels()
	}

	p := g.w.Player
	if p.State != StateDead && p.Feet() < goalFeet && p.X > goalLeft && p.X < goalRight {
		g.w.WinTimer = WinTicks
		g.sound.Sweep(400, 1000, 0.8, core.WaveSquare, core.SweepVolume)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) movePlayer(in core.InputFrame) {
	p := &g.w.Player
	up, down := in.Has(core.ActionUp), in.Has(core.ActionDown)
	ladder, onLadder := g.ladderAt(p.CenterX(), p.Feet())

	switch p.State {
	case StateClimb:
		p.VX, p.VY = 0, 0
		switch {
		case up:
			p.Y -= ClimbSpeed
		case down:
			p.Y += ClimbSpeed
		}
		if _, still := g.ladderAt(p.CenterX(), p.Feet()); !still {
			g.leaveLadder()
		}
		return
	case StateIdle, StateWalk, StateJump:
	default:
		p.State = StateIdle
	}

	grounded := p.Grounded()
	if grounded && onLadder && ((up && p.Feet() > ladder.Top) || (down && p.Feet() < ladder.Bottom-1)) {
		p.X = ladder.X - PlayerW/2.0
		p.VX, p.VY = 0, 0
		p.State = StateClimb
		return
	}

	dir := in.Horizontal()
	p.VX = dir * WalkSpeed
	if dir != 0 {
		p.Facing = dir
	}
	if grounded && in.Has(core.ActionFire) {
		p.VY = JumpForce
		p.State = StateJump
		g.sound.Tone(400, 0.08, core.WaveSquare, core.ToneVolume)
	}

	prevX, prevFeet := p.CenterX(), p.Feet()
	p.VY = math.Min(p.VY+Gravity, MaxFall)
	p.Y += p.VY
	p.X = core.ClampF(p.X+p.VX, 0, WorldW-PlayerW)
	g.land(prevX, prevFeet)

	if p.Y > WorldH+10 {
		g.kill()
	}
}

// land snaps a falling player onto the girder under their feet. Girders
// only hold from above: the feet must have been on or over the surface
// before the move, so a jump passes up through the girder overhead.
func (g *Game) land(prevX, prevFeet float64) {
	p := &g.w.Player
	if p.VY >= 0 {
		cx := p.CenterX()
		for _, pl := range g.level.Platforms {
			if !pl.Spans(cx) || prevFeet > pl.SurfaceY(prevX)+surfaceEps {
				continue
			}
			s := pl.SurfaceY(cx)
			if p.Feet() >= s && p.Feet() < s+landWindow {
				p.Y = s - PlayerH
				p.VY = 0
				if p.VX != 0 {
					p.State = StateWalk
				} else {
					p.State = StateIdle
				}
				return
			}
		}
	}
	p.State = StateJump
}

// leaveLadder ends a climb on the girder at either end of the ladder, or
// drops the player when there is none.
func (g *Game) leaveLadder() {
	p := &g.w.Player
	if pl, ok := g.level.standingOn(p.CenterX(), p.Feet(), 4, 6); ok {
		p.Y = pl.SurfaceY(p.CenterX()) - PlayerH
		p.State = StateIdle
		return
	}
	p.State = StateJump
}

// ladderAt returns the intact ladder a foot at (cx, feet) can hold on to.
// The grip runs from just above the upper girder down to just below the
// lower one so a climb can start from either end.
func (g *Game) ladderAt(cx, feet float64) (Ladder, bool) {
	for _, l := range g.level.Ladders {
		if l.Broken || math.Abs(cx-l.X) >= ladderReach {
			continue
		}
		if feet > l.Top-ladderInset-2 && feet <= l.Bottom+4 {
			return l, true
		}
	}
	return Ladder{}, false
}

// kill starts the death animation. A dying player cannot die again.
func (g *Game) kill() {
	p := &g.w.Player
	if p.State == StateDead {
		return
	}
	p.State = StateDead
	p.VX, p.VY = 0, 0
	g.w.DeathTimer = DeathTicks
	g.sound.Noise(0.3, 0.4)
	g.sound.Sweep(400, 80, 0.4, core.WaveSawtooth, core.SweepVolume)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.w.Score,
		Lives:    g.w.Lives,
		Level:    g.w.Stage,
		GameOver: g.w.Over,
	}
}

// Snapshot returns a copy of the world with its own barrel slice.
func (g *Game) Snapshot() World {
	w := g.w
	w.Barrels = append([]Barrel(nil), g.w.Barrels...)
	return w
}

func init() {
	registry.Register("donkeykong", func() registry.Game {
		return New()
	})
}
