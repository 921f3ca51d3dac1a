package defender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

// calm never jitters a lander.
type calm struct{}

func (calm) Float64() float64 { return 0.5 }
func (calm) Intn(n int) int   { return 0 }

func newGame(t *testing.T, rng core.RNG, rec *audio.Recorder) *Game {
	t.Helper()
	g := New()
	cfg := core.RuntimeConfig{Seed: 3, RNG: rng}
	if rec != nil {
		cfg.Audio = rec
	}
	g.Reset(cfg)
	return g
}

func hold(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestReset(t *testing.T) {
	g := newGame(t, nil, nil)
	w := g.Snapshot()

	assert.Equal(t, Ship{X: 200, Y: 300, VX: 3, Facing: 1}, w.Ship)
	require.Len(t, w.Landers, Landers)
	for _, l := range w.Landers {
		assert.GreaterOrEqual(t, l.X, 0.0)
		assert.Less(t, l.X, float64(WorldW))
		assert.GreaterOrEqual(t, l.Y, 50.0)
		assert.Less(t, l.Y, float64(WorldH-150))
	}
	require.Len(t, w.Terrain, WorldW/terrainStep+1)
	for _, h := range w.Terrain {
		assert.GreaterOrEqual(t, h, float64(WorldH-200))
		assert.LessOrEqual(t, h, float64(WorldH-20))
	}
	assert.Equal(t, float64(WorldH-100), w.Terrain[0])
	assert.Equal(t, StartLives, w.Lives)
}

func TestTerrainFollowsSeed(t *testing.T) {
	a := newGame(t, nil, nil).Snapshot().Terrain
	b := newGame(t, nil, nil).Snapshot().Terrain
	assert.Equal(t, a, b)

	other := New()
	other.Reset(core.RuntimeConfig{Seed: 4})
	assert.NotEqual(t, a, other.Snapshot().Terrain)
}

func TestShipHandling(t *testing.T) {
	t.Run("friction slows a coasting ship", func(t *testing.T) {
		g := newGame(t, calm{}, nil)
		g.w.Landers = nil
		g.Step(core.NewInputFrame())
		assert.InDelta(t, 3*FrictionX, g.w.Ship.VX, 1e-9)
		assert.InDelta(t, 200+3*FrictionX, g.w.Ship.X, 1e-9)
	})

	t.Run("speed is capped", func(t *testing.T) {
		g := newGame(t, calm{}, nil)
		g.w.Landers = []Lander{{X: 3900, Y: 100}}
		for i := 0; i < 100; i++ {
			g.Step(hold(core.ActionRight))
		}
		assert.LessOrEqual(t, g.w.Ship.VX, MaxSpeed)
		assert.Greater(t, g.w.Ship.VX, 7.0)
	})

	t.Run("turning flips facing", func(t *testing.T) {
		g := newGame(t, calm{}, nil)
		g.Step(hold(core.ActionLeft))
		assert.Equal(t, -1.0, g.w.Ship.Facing)
		g.Step(core.NewInputFrame())
		assert.Equal(t, -1.0, g.w.Ship.Facing, "facing holds without input")
	})

	t.Run("altitude stays between scanner and ground", func(t *testing.T) {
		g := newGame(t, calm{}, nil)
		g.w.Landers = []Lander{{X: 3900, Y: 100}}
		for i := 0; i < 100; i++ {
			g.Step(hold(core.ActionUp))
		}
		assert.Equal(t, float64(shipTop), g.w.Ship.Y)
		for i := 0; i < 200; i++ {
			g.Step(hold(core.ActionDown))
		}
		assert.Equal(t, float64(shipFloor), g.w.Ship.Y)
	})

	t.Run("world ends stop the ship", func(t *testing.T) {
		g := newGame(t, calm{}, nil)
		g.w.Landers = []Lander{{X: 3900, Y: 100}}
		for i := 0; i < 100; i++ {
			g.Step(hold(core.ActionLeft))
		}
		assert.Zero(t, g.w.Ship.X)
	})
}

func TestCamera(t *testing.T) {
	tests := []struct {
		shipX float64
		want  float64
	}{
		{shipX: 200, want: 0},
		{shipX: 2000, want: 1600},
		{shipX: 3950, want: WorldW - ViewW},
	}
	for _, tt := range tests {
		w := World{Ship: Ship{X: tt.shipX}}
		assert.Equal(t, tt.want, w.Camera(), "ship at %v", tt.shipX)
	}
}

func TestLaserCooldownAndLife(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, calm{}, rec)
	g.w.Landers = []Lander{{X: 3900, Y: 100}}

	fire := hold(core.ActionFire)
	for i := 0; i < LaserCooldown; i++ {
		g.Step(fire)
	}
	require.Len(t, g.w.Lasers, 1)
	g.Step(fire)
	assert.Len(t, g.w.Lasers, 2)
	assert.Equal(t, 2, rec.Count(audio.CueTone))

	for i := 0; i < LaserLife; i++ {
		g.Step(core.NewInputFrame())
	}
	assert.Empty(t, g.w.Lasers)
}

func TestLaserLeavesWorld(t *testing.T) {
	g := newGame(t, calm{}, nil)
	g.w.Landers = []Lander{{X: 2000, Y: 100}}
	g.w.Lasers = []Laser{
		{X: WorldW - 5, Y: 300, VX: LaserSpeed, Life: LaserLife},
		{X: 5, Y: 300, VX: -LaserSpeed, Life: LaserLife},
		{X: 1000, Y: 300, VX: LaserSpeed, Life: LaserLife},
	}

	g.moveLasers()
	require.Len(t, g.w.Lasers, 1)
	assert.Equal(t, 1000+LaserSpeed, g.w.Lasers[0].X)
}

func TestLaserDestroysLander(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, calm{}, rec)
	g.w.Landers = []Lander{{X: 300, Y: 300}, {X: 3900, Y: 100}}
	g.w.Lasers = []Laser{{X: 270, Y: 305, VX: LaserSpeed, Life: LaserLife}}

	g.Step(core.NewInputFrame())

	assert.Equal(t, LanderPoints, g.w.Score)
	require.Len(t, g.w.Landers, 1)
	assert.Equal(t, 3900.0, g.w.Landers[0].X)
	assert.Empty(t, g.w.Lasers)
	assert.Len(t, g.w.Sparks, sparkCount)
	assert.Equal(t, 1, rec.Count(audio.CueTone))
}

func TestLanderBounces(t *testing.T) {
	g := newGame(t, calm{}, nil)
	g.w.Landers = []Lander{{X: 3000, Y: MinimapH + 0.5, VX: 0, VY: -1}}
	g.Step(core.NewInputFrame())
	assert.Equal(t, 1.0, g.w.Landers[0].VY)

	g.w.Landers = []Lander{{X: WorldW - 0.5, Y: 300, VX: 1}}
	g.Step(core.NewInputFrame())
	assert.Equal(t, -1.0, g.w.Landers[0].VX)
}

func TestRammingCostsLife(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, calm{}, rec)
	g.w.Ship.VX = 0
	g.w.Landers = []Lander{{X: 205, Y: 300}, {X: 3900, Y: 100}}

	g.Step(core.NewInputFrame())
	assert.Equal(t, StartLives-1, g.w.Lives)
	assert.Equal(t, InvulnTicks, g.w.Ship.Invuln)
	assert.Len(t, g.w.Landers, 1)
	assert.Equal(t, 1, rec.Count(audio.CueNoise))

	g.w.Landers = append(g.w.Landers, Lander{X: g.w.Ship.X, Y: g.w.Ship.Y})
	g.Step(core.NewInputFrame())
	assert.Equal(t, StartLives-1, g.w.Lives, "shielded after a hit")
}

func TestLastLifeEndsGame(t *testing.T) {
	g := newGame(t, calm{}, nil)
	g.w.Lives = 1
	g.w.Ship.VX = 0
	g.w.Landers = []Lander{{X: 200, Y: 300}}

	res := g.Step(core.NewInputFrame())
	assert.True(t, res.State.GameOver)
	assert.Equal(t, 1, res.State.Level, "a lost game does not start a new wave")
}

func TestClearedWaveRespawns(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, calm{}, rec)
	g.w.Landers = []Lander{{X: 300, Y: 300}}
	g.w.Lasers = []Laser{{X: 290, Y: 300, VX: LaserSpeed, Life: LaserLife}}

	g.Step(core.NewInputFrame())

	assert.Equal(t, 2, g.w.Wave)
	assert.Len(t, g.w.Landers, Landers)
	assert.Equal(t, 1, rec.Count(audio.CueSweep))
}

func TestAutopilot(t *testing.T) {
	tests := []struct {
		name    string
		landers []Lander
		facing  float64
		tick    int
		want    []core.Action
		notWant []core.Action
	}{
		{
			name:    "patrols an empty sky",
			facing:  1,
			want:    []core.Action{core.ActionRight},
			notWant: []core.Action{core.ActionFire},
		},
		{
			name:    "chases and climbs",
			landers: []Lander{{X: 500, Y: 200}, {X: 3000, Y: 300}},
			facing:  1,
			tick:    3,
			want:    []core.Action{core.ActionRight, core.ActionUp},
			notWant: []core.Action{core.ActionFire},
		},
		{
			name:    "fires when facing and level",
			landers: []Lander{{X: 500, Y: 320}},
			facing:  1,
			tick:    20,
			want:    []core.Action{core.ActionRight, core.ActionDown, core.ActionFire},
		},
		{
			name:    "turns before firing",
			landers: []Lander{{X: 100, Y: 300}},
			facing:  1,
			tick:    20,
			want:    []core.Action{core.ActionLeft},
			notWant: []core.Action{core.ActionFire},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, calm{}, nil)
			g.w.Landers = tt.landers
			g.w.Ship.Facing = tt.facing
			g.w.Tick = tt.tick
			frame := core.NewInputFrame()
			g.Autopilot(&frame)
			for _, a := range tt.want {
				assert.True(t, frame.Has(a), "want %v", a)
			}
			for _, a := range tt.notWant {
				assert.False(t, frame.Has(a), "unexpected %v", a)
			}
		})
	}
}

func TestAutopilotRunIsDeterministic(t *testing.T) {
	run := func() World {
		g := New()
		g.Reset(core.RuntimeConfig{Seed: 42})
		for i := 0; i < 3000; i++ {
			frame := core.NewInputFrame()
			before := g.Snapshot()
			g.Autopilot(&frame)
			require.Equal(t, before, g.Snapshot(), "autopilot must not touch the world")
			g.Step(frame)
		}
		return g.Snapshot()
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
	assert.Positive(t, a.Score)
}

func TestRender(t *testing.T) {
	g := newGame(t, nil, nil)
	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "►")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "+")
}
