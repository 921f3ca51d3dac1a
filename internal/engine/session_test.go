package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// stubGame records how the session drives it.
type stubGame struct {
	resets     int
	autopilots int
	frames     []core.InputFrame
	state      core.GameState
	panicStep  bool
	overAfter  int // steps until game over, 0 for never
	lastAudio  core.Signal
	world      [2]float64
}

func (g *stubGame) ID() string          { return "stub" }
func (g *stubGame) Title() string       { return "Stub" }
func (g *stubGame) Description() string { return "test double" }
func (g *stubGame) Controls() []string  { return []string{"Arrows: move"} }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.frames = nil
	g.state = core.GameState{Lives: 3}
	g.lastAudio = cfg.Audio
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if g.panicStep {
		panic("boom")
	}
	g.frames = append(g.frames, in.Clone())
	if g.overAfter > 0 && len(g.frames) >= g.overAfter {
		g.state.GameOver = true
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Autopilot(frame *core.InputFrame) {
	g.autopilots++
	frame.Set(core.ActionRight)
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 1, "stub world") }
func (g *stubGame) State() core.GameState   { return g.state }

func (g *stubGame) WorldSize() (float64, float64) { return g.world[0], g.world[1] }

func newStubSession(g *stubGame) *Session {
	return NewSession(g, Options{TickRate: 60, Seed: 42, AttractIdle: time.Second})
}

func TestSessionDefersResetUntilSized(t *testing.T) {
	g := &stubGame{}
	s := newStubSession(g)

	assert.Equal(t, 0, s.Advance(time.Second))
	s.Tick()
	assert.Equal(t, 0, g.resets)
	assert.False(t, s.Started())

	s.Resize(0, 24)
	assert.Equal(t, 0, g.resets, "zero width is not a usable layout")

	s.Resize(80, 24)
	assert.Equal(t, 1, g.resets)
	assert.True(t, s.Started())
	assert.True(t, s.Attract())

	s.Resize(100, 30)
	assert.Equal(t, 1, g.resets, "later resizes keep the world")
}

func TestSessionAttractThenTakeOver(t *testing.T) {
	g := &stubGame{}
	s := newStubSession(g)
	s.Resize(80, 24)

	s.Tick()
	require.Len(t, g.frames, 1)
	assert.True(t, g.frames[0].Has(core.ActionRight), "autopilot writes the frame in attract mode")
	assert.Equal(t, 1, g.autopilots)

	s.Press(core.ActionLeft)
	assert.False(t, s.Attract())
	assert.Equal(t, 2, g.resets, "taking over restarts the game")

	s.Tick()
	require.Len(t, g.frames, 1)
	assert.True(t, g.frames[0].Has(core.ActionLeft))
	assert.False(t, g.frames[0].Has(core.ActionRight), "only the human writes after takeover")
	assert.Equal(t, 1, g.autopilots)
}

// keepingGame continues the demo world when a player takes over.
type keepingGame struct {
	stubGame
}

func (g *keepingGame) ResetOnTakeover() bool { return false }

func TestSessionTakeOverKeepsWorldWhenGameAsks(t *testing.T) {
	g := &keepingGame{}
	s := NewSession(g, Options{TickRate: 60, Seed: 42, AttractIdle: time.Second})
	s.Resize(80, 24)

	s.Tick()
	s.Tick()
	s.Press(core.ActionLeft)
	assert.False(t, s.Attract())
	assert.Equal(t, 1, g.resets, "the demo world stays")

	s.Tick()
	require.Len(t, g.frames, 3)
	assert.True(t, g.frames[2].Has(core.ActionLeft))
	assert.False(t, g.frames[2].Has(core.ActionRight))
}

func TestSessionTakeOverAfterDemoGameOverRestarts(t *testing.T) {
	g := &keepingGame{stubGame{overAfter: 1}}
	s := NewSession(g, Options{TickRate: 60, Seed: 42, AttractIdle: time.Second})
	s.Resize(80, 24)

	s.Tick()
	require.True(t, s.State().GameOver)
	s.Press(core.ActionLeft)
	assert.False(t, s.Attract())
	assert.Equal(t, 2, g.resets, "a finished demo is never handed over")
}

func TestSessionControlKeysDoNotTakeOver(t *testing.T) {
	g := &stubGame{}
	s := newStubSession(g)
	s.Resize(80, 24)

	s.Press(core.ActionPause)
	assert.True(t, s.Paused())
	assert.True(t, s.Attract())

	s.Tick()
	assert.Empty(t, g.frames, "paused session does not step")

	s.Press(core.ActionLeft)
	assert.True(t, s.Attract(), "gameplay keys are ignored while paused")

	s.Press(core.ActionConfirm)
	assert.False(t, s.Paused())
}

func TestSessionGameOverRearmsAfterIdle(t *testing.T) {
	g := &stubGame{overAfter: 3}
	s := newStubSession(g)
	s.Resize(80, 24)
	s.Press(core.ActionFire)

	var reported []core.GameState
	s.OnGameOver(func(st core.GameState) { reported = append(reported, st) })

	for i := 0; i < 3; i++ {
		s.Tick()
	}
	assert.True(t, s.State().GameOver)
	assert.Len(t, reported, 1)
	assert.False(t, s.Attract())

	// One second of idle at 60Hz, including the game-over tick itself.
	for i := 0; i < 59; i++ {
		s.Tick()
	}
	assert.True(t, s.Attract(), "autopilot re-arms after idle time")
	assert.Len(t, reported, 1, "game over is reported once")
}

func TestSessionRestartKeepsHuman(t *testing.T) {
	g := &stubGame{overAfter: 1}
	s := newStubSession(g)
	s.Resize(80, 24)
	s.Press(core.ActionUp)
	s.Tick()
	require.True(t, s.State().GameOver)

	s.Press(core.ActionRestart)
	assert.False(t, s.Attract())
	assert.False(t, s.State().GameOver)
}

func TestSessionAttractAutoRestarts(t *testing.T) {
	g := &stubGame{overAfter: 1}
	s := newStubSession(g)
	s.Resize(80, 24)

	for i := 0; i < attractRestartTicks; i++ {
		s.Tick()
	}
	assert.Equal(t, 2, g.resets)
	assert.True(t, s.Attract())
}

func TestSessionRecoversPanic(t *testing.T) {
	g := &stubGame{panicStep: true}
	s := newStubSession(g)
	s.Resize(60, 12)

	assert.NotPanics(t, func() { s.Tick() })
	require.Error(t, s.Fault())
	assert.Contains(t, s.Fault().Error(), "boom")

	out := s.Render().String()
	assert.True(t, strings.Contains(out, "stopped unexpectedly"), out)
	assert.Equal(t, 0, s.Advance(time.Second), "a faulted session stays stopped")
}

func TestSessionAimMapsThroughViewport(t *testing.T) {
	g := &stubGame{world: [2]float64{800, 600}}
	s := newStubSession(g)
	s.Resize(200, 100)

	s.Aim(0, 0) // HUD row
	s.Press(core.ActionFire)
	s.Tick()
	require.Len(t, g.frames, 1)
	assert.False(t, g.frames[0].HasAim)

	vp := s.Viewport(800, 600)
	s.Aim(vp.OffsetX+100, vp.OffsetY+10)
	s.Tick()
	require.Len(t, g.frames, 2)
	assert.True(t, g.frames[1].HasAim)
	assert.InDelta(t, 402, g.frames[1].Aim.X, 0.001)
	assert.InDelta(t, 84, g.frames[1].Aim.Y, 0.001)
}

func TestSessionRenderHUD(t *testing.T) {
	g := &stubGame{}
	s := newStubSession(g)
	s.Resize(80, 10)

	out := s.Render()
	assert.Contains(t, out.Row(0), "STUB")
	assert.Contains(t, out.Row(0), "DEMO")
	assert.Contains(t, out.Row(1), "stub world")
}

func TestSessionPassesAudio(t *testing.T) {
	g := &stubGame{}
	s := NewSession(g, Options{Audio: core.Silent{}})
	s.Resize(10, 10)
	assert.Equal(t, core.Silent{}, g.lastAudio)
}
