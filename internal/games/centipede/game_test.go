package centipede

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

func newGame(t *testing.T, rec *audio.Recorder) *Game {
	t.Helper()
	g := New()
	cfg := core.RuntimeConfig{Seed: 7}
	if rec != nil {
		cfg.Audio = rec
	}
	g.Reset(cfg)
	return g
}

// clearField removes the mushrooms and leaves a single segment crawling
// along the top-left corner.
func clearField(g *Game) {
	g.w.Mushrooms = nil
	g.w.Segments = []Segment{{X: 0, Y: 0, Dir: 1, Head: true}}
}

func hold(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestReset(t *testing.T) {
	g := newGame(t, nil)
	w := g.Snapshot()

	require.Len(t, w.Mushrooms, MushroomCount)
	for _, m := range w.Mushrooms {
		assert.Equal(t, MushroomHP, m.HP)
		assert.GreaterOrEqual(t, m.Y, float64(3*CellSize))
		assert.Less(t, m.X, float64(WorldW))
	}
	require.Len(t, w.Segments, Segments)
	assert.True(t, w.Segments[0].Head)
	assert.Equal(t, float64(WorldW/2), w.Segments[0].X)
	assert.Equal(t, float64(WorldW/2-9*CellSize), w.Segments[9].X)
	assert.False(t, w.Segments[1].Head)
	assert.Equal(t, float64(WorldW/2-CellSize/2), w.PlayerX)
	assert.Equal(t, float64(WorldH-CellSize), w.PlayerY)
	assert.Equal(t, StartLives, w.Lives)
}

func TestPlayerConfinedToZone(t *testing.T) {
	g := newGame(t, nil)
	clearField(g)

	for i := 0; i < 60; i++ {
		g.Step(hold(core.ActionUp, core.ActionLeft))
	}
	assert.Equal(t, float64(ZoneTop), g.w.PlayerY)
	assert.Equal(t, 0.0, g.w.PlayerX)

	for i := 0; i < 150; i++ {
		g.Step(hold(core.ActionDown, core.ActionRight))
	}
	assert.Equal(t, float64(WorldH-CellSize), g.w.PlayerY)
	assert.Equal(t, float64(WorldW-CellSize), g.w.PlayerX)
}

func TestAtMostThreeShots(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	clearField(g)

	fire := hold(core.ActionFire)
	for i := 0; i < 3*fireInterval+1; i++ {
		g.Step(fire)
	}
	assert.Len(t, g.w.Shots, MaxShots)
	assert.Equal(t, MaxShots, rec.Count(audio.CueTone))
}

func TestMushroomTakesThreeHits(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	clearField(g)
	g.w.Mushrooms = []Mushroom{{X: 232, Y: 400, HP: MushroomHP}}

	for hit := 1; hit <= MushroomHP; hit++ {
		g.w.Shots = []Shot{{X: 240, Y: 416}}
		g.Step(core.NewInputFrame())
		assert.Empty(t, g.w.Shots, "hit %d", hit)
		assert.Equal(t, hit*MushroomPoint, g.w.Score)
	}
	assert.Empty(t, g.w.Mushrooms)
	assert.Equal(t, 2, rec.Count(audio.CueTone))
	assert.Equal(t, 1, rec.Count(audio.CueNoise))
}

func TestShotSegmentLeavesMushroom(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	g.w.Mushrooms = nil
	g.w.Segments = []Segment{
		{X: 100, Y: 200, Dir: 1, Head: true},
		{X: 84, Y: 200, Dir: 1},
	}
	g.w.Shots = []Shot{{X: 110, Y: 216}}

	g.Step(core.NewInputFrame())

	assert.Equal(t, SegmentPoints, g.w.Score)
	assert.Equal(t, []Mushroom{{X: 96, Y: 192, HP: MushroomHP}}, g.w.Mushrooms)
	require.Len(t, g.w.Segments, 1)
	assert.True(t, g.w.Segments[0].Head, "the follower becomes a head")
	assert.Equal(t, 1, rec.Count(audio.CueNoise))
}

func TestClearedCentipedeStartsNewWave(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	g.w.Mushrooms = nil
	g.w.Segments = []Segment{{X: 100, Y: 200, Dir: 1, Head: true}}
	g.w.Shots = []Shot{{X: 110, Y: 216}}

	g.Step(core.NewInputFrame())

	assert.Equal(t, 2, g.w.Wave)
	assert.Len(t, g.w.Segments, Segments)
	assert.Equal(t, 1, rec.Count(audio.CueSweep))
}

func TestSegmentTurns(t *testing.T) {
	tests := []struct {
		name      string
		mushrooms []Mushroom
		seg       Segment
		want      Segment
	}{
		{
			name: "right wall",
			seg:  Segment{X: 463, Y: 32, Dir: 1},
			want: Segment{X: WorldW - CellSize, Y: 48, Dir: -1},
		},
		{
			name: "left wall",
			seg:  Segment{X: 1, Y: 32, Dir: -1},
			want: Segment{X: 0, Y: 48, Dir: 1},
		},
		{
			name:      "mushroom",
			mushrooms: []Mushroom{{X: 200, Y: 96, HP: MushroomHP}},
			seg:       Segment{X: 190, Y: 96, Dir: 1},
			want:      Segment{X: 192, Y: 112, Dir: -1},
		},
		{
			name: "open field",
			seg:  Segment{X: 100, Y: 96, Dir: -1},
			want: Segment{X: 98, Y: 96, Dir: -1},
		},
		{
			name: "bottom re-enters player zone",
			seg:  Segment{X: 463, Y: WorldH - CellSize, Dir: 1},
			want: Segment{X: WorldW - CellSize, Y: ZoneTop, Dir: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, nil)
			g.w.Mushrooms = tt.mushrooms
			g.w.Segments = []Segment{tt.seg}
			g.Step(core.NewInputFrame())
			require.Len(t, g.w.Segments, 1)
			assert.Equal(t, tt.want, g.w.Segments[0])
		})
	}
}

func TestContactCostsLifeAndRespawns(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	g.w.Mushrooms = nil
	g.w.Segments = []Segment{{X: 226, Y: WorldH - CellSize, Dir: 1, Head: true}}

	g.Step(core.NewInputFrame())
	require.True(t, g.w.Dead)
	assert.Equal(t, StartLives-1, g.w.Lives)
	assert.Equal(t, 1, rec.Count(audio.CueSweep))

	for i := 0; i < respawnTicks; i++ {
		g.Step(hold(core.ActionLeft))
	}
	assert.False(t, g.w.Dead)
	assert.Equal(t, float64(WorldW/2-CellSize/2), g.w.PlayerX)
	require.Len(t, g.w.Segments, Segments)
	assert.Zero(t, g.w.Segments[0].Y)
}

func TestLastLifeEndsGame(t *testing.T) {
	g := newGame(t, nil)
	g.w.Lives = 1
	g.w.Mushrooms = nil
	g.w.Segments = []Segment{{X: 226, Y: WorldH - CellSize, Dir: 1, Head: true}}

	res := g.Step(core.NewInputFrame())
	assert.True(t, res.State.GameOver)
	assert.Zero(t, res.State.Lives)

	tick := g.w.Tick
	g.Step(hold(core.ActionFire))
	assert.Equal(t, tick, g.w.Tick, "a finished game does not advance")
}

func TestAutopilot(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		tick     int
		want     core.Action
	}{
		{
			name:     "follows lowest segment right",
			segments: []Segment{{X: 0, Y: 0}, {X: 400, Y: 200}},
			want:     core.ActionRight,
		},
		{
			name:     "follows lowest segment left",
			segments: []Segment{{X: 400, Y: 0}, {X: 16, Y: 300}},
			want:     core.ActionLeft,
		},
		{
			name:     "fires when aligned",
			segments: []Segment{{X: 234, Y: 100}},
			tick:     20,
			want:     core.ActionFire,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, nil)
			g.w.Segments = tt.segments
			g.w.Tick = tt.tick
			frame := core.NewInputFrame()
			g.Autopilot(&frame)
			assert.True(t, frame.Has(tt.want))
		})
	}

	t.Run("holds fire between volleys", func(t *testing.T) {
		g := newGame(t, nil)
		g.w.Segments = []Segment{{X: 234, Y: 100}}
		g.w.Tick = 13
		frame := core.NewInputFrame()
		g.Autopilot(&frame)
		assert.False(t, frame.Has(core.ActionFire))
	})
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
	g := newGame(t, nil)
	screen := core.NewScreen(80, 40)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "@")
	assert.Contains(t, out, "▲")
	assert.Contains(t, out, "▓")
}
