package pacman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/pathfind"
)

func newGame(t *testing.T, seed int64, rec *audio.Recorder) *Game {
	t.Helper()
	g := New()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
	if rec != nil {
		cfg.Audio = rec
	}
	g.Reset(cfg)
	return g
}

func hold(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

// stepUntilMoved steps with the given input until the player reaches a new
// cell center.
func stepUntilMoved(t *testing.T, g *Game, in core.InputFrame) {
	t.Helper()
	start := g.w.Player.Cell
	for i := 0; i < 20; i++ {
		g.Step(in)
		if g.w.Player.Cell != start && g.w.Player.Progress == 0 {
			return
		}
	}
	t.Fatalf("player did not leave %v", start)
}

func TestSpawnUpUpLeft(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, 1, rec)
	require.Equal(t, PlayerSpawn, g.w.Player.Cell)

	visited := []pathfind.Cell{{X: 13, Y: 22}, {X: 13, Y: 21}, {X: 12, Y: 21}}
	for _, c := range visited {
		require.Equal(t, TileDot, g.w.Maze.At(c), "cell %v starts with a dot", c)
	}

	stepUntilMoved(t, g, hold(core.ActionUp))
	stepUntilMoved(t, g, hold(core.ActionUp))
	stepUntilMoved(t, g, hold(core.ActionLeft))

	got := g.w.Player.Cell
	assert.Equal(t, -1, got.X-PlayerSpawn.X)
	assert.Equal(t, -2, got.Y-PlayerSpawn.Y)
	assert.Equal(t, 3*DotPoints, g.w.Score)
	for _, c := range visited {
		assert.Equal(t, TileEmpty, g.w.Maze.At(c), "dot at %v is eaten", c)
	}
	assert.Equal(t, StartLives, g.w.Lives)
	assert.Equal(t, 3, rec.Count(audio.CueTone))
}

func TestQueuedTurnWaitsForOpening(t *testing.T) {
	g := newGame(t, 1, nil)
	g.w.Player = Player{Cell: pathfind.Cell{X: 8, Y: 23}, Dir: pathfind.Left, Next: pathfind.Left}
	g.Step(hold(core.ActionDown))
	assert.Equal(t, pathfind.Left, g.w.Player.Dir, "down into a wall is only queued")
	assert.Equal(t, pathfind.Down, g.w.Player.Next)
}

func TestPlayerStopsAtWall(t *testing.T) {
	g := newGame(t, 1, nil)
	g.w.Player = Player{Cell: pathfind.Cell{X: 1, Y: 29}, Dir: pathfind.Left, Next: pathfind.Left}
	g.Step(core.NewInputFrame())
	assert.Equal(t, pathfind.None, g.w.Player.Dir)
	assert.Equal(t, pathfind.Cell{X: 1, Y: 29}, g.w.Player.Cell)
}

func TestTunnelWraps(t *testing.T) {
	g := newGame(t, 1, nil)
	g.w.Player = Player{Cell: pathfind.Cell{X: 0, Y: TunnelRow}, Dir: pathfind.Left, Next: pathfind.Left}
	stepUntilMoved(t, g, core.NewInputFrame())
	assert.Equal(t, pathfind.Cell{X: Cols - 1, Y: TunnelRow}, g.w.Player.Cell)
}

func TestGateRules(t *testing.T) {
	m := NewMaze()
	player := walker{maze: &m, gate: gateClosed}
	living := walker{maze: &m, gate: gateOneWay}
	dead := walker{maze: &m, gate: gateOpen}

	assert.False(t, pathfind.CanMove(player, ExitCell, pathfind.Down))
	assert.False(t, pathfind.CanMove(living, ExitCell, pathfind.Down), "living ghosts never enter the house through the gate")
	assert.True(t, pathfind.CanMove(dead, ExitCell, pathfind.Down))
	assert.True(t, pathfind.CanMove(living, pathfind.Cell{X: 13, Y: 13}, pathfind.Up), "the gate lets ghosts out")

	d, ok := pathfind.Step(dead, ExitCell, isCell(HomeCell), pathfind.DefaultMaxIter)
	require.True(t, ok)
	assert.Equal(t, pathfind.Down, d)

	n := pathfind.Distance(living, ExitCell, isCell(HomeCell), pathfind.DefaultMaxIter)
	assert.Equal(t, -1, n, "no way home for a living ghost")
}

func TestPowerPelletScaresAndGhostIsEaten(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, 2, rec)
	g.w.Maze[23][12] = TilePower

	stepUntilMoved(t, g, core.NewInputFrame())
	require.Equal(t, pathfind.Cell{X: 12, Y: 23}, g.w.Player.Cell)
	assert.Equal(t, PowerPoints, g.w.Score)
	assert.Equal(t, PowerTicks, g.w.PowerTimer)
	assert.Equal(t, ModeScared, g.w.Ghosts[0].Mode, "the chasing ghost is frightened")
	assert.Equal(t, ModePen, g.w.Ghosts[1].Mode, "penned ghosts are not")
	assert.Equal(t, 1, rec.Count(audio.CueSweep))

	g.w.Ghosts[0].Cell = g.w.Player.Cell
	g.w.Ghosts[0].Progress = 0
	g.Step(core.NewInputFrame())
	assert.Equal(t, ModeDead, g.w.Ghosts[0].Mode)
	assert.Equal(t, PowerPoints+ghostPoints, g.w.Score)
	assert.Equal(t, StartLives, g.w.Lives)
}

func TestPowerTimerExpires(t *testing.T) {
	g := newGame(t, 2, nil)
	g.w.PowerTimer = 1
	g.w.Ghosts[0].Mode = ModeScared
	g.Step(core.NewInputFrame())
	assert.Equal(t, ModeChase, g.w.Ghosts[0].Mode)
}

func TestChasingGhostKills(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, 3, rec)
	g.w.Ghosts[0].Cell = g.w.Player.Cell
	g.w.Ghosts[1].Cell = g.w.Player.Cell
	g.w.Ghosts[1].Mode = ModeChase

	g.Step(core.NewInputFrame())
	assert.Equal(t, StartLives-1, g.w.Lives, "two ghosts still cost one life")
	assert.Equal(t, PlayerSpawn, g.w.Player.Cell)
	assert.Equal(t, ghostStarts[0].cell, g.w.Ghosts[0].Cell)
	assert.Equal(t, 1, rec.Count(audio.CueSweep))

	g.w.Lives = 1
	g.w.Ghosts[0].Cell = g.w.Player.Cell
	res := g.Step(core.NewInputFrame())
	assert.True(t, res.State.GameOver)
	assert.Equal(t, 0, res.State.Lives)
}

func TestPenReleaseAndExit(t *testing.T) {
	g := newGame(t, 4, nil)
	pinky := &g.w.Ghosts[1]
	pinky.PenTimer = 1

	for i := 0; i < 200 && pinky.Mode != ModeChase; i++ {
		g.stepGhost(pinky)
	}
	require.Equal(t, ModeChase, pinky.Mode)
	assert.Equal(t, ExitCell, pinky.Cell)
}

func TestPenBounceStaysInside(t *testing.T) {
	g := newGame(t, 4, nil)
	clyde := &g.w.Ghosts[3]
	for i := 0; i < 500; i++ {
		g.stepGhost(clyde)
		require.Equal(t, ModePen, clyde.Mode)
		require.GreaterOrEqual(t, clyde.Cell.Y, penTop)
		require.LessOrEqual(t, clyde.Cell.Y, penBottom)
	}
}

func TestDeadGhostReturnsToPen(t *testing.T) {
	g := newGame(t, 5, nil)
	gh := &g.w.Ghosts[0]
	gh.Mode = ModeDead
	for i := 0; i < 400 && gh.Mode == ModeDead; i++ {
		g.stepGhost(gh)
	}
	require.Equal(t, ModePen, gh.Mode)
	assert.Equal(t, HomeCell, gh.Cell)
	assert.Equal(t, penReturn, gh.PenTimer)
}

func TestUnknownGhostModeNormalizes(t *testing.T) {
	g := newGame(t, 6, nil)
	g.w.Ghosts[0].Mode = GhostMode(42)
	g.Step(core.NewInputFrame())
	assert.Equal(t, ModeChase, g.w.Ghosts[0].Mode)
	assert.Equal(t, "unknown", GhostMode(42).String())
}

func TestLevelClearRestoresMaze(t *testing.T) {
	g := newGame(t, 7, nil)
	for y := range g.w.Maze {
		for x := range g.w.Maze[y] {
			if tile := g.w.Maze[y][x]; tile == TileDot || tile == TilePower {
				g.w.Maze[y][x] = TileEmpty
			}
		}
	}
	g.w.Maze[23][12] = TileDot

	for i := 0; i < 20 && g.w.Level == 1; i++ {
		g.Step(core.NewInputFrame())
	}
	require.Equal(t, 2, g.w.Level)
	full := NewMaze()
	assert.Equal(t, full.Pellets(), g.w.Maze.Pellets())
	assert.Equal(t, PlayerSpawn, g.w.Player.Cell)
}

func TestDeterminism(t *testing.T) {
	run := func() World {
		g := newGame(t, 99, nil)
		for i := 0; i < 3000; i++ {
			frame := core.NewInputFrame()
			g.Autopilot(&frame)
			g.Step(frame)
		}
		return g.Snapshot()
	}
	assert.Equal(t, run(), run())
}

func TestAutopilotStaysInMaze(t *testing.T) {
	g := newGame(t, 11, nil)
	for i := 0; i < 5000 && !g.w.Over; i++ {
		frame := core.NewInputFrame()
		before := g.Snapshot()
		g.Autopilot(&frame)
		require.Equal(t, before, g.Snapshot(), "autopilot must not touch the world")
		g.Step(frame)

		c := g.w.Player.Cell
		require.True(t, c.X >= 0 && c.X < Cols && c.Y >= 0 && c.Y < Rows, "player left the maze at %v", c)
		tile := g.w.Maze.At(c)
		require.NotEqual(t, TileWall, tile)
		require.NotEqual(t, TileGate, tile)
	}
	assert.Positive(t, g.w.Score, "the autopilot eats something")
}

func TestRender(t *testing.T) {
	g := newGame(t, 1, nil)
	screen := core.NewScreen(100, 40)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "·")
}
