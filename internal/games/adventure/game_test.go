package adventure

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

func hold(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// place puts the player at x, y in room r.
func place(g *Game, r RoomID, x, y float64) {
	g.w.Player.Room = r
	g.w.Player.X = x
	g.w.Player.Y = y
}

// give hands the player item k.
func give(g *Game, k ItemKind) {
	it := g.Item(k)
	it.Held = true
	it.Room = g.w.Player.Room
	g.w.Player.Carrying = k
}

// stepUntil steps with f until done reports true and returns the number of
// ticks it took.
func stepUntil(t *testing.T, g *Game, f core.InputFrame, done func() bool, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		g.Step(f)
		if done() {
			return i
		}
	}
	require.FailNow(t, "condition not reached", "after %d ticks", limit)
	return 0
}

func TestReset(t *testing.T) {
	g := newGame(t, nil)
	w := g.Snapshot()

	assert.Equal(t, GoldCastle, w.Player.Room)
	assert.Equal(t, 80.0, w.Player.X)
	assert.Equal(t, 150.0, w.Player.Y)
	assert.Equal(t, NoItem, w.Player.Carrying)
	require.Len(t, w.Items, 7)
	for i, it := range w.Items {
		assert.Equal(t, ItemKind(i), it.Kind)
		assert.False(t, it.Held)
	}
	assert.Equal(t, WhiteFoyer, w.Items[ItemChalice].Room)
	require.Len(t, w.Dragons, 3)
	for _, d := range w.Dragons {
		assert.Equal(t, DragonRoaming, d.State)
	}
	assert.Empty(t, w.Gates)
	assert.Equal(t, StartLives, w.Lives)
}

func TestExitsAreReciprocal(t *testing.T) {
	opposite := [4]Dir{Down, Up, Right, Left}
	for id, r := range Rooms() {
		for d, to := range r.Exits {
			if to == NoRoom {
				continue
			}
			assert.Equal(t, RoomID(id), Rooms()[to].Exit(opposite[d]), "%s side %d", r.Name, d)
		}
	}
}

func TestWallsBlock(t *testing.T) {
	g := newGame(t, nil)
	for i := 0; i < 100; i++ {
		g.Step(hold(core.ActionLeft))
	}
	assert.Equal(t, GoldCastle, g.w.Player.Room)
	assert.InDelta(t, 4.4, g.w.Player.X, 1e-9)
}

func TestClosedGateBlocks(t *testing.T) {
	g := newGame(t, nil)
	place(g, GoldCastle, 78, 40)
	for i := 0; i < 50; i++ {
		g.Step(hold(core.ActionUp))
	}
	assert.Equal(t, GoldCastle, g.w.Player.Room)
	assert.GreaterOrEqual(t, g.w.Player.Y, Gate.Bottom())
}

func TestKeyOpensGate(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	key := g.Item(ItemGoldKey)
	key.Room = GoldCastle
	key.Box.X, key.Box.Y = 45, 40
	place(g, GoldCastle, 78, 40)

	g.Step(hold())
	assert.True(t, g.w.Gates[GoldCastle])
	assert.Equal(t, 1, rec.Count(audio.CueSweep))

	stepUntil(t, g, hold(core.ActionUp), func() bool { return g.w.Player.Room != GoldCastle }, 40)
	assert.Equal(t, GoldFoyer, g.w.Player.Room)
	assert.Equal(t, float64(WorldH-PlayerH-arriveInset), g.w.Player.Y)
}

func TestGateNeedsItsOwnKey(t *testing.T) {
	g := newGame(t, nil)
	key := g.Item(ItemBlackKey)
	key.Room = GoldCastle
	key.Box.X, key.Box.Y = 45, 40

	g.Step(hold())
	assert.False(t, g.w.Gates[GoldCastle])
}

func TestPickUpAndDrop(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	place(g, Overworld2, 100, 75)

	g.Step(hold())
	require.Equal(t, ItemBridge, g.w.Player.Carrying)
	assert.True(t, g.Item(ItemBridge).Held)
	assert.Equal(t, 1, rec.Count(audio.CueTone))

	g.Step(hold(core.ActionFire))
	bridge := g.Item(ItemBridge)
	assert.Equal(t, NoItem, g.w.Player.Carrying)
	assert.False(t, bridge.Held)
	assert.Equal(t, Overworld2, bridge.Room)
	assert.Equal(t, 100.0, bridge.Box.X)
	assert.Equal(t, 75.0+PlayerH+2, bridge.Box.Y)

	g.Step(hold(core.ActionFire))
	assert.Equal(t, NoItem, g.w.Player.Carrying, "dropped item stays put")
}

func TestCarriedItemChangesRoom(t *testing.T) {
	g := newGame(t, nil)
	place(g, Overworld1, 150, 90)
	give(g, ItemBridge)

	stepUntil(t, g, hold(core.ActionRight), func() bool { return g.w.Player.Room != Overworld1 }, 10)
	assert.Equal(t, Overworld4, g.w.Player.Room)
	assert.Equal(t, float64(arriveInset), g.w.Player.X)
	assert.Equal(t, Overworld4, g.Item(ItemBridge).Room)
}

func TestExits(t *testing.T) {
	tests := []struct {
		name   string
		from   RoomID
		x, y   float64
		action core.Action
		to     RoomID
	}{
		{name: "castle down", from: GoldCastle, x: 78, y: 170, action: core.ActionDown, to: Overworld1},
		{name: "overworld left", from: Overworld1, x: 10, y: 90, action: core.ActionLeft, to: Overworld5},
		{name: "overworld up", from: Overworld1, x: 78, y: 10, action: core.ActionUp, to: GoldCastle},
		{name: "lair to secret room", from: DragonLair, x: 10, y: 90, action: core.ActionLeft, to: Secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, nil)
			place(g, tt.from, tt.x, tt.y)
			g.w.Dragons = nil
			stepUntil(t, g, hold(tt.action), func() bool { return g.w.Player.Room != tt.from }, 20)
			assert.Equal(t, tt.to, g.w.Player.Room)
		})
	}
}

func TestSwordSlaysDragon(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	place(g, DragonLair, 80, 80)
	give(g, ItemSword)
	g.w.Dragons[2].X, g.w.Dragons[2].Y = 85, 85

	g.Step(hold())
	assert.Equal(t, DragonSlain, g.w.Dragons[2].State)
	assert.False(t, g.w.Player.Dead)
	assert.Equal(t, DragonPoints, g.w.Score)
	assert.Equal(t, 1, g.w.Slain)
	assert.Equal(t, 1, rec.Count(audio.CueNoise))

	x, y := g.w.Dragons[2].X, g.w.Dragons[2].Y
	g.Step(hold())
	assert.Equal(t, x, g.w.Dragons[2].X, "slain dragons lie still")
	assert.Equal(t, y, g.w.Dragons[2].Y)
}

func TestDragonEatsPlayer(t *testing.T) {
	g := newGame(t, nil)
	place(g, DragonLair, 80, 100)
	give(g, ItemBridge)

	g.Step(hold())
	assert.Equal(t, DragonBiting, g.w.Dragons[2].State)
	assert.Less(t, g.w.Dragons[2].Y, 100.0)

	stepUntil(t, g, hold(), func() bool { return g.w.Player.Dead }, 30)
	assert.Equal(t, 0, g.w.Lives)
	assert.Equal(t, NoItem, g.w.Player.Carrying)
	assert.False(t, g.Item(ItemBridge).Held, "the carried item falls")

	for i := 0; i < DeathTicks-1; i++ {
		g.Step(hold())
	}
	assert.False(t, g.w.Over)
	res := g.Step(hold())
	assert.True(t, res.State.GameOver)
	assert.False(t, res.State.Won)
}

func TestDragonMetAtCloseQuartersBites(t *testing.T) {
	g := newGame(t, nil)
	place(g, DragonLair, 80, 80)
	g.w.Dragons[2].X, g.w.Dragons[2].Y = 83, 80
	require.Equal(t, DragonRoaming, g.w.Dragons[2].State)

	g.Step(hold())
	assert.Equal(t, DragonBiting, g.w.Dragons[2].State)
	assert.False(t, g.w.Player.Dead, "the mouth opens before it bites")

	g.Step(hold())
	assert.True(t, g.w.Player.Dead)
	assert.Equal(t, 0, g.w.Lives)
}

func TestSpareLifeRespawns(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 7, Lives: 2})
	place(g, DragonLair, 80, 100)

	stepUntil(t, g, hold(), func() bool { return g.w.Player.Dead }, 30)
	for i := 0; i < DeathTicks; i++ {
		g.Step(hold())
	}
	assert.False(t, g.w.Over)
	assert.False(t, g.w.Player.Dead)
	assert.Equal(t, GoldCastle, g.w.Player.Room)
	assert.Equal(t, 1, g.w.Lives)
}

func TestDragonFear(t *testing.T) {
	t.Run("yorgle flees the gold key", func(t *testing.T) {
		g := newGame(t, nil)
		place(g, BlueMaze1, 80, 100)
		give(g, ItemGoldKey)

		g.Step(hold())
		assert.Equal(t, DragonFleeing, g.w.Dragons[0].State)
		assert.Less(t, g.w.Dragons[0].Y, 60.0)
	})
	t.Run("grundle fears nothing", func(t *testing.T) {
		g := newGame(t, nil)
		place(g, RedMaze2, 80, 130)
		give(g, ItemGoldKey)

		g.Step(hold())
		assert.Equal(t, DragonChasing, g.w.Dragons[1].State)
		assert.Greater(t, g.w.Dragons[1].Y, 90.0)
	})
}

func TestBatSwapsItems(t *testing.T) {
	g := newGame(t, nil)
	place(g, Overworld2, 20, 150)
	g.w.Bat = Bat{Room: Overworld2, X: 100, Y: 78, Carrying: NoItem}

	g.Step(hold())
	require.Equal(t, ItemBridge, g.w.Bat.Carrying)
	assert.True(t, g.Item(ItemBridge).Held)
	assert.Equal(t, batSwapWait, g.w.Bat.Wait)

	g.w.Bat.X, g.w.Bat.Y, g.w.Bat.VX, g.w.Bat.VY, g.w.Bat.Wait = 40, 40, 0, 0, 0
	sword := g.Item(ItemSword)
	sword.Room = Overworld2
	sword.Box.X, sword.Box.Y = 40, 40

	g.Step(hold())
	assert.Equal(t, ItemSword, g.w.Bat.Carrying)
	bridge := g.Item(ItemBridge)
	assert.False(t, bridge.Held)
	assert.Equal(t, Overworld2, bridge.Room)
	assert.Equal(t, 40.0, bridge.Box.X)
	assert.Equal(t, 40.0, bridge.Box.Y)
	assert.Equal(t, 50.0, sword.Box.Y, "the bat carries its prize below it")
}

func TestMagnetPullsItems(t *testing.T) {
	g := newGame(t, nil)
	place(g, Overworld2, 20, 150)
	give(g, ItemMagnet)

	g.Step(hold())
	bridge := g.Item(ItemBridge)
	assert.Equal(t, 100-magnetPull, bridge.Box.X)
	assert.Equal(t, 80+magnetPull, bridge.Box.Y)
}

func TestChaliceWins(t *testing.T) {
	rec := &audio.Recorder{}
	g := newGame(t, rec)
	give(g, ItemChalice)

	res := g.Step(hold())
	assert.True(t, res.State.Won)
	assert.True(t, res.State.GameOver)
	assert.Equal(t, ChalicePoints, res.State.Score)
	assert.Equal(t, 1, rec.Count(audio.CueSweep))
}

func TestRoamTimer(t *testing.T) {
	g := newGame(t, nil)
	g.Step(hold())
	assert.GreaterOrEqual(t, g.w.RoamTimer, 60)
	assert.Less(t, g.w.RoamTimer, 180)
	assert.LessOrEqual(t, g.w.Roam.Len(), 1.5)
}

func TestAutopilot(t *testing.T) {
	tests := []struct {
		name string
		roam core.Vec
		dead bool
		want []core.Action
	}{
		{name: "left", roam: core.Vec{X: -0.5, Y: 0.1}, want: []core.Action{core.ActionLeft}},
		{name: "diagonal", roam: core.Vec{X: 0.8, Y: -0.9}, want: []core.Action{core.ActionRight, core.ActionUp}},
		{name: "too weak to move", roam: core.Vec{X: 0.1, Y: 0.2}},
		{name: "dead", roam: core.Vec{X: 1, Y: 1}, dead: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, nil)
			g.w.Roam = tt.roam
			g.w.Player.Dead = tt.dead

			f := core.NewInputFrame()
			g.Autopilot(&f)
			var got []core.Action
			for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionFire} {
				if f.Has(a) {
					got = append(got, a)
				}
			}
			assert.Equal(t, tt.want, got)
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
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "biting", DragonBiting.String())
	assert.Equal(t, "slain", DragonSlain.String())
	assert.Equal(t, "chalice", ItemChalice.String())
	assert.Equal(t, "none", NoItem.String())
}

func TestRender(t *testing.T) {
	g := newGame(t, nil)
	screen := core.NewScreen(80, 40)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "■")
	assert.Contains(t, out, "#")
	assert.Contains(t, out, "█")
}
