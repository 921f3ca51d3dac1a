package adventure

import "github.com/vovakirdan/retro-arcade/internal/core"

// Dragon and bat behaviour.
const (
	SlayRange  = 14.0
	BiteRange  = 8.0
	MouthRange = 30.0

	dragonMin  = 10
	dragonMaxX = WorldW - 20
	dragonMaxY = WorldH - 20

	batSize     = 10
	batSpeed    = 3.0
	batTurn     = 0.02
	batSwapWait = 180
)

// DragonState is a dragon's behaviour.
type DragonState int

const (
	DragonRoaming DragonState = iota // Idling in its own room
	DragonChasing
	DragonFleeing
	DragonBiting // Mouth open
	DragonSlain
)

// String returns the state name.
func (s DragonState) String() string {
	switch s {
	case DragonRoaming:
		return "roaming"
	case DragonChasing:
		return "chasing"
	case DragonFleeing:
		return "fleeing"
	case DragonBiting:
		return "biting"
	case DragonSlain:
		return "slain"
	default:
		return "unknown"
	}
}

// Dragon hunts the player whenever they share a room. FleesFrom is the
// item that scares it off, NoItem if nothing does.
type Dragon struct {
	Name      string
	Room      RoomID
	X, Y      float64
	Speed     float64
	State     DragonState
	FleesFrom ItemKind
}

// Alive reports whether the dragon has not been slain.
func (d Dragon) Alive() bool { return d.State != DragonSlain }

func newDragons() []Dragon {
	return []Dragon{
		{Name: "Yorgle", Room: BlueMaze1, X: 80, Y: 60, Speed: 0.6, FleesFrom: ItemGoldKey},
		{Name: "Grundle", Room: RedMaze2, X: 80, Y: 90, Speed: 0.8, FleesFrom: NoItem},
		{Name: "Rhindle", Room: DragonLair, X: 80, Y: 80, Speed: 1.0, FleesFrom: NoItem},
	}
}

// moveDragons runs every living dragon. One that shares the player's room
// chases, opening its mouth as it closes in, unless the player carries
// what it fears. A sword in hand slays it on contact.
func (g *Game) moveDragons() {
	p := &g.w.Player
	for i := range g.w.Dragons {
		d := &g.w.Dragons[i]
		if !d.Alive() {
			continue
		}
		if d.Room != p.Room {
			d.X += (g.rng.Float64() - 0.5) * d.Speed
			d.Y += (g.rng.Float64() - 0.5) * d.Speed
			d.State = DragonRoaming
			g.confine(d)
			continue
		}

		toward := core.Vec{X: p.X - d.X, Y: p.Y - d.Y}
		dist := toward.Len()
		if p.Carrying == ItemSword && dist < SlayRange {
			d.State = DragonSlain
			g.w.Slain++
			g.w.Score += DragonPoints
			g.sound.Noise(0.2, 0.3)
			g.sound.Sweep(800, 200, 0.3, core.WaveSawtooth, core.SweepVolume)
			continue
		}

		step := toward
		if dist > 0 {
			step = toward.Scale(d.Speed / dist)
		}
		opening := false
		switch {
		case d.FleesFrom != NoItem && p.Carrying == d.FleesFrom:
			d.X -= step.X
			d.Y -= step.Y
			d.State = DragonFleeing
		case dist > BiteRange:
			d.X += step.X
			d.Y += step.Y
			d.State = DragonChasing
			if dist < MouthRange {
				d.State = DragonBiting
			}
		case d.State != DragonBiting:
			// Met at close quarters with its mouth shut: it opens up now
			// and bites next tick.
			d.State = DragonBiting
			opening = true
		}
		g.confine(d)

		if !opening && dist <= BiteRange && d.State == DragonBiting && !p.Dead {
			g.drop()
			p.Dead = true
			p.DeathTimer = DeathTicks
			g.w.Lives--
			g.sound.Noise(0.4, 0.5)
			g.sound.Sweep(500, 50, 0.5, core.WaveSawtooth, core.SweepVolume)
		}
	}
}

func (g *Game) confine(d *Dragon) {
	d.X = core.ClampF(d.X, dragonMin, dragonMaxX)
	d.Y = core.ClampF(d.Y, dragonMin, dragonMaxY)
}

// Bat flutters from room to room, trading whatever it holds for the next
// loose item it meets.
type Bat struct {
	Room     RoomID
	X, Y     float64
	VX, VY   float64
	Carrying ItemKind
	Wait     int // Ticks before it will swap again
}

// Box returns the bat's bounds.
func (b Bat) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: batSize, H: batSize}
}

func (g *Game) moveBat() {
	b := &g.w.Bat
	b.X += b.VX
	b.Y += b.VY
	if b.X < dragonMin || b.X > WorldW-20 {
		b.VX = -b.VX
	}
	if b.Y < dragonMin || b.Y > WorldH-20 {
		b.VY = -b.VY
	}
	if g.rng.Float64() < batTurn {
		b.VX = (g.rng.Float64() - 0.5) * batSpeed
		b.VY = (g.rng.Float64() - 0.5) * batSpeed
	}
	g.batExits()

	b.Wait--
	if b.Room == g.w.Player.Room && b.Wait <= 0 {
		g.batSwap()
	}
	if b.Carrying != NoItem {
		it := g.Item(b.Carrying)
		it.Room = b.Room
		it.Box.X = b.X
		it.Box.Y = b.Y + batSize
	}
}

// batExits lets the bat fly through any side with a neighbour. Gates do
// not stop it.
func (g *Game) batExits() {
	b := &g.w.Bat
	r := rooms[b.Room]
	switch {
	case b.X < 2:
		if to := r.Exit(Left); to != NoRoom {
			b.Room, b.X = to, WorldW-20
		} else {
			b.VX = -b.VX
		}
	case b.X > WorldW-8:
		if to := r.Exit(Right); to != NoRoom {
			b.Room, b.X = to, dragonMin
		} else {
			b.VX = -b.VX
		}
	}
	r = rooms[b.Room]
	switch {
	case b.Y < 2:
		if to := r.Exit(Up); to != NoRoom {
			b.Room, b.Y = to, WorldH-20
		} else {
			b.VY = -b.VY
		}
	case b.Y > WorldH-8:
		if to := r.Exit(Down); to != NoRoom {
			b.Room, b.Y = to, dragonMin
		} else {
			b.VY = -b.VY
		}
	}
}

// batSwap grabs a loose item under the bat and leaves the one it held in
// its place.
func (g *Game) batSwap() {
	b := &g.w.Bat
	for i := range g.w.Items {
		it := &g.w.Items[i]
		if it.Room != b.Room || it.Held || it.Kind == b.Carrying || !b.Box().Overlaps(it.Box) {
			continue
		}
		if b.Carrying != NoItem {
			old := g.Item(b.Carrying)
			old.Held = false
			old.Room = b.Room
			old.Box.X, old.Box.Y = it.Box.X, it.Box.Y
		}
		b.Carrying = it.Kind
		it.Held = true
		b.Wait = batSwapWait
		g.sound.Tone(900, 0.04, core.WaveTriangle, core.ToneVolume)
		return
	}
}
