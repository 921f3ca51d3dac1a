// Package adventure implements Adventure: a quest across eighteen rooms to
// return the enchanted chalice to the gold castle.
package adventure

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// One room of the logical playfield.
const (
	WorldW = 160
	WorldH = 192
)

// Rules.
const (
	PlayerW       = 6
	PlayerH       = 10
	PlayerSpeed   = 1.8
	bridgeSlip    = 0.3 // Extra fraction of a move made through walls
	magnetPull    = 0.5
	arriveInset   = 8
	StartLives    = 1
	DeathTicks    = 120
	DragonPoints  = 1000
	ChalicePoints = 5000
)

// ItemKind names the objects lying around the kingdom.
type ItemKind int

const (
	NoItem ItemKind = iota - 1
	ItemSword
	ItemGoldKey
	ItemBlackKey
	ItemWhiteKey
	ItemChalice
	ItemBridge
	ItemMagnet
)

// String returns the item name.
func (k ItemKind) String() string {
	switch k {
	case ItemSword:
		return "sword"
	case ItemGoldKey:
		return "gold key"
	case ItemBlackKey:
		return "black key"
	case ItemWhiteKey:
		return "white key"
	case ItemChalice:
		return "chalice"
	case ItemBridge:
		return "bridge"
	case ItemMagnet:
		return "magnet"
	default:
		return "none"
	}
}

// Item is an object in some room. Held is set while the player or the bat
// has it.
type Item struct {
	Kind ItemKind
	Room RoomID
	Box  core.Box
	Held bool
}

// Player is the adventurer. X, Y is the top-left corner.
type Player struct {
	Room       RoomID
	X, Y       float64
	Carrying   ItemKind
	Dead       bool
	DeathTimer int
}

// Box returns the player's bounds.
func (p Player) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: PlayerW, H: PlayerH}
}

// World is the complete simulation state.
type World struct {
	Player   Player
	Items    []Item
	Dragons  []Dragon
	Bat      Bat
	Gates    map[RoomID]bool // Castles whose gate is open
	FireHeld bool
	Slain    int
	Score    int
	Lives    int
	Over     bool
	Won      bool
	Tick     int

	// Heading the attract wanderer follows, rerolled every RoamTimer ticks.
	Roam      core.Vec
	RoamTimer int
}

// Game implements registry.Game.
type Game struct {
	w     World
	cfg   core.RuntimeConfig
	rng   core.RNG
	sound core.Signal
}

// New creates a new Adventure game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "adventure" }
func (g *Game) Title() string { return "Adventure" }

func (g *Game) Description() string {
	return "Find the keys, dodge the dragons and bring the chalice home to the gold castle."
}

func (g *Game) Controls() []string {
	return []string{"Arrow Keys: Move", "Space: Drop item"}
}

// Reset puts every item, dragon and the bat back where the quest begins.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = cfg.Rand()
	g.sound = cfg.Sound()
	g.w = World{
		Player: Player{Room: GoldCastle, X: 80, Y: 150, Carrying: NoItem},
		Items: []Item{
			{Kind: ItemSword, Room: GoldFoyer, Box: core.Box{X: 80, Y: 100, W: 6, H: 20}},
			{Kind: ItemGoldKey, Room: Overworld4, Box: core.Box{X: 120, Y: 90, W: 8, H: 14}},
			{Kind: ItemBlackKey, Room: BlueMaze2, Box: core.Box{X: 70, Y: 100, W: 8, H: 14}},
			{Kind: ItemWhiteKey, Room: RedMaze1, Box: core.Box{X: 60, Y: 80, W: 8, H: 14}},
			{Kind: ItemChalice, Room: WhiteFoyer, Box: core.Box{X: 80, Y: 100, W: 10, H: 16}},
			{Kind: ItemBridge, Room: Overworld2, Box: core.Box{X: 100, Y: 80, W: 28, H: 6}},
			{Kind: ItemMagnet, Room: BlackFoyer, Box: core.Box{X: 80, Y: 90, W: 10, H: 12}},
		},
		Dragons: newDragons(),
		Bat:     Bat{Room: Overworld3, X: 90, Y: 50, VX: 1.5, VY: 0.8, Carrying: NoItem},
		Gates:   make(map[RoomID]bool),
		Lives:   cfg.LivesOr(StartLives),
	}
}

// Item returns the item of kind k.
func (g *Game) Item(k ItemKind) *Item {
	return &g.w.Items[k]
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.w.Over {
		return core.StepResult{State: g.State()}
	}
	g.w.Tick++
	g.roam()

	if g.w.Player.Dead {
		g.dying()
		return core.StepResult{State: g.State()}
	}

	fire := in.Has(core.ActionFire)
	if fire && !g.w.FireHeld {
		g.drop()
	}
	g.w.FireHeld = fire

	g.walk(in.Horizontal()*PlayerSpeed, in.Vertical()*PlayerSpeed)
	g.carry()
	g.pickUp()
	g.pull()
	g.openGates()
	g.moveDragons()
	g.moveBat()

	p := g.w.Player
	if !p.Dead && p.Room == GoldCastle && p.Carrying == ItemChalice {
		g.w.Score += ChalicePoints
		g.w.Won = true
		g.w.Over = true
		g.sound.Sweep(400, 1200, 1.0, core.WaveSquare, core.SweepVolume)
	}
	return core.StepResult{State: g.State()}
}

// roam rerolls the wanderer's heading when its timer runs out.
func (g *Game) roam() {
	g.w.RoamTimer--
	if g.w.RoamTimer > 0 {
		return
	}
	g.w.Roam = core.Vec{X: (g.rng.Float64() - 0.5) * 2, Y: (g.rng.Float64() - 0.5) * 2}
	g.w.RoamTimer = 60 + g.rng.Intn(120)
}

// dying runs the death animation. With lives left the adventurer wakes in
// front of the gold castle.
func (g *Game) dying() {
	p := &g.w.Player
	p.DeathTimer--
	if p.DeathTimer > 0 {
		return
	}
	if g.w.Lives <= 0 {
		g.w.Over = true
		return
	}
	*p = Player{Room: GoldCastle, X: 80, Y: 150, Carrying: NoItem}
}

func (g *Game) drop() {
	p := &g.w.Player
	if p.Carrying == NoItem {
		return
	}
	it := g.Item(p.Carrying)
	it.Held = false
	it.Room = p.Room
	it.Box.X = p.X
	it.Box.Y = p.Y + PlayerH + 2
	p.Carrying = NoItem
}

// walk moves the player one axis at a time so walls stop only the blocked
// component. The bridge lets part of every move slip through walls.
func (g *Game) walk(dx, dy float64) {
	p := &g.w.Player
	if !g.blocked(p.Room, core.Box{X: p.X + dx, Y: p.Y, W: PlayerW, H: PlayerH}) {
		p.X += dx
	}
	if !g.blocked(p.Room, core.Box{X: p.X, Y: p.Y + dy, W: PlayerW, H: PlayerH}) {
		p.Y += dy
	}
	if p.Carrying == ItemBridge {
		p.X += dx * bridgeSlip
		p.Y += dy * bridgeSlip
	}
	g.leave()
}

// blocked reports whether b hits a wall of the room or its closed gate.
func (g *Game) blocked(id RoomID, b core.Box) bool {
	r := rooms[id]
	for _, w := range r.Walls {
		if b.Overlaps(w) {
			return true
		}
	}
	return r.Castle() && !g.w.Gates[id] && b.Overlaps(Gate)
}

// leave moves the player into the neighbouring room once it crosses an
// edge with an exit, and holds it at the edge otherwise.
func (g *Game) leave() {
	p := &g.w.Player
	r := rooms[p.Room]
	switch {
	case p.Y < 0:
		to := r.Exit(Up)
		if to == NoRoom || (r.Castle() && !g.w.Gates[p.Room]) {
			p.Y = 0
			break
		}
		p.Room = to
		p.Y = WorldH - PlayerH - arriveInset
	case p.Y+PlayerH > WorldH:
		to := r.Exit(Down)
		if to == NoRoom {
			p.Y = WorldH - PlayerH
			break
		}
		p.Room = to
		p.Y = arriveInset
	}
	r = rooms[p.Room]
	switch {
	case p.X < 0:
		to := r.Exit(Left)
		if to == NoRoom {
			p.X = 0
			break
		}
		p.Room = to
		p.X = WorldW - PlayerW - arriveInset
	case p.X+PlayerW > WorldW:
		to := r.Exit(Right)
		if to == NoRoom {
			p.X = WorldW - PlayerW
			break
		}
		p.Room = to
		p.X = arriveInset
	}
}

// carry keeps the held item just below the player.
func (g *Game) carry() {
	p := g.w.Player
	if p.Carrying == NoItem {
		return
	}
	it := g.Item(p.Carrying)
	it.Room = p.Room
	it.Box.X = p.X
	it.Box.Y = p.Y + PlayerH
}

// pickUp grabs the first loose item the empty-handed player touches.
func (g *Game) pickUp() {
	p := &g.w.Player
	if p.Carrying != NoItem {
		return
	}
	for i := range g.w.Items {
		it := &g.w.Items[i]
		if it.Room != p.Room || it.Held || !p.Box().Overlaps(it.Box) {
			continue
		}
		p.Carrying = it.Kind
		it.Held = true
		g.sound.Tone(600, 0.05, core.WaveSquare, core.ToneVolume)
		return
	}
}

// pull drags loose items in the room toward a carried magnet.
func (g *Game) pull() {
	p := g.w.Player
	if p.Carrying != ItemMagnet {
		return
	}
	for i := range g.w.Items {
		it := &g.w.Items[i]
		if it.Room != p.Room || it.Held {
			continue
		}
		dx, dy := p.X-it.Box.X, p.Y+PlayerH-it.Box.Y
		it.Box.X += core.Sign(dx) * min(magnetPull, math.Abs(dx))
		it.Box.Y += core.Sign(dy) * min(magnetPull, math.Abs(dy))
	}
}

// openGates raises a castle's portcullis once its key lies in front of it.
func (g *Game) openGates() {
	for id, r := range rooms {
		room := RoomID(id)
		if !r.Castle() || g.w.Gates[room] {
			continue
		}
		key := g.Item(r.Key)
		if key.Held || key.Room != room {
			continue
		}
		if key.Box.Y < 60 && key.Box.X > 40 && key.Box.X < 120 {
			g.w.Gates[room] = true
			g.sound.Sweep(200, 600, 0.3, core.WaveSquare, core.SweepVolume)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.w.Score,
		Lives:    g.w.Lives,
		Level:    1,
		GameOver: g.w.Over,
		Won:      g.w.Won,
	}
}

// Snapshot returns a copy of the world with its own slices and gate set.
func (g *Game) Snapshot() World {
	w := g.w
	w.Items = append([]Item(nil), g.w.Items...)
	w.Dragons = append([]Dragon(nil), g.w.Dragons...)
	w.Gates = make(map[RoomID]bool, len(g.w.Gates))
	for k, v := range g.w.Gates {
		w.Gates[k] = v
	}
	return w
}

func init() {
	registry.Register("adventure", func() registry.Game {
		return New()
	})
}
