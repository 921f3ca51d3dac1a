package donkeykong

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Barrel tuning.
const (
	BarrelSpeed  = 1.2
	BarrelSize   = 10
	LadderChance = 0.35
	ladderDrop   = 1.5 // Descent speed while rolling down a ladder
	firstBarrel  = 180
	barrelEvery  = 150 // Plus up to barrelSpread random ticks
	barrelSpread = 100
	barrelSpawnX = 48
)

// Barrel is a rolling hazard. X, Y is the top-left corner.
type Barrel struct {
	ID       int
	X, Y     float64
	VX, VY   float64
	Speed    float64 // Rolling speed fixed at spawn
	OnLadder bool
	Bottom   float64 // Foot of the ladder being descended
	Decided  int     // Index of the ladder last considered, or -1
	Jumped   bool    // Already scored by jumping over it
}

// Box returns the barrel's bounding box.
func (b Barrel) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: BarrelSize, H: BarrelSize}
}

func (b Barrel) centerX() float64 { return b.X + BarrelSize/2.0 }
func (b Barrel) feet() float64    { return b.Y + BarrelSize }

func (g *Game) stepBarrels() {
	g.w.BarrelTimer--
	if g.w.BarrelTimer <= 0 {
		g.spawnBarrel()
		g.w.BarrelTimer = barrelEvery + g.rng.Intn(barrelSpread)
	}

	kept := g.w.Barrels[:0]
	for _, b := range g.w.Barrels {
		g.rollBarrel(&b)
		if b.Y <= WorldH+20 {
			kept = append(kept, b)
		}
	}
	g.w.Barrels = kept
}

func (g *Game) spawnBarrel() {
	kong := g.level.Platforms[floorKong]
	speed := g.cfg.Speed(BarrelSpeed, g.w.Score, g.w.Tick)
	g.w.NextBarrel++
	g.w.Barrels = append(g.w.Barrels, Barrel{
		ID:      g.w.NextBarrel,
		X:       barrelSpawnX,
		Y:       kong.SurfaceY(barrelSpawnX) - BarrelSize,
		VX:      speed,
		Speed:   speed,
		Decided: -1,
	})
}

// rollBarrel moves one barrel: down a ladder it has taken, or along and
// off the girders under gravity.
func (g *Game) rollBarrel(b *Barrel) {
	if b.OnLadder {
		b.Y += ladderDrop
		if b.feet() >= b.Bottom {
			b.OnLadder = false
			b.VY = 0
			b.VX = b.Speed
			if pl, ok := g.level.standingOn(b.centerX(), b.feet(), 2, 6); ok {
				b.Y = pl.SurfaceY(b.centerX()) - BarrelSize
				if pl.Slope < 0 {
					b.VX = -b.Speed
				}
			}
		}
		return
	}

	b.VY = math.Min(b.VY+Gravity, MaxFall)
	b.Y += b.VY
	b.X += b.VX

	landed := false
	cx := b.centerX()
	for _, pl := range g.level.Platforms {
		if !pl.Spans(cx) {
			continue
		}
		s := pl.SurfaceY(cx)
		if b.VY >= 0 && b.feet() >= s && b.feet() < s+10 {
			b.Y = s - BarrelSize
			b.VY = 0
			landed = true
			switch {
			case pl.Slope < 0:
				b.VX = -b.Speed
			case pl.Slope > 0:
				b.VX = b.Speed
			}
			break
		}
	}
	if landed {
		g.considerLadders(b)
	}
}

// considerLadders rolls the dice once for each intact ladder top the
// barrel passes over.
func (g *Game) considerLadders(b *Barrel) {
	cx := b.centerX()
	for i, l := range g.level.Ladders {
		if l.Broken || math.Abs(cx-l.X) >= 6 || math.Abs(b.feet()-(l.Top-ladderInset)) >= 6 {
			continue
		}
		if b.Decided == i {
			return
		}
		b.Decided = i
		if g.rng.Float64() < LadderChance {
			b.OnLadder = true
			b.X = l.X - BarrelSize/2.0
			b.VX, b.VY = 0, 0
			b.Bottom = l.Bottom
		}
		return
	}
}

// touchBarrels kills the player on contact and pays for barrels jumped
// over. The pass stops at the first death.
func (g *Game) touchBarrels() {
	p := &g.w.Player
	if p.State == StateDead {
		return
	}
	for i := range g.w.Barrels {
		b := &g.w.Barrels[i]
		dx := p.CenterX() - b.centerX()
		dy := (p.Y + PlayerH/2.0) - (b.Y + BarrelSize/2.0)
		if math.Abs(dx) < 8 && math.Abs(dy) < 10 {
			g.kill()
			return
		}
		if !p.Grounded() && p.State != StateClimb && !b.Jumped && math.Abs(dx) < 16 && dy < 0 && dy > -24 {
			b.Jumped = true
			g.w.Score += JumpBonus
			g.sound.Tone(600, 0.08, core.WaveSquare, core.ToneVolume)
		}
	}
}
