package pitfall

import "github.com/vovakirdan/retro-arcade/internal/core"

const (
	lookAhead  = 100
	jumpWithin = 80
	vineFrom   = 250
	vineTo     = 350
	letGoPast  = 480
	nearPeak   = 0.005
)

// Autopilot runs right through the jungle. On the surface it jumps logs,
// fire and snakes that come within range and leaps for the vine over a
// pit, letting go once the swing carries it past the far edge or tops out
// on the far side.
// Underground it runs away from the wall.
func (g *Game) Autopilot(frame *core.InputFrame) {
	p := g.w.Player
	if p.State == StateDead {
		return
	}

	if p.Underground() {
		if p.X < g.room.WallX() {
			frame.Set(core.ActionLeft)
		} else {
			frame.Set(core.ActionRight)
		}
		return
	}

	frame.Set(core.ActionRight)
	switch {
	case p.State == StateSwing:
		if len(g.w.Vines) == 0 {
			break
		}
		v := g.w.Vines[0]
		if v.Spin > 0 && v.Angle > 0 && (p.X > letGoPast || v.Spin < nearPeak) {
			frame.Set(core.ActionFire)
		}
	case p.OnGround:
		if d, ok := g.nearestHazard(p.X); ok && d < jumpWithin {
			frame.Set(core.ActionFire)
		}
		pit := g.room.Scene.Holes() || g.room.Scene.Breathes()
		if pit && len(g.w.Vines) > 0 && p.X > vineFrom && p.X < vineTo {
			frame.Set(core.ActionFire)
		}
	}
}

// nearestHazard returns the distance to the closest log, fire or snake
// ahead of x.
func (g *Game) nearestHazard(x float64) (float64, bool) {
	best, found := float64(lookAhead), false
	consider := func(ox float64) {
		if d := ox - x; d > 0 && d < best {
			best, found = d, true
		}
	}
	for _, l := range g.w.Logs {
		consider(l.X)
	}
	for _, o := range g.room.Items {
		if o.Kind == KindFire || o.Kind == KindSnake {
			consider(o.X)
		}
	}
	return best, found
}
