package asteroids

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

const (
	fireRange   = 300.0
	thrustRange = 200.0
)

// Autopilot turns toward the nearest rock, fires once lined up and in
// range, and closes the distance when the rock is far away.
func (g *Game) Autopilot(frame *core.InputFrame) {
	s := g.w.Ship
	target, dist, ok := g.nearestRock()
	if !ok {
		return
	}

	diff := math.Remainder(math.Atan2(target.Y-s.Y, target.X-s.X)-s.Angle, 2*math.Pi)
	switch {
	case math.Abs(diff) < Rotation:
		if s.Cooldown <= 0 && dist < fireRange {
			frame.Set(core.ActionFire)
		}
	case diff > 0:
		frame.Set(core.ActionRight)
	default:
		frame.Set(core.ActionLeft)
	}
	if dist > thrustRange {
		frame.Set(core.ActionUp)
	}
}

func (g *Game) nearestRock() (core.Vec, float64, bool) {
	best, bestDist := core.Vec{}, math.Inf(1)
	for _, r := range g.w.Rocks {
		if d := core.Dist(g.w.Ship.Pos(), r.Pos()); d < bestDist {
			best, bestDist = r.Pos(), d
		}
	}
	return best, bestDist, !math.IsInf(bestDist, 1)
}
