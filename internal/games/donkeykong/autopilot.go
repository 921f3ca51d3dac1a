package donkeykong

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

const (
	patrolMargin = 20
	jumpRange    = 30
)

// Autopilot heads for the nearest intact ladder rising from its girder and
// climbs it; with no ladder in reach it patrols. Barrels rolling close on
// the same level are jumped.
func (g *Game) Autopilot(frame *core.InputFrame) {
	p := g.w.Player
	switch p.State {
	case StateDead:
		return
	case StateClimb:
		frame.Set(core.ActionUp)
		return
	}
	if g.w.WinTimer > 0 {
		return
	}

	if l, ok := g.ladderUp(p); ok {
		switch d := l.X - p.CenterX(); {
		case math.Abs(d) < 2:
			frame.Set(core.ActionUp)
		case d > 0:
			frame.Set(core.ActionRight)
		default:
			frame.Set(core.ActionLeft)
		}
	} else {
		dir := p.Facing
		if p.X < patrolMargin {
			dir = 1
		} else if p.X > WorldW-patrolMargin {
			dir = -1
		}
		if dir > 0 {
			frame.Set(core.ActionRight)
		} else {
			frame.Set(core.ActionLeft)
		}
	}

	if p.Grounded() {
		for _, b := range g.w.Barrels {
			if math.Abs(b.Y-p.Y) < PlayerH && math.Abs(b.X-p.X) < jumpRange {
				frame.Set(core.ActionFire)
				break
			}
		}
	}
}

// ladderUp finds the closest intact ladder whose foot is at the player's
// feet.
func (g *Game) ladderUp(p Player) (Ladder, bool) {
	var best Ladder
	bestDist := math.Inf(1)
	for _, l := range g.level.Ladders {
		if l.Broken || math.Abs(l.Bottom-p.Feet()) >= 6 {
			continue
		}
		if d := math.Abs(l.X - p.CenterX()); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
