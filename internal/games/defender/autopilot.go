package defender

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

const (
	altitudeSlack = 10
	fireBand      = 50
	fireEvery     = 10
)

// Autopilot chases the lander nearest along x, matches its altitude and
// fires every tenth tick while facing it within the firing band. With the
// sky empty it patrols to the right.
func (g *Game) Autopilot(frame *core.InputFrame) {
	s := g.w.Ship
	var target *Lander
	best := math.Inf(1)
	for i := range g.w.Landers {
		if d := math.Abs(g.w.Landers[i].X - s.X); d < best {
			best = d
			target = &g.w.Landers[i]
		}
	}
	if target == nil {
		frame.Set(core.ActionRight)
		return
	}

	dx, dy := target.X-s.X, target.Y-s.Y
	if dx > 0 {
		frame.Set(core.ActionRight)
	} else {
		frame.Set(core.ActionLeft)
	}
	switch {
	case dy > altitudeSlack:
		frame.Set(core.ActionDown)
	case dy < -altitudeSlack:
		frame.Set(core.ActionUp)
	}

	facing := (dx > 0 && s.Facing > 0) || (dx < 0 && s.Facing < 0)
	if facing && math.Abs(dy) < fireBand && g.w.Tick%fireEvery == 0 {
		frame.Set(core.ActionFire)
	}
}
