package missilecommand

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

const (
	leadDist   = 50.0
	aimEase    = 0.1
	fireWithin = 20.0
	fireEvery  = 15
)

// Autopilot chases the highest enemy missile. It aims a little ahead of
// the warhead along its heading, eases the crosshair a tenth of the way
// there each tick and fires once close. With the sky clear it sweeps the
// crosshair across the field.
func (g *Game) Autopilot(frame *core.InputFrame) {
	c := g.w.Crosshair
	goal, ok := g.leadPoint()
	if !ok {
		goal = core.Vec{X: WorldW/2 + WorldW/4*math.Sin(float64(g.w.Tick)*0.02), Y: WorldH / 3}
	}
	frame.SetAim(c.Add(goal.Sub(c).Scale(aimEase)))
	if ok && core.Near(c, goal, fireWithin) && g.w.Tick%fireEvery == 0 {
		frame.Set(core.ActionFire)
	}
}

// leadPoint returns the spot just ahead of the enemy missile nearest the
// top of the screen.
func (g *Game) leadPoint() (core.Vec, bool) {
	if len(g.w.Enemies) == 0 {
		return core.Vec{}, false
	}
	m := g.w.Enemies[0]
	for _, e := range g.w.Enemies[1:] {
		if e.Pos.Y < m.Pos.Y {
			m = e
		}
	}
	heading := m.Target.Sub(m.From)
	if heading.Len() == 0 {
		return m.Pos, true
	}
	return m.Pos.Add(heading.Scale(leadDist / heading.Len())), true
}
