package adventure

import "github.com/vovakirdan/retro-arcade/internal/core"

const roamDeadZone = 0.3

// Autopilot wanders. It follows the heading the world rerolls every 60 to
// 179 ticks, pressing a direction key for each component of the heading
// that is strong enough.
func (g *Game) Autopilot(frame *core.InputFrame) {
	if g.w.Player.Dead {
		return
	}
	r := g.w.Roam
	switch {
	case r.X < -roamDeadZone:
		frame.Set(core.ActionLeft)
	case r.X > roamDeadZone:
		frame.Set(core.ActionRight)
	}
	switch {
	case r.Y < -roamDeadZone:
		frame.Set(core.ActionUp)
	case r.Y > roamDeadZone:
		frame.Set(core.ActionDown)
	}
}
