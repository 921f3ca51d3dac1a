package missilecommand

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Render draws the ground, the defences, every trail and fireball and the
// crosshair on top.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(WorldW, WorldH)
	if v.Empty() {
		return
	}

	v.FillBox(dst, core.Box{X: 0, Y: GroundY, W: WorldW, H: WorldH - GroundY}, '▀', core.ColorOrange)
	for _, c := range g.w.Cities {
		glyph, color := '▙', core.ColorBrightCyan
		if !c.Alive {
			glyph, color = '_', core.ColorGray
		}
		v.Plot(dst, c.Pos, glyph, color)
	}
	for _, s := range g.w.Silos {
		glyph := '▲'
		if !s.Alive {
			glyph = '_'
		}
		v.Plot(dst, s.Pos, glyph, core.ColorYellow)
	}

	for _, m := range g.w.Enemies {
		v.Line(dst, m.From, m.Pos, '·', core.ColorRed)
		v.Plot(dst, m.Pos, '*', core.ColorBrightRed)
	}
	for _, m := range g.w.Missiles {
		v.Line(dst, m.From, m.Pos, '·', core.ColorBlue)
		v.Plot(dst, m.Pos, '•', core.ColorBrightBlue)
	}
	for _, e := range g.w.Explosions {
		color := core.ColorBrightYellow
		if e.Hostile {
			color = core.ColorBrightRed
		}
		for a := 0; a < 16; a++ {
			th := float64(a) * math.Pi / 8
			v.Plot(dst, e.Pos.Add(core.Vec{X: math.Cos(th), Y: math.Sin(th)}.Scale(e.Radius)), '░', color)
		}
		v.Plot(dst, e.Pos, '█', color)
	}

	v.Plot(dst, g.w.Crosshair, '+', core.ColorBrightWhite)
}
