package centipede

import "github.com/vovakirdan/retro-arcade/internal/core"

var mushroomGlyphs = [...]rune{'░', '▒', '▓'}

// Render draws mushrooms, the centipede, shots and the shooter.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(WorldW, WorldH)
	if v.Empty() {
		return
	}

	v.Line(dst, core.Vec{X: 0, Y: ZoneTop}, core.Vec{X: WorldW - 1, Y: ZoneTop}, '·', core.ColorGray)

	for _, m := range g.w.Mushrooms {
		hp := core.Clamp(m.HP, 1, MushroomHP)
		v.Plot(dst, core.Vec{X: m.X + CellSize/2, Y: m.Y + CellSize/2}, mushroomGlyphs[hp-1], core.ColorGreen)
	}
	for _, s := range g.w.Segments {
		glyph, color := 'o', core.ColorBrightGreen
		if s.Head {
			glyph, color = '@', core.ColorBrightRed
		}
		v.Plot(dst, core.Vec{X: s.X + CellSize/2, Y: s.Y + CellSize/2}, glyph, color)
	}
	for _, s := range g.w.Shots {
		v.Plot(dst, core.Vec{X: s.X, Y: s.Y}, '|', core.ColorBrightYellow)
	}

	if !g.w.Dead {
		v.Plot(dst, core.Vec{X: g.w.PlayerX + CellSize/2, Y: g.w.PlayerY + CellSize/2}, '▲', core.ColorBrightCyan)
	} else if g.w.Tick%10 < 5 {
		v.Plot(dst, core.Vec{X: g.w.PlayerX + CellSize/2, Y: g.w.PlayerY + CellSize/2}, '*', core.ColorBrightRed)
	}
}
