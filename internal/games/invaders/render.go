package invaders

import "github.com/vovakirdan/retro-arcade/internal/core"

var rowGlyphs = [GridRows]struct {
	r rune
	c core.Color
}{
	{'Ѫ', core.ColorBrightMagenta},
	{'Ж', core.ColorBrightCyan},
	{'Ж', core.ColorBrightCyan},
	{'Ш', core.ColorBrightWhite},
}

// Render draws the grid, bullets and cannon.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(WorldW, WorldH)
	if v.Empty() {
		return
	}

	for _, inv := range g.w.Invaders {
		if inv.Alive {
			glyph := rowGlyphs[inv.Row]
			v.FillBox(dst, inv.Box(), glyph.r, glyph.c)
		}
	}
	for _, b := range g.w.Shots {
		v.Plot(dst, b.Box().Center(), '|', core.ColorBrightGreen)
	}
	for _, b := range g.w.Bombs {
		v.Plot(dst, b.Box().Center(), '¦', core.ColorBrightRed)
	}

	v.FillBox(dst, g.cannon(), '▀', core.ColorBrightGreen)
	v.Plot(dst, core.Vec{X: g.w.PlayerX + PlayerW/2, Y: PlayerY - 3}, '▲', core.ColorBrightGreen)
}
