package donkeykong

import "github.com/vovakirdan/retro-arcade/internal/core"

// Render draws girders, ladders, the ape, the damsel, barrels and player.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(WorldW, WorldH)
	if v.Empty() {
		return
	}

	for _, l := range g.level.Ladders {
		glyph, color := '╫', core.ColorCyan
		if l.Broken {
			glyph, color = '┆', core.ColorGray
		}
		v.Line(dst, core.Vec{X: l.X, Y: l.Top - ladderInset + 1}, core.Vec{X: l.X, Y: l.Bottom - 1}, glyph, color)
	}
	for _, pl := range g.level.Platforms {
		for x := pl.X; x <= pl.X+pl.W; x += 2 {
			v.Plot(dst, core.Vec{X: x, Y: pl.SurfaceY(x) + 1}, '▀', core.ColorRed)
		}
	}

	v.FillBox(dst, core.Box{X: 16, Y: 40, W: 28, H: 30}, '▓', core.ColorOrange)
	v.Plot(dst, core.Vec{X: 110, Y: 38}, '♀', core.ColorBrightMagenta)
	v.FillBox(dst, core.Box{X: 8, Y: 216, W: 16, H: 16}, '▒', core.ColorBlue)

	for _, b := range g.w.Barrels {
		v.Plot(dst, b.Box().Center(), 'o', core.ColorYellow)
	}

	p := g.w.Player
	glyph := '☻'
	if p.State == StateDead {
		glyph = 'x'
	}
	v.Plot(dst, core.Vec{X: p.CenterX(), Y: p.Y + PlayerH/2.0}, glyph, core.ColorBrightRed)

	if g.w.WinTimer > 0 && g.w.Tick%20 < 10 {
		v.Plot(dst, core.Vec{X: 110, Y: 28}, '♥', core.ColorBrightRed)
	}
}
