package asteroids

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// shipGlyphs are indexed by heading in eighths of a turn, starting at
// right and going clockwise (screen y grows downward).
var shipGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(WorldW, WorldH)
	if v.Empty() {
		return
	}

	for _, p := range g.w.Sparks {
		v.Plot(dst, core.Vec{X: p.X, Y: p.Y}, '.', core.ColorGray)
	}
	for _, r := range g.w.Rocks {
		drawRock(dst, v, r)
	}
	for _, sh := range g.w.Shots {
		v.Plot(dst, core.Vec{X: sh.X, Y: sh.Y}, '•', core.ColorBrightWhite)
	}

	s := g.w.Ship
	if g.w.Over || (s.Invuln > 0 && g.w.Tick%10 < 5) {
		return
	}
	v.Plot(dst, s.Pos(), shipGlyphs[heading(s.Angle)], core.ColorBrightCyan)
}

func drawRock(dst *core.Screen, v core.Viewport, r Rock) {
	n := len(r.Shape)
	if n == 0 {
		v.Plot(dst, r.Pos(), 'O', core.ColorWhite)
		return
	}
	vertex := func(i int) core.Vec {
		a := float64(i) / float64(n) * 2 * math.Pi
		k := r.Size * r.Shape[i%n]
		return core.Vec{X: r.X + math.Cos(a)*k, Y: r.Y + math.Sin(a)*k}
	}
	for i := 0; i < n; i++ {
		v.Line(dst, vertex(i), vertex(i+1), '*', core.ColorWhite)
	}
}

func heading(angle float64) int {
	a := core.Wrap(angle, 2*math.Pi)
	return int(math.Round(a/(math.Pi/4))) % 8
}
