package defender

import "github.com/vovakirdan/retro-arcade/internal/core"

const stars = 100

// Render draws the camera's slice of the world under a scanner strip that
// shows every lander in the whole world.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(ViewW, WorldH)
	if v.Empty() {
		return
	}
	cam := g.w.Camera()
	view := func(x, y float64) core.Vec { return core.Vec{X: x - cam, Y: y} }

	// Stars scroll at half speed.
	for i := 0; i < stars; i++ {
		x := core.Wrap(float64(i*137%WorldW)-cam*0.5, WorldW)
		y := float64(i*53%WorldH) + MinimapH
		if (g.w.Tick/8+i)%9 != 0 {
			v.Plot(dst, core.Vec{X: x, Y: y}, '.', core.ColorGray)
		}
	}

	first := int(cam / terrainStep)
	for i := first; i < len(g.w.Terrain)-1 && float64(i*terrainStep) <= cam+ViewW; i++ {
		a := view(float64(i*terrainStep), g.w.Terrain[i])
		b := view(float64((i+1)*terrainStep), g.w.Terrain[i+1])
		v.Line(dst, a, b, '^', core.ColorOrange)
	}

	for _, l := range g.w.Lasers {
		v.Line(dst, view(l.X, l.Y), view(l.X+core.Sign(l.VX)*40, l.Y), '-', core.ColorBrightWhite)
	}
	for _, e := range g.w.Landers {
		v.Plot(dst, view(e.X, e.Y), 'Ѫ', core.ColorBrightGreen)
	}
	for _, s := range g.w.Sparks {
		v.Plot(dst, view(s.X, s.Y), '*', core.ColorYellow)
	}

	s := g.w.Ship
	if s.Invuln == 0 || g.w.Tick%10 < 5 {
		glyph := '►'
		if s.Facing < 0 {
			glyph = '◄'
		}
		v.Plot(dst, view(s.X, s.Y), glyph, core.ColorBrightWhite)
	}

	g.renderScanner(dst, v)
}

// renderScanner squeezes the whole world into the strip above the view.
func (g *Game) renderScanner(dst *core.Screen, v core.Viewport) {
	v.Line(dst, core.Vec{X: 0, Y: MinimapH}, core.Vec{X: ViewW - 1, Y: MinimapH}, '─', core.ColorBlue)
	scan := func(x, y float64) core.Vec {
		return core.Vec{X: x * ViewW / WorldW, Y: y * (MinimapH - 1) / WorldH}
	}
	cam := g.w.Camera()
	v.Plot(dst, scan(cam, 0), '[', core.ColorBlue)
	v.Plot(dst, scan(cam+ViewW, 0), ']', core.ColorBlue)
	for _, e := range g.w.Landers {
		v.Plot(dst, scan(e.X, e.Y), '·', core.ColorGreen)
	}
	v.Plot(dst, scan(g.w.Ship.X, g.w.Ship.Y), '+', core.ColorBrightWhite)
}
