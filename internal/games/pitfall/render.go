package pitfall

import "github.com/vovakirdan/retro-arcade/internal/core"

// Tree trunk columns for each value of the room's tree field.
var treeRows = [4][]float64{
	{100, 250, 550, 700},
	{60, 200, 600, 740},
	{140, 300, 500, 660},
	{40, 180, 620, 760},
}

var treasureGlyphs = [...]rune{'◊', '▬', '▭', '$'}

// Render draws the canopy, the jungle floor and the tunnel below it.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(WorldW, WorldH)
	if v.Empty() {
		return
	}
	r := g.room

	v.FillBox(dst, core.Box{X: 0, Y: 0, W: WorldW, H: 60}, '▓', core.ColorGreen)
	for _, x := range treeRows[r.Trees&3] {
		v.Line(dst, core.Vec{X: x, Y: 60}, core.Vec{X: x, Y: GroundY - 1}, '║', core.ColorOrange)
	}

	g.renderGround(dst, v)

	if ladder, ok := r.Find(KindLadder); ok {
		v.Line(dst, core.Vec{X: ladder.X, Y: GroundY + 2}, core.Vec{X: ladder.X, Y: UndergroundY - 1}, '╫', core.ColorYellow)
	}
	wall := r.WallX()
	v.FillBox(dst, core.Box{X: wall - 10, Y: GroundY + 20, W: 20, H: UndergroundY - GroundY - 20}, '▒', core.ColorRed)

	for _, vine := range g.w.Vines {
		v.Line(dst, core.Vec{X: vine.PivotX, Y: vine.PivotY}, vine.Tip(), '·', core.ColorBrightGreen)
	}
	for _, l := range g.w.Logs {
		v.Plot(dst, core.Vec{X: l.X, Y: GroundY - 5}, '●', core.ColorOrange)
	}
	for _, c := range g.w.Crocs {
		glyph := 'w'
		if c.Open() {
			glyph = 'W'
		}
		v.Plot(dst, core.Vec{X: c.X, Y: GroundY}, glyph, core.ColorBrightGreen)
	}
	for _, o := range r.Items {
		switch o.Kind {
		case KindFire:
			v.Plot(dst, core.Vec{X: o.X, Y: GroundY - 5}, '▲', core.ColorBrightRed)
		case KindSnake:
			v.Plot(dst, core.Vec{X: o.X, Y: GroundY - 5}, 'S', core.ColorBrightGreen)
		case KindTreasure:
			if !g.w.Collected[r.Index] {
				v.Plot(dst, core.Vec{X: o.X, Y: GroundY - 5}, treasureGlyphs[o.Treasure], core.ColorBrightYellow)
			}
		}
	}
	for _, s := range g.w.Scorpions {
		v.Plot(dst, core.Vec{X: s.X, Y: UndergroundY - 5}, 'ж', core.ColorBrightWhite)
	}

	p := g.w.Player
	glyph, color := '☺', core.ColorBrightGreen
	switch p.State {
	case StateDead:
		if p.DeathTimer/4%2 == 0 {
			return
		}
		glyph, color = 'x', core.ColorBrightRed
	case StateClimb:
		glyph = '╪'
	case StateSwing:
		glyph = 'Y'
	}
	v.Plot(dst, core.Vec{X: p.X, Y: p.Y - PlayerH/2}, glyph, color)
}

// renderGround draws the jungle floor with this room's pits, water, tar or
// quicksand cut into it.
func (g *Game) renderGround(dst *core.Screen, v core.Viewport) {
	r := g.room
	for x := 0.0; x < WorldW; x += 4 {
		glyph, color := '▀', core.ColorYellow
		switch {
		case g.inHole(x):
			glyph, color = ' ', core.ColorDefault
			if r.Scene.Crocs() {
				glyph, color = '≈', core.ColorBlue
			}
		case r.Scene == SceneTarPit && g.inBreath(x, 300, 500):
			glyph, color = '▒', core.ColorGray
		case r.Scene == SceneQuicksand && g.inBreath(x, 330, 470):
			glyph, color = '░', core.ColorOrange
		}
		v.Plot(dst, core.Vec{X: x, Y: GroundY + 5}, glyph, color)
		v.Plot(dst, core.Vec{X: x, Y: UndergroundY + 5}, '▀', core.ColorOrange)
	}
}

// inBreath reports whether x lies in the part of a breathing pit that is
// currently open.
func (g *Game) inBreath(x, from, to float64) bool {
	mid := (from + to) / 2
	half := (to - from) / 2 * g.w.Breath
	return x > mid-half && x < mid+half
}
