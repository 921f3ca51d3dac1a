package adventure

import "github.com/vovakirdan/retro-arcade/internal/core"

var itemGlyphs = map[ItemKind]rune{
	ItemSword:    '†',
	ItemGoldKey:  '⚷',
	ItemBlackKey: '⚷',
	ItemWhiteKey: '⚷',
	ItemChalice:  'Ψ',
	ItemBridge:   '≡',
	ItemMagnet:   'U',
}

var itemColors = map[ItemKind]core.Color{
	ItemSword:    core.ColorBrightYellow,
	ItemGoldKey:  core.ColorBrightYellow,
	ItemBlackKey: core.ColorGray,
	ItemWhiteKey: core.ColorBrightWhite,
	ItemChalice:  core.ColorYellow,
	ItemBridge:   core.ColorMagenta,
	ItemMagnet:   core.ColorBrightWhite,
}

var dragonColors = [...]core.Color{core.ColorBrightYellow, core.ColorBrightGreen, core.ColorBrightRed}

// Render draws the player's room and everything in it.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(WorldW, WorldH)
	if v.Empty() {
		return
	}
	p := g.w.Player
	room := rooms[p.Room]

	for _, w := range room.Walls {
		v.FillBox(dst, w, '█', room.Color)
	}
	if room.Castle() {
		glyph := '#'
		if g.w.Gates[p.Room] {
			glyph = '┬'
		}
		v.FillBox(dst, Gate, glyph, room.Color)
	}

	for _, it := range g.w.Items {
		if it.Room != p.Room {
			continue
		}
		v.Plot(dst, it.Box.Center(), itemGlyphs[it.Kind], itemColors[it.Kind])
	}

	for i, d := range g.w.Dragons {
		if d.Room != p.Room {
			continue
		}
		glyph := 'D'
		switch d.State {
		case DragonBiting:
			glyph = 'Ð'
		case DragonSlain:
			glyph = 'x'
		}
		v.Plot(dst, core.Vec{X: d.X + 5, Y: d.Y + 10}, glyph, dragonColors[i%len(dragonColors)])
	}

	if b := g.w.Bat; b.Room == p.Room {
		glyph := 'V'
		if g.w.Tick%12 < 6 {
			glyph = 'W'
		}
		v.Plot(dst, b.Box().Center(), glyph, core.ColorBrightMagenta)
	}

	if p.Dead {
		if g.w.Tick%8 < 4 {
			v.Plot(dst, p.Box().Center(), '▒', room.Color)
		}
		return
	}
	v.Plot(dst, p.Box().Center(), '■', room.Color)
}
