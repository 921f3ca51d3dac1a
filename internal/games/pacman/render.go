package pacman

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/pathfind"
)

var ghostColors = [4]core.Color{core.ColorBrightRed, core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorOrange}

// Render draws the maze, then the player and ghosts on top.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(Cols, Rows)
	if v.Empty() {
		return
	}

	// Pellets first so walls sharing a screen cell win.
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			center := core.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			switch g.w.Maze[y][x] {
			case TileDot:
				v.Plot(dst, center, '·', core.ColorWhite)
			case TilePower:
				if g.w.Tick%30 < 15 {
					v.Plot(dst, center, '●', core.ColorBrightWhite)
				}
			}
		}
	}
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			center := core.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			switch g.w.Maze[y][x] {
			case TileWall:
				v.Plot(dst, center, '█', core.ColorBlue)
			case TileGate:
				v.Plot(dst, center, '─', core.ColorMagenta)
			}
		}
	}

	for i, gh := range g.w.Ghosts {
		pos := gh.Pos().Add(core.Vec{X: 0.5, Y: 0.5})
		switch gh.Mode {
		case ModeDead:
			v.Plot(dst, pos, '"', core.ColorWhite)
		case ModeScared:
			c := core.ColorBlue
			if g.w.PowerTimer < 120 && g.w.Tick%20 < 10 {
				c = core.ColorWhite
			}
			v.Plot(dst, pos, 'ᗣ', c)
		default:
			v.Plot(dst, pos, 'ᗣ', ghostColors[i])
		}
	}

	v.Plot(dst, g.w.Player.Pos().Add(core.Vec{X: 0.5, Y: 0.5}), playerGlyph(g.w.Player.Dir, g.w.Tick), core.ColorBrightYellow)
}

// playerGlyph opens the mouth toward the direction of travel.
func playerGlyph(d pathfind.Dir, tick int) rune {
	if tick%16 < 8 {
		return '●'
	}
	switch d {
	case pathfind.Right:
		return 'ᗧ'
	case pathfind.Left:
		return 'ᗤ'
	case pathfind.Up:
		return 'ᗢ'
	case pathfind.Down:
		return 'ᗥ'
	}
	return '●'
}
