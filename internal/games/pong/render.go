package pong

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '┊'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	v := dst.Fit(WorldW, WorldH)
	if v.Empty() {
		return
	}

	for y := 0.0; y < WorldH; y += 25 {
		v.Plot(dst, core.Vec{X: WorldW / 2, Y: y}, NetChar, core.ColorGray)
	}

	v.FillBox(dst, core.Box{X: PaddleOffset, Y: g.w.LeftY, W: PaddleWidth, H: PaddleHeight}, PaddleChar, core.ColorBrightWhite)
	v.FillBox(dst, core.Box{X: WorldW - PaddleOffset - PaddleWidth, Y: g.w.RightY, W: PaddleWidth, H: PaddleHeight}, PaddleChar, core.ColorWhite)
	v.Plot(dst, g.w.Ball.Box().Center(), BallChar, core.ColorBrightYellow)

	lx, ly := v.ToScreen(core.Vec{X: WorldW / 4, Y: 20})
	rx, _ := v.ToScreen(core.Vec{X: 3 * WorldW / 4, Y: 20})
	dst.DrawTextColor(lx, ly, fmt.Sprint(g.w.LeftScore), core.ColorGray)
	dst.DrawTextColor(rx, ly, fmt.Sprint(g.w.RightScore), core.ColorGray)
}
