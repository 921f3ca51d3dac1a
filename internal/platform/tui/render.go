package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// zone is the part of the screen a cell belongs to. Each zone has its own
// backdrop so the HUD bar and the letterbox read apart from the playfield.
type zone int

const (
	zoneField zone = iota
	zoneHUD
	zoneLetterbox
	zoneCount
)

var zoneBackground = [zoneCount]string{
	zoneField:     "",
	zoneHUD:       "236",
	zoneLetterbox: "233",
}

// cellStyles holds one style per zone and palette color. It is built once
// and only read afterwards, so SSH sessions can share it.
var cellStyles = buildCellStyles()

func buildCellStyles() [zoneCount][]lipgloss.Style {
	var styles [zoneCount][]lipgloss.Style
	for z := range styles {
		for _, c := range core.Colors() {
			st := lipgloss.NewStyle()
			if code := c.ANSI(); code != "" {
				st = st.Foreground(lipgloss.Color(code))
			}
			if bg := zoneBackground[z]; bg != "" {
				st = st.Background(lipgloss.Color(bg))
			}
			if zone(z) == zoneHUD {
				st = st.Bold(true)
			}
			styles[z] = append(styles[z], st)
		}
	}
	return styles
}

func styleFor(z zone, c core.Color) lipgloss.Style {
	row := cellStyles[z]
	if int(c) >= len(row) {
		c = core.ColorDefault
	}
	return row[c]
}

// zoneOf places a cell. Without a playfield the whole area below the HUD
// counts as field.
func zoneOf(x, y int, field core.Rect, framed bool) zone {
	switch {
	case y < core.HUDRows:
		return zoneHUD
	case framed && !field.Contains(x, y):
		return zoneLetterbox
	default:
		return zoneField
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of cells that share a zone and color are styled together to keep
// the escape sequences short.
func RenderScreen(s *core.Screen) string {
	field, framed := s.Playfield()

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			z, c := zoneOf(x, y, field, framed), s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != c || zoneOf(x, y, field, framed) != z {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(z, c).Render(run.String()))
		}
	}
	return sb.String()
}
