package core

// Color is a cell's foreground color, an index into the arcade palette.
type Color uint8

// The arcade palette. The names follow the ANSI colors they started from;
// the shades are picked from the xterm 256-color cube to sit closer to the
// cabinet phosphors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	colorCount
)

type swatch struct {
	name string
	ansi string // xterm 256-color index; empty keeps the terminal default
}

var palette = [colorCount]swatch{
	ColorDefault:       {"default", ""},
	ColorRed:           {"red", "160"},
	ColorGreen:         {"green", "34"},
	ColorYellow:        {"yellow", "178"},
	ColorBlue:          {"blue", "27"},
	ColorMagenta:       {"magenta", "127"},
	ColorCyan:          {"cyan", "37"},
	ColorWhite:         {"white", "252"},
	ColorBrightRed:     {"bright red", "196"},
	ColorBrightGreen:   {"bright green", "46"},
	ColorBrightYellow:  {"bright yellow", "226"},
	ColorBrightBlue:    {"bright blue", "33"},
	ColorBrightMagenta: {"bright magenta", "201"},
	ColorBrightCyan:    {"bright cyan", "51"},
	ColorBrightWhite:   {"bright white", "231"},
	ColorOrange:        {"orange", "208"},
	ColorGray:          {"gray", "245"},
}

// Colors returns every palette entry in order.
func Colors() []Color {
	cs := make([]Color, colorCount)
	for i := range cs {
		cs[i] = Color(i)
	}
	return cs
}

// ANSI returns the xterm 256-color index of c. Unknown colors and
// ColorDefault return "", meaning the terminal's own foreground.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return palette[c].ansi
}

// String returns the palette name of c.
func (c Color) String() string {
	if c >= colorCount {
		return "unknown"
	}
	return palette[c].name
}
