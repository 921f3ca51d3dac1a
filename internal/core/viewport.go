package core

import "math"

// CellAspect is how much taller a terminal cell is than it is wide.
const CellAspect = 2.0

// HUDRows is the number of screen rows reserved above the playfield.
const HUDRows = 1

// Viewport maps a game's logical coordinate space onto screen cells.
// The mapping is a uniform scale (corrected for cell aspect) with the
// playfield centered and letterboxed below the HUD row.
type Viewport struct {
	WorldW, WorldH float64
	OffsetX        int     // First screen column of the playfield
	OffsetY        int     // First screen row of the playfield
	Cols, Rows     int     // Playfield size in cells
	scaleX, scaleY float64 // World units per cell
}

// FitViewport fits a world of worldW x worldH units into a screen of
// screenW x screenH cells, leaving HUDRows rows at the top.
func FitViewport(worldW, worldH float64, screenW, screenH int) Viewport {
	v := Viewport{WorldW: worldW, WorldH: worldH}
	availW := screenW
	availH := screenH - HUDRows
	if availW <= 0 || availH <= 0 || worldW <= 0 || worldH <= 0 {
		return v
	}

	// World units per cell horizontally, chosen so the whole world fits.
	perCol := math.Max(worldW/float64(availW), worldH/(float64(availH)*CellAspect))
	v.Cols = Min(availW, int(math.Ceil(worldW/perCol)))
	v.Rows = Min(availH, int(math.Ceil(worldH/(perCol*CellAspect))))
	if v.Cols < 1 {
		v.Cols = 1
	}
	if v.Rows < 1 {
		v.Rows = 1
	}
	v.scaleX = worldW / float64(v.Cols)
	v.scaleY = worldH / float64(v.Rows)
	v.OffsetX = (availW - v.Cols) / 2
	v.OffsetY = HUDRows + (availH-v.Rows)/2
	return v
}

// Empty reports whether nothing can be drawn (zero-sized screen or world).
func (v Viewport) Empty() bool {
	return v.Cols == 0 || v.Rows == 0
}

// ToScreen converts a world point to a screen cell.
func (v Viewport) ToScreen(p Vec) (int, int) {
	if v.Empty() {
		return -1, -1
	}
	x := v.OffsetX + int(math.Floor(p.X/v.scaleX))
	y := v.OffsetY + int(math.Floor(p.Y/v.scaleY))
	return x, y
}

// Visible reports whether a world point falls inside the playfield.
func (v Viewport) Visible(p Vec) bool {
	return p.X >= 0 && p.X < v.WorldW && p.Y >= 0 && p.Y < v.WorldH
}

// ToWorld converts a screen cell to the world point at the cell's center.
// The second result is false when the cell is outside the playfield.
func (v Viewport) ToWorld(x, y int) (Vec, bool) {
	if v.Empty() {
		return Vec{}, false
	}
	cx, cy := x-v.OffsetX, y-v.OffsetY
	if cx < 0 || cy < 0 || cx >= v.Cols || cy >= v.Rows {
		return Vec{}, false
	}
	return Vec{(float64(cx) + 0.5) * v.scaleX, (float64(cy) + 0.5) * v.scaleY}, true
}

// BoxRect converts a world box to the covering screen rectangle.
// Every box covers at least one cell.
func (v Viewport) BoxRect(b Box) Rect {
	x0, y0 := v.ToScreen(Vec{b.X, b.Y})
	x1, y1 := v.ToScreen(Vec{b.Right() - 1e-9, b.Bottom() - 1e-9})
	return NewRect(x0, y0, Max(x1-x0+1, 1), Max(y1-y0+1, 1))
}

// Plot draws a colored rune at a world point when it is inside the playfield.
func (v Viewport) Plot(dst *Screen, p Vec, r rune, c Color) {
	if !v.Visible(p) {
		return
	}
	x, y := v.ToScreen(p)
	dst.SetColor(x, y, r, c)
}

// FillBox fills the cells covered by a world box, clipped to the playfield.
func (v Viewport) FillBox(dst *Screen, b Box, r rune, c Color) {
	rect := v.BoxRect(b)
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			if v.insideCell(x, y) {
				dst.SetColor(x, y, r, c)
			}
		}
	}
}

// Line draws a straight world-space segment cell by cell.
func (v Viewport) Line(dst *Screen, a, b Vec, r rune, c Color) {
	steps := int(math.Max(math.Abs(b.X-a.X)/v.scaleX, math.Abs(b.Y-a.Y)/v.scaleY)) + 1
	if v.Empty() || steps > 4096 {
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		v.Plot(dst, Vec{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}, r, c)
	}
}

// Frame draws a border one cell outside the playfield when there is room.
func (v Viewport) Frame(dst *Screen) {
	if v.Empty() {
		return
	}
	dst.DrawBox(NewRect(v.OffsetX-1, v.OffsetY-1, v.Cols+2, v.Rows+2))
}

func (v Viewport) insideCell(x, y int) bool {
	return x >= v.OffsetX && x < v.OffsetX+v.Cols && y >= v.OffsetY && y < v.OffsetY+v.Rows
}
