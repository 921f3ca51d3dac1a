package donkeykong

// Platform is a girder. Slope is the change in surface height per unit of
// x; positive girders run downhill to the right.
type Platform struct {
	X, Y, W float64
	Slope   float64
}

// SurfaceY returns the height of the girder's top at x.
func (p Platform) SurfaceY(x float64) float64 {
	return p.Y + p.Slope*(x-p.X)
}

// Spans reports whether x lies over the girder.
func (p Platform) Spans(x float64) bool {
	return x >= p.X && x <= p.X+p.W
}

// Ladder joins two girders. Top sits a little below the upper girder's
// surface and Bottom on the lower one. Broken ladders are scenery.
type Ladder struct {
	X           float64
	Top, Bottom float64
	Broken      bool
}

// Level is the fixed girder stage.
type Level struct {
	Platforms []Platform
	Ladders   []Ladder
}

const (
	girderSlope = 0.035
	ladderInset = 8 // Ladder tops sit this far below the upper surface
)

// Platform indices, bottom first.
const (
	floorGround = iota
	floor1
	floor2
	floor3
	floor4
	floorKong
	floorTop
)

// NewLevel builds the stage: seven sloped girders that alternate the
// direction barrels roll, joined by ladders, some of them broken.
func NewLevel() Level {
	var l Level
	l.Platforms = []Platform{
		floorGround: {X: 0, Y: 232, W: WorldW},
		floor1:      {X: 0, Y: 192, W: WorldW - 16, Slope: girderSlope},
		floor2:      {X: 16, Y: 160, W: WorldW - 16, Slope: -girderSlope},
		floor3:      {X: 0, Y: 128, W: WorldW - 16, Slope: girderSlope},
		floor4:      {X: 16, Y: 96, W: WorldW - 16, Slope: -girderSlope},
		floorKong:   {X: 0, Y: 72, W: WorldW, Slope: girderSlope / 2},
		floorTop:    {X: 72, Y: 48, W: 80},
	}

	add := func(x float64, top, bottom int, broken bool) {
		l.Ladders = append(l.Ladders, Ladder{
			X:      x,
			Top:    l.Platforms[top].SurfaceY(x) + ladderInset,
			Bottom: l.Platforms[bottom].SurfaceY(x),
			Broken: broken,
		})
	}
	add(180, floor1, floorGround, false)
	add(120, floor1, floorGround, true)
	add(40, floor2, floor1, false)
	add(110, floor2, floor1, true)
	add(180, floor3, floor2, false)
	add(140, floor3, floor2, true)
	add(40, floor4, floor3, false)
	add(90, floor4, floor3, true)
	add(180, floorKong, floor4, false)
	add(100, floorTop, floorKong, false)
	add(124, floorTop, floorKong, false)
	return l
}

// standingOn returns the girder whose surface is within [-above, +below]
// of a foot at (x, feet).
func (l *Level) standingOn(x, feet, above, below float64) (Platform, bool) {
	for _, p := range l.Platforms {
		if x < p.X-2 || x > p.X+p.W+2 {
			continue
		}
		s := p.SurfaceY(x)
		if feet >= s-above && feet <= s+below {
			return p, true
		}
	}
	return Platform{}, false
}
