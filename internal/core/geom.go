// Package core provides fundamental types and utilities for the arcade engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Vec is a point or velocity in a game's logical coordinate space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

// Len returns the euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Box is an axis-aligned bounding box with sub-pixel precision.
// All world-space collision tests go through Box or Dist.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the center point of the box.
func (b Box) Center() Vec { return Vec{b.X + b.W/2, b.Y + b.H/2} }

// Overlaps reports whether two boxes share interior area.
// Touching edges do not overlap. The test is symmetric.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// Contains reports whether the point lies inside the box (right/bottom exclusive).
func (b Box) Contains(p Vec) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}

// Dist returns the distance between two points.
func Dist(a, b Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Near reports whether two points are closer than r (center-distance test).
func Near(a, b Vec, r float64) bool {
	return Dist(a, b) < r
}

// Wrap maps v into [0, size). Used for toroidal playfields.
func Wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// Finite reports whether every component of v is a real number.
func Finite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// CapSpeed scales v down so its length does not exceed max.
func CapSpeed(v Vec, max float64) Vec {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
