package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, true},
		{"apart horizontally", Box{0, 0, 10, 10}, Box{15, 0, 10, 10}, false},
		{"apart vertically", Box{0, 0, 10, 10}, Box{0, 15, 10, 10}, false},
		{"touching right edge", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, false},
		{"touching bottom edge", Box{0, 0, 10, 10}, Box{0, 10, 10, 10}, false},
		{"contained", Box{0, 0, 20, 20}, Box{5, 5, 2, 2}, true},
		{"sub-pixel overlap", Box{0, 0, 10, 10}, Box{9.9, 9.9, 1, 1}, true},
		{"zero width inside", Box{0, 0, 10, 10}, Box{5, 5, 0, 4}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxContainsAndCenter(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 4, H: 6}

	if c := b.Center(); c != (Vec{12, 23}) {
		t.Errorf("Center() = %v, expected {12 23}", c)
	}
	if !b.Contains(Vec{10, 20}) {
		t.Error("top-left corner should be inside")
	}
	if b.Contains(Vec{14, 26}) {
		t.Error("bottom-right corner is exclusive")
	}
}

func TestDistAndNear(t *testing.T) {
	a, b := Vec{0, 0}, Vec{3, 4}
	if d := Dist(a, b); d != 5 {
		t.Errorf("Dist() = %v, expected 5", d)
	}
	if Dist(a, b) != Dist(b, a) {
		t.Error("Dist should be symmetric")
	}
	if !Near(a, b, 5.01) {
		t.Error("points at distance 5 should be near with radius 5.01")
	}
	if Near(a, b, 5) {
		t.Error("Near uses a strict comparison")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, size, expected float64
	}{
		{5, 10, 5},
		{12, 10, 2},
		{-1, 10, 9},
		{-10, 10, 0},
		{3, 0, 3},
	}
	for _, tc := range tests {
		if got := Wrap(tc.v, tc.size); got != tc.expected {
			t.Errorf("Wrap(%v, %v) = %v, expected %v", tc.v, tc.size, got, tc.expected)
		}
	}
}

func TestCapSpeed(t *testing.T) {
	v := CapSpeed(Vec{30, 40}, 5)
	if math.Abs(v.Len()-5) > 1e-9 {
		t.Errorf("capped length = %v, expected 5", v.Len())
	}
	if v.X <= 0 || v.Y <= 0 {
		t.Errorf("direction must be preserved, got %v", v)
	}

	slow := Vec{1, 1}
	if CapSpeed(slow, 5) != slow {
		t.Error("a vector under the cap must be unchanged")
	}
}

func TestFiniteAndSign(t *testing.T) {
	if !Finite(Vec{1, -2}) {
		t.Error("ordinary vector should be finite")
	}
	if Finite(Vec{math.NaN(), 0}) || Finite(Vec{0, math.Inf(-1)}) {
		t.Error("NaN and Inf must not be finite")
	}
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(0.1) != 1 {
		t.Error("Sign returned an unexpected value")
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"adjacent", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"single cell", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)
	if !r.Contains(10, 10) || r.Contains(30, 25) || r.Contains(5, 15) {
		t.Error("Contains returned an unexpected result")
	}
	if r.Right() != 30 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (30, 25)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
	if ClampF(-0.5, 0, 1) != 0 || ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF did not clamp")
	}
}
