package sprig

import "image"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication is the renderer's concern.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent draws nothing.
var ColorTransparent = Color{}

// Vec2 is a 2D vector in virtual units. The coordinate system has its origin
// at the top-left, with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle in virtual units.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Margin specifies the four borders of a group, in virtual units.
type Margin struct {
	Left, Top, Right, Bottom float64
}

// UniformMargin creates a Margin with all four sides of equal size.
func UniformMargin(m float64) Margin { return Margin{m, m, m, m} }

// SymmetricMargin creates a Margin with left/right sizes of x and
// top/bottom sizes of y.
func SymmetricMargin(x, y float64) Margin { return Margin{x, y, x, y} }

// clampf clamps v to [lo, hi].
func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// maxf returns the larger of two float64s.
func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// maxi returns the larger of two ints.
func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// absi returns the absolute value of an int.
func absi(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ptInRect reports whether p lies inside r, treating the edges as inside.
func ptInRect(p image.Point, r image.Rectangle) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
