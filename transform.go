package sprig

import "image"

// Affine is a 2D affine transform. Applying it to a point (x, y) yields
// (A*x + C*y + TX, B*x + D*y + TY).
type Affine struct {
	A, B, C, D, TX, TY float64
}

// AffineIdentity returns the identity transform.
func AffineIdentity() Affine {
	return Affine{A: 1, D: 1}
}

// Apply transforms a point.
func (m Affine) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.C*v.Y + m.TX,
		Y: m.B*v.X + m.D*v.Y + m.TY,
	}
}

// Translate returns m followed by a translation.
func (m Affine) Translate(x, y float64) Affine {
	m.TX += x
	m.TY += y
	return m
}

// Scale returns m followed by a scale about the origin.
func (m Affine) Scale(x, y float64) Affine {
	m.A *= x
	m.C *= x
	m.TX *= x
	m.B *= y
	m.D *= y
	m.TY *= y
	return m
}

// Invert returns the inverse transform. The second result is false when the
// transform is degenerate and cannot be inverted.
func (m Affine) Invert() (Affine, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Affine{}, false
	}
	inv := Affine{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
	}
	inv.TX = -(inv.A*m.TX + inv.C*m.TY)
	inv.TY = -(inv.B*m.TX + inv.D*m.TY)
	return inv, true
}

// applyToPoint transforms a physical pixel point, rounding to the nearest
// pixel.
func (m Affine) applyToPoint(p image.Point) image.Point {
	v := m.Apply(Vec2{X: float64(p.X), Y: float64(p.Y)})
	return image.Point{X: int(v.X + 0.5), Y: int(v.Y + 0.5)}
}
