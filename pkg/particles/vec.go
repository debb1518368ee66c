package particles

import "github.com/gonewx/particlefx/internal/curve"

// Vec3 is a point or direction in the host's 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Lerp returns the point t of the way from v to o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		curve.Lerp(v.X, o.X, t),
		curve.Lerp(v.Y, o.Y, t),
		curve.Lerp(v.Z, o.Z, t),
	}
}

// Color is a normalized RGBA color, each channel in [0,1].
type Color struct {
	R, G, B, A float64
}

// Lerp blends each channel t of the way from c to o.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		curve.Lerp(c.R, o.R, t),
		curve.Lerp(c.G, o.G, t),
		curve.Lerp(c.B, o.B, t),
		curve.Lerp(c.A, o.A, t),
	}
}

// WithAlpha returns c with its alpha channel replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func (c Color) valid() bool {
	for _, ch := range [4]float64{c.R, c.G, c.B, c.A} {
		if ch < 0 || ch > 1 {
			return false
		}
	}
	return true
}
