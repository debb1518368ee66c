// Package curve provides the interpolation primitives used when blending
// between two keyframe samples. A Mode reshapes the raw progress ratio
// inside a keyframe interval before the linear blend is applied.
package curve

// Mode selects how the blend ratio between two keyframes is shaped.
// The zero value behaves like Linear.
type Mode string

const (
	Linear  Mode = "Linear"
	EaseIn  Mode = "EaseIn"  // quadratic ease-in
	EaseOut Mode = "EaseOut" // quadratic ease-out
	Smooth  Mode = "Smooth"  // cubic smoothstep
)

// Shape remaps a raw ratio in [0,1] according to the mode.
// Unknown modes fall back to linear.
func Shape(m Mode, ratio float64) float64 {
	switch m {
	case EaseIn:
		return ratio * ratio
	case EaseOut:
		return 1 - (1-ratio)*(1-ratio)
	case Smooth:
		return ratio * ratio * (3 - 2*ratio)
	default:
		return ratio
	}
}

// Lerp blends a and b by an already shaped ratio.
func Lerp(a, b, ratio float64) float64 {
	return a + ratio*(b-a)
}

// Clamp limits v to the [lo, hi] interval.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
