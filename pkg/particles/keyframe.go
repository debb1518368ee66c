package particles

import (
	"fmt"

	"github.com/gonewx/particlefx/internal/curve"
)

// Keyframe is a single (progress, value) interpolation anchor.
// Progress is normalized to [0,1] over a generator's period.
type Keyframe struct {
	At    float64
	Value float64
}

// Series is an ordered sequence of keyframes with an interpolation mode
// applied between consecutive anchors. Construct it once at
// configuration time; it is not mutated afterwards.
type Series struct {
	Keys   []Keyframe
	Interp curve.Mode
}

// NewSeries builds a linear series from explicit keyframes.
func NewSeries(keys ...Keyframe) Series {
	return Series{Keys: keys}
}

// SpreadSeries builds a linear series from values spread evenly over the
// [0,1] progress domain. A single value yields a constant series.
func SpreadSeries(values ...float64) Series {
	keys := make([]Keyframe, len(values))
	for i, v := range values {
		at := 0.0
		if len(values) > 1 {
			at = float64(i) / float64(len(values)-1)
		}
		keys[i] = Keyframe{At: at, Value: v}
	}
	return Series{Keys: keys}
}

// Sample returns the interpolated value at progress t.
//
// Progress at or below the first anchor returns the first value, at or
// above the last anchor returns the last value, and a single-keyframe
// series is constant. A zero-width interval yields its later anchor.
func (s Series) Sample(t float64) float64 {
	if len(s.Keys) == 0 {
		return 0
	}
	if len(s.Keys) == 1 {
		return s.Keys[0].Value
	}

	t = curve.Clamp(t, 0, 1)
	if t <= s.Keys[0].At {
		return s.Keys[0].Value
	}

	for i := 0; i < len(s.Keys)-1; i++ {
		k0, k1 := s.Keys[i], s.Keys[i+1]
		if t < k0.At || t > k1.At {
			continue
		}
		width := k1.At - k0.At
		if width <= 0 {
			return k1.Value
		}
		ratio := curve.Shape(s.Interp, (t-k0.At)/width)
		return curve.Lerp(k0.Value, k1.Value, ratio)
	}

	return s.Keys[len(s.Keys)-1].Value
}

// validate checks ordering and, when bounded, the sample range.
func (s Series) validate(name string, lo, hi float64, bounded bool) error {
	if len(s.Keys) == 0 {
		return fmt.Errorf("%w: %s series must not be empty", ErrInvalidConfig, name)
	}
	prev := s.Keys[0].At
	for _, k := range s.Keys {
		if k.At < 0 || k.At > 1 {
			return fmt.Errorf("%w: %s keyframe progress %v outside [0,1]", ErrInvalidConfig, name, k.At)
		}
		if k.At < prev {
			return fmt.Errorf("%w: %s keyframes not ordered by progress", ErrInvalidConfig, name)
		}
		prev = k.At
		if bounded && (k.Value < lo || k.Value > hi) {
			return fmt.Errorf("%w: %s value %v outside [%v,%v]", ErrInvalidConfig, name, k.Value, lo, hi)
		}
	}
	return nil
}

// ColorKeyframe is a (progress, color) interpolation anchor.
type ColorKeyframe struct {
	At    float64
	Value Color
}

// ColorSeries is the color counterpart of Series; channels interpolate
// independently.
type ColorSeries struct {
	Keys   []ColorKeyframe
	Interp curve.Mode
}

// NewColorSeries builds a linear color series from explicit keyframes.
func NewColorSeries(keys ...ColorKeyframe) ColorSeries {
	return ColorSeries{Keys: keys}
}

// SpreadColorSeries builds a linear color series from colors spread
// evenly over the [0,1] progress domain.
func SpreadColorSeries(values ...Color) ColorSeries {
	keys := make([]ColorKeyframe, len(values))
	for i, v := range values {
		at := 0.0
		if len(values) > 1 {
			at = float64(i) / float64(len(values)-1)
		}
		keys[i] = ColorKeyframe{At: at, Value: v}
	}
	return ColorSeries{Keys: keys}
}

// Sample returns the per-channel interpolated color at progress t, with
// the same edge behavior as Series.Sample.
func (s ColorSeries) Sample(t float64) Color {
	if len(s.Keys) == 0 {
		return Color{}
	}
	if len(s.Keys) == 1 {
		return s.Keys[0].Value
	}

	t = curve.Clamp(t, 0, 1)
	if t <= s.Keys[0].At {
		return s.Keys[0].Value
	}

	for i := 0; i < len(s.Keys)-1; i++ {
		k0, k1 := s.Keys[i], s.Keys[i+1]
		if t < k0.At || t > k1.At {
			continue
		}
		width := k1.At - k0.At
		if width <= 0 {
			return k1.Value
		}
		ratio := curve.Shape(s.Interp, (t-k0.At)/width)
		return k0.Value.Lerp(k1.Value, ratio)
	}

	return s.Keys[len(s.Keys)-1].Value
}

func (s ColorSeries) validate(name string) error {
	if len(s.Keys) == 0 {
		return fmt.Errorf("%w: %s series must not be empty", ErrInvalidConfig, name)
	}
	prev := s.Keys[0].At
	for _, k := range s.Keys {
		if k.At < 0 || k.At > 1 {
			return fmt.Errorf("%w: %s keyframe progress %v outside [0,1]", ErrInvalidConfig, name, k.At)
		}
		if k.At < prev {
			return fmt.Errorf("%w: %s keyframes not ordered by progress", ErrInvalidConfig, name)
		}
		prev = k.At
		if !k.Value.valid() {
			return fmt.Errorf("%w: %s color channels must be in [0,1]", ErrInvalidConfig, name)
		}
	}
	return nil
}
