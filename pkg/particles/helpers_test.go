package particles

import (
	"math"
	"time"
)

// t0 is the base instant every timing test drives from.
var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(seconds float64) time.Time {
	return t0.Add(time.Duration(seconds * float64(time.Second)))
}

type recordedPoint struct {
	pos  Vec3
	col  Color
	size float64
}

// recordDrawer captures every draw call for assertions.
type recordDrawer struct {
	points []recordedPoint
}

func (d *recordDrawer) DrawPoint(pos Vec3, col Color, size float64) {
	d.points = append(d.points, recordedPoint{pos, col, size})
}

func (d *recordDrawer) reset() {
	d.points = d.points[:0]
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func vecApproxEq(a, b Vec3) bool {
	return approxEq(a.X, b.X) && approxEq(a.Y, b.Y) && approxEq(a.Z, b.Z)
}
