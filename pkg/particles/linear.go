package particles

import (
	"math/rand"
	"time"
)

// LinearParticles spawns particles stochastically along a straight path
// between two 3D endpoints. Over the generator's period the densities
// series drives the per-frame spawn chance, the locations series drives
// where along the path a particle appears (0 = start, 1 = end), and the
// colors and sizes series drive its look at spawn time.
//
// Configure it with the chainable With* setters; each validates its
// input and latches the first error, which Start reports.
type LinearParticles struct {
	emitter
	start, end Vec3
}

var _ System = (*LinearParticles)(nil)

// NewLinearParticles builds a generator along the start-to-end path with
// defaults: period 1s, decay 1s, density 1, identity locations, white
// color, size 0.05.
func NewLinearParticles(start, end Vec3, drawer PointDrawer) *LinearParticles {
	return &LinearParticles{
		emitter: newEmitter(drawer),
		start:   start,
		end:     end,
	}
}

// WithPeriod sets the seconds one generation pass spans.
func (lp *LinearParticles) WithPeriod(p float64) *LinearParticles {
	lp.setPeriod(p)
	return lp
}

// WithDecay sets each spawned particle's visible lifetime in seconds.
func (lp *LinearParticles) WithDecay(d float64) *LinearParticles {
	lp.setDecay(d)
	return lp
}

// WithDensities sets the per-frame spawn chance series; samples must be
// in [0,1].
func (lp *LinearParticles) WithDensities(s Series) *LinearParticles {
	lp.setDensities(s)
	return lp
}

// WithLocations sets the path position series; samples must be in [0,1].
func (lp *LinearParticles) WithLocations(s Series) *LinearParticles {
	lp.setLocations(s)
	return lp
}

// WithSizes sets the spawn size series; samples must be >= 0.
func (lp *LinearParticles) WithSizes(s Series) *LinearParticles {
	lp.setSizes(s)
	return lp
}

// WithColors sets the spawn color series.
func (lp *LinearParticles) WithColors(s ColorSeries) *LinearParticles {
	lp.setColors(s)
	return lp
}

// WithDrawer replaces the draw capability.
func (lp *LinearParticles) WithDrawer(d PointDrawer) *LinearParticles {
	lp.setDrawer(d)
	return lp
}

// WithRand replaces the spawn-decision random source, letting tests
// inject a seeded one.
func (lp *LinearParticles) WithRand(r *rand.Rand) *LinearParticles {
	lp.setRand(r)
	return lp
}

// WithStartEnd replaces the path endpoints.
func (lp *LinearParticles) WithStartEnd(start, end Vec3) *LinearParticles {
	lp.start = start
	lp.end = end
	return lp
}

// Clone returns a copy of the configuration with fresh runtime state.
// The random source is shared with the original.
func (lp *LinearParticles) Clone() *LinearParticles {
	c := *lp
	c.particles = nil
	c.clock = Clock{}
	c.state = StateNotStarted
	return &c
}

// CloneWithStartEnd clones the generator onto a different path.
func (lp *LinearParticles) CloneWithStartEnd(start, end Vec3) *LinearParticles {
	return lp.Clone().WithStartEnd(start, end)
}

// CloneWithColors clones the generator with a different color series.
func (lp *LinearParticles) CloneWithColors(s ColorSeries) *LinearParticles {
	return lp.Clone().WithColors(s)
}

// Start begins a single generation pass at now.
func (lp *LinearParticles) Start(now time.Time) error {
	return lp.setup(now, false)
}

// StartLoop begins generating at now, restarting every period.
func (lp *LinearParticles) StartLoop(now time.Time) error {
	return lp.setup(now, true)
}

// Run advances the generator to now, spawning, retiring and drawing
// particles as described in the package documentation.
func (lp *LinearParticles) Run(now time.Time) error {
	return lp.run(now, lp.spawnPos)
}

func (lp *LinearParticles) spawnPos(progress float64) Vec3 {
	return lp.start.Lerp(lp.end, lp.locations.Sample(progress))
}
