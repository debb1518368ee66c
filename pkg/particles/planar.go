package particles

import (
	"math/rand"
	"time"
)

// PlanarParticles spawns particles across a parallelogram patch defined
// by an origin and two edge vectors. The locations series drives the
// position along edgeU the same way LinearParticles sweeps its path; a
// second uniform draw per spawn scatters the particle across edgeV.
type PlanarParticles struct {
	emitter
	origin, edgeU, edgeV Vec3
}

var _ System = (*PlanarParticles)(nil)

// NewPlanarParticles builds a generator over the patch
// origin + u*edgeU + v*edgeV, u and v in [0,1], with the same defaults
// as NewLinearParticles.
func NewPlanarParticles(origin, edgeU, edgeV Vec3, drawer PointDrawer) *PlanarParticles {
	return &PlanarParticles{
		emitter: newEmitter(drawer),
		origin:  origin,
		edgeU:   edgeU,
		edgeV:   edgeV,
	}
}

// WithPeriod sets the seconds one generation pass spans.
func (pp *PlanarParticles) WithPeriod(p float64) *PlanarParticles {
	pp.setPeriod(p)
	return pp
}

// WithDecay sets each spawned particle's visible lifetime in seconds.
func (pp *PlanarParticles) WithDecay(d float64) *PlanarParticles {
	pp.setDecay(d)
	return pp
}

// WithDensities sets the per-frame spawn chance series; samples must be
// in [0,1].
func (pp *PlanarParticles) WithDensities(s Series) *PlanarParticles {
	pp.setDensities(s)
	return pp
}

// WithLocations sets the edgeU sweep series; samples must be in [0,1].
func (pp *PlanarParticles) WithLocations(s Series) *PlanarParticles {
	pp.setLocations(s)
	return pp
}

// WithSizes sets the spawn size series; samples must be >= 0.
func (pp *PlanarParticles) WithSizes(s Series) *PlanarParticles {
	pp.setSizes(s)
	return pp
}

// WithColors sets the spawn color series.
func (pp *PlanarParticles) WithColors(s ColorSeries) *PlanarParticles {
	pp.setColors(s)
	return pp
}

// WithDrawer replaces the draw capability.
func (pp *PlanarParticles) WithDrawer(d PointDrawer) *PlanarParticles {
	pp.setDrawer(d)
	return pp
}

// WithRand replaces the random source used for spawn decisions and
// edgeV scatter.
func (pp *PlanarParticles) WithRand(r *rand.Rand) *PlanarParticles {
	pp.setRand(r)
	return pp
}

// Start begins a single generation pass at now.
func (pp *PlanarParticles) Start(now time.Time) error {
	return pp.setup(now, false)
}

// StartLoop begins generating at now, restarting every period.
func (pp *PlanarParticles) StartLoop(now time.Time) error {
	return pp.setup(now, true)
}

// Run advances the generator to now.
func (pp *PlanarParticles) Run(now time.Time) error {
	return pp.run(now, pp.spawnPos)
}

func (pp *PlanarParticles) spawnPos(progress float64) Vec3 {
	u := pp.locations.Sample(progress)
	v := pp.rng.Float64()
	return pp.origin.Add(pp.edgeU.Scale(u)).Add(pp.edgeV.Scale(v))
}
