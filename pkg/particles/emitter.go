package particles

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/particlefx/internal/curve"
)

// defaultSize is the drawn size of a particle when no sizes series is
// configured.
const defaultSize = 0.05

// emitter carries the runtime shared by all concrete generators: the
// keyframed parameters, the clock, the live particle collection and the
// lifecycle state machine. Concrete generators supply the spawn
// geometry.
type emitter struct {
	period float64
	decay  float64

	densities Series
	locations Series
	sizes     Series
	colors    ColorSeries

	drawer PointDrawer
	rng    *rand.Rand

	clock     Clock
	state     State
	particles []Particle

	err error // first configuration error, reported on Start
}

func newEmitter(drawer PointDrawer) emitter {
	return emitter{
		period:    1,
		decay:     1,
		densities: SpreadSeries(1),
		locations: NewSeries(Keyframe{At: 0, Value: 0}, Keyframe{At: 1, Value: 1}),
		sizes:     SpreadSeries(defaultSize),
		colors:    SpreadColorSeries(Color{R: 1, G: 1, B: 1, A: 1}),
		drawer:    drawer,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// fail latches the first configuration error; Start surfaces it.
func (e *emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Err returns the first configuration error recorded by a setter, if any.
func (e *emitter) Err() error {
	return e.err
}

// Period returns the seconds one pass of the generator spans.
func (e *emitter) Period() float64 {
	return e.period
}

// State returns the generator's lifecycle state.
func (e *emitter) State() State {
	return e.state
}

// Particles returns the live particle collection. The slice is owned by
// the generator and only valid until the next Run call.
func (e *emitter) Particles() []Particle {
	return e.particles
}

// Stop halts spawning. Already-spawned particles keep decaying and are
// still drawn by subsequent Run calls until each expires.
func (e *emitter) Stop() {
	e.state = StateStopped
	e.clock.Stop()
}

func (e *emitter) setPeriod(p float64) {
	if p < 0 {
		e.fail(fmt.Errorf("%w: period must be >= 0, got %v", ErrInvalidConfig, p))
		return
	}
	e.period = p
}

func (e *emitter) setDecay(d float64) {
	if d <= 0 {
		e.fail(fmt.Errorf("%w: decay must be > 0, got %v", ErrInvalidConfig, d))
		return
	}
	e.decay = d
}

func (e *emitter) setDensities(s Series) {
	if err := s.validate("densities", 0, 1, true); err != nil {
		e.fail(err)
		return
	}
	e.densities = s
}

func (e *emitter) setLocations(s Series) {
	if err := s.validate("locations", 0, 1, true); err != nil {
		e.fail(err)
		return
	}
	e.locations = s
}

func (e *emitter) setSizes(s Series) {
	if err := s.validate("sizes", 0, math.Inf(1), true); err != nil {
		e.fail(err)
		return
	}
	e.sizes = s
}

func (e *emitter) setColors(s ColorSeries) {
	if err := s.validate("colors"); err != nil {
		e.fail(err)
		return
	}
	e.colors = s
}

func (e *emitter) setDrawer(d PointDrawer) {
	if d == nil {
		e.fail(fmt.Errorf("%w: drawer must not be nil", ErrInvalidConfig))
		return
	}
	e.drawer = d
}

func (e *emitter) setRand(r *rand.Rand) {
	if r == nil {
		e.fail(fmt.Errorf("%w: random source must not be nil", ErrInvalidConfig))
		return
	}
	e.rng = r
}

// setup validates the configuration and (re)starts the generator.
// Starting an already-running generator re-bases its clock and clears
// its live particles, same as the first start.
func (e *emitter) setup(now time.Time, loop bool) error {
	if e.err != nil {
		return e.err
	}
	if e.drawer == nil {
		return fmt.Errorf("%w: drawer must be set before start", ErrInvalidConfig)
	}
	e.particles = e.particles[:0]
	e.clock.Start(now)
	if loop {
		e.state = StateLooping
	} else {
		e.state = StateRunning
	}
	return nil
}

// progress maps elapsed seconds into the [0,1] interpolation domain,
// wrapping modulo the period while looping.
func (e *emitter) progress(elapsed float64) float64 {
	if e.period <= 0 {
		return 1
	}
	if e.state == StateLooping {
		p := math.Mod(elapsed, e.period) / e.period
		if p < 0 {
			p++
		}
		return p
	}
	return curve.Clamp(elapsed/e.period, 0, 1)
}

// run advances the generator one frame: auto-stop check, stochastic
// spawn, retirement of expired particles, then one draw call per live
// particle. spawnPos supplies the geometry for a spawn at the given
// progress.
func (e *emitter) run(now time.Time, spawnPos func(progress float64) Vec3) error {
	switch e.state {
	case StateNotStarted:
		return ErrNotRunning
	case StateStopped:
		// Drain mode: no spawning, leftovers decay on their own schedule.
		e.retire(now)
		e.draw(now)
		return nil
	}

	elapsed, err := e.clock.Elapsed(now)
	if err != nil {
		return err
	}

	if e.state == StateRunning && elapsed >= e.period {
		// Natural completion. Spawning ends on this call; the particles
		// already in flight keep drawing until each expires.
		e.state = StateStopped
		e.clock.Stop()
	} else {
		progress := e.progress(elapsed)
		if e.rng.Float64() < e.densities.Sample(progress) {
			e.particles = append(e.particles, Particle{
				Position:  spawnPos(progress),
				Color:     e.colors.Sample(progress),
				Size:      e.sizes.Sample(progress),
				Decay:     e.decay,
				SpawnTime: now,
			})
		}
	}

	e.retire(now)
	e.draw(now)
	return nil
}

// retire drops every particle whose decay window has passed.
func (e *emitter) retire(now time.Time) {
	live := e.particles[:0]
	for _, p := range e.particles {
		if p.Alive(now) {
			live = append(live, p)
		}
	}
	e.particles = live
}

func (e *emitter) draw(now time.Time) {
	for _, p := range e.particles {
		p.Draw(e.drawer, now)
	}
}
