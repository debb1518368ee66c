package particles

import (
	"errors"
	"math/rand"
	"testing"
)

// alwaysSpawn configures a generator that spawns one particle per Run.
func alwaysSpawn(d PointDrawer) *LinearParticles {
	return NewLinearParticles(Vec3{}, Vec3{X: 1, Y: 1, Z: 1}, d).
		WithPeriod(1).
		WithDecay(1).
		WithDensities(SpreadSeries(1)).
		WithRand(rand.New(rand.NewSource(1)))
}

func TestLinearRunBeforeStart(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d)
	if err := lp.Run(t0); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Run before Start: err = %v, want ErrNotRunning", err)
	}
	if len(d.points) != 0 {
		t.Errorf("draw calls before start = %d, want 0", len(d.points))
	}
}

func TestLinearDensityOneSpawnsEveryFrame(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithDecay(10)
	if err := lp.Start(t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 1; i <= 5; i++ {
		if err := lp.Run(at(float64(i) * 0.1)); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
		if got := len(lp.Particles()); got != i {
			t.Fatalf("live particles after run %d = %d, want %d", i, got, i)
		}
	}
}

func TestLinearDensityZeroNeverSpawns(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithDensities(SpreadSeries(0))
	if err := lp.Start(t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 1; i <= 10; i++ {
		if err := lp.Run(at(float64(i) * 0.05)); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}
	if got := len(lp.Particles()); got != 0 {
		t.Errorf("live particles = %d, want 0", got)
	}
	if len(d.points) != 0 {
		t.Errorf("draw calls = %d, want 0", len(d.points))
	}
}

func TestLinearSpawnPositionMidpoint(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d) // identity locations over (0,0,0)..(1,1,1)
	if err := lp.Start(t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := lp.Run(at(0.5)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(d.points) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(d.points))
	}
	want := Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	if !vecApproxEq(d.points[0].pos, want) {
		t.Errorf("spawn position = %+v, want %+v", d.points[0].pos, want)
	}
}

func TestLinearAutoStopAtPeriod(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithPeriod(2).WithDecay(5)
	if err := lp.Start(t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := lp.Run(at(1)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if lp.State() != StateRunning {
		t.Fatalf("state before period = %v, want Running", lp.State())
	}

	// First Run at or past the period stops the generator without
	// spawning.
	if err := lp.Run(at(2)); err != nil {
		t.Fatalf("Run at period: %v", err)
	}
	if lp.State() != StateStopped {
		t.Errorf("state at period = %v, want Stopped", lp.State())
	}
	if got := len(lp.Particles()); got != 1 {
		t.Errorf("live particles = %d, want 1 (no spawn on stopping call)", got)
	}

	// The survivor keeps drawing on later Run calls, without error,
	// until its own decay elapses.
	d.reset()
	if err := lp.Run(at(4)); err != nil {
		t.Fatalf("Run while draining: %v", err)
	}
	if len(d.points) != 1 {
		t.Errorf("draw calls while draining = %d, want 1", len(d.points))
	}
	d.reset()
	if err := lp.Run(at(7)); err != nil {
		t.Fatalf("Run after decay: %v", err)
	}
	if len(d.points) != 0 {
		t.Errorf("draw calls after decay = %d, want 0", len(d.points))
	}
	if got := len(lp.Particles()); got != 0 {
		t.Errorf("live particles after decay = %d, want %d", got, 0)
	}
}

func TestLinearParticleRetirement(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithPeriod(10).WithDecay(1)
	if err := lp.Start(t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := lp.Run(at(0.5)); err != nil { // spawn at 0.5
		t.Fatalf("Run: %v", err)
	}
	// Present through its decay window...
	d.reset()
	if err := lp.Run(at(1.5)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	found := false
	for _, pt := range d.points {
		if vecApproxEq(pt.pos, Vec3{X: 0.05, Y: 0.05, Z: 0.05}) {
			found = true
		}
	}
	if !found {
		t.Error("particle spawned at 0.5 missing at 1.5 (within decay)")
	}
	// ...and gone once its age exceeds the decay.
	d.reset()
	if err := lp.Run(at(1.6)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, pt := range d.points {
		if vecApproxEq(pt.pos, Vec3{X: 0.05, Y: 0.05, Z: 0.05}) {
			t.Error("particle spawned at 0.5 still drawn at 1.6 (past decay)")
		}
	}
}

func TestLinearLoopingWraps(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithPeriod(1).WithDecay(0.1)
	if err := lp.StartLoop(t0); err != nil {
		t.Fatalf("StartLoop: %v", err)
	}
	// 1.25s into a 1s loop is progress 0.25.
	if err := lp.Run(at(1.25)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if lp.State() != StateLooping {
		t.Errorf("state past period = %v, want Looping", lp.State())
	}
	live := lp.Particles()
	if len(live) != 1 {
		t.Fatalf("live particles = %d, want 1", len(live))
	}
	want := Vec3{X: 0.25, Y: 0.25, Z: 0.25}
	if !vecApproxEq(live[0].Position, want) {
		t.Errorf("looping spawn position = %+v, want %+v", live[0].Position, want)
	}
}

func TestLinearExplicitStopKeepsDecaying(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithPeriod(10).WithDecay(2)
	if err := lp.Start(t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := lp.Run(at(0.5)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lp.Stop()

	// No further spawns, but the live particle drains.
	d.reset()
	if err := lp.Run(at(1)); err != nil {
		t.Fatalf("Run after Stop: %v", err)
	}
	if got := len(lp.Particles()); got != 1 {
		t.Errorf("live particles after Stop = %d, want 1", got)
	}
	if len(d.points) != 1 {
		t.Errorf("draw calls after Stop = %d, want 1", len(d.points))
	}
	d.reset()
	if err := lp.Run(at(3)); err != nil {
		t.Fatalf("Run after decay: %v", err)
	}
	if len(d.points) != 0 {
		t.Errorf("draw calls after decay = %d, want 0", len(d.points))
	}
}

func TestLinearRestartReinitializes(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithPeriod(2).WithDecay(10)
	if err := lp.Start(t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := lp.Run(at(0.5)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := lp.Start(at(1)); err != nil { // restart mid-pass
		t.Fatalf("re-Start: %v", err)
	}
	if got := len(lp.Particles()); got != 0 {
		t.Errorf("live particles after restart = %d, want 0", got)
	}
	// Progress is measured from the new start instant.
	if err := lp.Run(at(2)); err != nil {
		t.Fatalf("Run after restart: %v", err)
	}
	live := lp.Particles()
	if len(live) != 1 {
		t.Fatalf("live particles = %d, want 1", len(live))
	}
	want := Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	if !vecApproxEq(live[0].Position, want) {
		t.Errorf("spawn position = %+v, want %+v (progress from new t0)", live[0].Position, want)
	}
}

func TestLinearBuilderValidation(t *testing.T) {
	d := &recordDrawer{}
	tests := []struct {
		name string
		lp   *LinearParticles
	}{
		{"negative period", alwaysSpawn(d).WithPeriod(-1)},
		{"zero decay", alwaysSpawn(d).WithDecay(0)},
		{"empty densities", alwaysSpawn(d).WithDensities(Series{})},
		{"density above one", alwaysSpawn(d).WithDensities(SpreadSeries(1.5))},
		{"location out of range", alwaysSpawn(d).WithLocations(SpreadSeries(-0.2))},
		{"negative size", alwaysSpawn(d).WithSizes(SpreadSeries(-1))},
		{"empty colors", alwaysSpawn(d).WithColors(ColorSeries{})},
		{"color channel out of range", alwaysSpawn(d).WithColors(SpreadColorSeries(Color{R: 2, A: 1}))},
		{"nil drawer", NewLinearParticles(Vec3{}, Vec3{X: 1}, nil)},
		{"nil rand", alwaysSpawn(d).WithRand(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.lp.Start(t0); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Start = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLinearBuilderLatchesFirstError(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithDecay(-1).WithPeriod(5)
	if err := lp.Err(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Err = %v, want ErrInvalidConfig", err)
	}
	if err := lp.Start(t0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Start = %v, want latched ErrInvalidConfig", err)
	}
}

func TestLinearCloneIndependence(t *testing.T) {
	d := &recordDrawer{}
	lp := alwaysSpawn(d).WithDecay(10)
	clone := lp.CloneWithStartEnd(Vec3{X: 2}, Vec3{X: 4})
	if err := lp.Start(t0); err != nil {
		t.Fatalf("Start original: %v", err)
	}
	if err := lp.Run(at(0.5)); err != nil {
		t.Fatalf("Run original: %v", err)
	}
	if clone.State() != StateNotStarted {
		t.Errorf("clone state = %v, want NotStarted", clone.State())
	}
	if got := len(clone.Particles()); got != 0 {
		t.Errorf("clone live particles = %d, want 0", got)
	}
	if err := clone.Start(t0); err != nil {
		t.Fatalf("Start clone: %v", err)
	}
	if err := clone.Run(at(0.5)); err != nil {
		t.Fatalf("Run clone: %v", err)
	}
	live := clone.Particles()
	if len(live) != 1 {
		t.Fatalf("clone live particles = %d, want 1", len(live))
	}
	if !vecApproxEq(live[0].Position, Vec3{X: 3}) {
		t.Errorf("clone spawn position = %+v, want {3 0 0}", live[0].Position)
	}
}
