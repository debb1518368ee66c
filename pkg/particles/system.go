// Package particles animates point-particle visual effects for embedding
// inside a real-time rendering loop.
//
// A generator is configured once, started, and then driven by the host
// loop: call Run every frame with the current time. Run converts elapsed
// wall-clock time into interpolation progress, stochastically spawns new
// particles, retires expired ones and issues one draw call per live
// particle through the PointDrawer capability. SyncGrp and SeqGrp
// compose generators (and other groups) under a shared clock.
//
// The model is single-threaded and cooperative: each system is owned by
// the host loop and all work completes inside Run. The current instant
// is always supplied by the caller, which keeps every temporal property
// deterministic under test.
package particles

import "time"

// State is a particle system's lifecycle state.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateLooping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StateLooping:
		return "Looping"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// PointDrawer is the minimal draw capability the core calls into. The
// host decides how a colored point of the given size is rendered.
type PointDrawer interface {
	DrawPoint(pos Vec3, col Color, size float64)
}

// DrawerFunc adapts a function to the PointDrawer interface.
type DrawerFunc func(pos Vec3, col Color, size float64)

func (f DrawerFunc) DrawPoint(pos Vec3, col Color, size float64) {
	f(pos, col, size)
}

// System is the capability shared by every particle generator and group.
//
// Start runs the system once for its period; StartLoop restarts it
// indefinitely every period. Run advances the system to the supplied
// instant and issues draw calls for live particles. A system that was
// never started rejects Run with ErrNotRunning; a system that has
// stopped (naturally or via Stop) keeps draining already-spawned
// particles on Run until each expires, without error. Starting an
// already-running system fully re-initializes it.
type System interface {
	Start(now time.Time) error
	StartLoop(now time.Time) error
	Run(now time.Time) error
	Stop()
	Period() float64
	State() State
}
