package particles

import "errors"

var (
	// ErrInvalidConfig reports a malformed generator configuration:
	// empty keyframe series, out-of-range samples, non-positive decay,
	// negative period, missing drawer, or an empty group.
	ErrInvalidConfig = errors.New("particles: invalid config")

	// ErrNotStarted reports a clock read before Start.
	ErrNotStarted = errors.New("particles: clock not started")

	// ErrNotRunning reports a Run call on a system that was never started.
	ErrNotRunning = errors.New("particles: system not running")
)
