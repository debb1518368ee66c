package particles

import "time"

// Clock tracks a start instant and reports elapsed time since then.
// It is a pure time-source wrapper: the current instant is always
// supplied by the caller, so there is no background timer and tests can
// drive it deterministically.
type Clock struct {
	t0      time.Time
	running bool
}

// Start records now as the clock's origin. Calling Start on a running
// clock re-bases it to now.
func (c *Clock) Start(now time.Time) {
	c.t0 = now
	c.running = true
}

// Elapsed returns the seconds between the start instant and now.
// It returns ErrNotStarted if the clock is not running.
func (c *Clock) Elapsed(now time.Time) (float64, error) {
	if !c.running {
		return 0, ErrNotStarted
	}
	return now.Sub(c.t0).Seconds(), nil
}

// Stop clears the start instant. Elapsed fails until the next Start.
func (c *Clock) Stop() {
	c.running = false
}

// Running reports whether the clock has been started and not stopped.
func (c *Clock) Running() bool {
	return c.running
}

// StartedAt returns the current origin instant and whether the clock is
// running.
func (c *Clock) StartedAt() (time.Time, bool) {
	return c.t0, c.running
}
