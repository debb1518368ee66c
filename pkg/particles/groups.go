package particles

import (
	"errors"
	"fmt"
	"time"
)

// SyncGrp runs a collection of particle systems concurrently under one
// shared clock: every member receives the same Run instant. Members can
// themselves be groups; the composition is a tree.
//
// A non-looping group stops once every member has stopped. Members that
// complete early are still driven each frame so their remaining
// particles drain.
type SyncGrp struct {
	members []System
	clock   Clock
	state   State
	looping bool
}

var _ System = (*SyncGrp)(nil)

// NewSyncGrp groups the given systems. The group takes ownership of its
// members: nothing else should start or run them.
func NewSyncGrp(members ...System) *SyncGrp {
	return &SyncGrp{members: members}
}

// Period returns the longest member period.
func (g *SyncGrp) Period() float64 {
	max := 0.0
	for _, m := range g.members {
		if p := m.Period(); p > max {
			max = p
		}
	}
	return max
}

// State returns the group's lifecycle state.
func (g *SyncGrp) State() State {
	return g.state
}

// Start starts every member for a single pass at now.
func (g *SyncGrp) Start(now time.Time) error {
	return g.setup(now, false)
}

// StartLoop puts every member into looping mode under the shared clock.
func (g *SyncGrp) StartLoop(now time.Time) error {
	return g.setup(now, true)
}

func (g *SyncGrp) setup(now time.Time, loop bool) error {
	if len(g.members) == 0 {
		return fmt.Errorf("%w: sync group has no members", ErrInvalidConfig)
	}
	for _, m := range g.members {
		var err error
		if loop {
			err = m.StartLoop(now)
		} else {
			err = m.Start(now)
		}
		if err != nil {
			return err
		}
	}
	g.clock.Start(now)
	g.looping = loop
	if loop {
		g.state = StateLooping
	} else {
		g.state = StateRunning
	}
	return nil
}

// Run drives every member with the same instant. Members that already
// stopped drain without error. Once all members of a non-looping group
// have stopped, the group transitions to Stopped (it keeps draining on
// later Run calls).
func (g *SyncGrp) Run(now time.Time) error {
	if g.state == StateNotStarted {
		return ErrNotRunning
	}
	for _, m := range g.members {
		if err := m.Run(now); err != nil && !errors.Is(err, ErrNotRunning) {
			return err
		}
	}
	if g.state == StateRunning {
		done := true
		for _, m := range g.members {
			if m.State() != StateStopped {
				done = false
				break
			}
		}
		if done {
			g.state = StateStopped
			g.clock.Stop()
		}
	}
	return nil
}

// Stop stops every member. Their live particles keep decaying.
func (g *SyncGrp) Stop() {
	for _, m := range g.members {
		m.Stop()
	}
	g.state = StateStopped
	g.clock.Stop()
}

// SeqGrp runs a sequence of particle systems one after another. Each
// member keeps its own period; the active index advances when the
// cumulative period boundary elapses, and the next member's clock is
// re-based to the exact boundary instant so the schedule is independent
// of frame rate. When the last member completes, a non-looping group
// stops; a looping group restarts the sequence from member 0.
type SeqGrp struct {
	members []System
	clock   Clock
	active  int
	offset  float64 // seconds into the cycle where the active member began
	state   State
	looping bool
}

var _ System = (*SeqGrp)(nil)

// NewSeqGrp sequences the given systems in order.
func NewSeqGrp(members ...System) *SeqGrp {
	return &SeqGrp{members: members}
}

// Period returns the sum of the member periods.
func (g *SeqGrp) Period() float64 {
	sum := 0.0
	for _, m := range g.members {
		sum += m.Period()
	}
	return sum
}

// State returns the group's lifecycle state.
func (g *SeqGrp) State() State {
	return g.state
}

// Start starts member 0 at now; the rest stay NotStarted until their
// turn.
func (g *SeqGrp) Start(now time.Time) error {
	return g.setup(now, false)
}

// StartLoop behaves like Start but restarts the whole sequence after the
// last member completes.
func (g *SeqGrp) StartLoop(now time.Time) error {
	return g.setup(now, true)
}

func (g *SeqGrp) setup(now time.Time, loop bool) error {
	if len(g.members) == 0 {
		return fmt.Errorf("%w: seq group has no members", ErrInvalidConfig)
	}
	if err := g.members[0].Start(now); err != nil {
		return err
	}
	g.clock.Start(now)
	g.active = 0
	g.offset = 0
	g.looping = loop
	if loop {
		g.state = StateLooping
	} else {
		g.state = StateRunning
	}
	return nil
}

// Run advances the sequence to now, activating members whose turn has
// arrived, then drives every started member so finished ones drain.
func (g *SeqGrp) Run(now time.Time) error {
	if g.state == StateNotStarted {
		return ErrNotRunning
	}
	if g.state != StateStopped {
		if err := g.advance(now); err != nil {
			return err
		}
	}
	for _, m := range g.members {
		if err := m.Run(now); err != nil && !errors.Is(err, ErrNotRunning) {
			return err
		}
	}
	return nil
}

// advance moves the active index past every cumulative period boundary
// that now has crossed, re-basing each newly started member to its
// boundary instant.
func (g *SeqGrp) advance(now time.Time) error {
	elapsed, err := g.clock.Elapsed(now)
	if err != nil {
		return err
	}
	for elapsed >= g.offset+g.members[g.active].Period() {
		boundary := g.offset + g.members[g.active].Period()
		g.members[g.active].Stop()

		if g.active == len(g.members)-1 {
			if !g.looping {
				g.state = StateStopped
				g.clock.Stop()
				return nil
			}
			if g.Period() <= 0 {
				// A zero-length looping cycle cannot make progress.
				return nil
			}
			t0, _ := g.clock.StartedAt()
			cycleStart := t0.Add(secondsDuration(boundary))
			g.clock.Start(cycleStart)
			g.active = 0
			g.offset = 0
			if err := g.members[0].Start(cycleStart); err != nil {
				return err
			}
			elapsed, _ = g.clock.Elapsed(now)
			continue
		}

		g.offset = boundary
		g.active++
		t0, _ := g.clock.StartedAt()
		if err := g.members[g.active].Start(t0.Add(secondsDuration(boundary))); err != nil {
			return err
		}
	}
	return nil
}

// Stop stops the active member and halts advancement. Finished members'
// particles keep decaying.
func (g *SeqGrp) Stop() {
	if g.state == StateRunning || g.state == StateLooping {
		g.members[g.active].Stop()
	}
	g.state = StateStopped
	g.clock.Stop()
}

func secondsDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
