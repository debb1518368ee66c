package particles

import (
	"fmt"
	"time"
)

// Particle is a single emitted visual instance. Its position, color and
// size are snapshotted at spawn; only its alpha changes afterwards,
// fading linearly to zero over the decay window.
type Particle struct {
	Position  Vec3
	Color     Color
	Size      float64
	Decay     float64 // seconds the particle stays visible after spawn
	SpawnTime time.Time
}

// NewParticle builds a standalone particle spawned at now.
func NewParticle(pos Vec3, col Color, size, decay float64, now time.Time) (Particle, error) {
	if decay <= 0 {
		return Particle{}, fmt.Errorf("%w: particle decay must be > 0, got %v", ErrInvalidConfig, decay)
	}
	if size < 0 {
		return Particle{}, fmt.Errorf("%w: particle size must be >= 0, got %v", ErrInvalidConfig, size)
	}
	if !col.valid() {
		return Particle{}, fmt.Errorf("%w: particle color channels must be in [0,1]", ErrInvalidConfig)
	}
	return Particle{Position: pos, Color: col, Size: size, Decay: decay, SpawnTime: now}, nil
}

// Age returns seconds since the particle spawned.
func (p Particle) Age(now time.Time) float64 {
	return now.Sub(p.SpawnTime).Seconds()
}

// Alive reports whether the particle is still within its decay window.
func (p Particle) Alive(now time.Time) bool {
	return p.Age(now) <= p.Decay
}

// FadedColor returns the particle's color with its alpha scaled down by
// the fraction of the decay window already elapsed.
func (p Particle) FadedColor(now time.Time) Color {
	frac := p.Age(now) / p.Decay
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return p.Color.WithAlpha(p.Color.A * (1 - frac))
}

// Draw issues one draw call for the particle if it is still alive.
func (p Particle) Draw(d PointDrawer, now time.Time) {
	if d == nil || !p.Alive(now) {
		return
	}
	d.DrawPoint(p.Position, p.FadedColor(now), p.Size)
}
