// Package render adapts the particles draw capability to Ebitengine.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/particlefx/pkg/particles"
)

// depthFalloff shrinks a particle's drawn radius per world unit it sits
// behind the projection plane.
const depthFalloff = 0.1

// ScreenDrawer draws particles as filled circles on an *ebiten.Image.
// World X/Y map orthographically onto the screen around a configurable
// origin (Y up); Z only attenuates the drawn radius.
//
// Rebind the frame's target with SetTarget at the top of every Draw
// callback before running the particle systems.
type ScreenDrawer struct {
	dst    *ebiten.Image
	scale  float64 // pixels per world unit
	cx, cy float64 // screen position of the world origin
}

// NewScreenDrawer builds a drawer mapping the world origin to screen
// position (cx, cy) at the given pixels-per-unit scale.
func NewScreenDrawer(scale, cx, cy float64) *ScreenDrawer {
	return &ScreenDrawer{scale: scale, cx: cx, cy: cy}
}

// SetTarget rebinds the destination image for subsequent draw calls.
func (d *ScreenDrawer) SetTarget(dst *ebiten.Image) {
	d.dst = dst
}

// DrawPoint implements particles.PointDrawer.
func (d *ScreenDrawer) DrawPoint(pos particles.Vec3, col particles.Color, size float64) {
	if d.dst == nil {
		return
	}
	radius := size * d.scale
	if pos.Z > 0 {
		radius /= 1 + pos.Z*depthFalloff
	}
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(
		d.dst,
		float32(d.cx+pos.X*d.scale),
		float32(d.cy-pos.Y*d.scale),
		float32(radius),
		toNRGBA(col),
		true,
	)
}

func toNRGBA(c particles.Color) color.NRGBA {
	return color.NRGBA{
		R: channelByte(c.R),
		G: channelByte(c.G),
		B: channelByte(c.B),
		A: channelByte(c.A),
	}
}

func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
