// Package preset loads declarative particle effect definitions from YAML
// documents and builds them into runnable particle systems. A document
// holds named effects; group effects reference other effects by name,
// forming a tree.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/particlefx/internal/curve"
	"github.com/gonewx/particlefx/pkg/particles"
)

// Document is the root of a preset file: a set of named effects.
type Document struct {
	Effects map[string]Effect `yaml:"effects"`
}

// Effect describes one particle system. Kind selects the concrete type;
// the remaining fields apply depending on it. Omitted keyframe lists
// fall back to the generator defaults.
type Effect struct {
	Kind   string  `yaml:"kind"` // linear, planar, sync, seq
	Period float64 `yaml:"period,omitempty"`
	Decay  float64 `yaml:"decay,omitempty"`
	Interp string  `yaml:"interp,omitempty"` // Linear, EaseIn, EaseOut, Smooth

	// Linear path endpoints, [x y z].
	Start []float64 `yaml:"start,omitempty,flow"`
	End   []float64 `yaml:"end,omitempty,flow"`

	// Planar patch, [x y z] each.
	Origin []float64 `yaml:"origin,omitempty,flow"`
	EdgeU  []float64 `yaml:"edgeU,omitempty,flow"`
	EdgeV  []float64 `yaml:"edgeV,omitempty,flow"`

	Densities []Key      `yaml:"densities,omitempty"`
	Locations []Key      `yaml:"locations,omitempty"`
	Sizes     []Key      `yaml:"sizes,omitempty"`
	Colors    []ColorKey `yaml:"colors,omitempty"`

	// Group member effect names, in order.
	Members []string `yaml:"members,omitempty"`
}

// Key is one scalar keyframe: a value anchored at a progress in [0,1].
type Key struct {
	At    float64 `yaml:"at"`
	Value float64 `yaml:"value"`
}

// ColorKey is one color keyframe; Value is [r g b a], normalized.
type ColorKey struct {
	At    float64   `yaml:"at"`
	Value []float64 `yaml:"value,flow"`
}

// Load reads and parses a preset document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	return Parse(data)
}

// Parse parses a preset document from YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse preset YAML: %w", err)
	}
	if len(doc.Effects) == 0 {
		return nil, fmt.Errorf("%w: preset document has no effects", particles.ErrInvalidConfig)
	}
	return &doc, nil
}

// Build resolves the named effect into a runnable system drawing through
// d. Group members are built recursively; a member name that refers back
// to an ancestor is rejected (the composition must be a tree).
func (doc *Document) Build(name string, d particles.PointDrawer) (particles.System, error) {
	return doc.build(name, d, map[string]bool{})
}

func (doc *Document) build(name string, d particles.PointDrawer, visiting map[string]bool) (particles.System, error) {
	if visiting[name] {
		return nil, fmt.Errorf("%w: effect %q references itself through its members", particles.ErrInvalidConfig, name)
	}
	eff, ok := doc.Effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown effect %q", particles.ErrInvalidConfig, name)
	}

	switch eff.Kind {
	case "linear":
		return eff.buildLinear(d)
	case "planar":
		return eff.buildPlanar(d)
	case "sync", "seq":
		if len(eff.Members) == 0 {
			return nil, fmt.Errorf("%w: group effect %q has no members", particles.ErrInvalidConfig, name)
		}
		visiting[name] = true
		defer delete(visiting, name)
		members := make([]particles.System, 0, len(eff.Members))
		for _, member := range eff.Members {
			sys, err := doc.build(member, d, visiting)
			if err != nil {
				return nil, err
			}
			members = append(members, sys)
		}
		if eff.Kind == "sync" {
			return particles.NewSyncGrp(members...), nil
		}
		return particles.NewSeqGrp(members...), nil
	default:
		return nil, fmt.Errorf("%w: effect %q has unknown kind %q", particles.ErrInvalidConfig, name, eff.Kind)
	}
}

func (eff Effect) buildLinear(d particles.PointDrawer) (particles.System, error) {
	start, err := vec3(eff.Start, "start")
	if err != nil {
		return nil, err
	}
	end, err := vec3(eff.End, "end")
	if err != nil {
		return nil, err
	}
	lp := particles.NewLinearParticles(start, end, d)
	if eff.Period > 0 {
		lp.WithPeriod(eff.Period)
	}
	if eff.Decay > 0 {
		lp.WithDecay(eff.Decay)
	}
	if eff.Densities != nil {
		lp.WithDensities(series(eff.Densities, eff.Interp))
	}
	if eff.Locations != nil {
		lp.WithLocations(series(eff.Locations, eff.Interp))
	}
	if eff.Sizes != nil {
		lp.WithSizes(series(eff.Sizes, eff.Interp))
	}
	if eff.Colors != nil {
		cs, err := colorSeries(eff.Colors, eff.Interp)
		if err != nil {
			return nil, err
		}
		lp.WithColors(cs)
	}
	if err := lp.Err(); err != nil {
		return nil, err
	}
	return lp, nil
}

func (eff Effect) buildPlanar(d particles.PointDrawer) (particles.System, error) {
	origin, err := vec3(eff.Origin, "origin")
	if err != nil {
		return nil, err
	}
	edgeU, err := vec3(eff.EdgeU, "edgeU")
	if err != nil {
		return nil, err
	}
	edgeV, err := vec3(eff.EdgeV, "edgeV")
	if err != nil {
		return nil, err
	}
	pp := particles.NewPlanarParticles(origin, edgeU, edgeV, d)
	if eff.Period > 0 {
		pp.WithPeriod(eff.Period)
	}
	if eff.Decay > 0 {
		pp.WithDecay(eff.Decay)
	}
	if eff.Densities != nil {
		pp.WithDensities(series(eff.Densities, eff.Interp))
	}
	if eff.Locations != nil {
		pp.WithLocations(series(eff.Locations, eff.Interp))
	}
	if eff.Sizes != nil {
		pp.WithSizes(series(eff.Sizes, eff.Interp))
	}
	if eff.Colors != nil {
		cs, err := colorSeries(eff.Colors, eff.Interp)
		if err != nil {
			return nil, err
		}
		pp.WithColors(cs)
	}
	if err := pp.Err(); err != nil {
		return nil, err
	}
	return pp, nil
}

func vec3(v []float64, field string) (particles.Vec3, error) {
	if len(v) != 3 {
		return particles.Vec3{}, fmt.Errorf("%w: %s must have 3 components, got %d",
			particles.ErrInvalidConfig, field, len(v))
	}
	return particles.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func series(keys []Key, interp string) particles.Series {
	s := particles.Series{
		Keys:   make([]particles.Keyframe, len(keys)),
		Interp: curve.Mode(interp),
	}
	for i, k := range keys {
		s.Keys[i] = particles.Keyframe{At: k.At, Value: k.Value}
	}
	return s
}

func colorSeries(keys []ColorKey, interp string) (particles.ColorSeries, error) {
	s := particles.ColorSeries{
		Keys:   make([]particles.ColorKeyframe, len(keys)),
		Interp: curve.Mode(interp),
	}
	for i, k := range keys {
		if len(k.Value) != 4 {
			return particles.ColorSeries{}, fmt.Errorf("%w: color value must have 4 channels, got %d",
				particles.ErrInvalidConfig, len(k.Value))
		}
		s.Keys[i] = particles.ColorKeyframe{
			At:    k.At,
			Value: particles.Color{R: k.Value[0], G: k.Value[1], B: k.Value[2], A: k.Value[3]},
		}
	}
	return s, nil
}
