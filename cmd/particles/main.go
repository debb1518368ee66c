// Command particles is an interactive viewer for particlefx effects.
//
// Usage:
//
//	go run cmd/particles/main.go [flags]
//
// Flags:
//
//	--preset <file>   Load effects from a preset YAML file
//	--effect <name>   Start with the named effect
//	--loop            Start effects in looping mode
//	--save <name>     Save the loaded document to the preset store and exit
//	--load <name>     Load the document from the preset store
//
// Controls:
//
//	Left/Right Arrow  - Switch to previous/next effect
//	Space             - Restart the current effect
//	L                 - Toggle looping mode (restarts the effect)
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/particlefx/pkg/particles"
	"github.com/gonewx/particlefx/pkg/preset"
	"github.com/gonewx/particlefx/pkg/render"
)

const (
	windowWidth  = 800
	windowHeight = 600
	storeAppName = "particlefx"
)

type namedEffect struct {
	name string
	sys  particles.System
}

type viewer struct {
	effects []namedEffect
	active  int
	loop    bool
	drawer  *render.ScreenDrawer
}

func (v *viewer) current() namedEffect {
	return v.effects[v.active]
}

func (v *viewer) restart() {
	now := time.Now()
	var err error
	if v.loop {
		err = v.current().sys.StartLoop(now)
	} else {
		err = v.current().sys.Start(now)
	}
	if err != nil {
		log.Printf("[Viewer] Failed to start effect %q: %v", v.current().name, err)
	}
}

func (v *viewer) switchTo(idx int) {
	v.current().sys.Stop()
	v.active = (idx + len(v.effects)) % len(v.effects)
	v.restart()
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ),
		inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.switchTo(v.active - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.switchTo(v.active + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		v.loop = !v.loop
		v.restart()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.drawer.SetTarget(screen)
	eff := v.current()
	if err := eff.sys.Run(time.Now()); err != nil && !errors.Is(err, particles.ErrNotRunning) {
		log.Printf("[Viewer] Run %q: %v", eff.name, err)
	}
	mode := "once"
	if v.loop {
		mode = "loop"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s (%d/%d) [%s] %s  -  arrows switch, space restart, L loop, Q quit",
		eff.name, v.active+1, len(v.effects), mode, eff.sys.State()))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func main() {
	presetPath := flag.String("preset", "", "preset YAML file to load")
	effectName := flag.String("effect", "", "effect to start with")
	loop := flag.Bool("loop", false, "start effects in looping mode")
	saveName := flag.String("save", "", "save the loaded document to the preset store and exit")
	loadName := flag.String("load", "", "load the document from the preset store")
	flag.Parse()

	doc, err := resolveDocument(*presetPath, *loadName)
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}

	if *saveName != "" {
		store, err := preset.OpenStore(storeAppName)
		if err != nil {
			log.Fatalf("[Viewer] %v", err)
		}
		if err := store.Save(*saveName, doc); err != nil {
			log.Fatalf("[Viewer] %v", err)
		}
		return
	}

	drawer := render.NewScreenDrawer(120, windowWidth/2, windowHeight-80)
	v := &viewer{loop: *loop, drawer: drawer}

	names := make([]string, 0, len(doc.Effects))
	for name := range doc.Effects {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sys, err := doc.Build(name, drawer)
		if err != nil {
			log.Fatalf("[Viewer] Failed to build effect %q: %v", name, err)
		}
		v.effects = append(v.effects, namedEffect{name: name, sys: sys})
	}

	if *effectName != "" {
		found := false
		for i, eff := range v.effects {
			if eff.name == *effectName {
				v.active = i
				found = true
				break
			}
		}
		if !found {
			log.Fatalf("[Viewer] Unknown effect %q", *effectName)
		}
	}
	v.restart()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("particlefx viewer")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func resolveDocument(path, stored string) (*preset.Document, error) {
	switch {
	case path != "" && stored != "":
		return nil, errors.New("--preset and --load are mutually exclusive")
	case path != "":
		return preset.Load(path)
	case stored != "":
		store, err := preset.OpenStore(storeAppName)
		if err != nil {
			return nil, err
		}
		return store.Load(stored)
	default:
		return builtinDocument(), nil
	}
}

// builtinDocument is the demo scene shown when no preset is supplied:
// a fountain, a mist sheet and a sequenced sweep around a square frame.
func builtinDocument() *preset.Document {
	edge := func(x0, y0, x1, y1 float64) preset.Effect {
		return preset.Effect{
			Kind:   "linear",
			Period: 1,
			Decay:  0.8,
			Start:  []float64{x0, y0, 0},
			End:    []float64{x1, y1, 0},
			Densities: []preset.Key{
				{At: 0, Value: 0.9},
			},
			Sizes: []preset.Key{
				{At: 0, Value: 0.03},
			},
			Colors: []preset.ColorKey{
				{At: 0, Value: []float64{0.3, 0.9, 1, 1}},
				{At: 1, Value: []float64{0.9, 0.3, 1, 1}},
			},
		}
	}

	return &preset.Document{
		Effects: map[string]preset.Effect{
			"fountain": {
				Kind:   "linear",
				Period: 3,
				Decay:  1.2,
				Start:  []float64{0, 0, 0},
				End:    []float64{0, 3, 0},
				Densities: []preset.Key{
					{At: 0, Value: 1},
					{At: 0.8, Value: 1},
					{At: 1, Value: 0},
				},
				Locations: []preset.Key{
					{At: 0, Value: 0},
					{At: 0.5, Value: 1},
					{At: 1, Value: 0},
				},
				Sizes: []preset.Key{
					{At: 0, Value: 0.06},
					{At: 1, Value: 0.02},
				},
				Colors: []preset.ColorKey{
					{At: 0, Value: []float64{0.2, 0.6, 1, 1}},
					{At: 1, Value: []float64{1, 1, 1, 0.4}},
				},
			},
			"mist": {
				Kind:   "planar",
				Period: 4,
				Decay:  2,
				Origin: []float64{-2, 0, 0},
				EdgeU:  []float64{4, 0, 0},
				EdgeV:  []float64{0, 0.6, 0},
				Densities: []preset.Key{
					{At: 0, Value: 0.6},
				},
				Sizes: []preset.Key{
					{At: 0, Value: 0.08},
				},
				Colors: []preset.ColorKey{
					{At: 0, Value: []float64{0.8, 0.8, 0.9, 0.35}},
				},
			},
			"frame-bottom": edge(-1, 0.5, 1, 0.5),
			"frame-right":  edge(1, 0.5, 1, 2.5),
			"frame-top":    edge(1, 2.5, -1, 2.5),
			"frame-left":   edge(-1, 2.5, -1, 0.5),
			"frame-sweep": {
				Kind:    "seq",
				Members: []string{"frame-bottom", "frame-right", "frame-top", "frame-left"},
			},
			"fountain-in-mist": {
				Kind:    "sync",
				Members: []string{"fountain", "mist"},
			},
		},
	}
}
