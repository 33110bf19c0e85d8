// Package viewer runs the simulation in a desktop window.
package viewer

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"solar-sim/internal/camera"
	"solar-sim/pkg/physics"
	"solar-sim/pkg/simulation"
)

const (
	maxTrailPoints  = 600 // per body
	forceHistoryMax = 600
)

// Options configures the window.
type Options struct {
	Width, Height int
	// StepsPerFrame is how many ticks run per rendered frame while running.
	StepsPerFrame int
	// Reload restarts the run from its source; nil disables the R key.
	Reload func() error
}

// Game is the ebiten game wrapping one simulator.
type Game struct {
	sim  *simulation.Simulator
	opts Options
	cam  *camera.Camera

	trails   [][]physics.Vec2
	lastTick uint64

	// pair is the second selected body for the force readout.
	pair         int
	forceHistory []float64

	dragging     bool
	lastX, lastY int

	shortcutsVisible bool
}

// New returns a game over sim.
func New(sim *simulation.Simulator, opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.StepsPerFrame <= 0 {
		opts.StepsPerFrame = 1
	}
	g := &Game{
		sim:              sim,
		opts:             opts,
		cam:              camera.New(opts.Width, opts.Height),
		pair:             camera.NoFocus,
		shortcutsVisible: true,
	}
	g.resetTrails(sim.Snapshot())
	return g
}

// Run opens the window and blocks until it is closed.
func Run(sim *simulation.Simulator, opts Options) error {
	g := New(sim, opts)
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowTitle("Gravity Simulation - " + sim.Name())
	return ebiten.RunGame(g)
}

// Update handles input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.sim.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.sim.StepIfPaused()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.shortcutsVisible = !g.shortcutsVisible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cam.Cycle(g.sim.Snapshot())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.cam.ClearFocus()
		g.clearPair()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.opts.Reload != nil {
		if err := g.opts.Reload(); err != nil {
			log.Printf("Reset failed: %v", err)
		}
	}

	g.handleMouse()

	for i := 0; i < g.opts.StepsPerFrame; i++ {
		if !g.sim.Step() {
			break
		}
	}
	g.record()
	return nil
}

func (g *Game) handleMouse() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.cam.ZoomBy(wy)
	}

	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.dragging {
			g.cam.Pan(float64(mx-g.lastX), float64(my-g.lastY))
		}
		g.dragging = true
		g.lastX, g.lastY = mx, my
	} else {
		g.dragging = false
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	snap := g.sim.Snapshot()
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		// shift-click picks the second body of the force pair
		b, ok := snap.Pick(g.cam.ToWorld(g.cam.Center(snap), float64(mx), float64(my)))
		if ok && b.ID != g.cam.Focus && b.ID != g.pair {
			g.pair = b.ID
			g.forceHistory = nil
		}
		return
	}
	prev := g.cam.Focus
	if b, ok := g.cam.Select(snap, float64(mx), float64(my)); ok {
		log.Printf("Focused on %s", b.Name)
		if b.ID != prev {
			g.clearPair()
		}
	}
}

func (g *Game) clearPair() {
	g.pair = camera.NoFocus
	g.forceHistory = nil
}

// record appends trail points and the pair force once per published tick.
func (g *Game) record() {
	snap := g.sim.Snapshot()
	if snap.Tick < g.lastTick || len(snap.Bodies) != len(g.trails) {
		// the run was restarted
		g.resetTrails(snap)
		g.clearPair()
		g.cam.ClearFocus()
		return
	}
	if snap.Tick == g.lastTick {
		return
	}
	g.lastTick = snap.Tick

	for i, b := range snap.Bodies {
		g.trails[i] = append(g.trails[i], b.Pos)
		if len(g.trails[i]) > maxTrailPoints {
			g.trails[i] = g.trails[i][len(g.trails[i])-maxTrailPoints:]
		}
	}

	if f, ok := g.pairForce(); ok {
		g.forceHistory = append(g.forceHistory, physics.Len(f))
		if len(g.forceHistory) > forceHistoryMax {
			g.forceHistory = g.forceHistory[len(g.forceHistory)-forceHistoryMax:]
		}
	}
}

// pairForce is the force on the focused body from the paired one.
func (g *Game) pairForce() (physics.Vec2, bool) {
	if g.cam.Focus == camera.NoFocus || g.pair == camera.NoFocus {
		return physics.Vec2{}, false
	}
	bodies := g.sim.Bodies()
	if g.cam.Focus >= len(bodies) || g.pair >= len(bodies) {
		return physics.Vec2{}, false
	}
	p := g.sim.Params()
	return physics.PairForce(bodies[g.cam.Focus], bodies[g.pair], p.G, p.MinDistance), true
}

func (g *Game) resetTrails(snap simulation.Snapshot) {
	g.trails = make([][]physics.Vec2, len(snap.Bodies))
	g.lastTick = snap.Tick
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}
