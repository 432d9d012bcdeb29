//go:build ebiten

package app

import (
	"time"

	internalcore "lifegate/internal/core"
	"lifegate/internal/render"
	"lifegate/internal/ui"
	"lifegate/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Sandbox runs a registered simulation without a challenge.
type Sandbox struct {
	sim      core.Sim
	canvas   *ui.Canvas
	renderer *render.Renderer
	pace     *internalcore.FixedStep
	previous *core.Grid

	paused   bool
	tickOnce bool
	seed     int64
}

// NewSandbox constructs a Sandbox for the provided simulation.
func NewSandbox(sim core.Sim, cfg *Config) *Sandbox {
	return &Sandbox{
		sim:      sim,
		canvas:   ui.NewCanvas(sim.Size(), cfg.Scale),
		renderer: render.NewRenderer(),
		pace:     internalcore.NewFixedStep(cfg.GPS),
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Sandbox) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.previous = nil
}

// Update handles per-frame logic and advances the simulation.
func (g *Sandbox) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.pace.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.tickOnce || (!g.paused && g.pace.ShouldStep()) {
		g.sim.Step()
		g.tickOnce = false
	}
	grid := gridOf(g.sim)
	g.renderer.Render(g.canvas, grid, g.previous, render.Options{})
	g.previous = grid
	return nil
}

// gridOf copies a simulation's cells into a grid.
func gridOf(sim core.Sim) *core.Grid {
	size := sim.Size()
	g := core.NewGrid(size.W, size.H)
	copy(g.Cells(), sim.Cells())
	return g
}

// Draw renders the current simulation state.
func (g *Sandbox) Draw(screen *ebiten.Image) {
	g.canvas.Sync(g.renderer)
	g.canvas.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Sandbox) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.canvas.Bounds()
	return b.Dx(), b.Dy()
}
