//go:build ebiten

package app

import (
	"context"
	"fmt"

	"lifegate/internal/brush"
	"lifegate/internal/render"
	"lifegate/internal/scenario"
	"lifegate/internal/session"
	"lifegate/internal/ui"
	"lifegate/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var hints = []string{
	"space run/pause  n step",
	"r reset  c clear  v verify",
	"b brush  t rotate  click place",
	"0 setup  1-9 scenario",
}

var scenarioKeys = []ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a puzzle session to the ebiten.Game interface.
type Game struct {
	driver *session.Driver
	canvas *ui.Canvas
	hud    *ui.HUD

	lib      brush.Library
	brushes  []string
	brush    int
	rotation int
	workers  int
}

// New constructs a Game for the provided session.
func New(s *session.Session, lib brush.Library, cfg *Config) *Game {
	canvas := ui.NewCanvas(s.Challenge().Size(), cfg.Scale)
	g := &Game{
		driver:  session.NewDriver(s, canvas, cfg.GPS),
		canvas:  canvas,
		hud:     ui.NewHUD(s, cfg.HUDWidth, hints),
		lib:     lib,
		brushes: lib.Names(),
		workers: cfg.Workers,
	}
	g.driver.Redraw()
	return g
}

func (g *Game) currentBrush() string {
	if len(g.brushes) == 0 {
		return ""
	}
	return g.brushes[g.brush]
}

// Update handles per-frame input and advances the session.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	s := g.driver.Session()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.driver.SetPaused(!g.driver.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.driver.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reset()
		g.driver.SetPaused(true)
		g.driver.Invalidate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.Clear()
		g.driver.SetPaused(true)
		g.driver.Invalidate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) && len(g.brushes) > 0 {
		g.brush = (g.brush + 1) % len(g.brushes)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.rotation = (g.rotation + 1) % 4
	}
	for i, key := range scenarioKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.selectScenario(i - 1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.verify()
	}

	g.updateEditor()

	if !g.driver.Update() {
		g.driver.Redraw()
	}
	g.hud.Update()
	return nil
}

func (g *Game) selectScenario(i int) {
	if err := g.driver.Session().SelectScenario(i); err != nil {
		g.hud.SetStatus([]string{err.Error()})
		return
	}
	g.driver.SetPaused(true)
	g.driver.Invalidate()
}

func (g *Game) updateEditor() {
	g.driver.Editor = core.None[render.EditorOverlay]()
	name := g.currentBrush()
	cell, ok := g.canvas.CellAt(ebiten.CursorPosition())
	if !ok || name == "" {
		return
	}
	s := g.driver.Session()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if _, err := s.Place(name, cell.X, cell.Y, g.rotation); err != nil {
			g.hud.SetStatus([]string{err.Error()})
		}
		return
	}
	b, err := g.lib.Lookup(name)
	if err != nil {
		return
	}
	g.driver.Editor = core.Some(render.EditorOverlay{Preview: b.Rotate(g.rotation).Pixels(cell.X, cell.Y)})
}

func (g *Game) verify() {
	results, err := g.driver.Session().Verify(context.Background(), scenario.Options{Workers: g.workers})
	if err != nil {
		g.hud.SetStatus([]string{err.Error()})
		return
	}
	lines := make([]string, 0, len(results)+1)
	verdict := "FAIL"
	if scenario.Passed(results) {
		verdict = "PASS"
	}
	lines = append(lines, "verify: "+verdict)
	for _, res := range results {
		mark := "x"
		if res.Passed {
			mark = "ok"
		}
		lines = append(lines, fmt.Sprintf(" %-2s %s", mark, res.Scenario))
	}
	g.hud.SetStatus(lines)
}

// Draw renders the board and the status panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Sync(g.driver.Renderer())
	g.canvas.Draw(screen)
	b := g.canvas.Bounds()
	g.hud.Draw(screen, b.Dx(), b.Dy())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.canvas.Bounds()
	return b.Dx() + g.hud.Width(), b.Dy()
}
