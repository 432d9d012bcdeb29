package session

import (
	"lifegate/internal/core"
	"lifegate/internal/render"
	pcore "lifegate/pkg/core"
)

// Driver adapts a Session to a host frame loop. Each host frame calls
// Update, which is the driver's scheduling step: it releases the previous
// cycle's single-flight guard before deciding whether to run a new cycle.
type Driver struct {
	session  *Session
	renderer *render.Renderer
	painter  render.Painter
	flight   core.SingleFlight
	pace     *core.FixedStep

	previous *pcore.Grid
	paused   bool
	stepOnce bool

	// Editor is drawn on every frame when present.
	Editor pcore.Option[render.EditorOverlay]
}

// NewDriver wires s to painter, advancing at most rate generations per
// second while unpaused.
func NewDriver(s *Session, painter render.Painter, rate int) *Driver {
	return &Driver{
		session:  s,
		renderer: render.NewRenderer(),
		painter:  painter,
		pace:     core.NewFixedStep(rate),
		paused:   true,
	}
}

// Session returns the driven session.
func (d *Driver) Session() *Session { return d.session }

// Renderer exposes the renderer for dirty-region queries.
func (d *Driver) Renderer() *render.Renderer { return d.renderer }

// Paused reports whether automatic stepping is off.
func (d *Driver) Paused() bool { return d.paused }

// SetPaused turns automatic stepping on or off.
func (d *Driver) SetPaused(p bool) {
	d.paused = p
	if !p {
		d.pace.Reset()
	}
}

// StepOnce requests a single cycle on the next Update.
func (d *Driver) StepOnce() { d.stepOnce = true }

// SetRate changes the generations-per-second pace.
func (d *Driver) SetRate(rate int) { d.pace.SetRate(rate) }

// Schedule is the driver's own scheduling step; it ends the in-flight cycle.
func (d *Driver) Schedule() { d.flight.Release() }

// Dispatch runs one advance+render cycle. A dispatch while a cycle is still
// in flight is a no-op and reports false.
func (d *Driver) Dispatch() bool {
	if !d.flight.TryBegin() {
		return false
	}
	d.session.Advance()
	d.Redraw()
	if target := d.session.ch.TargetTurn; target > 0 && d.session.Generation() >= target {
		d.paused = true
	}
	return true
}

// Redraw paints the current board without advancing.
func (d *Driver) Redraw() {
	d.session.Frame(d.renderer, d.painter, d.previous, d.Editor)
	d.previous = d.session.Grid()
}

// Invalidate forces the next frame to repaint every cell.
func (d *Driver) Invalidate() { d.previous = nil }

// Update runs once per host frame and reports whether a generation ran.
func (d *Driver) Update() bool {
	d.Schedule()
	if d.stepOnce {
		d.stepOnce = false
		return d.Dispatch()
	}
	if d.paused || !d.pace.ShouldStep() {
		return false
	}
	return d.Dispatch()
}
