// Package render composes a frame from the board, guidance lines, editor
// overlays and detectors in a fixed layer order.
package render

import (
	"cmp"
	"image"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"lifegate/internal/detect"
	"lifegate/internal/guidance"
	"lifegate/pkg/core"
)

// Layer names a paint pass.
type Layer string

const (
	LayerBackground Layer = "background"
	LayerCells      Layer = "cells"
	LayerGuidance   Layer = "guidanceLines"
	LayerReference  Layer = "reference"
	LayerEditor     Layer = "editor"
	LayerDetectors  Layer = "detectors"
)

// Reference is a challenge pattern drawn as a hint over the board.
type Reference struct {
	Points []core.Point
}

// EditorOverlay carries the editor's selection box and brush preview.
type EditorOverlay struct {
	// Selection is in cell units; an empty rectangle draws nothing.
	Selection image.Rectangle
	Preview   []core.Point
}

// Options carries the optional layers of a frame.
type Options struct {
	GuidancePixels []guidance.Pixel
	Reference      core.Option[Reference]
	Editor         core.Option[EditorOverlay]
	Detectors      []detect.Detector
}

// Painter receives one call per layer.
type Painter interface {
	Background(size core.Size)
	// Cells paints the board. When full is false only the listed cells
	// need repainting.
	Cells(g *core.Grid, changed []core.Point, full bool)
	GuidanceLines(px []guidance.Pixel)
	Reference(ref Reference)
	Editor(ov EditorOverlay)
	Detectors(ds []detect.Detector)
}

// Renderer sequences the layers of each frame and tracks which cell regions
// were touched since the dirty set was last cleared.
type Renderer struct {
	dirty mapset.Set[image.Rectangle]
	// overlay cells painted last frame; they must be repainted from the
	// board before this frame's overlays go on top.
	stale []core.Point
}

// NewRenderer returns a renderer with an empty dirty set.
func NewRenderer() *Renderer {
	return &Renderer{dirty: mapset.New[image.Rectangle]()}
}

// Render paints one frame. The layer order is fixed: background, cells,
// guidance lines, reference, editor, detectors. Detectors are always painted
// last so nothing can cover them; the guidance, reference and editor layers
// are skipped when they have nothing to draw.
func (r *Renderer) Render(p Painter, grid, previous *core.Grid, opts Options) {
	size := grid.Size()
	p.Background(size)

	full := previous == nil || previous.W != grid.W || previous.H != grid.H
	var changed []core.Point
	if full {
		r.MarkDirty(image.Rect(0, 0, size.W, size.H))
	} else {
		changed = r.changedCells(grid, previous)
		for _, c := range changed {
			r.MarkDirty(cellRect(c))
		}
	}
	p.Cells(grid, changed, full)
	r.stale = r.stale[:0]

	if len(opts.GuidancePixels) > 0 {
		p.GuidanceLines(opts.GuidancePixels)
		for _, px := range opts.GuidancePixels {
			r.touch(grid, core.Point{X: px.X, Y: px.Y})
		}
	}
	if ref, ok := opts.Reference.Get(); ok {
		p.Reference(ref)
		for _, pt := range ref.Points {
			r.touch(grid, pt)
		}
	}
	if ov, ok := opts.Editor.Get(); ok {
		p.Editor(ov)
		for _, pt := range ov.Preview {
			r.touch(grid, pt)
		}
		sel := ov.Selection.Intersect(image.Rect(0, 0, size.W, size.H))
		for y := sel.Min.Y; y < sel.Max.Y; y++ {
			for x := sel.Min.X; x < sel.Max.X; x++ {
				r.touch(grid, core.Point{X: x, Y: y})
			}
		}
	}

	p.Detectors(opts.Detectors)
	for _, d := range opts.Detectors {
		r.touch(grid, core.Point{X: d.X, Y: d.Y})
	}
}

func (r *Renderer) touch(grid *core.Grid, pt core.Point) {
	if !grid.In(pt.X, pt.Y) {
		return
	}
	r.stale = append(r.stale, pt)
	r.MarkDirty(cellRect(pt))
}

func (r *Renderer) changedCells(grid, previous *core.Grid) []core.Point {
	set := mapset.New[core.Point]()
	cur, prev := grid.Cells(), previous.Cells()
	for i, v := range cur {
		if prev[i] != v {
			set.Put(core.Point{X: i % grid.W, Y: i / grid.W})
		}
	}
	for _, pt := range r.stale {
		if grid.In(pt.X, pt.Y) {
			set.Put(pt)
		}
	}
	out := make([]core.Point, 0, set.Size())
	set.Each(func(pt core.Point) { out = append(out, pt) })
	slices.SortFunc(out, func(a, b core.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return out
}

// MarkDirty records a cell-space region as touched.
func (r *Renderer) MarkDirty(rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	r.dirty.Put(rect.Canon())
}

// DirtyRegions lists the touched regions in row-major order.
func (r *Renderer) DirtyRegions() []image.Rectangle {
	out := make([]image.Rectangle, 0, r.dirty.Size())
	r.dirty.Each(func(rect image.Rectangle) { out = append(out, rect) })
	slices.SortFunc(out, func(a, b image.Rectangle) int {
		if c := cmp.Compare(a.Min.Y, b.Min.Y); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Min.X, b.Min.X); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Max.Y, b.Max.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Max.X, b.Max.X)
	})
	return out
}

// ClearDirtyRegions empties the dirty set.
func (r *Renderer) ClearDirtyRegions() {
	r.dirty = mapset.New[image.Rectangle]()
}

func cellRect(p core.Point) image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+1, p.Y+1)
}
