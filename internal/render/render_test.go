package render

import (
	"image"
	"slices"
	"testing"

	"lifegate/internal/detect"
	"lifegate/internal/guidance"
	"lifegate/pkg/core"
)

type call struct {
	layer   Layer
	changed []core.Point
	full    bool
}

type recorder struct {
	calls []call
}

func (r *recorder) layers() []Layer {
	out := make([]Layer, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.layer
	}
	return out
}

func (r *recorder) Background(core.Size) { r.calls = append(r.calls, call{layer: LayerBackground}) }
func (r *recorder) Cells(_ *core.Grid, changed []core.Point, full bool) {
	r.calls = append(r.calls, call{layer: LayerCells, changed: changed, full: full})
}
func (r *recorder) GuidanceLines([]guidance.Pixel) { r.calls = append(r.calls, call{layer: LayerGuidance}) }
func (r *recorder) Reference(Reference)            { r.calls = append(r.calls, call{layer: LayerReference}) }
func (r *recorder) Editor(EditorOverlay)           { r.calls = append(r.calls, call{layer: LayerEditor}) }
func (r *recorder) Detectors([]detect.Detector)    { r.calls = append(r.calls, call{layer: LayerDetectors}) }

func TestRenderLayerOrder(t *testing.T) {
	grid := core.NewGrid(6, 6)
	det := []detect.Detector{detect.New(2, 2, 0, detect.Active, core.None[detect.State]())}
	guide := []guidance.Pixel{{X: 2, Y: 2, Color: guidance.ColorGuidance}}

	cases := []struct {
		name string
		opts Options
		want []Layer
	}{
		{"bare", Options{}, []Layer{LayerBackground, LayerCells, LayerDetectors}},
		{"empty guidance", Options{GuidancePixels: []guidance.Pixel{}}, []Layer{LayerBackground, LayerCells, LayerDetectors}},
		{"guidance", Options{GuidancePixels: guide, Detectors: det}, []Layer{LayerBackground, LayerCells, LayerGuidance, LayerDetectors}},
		{
			"everything",
			Options{
				GuidancePixels: guide,
				Reference:      core.Some(Reference{Points: []core.Point{{X: 1, Y: 1}}}),
				Editor:         core.Some(EditorOverlay{Preview: []core.Point{{X: 2, Y: 2}}}),
				Detectors:      det,
			},
			[]Layer{LayerBackground, LayerCells, LayerGuidance, LayerReference, LayerEditor, LayerDetectors},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			NewRenderer().Render(rec, grid, nil, tc.opts)
			if got := rec.layers(); !slices.Equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRenderDiffsAgainstPrevious(t *testing.T) {
	prev := core.NewGrid(4, 4)
	cur := prev.Clone()
	cur.Set(1, 2, 1)
	cur.Set(3, 0, 1)

	r := NewRenderer()
	rec := &recorder{}
	r.Render(rec, cur, prev, Options{})
	cells := rec.calls[1]
	if cells.full {
		t.Fatal("a same-size previous grid must trigger a diff repaint")
	}
	want := []core.Point{{X: 3, Y: 0}, {X: 1, Y: 2}}
	if !slices.Equal(cells.changed, want) {
		t.Fatalf("got changed %v, want %v", cells.changed, want)
	}

	rec = &recorder{}
	r.Render(rec, cur, core.NewGrid(5, 5), Options{})
	if !rec.calls[1].full {
		t.Fatal("a mismatched previous grid must trigger a full repaint")
	}
}

func TestRenderRepaintsStaleOverlayCells(t *testing.T) {
	grid := core.NewGrid(5, 5)
	r := NewRenderer()
	r.Render(&recorder{}, grid, nil, Options{
		GuidancePixels: []guidance.Pixel{{X: 4, Y: 4}},
		Detectors:      []detect.Detector{detect.New(0, 1, 0, detect.Inactive, core.None[detect.State]())},
	})

	rec := &recorder{}
	r.Render(rec, grid, grid, Options{})
	want := []core.Point{{X: 0, Y: 1}, {X: 4, Y: 4}}
	if got := rec.calls[1].changed; !slices.Equal(got, want) {
		t.Fatalf("cells under last frame's overlays must be repainted, got %v", got)
	}
}

func TestDirtyRegions(t *testing.T) {
	r := NewRenderer()
	r.MarkDirty(image.Rect(3, 3, 1, 1))
	r.MarkDirty(image.Rect(1, 1, 3, 3))
	r.MarkDirty(image.Rect(0, 0, 0, 0))
	got := r.DirtyRegions()
	if len(got) != 1 || got[0] != image.Rect(1, 1, 3, 3) {
		t.Fatalf("expected one canonical region, got %v", got)
	}
	r.ClearDirtyRegions()
	if len(r.DirtyRegions()) != 0 {
		t.Fatal("expected no regions after clearing")
	}

	prev := core.NewGrid(3, 3)
	cur := prev.Clone()
	cur.Set(2, 1, 1)
	r.Render(&recorder{}, cur, prev, Options{})
	if got := r.DirtyRegions(); !slices.Equal(got, []image.Rectangle{image.Rect(2, 1, 3, 2)}) {
		t.Fatalf("unexpected dirty regions %v", got)
	}
}

func TestRasterPaintsDetectorsOnTop(t *testing.T) {
	grid := core.NewGrid(4, 4)
	grid.Set(1, 1, 1)
	grid.Set(2, 2, 1)
	raster := NewRaster(grid.Size(), 4)
	pal := raster.Palette

	NewRenderer().Render(raster, grid, nil, Options{
		GuidancePixels: []guidance.Pixel{{X: 1, Y: 1}, {X: 0, Y: 3}},
		Detectors:      []detect.Detector{detect.New(1, 1, 0, detect.Active, core.None[detect.State]())},
	})

	if got := raster.CellColor(1, 1); got != pal.DetectorActive {
		t.Fatalf("detector must be the final paint at its cell, got %v", got)
	}
	if got := raster.CellColor(0, 3); got != pal.Guidance {
		t.Fatalf("expected guidance color, got %v", got)
	}
	if got := raster.CellColor(2, 2); got != pal.Alive {
		t.Fatalf("expected live cell color, got %v", got)
	}
	if got := raster.CellColor(3, 0); got != pal.Dead {
		t.Fatalf("expected dead cell color, got %v", got)
	}
	if got := raster.Image().RGBAAt(3, 0); got != pal.Line {
		t.Fatalf("expected a grid line pixel, got %v", got)
	}
}

func TestRasterScaleOneFullRepaint(t *testing.T) {
	grid := core.NewGrid(3, 2)
	grid.Set(2, 1, 1)
	raster := NewRaster(grid.Size(), 1)
	NewRenderer().Render(raster, grid, nil, Options{})
	if got := raster.CellColor(2, 1); got != raster.Palette.Alive {
		t.Fatalf("expected alive color, got %v", got)
	}
	if len(raster.Pixels()) != 3*2*4 {
		t.Fatalf("unexpected buffer size %d", len(raster.Pixels()))
	}
}
