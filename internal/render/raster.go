package render

import (
	"image"
	"image/color"

	"lifegate/internal/detect"
	"lifegate/internal/guidance"
	"lifegate/pkg/core"
)

// Palette holds the colors a Raster paints with.
type Palette struct {
	Line             color.RGBA
	Dead             color.RGBA
	Alive            color.RGBA
	Guidance         color.RGBA
	Reference        color.RGBA
	Selection        color.RGBA
	Preview          color.RGBA
	DetectorActive   color.RGBA
	DetectorInactive color.RGBA
}

// DefaultPalette returns the stock colors.
func DefaultPalette() Palette {
	return Palette{
		Line:             color.RGBA{R: 28, G: 28, B: 34, A: 255},
		Dead:             color.RGBA{R: 8, G: 8, B: 12, A: 255},
		Alive:            color.RGBA{R: 235, G: 235, B: 240, A: 255},
		Guidance:         color.RGBA{R: 64, G: 164, B: 223, A: 255},
		Reference:        color.RGBA{R: 120, G: 90, B: 160, A: 255},
		Selection:        color.RGBA{R: 230, G: 200, B: 60, A: 255},
		Preview:          color.RGBA{R: 90, G: 200, B: 110, A: 255},
		DetectorActive:   color.RGBA{R: 255, G: 120, B: 40, A: 255},
		DetectorInactive: color.RGBA{R: 150, G: 40, B: 40, A: 255},
	}
}

// Raster is a Painter that draws into an in-memory RGBA image with each cell
// covering scale×scale pixels. At scale 3 and above the last pixel row and
// column of every cell belong to the background grid lines.
type Raster struct {
	Palette Palette

	size  core.Size
	scale int
	img   *image.RGBA
}

// NewRaster allocates a raster for a board of size at the given scale.
func NewRaster(size core.Size, scale int) *Raster {
	if scale <= 0 {
		scale = 1
	}
	return &Raster{
		Palette: DefaultPalette(),
		size:    size,
		scale:   scale,
		img:     image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale)),
	}
}

// Image exposes the painted image.
func (r *Raster) Image() *image.RGBA { return r.img }

// Pixels exposes the raw RGBA bytes.
func (r *Raster) Pixels() []byte { return r.img.Pix }

// Scale reports the pixel size of a cell.
func (r *Raster) Scale() int { return r.scale }

// CellColor samples the color at the top-left pixel of cell (x, y).
func (r *Raster) CellColor(x, y int) color.RGBA {
	return r.img.RGBAAt(x*r.scale, y*r.scale)
}

func (r *Raster) gridLines() bool { return r.scale >= 3 }

func (r *Raster) fillCell(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= r.size.W || y >= r.size.H {
		return
	}
	inner := r.scale
	if r.gridLines() {
		inner--
	}
	stride := r.img.Stride
	for py := y * r.scale; py < y*r.scale+inner; py++ {
		row := py * stride
		for px := x * r.scale; px < x*r.scale+inner; px++ {
			putRGBA(r.img.Pix, row+px*4, col)
		}
	}
}

// Background draws the grid lines.
func (r *Raster) Background(size core.Size) {
	if !r.gridLines() {
		return
	}
	b := r.img.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			if px%r.scale == r.scale-1 || py%r.scale == r.scale-1 {
				r.img.SetRGBA(px, py, r.Palette.Line)
			}
		}
	}
}

// Cells paints live and dead cells.
func (r *Raster) Cells(g *core.Grid, changed []core.Point, full bool) {
	if full && r.scale == 1 && g.W == r.size.W && g.H == r.size.H {
		fillBinaryRGBA(r.img.Pix, g.Cells(), r.Palette.Alive, r.Palette.Dead)
		return
	}
	if full {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				r.fillCell(x, y, r.cellColor(g, x, y))
			}
		}
		return
	}
	for _, p := range changed {
		r.fillCell(p.X, p.Y, r.cellColor(g, p.X, p.Y))
	}
}

func (r *Raster) cellColor(g *core.Grid, x, y int) color.RGBA {
	if g.Alive(x, y) {
		return r.Palette.Alive
	}
	return r.Palette.Dead
}

// GuidanceLines paints projected guidance pixels.
func (r *Raster) GuidanceLines(px []guidance.Pixel) {
	for _, p := range px {
		r.fillCell(p.X, p.Y, r.Palette.Guidance)
	}
}

// Reference paints the reference pattern.
func (r *Raster) Reference(ref Reference) {
	for _, p := range ref.Points {
		r.fillCell(p.X, p.Y, r.Palette.Reference)
	}
}

// Editor paints the selection outline and the brush preview.
func (r *Raster) Editor(ov EditorOverlay) {
	sel := ov.Selection.Canon()
	if !sel.Empty() {
		for x := sel.Min.X; x < sel.Max.X; x++ {
			r.fillCell(x, sel.Min.Y, r.Palette.Selection)
			r.fillCell(x, sel.Max.Y-1, r.Palette.Selection)
		}
		for y := sel.Min.Y; y < sel.Max.Y; y++ {
			r.fillCell(sel.Min.X, y, r.Palette.Selection)
			r.fillCell(sel.Max.X-1, y, r.Palette.Selection)
		}
	}
	for _, p := range ov.Preview {
		r.fillCell(p.X, p.Y, r.Palette.Preview)
	}
}

// Detectors paints each detector in its current level's color.
func (r *Raster) Detectors(ds []detect.Detector) {
	for _, d := range ds {
		col := r.Palette.DetectorInactive
		if d.Value != 0 {
			col = r.Palette.DetectorActive
		}
		r.fillCell(d.X, d.Y, col)
	}
}
