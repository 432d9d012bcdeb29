//go:build ebiten

package ui

import (
	"image"

	"lifegate/internal/render"
	"lifegate/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas is a render.Painter backed by a CPU raster that is uploaded to an
// ebiten image whenever the renderer reports dirty regions.
type Canvas struct {
	*render.Raster
	img *ebiten.Image
}

// NewCanvas allocates a canvas for a board of the given size.
func NewCanvas(size core.Size, scale int) *Canvas {
	r := render.NewRaster(size, scale)
	b := r.Image().Bounds()
	return &Canvas{Raster: r, img: ebiten.NewImage(b.Dx(), b.Dy())}
}

// Sync uploads the raster when any region is dirty and clears the regions.
func (c *Canvas) Sync(r *render.Renderer) {
	if len(r.DirtyRegions()) == 0 {
		return
	}
	c.img.WritePixels(c.Pixels())
	r.ClearDirtyRegions()
}

// Draw blits the canvas at the top-left of screen.
func (c *Canvas) Draw(screen *ebiten.Image) {
	screen.DrawImage(c.img, &ebiten.DrawImageOptions{})
}

// Bounds reports the canvas size in screen pixels.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// CellAt maps a screen position to a board cell.
func (c *Canvas) CellAt(x, y int) (core.Point, bool) {
	if !image.Pt(x, y).In(c.Bounds()) {
		return core.Point{}, false
	}
	s := c.Scale()
	return core.Point{X: x / s, Y: y / s}, true
}
