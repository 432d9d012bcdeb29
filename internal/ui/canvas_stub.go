//go:build !ebiten

package ui

import (
	"lifegate/internal/render"
	"lifegate/pkg/core"
)

// Canvas wraps a CPU raster in headless builds.
type Canvas struct {
	*render.Raster
}

// NewCanvas allocates a raster-only canvas.
func NewCanvas(size core.Size, scale int) *Canvas {
	return &Canvas{Raster: render.NewRaster(size, scale)}
}

// Sync clears the renderer's dirty regions; there is nothing to upload.
func (c *Canvas) Sync(r *render.Renderer) { r.ClearDirtyRegions() }

// Draw is a no-op placeholder.
func (c *Canvas) Draw(any) {}
