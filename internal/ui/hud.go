//go:build ebiten

package ui

import (
	"image/color"

	"lifegate/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the status panel to the right of the board.
type HUD struct {
	source     parameterProvider
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	status     []string
	hints      []string
}

// NewHUD constructs a HUD that reads its values from source.
func NewHUD(source parameterProvider, width int, hints []string) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{source: source, width: width, hints: hints}
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetStatus replaces the free-form status lines shown under the parameters.
func (h *HUD) SetStatus(lines []string) {
	if h == nil {
		return
	}
	h.status = append(h.status[:0], lines...)
}

// Update refreshes the cached parameter snapshot.
func (h *HUD) Update() {
	if h == nil || h.source == nil {
		return
	}
	h.snapshot = h.source.Parameters()
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	for _, group := range h.snapshot.Groups {
		text.Draw(h.panel, group.Name, face, panelPadding, y, headerColor)
		y += lineHeight
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y, labelColor)
			w := text.BoundString(face, p.Value).Dx()
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-w, y, valueColor)
			y += lineHeight
		}
		y += groupGap
	}
	for _, line := range h.status {
		text.Draw(h.panel, line, face, panelPadding, y, valueColor)
		y += lineHeight
	}
	y = height - panelPadding - (len(h.hints)-1)*lineHeight
	for _, line := range h.hints {
		text.Draw(h.panel, line, face, panelPadding, y, hintColor)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

var (
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	valueColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	hintColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 16
	groupGap       = 8
	headerBaseline = 18
)
