package guidance

import "math"

// Color tags a projected pixel for the renderer's palette.
type Color uint8

const (
	// ColorGuidance is the tag for the trailing segment.
	ColorGuidance Color = iota + 1
)

// Pixel is a projected guidance cell.
type Pixel struct {
	X, Y  int
	Color Color
}

// GenerateAllPixels projects every line at generation onto a width×height
// grid. Inactive lines contribute nothing and cells outside the grid are
// omitted. Duplicates across lines are kept.
func GenerateAllPixels(lines []Line, generation, width, height int) []Pixel {
	var out []Pixel
	for _, l := range lines {
		out = appendLine(out, l, generation, width, height)
	}
	return out
}

func appendLine(out []Pixel, l Line, generation, width, height int) []Pixel {
	if width <= 0 || height <= 0 {
		return out
	}
	lead, ok := l.Lead(generation)
	if !ok {
		return out
	}
	dx, dy := l.Direction.Vector()

	// Cells are lead - k*(dx,dy). Find the k range that stays on the grid.
	kMin, kMax := 0, math.MaxInt
	if !l.isInfinite() {
		kMax = l.Length - 1
	}
	kMin, kMax = clipAxis(kMin, kMax, lead.X, dx, width)
	kMin, kMax = clipAxis(kMin, kMax, lead.Y, dy, height)
	for k := kMin; k <= kMax; k++ {
		out = append(out, Pixel{X: lead.X - k*dx, Y: lead.Y - k*dy, Color: ColorGuidance})
	}
	return out
}

func (l Line) isInfinite() bool { return l.Length == Infinite }

// clipAxis narrows [kMin, kMax] so that pos - k*d lies in [0, size).
func clipAxis(kMin, kMax, pos, d, size int) (int, int) {
	switch {
	case d > 0:
		// pos - k <= size-1  =>  k >= pos-size+1 ; pos - k >= 0  =>  k <= pos
		kMin = max(kMin, pos-size+1)
		kMax = min(kMax, pos)
	case d < 0:
		// pos + k >= 0  =>  k >= -pos ; pos + k <= size-1  =>  k <= size-1-pos
		kMin = max(kMin, -pos)
		kMax = min(kMax, size-1-pos)
	default:
		if pos < 0 || pos >= size {
			return 1, 0
		}
	}
	return kMin, kMax
}
