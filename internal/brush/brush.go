// Package brush holds named reusable cell patterns.
package brush

import (
	"errors"
	"fmt"
	"sort"

	"lifegate/internal/guidance"
	"lifegate/pkg/core"
)

// ErrUnknownBrush is returned when a placement names a brush the library does
// not hold.
var ErrUnknownBrush = errors.New("brush: unknown brush")

// ErrBadRotation is returned for rotations that are not a multiple of 90°.
var ErrBadRotation = errors.New("brush: rotation must be a multiple of 90 degrees")

// Offset is a pattern cell relative to the placement anchor.
type Offset struct {
	DY, DX int
}

// Brush is a named pattern with an optional guidance annotation.
type Brush struct {
	Name     string
	Pattern  []Offset
	Guidance core.Option[guidance.Spec]
}

// New builds a brush, parsing header as a guidance annotation. An empty or
// unparseable header leaves the brush without guidance.
func New(name string, pattern []Offset, header string) Brush {
	b := Brush{Name: name, Pattern: pattern}
	if header == "" {
		return b
	}
	if spec, err := guidance.ParseSpec(header); err == nil {
		b.Guidance = core.Some(spec)
	}
	return b
}

// QuarterTurns converts clockwise degrees into quarter turns.
func QuarterTurns(degrees int) (int, error) {
	if degrees%90 != 0 {
		return 0, fmt.Errorf("%w: %d", ErrBadRotation, degrees)
	}
	return ((degrees/90)%4 + 4) % 4, nil
}

// Rotate returns the brush turned clockwise by quarter turns, guidance included.
func (b Brush) Rotate(quarterTurns int) Brush {
	q := ((quarterTurns % 4) + 4) % 4
	if q == 0 {
		return b
	}
	out := Brush{Name: b.Name, Pattern: make([]Offset, len(b.Pattern))}
	for i, o := range b.Pattern {
		x, y := o.DX, o.DY
		for j := 0; j < q; j++ {
			x, y = -y, x
		}
		out.Pattern[i] = Offset{DY: y, DX: x}
	}
	if spec, ok := b.Guidance.Get(); ok {
		out.Guidance = core.Some(spec.Rotate(q))
	}
	return out
}

// Pixels stamps the pattern at (x, y) in grid coordinates.
func (b Brush) Pixels(x, y int) []core.Point {
	out := make([]core.Point, len(b.Pattern))
	for i, o := range b.Pattern {
		out[i] = core.Point{X: x + o.DX, Y: y + o.DY}
	}
	return out
}

// Library indexes brushes by name.
type Library map[string]Brush

// NewLibrary builds a library from brushes. Later duplicates win.
func NewLibrary(brushes ...Brush) Library {
	lib := make(Library, len(brushes))
	for _, b := range brushes {
		lib[b.Name] = b
	}
	return lib
}

// Lookup resolves a brush by name.
func (l Library) Lookup(name string) (Brush, error) {
	b, ok := l[name]
	if !ok {
		return Brush{}, fmt.Errorf("%w %q", ErrUnknownBrush, name)
	}
	return b, nil
}

// Names lists the library's brushes in sorted order.
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
