// Package guidance projects where a moving pattern's signal front should be at
// a given generation.
package guidance

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"lifegate/pkg/core"
)

// Direction is one of the eight compass headings a line can travel along.
type Direction uint8

const (
	N Direction = iota
	NE
	E
	SE
	S
	SW
	W
	NW
)

var directionNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Vector returns the unit step for d in screen coordinates (y grows down).
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case N:
		return 0, -1
	case NE:
		return 1, -1
	case E:
		return 1, 0
	case SE:
		return 1, 1
	case S:
		return 0, 1
	case SW:
		return -1, 1
	case W:
		return -1, 0
	case NW:
		return -1, -1
	}
	return 0, 0
}

// Rotate turns d clockwise by the given number of quarter turns.
func (d Direction) Rotate(quarterTurns int) Direction {
	q := ((quarterTurns % 4) + 4) % 4
	return Direction((int(d) + 2*q) % 8)
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "?"
}

// ParseDirection accepts compass names in any case.
func ParseDirection(s string) (Direction, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == up {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("guidance: unknown direction %q", s)
}

// Infinite marks a line that trails back to the grid edge.
const Infinite = -1

// InfiniteMarker is the literal used for infinite lengths in pattern headers.
const InfiniteMarker = "infinite"

// ErrMalformed reports a guidance header that cannot be parsed.
var ErrMalformed = errors.New("guidance: malformed header")

// Spec is the guidance annotation carried by a brush.
type Spec struct {
	Direction Direction
	StartX    int
	StartY    int
	Length    int
	Speed     float64
}

// IsInfinite reports whether the spec trails to the grid edge.
func (s Spec) IsInfinite() bool { return s.Length == Infinite }

// Rotate turns the spec clockwise by quarter turns together with its brush.
func (s Spec) Rotate(quarterTurns int) Spec {
	q := ((quarterTurns % 4) + 4) % 4
	for i := 0; i < q; i++ {
		s.StartX, s.StartY = -s.StartY, s.StartX
	}
	s.Direction = s.Direction.Rotate(q)
	return s
}

// String renders the spec in header form.
func (s Spec) String() string {
	length := strconv.Itoa(s.Length)
	if s.IsInfinite() {
		length = InfiniteMarker
	}
	return fmt.Sprintf("%s/%d/%d/%s/%s", s.Direction, s.StartX, s.StartY, length,
		strconv.FormatFloat(s.Speed, 'f', -1, 64))
}

// ParseSpec parses a "direction/startX/startY/length/speed" header.
func ParseSpec(header string) (Spec, error) {
	parts := strings.Split(strings.TrimSpace(header), "/")
	if len(parts) != 5 {
		return Spec{}, fmt.Errorf("%w: want 5 fields, got %d", ErrMalformed, len(parts))
	}
	dir, err := ParseDirection(parts[0])
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	startX, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Spec{}, fmt.Errorf("%w: startX: %v", ErrMalformed, err)
	}
	startY, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Spec{}, fmt.Errorf("%w: startY: %v", ErrMalformed, err)
	}
	length := Infinite
	if raw := strings.TrimSpace(parts[3]); !strings.EqualFold(raw, InfiniteMarker) {
		length, err = strconv.Atoi(raw)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: length: %v", ErrMalformed, err)
		}
		if length <= 0 {
			return Spec{}, fmt.Errorf("%w: length must be positive, got %d", ErrMalformed, length)
		}
	}
	speed, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: speed: %v", ErrMalformed, err)
	}
	if speed < 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return Spec{}, fmt.Errorf("%w: speed must be a finite non-negative number", ErrMalformed)
	}
	return Spec{Direction: dir, StartX: startX, StartY: startY, Length: length, Speed: speed}, nil
}

// Line is a placed guidance line, timed from the generation it was created at.
type Line struct {
	ID         int
	Generation int
	X, Y       int
	Direction  Direction
	Length     int
	Speed      float64
	CreatedAt  time.Time
}

// CreateLine builds a line whose origin is the placement offset by the start.
func CreateLine(originX, originY, startX, startY int, dir Direction, length int, speed float64) Line {
	return Line{
		X:         originX + startX,
		Y:         originY + startY,
		Direction: dir,
		Length:    length,
		Speed:     speed,
		CreatedAt: time.Now(),
	}
}

// FromBrush derives a line from a brush's guidance spec placed at
// (placementX, placementY) during generation. It reports false when the
// brush carries no spec.
func FromBrush(spec core.Option[Spec], generation, placementX, placementY int) (Line, bool) {
	s, ok := spec.Get()
	if !ok {
		return Line{}, false
	}
	l := CreateLine(placementX, placementY, s.StartX, s.StartY, s.Direction, s.Length, s.Speed)
	l.Generation = generation
	return l, true
}

// Lead returns the leading-edge cell of l at generation. The second result is
// false while the line is not yet active.
func (l Line) Lead(generation int) (core.Point, bool) {
	elapsed := generation - l.Generation
	if elapsed < 0 {
		return core.Point{}, false
	}
	dx, dy := l.Direction.Vector()
	dist := int(math.Floor(l.Speed * float64(elapsed)))
	return core.Point{X: l.X + dx*dist, Y: l.Y + dy*dist}, true
}

// SameShape reports whether two lines describe the same trajectory,
// ignoring identity and creation time.
func (l Line) SameShape(o Line) bool {
	return l.Generation == o.Generation && l.X == o.X && l.Y == o.Y &&
		l.Direction == o.Direction && l.Length == o.Length && l.Speed == o.Speed
}
