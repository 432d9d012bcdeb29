// Package scenario builds isolated test boards from challenge scenarios and
// evaluates their detectors.
package scenario

import (
	"fmt"

	"lifegate/internal/board"
	"lifegate/internal/brush"
	"lifegate/internal/challenge"
	"lifegate/internal/detect"
	"lifegate/internal/guidance"
	"lifegate/pkg/core"
)

// State is the board-facing state a scenario produces.
type State struct {
	Grid          *core.Grid
	Generation    int
	Detectors     []detect.Detector
	PlacedObjects []board.PlacedObject
	Guidance      []guidance.Line
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Grid:       s.Grid.Clone(),
		Generation: s.Generation,
		Detectors:  detect.Clone(s.Detectors),
	}
	if s.PlacedObjects != nil {
		out.PlacedObjects = make([]board.PlacedObject, len(s.PlacedObjects))
		for i, obj := range s.PlacedObjects {
			obj.Pixels = append([]core.Point(nil), obj.Pixels...)
			out.PlacedObjects[i] = obj
		}
	}
	if s.Guidance != nil {
		out.Guidance = append([]guidance.Line(nil), s.Guidance...)
	}
	return out
}

// HasTestScenarios reports whether ch carries at least one scenario.
func HasTestScenarios(ch *challenge.Challenge) bool {
	return ch != nil && len(ch.TestScenarios) > 0
}

// GetTestScenarios returns ch's scenarios, or an empty list when there are
// none.
func GetTestScenarios(ch *challenge.Challenge) []challenge.TestScenario {
	if ch == nil || ch.TestScenarios == nil {
		return []challenge.TestScenario{}
	}
	return ch.TestScenarios
}

// Resolve stamps placements onto the centered frame of size. Each placement
// becomes one object; brushes with guidance also yield a line stamped with
// generation.
func Resolve(placements []challenge.Placement, lib brush.Library, size core.Size, generation int) ([]board.PlacedObject, []guidance.Line, error) {
	mid := size.Mid()
	objects := make([]board.PlacedObject, 0, len(placements))
	var lines []guidance.Line
	for i, p := range placements {
		b, err := lib.Lookup(p.Brush)
		if err != nil {
			return nil, nil, fmt.Errorf("placement %d: %w", i, err)
		}
		q, err := brush.QuarterTurns(p.Rotate)
		if err != nil {
			return nil, nil, fmt.Errorf("placement %d: %w", i, err)
		}
		b = b.Rotate(q)
		x, y := mid.X+p.X, mid.Y+p.Y
		objects = append(objects, board.PlacedObject{
			ID:         i + 1,
			Brush:      b.Name,
			Pixels:     b.Pixels(x, y),
			Generation: generation,
		})
		if line, ok := guidance.FromBrush(b.Guidance, generation, x, y); ok {
			line.ID = len(lines) + 1
			lines = append(lines, line)
		}
	}
	return objects, lines, nil
}

// Detectors builds one detector per spec in the centered frame of size,
// keeping each spec's index.
func Detectors(specs []challenge.DetectorSpec, size core.Size) ([]detect.Detector, error) {
	mid := size.Mid()
	out := make([]detect.Detector, 0, len(specs))
	for i, spec := range specs {
		initial, err := detect.ParseState(spec.State)
		if err != nil {
			return nil, fmt.Errorf("detector %d: %w", i, err)
		}
		target, err := spec.Target()
		if err != nil {
			return nil, fmt.Errorf("detector %d: %w", i, err)
		}
		d := detect.New(mid.X+spec.X, mid.Y+spec.Y, spec.Index, initial, target)
		d.Description = spec.Description
		out = append(out, d)
	}
	return out, nil
}

// Apply builds a fresh board for sc. The input state is never modified; the
// returned state starts at generation 0 with the scenario's own grid,
// detectors, placed objects and guidance lines.
func Apply(sc challenge.TestScenario, state State, lib brush.Library, size core.Size) (State, error) {
	if size.W <= 0 || size.H <= 0 {
		return State{}, fmt.Errorf("%w: size %dx%d must be positive", challenge.ErrInvalid, size.W, size.H)
	}
	objects, lines, err := Resolve(sc.Setup, lib, size, 0)
	if err != nil {
		return State{}, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	detectors, err := Detectors(sc.Detectors, size)
	if err != nil {
		return State{}, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	next := state.Clone()
	next.Grid = board.ApplyPlacedObjects(core.NewGrid(size.W, size.H), objects)
	next.Generation = 0
	next.Detectors = detectors
	next.PlacedObjects = objects
	next.Guidance = lines
	return next, nil
}
