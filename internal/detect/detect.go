// Package detect samples grid cells and compares them to expected states.
package detect

import (
	"fmt"

	"lifegate/pkg/core"
)

// State is a detector's logical level.
type State uint8

const (
	Inactive State = 0
	Active   State = 1
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// ParseState accepts "active" and "inactive".
func ParseState(s string) (State, error) {
	switch s {
	case "active":
		return Active, nil
	case "inactive":
		return Inactive, nil
	}
	return Inactive, fmt.Errorf("detect: unknown state %q", s)
}

// Detector samples one cell. Value starts at the initial state and then
// follows samples, holding a high level for up to the falloff period after
// the last live sample.
type Detector struct {
	X, Y        int
	Index       int
	Initial     State
	Target      core.Option[State]
	Value       uint8
	Falloff     int
	Description string
}

// New returns a detector whose value is primed from initial.
func New(x, y, index int, initial State, target core.Option[State]) Detector {
	return Detector{X: x, Y: y, Index: index, Initial: initial, Target: target, Value: uint8(initial)}
}

// Expected is the state the detector must report for a pass: the target when
// given, otherwise the initial state.
func (d Detector) Expected() State {
	return d.Target.Or(d.Initial)
}

// Passing reports whether the current value matches the expected state.
func (d Detector) Passing() bool {
	return d.Value == uint8(d.Expected())
}

// Sample reads the detector's cell from g. A live cell reports 1 and reloads
// the falloff counter with period. A dead cell reports 1 while the counter
// is still running and 0 once it is exhausted.
func (d *Detector) Sample(g *core.Grid, period int) {
	if g.Alive(d.X, d.Y) {
		d.Value = 1
		d.Falloff = max(period, 0)
		return
	}
	if d.Value == 1 && d.Falloff > 0 {
		d.Falloff--
		return
	}
	d.Value = 0
	d.Falloff = 0
}

// Restore rewinds the detector to its initial value.
func (d *Detector) Restore() {
	d.Value = uint8(d.Initial)
	d.Falloff = 0
}

// SampleAll samples every detector in place.
func SampleAll(ds []Detector, g *core.Grid, period int) {
	for i := range ds {
		ds[i].Sample(g, period)
	}
}

// RestoreAll rewinds every detector in place.
func RestoreAll(ds []Detector) {
	for i := range ds {
		ds[i].Restore()
	}
}

// Clone copies a detector slice.
func Clone(ds []Detector) []Detector {
	if ds == nil {
		return nil
	}
	out := make([]Detector, len(ds))
	copy(out, ds)
	return out
}
