// Package challenge defines the declarative challenge descriptor.
package challenge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"lifegate/internal/brush"
	"lifegate/internal/detect"
	"lifegate/pkg/core"
)

// ErrInvalid marks a descriptor that violates the documented schema.
var ErrInvalid = errors.New("challenge: invalid descriptor")

// Placement stamps a brush at an offset from the grid midpoint.
type Placement struct {
	X      int    `json:"x" jsonschema:"required"`
	Y      int    `json:"y" jsonschema:"required"`
	Brush  string `json:"brush" jsonschema:"required"`
	Rotate int    `json:"rotate,omitempty" jsonschema:"description=Clockwise rotation in degrees; multiple of 90"`
}

// DetectorSpec is a detector as authored in a scenario.
type DetectorSpec struct {
	X           int    `json:"x" jsonschema:"required"`
	Y           int    `json:"y" jsonschema:"required"`
	State       string `json:"state" jsonschema:"required,enum=active,enum=inactive"`
	Index       int    `json:"index" jsonschema:"required"`
	Description string `json:"description,omitempty"`
	TargetState string `json:"targetState,omitempty" jsonschema:"enum=active,enum=inactive"`
}

// Target returns the optional target state.
func (d DetectorSpec) Target() (core.Option[detect.State], error) {
	if d.TargetState == "" {
		return core.None[detect.State](), nil
	}
	s, err := detect.ParseState(d.TargetState)
	if err != nil {
		return core.None[detect.State](), err
	}
	return core.Some(s), nil
}

// TestScenario is an alternate setup plus the detectors that verify it.
type TestScenario struct {
	Name        string         `json:"name" jsonschema:"required"`
	Description string         `json:"description,omitempty"`
	Setup       []Placement    `json:"setup"`
	Detectors   []DetectorSpec `json:"detectors"`
}

// Challenge is a puzzle level.
type Challenge struct {
	Name                  string         `json:"name" jsonschema:"required"`
	Description           string         `json:"description,omitempty"`
	Setup                 []Placement    `json:"setup"`
	TestScenarios         []TestScenario `json:"testScenarios,omitempty"`
	Width                 int            `json:"width" jsonschema:"required,minimum=1"`
	Height                int            `json:"height" jsonschema:"required,minimum=1"`
	TargetTurn            int            `json:"targetTurn" jsonschema:"minimum=0"`
	DetectorFalloffPeriod int            `json:"detectorFalloffPeriod" jsonschema:"minimum=0"`
}

// Size returns the challenge grid dimensions.
func (c *Challenge) Size() core.Size { return core.Size{W: c.Width, H: c.Height} }

// Decode reads a JSON descriptor and validates it.
func Decode(r io.Reader) (*Challenge, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var c Challenge
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("challenge: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the descriptor against the documented ranges.
func (c *Challenge) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil challenge", ErrInvalid)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	}
	if c.TargetTurn < 0 {
		return fmt.Errorf("%w: targetTurn %d is negative", ErrInvalid, c.TargetTurn)
	}
	if c.DetectorFalloffPeriod < 0 {
		return fmt.Errorf("%w: detectorFalloffPeriod %d is negative", ErrInvalid, c.DetectorFalloffPeriod)
	}
	if err := validatePlacements("setup", c.Setup); err != nil {
		return err
	}
	for i, sc := range c.TestScenarios {
		where := fmt.Sprintf("testScenarios[%d]", i)
		if err := validatePlacements(where+".setup", sc.Setup); err != nil {
			return err
		}
		seen := make(map[int]bool, len(sc.Detectors))
		for j, d := range sc.Detectors {
			if _, err := detect.ParseState(d.State); err != nil {
				return fmt.Errorf("%w: %s.detectors[%d]: %v", ErrInvalid, where, j, err)
			}
			if _, err := d.Target(); err != nil {
				return fmt.Errorf("%w: %s.detectors[%d]: %v", ErrInvalid, where, j, err)
			}
			if seen[d.Index] {
				return fmt.Errorf("%w: %s.detectors[%d]: duplicate index %d", ErrInvalid, where, j, d.Index)
			}
			seen[d.Index] = true
		}
	}
	return nil
}

func validatePlacements(where string, ps []Placement) error {
	for i, p := range ps {
		if p.Brush == "" {
			return fmt.Errorf("%w: %s[%d]: missing brush", ErrInvalid, where, i)
		}
		if _, err := brush.QuarterTurns(p.Rotate); err != nil {
			return fmt.Errorf("%w: %s[%d]: %v", ErrInvalid, where, i, err)
		}
	}
	return nil
}
