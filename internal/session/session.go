// Package session owns one puzzle's board store together with the objects,
// guidance lines and detectors layered on it.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"lifegate/internal/board"
	"lifegate/internal/brush"
	"lifegate/internal/challenge"
	"lifegate/internal/core"
	"lifegate/internal/detect"
	"lifegate/internal/guidance"
	"lifegate/internal/render"
	"lifegate/internal/scenario"
	pcore "lifegate/pkg/core"
)

// NoScenario selects the challenge's own setup.
const NoScenario = -1

// Session is the single owner of a challenge's mutable state.
type Session struct {
	ch     *challenge.Challenge
	lib    brush.Library
	logger *log.Logger

	store *board.Store

	// setupLines are the guidance lines derived from the active setup;
	// Clear restores fresh copies of them.
	setupLines []guidance.Line
	lines      []guidance.Line

	// baseDetectors are the active scenario's detectors as applied.
	baseDetectors []detect.Detector
	detectors     []detect.Detector

	objects  []board.PlacedObject
	nextID   int
	lineID   int
	scenario int
}

// New loads ch into a fresh session. A nil logger discards output.
func New(ch *challenge.Challenge, lib brush.Library, logger *log.Logger) (*Session, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{ch: ch, lib: lib, logger: logger, scenario: NoScenario}
	if err := s.loadSetup(); err != nil {
		return nil, err
	}
	s.logger.Printf("loaded challenge %q (%dx%d, %d scenarios)", ch.Name, ch.Width, ch.Height, len(ch.TestScenarios))
	return s, nil
}

func (s *Session) loadSetup() error {
	size := s.ch.Size()
	objects, lines, err := scenario.Resolve(s.ch.Setup, s.lib, size, 0)
	if err != nil {
		return fmt.Errorf("challenge %q setup: %w", s.ch.Name, err)
	}
	grid := board.ApplyPlacedObjects(pcore.NewGrid(size.W, size.H), objects)
	s.install(grid, lines, nil)
	return nil
}

func (s *Session) install(grid *pcore.Grid, lines []guidance.Line, detectors []detect.Detector) {
	if s.store == nil {
		s.store = board.NewStore(grid)
	} else {
		s.store.Load(grid)
	}
	s.setupLines = lines
	s.lines = cloneLines(lines)
	s.lineID = len(lines)
	s.baseDetectors = detectors
	s.detectors = detect.Clone(detectors)
	s.store.ApplyUserObjects(s.objects)
}

// Challenge returns the loaded challenge.
func (s *Session) Challenge() *challenge.Challenge { return s.ch }

// Store exposes the board store.
func (s *Session) Store() *board.Store { return s.store }

// Generation reports the current generation.
func (s *Session) Generation() int { return s.store.Generation() }

// Grid returns a copy of the live board.
func (s *Session) Grid() *pcore.Grid { return s.store.Current() }

// Lines returns the active guidance lines.
func (s *Session) Lines() []guidance.Line { return cloneLines(s.lines) }

// Detectors returns the active detectors.
func (s *Session) Detectors() []detect.Detector { return detect.Clone(s.detectors) }

// Objects returns the user's placed objects.
func (s *Session) Objects() []board.PlacedObject {
	return append([]board.PlacedObject(nil), s.objects...)
}

// Scenario reports the selected scenario index, or NoScenario.
func (s *Session) Scenario() int { return s.scenario }

// Place stamps the named brush at grid position (x, y), rotated clockwise by
// quarter turns. At generation 0 the board is rebuilt from the setup plus
// every object; while running the object is stamped onto the live board.
// Brushes with a guidance spec also start a guidance line timed from the
// current generation.
func (s *Session) Place(name string, x, y, quarterTurns int) (board.PlacedObject, error) {
	b, err := s.lib.Lookup(name)
	if err != nil {
		return board.PlacedObject{}, err
	}
	b = b.Rotate(quarterTurns)
	s.nextID++
	obj := board.PlacedObject{
		ID:         s.nextID,
		Brush:      b.Name,
		Pixels:     b.Pixels(x, y),
		Generation: s.store.Generation(),
	}
	s.objects = append(s.objects, obj)
	if obj.Generation == 0 {
		s.store.ApplyUserObjects(s.objects)
	} else {
		s.store.Stamp([]board.PlacedObject{obj})
	}
	if line, ok := guidance.FromBrush(b.Guidance, obj.Generation, x, y); ok {
		s.lineID++
		line.ID = s.lineID
		s.lines = append(s.lines, line)
	}
	return obj, nil
}

// Clear drops every user edit and all progress, and restores the setup's
// guidance lines and the scenario's detectors.
func (s *Session) Clear() {
	s.store.Clear()
	s.objects = nil
	s.lines = cloneLines(s.setupLines)
	s.detectors = detect.Clone(s.baseDetectors)
	s.logger.Printf("cleared %q", s.ch.Name)
}

// Reset rewinds to generation 0, keeping the edits made there. Objects and
// guidance lines created while running are dropped.
func (s *Session) Reset() {
	s.store.Reset()
	kept := s.objects[:0]
	for _, obj := range s.objects {
		if obj.Generation == 0 {
			kept = append(kept, obj)
		}
	}
	s.objects = kept
	lines := s.lines[:0]
	for _, l := range s.lines {
		if l.Generation == 0 {
			lines = append(lines, l)
		}
	}
	s.lines = lines
	s.detectors = detect.Clone(s.baseDetectors)
	s.logger.Printf("reset %q", s.ch.Name)
}

// Advance steps the board one generation and samples every detector.
func (s *Session) Advance() {
	s.store.Advance()
	detect.SampleAll(s.detectors, s.store.CurrentView(), s.ch.DetectorFalloffPeriod)
}

// SelectScenario swaps the board for scenario i's setup and detectors,
// keeping the user's construction on top. NoScenario returns to the
// challenge setup.
func (s *Session) SelectScenario(i int) error {
	if i == NoScenario {
		s.objects = s.generationZeroObjects()
		if err := s.loadSetup(); err != nil {
			return err
		}
		s.scenario = NoScenario
		s.logger.Printf("selected challenge setup of %q", s.ch.Name)
		return nil
	}
	scenarios := scenario.GetTestScenarios(s.ch)
	if i < 0 || i >= len(scenarios) {
		return fmt.Errorf("session: scenario %d out of range [0,%d)", i, len(scenarios))
	}
	state, err := scenario.Apply(scenarios[i], scenario.State{}, s.lib, s.ch.Size())
	if err != nil {
		return err
	}
	s.objects = s.generationZeroObjects()
	s.install(state.Grid, state.Guidance, state.Detectors)
	s.scenario = i
	s.logger.Printf("selected scenario %q", scenarios[i].Name)
	return nil
}

func (s *Session) generationZeroObjects() []board.PlacedObject {
	var out []board.PlacedObject
	for _, obj := range s.objects {
		if obj.Generation == 0 {
			out = append(out, obj)
		}
	}
	return out
}

// Verify runs every scenario against the user's construction.
func (s *Session) Verify(ctx context.Context, opts scenario.Options) ([]scenario.Result, error) {
	opts.Extra = s.generationZeroObjects()
	return scenario.RunAll(ctx, s.ch, s.lib, opts)
}

// GuidancePixels projects the active guidance lines at the current
// generation.
func (s *Session) GuidancePixels() []guidance.Pixel {
	return guidance.GenerateAllPixels(s.lines, s.store.Generation(), s.ch.Width, s.ch.Height)
}

// Frame paints the current board through r. previous may be nil to force a
// full repaint.
func (s *Session) Frame(r *render.Renderer, p render.Painter, previous *pcore.Grid, editor pcore.Option[render.EditorOverlay]) {
	r.Render(p, s.store.CurrentView(), previous, render.Options{
		GuidancePixels: s.GuidancePixels(),
		Editor:         editor,
		Detectors:      s.detectors,
	})
}

// Parameters reports the session's values for status displays.
func (s *Session) Parameters() core.ParameterSnapshot {
	scenarioName := "setup"
	if s.scenario != NoScenario {
		scenarioName = s.ch.TestScenarios[s.scenario].Name
	}
	passing := 0
	for _, d := range s.detectors {
		if d.Passing() {
			passing++
		}
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Challenge",
			Params: []core.Parameter{
				stringParam("name", "Name", s.ch.Name),
				stringParam("scenario", "Scenario", scenarioName),
				intParam("target_turn", "Target turn", s.ch.TargetTurn),
				intParam("falloff", "Detector falloff", s.ch.DetectorFalloffPeriod),
			},
		},
		{
			Name: "Board",
			Params: []core.Parameter{
				stringParam("phase", "Phase", s.store.Phase().String()),
				intParam("generation", "Generation", s.store.Generation()),
				intParam("objects", "Objects", len(s.objects)),
				intParam("guidance", "Guidance lines", len(s.lines)),
				stringParam("detectors", "Detectors", fmt.Sprintf("%d/%d", passing, len(s.detectors))),
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}

func cloneLines(lines []guidance.Line) []guidance.Line {
	if lines == nil {
		return nil
	}
	return append([]guidance.Line(nil), lines...)
}
