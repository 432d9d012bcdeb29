package board

import (
	"lifegate/pkg/core"
	"lifegate/pkg/sims/life"
)

// Phase describes where a board is in its lifecycle.
type Phase uint8

const (
	// PhaseSetup means generation 0 with no user edits on top of the setup.
	PhaseSetup Phase = iota
	// PhasePrePlay means generation 0 with user edits.
	PhasePrePlay
	// PhaseRunning means at least one generation has been simulated.
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePrePlay:
		return "pre-play"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Store owns the setup, pre-play and current board states of a session plus
// its generation counter. Only current changes while simulating.
type Store struct {
	setup      *core.Grid
	prePlay    *core.Grid
	current    *core.Grid
	generation int
}

// NewStore returns a store loaded with setup.
func NewStore(setup *core.Grid) *Store {
	s := &Store{}
	s.Load(setup)
	return s
}

// Load installs setup as the baked-in configuration and rewinds to
// generation 0. The store keeps its own copies.
func (s *Store) Load(setup *core.Grid) {
	s.setup = setup.Clone()
	s.prePlay = setup.Clone()
	s.current = setup.Clone()
	s.generation = 0
}

// ApplyUserObjects rebuilds the current board from the setup plus objects.
// At generation 0 the result also becomes the new pre-play snapshot.
func (s *Store) ApplyUserObjects(objects []PlacedObject) {
	s.current = ApplyPlacedObjects(s.setup, objects)
	if s.generation == 0 {
		s.prePlay = s.current.Clone()
	}
}

// Stamp overlays objects onto the live board without touching the setup or
// pre-play snapshots.
func (s *Store) Stamp(objects []PlacedObject) {
	s.current = ApplyPlacedObjects(s.current, objects)
}

// Clear discards all user edits and progress.
func (s *Store) Clear() {
	s.current = s.setup.Clone()
	s.prePlay = s.setup.Clone()
	s.generation = 0
}

// Reset discards simulation progress, keeping the last generation-0 edits.
func (s *Store) Reset() {
	s.current = s.prePlay.Clone()
	s.generation = 0
}

// Advance steps the current board by one generation.
func (s *Store) Advance() {
	s.current = life.NextGeneration(s.current)
	s.generation++
}

// Generation reports the number of generations since the last clear/reset.
func (s *Store) Generation() int { return s.generation }

// Size reports the board dimensions.
func (s *Store) Size() core.Size { return s.setup.Size() }

// Setup returns a copy of the baked-in board.
func (s *Store) Setup() *core.Grid { return s.setup.Clone() }

// PrePlay returns a copy of the last generation-0 board.
func (s *Store) PrePlay() *core.Grid { return s.prePlay.Clone() }

// Current returns a copy of the live board.
func (s *Store) Current() *core.Grid { return s.current.Clone() }

// CurrentView exposes the live board without copying. Callers must not
// modify it.
func (s *Store) CurrentView() *core.Grid { return s.current }

// Phase reports the lifecycle phase of the board.
func (s *Store) Phase() Phase {
	if s.generation > 0 {
		return PhaseRunning
	}
	if s.current.Equal(s.setup) {
		return PhaseSetup
	}
	return PhasePrePlay
}
