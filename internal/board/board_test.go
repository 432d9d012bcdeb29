package board

import (
	"testing"

	"lifegate/pkg/core"
)

func obj(id int, pts ...core.Point) PlacedObject {
	return PlacedObject{ID: id, Pixels: pts}
}

func TestApplyPlacedObjectsEmptyIsIdentity(t *testing.T) {
	base := core.NewGrid(4, 4)
	base.Set(1, 2, 1)
	out := ApplyPlacedObjects(base, nil)
	if !out.Equal(base) {
		t.Fatal("overlaying no objects must equal the base")
	}
	if out == base {
		t.Fatal("overlay must return a fresh grid")
	}
}

func TestApplyPlacedObjectsIdempotentAndOrderFree(t *testing.T) {
	base := core.NewGrid(5, 5)
	a := obj(1, core.Point{X: 0, Y: 0}, core.Point{X: 1, Y: 1})
	b := obj(2, core.Point{X: 1, Y: 1}, core.Point{X: 4, Y: 4}, core.Point{X: 9, Y: 9}, core.Point{X: -1, Y: 2})

	once := ApplyPlacedObjects(base, []PlacedObject{a, b})
	twice := ApplyPlacedObjects(once, []PlacedObject{a, b})
	reversed := ApplyPlacedObjects(base, []PlacedObject{b, a})

	if !once.Equal(twice) {
		t.Fatal("reapplying the same objects must not change cells")
	}
	if !once.Equal(reversed) {
		t.Fatal("object order must not affect the result")
	}
	if once.Population() != 3 {
		t.Fatalf("expected 3 live cells after clipping, got %d", once.Population())
	}
	if base.Population() != 0 {
		t.Fatal("base grid must not be mutated")
	}
}

func setupGrid() *core.Grid {
	g := core.NewGrid(8, 8)
	// block
	g.Set(1, 1, 1)
	g.Set(2, 1, 1)
	g.Set(1, 2, 1)
	g.Set(2, 2, 1)
	return g
}

func blinker() PlacedObject {
	return obj(1, core.Point{X: 5, Y: 4}, core.Point{X: 5, Y: 5}, core.Point{X: 5, Y: 6})
}

func TestStoreLoadAndPhases(t *testing.T) {
	setup := setupGrid()
	s := NewStore(setup)

	setup.Set(7, 7, 1)
	if s.Setup().Alive(7, 7) {
		t.Fatal("store must keep its own copy of the setup")
	}
	if s.Phase() != PhaseSetup {
		t.Fatalf("expected setup phase, got %s", s.Phase())
	}

	s.ApplyUserObjects([]PlacedObject{blinker()})
	if s.Phase() != PhasePrePlay {
		t.Fatalf("expected pre-play phase, got %s", s.Phase())
	}
	if !s.PrePlay().Equal(s.Current()) {
		t.Fatal("edits at generation 0 must snapshot the pre-play state")
	}

	s.Advance()
	if s.Phase() != PhaseRunning || s.Generation() != 1 {
		t.Fatalf("expected running at generation 1, got %s/%d", s.Phase(), s.Generation())
	}
}

func TestStoreClearRestoresSetup(t *testing.T) {
	s := NewStore(setupGrid())
	s.ApplyUserObjects([]PlacedObject{blinker()})
	for i := 0; i < 5; i++ {
		s.Advance()
	}
	s.ApplyUserObjects([]PlacedObject{blinker(), obj(2, core.Point{X: 0, Y: 7})})
	s.Advance()

	s.Clear()
	if !s.Current().Equal(setupGrid()) || !s.PrePlay().Equal(setupGrid()) {
		t.Fatal("clear must restore exactly the setup state")
	}
	if s.Generation() != 0 {
		t.Fatal("clear must rewind to generation 0")
	}
	s.Clear()
	if !s.Current().Equal(setupGrid()) {
		t.Fatal("clear must be idempotent")
	}
}

func TestStoreResetRestoresLatestPrePlay(t *testing.T) {
	s := NewStore(setupGrid())
	s.ApplyUserObjects([]PlacedObject{blinker()})
	older := s.PrePlay()

	second := obj(2, core.Point{X: 6, Y: 0}, core.Point{X: 7, Y: 0}, core.Point{X: 6, Y: 1}, core.Point{X: 7, Y: 1})
	s.ApplyUserObjects([]PlacedObject{blinker(), second})
	latest := s.PrePlay()
	if latest.Equal(older) {
		t.Fatal("test setup must produce distinct pre-play states")
	}

	s.Advance()
	s.Advance()
	s.Advance()
	// Edits while running change the board but not the pre-play snapshot.
	s.ApplyUserObjects([]PlacedObject{obj(3, core.Point{X: 0, Y: 7})})
	if !s.PrePlay().Equal(latest) {
		t.Fatal("edits after generation 0 must not touch the pre-play snapshot")
	}

	s.Reset()
	if !s.Current().Equal(latest) {
		t.Fatal("reset must restore the most recent generation-0 state")
	}
	if s.Generation() != 0 {
		t.Fatal("reset must rewind to generation 0")
	}
	s.Reset()
	if !s.Current().Equal(latest) {
		t.Fatal("reset must be idempotent")
	}
}

func TestStoreAdvanceLeavesSnapshotsAlone(t *testing.T) {
	s := NewStore(setupGrid())
	s.ApplyUserObjects([]PlacedObject{blinker()})
	setup, pre := s.Setup(), s.PrePlay()
	for i := 0; i < 3; i++ {
		s.Advance()
	}
	if !s.Setup().Equal(setup) || !s.PrePlay().Equal(pre) {
		t.Fatal("advance must only change the current board")
	}
	if s.Current().Equal(pre) {
		t.Fatal("an odd number of blinker generations must differ from pre-play")
	}
}
