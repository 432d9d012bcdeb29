package core

import "testing"

func TestGridBoundsAndClone(t *testing.T) {
	g := NewGrid(4, 3)
	if !g.Set(3, 2, 1) {
		t.Fatal("expected in-bounds write to land")
	}
	if g.Set(4, 0, 1) || g.Set(-1, 0, 1) || g.Set(0, 3, 1) {
		t.Fatal("out-of-bounds writes must be rejected")
	}
	if g.At(-1, -1) != 0 {
		t.Fatal("out-of-bounds reads must be dead")
	}

	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone must equal source")
	}
	c.Set(0, 0, 1)
	if g.Alive(0, 0) {
		t.Fatal("mutating a clone must not touch the source")
	}
	if c.Equal(g) {
		t.Fatal("grids with different cells must not be equal")
	}
	if g.Population() != 1 || c.Population() != 2 {
		t.Fatalf("unexpected populations %d/%d", g.Population(), c.Population())
	}
}

func TestGridSetNormalizesValues(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(1, 1, 7)
	if got := g.At(1, 1); got != 1 {
		t.Fatalf("expected normalized cell value 1, got %d", got)
	}
}

func TestOption(t *testing.T) {
	none := None[int]()
	if none.Present() {
		t.Fatal("None must be absent")
	}
	if got := none.Or(5); got != 5 {
		t.Fatalf("expected fallback 5, got %d", got)
	}
	some := Some(3)
	if v, ok := some.Get(); !ok || v != 3 {
		t.Fatalf("expected Some(3), got %d/%v", v, ok)
	}
	var zero Option[string]
	if zero.Present() {
		t.Fatal("zero Option must be absent")
	}
}

func TestSizeMid(t *testing.T) {
	if got := (Size{W: 101, H: 101}).Mid(); got != (Point{X: 50, Y: 50}) {
		t.Fatalf("unexpected midpoint %+v", got)
	}
}
