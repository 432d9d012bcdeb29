package brush

import (
	"errors"
	"testing"

	"lifegate/internal/guidance"
	"lifegate/pkg/core"
)

func TestNewParsesGuidanceHeader(t *testing.T) {
	b := New("signal", cells(0, 0), "SE/21/7/infinite/3")
	spec, ok := b.Guidance.Get()
	if !ok {
		t.Fatal("expected a guidance spec")
	}
	if spec.Direction != guidance.SE || spec.StartX != 21 || spec.StartY != 7 || !spec.IsInfinite() || spec.Speed != 3 {
		t.Fatalf("unexpected spec %+v", spec)
	}

	if New("plain", cells(0, 0), "").Guidance.Present() {
		t.Fatal("an empty header must leave guidance absent")
	}
	if New("broken", cells(0, 0), "SE/oops").Guidance.Present() {
		t.Fatal("an unparseable header must leave guidance absent")
	}
}

func TestRotate(t *testing.T) {
	b := New("bar", cells(0, 0, 1, 0, 2, 0), "E/1/0/2/1")
	r := b.Rotate(1)
	want := []core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	got := r.Pixels(0, 0)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pixel %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	spec, _ := r.Guidance.Get()
	if spec.Direction != guidance.S || spec.StartX != 0 || spec.StartY != 1 {
		t.Fatalf("guidance must rotate with the brush, got %+v", spec)
	}
	if b.Pattern[1] != (Offset{DX: 1}) {
		t.Fatal("Rotate must not modify the source brush")
	}
}

func TestQuarterTurns(t *testing.T) {
	for deg, want := range map[int]int{0: 0, 90: 1, 180: 2, 270: 3, 360: 0, -90: 3} {
		got, err := QuarterTurns(deg)
		if err != nil || got != want {
			t.Fatalf("QuarterTurns(%d) = %d/%v, want %d", deg, got, err, want)
		}
	}
	if _, err := QuarterTurns(45); !errors.Is(err, ErrBadRotation) {
		t.Fatalf("expected ErrBadRotation, got %v", err)
	}
}

func TestLibraryLookup(t *testing.T) {
	lib := Builtin()
	if _, err := lib.Lookup("glider"); err != nil {
		t.Fatalf("Lookup(glider): %v", err)
	}
	if _, err := lib.Lookup("nope"); !errors.Is(err, ErrUnknownBrush) {
		t.Fatalf("expected ErrUnknownBrush, got %v", err)
	}
	names := lib.Names()
	if len(names) != 5 || names[0] != "blinker" {
		t.Fatalf("unexpected names %v", names)
	}
	g, _ := lib.Lookup("glider")
	if !g.Guidance.Present() {
		t.Fatal("the stock glider must carry a guidance spec")
	}
}
