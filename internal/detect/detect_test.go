package detect

import (
	"testing"

	"lifegate/pkg/core"
)

func TestNewPrimesValueFromInitialState(t *testing.T) {
	if d := New(0, 0, 3, Active, core.None[State]()); d.Value != 1 || d.Index != 3 {
		t.Fatalf("unexpected active detector %+v", d)
	}
	if d := New(0, 0, 4, Inactive, core.None[State]()); d.Value != 0 {
		t.Fatalf("unexpected inactive detector %+v", d)
	}
}

func TestExpectedPrefersTarget(t *testing.T) {
	d := New(0, 0, 0, Inactive, core.Some(Active))
	if d.Expected() != Active {
		t.Fatal("expected target state to win")
	}
	if d.Passing() {
		t.Fatal("an inactive value must not pass an active target")
	}
	if !New(0, 0, 0, Inactive, core.None[State]()).Passing() {
		t.Fatal("without a target the initial state is expected")
	}
}

func TestSampleHoldsThroughFalloff(t *testing.T) {
	on := core.NewGrid(1, 1)
	on.Set(0, 0, 1)
	off := core.NewGrid(1, 1)

	d := New(0, 0, 0, Inactive, core.None[State]())
	d.Sample(on, 2)
	if d.Value != 1 || d.Falloff != 2 {
		t.Fatalf("a live sample must latch high, got %+v", d)
	}
	d.Sample(off, 2)
	d.Sample(off, 2)
	if d.Value != 1 {
		t.Fatalf("value must hold for the falloff period, got %+v", d)
	}
	d.Sample(off, 2)
	if d.Value != 0 {
		t.Fatalf("value must drop once the period is exhausted, got %+v", d)
	}

	// A blinking source refreshes the hold and reads as a sustained high.
	for i := 0; i < 10; i++ {
		g := off
		if i%2 == 0 {
			g = on
		}
		d.Sample(g, 2)
		if i > 0 && d.Value != 1 {
			t.Fatalf("step %d: oscillating source must read high", i)
		}
	}
}

func TestSampleZeroPeriodIsRaw(t *testing.T) {
	on := core.NewGrid(2, 1)
	on.Set(1, 0, 1)
	d := New(1, 0, 0, Inactive, core.None[State]())
	d.Sample(on, 0)
	if d.Value != 1 {
		t.Fatal("expected raw high sample")
	}
	d.Sample(core.NewGrid(2, 1), 0)
	if d.Value != 0 {
		t.Fatal("expected raw low sample with no falloff")
	}
}

func TestActiveInitialDecaysWithoutSignal(t *testing.T) {
	d := New(5, 5, 0, Active, core.None[State]())
	d.Sample(core.NewGrid(2, 2), 4)
	if d.Value != 0 {
		t.Fatal("an initial high without a fresh sample has no hold to fall back on")
	}
	d.Restore()
	if d.Value != 1 || d.Falloff != 0 {
		t.Fatalf("Restore must return to the initial value, got %+v", d)
	}
}

func TestParseState(t *testing.T) {
	if s, err := ParseState("active"); err != nil || s != Active {
		t.Fatalf("unexpected %v/%v", s, err)
	}
	if _, err := ParseState("on"); err == nil {
		t.Fatal("expected an error for unknown states")
	}
}
