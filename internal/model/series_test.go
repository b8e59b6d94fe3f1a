package model

import (
	"math"
	"testing"
)

func TestActiveStock_SlidingWindow(t *testing.T) {
	ix := MonthIndex{StartYear: 2026, Months: 12}
	starts := ix.NewSeries()
	starts[2] = 3 // March cohort of 3

	active := ActiveStock(starts, 4, ix, 0)

	for m := 0; m < 12; m++ {
		want := 0.0
		if m >= 2 && m < 6 {
			want = 3
		}
		if active[m] != want {
			t.Errorf("Month %d: expected active %f, got %f", m, want, active[m])
		}
	}
}

func TestActiveStock_RampMonotonic(t *testing.T) {
	ix := MonthIndex{StartYear: 2026, Months: 24}
	starts := ix.NewSeries()
	starts[0] = 6
	ramp := 4
	duration := 10

	active := ActiveStock(starts, duration, ix, ramp)

	// Strictly increasing through the ramp, then flat at full strength.
	for k := 1; k < ramp; k++ {
		if active[k] <= active[k-1] {
			t.Errorf("Offset %d: ramp not strictly increasing (%f <= %f)", k, active[k], active[k-1])
		}
	}
	for k := ramp - 1; k < duration; k++ {
		if math.Abs(active[k]-6) > 1e-9 {
			t.Errorf("Offset %d: expected full strength 6, got %f", k, active[k])
		}
	}
	if active[duration] != 0 {
		t.Errorf("Expected 0 after the cohort ends, got %f", active[duration])
	}

	// First ramp month is 1/ramp of full strength.
	if math.Abs(active[0]-6.0/float64(ramp)) > 1e-9 {
		t.Errorf("Expected first month %f, got %f", 6.0/float64(ramp), active[0])
	}
}

func TestActiveStock_ZeroDuration(t *testing.T) {
	ix := MonthIndex{StartYear: 2026, Months: 6}
	starts := ix.NewSeries()
	starts[0] = 5

	active := ActiveStock(starts, 0, ix, 0)
	for m, v := range active {
		if v != 0 {
			t.Errorf("Month %d: zero-duration stage must contribute nothing, got %f", m, v)
		}
	}
}

func TestActiveStock_DropsBeyondGrid(t *testing.T) {
	ix := MonthIndex{StartYear: 2026, Months: 4}
	starts := ix.NewSeries()
	starts[3] = 2 // only one in-grid month of a 6-month cohort

	active := ActiveStock(starts, 6, ix, 0)
	if active[3] != 2 {
		t.Errorf("Expected 2 in the last grid month, got %f", active[3])
	}
}

func TestActiveStock_SkipsNegligibleStarts(t *testing.T) {
	ix := MonthIndex{StartYear: 2026, Months: 6}
	starts := ix.NewSeries()
	starts[0] = 1e-12

	active := ActiveStock(starts, 3, ix, 0)
	for m, v := range active {
		if v != 0 {
			t.Errorf("Month %d: negligible start must be skipped, got %g", m, v)
		}
	}
}

func TestCompletions_Placement(t *testing.T) {
	ix := MonthIndex{StartYear: 2026, Months: 12}
	starts := ix.NewSeries()
	starts[1] = 4
	starts[9] = 2 // completes at offset 15, outside the grid

	done := Completions(starts, 6, ix)
	for m, v := range done {
		want := 0.0
		if m == 7 {
			want = 4
		}
		if v != want {
			t.Errorf("Month %d: expected completions %f, got %f", m, want, v)
		}
	}
}

func TestMonthIndex_OffsetRoundTrip(t *testing.T) {
	ix := NewMonthIndex(2026, 2027, 5)
	if ix.Months != 29 {
		t.Fatalf("Expected 29 months, got %d", ix.Months)
	}

	off, in := ix.Offset(2027, 3)
	if !in || off != 14 {
		t.Fatalf("Expected offset 14 for 2027-03, got %d (in=%v)", off, in)
	}
	if ix.YearOf(off) != 2027 || ix.MonthOf(off) != 3 {
		t.Errorf("Round trip failed: got %d-%d", ix.YearOf(off), ix.MonthOf(off))
	}

	if _, in := ix.Offset(2025, 12); in {
		t.Errorf("Expected months before the epoch to be out of the grid")
	}
	if _, in := ix.Offset(2028, 6); in {
		t.Errorf("Expected months past the tail to be out of the grid")
	}
}
