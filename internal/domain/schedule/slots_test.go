package schedule

import (
	"testing"
	"time"
)

func TestFindSlots_SkipsBusyIntervals(t *testing.T) {
	start := at(t, 9, 0)
	busy := []Interval{
		{at(t, 9, 0), at(t, 9, 30)},
		{at(t, 10, 0), at(t, 10, 30)},
	}

	slots := FindSlots(busy, start, 30*time.Minute, 3, start.Add(8*time.Hour))

	want := []Interval{
		{at(t, 9, 30), at(t, 10, 0)},
		{at(t, 10, 30), at(t, 11, 0)},
		{at(t, 11, 0), at(t, 11, 30)},
	}

	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %+v", len(want), len(slots), slots)
	}
	for i := range want {
		if !slots[i].Start.Equal(want[i].Start) || !slots[i].End.Equal(want[i].End) {
			t.Fatalf("slot %d = %+v, want %+v", i, slots[i], want[i])
		}
	}

	for _, s := range slots {
		for _, b := range busy {
			if s.Overlaps(b) {
				t.Fatalf("slot %+v overlaps busy %+v", s, b)
			}
		}
	}
}

func TestFindSlots_UnsortedOverlappingBusyList(t *testing.T) {
	start := at(t, 9, 0)
	// Unsorted and internally overlapping; every candidate is still
	// checked against each entry independently.
	busy := []Interval{
		{at(t, 10, 0), at(t, 11, 0)},
		{at(t, 9, 0), at(t, 9, 45)},
		{at(t, 10, 30), at(t, 11, 15)},
	}

	slots := FindSlots(busy, start, 30*time.Minute, 2, start.Add(8*time.Hour))

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d: %+v", len(slots), slots)
	}
	for _, s := range slots {
		for _, b := range busy {
			if s.Overlaps(b) {
				t.Fatalf("slot %+v overlaps busy %+v", s, b)
			}
		}
	}
}

func TestFindSlots_HorizonLimitsResults(t *testing.T) {
	start := at(t, 9, 0)
	horizon := at(t, 10, 0)

	slots := FindSlots(nil, start, 30*time.Minute, 10, horizon)

	// Only two 30-minute cursor positions exist before the horizon.
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots within horizon, got %d", len(slots))
	}
}

func TestFindSlots_ZeroCount(t *testing.T) {
	if got := FindSlots(nil, at(t, 9, 0), 30*time.Minute, 0, at(t, 17, 0)); len(got) != 0 {
		t.Fatalf("expected no slots, got %+v", got)
	}
}

func TestFindSlots_Idempotent(t *testing.T) {
	start := at(t, 9, 0)
	busy := []Interval{{at(t, 9, 30), at(t, 10, 0)}}

	first := FindSlots(busy, start, 30*time.Minute, 4, start.Add(8*time.Hour))
	second := FindSlots(busy, start, 30*time.Minute, 4, start.Add(8*time.Hour))

	if len(first) != len(second) {
		t.Fatalf("runs disagree: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) {
			t.Fatalf("runs disagree at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
