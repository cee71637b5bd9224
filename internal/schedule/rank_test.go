package schedule

import (
	"testing"
	"time"
)

func slotAt(h int, available bool) TimeSlot {
	start := time.Date(2026, 4, 15, h, 0, 0, 0, time.UTC)
	return TimeSlot{Start: start, End: start.Add(30 * time.Minute), Available: available}
}

func TestRankFiltersUnavailable(t *testing.T) {
	slots := []TimeSlot{slotAt(9, true), slotAt(10, false), slotAt(11, true)}
	ranked := Rank(slots, nil, time.UTC)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(ranked))
	}
	for _, s := range ranked {
		if !s.Available {
			t.Errorf("ranked slot at %s is not available", s.Start)
		}
	}
}

func TestRankCapsAtFive(t *testing.T) {
	var slots []TimeSlot
	for h := 9; h < 17; h++ {
		slots = append(slots, slotAt(h, true))
	}
	ranked := Rank(slots, nil, time.UTC)
	if len(ranked) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(ranked))
	}
}

func TestRankReasonBuckets(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{8, ""},
		{9, reasonMorning},
		{11, reasonMorning},
		{12, reasonMidday},
		{13, reasonMidday},
		{14, reasonAfternoon},
		{16, reasonAfternoon},
		{17, ""},
	}
	for _, tc := range cases {
		ranked := Rank([]TimeSlot{slotAt(tc.hour, true)}, nil, time.UTC)
		if len(ranked) != 1 {
			t.Fatalf("hour %d: expected 1 slot", tc.hour)
		}
		if ranked[0].Reason != tc.want {
			t.Errorf("hour %d: reason = %q, want %q", tc.hour, ranked[0].Reason, tc.want)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	slots := []TimeSlot{slotAt(9, true)}
	Rank(slots, nil, time.UTC)
	if slots[0].Reason != "" {
		t.Fatal("Rank mutated its input slot")
	}
}

func TestRankNoPreferencePreservesChronologicalOrder(t *testing.T) {
	slots := []TimeSlot{slotAt(9, true), slotAt(12, true), slotAt(15, true)}
	ranked := Rank(slots, nil, time.UTC)
	for i := 1; i < len(ranked); i++ {
		if !ranked[i-1].Start.Before(ranked[i].Start) {
			t.Fatalf("order not chronological at index %d", i)
		}
	}
}

func TestRankPreferredHourOrdering(t *testing.T) {
	// Preference 14: distances are 13:00→1, 15:00→1, 09:00→5.
	// 13:00 precedes 15:00 because the sort is stable.
	slots := []TimeSlot{slotAt(9, true), slotAt(13, true), slotAt(15, true)}
	preferred := 14
	ranked := Rank(slots, &preferred, time.UTC)
	wantHours := []int{13, 15, 9}
	if len(ranked) != len(wantHours) {
		t.Fatalf("expected %d slots, got %d", len(wantHours), len(ranked))
	}
	for i, want := range wantHours {
		if got := ranked[i].Start.Hour(); got != want {
			t.Errorf("position %d: hour = %d, want %d", i, got, want)
		}
	}
}

func TestRankUsesLocalHourForBuckets(t *testing.T) {
	// 04:30 UTC is 10:00 in Asia/Calcutta: a morning slot there.
	loc, err := time.LoadLocation("Asia/Calcutta")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	start := time.Date(2026, 4, 15, 4, 30, 0, 0, time.UTC)
	slots := []TimeSlot{{Start: start, End: start.Add(30 * time.Minute), Available: true}}
	ranked := Rank(slots, nil, loc)
	if ranked[0].Reason != reasonMorning {
		t.Fatalf("expected morning reason in Calcutta local time, got %q", ranked[0].Reason)
	}
}

func TestRankEmptyInput(t *testing.T) {
	if got := Rank(nil, nil, time.UTC); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}
