package schedule

import (
	"errors"
	"testing"
	"time"
)

func day(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
}

func at(h, m int) time.Time {
	return time.Date(2026, 4, 15, h, m, 0, 0, time.UTC)
}

func TestGenerateSlotsFullDayGrid(t *testing.T) {
	slots, err := GenerateSlots(day(t), 30, nil, DefaultWorkingHours)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	// 09:00-17:00 in 30-minute steps = 16 slots.
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(9, 0)) {
		t.Errorf("first slot should start 09:00, got %s", slots[0].Start)
	}
	if !slots[len(slots)-1].End.Equal(at(17, 0)) {
		t.Errorf("last slot should end exactly at 17:00, got %s", slots[len(slots)-1].End)
	}
	for i, s := range slots {
		if s.End.Sub(s.Start) != 30*time.Minute {
			t.Errorf("slot %d has duration %s", i, s.End.Sub(s.Start))
		}
		if !s.Available {
			t.Errorf("slot %d should be available with no busy intervals", i)
		}
		if s.Reason != "" {
			t.Errorf("grid generation must not set reasons, slot %d has %q", i, s.Reason)
		}
		if i > 0 && !slots[i-1].End.Equal(s.Start) {
			t.Errorf("slots %d and %d are not consecutive", i-1, i)
		}
	}
}

func TestGenerateSlotsDropsPartialTrailingSlot(t *testing.T) {
	// 45-minute slots in an 8-hour window: 09:00..16:30 fits 10 slots,
	// the next would end 17:15 and is dropped.
	slots, err := GenerateSlots(day(t), 45, nil, DefaultWorkingHours)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	last := slots[len(slots)-1]
	if last.End.After(at(17, 0)) {
		t.Errorf("slot extends past working hours: %s", last.End)
	}
}

func TestGenerateSlotsConflictDetection(t *testing.T) {
	busy := []BusyInterval{
		{Start: at(9, 15), End: at(9, 45)},  // partial overlap with 09:00 and 09:30 slots
		{Start: at(11, 0), End: at(11, 30)}, // exactly covers the 11:00 slot
		{Start: at(13, 10), End: at(13, 20)}, // contained within the 13:00 slot
	}
	slots, err := GenerateSlots(day(t), 30, busy, DefaultWorkingHours)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}

	unavailable := map[string]bool{}
	for _, s := range slots {
		if !s.Available {
			unavailable[s.Start.Format("15:04")] = true
		}
	}
	for _, want := range []string{"09:00", "09:30", "11:00", "13:00"} {
		if !unavailable[want] {
			t.Errorf("slot %s should be unavailable", want)
		}
	}
	if len(unavailable) != 4 {
		t.Errorf("expected exactly 4 unavailable slots, got %v", unavailable)
	}
}

func TestGenerateSlotsBoundaryTouchingIsNotConflict(t *testing.T) {
	// Busy 09:30-10:00 touches the 09:00-09:30 slot boundary: no conflict.
	busy := []BusyInterval{{Start: at(9, 30), End: at(10, 0)}}
	slots, err := GenerateSlots(day(t), 30, busy, DefaultWorkingHours)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if !slots[0].Available {
		t.Error("09:00-09:30 should be available when busy starts at 09:30")
	}
	if slots[1].Available {
		t.Error("09:30-10:00 should be unavailable")
	}
	if !slots[2].Available {
		t.Error("10:00-10:30 should be available when busy ends at 10:00")
	}
}

func TestGenerateSlotsInvalidDuration(t *testing.T) {
	for _, d := range []int{0, -15} {
		if _, err := GenerateSlots(day(t), d, nil, DefaultWorkingHours); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %d: expected ErrInvalidDuration, got %v", d, err)
		}
	}
}

func TestGenerateSlotsEmptyHoursUseDefault(t *testing.T) {
	slots, err := GenerateSlots(day(t), 60, nil, WorkingHours{})
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 one-hour slots in the default window, got %d", len(slots))
	}
}

func TestGenerateSlotsDefaultsEachBoundIndependently(t *testing.T) {
	slots, err := GenerateSlots(day(t), 60, nil, WorkingHours{Start: "10:00"})
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 7 {
		t.Fatalf("expected 7 one-hour slots in 10:00-17:00, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(10, 0)) {
		t.Errorf("supplied start must be kept, got %s", slots[0].Start)
	}
	if !slots[len(slots)-1].End.Equal(at(17, 0)) {
		t.Errorf("missing end should default to 17:00, got %s", slots[len(slots)-1].End)
	}

	slots, err = GenerateSlots(day(t), 60, nil, WorkingHours{End: "12:00"})
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 one-hour slots in 09:00-12:00, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(9, 0)) {
		t.Errorf("missing start should default to 09:00, got %s", slots[0].Start)
	}
}

func TestGenerateSlotsBadWorkingHours(t *testing.T) {
	if _, err := GenerateSlots(day(t), 30, nil, WorkingHours{Start: "nine", End: "17:00"}); err == nil {
		t.Fatal("expected error for malformed working hours")
	}
}

func TestAlternativeDates(t *testing.T) {
	requested := time.Date(2026, 4, 15, 14, 30, 0, 0, time.UTC)
	dates := AlternativeDates(requested, 3)
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(dates))
	}
	for i, d := range dates {
		want := time.Date(2026, 4, 16+i, 0, 0, 0, 0, time.UTC)
		if !d.Equal(want) {
			t.Errorf("date %d: got %s want %s", i, d, want)
		}
	}
	if n := len(AlternativeDates(requested, 0)); n != 7 {
		t.Errorf("zero daysAhead should default to 7, got %d", n)
	}
}
