package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/rahulp0817/doctor-appointment-booking/internal/timewindow"
)

// ErrInvalidDuration is returned when a non-positive slot duration is passed
// to grid generation. This is a programming/config error, never retried.
var ErrInvalidDuration = errors.New("schedule: slot duration must be positive")

// GenerateSlots builds the grid of duration-sized slots for a single day,
// bounded by working hours in the day's location. Slots advance by exactly
// durationMinutes each step; a slot that exactly reaches the working-hours end
// is kept, one that would extend past it is dropped and generation stops.
//
// A slot is marked unavailable when it overlaps any busy interval. Touching
// boundaries do not count as overlap, so a slot ending exactly when a busy
// interval starts stays available.
func GenerateSlots(day time.Time, durationMinutes int, busy []BusyInterval, hours WorkingHours) ([]TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if hours.Start == "" {
		hours.Start = DefaultWorkingHours.Start
	}
	if hours.End == "" {
		hours.End = DefaultWorkingHours.End
	}

	startHour, startMinute, err := timewindow.ParseClock(hours.Start)
	if err != nil {
		return nil, fmt.Errorf("schedule: working hours start: %w", err)
	}
	endHour, endMinute, err := timewindow.ParseClock(hours.End)
	if err != nil {
		return nil, fmt.Errorf("schedule: working hours end: %w", err)
	}

	loc := day.Location()
	windowStart := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMinute, 0, 0, loc)
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMinute, 0, 0, loc)

	duration := time.Duration(durationMinutes) * time.Minute
	var slots []TimeSlot
	for cursor := windowStart; ; cursor = cursor.Add(duration) {
		slotEnd := cursor.Add(duration)
		if slotEnd.After(windowEnd) {
			break
		}
		slots = append(slots, TimeSlot{
			Start:     cursor,
			End:       slotEnd,
			Available: !conflicts(cursor, slotEnd, busy),
		})
	}
	return slots, nil
}

func conflicts(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if timewindow.Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// AlternativeDates returns the next daysAhead calendar days after the
// requested date, for suggesting other days when a grid comes back empty.
func AlternativeDates(requested time.Time, daysAhead int) []time.Time {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	start := time.Date(requested.Year(), requested.Month(), requested.Day(), 0, 0, 0, 0, requested.Location())
	dates := make([]time.Time, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}
