// Package timewindow converts civil dates and wall-clock times into absolute
// UTC instants and provides interval overlap checks for slot computation.
package timewindow

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToAbsolute interprets date ("YYYY-MM-DD") and timeOfDay ("HH:MM") as a civil
// wall-clock time in the given IANA timezone and returns the equivalent UTC
// instant. The UTC offset in effect on that specific civil date is applied, so
// DST transitions and non-integer offsets resolve correctly.
func ToAbsolute(date, timeOfDay, timezone string) (time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("timewindow: load timezone %q: %w", timezone, err)
	}

	year, month, day, err := parseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseClock(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}

	local := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	return local.UTC(), nil
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(clock string) (hour, minute int, err error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("timewindow: invalid clock time %q", clock)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("timewindow: invalid hour in %q", clock)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("timewindow: invalid minute in %q", clock)
	}
	return hour, minute, nil
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any
// instant. Boundary touching (aEnd == bStart) is not an overlap, so adjacent
// slots never conflict with each other.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func parseDate(date string) (year, month, day int, err error) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("timewindow: invalid date %q", date)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("timewindow: invalid year in %q", date)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("timewindow: invalid month in %q", date)
	}
	day, err = strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("timewindow: invalid day in %q", date)
	}
	return year, month, day, nil
}
