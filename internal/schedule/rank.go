package schedule

import (
	"sort"
	"time"
)

// maxRecommendations caps how many slots are presented to the user at once.
const maxRecommendations = 5

// Reasons attached to slots by time-of-day bucket.
const (
	reasonMorning   = "Morning slot - Fresh start, less waiting time"
	reasonMidday    = "Midday slot - Convenient timing"
	reasonAfternoon = "Afternoon slot - Relaxed schedule"
)

// Rank filters slots down to available ones, annotates each with a
// human-readable reason based on its local hour of day, optionally reorders
// by proximity to a preferred hour, and returns at most five results.
//
// Hours are evaluated in loc; a nil loc falls back to each slot's own
// location. With no preference the chronological order of the input is
// preserved; with a preference the sort is stable, so equidistant slots keep
// their prior relative order.
func Rank(slots []TimeSlot, preferredHour *int, loc *time.Location) []TimeSlot {
	ranked := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if !s.Available {
			continue
		}
		annotated := s
		annotated.Reason = reasonForHour(localHour(s, loc))
		ranked = append(ranked, annotated)
	}

	if preferredHour != nil {
		want := *preferredHour
		sort.SliceStable(ranked, func(i, j int) bool {
			return absDiff(localHour(ranked[i], loc), want) < absDiff(localHour(ranked[j], loc), want)
		})
	}

	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	return ranked
}

func localHour(s TimeSlot, loc *time.Location) int {
	if loc == nil {
		return s.Start.Hour()
	}
	return s.Start.In(loc).Hour()
}

func reasonForHour(hour int) string {
	switch {
	case hour >= 9 && hour < 12:
		return reasonMorning
	case hour >= 12 && hour < 14:
		return reasonMidday
	case hour >= 14 && hour < 17:
		return reasonAfternoon
	default:
		return ""
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
