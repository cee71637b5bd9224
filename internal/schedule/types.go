// Package schedule builds and ranks appointment slot grids.
package schedule

import "time"

// TimeSlot is a candidate appointment window. Slots are value objects: every
// transformation (e.g. annotating a reason) returns a new slot rather than
// mutating in place.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// BusyInterval is a time range already occupied by an existing booking.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WorkingHours bounds the daily slot grid, as wall-clock "HH:MM" strings.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DefaultWorkingHours is the grid window used when the caller does not
// specify one.
var DefaultWorkingHours = WorkingHours{Start: "09:00", End: "17:00"}

// EventType is a bookable appointment category defined by the scheduling
// provider. Read-only within this package.
type EventType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description,omitempty"`
	Active          bool   `json:"active"`
	BookingMethod   string `json:"bookingMethod,omitempty"`
}

// Booking methods reported by the provider.
const (
	BookingMethodInstant = "instant"
	BookingMethodRequest = "request"
	BookingMethodOther   = "other"
)

// AppointmentType is a built-in appointment category for callers that do not
// use provider-defined event types.
type AppointmentType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration"`
	Description     string `json:"description"`
}

// BuiltinAppointmentTypes is the default catalog of appointment categories.
var BuiltinAppointmentTypes = []AppointmentType{
	{ID: "general", Name: "General Consultation", DurationMinutes: 30, Description: "Regular check-up and consultation"},
	{ID: "followup", Name: "Follow-up", DurationMinutes: 15, Description: "Follow-up visit for existing condition"},
	{ID: "physical", Name: "Physical Exam", DurationMinutes: 45, Description: "Comprehensive physical examination"},
	{ID: "specialist", Name: "Specialist Consultation", DurationMinutes: 60, Description: "Consultation with specialist doctor"},
}
