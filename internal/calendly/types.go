package calendly

import "fmt"

const defaultBaseURL = "https://api.calendly.com"

// EventType is a bookable appointment category as reported by Calendly.
type EventType struct {
	URI              string `json:"uri"`
	Name             string `json:"name"`
	Active           bool   `json:"active"`
	Slug             string `json:"slug"`
	SchedulingURL    string `json:"scheduling_url"`
	Duration         int    `json:"duration"`
	Kind             string `json:"kind"`
	BookingMethod    string `json:"booking_method"`
	DescriptionPlain string `json:"description_plain"`
}

// EventTypesResponse is the envelope for GET /event_types.
type EventTypesResponse struct {
	Collection []EventType `json:"collection"`
	Pagination Pagination  `json:"pagination"`
}

// AvailableTime is one entry from GET /event_type_available_times.
type AvailableTime struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	SchedulingURL string `json:"scheduling_url"`
}

// AvailableTimesResponse is the envelope for GET /event_type_available_times.
type AvailableTimesResponse struct {
	Collection []AvailableTime `json:"collection"`
}

// AvailabilitySchedule is a provider-side working-hours schedule.
type AvailabilitySchedule struct {
	URI      string         `json:"uri"`
	Name     string         `json:"name"`
	Default  bool           `json:"default"`
	Timezone string         `json:"timezone"`
	Rules    []ScheduleRule `json:"rules"`
}

// ScheduleRule is one availability rule within a schedule.
type ScheduleRule struct {
	Type      string             `json:"type"`
	WDay      string             `json:"wday,omitempty"`
	Date      string             `json:"date,omitempty"`
	Intervals []ScheduleInterval `json:"intervals"`
}

// ScheduleInterval is a from/to wall-clock pair inside a rule.
type ScheduleInterval struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AvailabilitySchedulesResponse is the envelope for GET /user_availability_schedules.
type AvailabilitySchedulesResponse struct {
	Collection []AvailabilitySchedule `json:"collection"`
}

// Pagination is Calendly's shared pagination block.
type Pagination struct {
	Count         int     `json:"count"`
	NextPage      *string `json:"next_page"`
	PreviousPage  *string `json:"previous_page"`
	NextPageToken *string `json:"next_page_token"`
}

// InviteeRequest is the payload for POST /invitees.
type InviteeRequest struct {
	EventType string  `json:"event_type"`
	StartTime string  `json:"start_time"`
	Invitee   Invitee `json:"invitee"`
}

// Invitee carries the patient contact details.
type Invitee struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Timezone           string `json:"timezone"`
	TextReminderNumber string `json:"text_reminder_number,omitempty"`
}

// InviteeResource is the created invitee as echoed back by the provider.
type InviteeResource struct {
	URI       string `json:"uri"`
	Status    string `json:"status"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Timezone  string `json:"timezone"`
}

// InviteeResponse is the envelope for POST /invitees.
type InviteeResponse struct {
	Resource InviteeResource `json:"resource"`
}

type errorResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from Calendly, carrying the provider's
// message when the body includes one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("calendly: status %d: %s", e.StatusCode, e.Message)
}
