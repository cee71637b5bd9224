package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rahulp0817/doctor-appointment-booking/internal/availability"
	"github.com/rahulp0817/doctor-appointment-booking/internal/schedule"
	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

// alternativeDaysAhead is how many follow-up dates to suggest when a lookup
// comes back empty.
const alternativeDaysAhead = 7

// SlotsHandler serves availability lookups: the provider-backed path and the
// offline grid fallback.
type SlotsHandler struct {
	resolver        *availability.Resolver
	logger          *logging.Logger
	defaultTimezone string
	defaultHours    schedule.WorkingHours
}

// SlotsOption configures a SlotsHandler.
type SlotsOption func(*SlotsHandler)

// WithDefaultTimezone sets the timezone applied to requests that carry none.
// Empty values are ignored.
func WithDefaultTimezone(timezone string) SlotsOption {
	return func(h *SlotsHandler) {
		if timezone != "" {
			h.defaultTimezone = timezone
		}
	}
}

// WithWorkingHours sets the working-hours bounds used by the offline grid
// when the request omits them. Empty bounds are ignored per side.
func WithWorkingHours(hours schedule.WorkingHours) SlotsOption {
	return func(h *SlotsHandler) {
		if hours.Start != "" {
			h.defaultHours.Start = hours.Start
		}
		if hours.End != "" {
			h.defaultHours.End = hours.End
		}
	}
}

// NewSlotsHandler creates a slots handler.
func NewSlotsHandler(resolver *availability.Resolver, logger *logging.Logger, opts ...SlotsOption) *SlotsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	h := &SlotsHandler{
		resolver:        resolver,
		logger:          logger,
		defaultTimezone: availability.DefaultTimezone,
		defaultHours:    schedule.DefaultWorkingHours,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SlotsRequest is the body for POST /api/slots.
type SlotsRequest struct {
	EventTypeID   string `json:"eventTypeId"`
	Date          string `json:"date"`
	Timezone      string `json:"timezone,omitempty"`
	StartTime     string `json:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty"`
	PreferredTime string `json:"preferredTime,omitempty"`
}

// SlotsResponse carries the full slot list plus the capped recommendation set.
type SlotsResponse struct {
	AvailableSlots   []schedule.TimeSlot `json:"availableSlots"`
	Recommended      []schedule.TimeSlot `json:"recommended"`
	AlternativeDates []string            `json:"alternativeDates,omitempty"`
}

// GetSlots handles POST /api/slots: provider-backed availability for a civil
// date, ranked for presentation.
func (h *SlotsHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	var req SlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.EventTypeID == "" || req.Date == "" {
		respondError(w, http.StatusBadRequest, "missing required fields: eventTypeId and date are required", nil)
		return
	}

	slots := h.resolver.Resolve(r.Context(), availability.Request{
		EventTypeID: req.EventTypeID,
		Date:        req.Date,
		Timezone:    req.Timezone,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})

	resp := SlotsResponse{
		AvailableSlots: slots,
		Recommended:    schedule.Rank(slots, preferredHour(req.PreferredTime), h.location(req.Timezone)),
	}
	if len(resp.Recommended) == 0 {
		resp.AlternativeDates = h.alternativeDatesFor(req.Date, req.Timezone)
	}

	h.logger.Info("availability served",
		"event_type", req.EventTypeID,
		"date", req.Date,
		"slots", len(slots),
	)
	respondJSON(w, http.StatusOK, resp)
}

// OfflineSlotsRequest is the body for POST /api/slots/offline, the fallback
// path that builds a local grid from known busy intervals without calling the
// provider.
type OfflineSlotsRequest struct {
	Date            string                  `json:"date"`
	Timezone        string                  `json:"timezone,omitempty"`
	DurationMinutes int                     `json:"durationMinutes"`
	BusyIntervals   []schedule.BusyInterval `json:"busyIntervals,omitempty"`
	WorkingHours    schedule.WorkingHours   `json:"workingHours,omitempty"`
	PreferredTime   string                  `json:"preferredTime,omitempty"`
}

// OfflineSlots handles POST /api/slots/offline.
func (h *SlotsHandler) OfflineSlots(w http.ResponseWriter, r *http.Request) {
	var req OfflineSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Date == "" {
		respondError(w, http.StatusBadRequest, "missing required field: date", nil)
		return
	}

	loc := h.location(req.Timezone)
	if loc == nil {
		respondError(w, http.StatusBadRequest, "invalid timezone", nil)
		return
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
		return
	}

	hours := req.WorkingHours
	if hours.Start == "" {
		hours.Start = h.defaultHours.Start
	}
	if hours.End == "" {
		hours.End = h.defaultHours.End
	}

	slots, err := schedule.GenerateSlots(day, req.DurationMinutes, req.BusyIntervals, hours)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	resp := SlotsResponse{
		AvailableSlots: slots,
		Recommended:    schedule.Rank(slots, preferredHour(req.PreferredTime), loc),
	}
	if len(resp.Recommended) == 0 {
		resp.AlternativeDates = h.alternativeDatesFor(req.Date, req.Timezone)
	}
	respondJSON(w, http.StatusOK, resp)
}

// preferredHour parses "HH:MM" or a bare hour into a ranking preference.
func preferredHour(preferredTime string) *int {
	if preferredTime == "" {
		return nil
	}
	raw := strings.SplitN(preferredTime, ":", 2)[0]
	hour, err := strconv.Atoi(raw)
	if err != nil || hour < 0 || hour > 23 {
		return nil
	}
	return &hour
}

// location resolves the request timezone, falling back to the handler's
// configured default. Returns nil for an unknown zone.
func (h *SlotsHandler) location(timezone string) *time.Location {
	if timezone == "" {
		timezone = h.defaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil
	}
	return loc
}

func (h *SlotsHandler) alternativeDatesFor(date, timezone string) []string {
	loc := h.location(timezone)
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil
	}
	alternatives := schedule.AlternativeDates(day, alternativeDaysAhead)
	out := make([]string, 0, len(alternatives))
	for _, d := range alternatives {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}
