package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/rahulp0817/doctor-appointment-booking/internal/calendly"
	"github.com/rahulp0817/doctor-appointment-booking/internal/schedule"
	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

// EventTypeLister is the provider metadata surface the handler proxies.
type EventTypeLister interface {
	ListEventTypes(ctx context.Context, userURI string) ([]calendly.EventType, error)
	AvailabilitySchedules(ctx context.Context, userURI string) ([]calendly.AvailabilitySchedule, error)
}

// EventTypesHandler proxies provider event-type and schedule metadata, and
// serves the built-in appointment-type catalog.
type EventTypesHandler struct {
	provider EventTypeLister
	userURI  string
	logger   *logging.Logger
}

// NewEventTypesHandler creates an event types handler.
func NewEventTypesHandler(provider EventTypeLister, userURI string, logger *logging.Logger) *EventTypesHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventTypesHandler{provider: provider, userURI: userURI, logger: logger}
}

// ListEventTypes handles GET /api/event-types.
func (h *EventTypesHandler) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.provider.ListEventTypes(r.Context(), h.userURI)
	if err != nil {
		h.logger.Error("event types fetch failed", "error", err)
		respondProviderError(w, err, "failed to fetch event types")
		return
	}

	out := make([]schedule.EventType, 0, len(types))
	for _, et := range types {
		out = append(out, schedule.EventType{
			ID:              idFromURI(et.URI),
			Name:            et.Name,
			DurationMinutes: et.Duration,
			Description:     et.DescriptionPlain,
			Active:          et.Active,
			BookingMethod:   normalizeBookingMethod(et.BookingMethod),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"eventTypes": out})
}

// AvailabilitySchedules handles GET /api/availability-schedules.
func (h *EventTypesHandler) AvailabilitySchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.provider.AvailabilitySchedules(r.Context(), h.userURI)
	if err != nil {
		h.logger.Error("availability schedules fetch failed", "error", err)
		respondProviderError(w, err, "failed to fetch availability schedules")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"schedules": schedules})
}

// AppointmentTypes handles GET /api/appointment-types with the built-in
// catalog for callers not using provider event types.
func (h *EventTypesHandler) AppointmentTypes(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"appointmentTypes": schedule.BuiltinAppointmentTypes,
	})
}

func respondProviderError(w http.ResponseWriter, err error, fallback string) {
	if apiErr, ok := err.(*calendly.APIError); ok {
		respondError(w, apiErr.StatusCode, apiErr.Message, nil)
		return
	}
	respondError(w, http.StatusBadGateway, fallback, nil)
}

// idFromURI extracts the resource ID from a Calendly URI like
// https://api.calendly.com/event_types/<id>.
func idFromURI(uri string) string {
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}
	return uri
}

func normalizeBookingMethod(method string) string {
	switch method {
	case schedule.BookingMethodInstant, schedule.BookingMethodRequest:
		return method
	case "":
		return schedule.BookingMethodInstant
	default:
		return schedule.BookingMethodOther
	}
}
