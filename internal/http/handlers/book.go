package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rahulp0817/doctor-appointment-booking/internal/booking"
	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

// BookingHandler serves booking submissions.
type BookingHandler struct {
	submitter *booking.Submitter
	logger    *logging.Logger
}

// NewBookingHandler creates a booking handler.
func NewBookingHandler(submitter *booking.Submitter, logger *logging.Logger) *BookingHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingHandler{submitter: submitter, logger: logger}
}

// BookRequest is the body for POST /api/book. startTime is RFC3339.
type BookRequest struct {
	EventTypeID string `json:"eventTypeId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	StartTime   string `json:"startTime"`
	Timezone    string `json:"timezone"`
	Notes       string `json:"notes,omitempty"`
}

// CreateBooking handles POST /api/book. Validation failures return 400;
// provider failures pass the provider's status through.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	var startTime time.Time
	if req.StartTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid startTime, expected RFC3339", nil)
			return
		}
		startTime = parsed
	}

	confirmation, err := h.submitter.Submit(r.Context(), booking.Request{
		EventTypeID: req.EventTypeID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		StartTime:   startTime,
		Timezone:    req.Timezone,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, confirmation)
}

func (h *BookingHandler) respondSubmitError(w http.ResponseWriter, err error) {
	var vErr *booking.ValidationError
	if errors.As(err, &vErr) {
		extra := map[string]interface{}{}
		if len(vErr.MissingFields) > 0 {
			extra["missingFields"] = vErr.MissingFields
		}
		if vErr.Field != "" {
			extra["field"] = vErr.Field
		}
		respondError(w, http.StatusBadRequest, vErr.Error(), extra)
		return
	}

	var rErr *booking.RemoteError
	if errors.As(err, &rErr) {
		status := rErr.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		respondError(w, status, rErr.Message, nil)
		return
	}

	h.logger.Error("unexpected booking error", "error", err)
	respondError(w, http.StatusInternalServerError, "failed to create booking", nil)
}
