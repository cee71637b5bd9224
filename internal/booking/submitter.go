// Package booking validates completed booking requests and submits them to
// the scheduling provider as invitee creations.
package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rahulp0817/doctor-appointment-booking/internal/calendly"
	"github.com/rahulp0817/doctor-appointment-booking/internal/observability/metrics"
	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

// minPhoneDigits is the canonical phone rule: at least 10 digits after
// stripping formatting. The UI layer may apply a stricter country-code mask;
// this is the contract enforced at submission.
const minPhoneDigits = 10

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitPattern = regexp.MustCompile(`\D`)

	tracer = otel.Tracer("booking.internal.booking")
)

// Request is a completed booking submission. The first six fields are
// required.
type Request struct {
	EventTypeID string    `json:"eventTypeId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	StartTime   time.Time `json:"startTime"`
	Timezone    string    `json:"timezone"`
	Notes       string    `json:"notes,omitempty"`
}

// Confirmation is the record produced on a successful provider response.
type Confirmation struct {
	ConfirmationNumber string    `json:"confirmationNumber"`
	BookingURI         string    `json:"bookingUri,omitempty"`
	Status             string    `json:"status"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Timezone           string    `json:"timezone"`
}

// ProviderBooker is the invitee-creation capability the submitter depends on.
// *calendly.Client satisfies it.
type ProviderBooker interface {
	CreateInvitee(ctx context.Context, req calendly.InviteeRequest) (*calendly.InviteeResource, error)
	EventTypeURI(eventTypeID string) string
}

// Submitter validates and forwards booking requests. Submission either fully
// succeeds with a confirmation or fully fails; no partial booking record is
// kept client-side.
type Submitter struct {
	provider ProviderBooker
	logger   *logging.Logger
	metrics  *metrics.BookingMetrics
	now      func() time.Time
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithMetrics attaches submission counters.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *Submitter) {
		s.metrics = m
	}
}

// withClock overrides the confirmation-number clock in tests.
func withClock(now func() time.Time) Option {
	return func(s *Submitter) {
		s.now = now
	}
}

// NewSubmitter creates a submitter backed by the given provider.
func NewSubmitter(provider ProviderBooker, logger *logging.Logger, opts ...Option) *Submitter {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Submitter{provider: provider, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the request and creates the booking with the provider.
// Returns *ValidationError for bad input and *RemoteError for provider
// failures.
func (s *Submitter) Submit(ctx context.Context, req Request) (*Confirmation, error) {
	ctx, span := tracer.Start(ctx, "booking.submit")
	defer span.End()
	span.SetAttributes(attribute.String("booking.event_type", req.EventTypeID))

	if err := validate(req); err != nil {
		s.metrics.ObserveSubmission("validation_error")
		return nil, err
	}

	invitee, err := s.provider.CreateInvitee(ctx, calendly.InviteeRequest{
		EventType: s.provider.EventTypeURI(req.EventTypeID),
		StartTime: req.StartTime.UTC().Format(time.RFC3339),
		Invitee: calendly.Invitee{
			Name:               req.Name,
			Email:              req.Email,
			Timezone:           req.Timezone,
			TextReminderNumber: req.Phone,
		},
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSubmission("remote_error")
		s.logger.Error("booking submission failed",
			"error", err,
			"event_type", req.EventTypeID,
		)
		return nil, remoteError(err)
	}

	confirmation := &Confirmation{
		ConfirmationNumber: s.confirmationNumber(),
		BookingURI:         invitee.URI,
		Status:             invitee.Status,
		StartTime:          parseInstant(invitee.StartTime, req.StartTime),
		EndTime:            parseInstant(invitee.EndTime, time.Time{}),
		Name:               invitee.Name,
		Email:              invitee.Email,
		Timezone:           invitee.Timezone,
	}
	s.metrics.ObserveSubmission("ok")
	s.logger.Info("booking confirmed",
		"confirmation_number", confirmation.ConfirmationNumber,
		"event_type", req.EventTypeID,
		"start_time", confirmation.StartTime,
	)
	return confirmation, nil
}

// confirmationNumber is unique per call: millisecond timestamp plus a short
// random suffix to disambiguate same-millisecond submissions.
func (s *Submitter) confirmationNumber() string {
	return fmt.Sprintf("APT-%d-%s", s.now().UnixMilli(), uuid.NewString()[:8])
}

func validate(req Request) error {
	var missing []string
	if req.EventTypeID == "" {
		missing = append(missing, "eventTypeId")
	}
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	if req.StartTime.IsZero() {
		missing = append(missing, "startTime")
	}
	if req.Timezone == "" {
		missing = append(missing, "timezone")
	}
	if len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}

	if !emailPattern.MatchString(req.Email) {
		return &ValidationError{Field: "email"}
	}
	if digits := nonDigitPattern.ReplaceAllString(req.Phone, ""); len(digits) < minPhoneDigits {
		return &ValidationError{Field: "phone"}
	}
	return nil
}

func remoteError(err error) *RemoteError {
	var apiErr *calendly.APIError
	if errors.As(err, &apiErr) {
		return &RemoteError{Message: apiErr.Message, StatusCode: apiErr.StatusCode}
	}
	return &RemoteError{Message: err.Error()}
}

func parseInstant(raw string, fallback time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return fallback
}
