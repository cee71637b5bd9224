// Package availability resolves a requested civil date and time window into
// ranked, provider-reported appointment slots.
package availability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rahulp0817/doctor-appointment-booking/internal/calendly"
	"github.com/rahulp0817/doctor-appointment-booking/internal/observability/metrics"
	"github.com/rahulp0817/doctor-appointment-booking/internal/schedule"
	"github.com/rahulp0817/doctor-appointment-booking/internal/timewindow"
	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

// DefaultTimezone is applied to requests carrying no timezone unless the
// resolver was built with WithDefaultTimezone.
const DefaultTimezone = "Asia/Calcutta"

// fallbackSlotLength fills in the slot end when the provider omits end_time.
// Independent of the event type's duration; kept for parity with the provider
// response contract pending product confirmation.
const fallbackSlotLength = 30 * time.Minute

var tracer = otel.Tracer("booking.internal.availability")

// Request identifies one availability lookup: a civil date interpreted in the
// given timezone, optionally narrowed to a wall-clock window.
type Request struct {
	EventTypeID string `json:"eventTypeId"`
	Date        string `json:"date"`                // "YYYY-MM-DD", civil date in Timezone
	Timezone    string `json:"timezone,omitempty"`  // IANA zone, defaults to DefaultTimezone
	StartTime   string `json:"startTime,omitempty"` // "HH:MM", defaults to 00:00
	EndTime     string `json:"endTime,omitempty"`   // "HH:MM", defaults to 23:59
}

func (r Request) withDefaults(timezone string) Request {
	if r.Timezone == "" {
		r.Timezone = timezone
	}
	if r.StartTime == "" {
		r.StartTime = "00:00"
	}
	if r.EndTime == "" {
		r.EndTime = "23:59"
	}
	return r
}

// SlotSource is the provider-side availability lookup the resolver depends on.
type SlotSource interface {
	AvailableTimes(ctx context.Context, eventTypeID string, startUTC, endUTC time.Time) ([]calendly.AvailableTime, error)
}

// Resolver turns availability requests into normalized slot lists. Reads
// degrade instead of failing: any remote error yields an empty result so the
// caller can render "no slots found" rather than crash.
type Resolver struct {
	source    SlotSource
	cache     *Cache
	logger    *logging.Logger
	metrics   *metrics.BookingMetrics
	defaultTZ string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache attaches a short-TTL availability cache.
func WithCache(cache *Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithMetrics attaches lookup counters.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithDefaultTimezone overrides the timezone applied to requests that carry
// none. Empty values are ignored.
func WithDefaultTimezone(timezone string) Option {
	return func(r *Resolver) {
		if timezone != "" {
			r.defaultTZ = timezone
		}
	}
}

// NewResolver creates a resolver backed by the given slot source.
func NewResolver(source SlotSource, logger *logging.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Resolver{source: source, logger: logger, defaultTZ: DefaultTimezone}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches the provider's available windows for the request and
// normalizes them into chronologically ordered slots. Remote failures are
// logged and converted into an empty list, never an error; booking writes do
// not share this policy.
func (r *Resolver) Resolve(ctx context.Context, req Request) []schedule.TimeSlot {
	req = req.withDefaults(r.defaultTZ)

	ctx, span := tracer.Start(ctx, "availability.resolve")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.event_type", req.EventTypeID),
		attribute.String("booking.date", req.Date),
		attribute.String("booking.timezone", req.Timezone),
	)

	if cached, ok := r.cache.Get(ctx, req); ok {
		r.metrics.ObserveLookup("cache_hit", len(cached))
		return cached
	}

	startUTC, err := timewindow.ToAbsolute(req.Date, req.StartTime, req.Timezone)
	if err != nil {
		r.logger.Error("availability window start invalid", "error", err, "date", req.Date, "timezone", req.Timezone)
		r.metrics.ObserveLookup("invalid_window", 0)
		return []schedule.TimeSlot{}
	}
	endUTC, err := timewindow.ToAbsolute(req.Date, req.EndTime, req.Timezone)
	if err != nil {
		r.logger.Error("availability window end invalid", "error", err, "date", req.Date, "timezone", req.Timezone)
		r.metrics.ObserveLookup("invalid_window", 0)
		return []schedule.TimeSlot{}
	}
	// Include the final minute of the window.
	endUTC = endUTC.Add(59 * time.Second)

	entries, err := r.source.AvailableTimes(ctx, req.EventTypeID, startUTC, endUTC)
	if err != nil {
		// Degraded-empty: a failed read renders as "no slots found" downstream.
		r.logger.Error("availability lookup failed, degrading to empty",
			"error", err,
			"event_type", req.EventTypeID,
			"date", req.Date,
		)
		span.RecordError(err)
		r.metrics.ObserveLookup("remote_error", 0)
		return []schedule.TimeSlot{}
	}

	slots := normalize(entries)
	r.cache.Set(ctx, req, slots)
	r.metrics.ObserveLookup("ok", len(slots))
	return slots
}

// normalize converts provider entries into slots, skipping entries whose
// start time does not parse and defaulting a missing end to 30 minutes after
// the start.
func normalize(entries []calendly.AvailableTime) []schedule.TimeSlot {
	slots := make([]schedule.TimeSlot, 0, len(entries))
	for _, e := range entries {
		start, err := time.Parse(time.RFC3339, e.StartTime)
		if err != nil {
			continue
		}
		end := start.Add(fallbackSlotLength)
		if e.EndTime != "" {
			if parsed, err := time.Parse(time.RFC3339, e.EndTime); err == nil {
				end = parsed
			}
		}
		slots = append(slots, schedule.TimeSlot{
			Start:     start.UTC(),
			End:       end.UTC(),
			Available: e.Status == "available",
		})
	}
	return slots
}
