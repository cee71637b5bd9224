// Package calendly is a REST client for the Calendly scheduling API, covering
// the event-type, availability, and invitee-creation endpoints the booking
// flow needs.
package calendly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

const defaultTimeout = 20 * time.Second

var tracer = otel.Tracer("booking.internal.calendly")

// Client is a Calendly API client. Construct it explicitly and inject it into
// the resolver/submitter; there is no process-wide shared instance.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point at a stub.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient injects a custom HTTP client, e.g. with a caller-chosen
// deadline on the single outbound call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Calendly client authenticated with the given token.
func NewClient(accessToken string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EventTypeURI expands a bare event type ID into the canonical resource URI
// the API expects in query parameters and payloads.
func (c *Client) EventTypeURI(eventTypeID string) string {
	if strings.HasPrefix(eventTypeID, "https://") {
		return eventTypeID
	}
	return c.baseURL + "/event_types/" + eventTypeID
}

// ListEventTypes returns the active event types for a user.
func (c *Client) ListEventTypes(ctx context.Context, userURI string) ([]EventType, error) {
	params := url.Values{}
	params.Set("user", userURI)
	params.Set("active", "true")

	var out EventTypesResponse
	if err := c.get(ctx, "/event_types", params, &out); err != nil {
		return nil, err
	}
	return out.Collection, nil
}

// AvailableTimes returns the provider-reported bookable times for an event
// type within the UTC window [startUTC, endUTC].
func (c *Client) AvailableTimes(ctx context.Context, eventTypeID string, startUTC, endUTC time.Time) ([]AvailableTime, error) {
	params := url.Values{}
	params.Set("event_type", c.EventTypeURI(eventTypeID))
	params.Set("start_time", startUTC.UTC().Format(time.RFC3339))
	params.Set("end_time", endUTC.UTC().Format(time.RFC3339))

	var out AvailableTimesResponse
	if err := c.get(ctx, "/event_type_available_times", params, &out); err != nil {
		return nil, err
	}
	return out.Collection, nil
}

// AvailabilitySchedules returns the user's availability schedules (read-only
// metadata consumed upstream of slot computation).
func (c *Client) AvailabilitySchedules(ctx context.Context, userURI string) ([]AvailabilitySchedule, error) {
	params := url.Values{}
	params.Set("user", userURI)

	var out AvailabilitySchedulesResponse
	if err := c.get(ctx, "/user_availability_schedules", params, &out); err != nil {
		return nil, err
	}
	return out.Collection, nil
}

// CreateInvitee books the event by creating an invitee.
func (c *Client) CreateInvitee(ctx context.Context, req InviteeRequest) (*InviteeResource, error) {
	var out InviteeResponse
	if err := c.post(ctx, "/invitees", req, &out); err != nil {
		return nil, err
	}
	return &out.Resource, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	if strings.TrimSpace(c.accessToken) == "" {
		return fmt.Errorf("calendly: missing access token")
	}

	ctx, span := tracer.Start(ctx, "calendly"+strings.ReplaceAll(path, "/", "."))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("calendly.path", path),
	)

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("calendly: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("calendly: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("calendly: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("calendly: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(respBody)}
		span.RecordError(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("calendly: unmarshal response: %w", err)
		}
	}
	return nil
}

// extractMessage pulls the provider's error message out of a non-2xx body,
// falling back to a truncated raw body.
func extractMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 300 {
		msg = msg[:300]
	}
	if msg == "" {
		msg = "request failed"
	}
	return msg
}
