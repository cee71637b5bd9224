package calendly

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListEventTypes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/event_types" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("active"); got != "true" {
			t.Fatalf("expected active=true, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"collection": []map[string]any{
				{"uri": "https://api.calendly.com/event_types/et_1", "name": "General Consultation", "active": true, "duration": 30},
			},
		})
	}))
	defer ts.Close()

	c := NewClient("token", nil, WithBaseURL(ts.URL))
	types, err := c.ListEventTypes(context.Background(), "https://api.calendly.com/users/u_1")
	if err != nil {
		t.Fatalf("ListEventTypes error: %v", err)
	}
	if len(types) != 1 || types[0].Name != "General Consultation" || types[0].Duration != 30 {
		t.Fatalf("unexpected event types: %+v", types)
	}
}

func TestAvailableTimesQueryWindow(t *testing.T) {
	start := time.Date(2026, 4, 15, 3, 30, 0, 0, time.UTC)
	end := time.Date(2026, 4, 16, 3, 29, 59, 0, time.UTC)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("event_type"); got == "" {
			t.Fatal("missing event_type param")
		}
		if got := q.Get("start_time"); got != start.Format(time.RFC3339) {
			t.Fatalf("start_time = %q", got)
		}
		if got := q.Get("end_time"); got != end.Format(time.RFC3339) {
			t.Fatalf("end_time = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"collection": []map[string]any{
				{"start_time": "2026-04-15T04:00:00Z", "end_time": "2026-04-15T04:30:00Z", "status": "available", "scheduling_url": "https://calendly.com/x"},
			},
		})
	}))
	defer ts.Close()

	c := NewClient("token", nil, WithBaseURL(ts.URL))
	times, err := c.AvailableTimes(context.Background(), "et_1", start, end)
	if err != nil {
		t.Fatalf("AvailableTimes error: %v", err)
	}
	if len(times) != 1 || times[0].Status != "available" {
		t.Fatalf("unexpected times: %+v", times)
	}
}

func TestCreateInvitee(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/invitees" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req InviteeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Invitee.Name != "Jane Doe" || req.Invitee.TextReminderNumber != "+12345678901" {
			t.Fatalf("unexpected invitee: %+v", req.Invitee)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"resource": map[string]any{
				"uri":        "https://api.calendly.com/invitees/inv_1",
				"status":     "active",
				"start_time": "2026-04-15T10:00:00Z",
				"end_time":   "2026-04-15T10:30:00Z",
				"name":       "Jane Doe",
				"email":      "jane@example.com",
				"timezone":   "Asia/Calcutta",
			},
		})
	}))
	defer ts.Close()

	c := NewClient("token", nil, WithBaseURL(ts.URL))
	res, err := c.CreateInvitee(context.Background(), InviteeRequest{
		EventType: c.EventTypeURI("et_1"),
		StartTime: "2026-04-15T10:00:00Z",
		Invitee: Invitee{
			Name:               "Jane Doe",
			Email:              "jane@example.com",
			Timezone:           "Asia/Calcutta",
			TextReminderNumber: "+12345678901",
		},
	})
	if err != nil {
		t.Fatalf("CreateInvitee error: %v", err)
	}
	if res.URI != "https://api.calendly.com/invitees/inv_1" || res.Status != "active" {
		t.Fatalf("unexpected resource: %+v", res)
	}
}

func TestNonOKStatusReturnsAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"title":   "Invalid Argument",
			"message": "start_time is no longer available",
		})
	}))
	defer ts.Close()

	c := NewClient("token", nil, WithBaseURL(ts.URL))
	_, err := c.AvailableTimes(context.Background(), "et_1", time.Now(), time.Now().Add(time.Hour))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "start_time is no longer available" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestMissingAccessToken(t *testing.T) {
	c := NewClient("", nil)
	if _, err := c.ListEventTypes(context.Background(), "user"); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestEventTypeURIExpansion(t *testing.T) {
	c := NewClient("token", nil)
	if got := c.EventTypeURI("et_1"); got != "https://api.calendly.com/event_types/et_1" {
		t.Errorf("EventTypeURI = %q", got)
	}
	full := "https://api.calendly.com/event_types/et_2"
	if got := c.EventTypeURI(full); got != full {
		t.Errorf("full URI should pass through, got %q", got)
	}
}
