package booking

import (
	"fmt"
	"strings"
)

// ValidationError reports caller input that fails a submission precondition.
// Always recoverable by re-submitting corrected input; never retried
// automatically.
type ValidationError struct {
	// MissingFields lists required fields that were empty.
	MissingFields []string
	// Field names the single malformed field (email, phone) when the input
	// was present but invalid.
	Field string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return "booking: missing required fields: " + strings.Join(e.MissingFields, ", ")
	}
	switch e.Field {
	case "email":
		return "booking: invalid email format"
	case "phone":
		return "booking: phone number must have at least 10 digits"
	default:
		return "booking: invalid request"
	}
}

// RemoteError reports a failed provider call during booking submission. The
// provider's message is passed through when present. Not retried
// automatically; the caller decides whether to prompt a retry.
type RemoteError struct {
	Message    string
	StatusCode int
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("booking: provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return "booking: provider error: " + e.Message
}
