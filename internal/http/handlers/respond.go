// Package handlers exposes the booking wizard's HTTP endpoints: slot lookup,
// booking submission, and provider metadata proxies.
package handlers

import (
	"encoding/json"
	"net/http"
)

// Responses share the {success, data | error} envelope the booking wizard UI
// expects.

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func respondError(w http.ResponseWriter, status int, message string, extra map[string]interface{}) {
	body := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	for k, v := range extra {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
