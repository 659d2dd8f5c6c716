package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

const maxErrorMessageLength = 200

type successEnvelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

type errorEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// respondJSON writes data wrapped in the success envelope.
func respondJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, successEnvelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondJSONError writes the error envelope. Messages are clipped so
// internal detail does not leak wholesale into responses.
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	writeEnvelope(w, status, errorEnvelope{
		Error:     errorType,
		Message:   sanitizeErrorMessage(message),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeEnvelope(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func sanitizeErrorMessage(message string) string {
	if len(message) > maxErrorMessageLength {
		return message[:maxErrorMessageLength] + "..."
	}
	return message
}
