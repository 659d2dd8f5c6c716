package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	respondJSON(rr, http.StatusCreated, map[string]string{"key": "value"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp["success"] != true {
		t.Error("Expected success true")
	}
	if resp["timestamp"] == "" {
		t.Error("Expected a timestamp")
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["key"] != "value" {
		t.Errorf("Data = %v", resp["data"])
	}
}

func TestRespondJSONError(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	respondJSONError(rr, http.StatusBadRequest, "Bad Request", "invalid input")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Status = %d", rr.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp["success"] != false || resp["error"] != "Bad Request" || resp["message"] != "invalid input" {
		t.Errorf("Response = %v", resp)
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	t.Parallel()

	short := "boom"
	if got := sanitizeErrorMessage(short); got != short {
		t.Errorf("Short message changed: %q", got)
	}

	long := strings.Repeat("x", 300)
	got := sanitizeErrorMessage(long)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected 200 chars plus ellipsis, got %d chars", len(got))
	}
}
