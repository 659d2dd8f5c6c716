package handlers

import (
	"net/http"
	"testing"

	"github.com/benvon/day-planner/internal/models"
)

func TestRunAgentByDisplayName(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)
	rr, env := doJSON(t, r, "POST", "/agents/run", `{"profile_id":"demo","agent":"WorkLifeAgent","date":"2025-06-02"}`)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("Expected 200, got %d %+v", rr.Code, env)
	}

	var data struct {
		Cards []models.Card `json:"cards"`
		Logs  []string      `json:"logs"`
	}
	decodeData(t, env, &data)
	if len(data.Cards) != 1 || data.Cards[0].Agent != "WorkLifeAgent" {
		t.Errorf("Cards = %+v", data.Cards)
	}
	if len(data.Logs) != 1 || data.Logs[0] != "ran work_life" {
		t.Errorf("Logs = %v", data.Logs)
	}
}

func TestRunAgentByRouterName(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)
	rr, env := doJSON(t, r, "POST", "/agents/run", `{"profile_id":"demo","agent":"fitness"}`)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("Expected 200, got %d %+v", rr.Code, env)
	}
	var data struct {
		Cards []models.Card `json:"cards"`
	}
	decodeData(t, env, &data)
	if len(data.Cards) != 1 || data.Cards[0].Agent != "FitnessAgent" {
		t.Errorf("Cards = %+v", data.Cards)
	}
}

func TestRunAgentErrors(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)

	rr, env := doJSON(t, r, "POST", "/agents/run", `{"profile_id":"demo","agent":"TimeTravelAgent"}`)
	if rr.Code != http.StatusBadRequest || env.Success {
		t.Errorf("Expected 400 for unknown agent, got %d", rr.Code)
	}
	if env.Message != "Unknown agent TimeTravelAgent" {
		t.Errorf("Message = %q", env.Message)
	}

	rr, env = doJSON(t, r, "POST", "/agents/run", `{"profile_id":"ghost","agent":"fitness"}`)
	if rr.Code != http.StatusNotFound || env.Success {
		t.Errorf("Expected 404 for unknown profile, got %d", rr.Code)
	}

	rr, env = doJSON(t, r, "POST", "/agents/run", `{"agent":"fitness"}`)
	if rr.Code != http.StatusBadRequest || env.Success {
		t.Errorf("Expected 400 for missing profile_id, got %d", rr.Code)
	}
}
