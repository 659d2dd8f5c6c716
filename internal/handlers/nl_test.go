package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestNLStartsPlan(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)
	rr, env := doJSON(t, r, "POST", "/nl", `{"profile_id":"demo","utterance":"plan a surprise birthday for Asha"}`)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("Expected 200, got %d %+v", rr.Code, env)
	}

	var data NLResponse
	decodeData(t, env, &data)
	if data.Summary != "Started event plan." {
		t.Errorf("Summary = %q", data.Summary)
	}
	if data.ThreadID == "" || data.Plan == nil {
		t.Fatalf("Incomplete response: %+v", data)
	}
	if data.Plan.HonoreeName != "Asha" {
		t.Errorf("HonoreeName = %q", data.Plan.HonoreeName)
	}
}

func TestNLEditsExistingPlan(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)
	created := startTestPlan(t, r, `{"profile_id":"demo"}`)

	body := `{"profile_id":"demo","utterance":"set the budget to 12k","thread_id":"` + created.ThreadID + `"}`
	rr, env := doJSON(t, r, "POST", "/nl", body)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("Expected 200, got %d %+v", rr.Code, env)
	}

	var data NLResponse
	decodeData(t, env, &data)
	if data.Summary != "Adjusted budget." {
		t.Errorf("Summary = %q", data.Summary)
	}
	if data.Plan == nil || data.Plan.Budget != 12000 {
		t.Errorf("Plan budget not updated: %+v", data.Plan)
	}
}

func TestNLToneSummary(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)
	created := startTestPlan(t, r, `{"profile_id":"demo"}`)

	body := `{"profile_id":"demo","utterance":"make the tone playful and short","thread_id":"` + created.ThreadID + `"}`
	_, env := doJSON(t, r, "POST", "/nl", body)
	var data NLResponse
	decodeData(t, env, &data)
	if data.Summary != "Updated invite tone to playful/short." {
		t.Errorf("Summary = %q", data.Summary)
	}
	if !strings.Contains(data.Plan.InviteTemplate, "🎉") {
		t.Errorf("Template = %q", data.Plan.InviteTemplate)
	}
}

func TestNLRunsAgent(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)
	rr, env := doJSON(t, r, "POST", "/nl", `{"profile_id":"demo","utterance":"how is traffic today"}`)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("Expected 200, got %d %+v", rr.Code, env)
	}

	var data NLResponse
	decodeData(t, env, &data)
	if data.Summary != "Ran traffic." {
		t.Errorf("Summary = %q", data.Summary)
	}
	if len(data.Cards) != 1 || data.Cards[0].Agent != "TrafficAgent" {
		t.Errorf("Cards = %+v", data.Cards)
	}
}

func TestNLNoMatchingAgent(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)
	_, env := doJSON(t, r, "POST", "/nl", `{"profile_id":"demo","utterance":"completely unrelated question","target":"agent"}`)
	var data NLResponse
	decodeData(t, env, &data)
	if data.Summary != "No matching agent." {
		t.Errorf("Summary = %q", data.Summary)
	}
	if len(data.Cards) != 0 {
		t.Errorf("Cards = %+v", data.Cards)
	}
}

func TestNLValidation(t *testing.T) {
	t.Parallel()

	r, _ := testRouter(t)

	rr, env := doJSON(t, r, "POST", "/nl", `{"profile_id":"demo","utterance":"hi","target":"everything"}`)
	if rr.Code != http.StatusBadRequest || env.Success {
		t.Errorf("Expected 400 for bad target, got %d", rr.Code)
	}

	rr, env = doJSON(t, r, "POST", "/nl", `{"profile_id":"ghost","utterance":"plan a party"}`)
	if rr.Code != http.StatusNotFound || env.Success {
		t.Errorf("Expected 404 for unknown profile, got %d", rr.Code)
	}

	rr, env = doJSON(t, r, "POST", "/nl", `{"profile_id":"demo"}`)
	if rr.Code != http.StatusBadRequest || env.Success {
		t.Errorf("Expected 400 for missing utterance, got %d", rr.Code)
	}
}
