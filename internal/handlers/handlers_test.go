package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/planner"
	"github.com/benvon/day-planner/internal/store"
	"github.com/benvon/day-planner/internal/workflow"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// envelope mirrors the response wrapper for decoding in tests
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func testProfiles() *store.MemoryProfileStore {
	return store.NewMemoryProfileStore(map[string]*models.Profile{
		"demo": {
			Timezone: "Asia/Kolkata",
			HomeCity: "Bengaluru",
			Meta: models.ProfileMeta{
				Role:        "software engineer",
				PrefersHome: true,
				Family: []models.Person{
					{Name: "Asha", Relation: "spouse", Email: "asha@example.com", Likes: []string{"classical music"}},
				},
			},
			Days: map[string]map[string]string{
				"Day_1": {"09:00": "Standup sync", "14:00": "Design review"},
			},
		},
	})
}

// testRouter wires the full API surface against in-memory dependencies
func testRouter(t *testing.T) (*mux.Router, *store.MemoryPlanStore) {
	t.Helper()

	profiles := testProfiles()
	plans := store.NewMemoryPlanStore()
	calendar := collab.NewDemoCalendar()
	ctxEngine := planner.NewContextEngine(calendar)
	engine := workflow.NewEngine(calendar, collab.NewStubMessenger(nil), nil, zap.NewNop())

	r := mux.NewRouter()
	NewProfileHandler(profiles).RegisterRoutes(r.PathPrefix("/profiles").Subrouter())
	dayPlan := NewDayPlanHandler(profiles, ctxEngine, nil, zap.NewNop())
	dayPlan.RegisterRoutes(r.PathPrefix("/plan").Subrouter())
	r.HandleFunc("/plan/day/stream", dayPlan.StreamDay).Methods("GET")
	NewAgentHandler(profiles, ctxEngine).RegisterRoutes(r.PathPrefix("/agents").Subrouter())
	NewEventHandler(plans, profiles, engine).RegisterRoutes(r.PathPrefix("/events").Subrouter())
	NewNLHandler(plans, profiles, engine, ctxEngine, nil).RegisterRoutes(r)
	return r, plans
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode envelope from %q: %v", rr.Body.String(), err)
	}
	return rr, &env
}

func decodeData(t *testing.T, env *envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("Failed to decode data %q: %v", string(env.Data), err)
	}
}
