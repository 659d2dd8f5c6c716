package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/planner"
	"github.com/benvon/day-planner/internal/planner/agents"
	"github.com/benvon/day-planner/internal/store"
	"github.com/benvon/day-planner/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DayPlanHandler produces the multi-agent day plan
type DayPlanHandler struct {
	profiles  store.ProfileStore
	ctxEngine *planner.ContextEngine
	bullets   agents.BulletSource
	logger    *zap.Logger
}

// NewDayPlanHandler creates a new day plan handler. bullets may be nil when
// no AI provider is configured.
func NewDayPlanHandler(profiles store.ProfileStore, ctxEngine *planner.ContextEngine, bullets agents.BulletSource, logger *zap.Logger) *DayPlanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DayPlanHandler{profiles: profiles, ctxEngine: ctxEngine, bullets: bullets, logger: logger}
}

// RegisterRoutes registers the non-streaming day plan route.
// The router should already have the /plan prefix.
func (h *DayPlanHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/day", h.PlanDay).Methods("POST")
}

// PlanDayRequest represents a day plan request
type PlanDayRequest struct {
	ProfileID string `json:"profile_id" validate:"required,min=1,max=100"`
	Date      string `json:"date,omitempty" validate:"omitempty,iso_date"`
}

// PlanDayResponse represents the assembled day plan
type PlanDayResponse struct {
	Date      string        `json:"date"`
	ProfileID string        `json:"profile_id"`
	Timezone  string        `json:"timezone"`
	Cards     []models.Card `json:"cards"`
	Rationale string        `json:"rationale"`
}

// PlanDay runs the supervisor and the routed agents for one day
func (h *DayPlanHandler) PlanDay(w http.ResponseWriter, r *http.Request) {
	var req PlanDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON payload")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	profile, dayCtx, order, err := h.route(r, req.ProfileID, &req.Date)
	if err != nil {
		h.respondRouteError(w, req.ProfileID, err)
		return
	}

	cards := []models.Card{agents.SupervisorInsights(r.Context(), h.bullets, profile, dayCtx)}
	agentReq := &agents.Request{Date: req.Date, Context: dayCtx}
	for _, name := range order {
		if card, ok := agents.Run(name, profile, agentReq); ok && card != nil {
			cards = append(cards, *card)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Priority < cards[j].Priority })

	sequence := append([]string{"supervisor"}, order...)
	respondJSON(w, http.StatusOK, PlanDayResponse{
		Date:      req.Date,
		ProfileID: req.ProfileID,
		Timezone:  timezoneOf(profile),
		Cards:     cards,
		Rationale: fmt.Sprintf("Profile role=%s, night_owl=%v, load=%s; sequence=%v", dayCtx.Role, dayCtx.NightOwl, dayCtx.DayLoad, sequence),
	})
}

// StreamDay is the SSE variant of PlanDay: one card event per agent, then a
// done event with the planned sequence. Registered outside the timeout
// middleware so the response writer stays flushable.
func (h *DayPlanHandler) StreamDay(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Streaming unsupported")
		return
	}

	profileID := r.URL.Query().Get("profile_id")
	if profileID == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "profile_id is required")
		return
	}
	date := r.URL.Query().Get("date")
	if date != "" {
		if err := validation.ValidateDate(date); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}

	profile, dayCtx, order, err := h.route(r, profileID, &date)
	if err != nil {
		h.respondRouteError(w, profileID, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sup := agents.SupervisorInsights(r.Context(), h.bullets, profile, dayCtx)
	writeSSE(w, "card", map[string]any{"node": "supervisor", "cards": []models.Card{sup}})
	flusher.Flush()

	agentReq := &agents.Request{Date: date, Context: dayCtx}
	for _, name := range order {
		select {
		case <-r.Context().Done():
			return
		default:
		}
		card, ok := agents.Run(name, profile, agentReq)
		if !ok || card == nil {
			continue
		}
		writeSSE(w, "card", map[string]any{"node": name, "cards": []models.Card{*card}})
		flusher.Flush()
	}

	writeSSE(w, "done", map[string]any{"planned_sequence": append([]string{"supervisor"}, order...)})
	flusher.Flush()
}

// route loads the profile, fills in a missing date, derives the day context
// and decides the agent order
func (h *DayPlanHandler) route(r *http.Request, profileID string, date *string) (*models.Profile, *models.DayContext, []string, error) {
	profile, err := h.profiles.Get(r.Context(), profileID)
	if err != nil {
		return nil, nil, nil, err
	}
	if *date == "" {
		*date = time.Now().Format("2006-01-02")
	}
	dayCtx, err := h.ctxEngine.DeriveContext(profile, *date)
	if err != nil {
		return nil, nil, nil, err
	}
	return profile, dayCtx, planner.RouteOrder(profile, dayCtx), nil
}

func (h *DayPlanHandler) respondRouteError(w http.ResponseWriter, profileID string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Unknown profile_id "+profileID)
		return
	}
	h.logger.Warn("day_plan_failed", zap.String("profile_id", profileID), zap.Error(err))
	respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to assemble day plan")
}

func timezoneOf(profile *models.Profile) string {
	if profile != nil && profile.Timezone != "" {
		return profile.Timezone
	}
	return "Asia/Kolkata"
}

// writeSSE writes one server-sent event with a JSON payload
func writeSSE(w http.ResponseWriter, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
