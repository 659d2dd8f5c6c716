package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/planner"
	"github.com/benvon/day-planner/internal/planner/agents"
	"github.com/benvon/day-planner/internal/store"
	"github.com/benvon/day-planner/internal/validation"
	"github.com/gorilla/mux"
)

// AgentHandler runs a single agent on demand
type AgentHandler struct {
	profiles  store.ProfileStore
	ctxEngine *planner.ContextEngine
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(profiles store.ProfileStore, ctxEngine *planner.ContextEngine) *AgentHandler {
	return &AgentHandler{profiles: profiles, ctxEngine: ctxEngine}
}

// RegisterRoutes registers agent routes on the given router.
// The router should already have the /agents prefix.
func (h *AgentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/run", h.RunAgent).Methods("POST")
}

// RunAgentRequest represents a single-agent run request. Agent accepts
// either the external identifier (WorkLifeAgent) or the router name
// (work_life).
type RunAgentRequest struct {
	ProfileID string `json:"profile_id" validate:"required,min=1,max=100"`
	Agent     string `json:"agent" validate:"required,min=1,max=100"`
	Date      string `json:"date,omitempty" validate:"omitempty,iso_date"`
}

// RunAgent executes one agent against the profile's day context
func (h *AgentHandler) RunAgent(w http.ResponseWriter, r *http.Request) {
	var req RunAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON payload")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	name := req.Agent
	if mapped, ok := agents.DisplayNames[name]; ok {
		name = mapped
	}
	if !planner.KnownAgents[name] {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Unknown agent "+req.Agent)
		return
	}

	profile, err := h.profiles.Get(r.Context(), req.ProfileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Unknown profile_id "+req.ProfileID)
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load profile")
		return
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	dayCtx, err := h.ctxEngine.DeriveContext(profile, date)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to derive day context")
		return
	}

	cards := []models.Card{}
	if card, ok := agents.Run(name, profile, &agents.Request{Date: date, Context: dayCtx}); ok && card != nil {
		cards = append(cards, *card)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"cards": cards,
		"logs":  []string{"ran " + name},
	})
}
