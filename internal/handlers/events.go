package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/store"
	"github.com/benvon/day-planner/internal/validation"
	"github.com/benvon/day-planner/internal/workflow"
	"github.com/gorilla/mux"
)

// EventHandler manages surprise-event plan threads
type EventHandler struct {
	plans    store.PlanStore
	profiles store.ProfileStore
	engine   *workflow.Engine
}

// NewEventHandler creates a new event handler
func NewEventHandler(plans store.PlanStore, profiles store.ProfileStore, engine *workflow.Engine) *EventHandler {
	return &EventHandler{plans: plans, profiles: profiles, engine: engine}
}

// RegisterRoutes registers event routes on the given router.
// The router should already have the /events prefix.
func (h *EventHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.StartEvent).Methods("POST")
	r.HandleFunc("/{threadID}", h.GetEvent).Methods("GET")
	r.HandleFunc("/{threadID}/actions", h.ApplyAction).Methods("POST")
	r.HandleFunc("/{threadID}/tick", h.Tick).Methods("POST")
}

// StartEventRequest represents a start event request
type StartEventRequest struct {
	ProfileID string `json:"profile_id" validate:"required,min=1,max=100"`
	workflow.StartParams
}

// StartEvent creates a new plan thread and runs the pipeline once
func (h *EventHandler) StartEvent(w http.ResponseWriter, r *http.Request) {
	var req StartEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON payload")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
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

	plan, err := h.engine.StartPlan(r.Context(), req.ProfileID, profile, req.StartParams)
	if err != nil {
		if errors.Is(err, workflow.ErrValidation) {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to start plan")
		return
	}
	if err := h.plans.Create(r.Context(), plan); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to store plan")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"thread_id": plan.ThreadID, "plan": plan})
}

// GetEvent returns the plan for a thread
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["threadID"]
	plan, err := h.plans.Get(r.Context(), threadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "No plan found for thread_id "+threadID)
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load plan")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"thread_id": threadID, "plan": plan})
}

// ApplyAction mutates a plan and re-runs the pipeline
func (h *EventHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["threadID"]

	var action workflow.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON payload")
		return
	}
	if err := validation.Validate.Struct(&action); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	plan, err := h.plans.Update(r.Context(), threadID, func(plan *models.Plan) error {
		profile, perr := h.profiles.Get(r.Context(), plan.ProfileID)
		if perr != nil {
			return perr
		}
		return h.engine.ApplyAction(r.Context(), plan, profile, action)
	})
	if err != nil {
		h.respondUpdateError(w, threadID, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"thread_id": threadID, "plan": plan})
}

// TickRequest represents a scheduler tick request
type TickRequest struct {
	Now      string `json:"now,omitempty" validate:"omitempty"`
	MaxSteps int    `json:"max_steps,omitempty" validate:"omitempty,min=0"`
}

// Tick advances the plan's home-ops timeline, executing due tasks
func (h *EventHandler) Tick(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["threadID"]

	// An empty body means "use defaults"
	var req TickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON payload")
		return
	}

	now := time.Now().UTC()
	if req.Now != "" {
		parsed, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "now must be RFC3339")
			return
		}
		now = parsed
	}

	var processed []models.TimelineTask
	var remaining int
	plan, err := h.plans.Update(r.Context(), threadID, func(plan *models.Plan) error {
		processed, remaining = workflow.Tick(plan, now, req.MaxSteps)
		return nil
	})
	if err != nil {
		h.respondUpdateError(w, threadID, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"thread_id": threadID,
		"processed": processed,
		"remaining": remaining,
		"plan":      plan,
	})
}

func (h *EventHandler) respondUpdateError(w http.ResponseWriter, threadID string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondJSONError(w, http.StatusNotFound, "Not Found", "No plan found for thread_id "+threadID)
	case errors.Is(err, workflow.ErrValidation):
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update plan")
	}
}
