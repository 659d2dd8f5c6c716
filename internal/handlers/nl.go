package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/nl"
	"github.com/benvon/day-planner/internal/planner"
	"github.com/benvon/day-planner/internal/planner/agents"
	"github.com/benvon/day-planner/internal/services/ai"
	"github.com/benvon/day-planner/internal/store"
	"github.com/benvon/day-planner/internal/validation"
	"github.com/benvon/day-planner/internal/workflow"
	"github.com/gorilla/mux"
)

// NLHandler routes free-text commands to either the event workflow or a
// single agent run
type NLHandler struct {
	plans     store.PlanStore
	profiles  store.ProfileStore
	engine    *workflow.Engine
	ctxEngine *planner.ContextEngine
	provider  ai.Provider
}

// NewNLHandler creates a new natural-language handler. provider may be nil;
// interpretation then relies on keyword rules alone.
func NewNLHandler(plans store.PlanStore, profiles store.ProfileStore, engine *workflow.Engine, ctxEngine *planner.ContextEngine, provider ai.Provider) *NLHandler {
	return &NLHandler{plans: plans, profiles: profiles, engine: engine, ctxEngine: ctxEngine, provider: provider}
}

// RegisterRoutes registers the NL route on the given router
func (h *NLHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/nl", h.Command).Methods("POST")
}

// NLRequest represents a natural-language command. Target is "event",
// "agent" or "auto" (default); auto picks by interpreted intent.
type NLRequest struct {
	ProfileID string `json:"profile_id" validate:"required,min=1,max=100"`
	Utterance string `json:"utterance" validate:"required,min=1,max=2000"`
	ThreadID  string `json:"thread_id,omitempty"`
	Target    string `json:"target,omitempty" validate:"omitempty,oneof=auto event agent"`
}

// NLResponse represents the outcome of a natural-language command
type NLResponse struct {
	Summary  string        `json:"summary"`
	ThreadID string        `json:"thread_id,omitempty"`
	Plan     *models.Plan  `json:"plan,omitempty"`
	Cards    []models.Card `json:"cards,omitempty"`
}

// Command interprets an utterance and executes it
func (h *NLHandler) Command(w http.ResponseWriter, r *http.Request) {
	var req NLRequest
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

	cmd := nl.Interpret(r.Context(), h.provider, req.Utterance)

	target := req.Target
	if target == "" || target == "auto" {
		if nl.PlanIntents[cmd.Type] {
			target = "event"
		} else {
			target = "agent"
		}
	}

	if target == "event" {
		h.eventCommand(w, r, &req, profile, cmd)
		return
	}
	h.agentCommand(w, r, &req, profile)
}

// eventCommand applies the interpreted command to the plan thread, creating
// the thread first when none exists yet
func (h *NLHandler) eventCommand(w http.ResponseWriter, r *http.Request, req *NLRequest, profile *models.Profile, cmd *ai.Command) {
	threadID := req.ThreadID
	summary := ""

	planExists := false
	if threadID != "" {
		if _, err := h.plans.Get(r.Context(), threadID); err == nil {
			planExists = true
		} else if !errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load plan")
			return
		}
	}

	if !planExists {
		params := workflow.StartParams{
			HonoreeName: cmd.HonoreeName,
			EventDate:   cmd.EventDate,
			Budget:      workflow.Budget(cmd.Budget),
			Invitees:    cmd.Emails,
		}
		plan, err := h.engine.StartPlan(r.Context(), req.ProfileID, profile, params)
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
		threadID = plan.ThreadID
		summary = "Started event plan."

		if cmd.Type == nl.IntentStartPlan {
			respondJSON(w, http.StatusOK, NLResponse{Summary: summary, ThreadID: threadID, Plan: plan})
			return
		}
	}

	action, actionSummary, ok := commandToAction(cmd)
	if !ok {
		plan, err := h.plans.Get(r.Context(), threadID)
		if err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load plan")
			return
		}
		if summary == "" {
			summary = "No changes."
		}
		respondJSON(w, http.StatusOK, NLResponse{Summary: summary, ThreadID: threadID, Plan: plan})
		return
	}

	plan, err := h.plans.Update(r.Context(), threadID, func(plan *models.Plan) error {
		return h.engine.ApplyAction(r.Context(), plan, profile, action)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondJSONError(w, http.StatusNotFound, "Not Found", "No plan found for thread_id "+threadID)
		case errors.Is(err, workflow.ErrValidation):
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		default:
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update plan")
		}
		return
	}
	if summary != "" {
		summary += " " + actionSummary
	} else {
		summary = actionSummary
	}
	respondJSON(w, http.StatusOK, NLResponse{Summary: summary, ThreadID: threadID, Plan: plan})
}

// agentCommand maps the utterance to an agent and runs it once
func (h *NLHandler) agentCommand(w http.ResponseWriter, r *http.Request, req *NLRequest, profile *models.Profile) {
	name := nl.MatchAgent(req.Utterance)
	if name == "" {
		respondJSON(w, http.StatusOK, NLResponse{Summary: "No matching agent.", ThreadID: req.ThreadID})
		return
	}

	date := time.Now().Format("2006-01-02")
	dayCtx, err := h.ctxEngine.DeriveContext(profile, date)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to derive day context")
		return
	}

	cards := []models.Card{}
	if card, ok := agents.Run(name, profile, &agents.Request{Date: date, Context: dayCtx}); ok && card != nil {
		cards = append(cards, *card)
	}
	respondJSON(w, http.StatusOK, NLResponse{Summary: "Ran " + name + ".", ThreadID: req.ThreadID, Cards: cards})
}

// commandToAction converts an interpreted command into a workflow action
// plus a human-readable summary. ok is false for intents with no
// corresponding edit.
func commandToAction(cmd *ai.Command) (workflow.Action, string, bool) {
	switch cmd.Type {
	case nl.IntentEditInviteTone:
		style := cmd.Style
		if style == "" {
			style = "friendly"
		}
		brevity := cmd.Brevity
		if brevity == "" {
			brevity = "medium"
		}
		return workflow.Action{Name: workflow.ActionEditInviteTone, Style: style, Brevity: brevity},
			fmt.Sprintf("Updated invite tone to %s/%s.", style, brevity), true
	case nl.IntentEditInviteText:
		if cmd.Template == "" {
			return workflow.Action{}, "", false
		}
		return workflow.Action{Name: workflow.ActionEditInviteText, Template: cmd.Template},
			"Rewrote invite template.", true
	case nl.IntentChangeDate:
		if cmd.EventDate == "" {
			return workflow.Action{}, "", false
		}
		return workflow.Action{Name: workflow.ActionChangeDate, Date: cmd.EventDate}, "Changed date.", true
	case nl.IntentChangeVenue:
		if cmd.Venue == "" {
			return workflow.Action{}, "", false
		}
		return workflow.Action{Name: workflow.ActionChangeVenue, Venue: cmd.Venue}, "Changed venue.", true
	case nl.IntentAdjustBudget:
		if cmd.Budget <= 0 {
			return workflow.Action{}, "", false
		}
		return workflow.Action{Name: workflow.ActionAdjustBudget, Budget: workflow.Budget(cmd.Budget)},
			"Adjusted budget.", true
	case nl.IntentAddInvitees:
		if len(cmd.Emails) == 0 {
			return workflow.Action{}, "", false
		}
		return workflow.Action{Name: workflow.ActionAddInvitees, Invitees: cmd.Emails},
			fmt.Sprintf("Added %d invitees.", len(cmd.Emails)), true
	case nl.IntentRemoveInvitees:
		if len(cmd.Emails) == 0 {
			return workflow.Action{}, "", false
		}
		return workflow.Action{Name: workflow.ActionRemoveInvitees, Invitees: cmd.Emails},
			fmt.Sprintf("Removed %d invitees.", len(cmd.Emails)), true
	default:
		return workflow.Action{}, "", false
	}
}
