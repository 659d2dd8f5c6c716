package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/store"
	"github.com/benvon/day-planner/internal/validation"
	"github.com/gorilla/mux"
)

// ProfileHandler handles profile requests
type ProfileHandler struct {
	profiles store.ProfileStore
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterRoutes registers profile routes on the given router.
// The router should already have the /profiles prefix.
func (h *ProfileHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListProfiles).Methods("GET")
	r.HandleFunc("", h.UpsertProfile).Methods("POST")
	r.HandleFunc("/{id}", h.GetProfile).Methods("GET")
}

// UpsertProfileRequest represents an upsert profile request
type UpsertProfileRequest struct {
	ProfileID string          `json:"profile_id" validate:"required,min=1,max=100"`
	Profile   *models.Profile `json:"profile" validate:"required"`
}

// ListProfiles lists the known profile ids
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ids, err := h.profiles.List(r.Context())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to list profiles")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"profiles": ids})
}

// GetProfile returns a single profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	profile, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Unknown profile_id "+id)
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"profile_id": id, "profile": profile})
}

// UpsertProfile creates or replaces a profile
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON payload")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if err := h.profiles.Upsert(r.Context(), req.ProfileID, req.Profile); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to store profile")
		return
	}

	ids, err := h.profiles.List(r.Context())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to list profiles")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "count": len(ids)})
}
