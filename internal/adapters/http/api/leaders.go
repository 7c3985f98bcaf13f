package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/accountable-india/civicrank/internal/domain/model"
)

// LeaderDependencies defines the interface for roster reads and updates.
type LeaderDependencies interface {
	Leaders(ctx context.Context) model.Roster
	SubmitRating(ctx context.Context, id string, value int) (model.Leader, error)
	ToggleFollow(ctx context.Context, id string) (model.Leader, error)
}

// LeadersHandler handles roster listing and per-leader actions.
type LeadersHandler struct {
	deps LeaderDependencies
}

// NewLeadersHandler creates a new leaders handler.
func NewLeadersHandler(deps LeaderDependencies) *LeadersHandler {
	return &LeadersHandler{deps: deps}
}

// HandleListLeaders handles GET /api/leaders requests.
func (h *LeadersHandler) HandleListLeaders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Leaders(r.Context()))
}

// ratingRequest mirrors the request body for POST /api/leaders/{id}/rating.
type ratingRequest struct {
	Value int `json:"value"`
}

// HandleLeaderAction handles POST /api/leaders/{id}/rating and
// POST /api/leaders/{id}/follow requests.
func (h *LeadersHandler) HandleLeaderAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/leaders/")
	id, action, ok := strings.Cut(rest, "/")
	if !ok || id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: expected /api/leaders/{id}/{action}", ErrBadRequest))
		return
	}

	switch action {
	case "rating":
		var req ratingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}
		leader, err := h.deps.SubmitRating(r.Context(), id, req.Value)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, leader)
	case "follow":
		leader, err := h.deps.ToggleFollow(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, leader)
	default:
		http.NotFound(w, r)
	}
}
