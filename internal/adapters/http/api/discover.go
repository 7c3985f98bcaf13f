package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DiscoverDependencies defines the interface for scheduling discoveries.
type DiscoverDependencies interface {
	Discover(ctx context.Context, name string) error
}

// DiscoverHandler handles discovery requests.
type DiscoverHandler struct {
	deps DiscoverDependencies
}

// NewDiscoverHandler creates a new discover handler.
func NewDiscoverHandler(deps DiscoverDependencies) *DiscoverHandler {
	return &DiscoverHandler{deps: deps}
}

// discoverRequest mirrors the request body for POST /api/leaders/discover.
type discoverRequest struct {
	Name string `json:"name"`
}

type ackResponse struct {
	Status string `json:"status"`
}

// HandleDiscover handles POST /api/leaders/discover requests. The lookup
// runs asynchronously; 202 means the request was queued.
func (h *DiscoverHandler) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	if err := h.deps.Discover(r.Context(), req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
