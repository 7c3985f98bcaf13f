package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/accountable-india/civicrank/internal/domain/model"
)

// PromiseDependencies defines the interface for the promise tracker.
type PromiseDependencies interface {
	Promises(ctx context.Context) []model.Promise
	RefreshPromises(ctx context.Context, query string) error
}

// PromisesHandler handles promise tracker requests.
type PromisesHandler struct {
	deps PromiseDependencies
}

// NewPromisesHandler creates a new promises handler.
func NewPromisesHandler(deps PromiseDependencies) *PromisesHandler {
	return &PromisesHandler{deps: deps}
}

// HandleListPromises handles GET /api/promises requests.
func (h *PromisesHandler) HandleListPromises(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	promises := h.deps.Promises(r.Context())
	if promises == nil {
		promises = []model.Promise{}
	}
	writeJSON(w, http.StatusOK, promises)
}

// refreshRequest mirrors the request body for POST /api/promises/refresh.
type refreshRequest struct {
	Query string `json:"query"`
}

// HandleRefresh handles POST /api/promises/refresh requests. Verification
// runs asynchronously; 202 means the run was queued.
func (h *PromisesHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req refreshRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}
	}

	if err := h.deps.RefreshPromises(r.Context(), req.Query); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
