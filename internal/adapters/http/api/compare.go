package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/accountable-india/civicrank/internal/adapters/ai"
)

// CompareDependencies defines the interface for leader comparisons.
type CompareDependencies interface {
	Compare(ctx context.Context, leftID, rightID string) (ai.Answer, error)
}

// CompareHandler handles comparison requests.
type CompareHandler struct {
	deps CompareDependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps CompareDependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

// compareRequest mirrors the request body for POST /api/compare.
type compareRequest struct {
	LeftID  string `json:"leftId"`
	RightID string `json:"rightId"`
}

// HandleCompare handles POST /api/compare requests.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if req.LeftID == "" || req.RightID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: leftId and rightId are required", ErrBadRequest))
		return
	}

	answer, err := h.deps.Compare(r.Context(), req.LeftID, req.RightID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
