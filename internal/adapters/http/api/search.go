package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/accountable-india/civicrank/internal/adapters/ai"
)

// SearchDependencies defines the interface for grounded civic search.
type SearchDependencies interface {
	SearchCivic(ctx context.Context, query string) (ai.Answer, error)
}

// SearchHandler handles civic search requests.
type SearchHandler struct {
	deps SearchDependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearch handles GET /api/search?q= requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: q is required", ErrBadRequest))
		return
	}

	answer, err := h.deps.SearchCivic(r.Context(), query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
