package api

import (
	"context"
	"net/http"

	"github.com/accountable-india/civicrank/internal/adapters/ai"
)

// InsightsDependencies defines the interface for dashboard insights.
type InsightsDependencies interface {
	Insights(ctx context.Context, userName string) ([]ai.Insight, bool, error)
}

// InsightsHandler handles insight requests.
type InsightsHandler struct {
	deps InsightsDependencies
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps InsightsDependencies) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// insightsResponse carries the insight list and whether the canned
// fallback was served.
type insightsResponse struct {
	Insights []ai.Insight `json:"insights"`
	Degraded bool         `json:"degraded"`
}

// HandleInsights handles GET /api/insights?user= requests.
func (h *InsightsHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	user := r.URL.Query().Get("user")
	if user == "" {
		user = "Citizen"
	}

	insights, degraded, err := h.deps.Insights(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insightsResponse{Insights: insights, Degraded: degraded})
}
