// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/accountable-india/civicrank/internal/adapters/ai"
	jobqueue "github.com/accountable-india/civicrank/internal/adapters/mq/queue"
	service "github.com/accountable-india/civicrank/internal/app"
	"github.com/accountable-india/civicrank/internal/domain/merge"
	"github.com/accountable-india/civicrank/internal/domain/model"
	"github.com/accountable-india/civicrank/internal/domain/ranking"
	"github.com/accountable-india/civicrank/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Leaderboard(ctx context.Context, mode, scope string, limit int) ([]ranking.Entry, error)
	Leaders(ctx context.Context) model.Roster
	SubmitRating(ctx context.Context, id string, value int) (model.Leader, error)
	ToggleFollow(ctx context.Context, id string) (model.Leader, error)
	Discover(ctx context.Context, name string) error
	Promises(ctx context.Context) []model.Promise
	RefreshPromises(ctx context.Context, query string) error
	Compare(ctx context.Context, leftID, rightID string) (ai.Answer, error)
	Insights(ctx context.Context, userName string) ([]ai.Insight, bool, error)
	SearchCivic(ctx context.Context, query string) (ai.Answer, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	leadersHandler     *LeadersHandler
	discoverHandler    *DiscoverHandler
	promisesHandler    *PromisesHandler
	compareHandler     *CompareHandler
	insightsHandler    *InsightsHandler
	searchHandler      *SearchHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(deps),
		leadersHandler:     NewLeadersHandler(deps),
		discoverHandler:    NewDiscoverHandler(deps),
		promisesHandler:    NewPromisesHandler(deps),
		compareHandler:     NewCompareHandler(deps),
		insightsHandler:    NewInsightsHandler(deps),
		searchHandler:      NewSearchHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/leaders", MetricsMiddleware(s.leadersHandler.HandleListLeaders, "leaders"))
	mux.HandleFunc("/api/leaders/discover", MetricsMiddleware(s.discoverHandler.HandleDiscover, "discover"))
	mux.HandleFunc("/api/leaders/", MetricsMiddleware(s.leadersHandler.HandleLeaderAction, "leader_action"))
	mux.HandleFunc("/api/promises", MetricsMiddleware(s.promisesHandler.HandleListPromises, "promises"))
	mux.HandleFunc("/api/promises/refresh", MetricsMiddleware(s.promisesHandler.HandleRefresh, "promises_refresh"))
	mux.HandleFunc("/api/compare", MetricsMiddleware(s.compareHandler.HandleCompare, "compare"))
	mux.HandleFunc("/api/insights", MetricsMiddleware(s.insightsHandler.HandleInsights, "insights"))
	mux.HandleFunc("/api/search", MetricsMiddleware(s.searchHandler.HandleSearch, "search"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates domain errors into HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLeaderNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, model.ErrInvalidRating),
		errors.Is(err, scoring.ErrUnknownMode),
		errors.Is(err, merge.ErrMissingName):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, merge.ErrDuplicate),
		errors.Is(err, service.ErrRefreshInFlight):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, jobqueue.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
