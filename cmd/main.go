package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accountable-india/civicrank/internal/adapters/ai"
	"github.com/accountable-india/civicrank/internal/adapters/http/api"
	"github.com/accountable-india/civicrank/internal/adapters/http/swagger"
	"github.com/accountable-india/civicrank/internal/adapters/repository"
	app "github.com/accountable-india/civicrank/internal/app"
	"github.com/accountable-india/civicrank/internal/config"
	"github.com/accountable-india/civicrank/internal/domain/scoring"
	"github.com/accountable-india/civicrank/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 60 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Pick the dataset store: SQLite when a path is configured, memory
	// otherwise.
	var kv repository.KV
	if cfg.DBPath != "" {
		sqlite, err := repository.NewSQLiteKV(ctx, cfg.DBPath)
		if err != nil {
			os.Stderr.WriteString("failed to open database: " + err.Error() + "\n")
			return
		}
		defer func() { _ = sqlite.Close() }()
		kv = sqlite
		log.Info(ctx, "using sqlite store", logger.String("path", cfg.DBPath))
	} else {
		kv = repository.NewMemoryKV()
		log.Warn(ctx, "no db_path configured; datasets will not survive restarts")
	}

	opts := []app.Option{
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
		app.WithScoringOptions(
			scoring.WithCompositeWeights(cfg.BillWeight, cfg.DebateWeight, cfg.QuestionWeight, cfg.CompositeDivisor),
			scoring.WithOverallBlend(cfg.AttendanceShare, cfg.CompositeShare, cfg.RatingShare),
		),
	}

	// Wire the generative collaborator when a key is configured.
	if cfg.AIAPIKey != "" {
		aiOpts := []ai.Option{ai.WithLogger(log.Named("ai"))}
		if cfg.AIModel != "" {
			aiOpts = append(aiOpts, ai.WithModel(cfg.AIModel))
		}
		if cfg.AITimeoutSeconds > 0 {
			aiOpts = append(aiOpts, ai.WithTimeout(time.Duration(cfg.AITimeoutSeconds)*time.Second))
		}
		collaborator, err := ai.New(ctx, cfg.AIAPIKey, aiOpts...)
		if err != nil {
			os.Stderr.WriteString("failed to initialize collaborator: " + err.Error() + "\n")
			return
		}
		opts = append(opts, app.WithCollaborator(collaborator))
	} else {
		log.Warn(ctx, "no ai_api_key configured; discovery, comparisons and insights are disabled")
	}

	svc := app.New(kv, opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater refreshes the operational gauges on a fixed
// interval. GetStats updates the metrics as a side effect.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
