// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/accountable-india/civicrank/internal/adapters/ai"
	jobqueue "github.com/accountable-india/civicrank/internal/adapters/mq/queue"
	workerpool "github.com/accountable-india/civicrank/internal/adapters/mq/worker"
	"github.com/accountable-india/civicrank/internal/adapters/repository"
	"github.com/accountable-india/civicrank/internal/domain/dedupe"
	"github.com/accountable-india/civicrank/internal/domain/merge"
	"github.com/accountable-india/civicrank/internal/domain/model"
	"github.com/accountable-india/civicrank/internal/domain/ranking"
	"github.com/accountable-india/civicrank/internal/domain/scoring"
	"github.com/accountable-india/civicrank/pkg/logger"
	"github.com/accountable-india/civicrank/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWorkerCount = 2
	defaultQueueSize   = 1024
	defaultDedupeSize  = 10000
	defaultMaxLimit    = 100
)

// Collaborator is the generative backend the service consults for
// discovery, verification and civic text answers.
type Collaborator interface {
	Insights(ctx context.Context, userName string) ([]ai.Insight, bool)
	DiscoverLeader(ctx context.Context, name string) (merge.Discovered, error)
	CompareLeaders(ctx context.Context, left, right string) ai.Answer
	Search(ctx context.Context, query string) ai.Answer
	VerifyPromises(ctx context.Context, query string) ([]model.Promise, error)
}

// Service owns the in-memory roster and promise tracker, persists them
// through the dataset stores, and schedules collaborator refreshes.
type Service struct {
	mu sync.RWMutex

	// Core components
	kv           repository.KV
	rosterStore  *repository.RosterStore
	promiseStore *repository.PromiseStore
	engine       *scoring.Engine
	deduper      dedupe.Deduper
	jobQueue     jobqueue.Queue
	workerPool   *workerpool.Pool
	collaborator Collaborator

	// State
	roster   model.Roster
	promises []model.Promise
	started  bool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	maxLimit    int
	scoringOpts []scoring.Option

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of refresh worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the refresh job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the in-flight request tracker.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxLeaderboardLimit caps how many entries a leaderboard read may
// request.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// WithScoringOptions forwards tuning options to the scoring engine.
func WithScoringOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, opts...)
	}
}

// WithCollaborator sets the generative backend.
func WithCollaborator(c Collaborator) Option {
	return func(s *Service) {
		if c != nil {
			s.collaborator = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service over the given store with default
// configuration.
func New(kv repository.KV, opts ...Option) *Service {
	s := &Service{
		kv:          kv,
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		dedupeSize:  defaultDedupeSize,
		maxLimit:    defaultMaxLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the persisted datasets and starts the refresh pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting civic ranking service...")

	s.rosterStore = repository.NewRosterStore(s.kv, s.logger)
	s.promiseStore = repository.NewPromiseStore(s.kv, s.logger)
	s.engine = scoring.NewEngine(s.scoringOpts...)
	s.deduper = dedupe.NewTracker(dedupe.WithMaxSize(s.dedupeSize))
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	roster, err := s.rosterStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	promises, err := s.promiseStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	s.roster = roster
	s.promises = promises

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s)
	s.workerPool.Start(ctx)

	s.started = true
	metrics.UpdateRosterSize(len(s.roster))
	metrics.UpdatePromiseCount(len(s.promises))

	s.logger.Info(ctx, "civic ranking service started",
		logger.Int("leaders", len(s.roster)),
		logger.Int("promises", len(s.promises)),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Stop gracefully shuts down the refresh pipeline.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping civic ranking service...")

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "civic ranking service stopped")
}

// Leaderboard ranks the roster under the requested mode and scope. A
// non-positive limit returns the full board; limits above the configured
// maximum are capped.
func (s *Service) Leaderboard(ctx context.Context, mode, scope string, limit int) ([]ranking.Entry, error) {
	parsed, err := scoring.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	roster := s.roster.Clone()
	engine := s.engine
	s.mu.RUnlock()

	entries := ranking.Rank(roster, engine, parsed, scope)
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	metrics.RecordLeaderboardRead()
	return entries, nil
}

// Leaders returns a copy of the current roster.
func (s *Service) Leaders(ctx context.Context) model.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.Clone()
}

// SubmitRating folds one citizen rating into a leader's running average
// and persists the roster.
func (s *Service) SubmitRating(ctx context.Context, id string, value int) (model.Leader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leader := s.roster.FindByID(id)
	if leader == nil {
		return model.Leader{}, fmt.Errorf("%w: %s", ErrLeaderNotFound, id)
	}

	if err := leader.SubmitRating(value); err != nil {
		metrics.RecordRatingRejected()
		return model.Leader{}, err
	}

	if err := s.saveRosterLocked(ctx); err != nil {
		return model.Leader{}, err
	}

	metrics.RecordRatingSubmitted()
	return *leader, nil
}

// ToggleFollow flips the follow flag on a leader and persists the
// roster.
func (s *Service) ToggleFollow(ctx context.Context, id string) (model.Leader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leader := s.roster.FindByID(id)
	if leader == nil {
		return model.Leader{}, fmt.Errorf("%w: %s", ErrLeaderNotFound, id)
	}

	leader.ToggleFollow()
	if err := s.saveRosterLocked(ctx); err != nil {
		return model.Leader{}, err
	}
	return *leader, nil
}

// Discover schedules an asynchronous collaborator lookup for a new
// leader. Requests already in the roster or already in flight are
// rejected up front.
func (s *Service) Discover(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return merge.ErrMissingName
	}

	s.mu.RLock()
	exists := s.roster.ContainsName(name)
	s.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: %s", merge.ErrDuplicate, name)
	}

	key := dedupe.Normalize(string(jobqueue.KindDiscoverLeader), name)
	if s.deduper.SeenAndRecord(ctx, key) {
		return fmt.Errorf("%w: %s", ErrRefreshInFlight, name)
	}

	job := jobqueue.Job{
		ID:      uuid.NewString(),
		Kind:    jobqueue.KindDiscoverLeader,
		Subject: name,
	}
	if !s.jobQueue.Enqueue(ctx, job) {
		s.deduper.Unrecord(ctx, key)
		return jobqueue.ErrQueueFull
	}

	metrics.UpdateInflightJobs(s.deduper.Size())
	return nil
}

// Promises returns a copy of the tracked promise list.
func (s *Service) Promises(ctx context.Context) []model.Promise {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Promise, len(s.promises))
	copy(out, s.promises)
	return out
}

// RefreshPromises schedules an asynchronous verification run that merges
// newly found promises into the tracker.
func (s *Service) RefreshPromises(ctx context.Context, query string) error {
	key := dedupe.Normalize(string(jobqueue.KindRefreshPromises), query)
	if s.deduper.SeenAndRecord(ctx, key) {
		return ErrRefreshInFlight
	}

	job := jobqueue.Job{
		ID:      uuid.NewString(),
		Kind:    jobqueue.KindRefreshPromises,
		Subject: query,
	}
	if !s.jobQueue.Enqueue(ctx, job) {
		s.deduper.Unrecord(ctx, key)
		return jobqueue.ErrQueueFull
	}

	metrics.UpdateInflightJobs(s.deduper.Size())
	return nil
}

// Compare resolves two leaders by id and asks the collaborator for a
// grounded side-by-side comparison.
func (s *Service) Compare(ctx context.Context, leftID, rightID string) (ai.Answer, error) {
	s.mu.RLock()
	left := s.roster.FindByID(leftID)
	right := s.roster.FindByID(rightID)
	s.mu.RUnlock()

	if left == nil {
		return ai.Answer{}, fmt.Errorf("%w: %s", ErrLeaderNotFound, leftID)
	}
	if right == nil {
		return ai.Answer{}, fmt.Errorf("%w: %s", ErrLeaderNotFound, rightID)
	}
	if s.collaborator == nil {
		return ai.Answer{}, ErrNoCollaborator
	}

	return s.collaborator.CompareLeaders(ctx, left.Name, right.Name), nil
}

// Insights returns short civic insights for the dashboard, possibly the
// canned fallback set.
func (s *Service) Insights(ctx context.Context, userName string) ([]ai.Insight, bool, error) {
	if s.collaborator == nil {
		return nil, false, ErrNoCollaborator
	}
	insights, degraded := s.collaborator.Insights(ctx, userName)
	return insights, degraded, nil
}

// SearchCivic answers a free-form civic query with search grounding.
func (s *Service) SearchCivic(ctx context.Context, query string) (ai.Answer, error) {
	if s.collaborator == nil {
		return ai.Answer{}, ErrNoCollaborator
	}
	return s.collaborator.Search(ctx, query), nil
}

// Handle executes one refresh job. It implements worker.Handler; the
// dedup slot is released on failure so the request can be retried.
func (s *Service) Handle(ctx context.Context, job jobqueue.Job) error {
	switch job.Kind {
	case jobqueue.KindDiscoverLeader:
		return s.handleDiscover(ctx, job)
	case jobqueue.KindRefreshPromises:
		return s.handleRefreshPromises(ctx, job)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

func (s *Service) handleDiscover(ctx context.Context, job jobqueue.Job) error {
	key := dedupe.Normalize(string(job.Kind), job.Subject)

	if s.collaborator == nil {
		s.deduper.Unrecord(ctx, key)
		return ErrNoCollaborator
	}

	profile, err := s.collaborator.DiscoverLeader(ctx, job.Subject)
	if err != nil {
		s.deduper.Unrecord(ctx, key)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := merge.Leader(s.roster, profile)
	if err != nil {
		// Duplicate or unusable profile. The dedup slot stays recorded
		// for duplicates so repeat requests keep getting rejected fast.
		metrics.RecordDiscoveryDropped()
		return err
	}
	s.roster = merged

	if err := s.saveRosterLocked(ctx); err != nil {
		return err
	}

	metrics.RecordDiscoveryMerged()
	s.logger.Info(ctx, "merged discovered leader",
		logger.String("name", profile.Name),
		logger.Int("rosterSize", len(s.roster)),
	)
	return nil
}

func (s *Service) handleRefreshPromises(ctx context.Context, job jobqueue.Job) error {
	key := dedupe.Normalize(string(job.Kind), job.Subject)
	// Promise refreshes are repeatable; free the slot as soon as the run
	// finishes either way.
	defer s.deduper.Unrecord(ctx, key)

	if s.collaborator == nil {
		return ErrNoCollaborator
	}

	found, err := s.collaborator.VerifyPromises(ctx, job.Subject)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, accepted := merge.Promises(s.promises, found)
	if accepted == 0 {
		return nil
	}
	s.promises = merged

	if err := s.savePromisesLocked(ctx); err != nil {
		return err
	}

	metrics.RecordPromisesMerged(accepted)
	s.logger.Info(ctx, "merged verified promises",
		logger.Int("accepted", accepted),
		logger.Int("tracked", len(s.promises)),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		ctx := context.Background()
		queueLen := s.jobQueue.Len(ctx)

		stats["queueLength"] = queueLen
		stats["totalLeaders"] = len(s.roster)
		stats["totalPromises"] = len(s.promises)
		stats["inflightJobs"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateRosterSize(len(s.roster))
		metrics.UpdatePromiseCount(len(s.promises))
	}

	return stats
}

// saveRosterLocked persists the roster. Must hold s.mu.
func (s *Service) saveRosterLocked(ctx context.Context) error {
	if err := s.rosterStore.Save(ctx, s.roster); err != nil {
		metrics.RecordStoreSaveError()
		return err
	}
	metrics.RecordStoreSave()
	metrics.UpdateRosterSize(len(s.roster))
	return nil
}

// savePromisesLocked persists the promise list. Must hold s.mu.
func (s *Service) savePromisesLocked(ctx context.Context) error {
	if err := s.promiseStore.Save(ctx, s.promises); err != nil {
		metrics.RecordStoreSaveError()
		return err
	}
	metrics.RecordStoreSave()
	metrics.UpdatePromiseCount(len(s.promises))
	return nil
}
