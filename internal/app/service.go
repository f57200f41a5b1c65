// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/okian/stormcast/internal/adapters/cache"
	"github.com/okian/stormcast/internal/adapters/repository"
	"github.com/okian/stormcast/internal/adapters/scheduler"
	"github.com/okian/stormcast/internal/domain/badges"
	"github.com/okian/stormcast/internal/domain/dedupe"
	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/internal/domain/scoring"
	"github.com/okian/stormcast/internal/schedule"
	"github.com/okian/stormcast/pkg/logger"
	"github.com/okian/stormcast/pkg/metrics"
)

// Store is everything the service needs from persistence.
type Store interface {
	scoring.Store
	badges.Store

	CreatePrediction(ctx context.Context, p *model.Prediction) error
	PredictionsByUser(ctx context.Context, username string) ([]model.Prediction, error)
	Leaderboard(ctx context.Context, stormID string, limit int) ([]model.LeaderboardEntry, error)
	GlobalLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	UserBadges(ctx context.Context, username string) ([]model.UserBadge, error)
	SeedBadgeDefinitions(ctx context.Context, defs []model.BadgeDefinition) error
	BadgeDefinitions(ctx context.Context) ([]model.BadgeDefinition, error)
	Counts(ctx context.Context) (repository.Counts, error)
	Ping(ctx context.Context) error
}

// Service implements the API dependencies for the game.
type Service struct {
	mu sync.Mutex

	// Core components
	store     Store
	rotation  *gameclock.Rotation
	pass      *scoring.Pass
	evaluator *badges.Evaluator
	cache     cache.Leaderboards
	scheduler *scheduler.Scheduler
	seen      dedupe.Deduper
	clock     clockwork.Clock

	// Configuration
	scheduleStatus  schedule.Status
	maxLimit        int
	tickInterval    time.Duration
	metricsInterval time.Duration
	newID           func() string

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClock sets the clock all game decisions are made against.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache sets the leaderboard cache.
func WithCache(c cache.Leaderboards) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithScheduleStatus records where the schedule came from, for Health.
func WithScheduleStatus(st schedule.Status) Option {
	return func(s *Service) {
		s.scheduleStatus = st
	}
}

// WithMaxLeaderboardLimit caps leaderboard page size.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithTickInterval sets how often the scheduler polls for closed checkpoints.
func WithTickInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithMetricsRefreshInterval sets how often gauge metrics are refreshed.
func WithMetricsRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.metricsInterval = d
		}
	}
}

// WithIDGenerator overrides prediction id generation.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) {
		if f != nil {
			s.newID = f
		}
	}
}

// New constructs a Service over store and rotation.
func New(store Store, rotation *gameclock.Rotation, opts ...Option) *Service {
	s := &Service{
		store:           store,
		rotation:        rotation,
		cache:           cache.Noop{},
		clock:           clockwork.NewRealClock(),
		scheduleStatus:  schedule.Status{Source: schedule.SourceBuiltin},
		maxLimit:        100,
		tickInterval:    time.Minute,
		metricsInterval: 15 * time.Second,
		newID:           uuid.NewString,
		seen:            dedupe.NewInMemoryDeduper(),
		logger:          logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.evaluator = badges.NewEvaluator(store,
		badges.WithClock(s.clock),
		badges.WithLogger(s.logger.Named("badges")),
	)
	s.pass = scoring.NewPass(store,
		scoring.WithBadgeEvaluator(s.evaluator),
		scoring.WithClock(s.clock),
		scoring.WithLogger(s.logger.Named("scoring")),
	)
	s.scheduler = s.newScheduler()
	return s
}

// newScheduler builds a scheduler over the service's deduper, so
// boundaries fired before a restart are not fired again.
func (s *Service) newScheduler() *scheduler.Scheduler {
	return scheduler.New(s.clock, s.rotation, s,
		scheduler.WithInterval(s.tickInterval),
		scheduler.WithDeduper(s.seen),
		scheduler.WithLogger(s.logger.Named("scheduler")),
	)
}

// Start seeds the badge catalog and starts the scheduler and the
// metrics refresher. A stopped service can be started again.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting game service...")

	if err := s.store.SeedBadgeDefinitions(ctx, badges.Catalog()); err != nil {
		return err
	}
	metrics.UpdateScheduledStorms(len(s.rotation.Schedule()))
	s.refreshMetrics(ctx)

	stop := make(chan struct{})
	sched := s.newScheduler()
	s.stopCh, s.scheduler = stop, sched

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		sched.Run(ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.metricsLoop(ctx, stop)
	}()

	s.started = true
	s.logger.Info(ctx, "game service started",
		logger.String("rotation", string(s.rotation.Mode())),
		logger.Int("storms", len(s.rotation.Schedule())),
		logger.Duration("tick_interval", s.tickInterval),
	)
	return nil
}

// Stop gracefully shuts down the background loops.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping game service...")

	err := s.scheduler.Shutdown(ctx)
	close(s.stopCh)
	s.wg.Wait()

	s.started = false
	s.logger.Info(ctx, "game service stopped")
	return err
}

// Tick runs one scheduler poll immediately.
func (s *Service) Tick(ctx context.Context) int {
	s.mu.Lock()
	sched := s.scheduler
	s.mu.Unlock()
	return sched.Tick(ctx)
}

func (s *Service) metricsLoop(ctx context.Context, stop <-chan struct{}) {
	ticker := s.clock.NewTicker(s.metricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.Chan():
			s.refreshMetrics(ctx)
		}
	}
}

func (s *Service) refreshMetrics(ctx context.Context) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to refresh metrics", logger.Error(err))
		return
	}
	metrics.UpdatePredictionCount(counts.Predictions)
}
