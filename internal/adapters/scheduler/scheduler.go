// Package scheduler drives the scoring pass each time a checkpoint closes.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/stormcast/internal/domain/dedupe"
	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/internal/domain/scoring"
	"github.com/okian/stormcast/pkg/logger"
	"github.com/okian/stormcast/pkg/metrics"
)

const defaultInterval = time.Minute

// Tick outcomes recorded in metrics.
const (
	OutcomeIdle    = "idle"
	OutcomeFired   = "fired"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Provider returns the storms that may close a checkpoint in (from, to].
type Provider interface {
	Candidates(from, to time.Time) []model.StormSchedule
}

// Scorer runs the scoring pass for one closed checkpoint.
type Scorer interface {
	ScoreCheckpoint(ctx context.Context, stormID, label string) (scoring.PassResult, error)
}

// Scheduler polls the clock and fires each closing boundary once.
type Scheduler struct {
	clock    clockwork.Clock
	provider Provider
	scorer   Scorer
	seen     dedupe.Deduper
	interval time.Duration
	logger   logger.Logger

	running sync.Mutex
	last    time.Time

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
}

// New creates a scheduler.
func New(clock clockwork.Clock, provider Provider, scorer Scorer, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:    clock,
		provider: provider,
		scorer:   scorer,
		seen:     dedupe.NewInMemoryDeduper(),
		interval: defaultInterval,
		logger:   logger.Get().Named("scheduler"),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ticks every interval until ctx is cancelled or Shutdown is called.
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.done)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "scheduler started", logger.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdown:
			return
		case <-ticker.Chan():
			s.Tick(ctx)
		}
	}
}

// Shutdown stops Run and waits for the current tick to finish.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Tick scores every checkpoint that closed since the previous tick, or
// within the last interval on the first tick. A tick that starts while
// another is running does nothing. It returns how many passes ran.
func (s *Scheduler) Tick(ctx context.Context) int {
	if !s.running.TryLock() {
		metrics.RecordSchedulerTick(OutcomeSkipped)
		s.logger.Warn(ctx, "previous tick still running, skipping")
		return 0
	}
	defer s.running.Unlock()

	now := s.clock.Now()
	from := s.last
	if from.IsZero() || !from.Before(now) {
		from = now.Add(-s.interval)
	}
	s.last = now

	closed := gameclock.ClosedBetween(s.provider.Candidates(from, now), from, now)
	fired, failed := 0, 0
	for _, b := range closed {
		if s.seen.SeenAndRecord(ctx, b.Key()) {
			continue
		}
		if err := s.fire(ctx, b); err != nil {
			s.seen.Unrecord(ctx, b.Key())
			failed++
			continue
		}
		fired++
	}

	switch {
	case failed > 0:
		metrics.RecordSchedulerTick(OutcomeError)
	case fired > 0:
		metrics.RecordSchedulerTick(OutcomeFired)
	default:
		metrics.RecordSchedulerTick(OutcomeIdle)
	}
	return fired
}

func (s *Scheduler) fire(ctx context.Context, b gameclock.Boundary) error {
	s.logger.Info(ctx, "checkpoint closed",
		logger.String("storm_id", b.Storm.ID),
		logger.String("checkpoint", b.Label),
		logger.Time("closed_at", b.At),
	)
	res, err := s.scorer.ScoreCheckpoint(ctx, b.Storm.ID, b.Label)
	if err != nil {
		s.logger.Error(ctx, "scheduled scoring failed",
			logger.String("storm_id", b.Storm.ID),
			logger.String("checkpoint", b.Label),
			logger.Error(err),
		)
		return err
	}
	s.logger.Debug(ctx, "scheduled scoring finished",
		logger.String("storm_id", res.StormID),
		logger.Int("scored", res.Scored),
		logger.Int("failed", res.Failed),
	)
	return nil
}
