package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/stormcast/internal/adapters/repository"
	"github.com/okian/stormcast/internal/domain/scoring"
	"github.com/okian/stormcast/internal/schedule"
	"github.com/okian/stormcast/pkg/logger"
)

// ScoreCheckpoint scores a checkpoint against the recorded truth. It is
// the scheduler's entry point and the manual recovery path.
func (s *Service) ScoreCheckpoint(ctx context.Context, stormID, label string) (scoring.PassResult, error) {
	storm, ok := s.rotation.Lookup(stormID)
	if !ok {
		return scoring.PassResult{}, fmt.Errorf("%w: %s", ErrStormNotFound, stormID)
	}
	cp, ok := storm.Checkpoint(label)
	if !ok {
		return scoring.PassResult{}, fmt.Errorf("%w: %s/%s", ErrCheckpointNotFound, stormID, label)
	}

	res, err := s.pass.ScoreCheckpoint(ctx, stormID, label, cp.Observation())
	if res.Scored > 0 {
		if ierr := s.cache.Invalidate(ctx); ierr != nil {
			s.logger.Warn(ctx, "leaderboard cache invalidation failed", logger.Error(ierr))
		}
		s.refreshMetrics(ctx)
	}
	return res, err
}

// Health status values.
const (
	HealthOK        = "ok"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// DatabaseHealth reports store connectivity.
type DatabaseHealth struct {
	Connected bool              `json:"connected"`
	Error     string            `json:"error,omitempty"`
	Counts    repository.Counts `json:"counts"`
}

// Health is the response of GET /health.
type Health struct {
	Status      string          `json:"status"`
	Time        time.Time       `json:"time"`
	Database    DatabaseHealth  `json:"database"`
	Schedule    schedule.Status `json:"schedule"`
	ActiveStorm string          `json:"activeStorm,omitempty"`
}

// Healthy reports whether the process can serve requests.
func (h Health) Healthy() bool { return h.Status != HealthUnhealthy }

// Health checks the store and reports schedule state.
func (s *Service) Health(ctx context.Context) Health {
	now := s.clock.Now().UTC()
	h := Health{Status: HealthOK, Time: now, Schedule: s.scheduleStatus}
	if storm, ok := s.rotation.Current(now); ok {
		h.ActiveStorm = storm.ID
	}

	if err := s.store.Ping(ctx); err != nil {
		h.Status = HealthUnhealthy
		h.Database.Error = err.Error()
		return h
	}
	h.Database.Connected = true

	counts, err := s.store.Counts(ctx)
	if err != nil {
		h.Status = HealthUnhealthy
		h.Database.Error = err.Error()
		return h
	}
	h.Database.Counts = counts

	if s.scheduleStatus.Degraded {
		h.Status = HealthDegraded
	}
	return h
}
