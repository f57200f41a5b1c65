package scheduler

import (
	"time"

	"github.com/okian/stormcast/internal/domain/dedupe"
	"github.com/okian/stormcast/pkg/logger"
)

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets a custom logger for the scheduler.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDeduper replaces the set of boundaries already fired.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Scheduler) {
		if d != nil {
			s.seen = d
		}
	}
}
