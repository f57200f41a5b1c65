package scoring

import (
	"github.com/jonboulle/clockwork"

	"github.com/okian/stormcast/pkg/logger"
)

// Option applies a configuration option to the Pass.
type Option func(*Pass)

// WithBadgeEvaluator sets the evaluator invoked after each scored row.
func WithBadgeEvaluator(e BadgeEvaluator) Option {
	return func(p *Pass) {
		if e != nil {
			p.badges = e
		}
	}
}

// WithLogger sets a custom logger for the pass.
func WithLogger(l logger.Logger) Option {
	return func(p *Pass) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the clock used for pass timing.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pass) {
		if c != nil {
			p.clock = c
		}
	}
}
