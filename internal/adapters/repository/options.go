package repository

import (
	gormLogger "gorm.io/gorm/logger"

	"github.com/okian/stormcast/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGormLogLevel sets the level of gorm's own SQL logger. Only honored by Open.
func WithGormLogLevel(level gormLogger.LogLevel) Option {
	return func(s *Store) {
		s.gormLogLevel = level
	}
}
