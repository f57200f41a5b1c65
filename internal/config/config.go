// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"time"

	"github.com/okian/stormcast/internal/adapters/repository"
	"github.com/okian/stormcast/internal/domain/gameclock"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatabaseDriver is sqlite or postgres.
	DatabaseDriver string `koanf:"database_driver"`
	DatabaseDSN    string `koanf:"database_dsn"`

	// SchedulePath points at a YAML storm schedule. Empty uses the built-in one.
	SchedulePath string `koanf:"schedule_path"`

	// RotationMode is static, daily or weekly. RotationEpoch anchors rotating modes.
	RotationMode  string `koanf:"rotation_mode"`
	RotationEpoch string `koanf:"rotation_epoch"`

	// TickIntervalSeconds is how often the scheduler looks for closed checkpoints.
	TickIntervalSeconds int `koanf:"tick_interval_seconds"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// RedisAddr enables the leaderboard cache when set.
	RedisAddr                 string `koanf:"redis_addr"`
	RedisPassword             string `koanf:"redis_password"`
	RedisDB                   int    `koanf:"redis_db"`
	LeaderboardCacheTTLSecond int    `koanf:"leaderboard_cache_ttl_seconds"`

	MetricsRefreshSeconds int `koanf:"metrics_refresh_seconds"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                  "info",
		LogFormat:                 "text",
		Addr:                      ":9080",
		DatabaseDriver:            repository.DriverSQLite,
		DatabaseDSN:               "file:stormcast.db",
		RotationMode:              string(gameclock.ModeDaily),
		RotationEpoch:             "2024-01-01T00:00:00Z",
		TickIntervalSeconds:       60,
		MaxLeaderboardLimit:       100,
		LeaderboardCacheTTLSecond: 30,
		MetricsRefreshSeconds:     15,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.DatabaseDriver {
	case repository.DriverSQLite, repository.DriverPostgres:
	default:
		return fmt.Errorf("%w: database_driver %q", ErrInvalidConfig, c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("%w: database_dsn must not be empty", ErrInvalidConfig)
	}
	if _, err := gameclock.ParseMode(c.RotationMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Epoch(); err != nil {
		return err
	}
	if c.TickIntervalSeconds <= 0 {
		return fmt.Errorf("%w: tick_interval_seconds must be positive", ErrInvalidConfig)
	}
	if c.MaxLeaderboardLimit <= 0 {
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	}
	if c.LeaderboardCacheTTLSecond <= 0 {
		return fmt.Errorf("%w: leaderboard_cache_ttl_seconds must be positive", ErrInvalidConfig)
	}
	if c.MetricsRefreshSeconds <= 0 {
		return fmt.Errorf("%w: metrics_refresh_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}

// Epoch parses RotationEpoch.
func (c *Config) Epoch() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.RotationEpoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: rotation_epoch: %w", ErrInvalidConfig, err)
	}
	return t.UTC(), nil
}

// TickInterval is TickIntervalSeconds as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalSeconds) * time.Second
}

// CacheTTL is LeaderboardCacheTTLSecond as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.LeaderboardCacheTTLSecond) * time.Second
}

// MetricsRefresh is MetricsRefreshSeconds as a duration.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshSeconds) * time.Second
}
