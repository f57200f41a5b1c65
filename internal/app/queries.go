package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/stormcast/internal/adapters/cache"
	"github.com/okian/stormcast/internal/domain/badges"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
)

// MaxLeaderboardLimit is the largest page a leaderboard request may ask for.
func (s *Service) MaxLeaderboardLimit() int { return s.maxLimit }

func (s *Service) limit(n int) (int, error) {
	if n == 0 {
		return s.maxLimit, nil
	}
	if n < 0 || n > s.maxLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, s.maxLimit)
	}
	return n, nil
}

// Leaderboard ranks users by summed score for one storm. A zero limit
// means the maximum.
func (s *Service) Leaderboard(ctx context.Context, stormID string, limit int) ([]model.LeaderboardEntry, error) {
	n, err := s.limit(limit)
	if err != nil {
		return nil, err
	}
	return s.cached(ctx, cache.StormKey(stormID, n), func() ([]model.LeaderboardEntry, error) {
		return s.store.Leaderboard(ctx, stormID, n)
	})
}

// GlobalLeaderboard ranks users by summed score across every storm.
func (s *Service) GlobalLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	n, err := s.limit(limit)
	if err != nil {
		return nil, err
	}
	return s.cached(ctx, cache.GlobalKey(n), func() ([]model.LeaderboardEntry, error) {
		return s.store.GlobalLeaderboard(ctx, n)
	})
}

func (s *Service) cached(ctx context.Context, key string, load func() ([]model.LeaderboardEntry, error)) ([]model.LeaderboardEntry, error) {
	entries, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "leaderboard cache read failed", logger.String("key", key), logger.Error(err))
	}
	if ok {
		return entries, nil
	}

	entries, err = load()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	if err := s.cache.Set(ctx, key, entries); err != nil {
		s.logger.Warn(ctx, "leaderboard cache write failed", logger.String("key", key), logger.Error(err))
	}
	return entries, nil
}

func cleanUsername(username string) (string, error) {
	u := strings.TrimSpace(username)
	if u == "" {
		return "", fmt.Errorf("%w: username is required", ErrValidation)
	}
	return u, nil
}

// UserStats aggregates a user's scored predictions.
func (s *Service) UserStats(ctx context.Context, username string) (model.UserStats, error) {
	u, err := cleanUsername(username)
	if err != nil {
		return model.UserStats{}, err
	}
	return s.store.UserStats(ctx, u)
}

// UserPredictions lists a user's predictions, newest first.
func (s *Service) UserPredictions(ctx context.Context, username string) ([]model.Prediction, error) {
	u, err := cleanUsername(username)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.PredictionsByUser(ctx, u)
	if rows == nil && err == nil {
		rows = []model.Prediction{}
	}
	return rows, err
}

// UserBadges lists the badges a user holds.
func (s *Service) UserBadges(ctx context.Context, username string) ([]model.UserBadge, error) {
	u, err := cleanUsername(username)
	if err != nil {
		return nil, err
	}
	held, err := s.store.UserBadges(ctx, u)
	if held == nil && err == nil {
		held = []model.UserBadge{}
	}
	return held, err
}

// BadgeDefinitions returns the catalog.
func (s *Service) BadgeDefinitions(ctx context.Context) ([]model.BadgeDefinition, error) {
	return s.store.BadgeDefinitions(ctx)
}

// BadgeProgress reports progress toward every badge in the catalog.
func (s *Service) BadgeProgress(ctx context.Context, username string) ([]badges.Progress, error) {
	u, err := cleanUsername(username)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.UserStats(ctx, u)
	if err != nil {
		return nil, err
	}
	held, err := s.store.UserBadges(ctx, u)
	if err != nil {
		return nil, err
	}
	defs, err := s.store.BadgeDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	return badges.ComputeProgress(stats, held, defs), nil
}
