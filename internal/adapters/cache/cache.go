// Package cache holds short-lived copies of leaderboard reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/stormcast/internal/domain/model"
)

const defaultPrefix = "stormcast:leaderboard:"

// Leaderboards caches ranked leaderboard pages.
type Leaderboards interface {
	// Get returns a cached page; ok is false on a miss.
	Get(ctx context.Context, key string) (entries []model.LeaderboardEntry, ok bool, err error)
	Set(ctx context.Context, key string, entries []model.LeaderboardEntry) error
	// Invalidate drops every cached page.
	Invalidate(ctx context.Context) error
}

// StormKey names the page of a storm leaderboard.
func StormKey(stormID string, limit int) string {
	return "storm:" + stormID + ":" + strconv.Itoa(limit)
}

// GlobalKey names the page of the all-time leaderboard.
func GlobalKey(limit int) string {
	return "global:" + strconv.Itoa(limit)
}

// Redis stores pages as JSON strings with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis creates a redis-backed cache.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl, prefix: defaultPrefix}
}

func (r *Redis) Get(ctx context.Context, key string) ([]model.LeaderboardEntry, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from Redis: %w", key, err)
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return entries, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, entries []model.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in Redis: %w", key, err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan leaderboard keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete leaderboard keys: %w", err)
	}
	return nil
}

// Noop never stores anything. Used when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]model.LeaderboardEntry, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, []model.LeaderboardEntry) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
