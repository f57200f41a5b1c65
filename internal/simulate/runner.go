package simulate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	service "github.com/okian/stormcast/internal/app"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/internal/domain/scoring"
	"github.com/okian/stormcast/pkg/logger"
)

// Run plays one round: health check, read the game state, submit one
// forecast per user, optionally score, then read the storm leaderboard.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	return run(ctx, cfg, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
}

func run(ctx context.Context, cfg *Config, rng *rand.Rand) (*Stats, error) {
	log := logger.Get().Named("simulate")
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg)

	log.Info(ctx, "starting stormcast simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("users", cfg.Users),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
		logger.Bool("score", cfg.Score))

	var health service.Health
	if _, _, err := client.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}
	log.Info(ctx, "service is healthy", logger.String("status", health.Status))

	var gs service.GameState
	if _, _, err := client.do(ctx, http.MethodGet, "/game/state", nil, &gs); err != nil {
		return stats, fmt.Errorf("game state: %w", err)
	}
	target, err := targetFrom(gs)
	if err != nil {
		return stats, err
	}
	log.Info(ctx, "forecasting",
		logger.String("storm_id", target.StormID),
		logger.String("checkpoint", target.Checkpoint))

	forecasts := generateForecasts(target, cfg.Users, rng)
	stats.Generated = len(forecasts)
	submitForecasts(ctx, cfg, forecasts, stats)

	if cfg.Score {
		var res scoring.PassResult
		path := "/admin/score/" + url.PathEscape(target.StormID) + "/" + url.PathEscape(target.Checkpoint)
		if _, _, err := client.do(ctx, http.MethodPost, path, nil, &res); err != nil {
			return stats, fmt.Errorf("score checkpoint: %w", err)
		}
		stats.Scored = res.Scored
		log.Info(ctx, "checkpoint scored",
			logger.Int("scored", res.Scored),
			logger.Int("badges_awarded", res.Awarded))
	}

	var board []model.LeaderboardEntry
	if _, _, err := client.do(ctx, http.MethodGet, "/leaderboard/"+url.PathEscape(target.StormID), nil, &board); err != nil {
		return stats, fmt.Errorf("leaderboard: %w", err)
	}
	stats.LeaderboardEntries = len(board)
	for i := 0; i < len(board) && i < 3; i++ {
		log.Info(ctx, "leader",
			logger.Int("rank", board[i].Rank),
			logger.String("username", board[i].Username),
			logger.Int("total_score", board[i].TotalScore))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, perSecond float64
	if stats.Submitted > 0 {
		acceptRate = float64(stats.Accepted) / float64(stats.Submitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	logger.Get().Named("simulate").Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("scored", stats.Scored),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.Duration("duration", stats.Duration),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("submissionsPerSecond", perSecond))
}
