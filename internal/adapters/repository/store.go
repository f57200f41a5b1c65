// Package repository persists predictions and badge awards through gorm.
package repository

import (
	"context"
	"fmt"
	"math"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Counts summarizes table sizes for health reporting.
type Counts struct {
	Predictions int64 `json:"predictions"`
	Scored      int64 `json:"scored"`
	Users       int64 `json:"users"`
	UserBadges  int64 `json:"userBadges"`
}

// Store is the gorm-backed persistence for the game.
type Store struct {
	db           *gorm.DB
	logger       logger.Logger
	gormLogLevel gormLogger.LogLevel
}

// Open connects to driver/dsn and migrates the schema.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Store, error) {
	s := newStore(nil, opts)

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(s.gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	s.db = db

	if driver == DriverSQLite {
		// sqlite allows one writer; a single connection also keeps a
		// shared in-memory database alive for the life of the store.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "database ready", logger.String("driver", driver))
	return s, nil
}

// New wraps an existing connection. The caller is responsible for Migrate.
func New(db *gorm.DB, opts ...Option) *Store {
	return newStore(db, opts)
}

func newStore(db *gorm.DB, opts []Option) *Store {
	s := &Store{
		db:           db,
		logger:       logger.Get().Named("repository"),
		gormLogLevel: gormLogger.Warn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates or updates the tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&model.Prediction{},
		&model.BadgeDefinition{},
		&model.UserBadge{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

// CreatePrediction inserts p unless (username, storm, checkpoint) already
// exists, in which case ErrDuplicate is returned.
func (s *Store) CreatePrediction(ctx context.Context, p *model.Prediction) error {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(p)
	if res.Error != nil {
		return fmt.Errorf("insert prediction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s already predicted %s/%s", ErrDuplicate, p.Username, p.StormID, p.CheckpointLabel)
	}
	return nil
}

// UnscoredPredictions returns the rows of a checkpoint still waiting for a score.
func (s *Store) UnscoredPredictions(ctx context.Context, stormID, label string) ([]model.Prediction, error) {
	var rows []model.Prediction
	err := s.db.WithContext(ctx).
		Where("storm_id = ? AND checkpoint_label = ? AND score IS NULL", stormID, label).
		Order("submitted_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query unscored predictions: %w", err)
	}
	return rows, nil
}

// ApplyScore fills score and actual values on a still-unscored row.
func (s *Store) ApplyScore(ctx context.Context, id string, score int, actual model.Observation) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Prediction{}).
		Where("id = ? AND score IS NULL", id).
		Updates(map[string]any{
			"score":             score,
			"actual_lat":        actual.Lat,
			"actual_lon":        actual.Lon,
			"actual_wind_speed": actual.WindSpeed,
			"actual_pressure":   actual.Pressure,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update prediction %s: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// PredictionsByUser returns a user's predictions, newest first.
func (s *Store) PredictionsByUser(ctx context.Context, username string) ([]model.Prediction, error) {
	var rows []model.Prediction
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("submitted_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query predictions for %s: %w", username, err)
	}
	return rows, nil
}

type aggregate struct {
	Username         string
	TotalPredictions int
	TotalScore       int
	UniqueStorms     int
	AverageScore     float64
	BestScore        int
}

// UserStats aggregates a user's scored predictions.
func (s *Store) UserStats(ctx context.Context, username string) (model.UserStats, error) {
	var agg aggregate
	err := s.db.WithContext(ctx).
		Model(&model.Prediction{}).
		Select(`COUNT(*) AS total_predictions,
			COALESCE(SUM(score), 0) AS total_score,
			COUNT(DISTINCT storm_id) AS unique_storms,
			COALESCE(AVG(score), 0) AS average_score,
			COALESCE(MAX(score), 0) AS best_score`).
		Where("username = ? AND score IS NOT NULL", username).
		Scan(&agg).Error
	if err != nil {
		return model.UserStats{}, fmt.Errorf("aggregate stats for %s: %w", username, err)
	}
	return model.UserStats{
		Username:         username,
		TotalPredictions: agg.TotalPredictions,
		TotalScore:       agg.TotalScore,
		UniqueStorms:     agg.UniqueStorms,
		AverageScore:     round2(agg.AverageScore),
		BestScore:        agg.BestScore,
	}, nil
}

// Leaderboard ranks users by summed score for one storm.
func (s *Store) Leaderboard(ctx context.Context, stormID string, limit int) ([]model.LeaderboardEntry, error) {
	return s.leaderboard(ctx, limit, func(db *gorm.DB) *gorm.DB {
		return db.Where("storm_id = ?", stormID)
	})
}

// GlobalLeaderboard ranks users by summed score across all storms.
func (s *Store) GlobalLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return s.leaderboard(ctx, limit, func(db *gorm.DB) *gorm.DB { return db })
}

func (s *Store) leaderboard(ctx context.Context, limit int, scope func(*gorm.DB) *gorm.DB) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	var rows []aggregate
	err := s.db.WithContext(ctx).
		Model(&model.Prediction{}).
		Scopes(scope).
		Select(`username,
			SUM(score) AS total_score,
			COUNT(*) AS total_predictions,
			AVG(score) AS average_score,
			MAX(score) AS best_score`).
		Where("score IS NOT NULL").
		Group("username").
		Order("total_score DESC, username ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}

	out := make([]model.LeaderboardEntry, len(rows))
	for i, r := range rows {
		rank := i + 1
		if i > 0 && r.TotalScore == rows[i-1].TotalScore {
			rank = out[i-1].Rank
		}
		out[i] = model.LeaderboardEntry{
			Rank:         rank,
			Username:     r.Username,
			TotalScore:   r.TotalScore,
			Predictions:  r.TotalPredictions,
			AverageScore: round2(r.AverageScore),
			BestScore:    r.BestScore,
		}
	}
	return out, nil
}

// AwardBadge inserts award unless the user already holds the badge.
func (s *Store) AwardBadge(ctx context.Context, award model.UserBadge) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(&award)
	if res.Error != nil {
		return false, fmt.Errorf("insert badge %s for %s: %w", award.BadgeID, award.Username, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UserBadges returns a user's awards in the order earned.
func (s *Store) UserBadges(ctx context.Context, username string) ([]model.UserBadge, error) {
	var rows []model.UserBadge
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("earned_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query badges for %s: %w", username, err)
	}
	return rows, nil
}

// SeedBadgeDefinitions upserts the catalog.
func (s *Store) SeedBadgeDefinitions(ctx context.Context, defs []model.BadgeDefinition) error {
	if len(defs) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "badge_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "category", "tier", "points_value"}),
		}).
		Create(&defs).Error
	if err != nil {
		return fmt.Errorf("seed badge definitions: %w", err)
	}
	return nil
}

// BadgeDefinitions returns the catalog.
func (s *Store) BadgeDefinitions(ctx context.Context) ([]model.BadgeDefinition, error) {
	var defs []model.BadgeDefinition
	if err := s.db.WithContext(ctx).Order("category ASC, points_value ASC, badge_id ASC").Find(&defs).Error; err != nil {
		return nil, fmt.Errorf("query badge definitions: %w", err)
	}
	return defs, nil
}

// Counts returns table sizes.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Prediction{}).Count(&c.Predictions).Error; err != nil {
		return c, fmt.Errorf("count predictions: %w", err)
	}
	if err := db.Model(&model.Prediction{}).Where("score IS NOT NULL").Count(&c.Scored).Error; err != nil {
		return c, fmt.Errorf("count scored predictions: %w", err)
	}
	if err := db.Model(&model.Prediction{}).Distinct("username").Count(&c.Users).Error; err != nil {
		return c, fmt.Errorf("count users: %w", err)
	}
	if err := db.Model(&model.UserBadge{}).Count(&c.UserBadges).Error; err != nil {
		return c, fmt.Errorf("count badges: %w", err)
	}
	return c, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
