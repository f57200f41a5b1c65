package badges

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"gorm.io/datatypes"

	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
	"github.com/okian/stormcast/pkg/metrics"
)

// Store is the persistence the evaluator needs.
type Store interface {
	// UserStats aggregates the user's scored predictions.
	UserStats(ctx context.Context, username string) (model.UserStats, error)
	// AwardBadge inserts the award if the user does not hold it yet and
	// reports whether a row was created.
	AwardBadge(ctx context.Context, award model.UserBadge) (bool, error)
}

// Evaluator applies the rule table for one user at a time.
type Evaluator struct {
	store  Store
	clock  clockwork.Clock
	logger logger.Logger
}

// NewEvaluator creates an evaluator over store.
func NewEvaluator(store Store, opts ...Option) *Evaluator {
	e := &Evaluator{
		store:  store,
		clock:  clockwork.NewRealClock(),
		logger: logger.Get().Named("badges"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate recomputes the user's stats, checks every rule and awards what
// qualifies. It returns the ids newly awarded by this call.
func (e *Evaluator) Evaluate(ctx context.Context, username string, latest *model.Prediction) ([]string, error) {
	stats, err := e.store.UserStats(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load stats for %s: %w", username, err)
	}
	snap := Snapshot{Stats: stats, Latest: latest}

	var (
		awarded []string
		errs    []error
	)
	for _, id := range Qualifying(snap) {
		ok, err := e.store.AwardBadge(ctx, model.UserBadge{
			Username: username,
			BadgeID:  id,
			EarnedAt: e.clock.Now().UTC(),
			Metadata: metadata(snap),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("award %s: %w", id, err))
			continue
		}
		if !ok {
			continue
		}
		awarded = append(awarded, id)
		metrics.RecordBadgeAwarded(id)
		e.logger.Info(ctx, "badge awarded",
			logger.String("username", username),
			logger.String("badge_id", id),
		)
	}
	return awarded, errors.Join(errs...)
}

type awardContext struct {
	TotalPredictions int    `json:"totalPredictions"`
	TotalScore       int    `json:"totalScore"`
	UniqueStorms     int    `json:"uniqueStorms"`
	PredictionID     string `json:"predictionId,omitempty"`
	StormID          string `json:"stormId,omitempty"`
	Checkpoint       string `json:"checkpoint,omitempty"`
	Score            *int   `json:"score,omitempty"`
}

func metadata(snap Snapshot) datatypes.JSON {
	c := awardContext{
		TotalPredictions: snap.Stats.TotalPredictions,
		TotalScore:       snap.Stats.TotalScore,
		UniqueStorms:     snap.Stats.UniqueStorms,
	}
	if p := snap.Latest; p != nil {
		c.PredictionID = p.ID
		c.StormID = p.StormID
		c.Checkpoint = p.CheckpointLabel
		c.Score = p.Score
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
