package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
	"github.com/okian/stormcast/pkg/metrics"
)

// Store is the persistence the pass needs.
type Store interface {
	// UnscoredPredictions returns rows for (stormID, label) whose score is null.
	UnscoredPredictions(ctx context.Context, stormID, label string) ([]model.Prediction, error)
	// ApplyScore sets score and actual values only if the row is still
	// unscored. It reports false when another pass got there first.
	ApplyScore(ctx context.Context, id string, score int, actual model.Observation) (bool, error)
}

// BadgeEvaluator awards badges after a prediction is scored.
type BadgeEvaluator interface {
	Evaluate(ctx context.Context, username string, latest *model.Prediction) ([]string, error)
}

// PassResult summarizes one scoring pass.
type PassResult struct {
	StormID    string        `json:"stormId"`
	Checkpoint string        `json:"checkpoint"`
	Candidates int           `json:"candidates"`
	Scored     int           `json:"scored"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Awarded    int           `json:"badgesAwarded"`
	Duration   time.Duration `json:"-"`
}

// Pass scores every unscored prediction of a closed checkpoint.
type Pass struct {
	store  Store
	badges BadgeEvaluator
	clock  clockwork.Clock
	logger logger.Logger
}

// NewPass creates a scoring pass over store.
func NewPass(store Store, opts ...Option) *Pass {
	p := &Pass{
		store:  store,
		clock:  clockwork.NewRealClock(),
		logger: logger.Get().Named("scoring"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ScoreCheckpoint scores (stormID, label) against actual. Row failures are
// logged and counted; the returned error covers loading and cancellation only.
func (p *Pass) ScoreCheckpoint(ctx context.Context, stormID, label string, actual model.Observation) (PassResult, error) {
	start := p.clock.Now()
	res := PassResult{StormID: stormID, Checkpoint: label}
	defer func() {
		res.Duration = p.clock.Since(start)
		metrics.RecordScoringPassDuration(float64(res.Duration.Milliseconds()))
	}()

	rows, err := p.store.UnscoredPredictions(ctx, stormID, label)
	if err != nil {
		return res, fmt.Errorf("load unscored predictions for %s/%s: %w", stormID, label, err)
	}
	res.Candidates = len(rows)

	for i := range rows {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("scoring %s/%s interrupted: %w", stormID, label, err)
		}
		p.scoreRow(ctx, &rows[i], actual, &res)
	}

	p.logger.Info(ctx, "scoring pass complete",
		logger.String("storm_id", stormID),
		logger.String("checkpoint", label),
		logger.Int("candidates", res.Candidates),
		logger.Int("scored", res.Scored),
		logger.Int("skipped", res.Skipped),
		logger.Int("failed", res.Failed),
		logger.Int("badges_awarded", res.Awarded),
		logger.Duration("duration", p.clock.Since(start)),
	)
	return res, nil
}

func (p *Pass) scoreRow(ctx context.Context, row *model.Prediction, actual model.Observation, res *PassResult) {
	b := Evaluate(row.Predicted(), actual)

	ok, err := p.store.ApplyScore(ctx, row.ID, b.Total, actual)
	if err != nil {
		res.Failed++
		metrics.RecordScoringFailure()
		p.logger.Error(ctx, "failed to persist score",
			logger.String("prediction_id", row.ID),
			logger.String("username", row.Username),
			logger.Error(err),
		)
		return
	}
	if !ok {
		res.Skipped++
		return
	}

	res.Scored++
	metrics.RecordPredictionScored()
	fill(row, b.Total, actual)

	if p.badges == nil {
		return
	}
	awarded, err := p.badges.Evaluate(ctx, row.Username, row)
	res.Awarded += len(awarded)
	if err != nil {
		p.logger.Warn(ctx, "badge evaluation failed",
			logger.String("prediction_id", row.ID),
			logger.String("username", row.Username),
			logger.Error(err),
		)
	}
}

func fill(row *model.Prediction, score int, actual model.Observation) {
	row.Score = &score
	row.ActualLat = &actual.Lat
	row.ActualLon = &actual.Lon
	row.ActualWindSpeed = &actual.WindSpeed
	row.ActualPressure = &actual.Pressure
}
