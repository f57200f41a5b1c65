package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
	"github.com/okian/stormcast/pkg/metrics"
)

// Submission results recorded in metrics.
const (
	resultAccepted  = "accepted"
	resultRejected  = "rejected"
	resultDuplicate = "duplicate"
	resultError     = "error"
)

// SubmitInput is a forecast as received from a client. Nil numbers are missing.
type SubmitInput struct {
	Username   string   `json:"username"`
	StormID    string   `json:"stormId"`
	Checkpoint string   `json:"checkpoint"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	WindSpeed  *float64 `json:"windSpeed"`
	Pressure   *float64 `json:"pressure"`
}

func (in SubmitInput) validate() error {
	var missing []string
	for name, v := range map[string]string{"username": in.Username, "stormId": in.StormID, "checkpoint": in.Checkpoint} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	for name, v := range map[string]*float64{"lat": in.Lat, "lon": in.Lon, "windSpeed": in.WindSpeed, "pressure": in.Pressure} {
		if v == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// SubmitPrediction records a forecast for the open checkpoint of the
// storm in play.
func (s *Service) SubmitPrediction(ctx context.Context, in SubmitInput) (model.Prediction, error) {
	p, err := s.submit(ctx, in)
	switch {
	case err == nil:
		metrics.RecordPredictionSubmitted(resultAccepted)
	case errors.Is(err, ErrDuplicate):
		metrics.RecordPredictionSubmitted(resultDuplicate)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrStormNotActive),
		errors.Is(err, ErrCheckpointNotActive), errors.Is(err, ErrUnknownCheckpoint):
		metrics.RecordPredictionSubmitted(resultRejected)
	default:
		metrics.RecordPredictionSubmitted(resultError)
	}
	return p, err
}

func (s *Service) submit(ctx context.Context, in SubmitInput) (model.Prediction, error) {
	if err := in.validate(); err != nil {
		return model.Prediction{}, err
	}
	username := strings.TrimSpace(in.Username)
	now := s.clock.Now()

	storm, ok := s.rotation.Current(now)
	if !ok || storm.ID != in.StormID {
		return model.Prediction{}, fmt.Errorf("%w: %s", ErrStormNotActive, in.StormID)
	}
	if _, ok := gameclock.LabelIndex(in.Checkpoint); !ok {
		return model.Prediction{}, fmt.Errorf("%w: %q", ErrUnknownCheckpoint, in.Checkpoint)
	}
	active, ok := gameclock.ActiveCheckpoint(storm, now)
	if !ok || active != in.Checkpoint {
		return model.Prediction{}, fmt.Errorf("%w: %s", ErrCheckpointNotActive, in.Checkpoint)
	}

	p := model.Prediction{
		ID:                 s.newID(),
		Username:           username,
		StormID:            storm.ID,
		CheckpointLabel:    in.Checkpoint,
		PredictedLat:       *in.Lat,
		PredictedLon:       *in.Lon,
		PredictedWindSpeed: *in.WindSpeed,
		PredictedPressure:  *in.Pressure,
		SubmittedAt:        now.UTC(),
	}
	if err := s.store.CreatePrediction(ctx, &p); err != nil {
		return model.Prediction{}, err
	}
	s.logger.Debug(ctx, "prediction accepted",
		logger.String("prediction_id", p.ID),
		logger.String("username", p.Username),
		logger.String("storm_id", p.StormID),
		logger.String("checkpoint", p.CheckpointLabel),
	)
	return p, nil
}

// Checkpoint statuses reported by GameState.
const (
	StatusBase     = "base"
	StatusOpen     = "open"
	StatusClosed   = "closed"
	StatusUpcoming = "upcoming"
)

// CheckpointView is a checkpoint as shown to players. Recorded values are
// only revealed for the base fix and for closed checkpoints.
type CheckpointView struct {
	Label       string               `json:"label"`
	Kind        model.CheckpointKind `json:"kind"`
	Status      string               `json:"status"`
	OpensAt     *time.Time           `json:"opensAt,omitempty"`
	ClosesAt    *time.Time           `json:"closesAt,omitempty"`
	Observation *model.Observation   `json:"observation,omitempty"`
	Category    *int                 `json:"category,omitempty"`
}

// StormView is the storm in play.
type StormView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	GameStart   time.Time        `json:"gameStart"`
	GameEnd     time.Time        `json:"gameEnd"`
	Checkpoints []CheckpointView `json:"checkpoints"`
}

// GameState is the response of GET /game/state.
type GameState struct {
	Now                      time.Time  `json:"now"`
	RotationMode             string     `json:"rotationMode"`
	Storm                    *StormView `json:"storm"`
	ActiveCheckpoint         *string    `json:"activeCheckpoint"`
	HoursUntilNextCheckpoint *float64   `json:"hoursUntilNextCheckpoint"`
}

// GameState describes the storm in play and which checkpoint is open.
func (s *Service) GameState(_ context.Context) (GameState, error) {
	now := s.clock.Now().UTC()
	gs := GameState{Now: now, RotationMode: string(s.rotation.Mode())}

	storm, ok := s.rotation.Current(now)
	if !ok {
		return gs, nil
	}
	gs.Storm = stormView(storm, now)
	if label, ok := gameclock.ActiveCheckpoint(storm, now); ok {
		gs.ActiveCheckpoint = &label
	}
	if h, ok := gameclock.HoursUntilNextCheckpoint(storm, now); ok {
		h = math.Round(h*100) / 100
		gs.HoursUntilNextCheckpoint = &h
	}
	return gs, nil
}

func stormView(storm model.StormSchedule, now time.Time) *StormView {
	v := &StormView{
		ID:        storm.ID,
		Name:      storm.Name,
		Year:      storm.Year,
		GameStart: storm.GameStart.UTC(),
		GameEnd:   storm.GameEnd.UTC(),
	}
	for _, c := range storm.Checkpoints {
		cv := CheckpointView{Label: c.Label, Kind: c.Kind}
		if c.Kind == model.KindBase {
			cv.Status = StatusBase
			reveal(&cv, c)
			v.Checkpoints = append(v.Checkpoints, cv)
			continue
		}
		i, _ := gameclock.LabelIndex(c.Label)
		opens := storm.GameStart.Add(time.Duration(i) * gameclock.CheckpointSpan).UTC()
		closes := opens.Add(gameclock.CheckpointSpan)
		cv.OpensAt, cv.ClosesAt = &opens, &closes
		switch {
		case !now.Before(closes):
			cv.Status = StatusClosed
			reveal(&cv, c)
		case !now.Before(opens):
			cv.Status = StatusOpen
		default:
			cv.Status = StatusUpcoming
		}
		v.Checkpoints = append(v.Checkpoints, cv)
	}
	return v
}

func reveal(cv *CheckpointView, c model.Checkpoint) {
	obs := c.Observation()
	cat := c.Category
	cv.Observation = &obs
	cv.Category = &cat
}

// StormSummary lists a scheduled storm without its recorded track.
type StormSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	GameStart   time.Time `json:"gameStart"`
	GameEnd     time.Time `json:"gameEnd"`
	Checkpoints []string  `json:"checkpoints"`
}

// Storms returns the loaded schedule.
func (s *Service) Storms(_ context.Context) []StormSummary {
	out := make([]StormSummary, 0, len(s.rotation.Schedule()))
	for _, st := range s.rotation.Schedule() {
		sum := StormSummary{ID: st.ID, Name: st.Name, Year: st.Year, GameStart: st.GameStart, GameEnd: st.GameEnd}
		for _, c := range st.Checkpoints {
			if c.Kind == model.KindPrediction {
				sum.Checkpoints = append(sum.Checkpoints, c.Label)
			}
		}
		out = append(out, sum)
	}
	return out
}
