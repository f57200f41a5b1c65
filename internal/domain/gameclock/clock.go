// Package gameclock decides which storm is in play and which checkpoint is
// open for predictions at a given instant. Everything here is a pure
// function of the instant and the loaded schedule.
package gameclock

import (
	"time"

	"github.com/okian/stormcast/internal/domain/model"
)

// CheckpointSpan is the spacing between checkpoints; GameSpan covers all four.
const (
	CheckpointSpan = 6 * time.Hour
	GameSpan       = 4 * CheckpointSpan
)

// Labels lists prediction labels in the order their windows open.
var Labels = []string{model.Label0600, model.Label1200, model.Label1800, model.Label0000}

// LabelIndex returns the 0-based position of label in Labels.
func LabelIndex(label string) (int, bool) {
	for i, l := range Labels {
		if l == label {
			return i, true
		}
	}
	return 0, false
}

// ActiveStorm returns the first storm whose [GameStart, GameEnd) contains
// now, falling back to the first storm. It is false only for an empty schedule.
func ActiveStorm(schedule []model.StormSchedule, now time.Time) (model.StormSchedule, bool) {
	if len(schedule) == 0 {
		return model.StormSchedule{}, false
	}
	for _, s := range schedule {
		if !now.Before(s.GameStart) && now.Before(s.GameEnd) {
			return s, true
		}
	}
	return schedule[0], true
}

// ActiveCheckpoint returns the label currently accepting predictions.
// Window i covers [GameStart+6h*i, GameStart+6h*(i+1)) and is only open
// when the storm carries that prediction checkpoint.
func ActiveCheckpoint(storm model.StormSchedule, now time.Time) (string, bool) {
	elapsed := now.Sub(storm.GameStart)
	if elapsed < 0 || elapsed >= GameSpan {
		return "", false
	}
	label := Labels[elapsed/CheckpointSpan]
	if _, ok := storm.Checkpoint(label); !ok {
		return "", false
	}
	return label, true
}

// NextUnlock returns the next instant strictly after now at which a
// prediction window opens.
func NextUnlock(storm model.StormSchedule, now time.Time) (time.Time, bool) {
	if len(storm.Checkpoints) == 0 {
		return time.Time{}, false
	}
	for i := range Labels {
		at := storm.GameStart.Add(time.Duration(i) * CheckpointSpan)
		if at.After(now) {
			return at, true
		}
	}
	return time.Time{}, false
}

// HoursUntilNextCheckpoint is NextUnlock expressed in hours from now.
func HoursUntilNextCheckpoint(storm model.StormSchedule, now time.Time) (float64, bool) {
	at, ok := NextUnlock(storm, now)
	if !ok {
		return 0, false
	}
	return at.Sub(now).Hours(), true
}
