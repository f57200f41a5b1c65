package gameclock

import (
	"time"

	"github.com/okian/stormcast/internal/domain/model"
)

// Boundary is the instant a checkpoint stops accepting predictions and
// becomes scoreable.
type Boundary struct {
	Storm model.StormSchedule
	Label string
	At    time.Time
}

// Key identifies the boundary across ticks.
func (b Boundary) Key() string {
	return b.Storm.ID + "/" + b.Label + "@" + b.At.UTC().Format(time.RFC3339)
}

// ClosingBoundaries returns GameStart+6h/12h/18h/24h for each prediction
// checkpoint the storm carries, in label order.
func ClosingBoundaries(storm model.StormSchedule) []Boundary {
	var out []Boundary
	for i, label := range Labels {
		if _, ok := storm.Checkpoint(label); !ok {
			continue
		}
		out = append(out, Boundary{
			Storm: storm,
			Label: label,
			At:    storm.GameStart.Add(time.Duration(i+1) * CheckpointSpan),
		})
	}
	return out
}

// ClosedBetween returns every boundary with from < At <= to.
func ClosedBetween(storms []model.StormSchedule, from, to time.Time) []Boundary {
	var out []Boundary
	for _, s := range storms {
		for _, b := range ClosingBoundaries(s) {
			if b.At.After(from) && !b.At.After(to) {
				out = append(out, b)
			}
		}
	}
	return out
}
