package simulate

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	service "github.com/okian/stormcast/internal/app"
)

// ErrNoOpenCheckpoint means there is nothing to forecast right now.
var ErrNoOpenCheckpoint = errors.New("no checkpoint is open")

// targetFrom picks the open checkpoint and the latest revealed fix.
func targetFrom(gs service.GameState) (Target, error) {
	if gs.Storm == nil || gs.ActiveCheckpoint == nil {
		return Target{}, ErrNoOpenCheckpoint
	}
	t := Target{StormID: gs.Storm.ID, Checkpoint: *gs.ActiveCheckpoint}
	found := false
	for _, cp := range gs.Storm.Checkpoints {
		if cp.Observation != nil {
			t.Anchor = *cp.Observation
			found = true
		}
	}
	if !found {
		return Target{}, errors.New("storm reveals no observation to forecast from")
	}
	return t, nil
}

// generateForecasts creates one jittered forecast per synthetic user.
func generateForecasts(t Target, users int, rng *rand.Rand) []Forecast {
	run := uuid.NewString()[:8]
	out := make([]Forecast, users)
	for i := range out {
		out[i] = Forecast{
			Username:   "sim-" + run + "-" + uuid.NewString()[:8],
			StormID:    t.StormID,
			Checkpoint: t.Checkpoint,
			Lat:        clamp(jitter(rng, t.Anchor.Lat, latJitterDeg), -90, 90),
			Lon:        jitter(rng, t.Anchor.Lon, lonJitterDeg),
			WindSpeed:  math.Max(0, jitter(rng, t.Anchor.WindSpeed, windJitterMph)),
			Pressure:   jitter(rng, t.Anchor.Pressure, pressureJitterMb),
		}
	}
	return out
}

func jitter(rng *rand.Rand, v, spread float64) float64 {
	return math.Round((v+(rng.Float64()*2-1)*spread)*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
