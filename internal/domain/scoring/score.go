package scoring

import (
	"math"

	"github.com/okian/stormcast/internal/domain/model"
)

// Score ceilings and decay constants.
const (
	MaxTrackScore     = 1000
	MaxIntensityScore = 1000
	MaxTotalScore     = MaxTrackScore + MaxIntensityScore

	trackDecay     = 0.01
	windWeight     = 600.0
	windDecay      = 0.02
	pressureWeight = 400.0
	pressureDecay  = 0.05
)

// TrackScore converts a positional error in nautical miles to [0,1000].
func TrackScore(distanceNM float64) int {
	return int(math.Round(math.Max(0, MaxTrackScore*math.Exp(-trackDecay*math.Abs(distanceNM)))))
}

// IntensityScore converts wind (mph) and pressure (mb) errors to [0,1000].
// Wind decays more slowly than pressure.
func IntensityScore(windErr, pressureErr float64) int {
	wind := windWeight * math.Exp(-windDecay*math.Abs(windErr))
	pressure := pressureWeight * math.Exp(-pressureDecay*math.Abs(pressureErr))
	return int(math.Round(math.Max(0, wind+pressure)))
}

// Breakdown is the full result of scoring one forecast against the truth.
type Breakdown struct {
	DistanceNM    float64 `json:"distanceNm"`
	WindError     float64 `json:"windError"`
	PressureError float64 `json:"pressureError"`
	Track         int     `json:"trackScore"`
	Intensity     int     `json:"intensityScore"`
	Total         int     `json:"totalScore"`
}

// Evaluate scores predicted against actual.
func Evaluate(predicted, actual model.Observation) Breakdown {
	b := Breakdown{
		DistanceNM:    Distance(predicted.Lat, predicted.Lon, actual.Lat, actual.Lon),
		WindError:     math.Abs(predicted.WindSpeed - actual.WindSpeed),
		PressureError: math.Abs(predicted.Pressure - actual.Pressure),
	}
	b.Track = TrackScore(b.DistanceNM)
	b.Intensity = IntensityScore(b.WindError, b.PressureError)
	b.Total = b.Track + b.Intensity
	return b
}
