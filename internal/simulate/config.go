// Package simulate plays the forecasting game over HTTP with synthetic users.
package simulate

import (
	"time"

	"github.com/okian/stormcast/internal/domain/model"
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL string        // Base URL of the service
	Users   int           // Number of synthetic players
	Workers int           // Number of concurrent submitters
	Timeout time.Duration // HTTP request timeout
	Score   bool          // Trigger the admin scoring endpoint after submitting
	Verbose bool          // Log every submission
}

// Forecast is the body of POST /predictions.
type Forecast struct {
	Username   string  `json:"username"`
	StormID    string  `json:"stormId"`
	Checkpoint string  `json:"checkpoint"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	WindSpeed  float64 `json:"windSpeed"`
	Pressure   float64 `json:"pressure"`
}

// Target is the storm and checkpoint a run forecasts for, and the last
// revealed fix the forecasts are jittered around.
type Target struct {
	StormID    string
	Checkpoint string
	Anchor     model.Observation
}

// Stats holds run statistics.
type Stats struct {
	Generated          int
	Submitted          int
	Accepted           int
	Duplicate          int
	Rejected           int
	Failed             int
	Scored             int
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
