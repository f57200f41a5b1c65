// Package model contains domain models passed between layers.
package model

import "time"

// CheckpointKind distinguishes the starting fix from scoreable checkpoints.
type CheckpointKind string

const (
	KindBase       CheckpointKind = "base"
	KindPrediction CheckpointKind = "prediction"
)

// Checkpoint labels in elapsed order; "0000" is the 24h checkpoint.
const (
	Label0600 = "0600"
	Label1200 = "1200"
	Label1800 = "1800"
	Label0000 = "0000"
)

// Observation is a storm position and intensity, predicted or recorded.
type Observation struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	WindSpeed float64 `json:"windSpeed"` // mph
	Pressure  float64 `json:"pressure"`  // mb
}

// Checkpoint is one recorded fix of a historical storm.
type Checkpoint struct {
	Label     string         `json:"label" yaml:"label"`
	Kind      CheckpointKind `json:"kind" yaml:"kind"`
	Lat       float64        `json:"lat" yaml:"lat"`
	Lon       float64        `json:"lon" yaml:"lon"`
	WindSpeed float64        `json:"windSpeed" yaml:"windSpeed"`
	Pressure  float64        `json:"pressure" yaml:"pressure"`
	Category  int            `json:"category" yaml:"category"`
}

// Observation returns the recorded truth at this checkpoint.
func (c Checkpoint) Observation() Observation {
	return Observation{Lat: c.Lat, Lon: c.Lon, WindSpeed: c.WindSpeed, Pressure: c.Pressure}
}

// StormSchedule is a storm in the game rotation. Immutable after load.
type StormSchedule struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Year        int          `json:"year" yaml:"year"`
	GameStart   time.Time    `json:"gameStart" yaml:"gameStart"`
	GameEnd     time.Time    `json:"gameEnd" yaml:"gameEnd"`
	Checkpoints []Checkpoint `json:"checkpoints" yaml:"checkpoints"`
}

// Checkpoint returns the prediction checkpoint carrying label.
func (s StormSchedule) Checkpoint(label string) (Checkpoint, bool) {
	for _, c := range s.Checkpoints {
		if c.Kind == KindPrediction && c.Label == label {
			return c, true
		}
	}
	return Checkpoint{}, false
}

// Base returns the hour-0 checkpoint.
func (s StormSchedule) Base() (Checkpoint, bool) {
	for _, c := range s.Checkpoints {
		if c.Kind == KindBase {
			return c, true
		}
	}
	return Checkpoint{}, false
}
