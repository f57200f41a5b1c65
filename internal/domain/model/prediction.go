package model

import "time"

// Prediction is one user's forecast for one (storm, checkpoint) pair.
// Score and the Actual* fields stay nil until the scoring pass fills them.
type Prediction struct {
	ID                 string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username           string    `gorm:"not null;uniqueIndex:idx_prediction_owner,priority:1;index:idx_prediction_user" json:"username"`
	StormID            string    `gorm:"not null;uniqueIndex:idx_prediction_owner,priority:2;index:idx_prediction_checkpoint,priority:1" json:"stormId"`
	CheckpointLabel    string    `gorm:"not null;uniqueIndex:idx_prediction_owner,priority:3;index:idx_prediction_checkpoint,priority:2" json:"checkpoint"`
	PredictedLat       float64   `gorm:"not null" json:"predictedLat"`
	PredictedLon       float64   `gorm:"not null" json:"predictedLon"`
	PredictedWindSpeed float64   `gorm:"not null" json:"predictedWindSpeed"`
	PredictedPressure  float64   `gorm:"not null" json:"predictedPressure"`
	SubmittedAt        time.Time `gorm:"not null" json:"submittedAt"`
	Score              *int      `json:"score"`
	ActualLat          *float64  `json:"actualLat"`
	ActualLon          *float64  `json:"actualLon"`
	ActualWindSpeed    *float64  `json:"actualWindSpeed"`
	ActualPressure     *float64  `json:"actualPressure"`
}

// TableName pins the table name.
func (Prediction) TableName() string { return "predictions" }

// Predicted returns the forecast values.
func (p Prediction) Predicted() Observation {
	return Observation{
		Lat:       p.PredictedLat,
		Lon:       p.PredictedLon,
		WindSpeed: p.PredictedWindSpeed,
		Pressure:  p.PredictedPressure,
	}
}
