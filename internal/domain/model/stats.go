package model

// UserStats aggregates a user's scored predictions. Derived, never stored.
type UserStats struct {
	Username         string  `json:"username"`
	TotalPredictions int     `json:"totalPredictions"`
	TotalScore       int     `json:"totalScore"`
	UniqueStorms     int     `json:"uniqueStorms"`
	AverageScore     float64 `json:"averageScore"`
	BestScore        int     `json:"bestScore"`
}

// LeaderboardEntry is one ranked row, by summed score.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	Username     string  `json:"username"`
	TotalScore   int     `json:"totalScore"`
	Predictions  int     `json:"predictions"`
	AverageScore float64 `json:"averageScore"`
	BestScore    int     `json:"bestScore"`
}
