// Package badges holds the badge catalog, the declarative award rules and
// the evaluator that applies them after a prediction is scored.
package badges

import "github.com/okian/stormcast/internal/domain/model"

// Badge categories.
const (
	CategoryMilestone   = "milestone"
	CategoryPerformance = "performance"
	CategorySpecial     = "special"
)

// Badge ids.
const (
	FirstPrediction   = "first_prediction"
	Veteran10         = "veteran_10"
	Veteran50         = "veteran_50"
	Veteran100        = "veteran_100"
	Veteran500        = "veteran_500"
	Points5k          = "points_5k"
	Points25k         = "points_25k"
	Points50k         = "points_50k"
	Points100k        = "points_100k"
	StormSurvivor5    = "storm_survivor_5"
	StormSurvivor12   = "storm_survivor_12"
	DiamondPrediction = "diamond_prediction"
	Oracle            = "oracle"
	PerfectStorm      = "perfect_storm"
	LuckyNumber       = "lucky_number"
)

// Catalog returns the definitions seeded into the store at startup.
func Catalog() []model.BadgeDefinition {
	return []model.BadgeDefinition{
		{BadgeID: FirstPrediction, Name: "First Forecast", Description: "Score your first prediction", Category: CategoryMilestone, Tier: "bronze", PointsValue: 10},
		{BadgeID: Veteran10, Name: "Storm Watcher", Description: "Score 10 predictions", Category: CategoryMilestone, Tier: "bronze", PointsValue: 25},
		{BadgeID: Veteran50, Name: "Storm Tracker", Description: "Score 50 predictions", Category: CategoryMilestone, Tier: "silver", PointsValue: 50},
		{BadgeID: Veteran100, Name: "Storm Chaser", Description: "Score 100 predictions", Category: CategoryMilestone, Tier: "gold", PointsValue: 100},
		{BadgeID: Veteran500, Name: "Hurricane Hunter", Description: "Score 500 predictions", Category: CategoryMilestone, Tier: "platinum", PointsValue: 250},
		{BadgeID: Points5k, Name: "Tropical Depression", Description: "Earn 5,000 total points", Category: CategoryMilestone, Tier: "bronze", PointsValue: 25},
		{BadgeID: Points25k, Name: "Tropical Storm", Description: "Earn 25,000 total points", Category: CategoryMilestone, Tier: "silver", PointsValue: 50},
		{BadgeID: Points50k, Name: "Major Hurricane", Description: "Earn 50,000 total points", Category: CategoryMilestone, Tier: "gold", PointsValue: 100},
		{BadgeID: Points100k, Name: "Category Five", Description: "Earn 100,000 total points", Category: CategoryMilestone, Tier: "platinum", PointsValue: 250},
		{BadgeID: StormSurvivor5, Name: "Storm Survivor", Description: "Forecast 5 different storms", Category: CategoryMilestone, Tier: "silver", PointsValue: 50},
		{BadgeID: StormSurvivor12, Name: "Season Veteran", Description: "Forecast 12 different storms", Category: CategoryMilestone, Tier: "gold", PointsValue: 100},
		{BadgeID: DiamondPrediction, Name: "Diamond Forecast", Description: "Score 1,900 or more on one checkpoint", Category: CategoryPerformance, Tier: "gold", PointsValue: 75},
		{BadgeID: Oracle, Name: "Oracle", Description: "Score 1,950 or more on one checkpoint", Category: CategoryPerformance, Tier: "platinum", PointsValue: 150},
		{BadgeID: PerfectStorm, Name: "Perfect Storm", Description: "Score a perfect 2,000", Category: CategoryPerformance, Tier: "platinum", PointsValue: 500},
		{BadgeID: LuckyNumber, Name: "Lucky Sevens", Description: "Score a number ending in 777", Category: CategorySpecial, Tier: "special", PointsValue: 77},
	}
}
