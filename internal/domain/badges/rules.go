package badges

import (
	"strconv"
	"strings"

	"github.com/okian/stormcast/internal/domain/model"
)

// Snapshot is the input every rule is evaluated against.
type Snapshot struct {
	Stats  model.UserStats
	Latest *model.Prediction
}

func (s Snapshot) latestScore() (int, bool) {
	if s.Latest == nil || s.Latest.Score == nil {
		return 0, false
	}
	return *s.Latest.Score, true
}

// Metric names the quantity a rule measures, for progress reporting.
type Metric string

const (
	MetricPredictions Metric = "totalPredictions"
	MetricTotalScore  Metric = "totalScore"
	MetricStorms      Metric = "uniqueStorms"
	MetricScore       Metric = "score"
	MetricLucky       Metric = "lucky"
)

// Rule awards BadgeID when Matches holds.
type Rule struct {
	BadgeID  string
	Category string
	Metric   Metric
	Target   int
	Matches  func(Snapshot) bool
}

// Counts fire on the exact crossing, points on or above the threshold.
func predictionsEqual(n int) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.Stats.TotalPredictions == n }
}

func pointsAtLeast(n int) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.Stats.TotalScore >= n }
}

func stormsEqual(n int) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.Stats.UniqueStorms == n }
}

func scoreAtLeast(n int) func(Snapshot) bool {
	return func(s Snapshot) bool {
		v, ok := s.latestScore()
		return ok && v >= n
	}
}

func scoreEqual(n int) func(Snapshot) bool {
	return func(s Snapshot) bool {
		v, ok := s.latestScore()
		return ok && v == n
	}
}

func lucky(s Snapshot) bool {
	v, ok := s.latestScore()
	return ok && strings.HasSuffix(strconv.Itoa(v), "777")
}

var rules = []Rule{
	{FirstPrediction, CategoryMilestone, MetricPredictions, 1, predictionsEqual(1)},
	{Veteran10, CategoryMilestone, MetricPredictions, 10, predictionsEqual(10)},
	{Veteran50, CategoryMilestone, MetricPredictions, 50, predictionsEqual(50)},
	{Veteran100, CategoryMilestone, MetricPredictions, 100, predictionsEqual(100)},
	{Veteran500, CategoryMilestone, MetricPredictions, 500, predictionsEqual(500)},
	{Points5k, CategoryMilestone, MetricTotalScore, 5000, pointsAtLeast(5000)},
	{Points25k, CategoryMilestone, MetricTotalScore, 25000, pointsAtLeast(25000)},
	{Points50k, CategoryMilestone, MetricTotalScore, 50000, pointsAtLeast(50000)},
	{Points100k, CategoryMilestone, MetricTotalScore, 100000, pointsAtLeast(100000)},
	{StormSurvivor5, CategoryMilestone, MetricStorms, 5, stormsEqual(5)},
	{StormSurvivor12, CategoryMilestone, MetricStorms, 12, stormsEqual(12)},
	{DiamondPrediction, CategoryPerformance, MetricScore, 1900, scoreAtLeast(1900)},
	{Oracle, CategoryPerformance, MetricScore, 1950, scoreAtLeast(1950)},
	{PerfectStorm, CategoryPerformance, MetricScore, 2000, scoreEqual(2000)},
	{LuckyNumber, CategorySpecial, MetricLucky, 1, lucky},
}

// Rules returns a copy of the rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// RuleFor returns the rule awarding badgeID.
func RuleFor(badgeID string) (Rule, bool) {
	for _, r := range rules {
		if r.BadgeID == badgeID {
			return r, true
		}
	}
	return Rule{}, false
}

// Qualifying returns every badge id whose rule matches snap, in table order.
func Qualifying(snap Snapshot) []string {
	var out []string
	for _, r := range rules {
		if r.Matches(snap) {
			out = append(out, r.BadgeID)
		}
	}
	return out
}

// ShouldAwardBadge reports whether snap satisfies badgeID's rule.
// Unknown ids are never eligible.
func ShouldAwardBadge(snap Snapshot, badgeID string) bool {
	r, ok := RuleFor(badgeID)
	return ok && r.Matches(snap)
}
