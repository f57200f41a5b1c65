package badges

import (
	"math"

	"github.com/okian/stormcast/internal/domain/model"
)

// Progress describes how close a user is to one badge.
type Progress struct {
	BadgeID  string  `json:"badgeId"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Tier     string  `json:"tier"`
	Current  int     `json:"current"`
	Target   int     `json:"target"`
	Earned   bool    `json:"earned"`
	Percent  float64 `json:"percent"`
}

// ComputeProgress reports progress for every definition in defs. Score
// badges measure the user's best single score.
func ComputeProgress(stats model.UserStats, held []model.UserBadge, defs []model.BadgeDefinition) []Progress {
	earned := make(map[string]bool, len(held))
	for _, b := range held {
		earned[b.BadgeID] = true
	}

	out := make([]Progress, 0, len(defs))
	for _, d := range defs {
		p := Progress{
			BadgeID:  d.BadgeID,
			Name:     d.Name,
			Category: d.Category,
			Tier:     d.Tier,
			Earned:   earned[d.BadgeID],
		}
		if r, ok := RuleFor(d.BadgeID); ok {
			p.Target = r.Target
			p.Current = current(stats, r.Metric, p.Earned)
		}
		p.Percent = percent(p.Current, p.Target, p.Earned)
		out = append(out, p)
	}
	return out
}

func current(stats model.UserStats, m Metric, earned bool) int {
	switch m {
	case MetricPredictions:
		return stats.TotalPredictions
	case MetricTotalScore:
		return stats.TotalScore
	case MetricStorms:
		return stats.UniqueStorms
	case MetricScore:
		return stats.BestScore
	case MetricLucky:
		if earned {
			return 1
		}
	}
	return 0
}

func percent(cur, target int, earned bool) float64 {
	if earned {
		return 100
	}
	if target <= 0 {
		return 0
	}
	pct := float64(cur) / float64(target) * 100
	return math.Round(math.Min(100, math.Max(0, pct))*10) / 10
}
