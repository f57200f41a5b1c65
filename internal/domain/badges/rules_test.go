package badges_test

import (
	"testing"

	"github.com/okian/stormcast/internal/domain/badges"
	"github.com/okian/stormcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func scored(score int) *model.Prediction {
	return &model.Prediction{ID: "p1", StormID: "ian-2022", CheckpointLabel: "0600", Score: &score}
}

func TestShouldAwardBadge(t *testing.T) {
	Convey("Given prediction-count milestones", t, func() {
		So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalPredictions: 10}}, badges.Veteran10), ShouldBeTrue)
		So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalPredictions: 9}}, badges.Veteran10), ShouldBeFalse)

		Convey("Then counts match exactly", func() {
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalPredictions: 11}}, badges.Veteran10), ShouldBeFalse)
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalPredictions: 1}}, badges.FirstPrediction), ShouldBeTrue)
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalPredictions: 2}}, badges.FirstPrediction), ShouldBeFalse)
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{UniqueStorms: 5}}, badges.StormSurvivor5), ShouldBeTrue)
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{UniqueStorms: 6}}, badges.StormSurvivor5), ShouldBeFalse)
		})
	})

	Convey("Given cumulative points milestones", t, func() {
		Convey("Then a jump past the threshold still qualifies", func() {
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalScore: 4999}}, badges.Points5k), ShouldBeFalse)
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalScore: 5000}}, badges.Points5k), ShouldBeTrue)
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalScore: 6800}}, badges.Points5k), ShouldBeTrue)
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalScore: 6800}}, badges.Points25k), ShouldBeFalse)
		})
	})

	Convey("Given performance badges", t, func() {
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(1899)}, badges.DiamondPrediction), ShouldBeFalse)
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(1900)}, badges.DiamondPrediction), ShouldBeTrue)
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(1950)}, badges.Oracle), ShouldBeTrue)
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(1999)}, badges.PerfectStorm), ShouldBeFalse)
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(2000)}, badges.PerfectStorm), ShouldBeTrue)

		Convey("Then they need a scored latest prediction", func() {
			So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{BestScore: 2000}}, badges.PerfectStorm), ShouldBeFalse)
			So(badges.ShouldAwardBadge(badges.Snapshot{Latest: &model.Prediction{}}, badges.DiamondPrediction), ShouldBeFalse)
		})
	})

	Convey("Given the lucky number badge", t, func() {
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(1777)}, badges.LuckyNumber), ShouldBeTrue)
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(777)}, badges.LuckyNumber), ShouldBeTrue)
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(1776)}, badges.LuckyNumber), ShouldBeFalse)
		So(badges.ShouldAwardBadge(badges.Snapshot{Latest: scored(77)}, badges.LuckyNumber), ShouldBeFalse)
	})

	Convey("Given an unknown badge id", t, func() {
		So(badges.ShouldAwardBadge(badges.Snapshot{Stats: model.UserStats{TotalPredictions: 1}}, "mystery"), ShouldBeFalse)
	})
}

func TestQualifying(t *testing.T) {
	Convey("Given one event that satisfies several rules", t, func() {
		snap := badges.Snapshot{
			Stats:  model.UserStats{TotalPredictions: 1, TotalScore: 5200, UniqueStorms: 5},
			Latest: scored(1777),
		}
		So(badges.Qualifying(snap), ShouldResemble, []string{badges.FirstPrediction, badges.Points5k, badges.StormSurvivor5, badges.LuckyNumber})
	})

	Convey("Given the catalog", t, func() {
		Convey("Then every entry has a rule and every rule has an entry", func() {
			catalog := badges.Catalog()
			So(len(catalog), ShouldEqual, len(badges.Rules()))
			for _, d := range catalog {
				r, ok := badges.RuleFor(d.BadgeID)
				So(ok, ShouldBeTrue)
				So(r.Category, ShouldEqual, d.Category)
			}
		})
	})
}
