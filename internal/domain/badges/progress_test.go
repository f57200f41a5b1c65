package badges_test

import (
	"testing"

	"github.com/okian/stormcast/internal/domain/badges"
	"github.com/okian/stormcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestComputeProgress(t *testing.T) {
	Convey("Given a user part way through the catalog", t, func() {
		stats := model.UserStats{TotalPredictions: 5, TotalScore: 7500, UniqueStorms: 2, BestScore: 1925}
		held := []model.UserBadge{{BadgeID: badges.FirstPrediction}, {BadgeID: badges.Points5k}, {BadgeID: badges.DiamondPrediction}}

		got := badges.ComputeProgress(stats, held, badges.Catalog())
		byID := map[string]badges.Progress{}
		for _, p := range got {
			byID[p.BadgeID] = p
		}

		So(len(got), ShouldEqual, len(badges.Catalog()))

		Convey("Then earned badges are complete", func() {
			So(byID[badges.FirstPrediction].Earned, ShouldBeTrue)
			So(byID[badges.FirstPrediction].Percent, ShouldEqual, 100)
		})

		Convey("Then counters report partial progress", func() {
			p := byID[badges.Veteran10]
			So(p.Current, ShouldEqual, 5)
			So(p.Target, ShouldEqual, 10)
			So(p.Percent, ShouldEqual, 50)
			So(byID[badges.Points25k].Percent, ShouldEqual, 30)
			So(byID[badges.StormSurvivor12].Percent, ShouldEqual, 16.7)
		})

		Convey("Then score badges use the best score", func() {
			So(byID[badges.Oracle].Current, ShouldEqual, 1925)
			So(byID[badges.Oracle].Earned, ShouldBeFalse)
			So(byID[badges.Oracle].Percent, ShouldEqual, 98.7)
		})

		Convey("Then the lucky badge is all or nothing", func() {
			So(byID[badges.LuckyNumber].Target, ShouldEqual, 1)
			So(byID[badges.LuckyNumber].Current, ShouldEqual, 0)
			So(byID[badges.LuckyNumber].Percent, ShouldEqual, 0)
		})
	})

	Convey("Given a definition without a rule", t, func() {
		got := badges.ComputeProgress(model.UserStats{}, nil, []model.BadgeDefinition{{BadgeID: "retired"}})
		So(got[0].Target, ShouldEqual, 0)
		So(got[0].Percent, ShouldEqual, 0)
	})
}
