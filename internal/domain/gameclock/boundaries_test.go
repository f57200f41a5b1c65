package gameclock_test

import (
	"testing"
	"time"

	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClosingBoundaries(t *testing.T) {
	Convey("Given a storm with every checkpoint", t, func() {
		storm := fullStorm("ian-2022", t0)
		bs := gameclock.ClosingBoundaries(storm)

		Convey("Then each label closes six hours after it opens", func() {
			So(len(bs), ShouldEqual, 4)
			So(bs[0].Label, ShouldEqual, model.Label0600)
			So(bs[0].At, ShouldEqual, t0.Add(6*time.Hour))
			So(bs[3].Label, ShouldEqual, model.Label0000)
			So(bs[3].At, ShouldEqual, t0.Add(24*time.Hour))
		})

		Convey("Then keys differ per storm window", func() {
			other := fullStorm("ian-2022", t0.Add(7*24*time.Hour))
			So(bs[0].Key(), ShouldNotEqual, gameclock.ClosingBoundaries(other)[0].Key())
		})
	})

	Convey("Given a storm with only two prediction checkpoints", t, func() {
		storm := fullStorm("short", t0)
		storm.Checkpoints = storm.Checkpoints[:3]
		bs := gameclock.ClosingBoundaries(storm)
		So(len(bs), ShouldEqual, 2)
		So(bs[1].Label, ShouldEqual, model.Label1200)
	})
}

func TestClosedBetween(t *testing.T) {
	Convey("Given a one-minute polling window", t, func() {
		storms := []model.StormSchedule{fullStorm("ian-2022", t0)}
		boundary := t0.Add(12 * time.Hour)

		Convey("Then a boundary at the window end is included", func() {
			got := gameclock.ClosedBetween(storms, boundary.Add(-time.Minute), boundary)
			So(len(got), ShouldEqual, 1)
			So(got[0].Label, ShouldEqual, model.Label1200)
		})

		Convey("Then a boundary at the window start is excluded", func() {
			got := gameclock.ClosedBetween(storms, boundary, boundary.Add(time.Minute))
			So(got, ShouldBeEmpty)
		})

		Convey("Then consecutive windows see each boundary once", func() {
			seen := 0
			for at := t0; at.Before(t0.Add(25 * time.Hour)); at = at.Add(time.Minute) {
				seen += len(gameclock.ClosedBetween(storms, at.Add(-time.Minute), at))
			}
			So(seen, ShouldEqual, 4)
		})
	})
}
