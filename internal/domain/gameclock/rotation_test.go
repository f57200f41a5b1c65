package gameclock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseMode(t *testing.T) {
	Convey("Given mode names", t, func() {
		m, err := gameclock.ParseMode(" Daily ")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, gameclock.ModeDaily)

		_, err = gameclock.ParseMode("hourly")
		So(errors.Is(err, gameclock.ErrUnknownMode), ShouldBeTrue)
	})
}

func TestRotation(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := []model.StormSchedule{
		fullStorm("ian-2022", t0),
		fullStorm("michael-2018", t0),
		fullStorm("katrina-2005", t0),
	}

	Convey("Given a daily rotation", t, func() {
		r, err := gameclock.NewRotation(schedule, gameclock.ModeDaily, epoch)
		So(err, ShouldBeNil)

		Convey("Then day k plays storm k mod n", func() {
			s, ok := r.Current(epoch.Add(4*24*time.Hour + 3*time.Hour))
			So(ok, ShouldBeTrue)
			So(s.ID, ShouldEqual, "michael-2018")
			So(s.GameStart, ShouldEqual, epoch.Add(4*24*time.Hour))
			So(s.GameEnd, ShouldEqual, epoch.Add(5*24*time.Hour))

			label, ok := gameclock.ActiveCheckpoint(s, epoch.Add(4*24*time.Hour+3*time.Hour))
			So(ok, ShouldBeTrue)
			So(label, ShouldEqual, model.Label0600)
		})

		Convey("Then instants before the epoch wrap backwards", func() {
			s, _ := r.Current(epoch.Add(-time.Hour))
			So(s.ID, ShouldEqual, "katrina-2005")
			So(s.GameStart, ShouldEqual, epoch.Add(-24*time.Hour))
		})

		Convey("Then the loaded schedule is not mutated", func() {
			_, _ = r.Current(epoch.Add(50 * 24 * time.Hour))
			So(r.Schedule()[0].GameStart, ShouldEqual, t0)
		})

		Convey("Then candidates cover the previous slot", func() {
			now := epoch.Add(2 * 24 * time.Hour)
			cs := r.Candidates(now.Add(-time.Minute), now)
			ids := make([]string, 0, len(cs))
			for _, c := range cs {
				ids = append(ids, c.ID)
			}
			So(ids, ShouldContain, "michael-2018")
			So(ids, ShouldContain, "katrina-2005")

			closed := gameclock.ClosedBetween(cs, now.Add(-time.Minute), now)
			So(len(closed), ShouldEqual, 1)
			So(closed[0].Storm.ID, ShouldEqual, "michael-2018")
			So(closed[0].Label, ShouldEqual, model.Label0000)
		})
	})

	Convey("Given a weekly rotation", t, func() {
		r, err := gameclock.NewRotation(schedule, gameclock.ModeWeekly, epoch)
		So(err, ShouldBeNil)

		s, _ := r.Current(epoch.Add(10 * 24 * time.Hour))
		So(s.ID, ShouldEqual, "michael-2018")
		So(s.GameStart, ShouldEqual, epoch.Add(7*24*time.Hour))

		Convey("Then checkpoints close after the first day of the week", func() {
			_, ok := gameclock.ActiveCheckpoint(s, epoch.Add(10*24*time.Hour))
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a static rotation", t, func() {
		r, err := gameclock.NewRotation(schedule, gameclock.ModeStatic, epoch)
		So(err, ShouldBeNil)

		s, ok := r.Current(t0.Add(time.Hour))
		So(ok, ShouldBeTrue)
		So(s.ID, ShouldEqual, "ian-2022")
		So(len(r.Candidates(t0, t0.Add(time.Minute))), ShouldEqual, 3)

		found, ok := r.Lookup("katrina-2005")
		So(ok, ShouldBeTrue)
		So(found.ID, ShouldEqual, "katrina-2005")
		_, ok = r.Lookup("andrew-1992")
		So(ok, ShouldBeFalse)
	})

	Convey("Given an empty schedule", t, func() {
		r, err := gameclock.NewRotation(nil, gameclock.ModeDaily, epoch)
		So(err, ShouldBeNil)
		_, ok := r.Current(epoch)
		So(ok, ShouldBeFalse)
		So(r.Candidates(epoch, epoch.Add(time.Minute)), ShouldBeEmpty)
	})

	Convey("Given an invalid mode", t, func() {
		_, err := gameclock.NewRotation(schedule, gameclock.Mode("monthly"), epoch)
		So(err, ShouldNotBeNil)
	})
}
