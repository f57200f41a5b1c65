package gameclock_test

import (
	"testing"
	"time"

	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var t0 = time.Date(2024, 9, 26, 0, 0, 0, 0, time.UTC)

func fullStorm(id string, start time.Time) model.StormSchedule {
	return model.StormSchedule{
		ID:        id,
		Name:      id,
		GameStart: start,
		GameEnd:   start.Add(24 * time.Hour),
		Checkpoints: []model.Checkpoint{
			{Label: model.Label0000, Kind: model.KindBase},
			{Label: model.Label0600, Kind: model.KindPrediction},
			{Label: model.Label1200, Kind: model.KindPrediction},
			{Label: model.Label1800, Kind: model.KindPrediction},
			{Label: model.Label0000, Kind: model.KindPrediction},
		},
	}
}

func TestActiveCheckpoint(t *testing.T) {
	Convey("Given a storm starting at T", t, func() {
		storm := fullStorm("ian-2022", t0)

		cases := []struct {
			at    time.Duration
			label string
			ok    bool
		}{
			{-time.Hour, "", false},
			{-time.Nanosecond, "", false},
			{0, model.Label0600, true},
			{5*time.Hour + 59*time.Minute, model.Label0600, true},
			{6 * time.Hour, model.Label1200, true},
			{12 * time.Hour, model.Label1800, true},
			{18 * time.Hour, model.Label0000, true},
			{24*time.Hour - time.Nanosecond, model.Label0000, true},
			{24 * time.Hour, "", false},
			{72 * time.Hour, "", false},
		}

		for _, c := range cases {
			label, ok := gameclock.ActiveCheckpoint(storm, t0.Add(c.at))
			So(ok, ShouldEqual, c.ok)
			So(label, ShouldEqual, c.label)
		}

		Convey("Then a storm without checkpoints is never open", func() {
			storm.Checkpoints = nil
			_, ok := gameclock.ActiveCheckpoint(storm, t0.Add(time.Hour))
			So(ok, ShouldBeFalse)
		})

		Convey("Then a window whose checkpoint is missing is not open", func() {
			storm.Checkpoints = storm.Checkpoints[:3]

			label, ok := gameclock.ActiveCheckpoint(storm, t0.Add(7*time.Hour))
			So(ok, ShouldBeTrue)
			So(label, ShouldEqual, model.Label1200)

			_, ok = gameclock.ActiveCheckpoint(storm, t0.Add(13*time.Hour))
			So(ok, ShouldBeFalse)
			_, ok = gameclock.ActiveCheckpoint(storm, t0.Add(19*time.Hour))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestActiveStorm(t *testing.T) {
	Convey("Given a schedule of consecutive storms", t, func() {
		schedule := []model.StormSchedule{
			fullStorm("ian-2022", t0),
			fullStorm("michael-2018", t0.Add(24*time.Hour)),
		}

		Convey("Then the storm whose window contains now is chosen", func() {
			s, ok := gameclock.ActiveStorm(schedule, t0.Add(30*time.Hour))
			So(ok, ShouldBeTrue)
			So(s.ID, ShouldEqual, "michael-2018")
		})

		Convey("Then the window end is exclusive", func() {
			s, _ := gameclock.ActiveStorm(schedule, t0.Add(24*time.Hour))
			So(s.ID, ShouldEqual, "michael-2018")
		})

		Convey("Then the first storm is the fallback", func() {
			s, ok := gameclock.ActiveStorm(schedule, t0.Add(-48*time.Hour))
			So(ok, ShouldBeTrue)
			So(s.ID, ShouldEqual, "ian-2022")
		})

		Convey("Then an empty schedule has no storm", func() {
			_, ok := gameclock.ActiveStorm(nil, t0)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestHoursUntilNextCheckpoint(t *testing.T) {
	Convey("Given a storm starting at T", t, func() {
		storm := fullStorm("ian-2022", t0)

		Convey("Then before the start the first window is next", func() {
			h, ok := gameclock.HoursUntilNextCheckpoint(storm, t0.Add(-2*time.Hour))
			So(ok, ShouldBeTrue)
			So(h, ShouldEqual, 2)
		})

		Convey("Then exactly at an unlock the following one is next", func() {
			h, ok := gameclock.HoursUntilNextCheckpoint(storm, t0.Add(6*time.Hour))
			So(ok, ShouldBeTrue)
			So(h, ShouldEqual, 6)
		})

		Convey("Then partial hours are reported", func() {
			h, _ := gameclock.HoursUntilNextCheckpoint(storm, t0.Add(90*time.Minute))
			So(h, ShouldEqual, 4.5)
		})

		Convey("Then nothing unlocks after the last window opens", func() {
			_, ok := gameclock.HoursUntilNextCheckpoint(storm, t0.Add(18*time.Hour))
			So(ok, ShouldBeFalse)
		})
	})
}
