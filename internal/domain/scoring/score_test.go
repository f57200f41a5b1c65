package scoring_test

import (
	"testing"

	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTrackScore(t *testing.T) {
	Convey("Given the track score", t, func() {
		Convey("Then a perfect position earns the ceiling", func() {
			So(scoring.TrackScore(0), ShouldEqual, 1000)
		})

		Convey("Then it decays with distance", func() {
			expected := []int{1000, 607, 368, 223, 135, 82, 50, 30, 18, 11, 7}
			for i, want := range expected {
				So(scoring.TrackScore(float64(i*50)), ShouldEqual, want)
			}
		})

		Convey("Then it is strictly decreasing over the near range", func() {
			prev := scoring.TrackScore(0)
			for d := 1; d <= 200; d++ {
				cur := scoring.TrackScore(float64(d))
				So(cur, ShouldBeLessThan, prev)
				prev = cur
			}
		})

		Convey("Then it never goes negative", func() {
			So(scoring.TrackScore(12000), ShouldEqual, 0)
			So(scoring.TrackScore(1e9), ShouldBeGreaterThanOrEqualTo, 0)
		})
	})
}

func TestIntensityScore(t *testing.T) {
	Convey("Given the intensity score", t, func() {
		Convey("Then perfect intensity earns the ceiling", func() {
			So(scoring.IntensityScore(0, 0), ShouldEqual, 1000)
		})

		Convey("Then the sign of each error does not matter", func() {
			for _, e := range [][2]float64{{5, 3}, {12.5, -7}, {-40, 20}, {0, -9}} {
				So(scoring.IntensityScore(e[0], e[1]), ShouldEqual, scoring.IntensityScore(-e[0], -e[1]))
				So(scoring.IntensityScore(e[0], e[1]), ShouldEqual, scoring.IntensityScore(-e[0], e[1]))
			}
		})

		Convey("Then wind error is more forgiving than the same pressure error", func() {
			for e := 1; e <= 45; e++ {
				So(scoring.IntensityScore(float64(e), 0), ShouldBeGreaterThan, scoring.IntensityScore(0, float64(e)))
			}
		})

		Convey("Then the curves cross just above 45", func() {
			So(scoring.IntensityScore(46, 0), ShouldEqual, 639)
			So(scoring.IntensityScore(0, 46), ShouldEqual, 640)
		})

		Convey("Then large errors bottom out at zero", func() {
			So(scoring.IntensityScore(5000, 5000), ShouldEqual, 0)
		})
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a close forecast for a landfalling storm", t, func() {
		predicted := model.Observation{Lat: 26.0, Lon: -81.4, WindSpeed: 98, Pressure: 962}
		actual := model.Observation{Lat: 26.1, Lon: -81.5, WindSpeed: 100, Pressure: 960}

		b := scoring.Evaluate(predicted, actual)

		Convey("Then every component scores highly", func() {
			So(b.DistanceNM, ShouldBeLessThan, 10)
			So(b.Track, ShouldBeGreaterThan, 900)
			So(b.Intensity, ShouldEqual, 938)
			So(b.WindError, ShouldEqual, 2)
			So(b.PressureError, ShouldEqual, 2)
			So(b.Total, ShouldEqual, b.Track+b.Intensity)
			So(b.Total, ShouldBeGreaterThan, 1800)
		})
	})

	Convey("Given an exact forecast", t, func() {
		obs := model.Observation{Lat: 29.2, Lon: -85.6, WindSpeed: 160, Pressure: 919}
		So(scoring.Evaluate(obs, obs).Total, ShouldEqual, scoring.MaxTotalScore)
	})
}
