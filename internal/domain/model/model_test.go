package model_test

import (
	"testing"

	"github.com/okian/stormcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStormScheduleLookups(t *testing.T) {
	Convey("Given a storm with a base fix and two prediction checkpoints", t, func() {
		storm := model.StormSchedule{
			ID: "ian-2022",
			Checkpoints: []model.Checkpoint{
				{Label: model.Label0000, Kind: model.KindBase, Lat: 24.0, Lon: -83.0},
				{Label: model.Label0600, Kind: model.KindPrediction, Lat: 24.6, Lon: -82.9, WindSpeed: 120, Pressure: 952},
				{Label: model.Label1200, Kind: model.KindPrediction, Lat: 25.2, Lon: -82.7, WindSpeed: 140, Pressure: 945},
			},
		}

		Convey("Then prediction checkpoints are found by label", func() {
			cp, ok := storm.Checkpoint(model.Label1200)
			So(ok, ShouldBeTrue)
			So(cp.Observation(), ShouldResemble, model.Observation{Lat: 25.2, Lon: -82.7, WindSpeed: 140, Pressure: 945})
		})

		Convey("Then the base fix is not a prediction checkpoint", func() {
			_, ok := storm.Checkpoint(model.Label0000)
			So(ok, ShouldBeFalse)

			base, ok := storm.Base()
			So(ok, ShouldBeTrue)
			So(base.Lat, ShouldEqual, 24.0)
		})

		Convey("Then a missing label reports absence", func() {
			_, ok := storm.Checkpoint(model.Label1800)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestPredictionHelpers(t *testing.T) {
	Convey("Given an unscored prediction", t, func() {
		p := model.Prediction{PredictedLat: 26, PredictedLon: -81.4, PredictedWindSpeed: 98, PredictedPressure: 962}

		So(p.Predicted(), ShouldResemble, model.Observation{Lat: 26, Lon: -81.4, WindSpeed: 98, Pressure: 962})
	})
}
