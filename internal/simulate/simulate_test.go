package simulate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	gormLogger "gorm.io/gorm/logger"

	"github.com/okian/stormcast/internal/adapters/http/api"
	"github.com/okian/stormcast/internal/adapters/repository"
	service "github.com/okian/stormcast/internal/app"
	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/internal/schedule"
	"github.com/okian/stormcast/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

var dbSeq atomic.Int64

// newGame serves the real API over an in-memory store with the clock
// offset into the first built-in storm.
func newGame(t *testing.T, offset time.Duration) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	store, err := repository.Open(ctx, repository.DriverSQLite,
		fmt.Sprintf("file:simulate_%d?mode=memory&cache=shared", dbSeq.Add(1)),
		repository.WithGormLogLevel(gormLogger.Silent))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	storms := schedule.Builtin()
	rot, err := gameclock.NewRotation(storms, gameclock.ModeStatic, storms[0].GameStart)
	if err != nil {
		t.Fatalf("rotation: %v", err)
	}
	clock := clockwork.NewFakeClockAt(storms[0].GameStart.Add(offset))
	svc := service.New(store, rot, service.WithClock(clock))
	srv := httptest.NewServer(api.NewServer(svc).Router())
	t.Cleanup(func() {
		srv.Close()
		_ = store.Close()
	})
	return srv
}

func TestRun(t *testing.T) {
	Convey("Given a game with the first checkpoint open", t, func() {
		srv := newGame(t, time.Hour)
		cfg := &Config{BaseURL: srv.URL, Users: 20, Workers: 4, Timeout: 5 * time.Second, Score: true}

		Convey("When a round is simulated", func() {
			stats, err := run(context.Background(), cfg, rand.New(rand.NewPCG(1, 2)))

			Convey("Then every forecast is accepted, scored and ranked", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 20)
				So(stats.Accepted, ShouldEqual, 20)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Scored, ShouldEqual, 20)
				So(stats.LeaderboardEntries, ShouldEqual, 20)
			})
		})

		Convey("When scoring is not requested", func() {
			cfg.Score = false
			stats, err := run(context.Background(), cfg, rand.New(rand.NewPCG(1, 2)))

			Convey("Then the leaderboard stays empty", func() {
				So(err, ShouldBeNil)
				So(stats.Accepted, ShouldEqual, 20)
				So(stats.LeaderboardEntries, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a game whose window has ended", t, func() {
		srv := newGame(t, 30*time.Hour)
		cfg := &Config{BaseURL: srv.URL, Users: 5, Workers: 2, Timeout: 5 * time.Second}

		_, err := run(context.Background(), cfg, rand.New(rand.NewPCG(1, 2)))
		So(errors.Is(err, ErrNoOpenCheckpoint), ShouldBeTrue)
	})

	Convey("Given no service", t, func() {
		cfg := &Config{BaseURL: "http://127.0.0.1:1", Users: 1, Workers: 1, Timeout: time.Second}
		_, err := Run(context.Background(), cfg)
		So(err, ShouldNotBeNil)
	})
}

func TestGenerateForecasts(t *testing.T) {
	Convey("Given a target anchored on a revealed fix", t, func() {
		target := Target{
			StormID:    "ian-2022",
			Checkpoint: model.Label0600,
			Anchor:     model.Observation{Lat: 89.5, Lon: -82.9, WindSpeed: 10, Pressure: 952},
		}

		Convey("Then forecasts stay within the jitter and valid ranges", func() {
			out := generateForecasts(target, 200, rand.New(rand.NewPCG(7, 7)))
			So(len(out), ShouldEqual, 200)
			seen := map[string]bool{}
			for _, f := range out {
				So(f.StormID, ShouldEqual, "ian-2022")
				So(f.Checkpoint, ShouldEqual, model.Label0600)
				So(f.Lat, ShouldBeLessThanOrEqualTo, 90)
				So(math.Abs(f.Lon-target.Anchor.Lon), ShouldBeLessThanOrEqualTo, lonJitterDeg+0.01)
				So(f.WindSpeed, ShouldBeGreaterThanOrEqualTo, 0)
				So(math.Abs(f.Pressure-target.Anchor.Pressure), ShouldBeLessThanOrEqualTo, pressureJitterMb+0.01)
				seen[f.Username] = true
			}
			So(len(seen), ShouldEqual, 200)
		})
	})

	Convey("Given game states", t, func() {
		label := model.Label1200
		obs := model.Observation{Lat: 25.2, Lon: -82.7}

		Convey("Then the latest revealed fix anchors the target", func() {
			gs := service.GameState{
				ActiveCheckpoint: &label,
				Storm: &service.StormView{ID: "ian-2022", Checkpoints: []service.CheckpointView{
					{Label: model.Label0000, Observation: &model.Observation{Lat: 24.4}},
					{Label: model.Label0600, Observation: &obs},
					{Label: model.Label1200},
				}},
			}
			target, err := targetFrom(gs)
			So(err, ShouldBeNil)
			So(target.Checkpoint, ShouldEqual, model.Label1200)
			So(target.Anchor, ShouldResemble, obs)
		})

		Convey("Then no open checkpoint is an error", func() {
			_, err := targetFrom(service.GameState{Storm: &service.StormView{ID: "ian-2022"}})
			So(errors.Is(err, ErrNoOpenCheckpoint), ShouldBeTrue)
		})
	})
}
