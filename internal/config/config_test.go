package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/stormcast/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DatabaseDriver, convey.ShouldEqual, "sqlite")
			convey.So(cfg.RotationMode, convey.ShouldEqual, "daily")
			convey.So(cfg.TickInterval(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.MetricsRefresh(), convey.ShouldEqual, 15*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)

			epoch, err := cfg.Epoch()
			convey.So(err, convey.ShouldBeNil)
			convey.So(epoch, convey.ShouldEqual, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad setting", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"unknown driver", func(c *config.Config) { c.DatabaseDriver = "mysql" }},
			{"empty dsn", func(c *config.Config) { c.DatabaseDSN = "" }},
			{"unknown rotation", func(c *config.Config) { c.RotationMode = "hourly" }},
			{"bad epoch", func(c *config.Config) { c.RotationEpoch = "yesterday" }},
			{"zero tick", func(c *config.Config) { c.TickIntervalSeconds = 0 }},
			{"zero limit", func(c *config.Config) { c.MaxLeaderboardLimit = 0 }},
			{"zero ttl", func(c *config.Config) { c.LeaderboardCacheTTLSecond = 0 }},
			{"zero refresh", func(c *config.Config) { c.MetricsRefreshSeconds = -1 }},
		}

		convey.Convey("Then each is rejected as invalid", func() {
			for _, c := range cases {
				cfg := config.New()
				c.mutate(cfg)
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})
	})
}
