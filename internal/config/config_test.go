package config_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/accountable-india/civicrank/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DBPath, convey.ShouldEqual, "civicrank.db")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
			convey.So(cfg.AITimeoutSeconds, convey.ShouldEqual, 30)
			convey.So(cfg.AIAPIKey, convey.ShouldBeEmpty)
		})
	})
}
