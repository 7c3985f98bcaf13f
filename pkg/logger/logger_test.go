package logger_test

import (
	"context"
	"testing"

	"github.com/accountable-india/civicrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching the global instance", func() {
			log := logger.Get()

			Convey("Then it accepts entries at every level without panicking", func() {
				ctx := context.Background()
				So(func() {
					log.Debug(ctx, "debug entry", logger.String("k", "v"))
					log.Info(ctx, "info entry", logger.Int("count", 3))
					log.Warn(ctx, "warn entry", logger.Float64("score", 4.5))
					log.Error(ctx, "error entry", logger.Bool("degraded", true))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("worker")

			Convey("Then it is usable independently", func() {
				So(named, ShouldNotBeNil)
				So(func() { named.Info(context.Background(), "hello") }, ShouldNotPanic)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known names parse", func() {
			for _, name := range []string{"debug", "info", "WARN", "warning", "Error", ""} {
				So(logger.SetLevelString(name), ShouldBeNil)
			}
		})

		Convey("Then unknown names are rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
