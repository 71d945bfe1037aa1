package config_test

import (
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/teetrip/teetrip/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.PlacesAPIKey, convey.ShouldBeEmpty)
			convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 300)
			convey.So(cfg.CacheMaxEntries, convey.ShouldEqual, 10_000)
			convey.So(cfg.BatchConcurrency, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.MaxPlayers, convey.ShouldEqual, 4)
			convey.So(cfg.HTTPClientTimeoutSeconds, convey.ShouldEqual, 10)
		})
	})
}
