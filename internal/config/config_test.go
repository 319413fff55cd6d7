package config_test

import (
	"errors"
	"testing"

	"github.com/okian/edutrack/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendFile)
			convey.So(cfg.StoreFallback, convey.ShouldEqual, config.FallbackEmpty)
			convey.So(cfg.LoginDelayMS, convey.ShouldEqual, 1000)
			convey.So(cfg.MaxDrafts, convey.ShouldEqual, 1024)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "edutrack")
			convey.So(cfg.MetricsRefreshMS, convey.ShouldEqual, 10000)
			convey.So(cfg.MetricsLabelSet(), convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":        func(c *config.Config) { c.Addr = " " },
			"unknown backend":   func(c *config.Config) { c.StoreBackend = "etcd" },
			"file without path": func(c *config.Config) { c.StorePath = "" },
			"sqlite no path":    func(c *config.Config) { c.StoreBackend = config.BackendSQLite; c.SQLitePath = "" },
			"redis no addr":     func(c *config.Config) { c.StoreBackend = config.BackendRedis; c.RedisAddr = "" },
			"unknown fallback":  func(c *config.Config) { c.StoreFallback = "seeded" },
			"negative delay":    func(c *config.Config) { c.LoginDelayMS = -1 },
			"negative drafts":   func(c *config.Config) { c.MaxDrafts = -1 },
			"zero refresh":      func(c *config.Config) { c.MetricsRefreshMS = 0 },
			"empty namespace":   func(c *config.Config) { c.MetricsNamespace = "" },
			"dashed subsystem":  func(c *config.Config) { c.MetricsSubsystem = "edu-track" },
			"label without key": func(c *config.Config) { c.MetricsLabels = "env=prod,=eu" },
			"label without =":   func(c *config.Config) { c.MetricsLabels = "env" },
			"reserved label":    func(c *config.Config) { c.MetricsLabels = "__name__=x" },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			_ = name
		}

		convey.Convey("And memory backend needs no path", func() {
			cfg := config.New()
			cfg.StoreBackend = config.BackendMemory
			cfg.StorePath = ""
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_MetricsLabelSet(t *testing.T) {
	convey.Convey("Given comma-separated metrics labels", t, func() {
		cfg := config.New()
		cfg.MetricsLabels = " env = prod, region=eu ,tier="

		convey.Convey("Then they validate and parse into a trimmed map", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(cfg.MetricsLabelSet(), convey.ShouldResemble, map[string]string{
				"env":    "prod",
				"region": "eu",
				"tier":   "",
			})
		})
	})
}
