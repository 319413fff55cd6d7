package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/edutrack/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		// Point the dotenv layer at a file that does not exist unless a case sets it.
		t.Chdir(t.TempDir())

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendFile)
				convey.So(cfg.RedisPrefix, convey.ShouldEqual, "edutrack:")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("EDUTRACK_ADDR", ":8080")
			_ = os.Setenv("EDUTRACK_STORE_BACKEND", "memory")
			_ = os.Setenv("EDUTRACK_LOGIN_DELAY_MS", "0")
			_ = os.Setenv("EDUTRACK_STORE_FALLBACK", "sample")
			_ = os.Setenv("EDUTRACK_METRICS_NAMESPACE", "school")
			_ = os.Setenv("EDUTRACK_METRICS_LABELS", "env=prod,region=eu")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.LoginDelayMS, convey.ShouldEqual, 0)
				convey.So(cfg.StoreFallback, convey.ShouldEqual, config.FallbackSample)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "school")
				convey.So(cfg.MetricsLabelSet(), convey.ShouldResemble, map[string]string{"env": "prod", "region": "eu"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
store_backend: sqlite
sqlite_path: /tmp/edutrack-test.db
max_drafts: 16
fixed_top_performer: Alice Johnson
`)
			_ = os.Setenv("EDUTRACK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendSQLite)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "/tmp/edutrack-test.db")
				convey.So(cfg.MaxDrafts, convey.ShouldEqual, 16)
				convey.So(cfg.FixedTopPerformer, convey.ShouldEqual, "Alice Johnson")
				convey.So(cfg.LoginDelayMS, convey.ShouldEqual, 1000) // From defaults
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
max_drafts: 16
`)
			_ = os.Setenv("EDUTRACK_CONFIG", tmpFile)
			_ = os.Setenv("EDUTRACK_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxDrafts, convey.ShouldEqual, 16)
			})
		})

		convey.Convey("When a dotenv file is present", func() {
			dir := t.TempDir()
			envFile := filepath.Join(dir, "test.env")
			convey.So(os.WriteFile(envFile, []byte("EDUTRACK_REDIS_ADDR=redis:6380\nEDUTRACK_STORE_BACKEND=redis\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("EDUTRACK_ENV_FILE", envFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendRedis)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "redis:6380")
			})
		})

		convey.Convey("When the named dotenv file does not exist", func() {
			_ = os.Setenv("EDUTRACK_ENV_FILE", "/non/existent/.env")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("EDUTRACK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("EDUTRACK_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file empties addr", func() {
			tmpFile := createTempConfigFile(t, `addr: ""`)
			_ = os.Setenv("EDUTRACK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When numeric env vars are not numbers", func() {
			_ = os.Setenv("EDUTRACK_MAX_DRAFTS", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.
func clearConfigEnvVars() {
	envVars := []string{
		"EDUTRACK_CONFIG",
		"EDUTRACK_ENV_FILE",
		"EDUTRACK_ADDR",
		"EDUTRACK_STORE_BACKEND",
		"EDUTRACK_STORE_FALLBACK",
		"EDUTRACK_LOGIN_DELAY_MS",
		"EDUTRACK_MAX_DRAFTS",
		"EDUTRACK_REDIS_ADDR",
		"EDUTRACK_METRICS_NAMESPACE",
		"EDUTRACK_METRICS_LABELS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edutrack-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
