package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/edutrack/internal/config"
	"github.com/okian/edutrack/pkg/logger"
	"github.com/okian/edutrack/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func memoryConfig() *config.Config {
	cfg := config.New()
	cfg.StoreBackend = config.BackendMemory
	cfg.LoginDelayMS = 0
	return cfg
}

func TestConfigureLogging(t *testing.T) {
	convey.Convey("Given a loaded configuration", t, func() {
		ctx := context.Background()
		cfg := memoryConfig()

		convey.Convey("When the level is invalid", func() {
			cfg.LogLevel = "loud"

			convey.Convey("Then logging falls back instead of failing", func() {
				convey.So(configureLogging(ctx, cfg), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the format is unknown", func() {
			cfg.LogFormat = "xml"

			convey.Convey("Then logging setup fails", func() {
				convey.So(configureLogging(ctx, cfg), convey.ShouldNotBeNil)
				convey.So(logger.Init(), convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigureMetrics(t *testing.T) {
	convey.Convey("Given a metrics section in the configuration", t, func() {
		cfg := memoryConfig()
		cfg.MetricsNamespace = "school"
		cfg.MetricsLabels = "env=ci"
		cfg.MetricsRefreshMS = 250
		convey.Reset(func() { configureMetrics(config.New()) })

		convey.Convey("When it is applied at startup", func() {
			configureMetrics(cfg)
			metrics.RecordEntryAppended()

			convey.Convey("Then the registry exposes the renamed, labelled series", func() {
				convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 250*time.Millisecond)

				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				labels := map[string]string{}
				for _, f := range families {
					if f.GetName() != "school_tracker_entries_appended_total" {
						continue
					}
					for _, l := range f.GetMetric()[0].GetLabel() {
						labels[l.GetName()] = l.GetValue()
					}
				}
				convey.So(labels, convey.ShouldResemble, map[string]string{"env": "ci"})
			})
		})
	})
}

func TestNewService(t *testing.T) {
	convey.Convey("Given configurations for each local backend", t, func() {
		ctx := context.Background()

		convey.Convey("When the memory backend is configured with sample fallback", func() {
			cfg := memoryConfig()
			cfg.StoreFallback = config.FallbackSample
			cfg.MaxDrafts = 3
			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the stats reflect the configuration", func() {
				stats := svc.GetStats()
				convey.So(stats["backend"], convey.ShouldEqual, "memory")
				convey.So(stats["sampleFallback"], convey.ShouldEqual, true)
				convey.So(stats["maxDrafts"], convey.ShouldEqual, 3)
				convey.So(stats["totalEntries"], convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the file backend is configured", func() {
			cfg := memoryConfig()
			cfg.StoreBackend = config.BackendFile
			cfg.StorePath = filepath.Join(t.TempDir(), "store.json")
			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.So(svc.GetStats()["backend"], convey.ShouldEqual, "file")
		})

		convey.Convey("When the sqlite backend is configured", func() {
			cfg := memoryConfig()
			cfg.StoreBackend = config.BackendSQLite
			cfg.SQLitePath = filepath.Join(t.TempDir(), "store.db")
			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.So(svc.GetStats()["backend"], convey.ShouldEqual, "sqlite")
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the application mux", t, func() {
		ctx := context.Background()
		svc := newService(memoryConfig(), logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		mux := newMux(ctx, svc)

		convey.Convey("Then docs and API routes are registered", func() {
			for _, path := range []string{"/openapi.yaml", "/api-docs", "/healthz", "/catalog", "/stats"} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestServe(t *testing.T) {
	convey.Convey("Given a server on a loopback listener", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		svc := newService(memoryConfig(), logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		srv := &http.Server{Handler: newMux(ctx, svc), ReadHeaderTimeout: readHeaderTimeout}

		done := make(chan error, 1)
		go func() { done <- serve(ctx, srv, ln, svc) }()

		convey.Convey("When a request arrives and the context is cancelled", func() {
			client := &http.Client{Timeout: 5 * time.Second}
			resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
			convey.So(err, convey.ShouldBeNil)
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			cancel()

			convey.Convey("Then it answers and shuts down cleanly", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				convey.So(string(body), convey.ShouldContainSubstring, `"status":"ok"`)
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(10 * time.Second):
					t.Fatal("server did not stop")
				}
			})
		})
	})
}

func TestMetricsUpdater(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		svc := newService(memoryConfig(), logger.Get())
		convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("Then the updater ticks until cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startMetricsUpdater(ctx, 10*time.Millisecond, svc) }, convey.ShouldNotPanic)
			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
		})
	})
}
