package seed

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/edutrack/pkg/logger"
)

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: url must not be empty", ErrInvalidConfig)
	case c.Entries < 0:
		return fmt.Errorf("%w: entries must not be negative", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.Email == "" || c.Password == "":
		return fmt.Errorf("%w: email and password are required", ErrInvalidConfig)
	}
	return nil
}

// Run executes a complete seeding run and returns its statistics.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("seed")

	log.Info(ctx, "starting edutrack seed",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("entries", cfg.Entries),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()))

	client := NewClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health and sign in
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}
	if err := client.Login(ctx, cfg.Email, cfg.Password); err != nil {
		return stats, fmt.Errorf("login failed: %w", err)
	}

	// Step 2: Snapshot the dashboard and generate sessions
	before, err := client.Summary(ctx)
	if err != nil {
		return stats, fmt.Errorf("dashboard snapshot failed: %w", err)
	}
	stats.Before = before
	catalog, err := client.Catalog(ctx)
	if err != nil {
		return stats, fmt.Errorf("catalog fetch failed: %w", err)
	}
	if len(catalog) == 0 {
		return stats, fmt.Errorf("%w: empty catalog", ErrVerify)
	}
	sessions := generateSessions(ctx, cfg, catalog, stats)

	// Step 3: Record sessions concurrently
	if err := submitSessions(ctx, cfg, client, sessions, stats); err != nil {
		return stats, fmt.Errorf("submission failed: %w", err)
	}

	// Step 4: Verify the dashboard grew by what was submitted
	after, err := client.Summary(ctx)
	if err != nil {
		return stats, fmt.Errorf("dashboard re-read failed: %w", err)
	}
	stats.After = after

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if err := verifySummary(before, after, expectedDelta(sessions)); err != nil {
		return stats, err
	}
	log.Info(ctx, "seed completed successfully")
	return stats, nil
}

// submitSessions records sessions with at most cfg.Workers in flight. The
// first failure cancels the rest.
func submitSessions(ctx context.Context, cfg *Config, client *Client, sessions []Session, stats *Stats) error {
	var submitted, successful, failed atomic.Int64
	log := logger.Get().Named("seed")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, s := range sessions {
		g.Go(func() error {
			submitted.Add(1)
			id, err := client.Record(gctx, s)
			if err != nil {
				failed.Add(1)
				return fmt.Errorf("session %d: %w", i, err)
			}
			successful.Add(1)
			if cfg.Verbose {
				log.Debug(gctx, "session recorded",
					logger.String("entry", id),
					logger.String("subject", s.Subject),
					logger.String("topic", s.Topic))
			}
			return nil
		})
	}
	err := g.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Successful = int(successful.Load())
	stats.Failed = int(failed.Load())
	return err
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Successful) / stats.Duration.Seconds()
	}
	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("topicsBefore", stats.Before.TopicsStudied),
		logger.Int("topicsAfter", stats.After.TopicsStudied),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("sessionsPerSecond", perSecond))
}
