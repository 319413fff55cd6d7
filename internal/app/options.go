package service

import (
	"time"

	"github.com/okian/edutrack/internal/adapters/kvstore"
	"github.com/okian/edutrack/internal/domain/auth"
	"github.com/okian/edutrack/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBackend selects the key-value backend opened by Start.
func WithBackend(backend string, opts ...kvstore.Option) Option {
	return func(s *Service) {
		if backend != "" {
			s.backend = backend
		}
		s.kvOptions = append(s.kvOptions, opts...)
	}
}

// WithStore uses an already opened store instead of opening one. The caller
// keeps ownership and closes it.
func WithStore(kv kvstore.Store) Option {
	return func(s *Service) {
		s.kv = kv
	}
}

// WithSampleFallback makes a missing or corrupt entry list load as the
// sample history.
func WithSampleFallback(enabled bool) Option {
	return func(s *Service) {
		s.sampleFallback = enabled
	}
}

// WithAuthenticator replaces the mock authenticator.
func WithAuthenticator(a auth.Authenticator) Option {
	return func(s *Service) {
		if a != nil {
			s.authenticator = a
		}
	}
}

// WithLoginDelay sets the delay of the default mock authenticator.
func WithLoginDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.loginDelay = d
		}
	}
}

// WithMaxDrafts bounds the number of open entry form drafts.
func WithMaxDrafts(n int) Option {
	return func(s *Service) {
		s.maxDrafts = n
	}
}

// WithFixedTopPerformer pins the analytics top performer label.
func WithFixedTopPerformer(name string) Option {
	return func(s *Service) {
		s.fixedTopPerformer = name
	}
}

// WithClock sets the clock used to default entry dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
