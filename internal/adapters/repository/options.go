package repository

import (
	"github.com/okian/edutrack/internal/domain/model"
	"github.com/okian/edutrack/pkg/logger"
)

// Option applies a configuration option to the EntryStore.
type Option func(*EntryStore)

// WithFallback sets the list returned when the stored list is missing or
// unreadable. The default is an empty list.
func WithFallback(entries []model.ProgressEntry) Option {
	return func(s *EntryStore) {
		s.fallback = append([]model.ProgressEntry(nil), entries...)
	}
}

// WithSampleFallback falls back to the sample history.
func WithSampleFallback() Option {
	return WithFallback(model.SampleEntries())
}

// WithLogger sets the logger used to report degraded reads.
func WithLogger(l logger.Logger) Option {
	return func(s *EntryStore) {
		if l != nil {
			s.log = l
		}
	}
}
