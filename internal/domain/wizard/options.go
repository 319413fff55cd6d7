package wizard

import "time"

// Option applies a configuration option to a Flow.
type Option func(*Flow)

// WithClock sets the clock used to default the session date.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		if now != nil {
			f.now = now
		}
	}
}

// WithIDGenerator sets the generator for entry ids.
func WithIDGenerator(gen func() string) Option {
	return func(f *Flow) {
		if gen != nil {
			f.newID = gen
		}
	}
}
