package drafts

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithMaxSize sets the number of drafts kept before the oldest is evicted.
// Values <= 0 make the registry unbounded.
func WithMaxSize(maxSize int) Option {
	return func(r *Registry) {
		r.maxSize = maxSize
	}
}

// WithIDGenerator sets the generator for draft ids.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}
