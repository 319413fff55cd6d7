package analytics

import "github.com/okian/edutrack/internal/domain/model"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithFixedTopPerformer reports name as the top performer instead of the
// computed one. An empty name keeps the computed value.
func WithFixedTopPerformer(name string) Option {
	return func(e *Engine) {
		e.fixedTopPerformer = name
	}
}

// WithDataset replaces the sample roster and records.
func WithDataset(students []model.Student, records []model.AnalyticsRecord) Option {
	return func(e *Engine) {
		if students != nil {
			e.students = append([]model.Student(nil), students...)
		}
		if records != nil {
			e.records = append([]model.AnalyticsRecord(nil), records...)
		}
	}
}
