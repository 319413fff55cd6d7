// Package types contains view types shared by the read-side components.
package types

import "github.com/okian/edutrack/internal/domain/model"

// EntryRow is a progress entry decorated with its accuracy percentage.
type EntryRow struct {
	model.ProgressEntry
	AccuracyPercent int `json:"accuracyPercent"`
}

// CountBySubject is a subject label with a count.
type CountBySubject struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// AverageBySubject is a subject label with a rounded average score.
type AverageBySubject struct {
	Subject string `json:"subject"`
	Average int    `json:"average"`
}
