// Package dashboard aggregates progress entries into the overview shown on
// the landing page.
package dashboard

import (
	"strings"

	"github.com/okian/edutrack/internal/domain/model"
	"github.com/okian/edutrack/internal/domain/scoring"
	"github.com/okian/edutrack/internal/domain/types"
)

// Summary holds the headline statistics.
type Summary struct {
	TopicsStudied       int     `json:"topicsStudied"`
	TotalCorrect        int     `json:"totalCorrect"`
	TotalQuestions      int     `json:"totalQuestions"`
	AverageScorePercent float64 `json:"averageScorePercent"`
}

// View is the dashboard payload: a summary over every entry plus the entries
// matching the search term.
type View struct {
	Summary Summary          `json:"summary"`
	Search  string           `json:"search"`
	Entries []types.EntryRow `json:"entries"`
}

// Summarize computes the summary over entries.
func Summarize(entries []model.ProgressEntry) Summary {
	s := Summary{TopicsStudied: len(entries)}
	for _, e := range entries {
		s.TotalCorrect += e.Correct
		s.TotalQuestions += e.Total
	}
	if s.TotalQuestions > 0 {
		s.AverageScorePercent = scoring.Round1(100 * float64(s.TotalCorrect) / float64(s.TotalQuestions))
	}
	return s
}

// Matches reports whether term occurs in the entry's subject or topic,
// ignoring case. An empty term matches everything.
func Matches(e model.ProgressEntry, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Subject), term) ||
		strings.Contains(strings.ToLower(e.Topic), term)
}

// Search returns the entries matching term, preserving order.
func Search(entries []model.ProgressEntry, term string) []model.ProgressEntry {
	out := make([]model.ProgressEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, term) {
			out = append(out, e)
		}
	}
	return out
}

// Rows decorates entries with their accuracy percentage.
func Rows(entries []model.ProgressEntry) []types.EntryRow {
	rows := make([]types.EntryRow, len(entries))
	for i, e := range entries {
		rows[i] = types.EntryRow{ProgressEntry: e, AccuracyPercent: scoring.AccuracyPercent(e.Correct, e.Total)}
	}
	return rows
}

// Build returns the dashboard view. The summary ignores the search term.
func Build(entries []model.ProgressEntry, term string) View {
	return View{
		Summary: Summarize(entries),
		Search:  term,
		Entries: Rows(Search(entries, term)),
	}
}
